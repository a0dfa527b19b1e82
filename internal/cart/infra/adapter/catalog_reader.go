package adapter

import (
	"context"

	cartapp "github.com/dwikikusuma/shop-backoffice/internal/cart/app"
	catalogapp "github.com/dwikikusuma/shop-backoffice/internal/catalog/app"
)

type CatalogServiceReader struct {
	svc *catalogapp.Service
}

func NewCatalogServiceReader(svc *catalogapp.Service) *CatalogServiceReader {
	return &CatalogServiceReader{svc: svc}
}

func (r *CatalogServiceReader) GetProduct(ctx context.Context, productID string) (cartapp.Product, error) {
	p, err := r.svc.GetProduct(ctx, productID)
	if err != nil {
		return cartapp.Product{}, err
	}

	return cartapp.Product{
		ID:          p.ID,
		Title:       p.Title,
		Price:       p.Price,
		Purchasable: p.Purchasable(),
	}, nil
}
