package adapter

import (
	"context"
	"errors"

	"github.com/dwikikusuma/shop-backoffice/internal/auth"
	cartapp "github.com/dwikikusuma/shop-backoffice/internal/cart/app"
	checkoutapp "github.com/dwikikusuma/shop-backoffice/internal/checkout/app"
)

type CartServiceReader struct {
	svc *cartapp.Service
}

func NewCartServiceReader(svc *cartapp.Service) *CartServiceReader {
	return &CartServiceReader{svc: svc}
}

// GetCart returns the customer's items; a customer without a cart has none.
func (r *CartServiceReader) GetCart(ctx context.Context, p auth.Principal) ([]checkoutapp.CartItem, error) {
	cart, err := r.svc.GetMine(ctx, p)
	if errors.Is(err, cartapp.ErrCartNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	items := make([]checkoutapp.CartItem, 0, len(cart.Items))
	for _, it := range cart.Items {
		items = append(items, checkoutapp.CartItem{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
		})
	}
	return items, nil
}
