package app

import (
	"context"

	"github.com/dwikikusuma/shop-backoffice/internal/cart/domain"
	"github.com/shopspring/decimal"
)

type CartRepo interface {
	Get(ctx context.Context, id string) (domain.Cart, error)
	GetByCustomer(ctx context.Context, customerID string) (domain.Cart, error)
	Create(ctx context.Context, customerID string) (domain.Cart, error)
	GetOrCreate(ctx context.Context, customerID string) (domain.Cart, error)
	AddItem(ctx context.Context, cartID, productID string, qty int) error
	SetItemQuantity(ctx context.Context, cartID, itemID string, qty int) error
	RemoveItem(ctx context.Context, cartID, itemID string) error
	ClearItems(ctx context.Context, cartID string) error
	Delete(ctx context.Context, cartID string) error
	List(ctx context.Context) ([]domain.Cart, error)
}

// Product is the catalog view the cart needs to accept an item.
type Product struct {
	ID          string
	Title       string
	Price       decimal.Decimal
	Purchasable bool
}

type CatalogReader interface {
	GetProduct(ctx context.Context, productID string) (Product, error)
}
