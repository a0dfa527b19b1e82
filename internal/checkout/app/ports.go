package app

import (
	"context"

	"github.com/dwikikusuma/shop-backoffice/internal/auth"
	cartdomain "github.com/dwikikusuma/shop-backoffice/internal/cart/domain"
	catalogdomain "github.com/dwikikusuma/shop-backoffice/internal/catalog/domain"
	orderdomain "github.com/dwikikusuma/shop-backoffice/internal/order/domain"
	"github.com/shopspring/decimal"
)

// UnitOfWork opens a transaction spanning carts, products, orders and the
// order event outbox.
type UnitOfWork interface {
	Begin(ctx context.Context) (Tx, error)
}

type Tx interface {
	Carts() CartStore
	Products() ProductStore
	Orders() OrderStore
	Events() EventStore
	Commit() error
	Rollback() error
}

type CartStore interface {
	GetByCustomer(ctx context.Context, customerID string) (cartdomain.Cart, error)
	ClearItems(ctx context.Context, cartID string) error
}

type ProductStore interface {
	Get(ctx context.Context, id string) (catalogdomain.Product, error)
	// SaveStock writes quantity and status only if the stored quantity is
	// still prevQty.
	SaveStock(ctx context.Context, p catalogdomain.Product, prevQty int) error
}

type OrderStore interface {
	Create(ctx context.Context, o orderdomain.Order) (orderdomain.Order, error)
	Get(ctx context.Context, id string) (orderdomain.Order, error)
	UpdateStatus(ctx context.Context, id string, status orderdomain.Status) error
}

type EventStore interface {
	Append(ctx context.Context, e orderdomain.Event) error
}

type CartItem struct {
	ProductID string
	Quantity  int
}

type CartReader interface {
	GetCart(ctx context.Context, p auth.Principal) ([]CartItem, error)
}

type Product struct {
	ID          string
	Title       string
	Price       decimal.Decimal
	Quantity    int
	Purchasable bool
}

type CatalogReader interface {
	GetProduct(ctx context.Context, productID string) (Product, error)
}

// CatalogInvalidator drops cached catalog listings after stock changes.
type CatalogInvalidator interface {
	InvalidatePublic(ctx context.Context)
}
