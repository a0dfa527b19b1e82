package sqlite

import (
	"context"
	"database/sql"

	cartsqlite "github.com/dwikikusuma/shop-backoffice/internal/cart/infra/sqlite"
	catalogsqlite "github.com/dwikikusuma/shop-backoffice/internal/catalog/infra/sqlite"
	"github.com/dwikikusuma/shop-backoffice/internal/checkout/app"
	ordersqlite "github.com/dwikikusuma/shop-backoffice/internal/order/infra/sqlite"
	"github.com/dwikikusuma/shop-backoffice/internal/order/outbox"
)

// UnitOfWork binds the cart, product, order and outbox repositories to one
// *sql.Tx.
type UnitOfWork struct {
	db *sql.DB
}

func NewUnitOfWork(db *sql.DB) *UnitOfWork {
	return &UnitOfWork{db: db}
}

func (u *UnitOfWork) Begin(ctx context.Context) (app.Tx, error) {
	tx, err := u.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	return &txn{
		Tx:       tx,
		carts:    cartsqlite.NewCartRepo(tx),
		products: catalogsqlite.NewProductRepo(tx),
		orders:   ordersqlite.NewOrderRepo(tx),
		events:   outbox.NewStore(tx),
	}, nil
}

type txn struct {
	*sql.Tx
	carts    *cartsqlite.CartRepo
	products *catalogsqlite.ProductRepo
	orders   *ordersqlite.OrderRepo
	events   *outbox.Store
}

func (t *txn) Carts() app.CartStore { return t.carts }

func (t *txn) Products() app.ProductStore { return t.products }

func (t *txn) Orders() app.OrderStore { return t.orders }

func (t *txn) Events() app.EventStore { return t.events }
