package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dwikikusuma/shop-backoffice/internal/cart/app"
	"github.com/dwikikusuma/shop-backoffice/internal/cart/domain"
	"github.com/dwikikusuma/shop-backoffice/pkg/database"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CartRepo works on a *sql.DB or inside a *sql.Tx.
type CartRepo struct {
	db database.DBTX
}

func NewCartRepo(db database.DBTX) *CartRepo {
	return &CartRepo{db: db}
}

const cartSelect = `SELECT id, customer_id, created_at, updated_at FROM carts`

func (r *CartRepo) Get(ctx context.Context, id string) (domain.Cart, error) {
	return r.getOne(ctx, cartSelect+` WHERE id = ?`, id)
}

func (r *CartRepo) GetByCustomer(ctx context.Context, customerID string) (domain.Cart, error) {
	return r.getOne(ctx, cartSelect+` WHERE customer_id = ?`, customerID)
}

func (r *CartRepo) getOne(ctx context.Context, q string, arg string) (domain.Cart, error) {
	cart, err := scanCart(r.db.QueryRowContext(ctx, q, arg))
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Cart{}, app.ErrCartNotFound
	}
	if err != nil {
		return domain.Cart{}, err
	}

	cart.Items, err = r.items(ctx, cart.ID)
	if err != nil {
		return domain.Cart{}, err
	}
	return cart, nil
}

// items returns the lines of a cart in insertion order, priced at the
// product's current price.
func (r *CartRepo) items(ctx context.Context, cartID string) ([]domain.Item, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT ci.id, ci.cart_id, ci.product_id, p.title, p.status, p.price,
		ci.quantity, ci.created_at
		FROM cart_items ci JOIN products p ON p.id = ci.product_id
		WHERE ci.cart_id = ?
		ORDER BY ci.created_at, ci.rowid`, cartID)
	if err != nil {
		return nil, fmt.Errorf("list cart items: %w", err)
	}
	defer rows.Close()

	var items []domain.Item
	for rows.Next() {
		var (
			it      domain.Item
			price   string
			created database.Timestamp
		)
		if err := rows.Scan(&it.ID, &it.CartID, &it.ProductID, &it.ProductTitle, &it.ProductStatus, &price,
			&it.Quantity, &created); err != nil {
			return nil, err
		}
		if it.UnitPrice, err = decimal.NewFromString(price); err != nil {
			return nil, fmt.Errorf("product %s price %q: %w", it.ProductID, price, err)
		}
		it.CreatedAt = created.Time
		items = append(items, it)
	}
	return items, rows.Err()
}

func (r *CartRepo) Create(ctx context.Context, customerID string) (domain.Cart, error) {
	now := database.Now()
	cart := domain.Cart{ID: uuid.NewString(), CustomerID: customerID, CreatedAt: now, UpdatedAt: now}

	_, err := r.db.ExecContext(ctx, `INSERT INTO carts (id, customer_id, created_at, updated_at) VALUES (?, ?, ?, ?)`,
		cart.ID, cart.CustomerID, database.FormatTime(now), database.FormatTime(now))
	if database.IsUniqueViolation(err) {
		return domain.Cart{}, app.ErrCartExists
	}
	if err != nil {
		return domain.Cart{}, fmt.Errorf("insert cart: %w", err)
	}
	return cart, nil
}

func (r *CartRepo) GetOrCreate(ctx context.Context, customerID string) (domain.Cart, error) {
	cart, err := r.GetByCustomer(ctx, customerID)
	if err == nil {
		return cart, nil
	}
	if !errors.Is(err, app.ErrCartNotFound) {
		return domain.Cart{}, err
	}

	cart, err = r.Create(ctx, customerID)
	if err == nil {
		return cart, nil
	}

	// Someone else created it concurrently.
	if errors.Is(err, app.ErrCartExists) {
		return r.GetByCustomer(ctx, customerID)
	}
	return domain.Cart{}, err
}

func (r *CartRepo) AddItem(ctx context.Context, cartID, productID string, qty int) error {
	now := database.FormatTime(database.Now())
	_, err := r.db.ExecContext(ctx, `INSERT INTO cart_items (id, cart_id, product_id, quantity, created_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(cart_id, product_id) DO UPDATE SET quantity = quantity + excluded.quantity`,
		uuid.NewString(), cartID, productID, qty, now)
	if err != nil {
		return fmt.Errorf("add cart item: %w", err)
	}
	return r.touch(ctx, cartID)
}

func (r *CartRepo) SetItemQuantity(ctx context.Context, cartID, itemID string, qty int) error {
	res, err := r.db.ExecContext(ctx, `UPDATE cart_items SET quantity = ? WHERE id = ? AND cart_id = ?`, qty, itemID, cartID)
	if err != nil {
		return fmt.Errorf("set cart item quantity: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return app.ErrItemNotFound
	}
	return r.touch(ctx, cartID)
}

func (r *CartRepo) RemoveItem(ctx context.Context, cartID, itemID string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM cart_items WHERE id = ? AND cart_id = ?`, itemID, cartID)
	if err != nil {
		return fmt.Errorf("remove cart item: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return app.ErrItemNotFound
	}
	return r.touch(ctx, cartID)
}

func (r *CartRepo) ClearItems(ctx context.Context, cartID string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM cart_items WHERE cart_id = ?`, cartID); err != nil {
		return fmt.Errorf("clear cart: %w", err)
	}
	return r.touch(ctx, cartID)
}

func (r *CartRepo) Delete(ctx context.Context, cartID string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM carts WHERE id = ?`, cartID)
	if err != nil {
		return fmt.Errorf("delete cart: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return app.ErrCartNotFound
	}
	return nil
}

func (r *CartRepo) List(ctx context.Context) ([]domain.Cart, error) {
	rows, err := r.db.QueryContext(ctx, cartSelect+` ORDER BY created_at DESC, rowid DESC`)
	if err != nil {
		return nil, fmt.Errorf("list carts: %w", err)
	}

	var carts []domain.Cart
	for rows.Next() {
		c, err := scanCart(rows)
		if err != nil {
			rows.Close()
			return nil, err
		}
		carts = append(carts, c)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, err
	}
	rows.Close()

	// Items are loaded after the cursor is closed: the pool has one
	// connection.
	for i := range carts {
		if carts[i].Items, err = r.items(ctx, carts[i].ID); err != nil {
			return nil, err
		}
	}
	return carts, nil
}

func (r *CartRepo) touch(ctx context.Context, cartID string) error {
	_, err := r.db.ExecContext(ctx, `UPDATE carts SET updated_at = ? WHERE id = ?`, database.FormatTime(database.Now()), cartID)
	return err
}

type scanner interface {
	Scan(dest ...any) error
}

func scanCart(s scanner) (domain.Cart, error) {
	var (
		c                domain.Cart
		created, updated database.Timestamp
	)
	if err := s.Scan(&c.ID, &c.CustomerID, &created, &updated); err != nil {
		return domain.Cart{}, err
	}
	c.CreatedAt = created.Time
	c.UpdatedAt = updated.Time
	return c, nil
}
