package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/dwikikusuma/shop-backoffice/internal/order/domain"
	"github.com/dwikikusuma/shop-backoffice/pkg/database"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const orderSelect = `SELECT o.id, o.customer_id, COALESCE(u.name, ''), o.status, o.created_at, o.updated_at
	FROM orders o LEFT JOIN users u ON u.id = o.customer_id`

const newestFirst = ` ORDER BY o.created_at DESC, o.rowid DESC`

// OrderRepo works on a *sql.DB or inside a *sql.Tx.
type OrderRepo struct {
	db database.DBTX
}

func NewOrderRepo(db database.DBTX) *OrderRepo {
	return &OrderRepo{db: db}
}

// Create inserts the order and its lines. It does not open a transaction;
// callers that need atomicity pass a *sql.Tx.
func (r *OrderRepo) Create(ctx context.Context, o domain.Order) (domain.Order, error) {
	now := database.Now()
	o.ID = uuid.NewString()
	o.CreatedAt = now
	o.UpdatedAt = now

	_, err := r.db.ExecContext(ctx, `INSERT INTO orders (id, customer_id, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)`,
		o.ID, o.CustomerID, string(o.Status), database.FormatTime(now), database.FormatTime(now))
	if err != nil {
		return domain.Order{}, fmt.Errorf("failed to create order: %w", err)
	}

	for i := range o.Items {
		it := &o.Items[i]
		it.ID = uuid.NewString()
		it.OrderID = o.ID
		it.Position = i

		_, err := r.db.ExecContext(ctx, `INSERT INTO order_items
			(id, order_id, product_id, product_title, position, quantity, unit_price)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			it.ID, it.OrderID, it.ProductID, it.ProductTitle, it.Position, it.Quantity, it.UnitPrice.String())
		if err != nil {
			return domain.Order{}, fmt.Errorf("failed to insert item %d: %w", i, err)
		}
	}

	return o, nil
}

func (r *OrderRepo) Get(ctx context.Context, id string) (domain.Order, error) {
	o, err := scanOrder(r.db.QueryRowContext(ctx, orderSelect+` WHERE o.id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Order{}, domain.ErrOrderNotFound.Withf("order %s not found", id)
	}
	if err != nil {
		return domain.Order{}, err
	}

	items, err := r.loadItems(ctx, []string{o.ID})
	if err != nil {
		return domain.Order{}, err
	}
	o.Items = items[o.ID]
	return o, nil
}

func (r *OrderRepo) UpdateStatus(ctx context.Context, id string, status domain.Status) error {
	res, err := r.db.ExecContext(ctx, `UPDATE orders SET status = ?, updated_at = ? WHERE id = ?`,
		string(status), database.FormatTime(database.Now()), id)
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrOrderNotFound.Withf("order %s not found", id)
	}
	return nil
}

func (r *OrderRepo) ListByCustomer(ctx context.Context, customerID string) ([]domain.Order, error) {
	return r.list(ctx, orderSelect+` WHERE o.customer_id = ?`+newestFirst, customerID)
}

func (r *OrderRepo) ListAll(ctx context.Context) ([]domain.Order, error) {
	return r.list(ctx, orderSelect+newestFirst)
}

// ListByCollaborator returns every order holding at least one line whose
// product belongs to collaboratorID.
func (r *OrderRepo) ListByCollaborator(ctx context.Context, collaboratorID string) ([]domain.Order, error) {
	return r.list(ctx, orderSelect+` WHERE o.id IN (
		SELECT oi.order_id FROM order_items oi JOIN products p ON p.id = oi.product_id
		WHERE p.collaborator_id = ?)`+newestFirst, collaboratorID)
}

// list reads the orders first and closes the cursor before loading lines:
// the database has a single connection.
func (r *OrderRepo) list(ctx context.Context, q string, args ...any) ([]domain.Order, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query orders: %w", err)
	}

	var out []domain.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			rows.Close()
			return nil, err
		}
		out = append(out, o)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return out, nil
	}

	ids := make([]string, len(out))
	for i, o := range out {
		ids[i] = o.ID
	}
	items, err := r.loadItems(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range out {
		out[i].Items = items[out[i].ID]
	}
	return out, nil
}

func (r *OrderRepo) loadItems(ctx context.Context, orderIDs []string) (map[string][]domain.Item, error) {
	marks := strings.TrimSuffix(strings.Repeat("?,", len(orderIDs)), ",")
	args := make([]any, len(orderIDs))
	for i, id := range orderIDs {
		args[i] = id
	}

	rows, err := r.db.QueryContext(ctx, `SELECT oi.id, oi.order_id, oi.product_id, oi.product_title,
		COALESCE(p.collaborator_id, ''), oi.position, oi.quantity, oi.unit_price
		FROM order_items oi LEFT JOIN products p ON p.id = oi.product_id
		WHERE oi.order_id IN (`+marks+`) ORDER BY oi.order_id, oi.position`, args...)
	if err != nil {
		return nil, fmt.Errorf("query order items: %w", err)
	}
	defer rows.Close()

	out := make(map[string][]domain.Item, len(orderIDs))
	for rows.Next() {
		var (
			it    domain.Item
			price string
		)
		if err := rows.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.ProductTitle, &it.SellerID,
			&it.Position, &it.Quantity, &price); err != nil {
			return nil, err
		}
		it.UnitPrice, err = decimal.NewFromString(price)
		if err != nil {
			return nil, fmt.Errorf("order item %s price %q: %w", it.ID, price, err)
		}
		out[it.OrderID] = append(out[it.OrderID], it)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanOrder(s scanner) (domain.Order, error) {
	var (
		o                domain.Order
		status           string
		created, updated database.Timestamp
	)
	if err := s.Scan(&o.ID, &o.CustomerID, &o.CustomerName, &status, &created, &updated); err != nil {
		return domain.Order{}, err
	}
	o.Status = domain.Status(status)
	o.CreatedAt = created.Time
	o.UpdatedAt = updated.Time
	return o, nil
}
