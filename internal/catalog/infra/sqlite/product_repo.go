package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/dwikikusuma/shop-backoffice/internal/catalog/app"
	"github.com/dwikikusuma/shop-backoffice/internal/catalog/domain"
	"github.com/dwikikusuma/shop-backoffice/pkg/apperr"
	"github.com/dwikikusuma/shop-backoffice/pkg/database"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var ErrStockConflict = apperr.New(apperr.KindConflict, "STOCK_CONFLICT", "product stock changed concurrently")

const productSelect = `SELECT p.id, p.collaborator_id, COALESCE(u.name, ''), p.title, p.description, p.image_url,
	p.price, p.quantity, p.status, p.category, p.created_at, p.updated_at
	FROM products p LEFT JOIN users u ON u.id = p.collaborator_id`

// ProductRepo works on a *sql.DB or inside a *sql.Tx.
type ProductRepo struct {
	db database.DBTX
}

func NewProductRepo(db database.DBTX) *ProductRepo {
	return &ProductRepo{db: db}
}

func (r *ProductRepo) Create(ctx context.Context, p domain.Product) (domain.Product, error) {
	now := database.Now()
	p.ID = uuid.NewString()
	p.CreatedAt = now
	p.UpdatedAt = now

	_, err := r.db.ExecContext(ctx, `INSERT INTO products
		(id, collaborator_id, title, description, image_url, price, quantity, status, category, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.CollaboratorID, p.Title, p.Description, p.ImageURL, p.Price.String(), p.Quantity,
		string(p.Status), string(p.Category), database.FormatTime(now), database.FormatTime(now))
	if err != nil {
		return domain.Product{}, fmt.Errorf("insert product: %w", err)
	}
	return p, nil
}

func (r *ProductRepo) Update(ctx context.Context, p domain.Product) (domain.Product, error) {
	p.UpdatedAt = database.Now()

	res, err := r.db.ExecContext(ctx, `UPDATE products SET title = ?, description = ?, image_url = ?, price = ?,
		quantity = ?, status = ?, category = ?, updated_at = ? WHERE id = ?`,
		p.Title, p.Description, p.ImageURL, p.Price.String(), p.Quantity, string(p.Status), string(p.Category),
		database.FormatTime(p.UpdatedAt), p.ID)
	if err != nil {
		return domain.Product{}, fmt.Errorf("update product: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.Product{}, app.ErrProductNotFound.Withf("product %s not found", p.ID)
	}
	return p, nil
}

// SaveStock writes p's quantity and status only if the stored quantity is
// still prevQty.
func (r *ProductRepo) SaveStock(ctx context.Context, p domain.Product, prevQty int) error {
	res, err := r.db.ExecContext(ctx, `UPDATE products SET quantity = ?, status = ?, updated_at = ?
		WHERE id = ? AND quantity = ?`,
		p.Quantity, string(p.Status), database.FormatTime(database.Now()), p.ID, prevQty)
	if err != nil {
		return fmt.Errorf("update stock of %s: %w", p.ID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrStockConflict.Withf("stock of %q changed concurrently", p.Title)
	}
	return nil
}

func (r *ProductRepo) Get(ctx context.Context, id string) (domain.Product, error) {
	p, err := scanProduct(r.db.QueryRowContext(ctx, productSelect+` WHERE p.id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Product{}, app.ErrProductNotFound.Withf("product %s not found", id)
	}
	return p, err
}

func (r *ProductRepo) ListByStatus(ctx context.Context, status domain.Status, category domain.Category) ([]domain.Product, error) {
	q := productSelect + ` WHERE p.status = ?`
	args := []any{string(status)}
	if category != "" {
		q += ` AND p.category = ?`
		args = append(args, string(category))
	}
	q += ` ORDER BY p.created_at DESC, p.rowid DESC`
	return r.query(ctx, q, args...)
}

func (r *ProductRepo) ListByCollaborator(ctx context.Context, collaboratorID string) ([]domain.Product, error) {
	return r.query(ctx, productSelect+` WHERE p.collaborator_id = ? ORDER BY p.created_at DESC, p.rowid DESC`, collaboratorID)
}

func (r *ProductRepo) CountByCollaborator(ctx context.Context, collaboratorID string, status domain.Status) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM products WHERE collaborator_id = ? AND status = ?`,
		collaboratorID, string(status)).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count products: %w", err)
	}
	return n, nil
}

func (r *ProductRepo) List(ctx context.Context, f app.ListFilter) ([]domain.Product, string, error) {
	q := productSelect + ` WHERE p.status = ?`
	args := []any{string(domain.StatusAvailable)}

	if f.Query != "" {
		like := "%" + strings.ToLower(f.Query) + "%"
		q += ` AND (LOWER(p.title) LIKE ? OR LOWER(p.description) LIKE ?)`
		args = append(args, like, like)
	}
	if f.Category != "" {
		q += ` AND p.category = ?`
		args = append(args, string(f.Category))
	}
	if f.Cursor != "" {
		if _, err := uuid.Parse(f.Cursor); err != nil {
			return nil, "", apperr.Invalidf("invalid cursor")
		}
		q += ` AND p.id > ?`
		args = append(args, f.Cursor)
	}
	q += ` ORDER BY p.id LIMIT ?`
	args = append(args, f.Limit)

	out, err := r.query(ctx, q, args...)
	if err != nil {
		return nil, "", err
	}

	var next string
	if len(out) == f.Limit {
		next = out[len(out)-1].ID
	}
	return out, next, nil
}

func (r *ProductRepo) query(ctx context.Context, q string, args ...any) ([]domain.Product, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query products: %w", err)
	}
	defer rows.Close()

	var out []domain.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanProduct(s scanner) (domain.Product, error) {
	var (
		p                domain.Product
		price            string
		status, category string
		created, updated database.Timestamp
	)
	err := s.Scan(&p.ID, &p.CollaboratorID, &p.SellerName, &p.Title, &p.Description, &p.ImageURL,
		&price, &p.Quantity, &status, &category, &created, &updated)
	if err != nil {
		return domain.Product{}, err
	}

	p.Price, err = decimal.NewFromString(price)
	if err != nil {
		return domain.Product{}, fmt.Errorf("product %s price %q: %w", p.ID, price, err)
	}
	p.Status = domain.Status(status)
	p.Category = domain.Category(category)
	p.CreatedAt = created.Time
	p.UpdatedAt = updated.Time
	return p, nil
}
