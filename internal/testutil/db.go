// Package testutil opens throwaway databases and seeds rows for tests.
package testutil

import (
	"context"
	"database/sql"
	"testing"

	"github.com/dwikikusuma/shop-backoffice/pkg/database"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OpenDB returns a migrated in-memory database closed at test cleanup.
func OpenDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := database.Open(context.Background(), ":memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

// SeedUser inserts an active user with the given role and returns its id.
func SeedUser(t *testing.T, db *sql.DB, name, email, role string) string {
	t.Helper()

	id := uuid.NewString()
	now := database.FormatTime(database.Now())
	_, err := db.Exec(`INSERT INTO users (id, name, email, password_hash, role, active, created_at, updated_at)
		VALUES (?, ?, ?, 'x', ?, 1, ?, ?)`, id, name, email, role, now, now)
	if err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return id
}

// Product describes a seeded product row.
type Product struct {
	CollaboratorID string
	Title          string
	Price          string
	Quantity       int
	Status         string
	Category       string
}

// SeedProduct inserts p and returns its id. Empty fields get defaults.
func SeedProduct(t *testing.T, db *sql.DB, p Product) string {
	t.Helper()

	if p.Title == "" {
		p.Title = "Product " + uuid.NewString()[:8]
	}
	if p.Price == "" {
		p.Price = "10"
	}
	if p.Status == "" {
		p.Status = "AVAILABLE"
	}
	if p.Category == "" {
		p.Category = "OTHER"
	}
	price, err := decimal.NewFromString(p.Price)
	if err != nil {
		t.Fatalf("seed product price: %v", err)
	}

	id := uuid.NewString()
	now := database.FormatTime(database.Now())
	_, err = db.Exec(`INSERT INTO products
		(id, collaborator_id, title, description, image_url, price, quantity, status, category, created_at, updated_at)
		VALUES (?, ?, ?, 'desc', 'https://img.example/p.png', ?, ?, ?, ?, ?, ?)`,
		id, p.CollaboratorID, p.Title, price.String(), p.Quantity, p.Status, p.Category, now, now)
	if err != nil {
		t.Fatalf("seed product: %v", err)
	}
	return id
}

// ProductStock reads a product's quantity and status.
func ProductStock(t *testing.T, db *sql.DB, id string) (int, string) {
	t.Helper()

	var qty int
	var status string
	if err := db.QueryRow(`SELECT quantity, status FROM products WHERE id = ?`, id).Scan(&qty, &status); err != nil {
		t.Fatalf("read product %s: %v", id, err)
	}
	return qty, status
}

// Count returns the number of rows in table.
func Count(t *testing.T, db *sql.DB, table string) int {
	t.Helper()

	var n int
	if err := db.QueryRow(`SELECT COUNT(*) FROM ` + table).Scan(&n); err != nil {
		t.Fatalf("count %s: %v", table, err)
	}
	return n
}
