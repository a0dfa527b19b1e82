package app

import (
	"context"

	"github.com/dwikikusuma/shop-backoffice/internal/catalog/domain"
)

type ProductRepo interface {
	Create(ctx context.Context, p domain.Product) (domain.Product, error)
	Update(ctx context.Context, p domain.Product) (domain.Product, error)
	Get(ctx context.Context, id string) (domain.Product, error)
	ListByStatus(ctx context.Context, status domain.Status, category domain.Category) ([]domain.Product, error)
	ListByCollaborator(ctx context.Context, collaboratorID string) ([]domain.Product, error)
	CountByCollaborator(ctx context.Context, collaboratorID string, status domain.Status) (int, error)
	List(ctx context.Context, f ListFilter) ([]domain.Product, string, error)
}

// ListFilter pages through purchasable products ordered by id. Cursor is
// the last id of the previous page.
type ListFilter struct {
	Query    string
	Category domain.Category
	Limit    int
	Cursor   string
}
