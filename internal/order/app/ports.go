package app

import (
	"context"

	"github.com/dwikikusuma/shop-backoffice/internal/order/domain"
)

type OrderRepo interface {
	Get(ctx context.Context, id string) (domain.Order, error)
	ListByCustomer(ctx context.Context, customerID string) ([]domain.Order, error)
	ListAll(ctx context.Context) ([]domain.Order, error)
	ListByCollaborator(ctx context.Context, collaboratorID string) ([]domain.Order, error)
}
