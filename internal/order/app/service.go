package app

import (
	"context"

	"github.com/dwikikusuma/shop-backoffice/internal/auth"
	"github.com/dwikikusuma/shop-backoffice/internal/order/domain"
	"github.com/dwikikusuma/shop-backoffice/pkg/apperr"
)

var ErrNotYourSale = apperr.New(apperr.KindBusinessRule, "NOT_YOUR_SALE", "order has none of your products")

// Service answers order queries. Mutations live in the checkout service.
type Service struct {
	repo     OrderRepo
	identity auth.Resolver
}

func NewService(repo OrderRepo, identity auth.Resolver) *Service {
	return &Service{repo: repo, identity: identity}
}

func (s *Service) GetOrder(ctx context.Context, p auth.Principal, id string) (domain.Order, error) {
	c, err := s.identity.Customer(ctx, p)
	if err != nil {
		return domain.Order{}, err
	}

	o, err := s.repo.Get(ctx, id)
	if err != nil {
		return domain.Order{}, err
	}
	if o.CustomerID != c.ID {
		return domain.Order{}, domain.ErrNotOrderOwner
	}
	return o, nil
}

// ListMine returns the customer's orders, newest first.
func (s *Service) ListMine(ctx context.Context, p auth.Principal) ([]domain.Order, error) {
	c, err := s.identity.Customer(ctx, p)
	if err != nil {
		return nil, err
	}
	return s.repo.ListByCustomer(ctx, c.ID)
}

func (s *Service) ListAll(ctx context.Context) ([]domain.Order, error) {
	return s.repo.ListAll(ctx)
}

// ListSales returns every order with at least one of the collaborator's
// products, reduced to those lines.
func (s *Service) ListSales(ctx context.Context, p auth.Principal) ([]domain.Sale, error) {
	c, err := s.identity.Collaborator(ctx, p)
	if err != nil {
		return nil, err
	}

	orders, err := s.repo.ListByCollaborator(ctx, c.ID)
	if err != nil {
		return nil, err
	}

	sales := make([]domain.Sale, 0, len(orders))
	for _, o := range orders {
		if sale, ok := o.SaleFor(c.ID); ok {
			sales = append(sales, sale)
		}
	}
	return sales, nil
}

func (s *Service) GetSale(ctx context.Context, p auth.Principal, orderID string) (domain.Sale, error) {
	c, err := s.identity.Collaborator(ctx, p)
	if err != nil {
		return domain.Sale{}, err
	}

	o, err := s.repo.Get(ctx, orderID)
	if err != nil {
		return domain.Sale{}, err
	}

	sale, ok := o.SaleFor(c.ID)
	if !ok {
		return domain.Sale{}, ErrNotYourSale
	}
	return sale, nil
}
