package app

import (
	"context"
	"fmt"

	"github.com/dwikikusuma/shop-backoffice/internal/auth"
	"github.com/dwikikusuma/shop-backoffice/internal/checkout/domain"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// Quote prices the customer's cart without reserving anything. Lines that
// checkout would reject are reported, not failed.
func (s *Service) Quote(ctx context.Context, p auth.Principal) (domain.Quote, error) {
	items, err := s.cart.GetCart(ctx, p)
	if err != nil {
		return domain.Quote{}, err
	}

	if len(items) == 0 {
		return domain.Quote{}, ErrEmptyCart
	}

	lines := make([]domain.QuoteLine, len(items))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.maxConcurrent)

	for idx := range items {
		g.Go(func() error {
			it := items[idx]
			if it.Quantity <= 0 {
				return fmt.Errorf("quantity must be greater than zero: %d", it.Quantity)
			}

			product, err := s.catalog.GetProduct(gctx, it.ProductID)
			if err != nil {
				return fmt.Errorf("failed to get product %s: %w", it.ProductID, err)
			}

			lines[idx] = domain.QuoteLine{
				ProductID:   product.ID,
				Title:       product.Title,
				Quantity:    it.Quantity,
				Available:   product.Quantity,
				Purchasable: product.Purchasable,
				UnitPrice:   product.Price,
				LineTotal:   product.Price.Mul(decimal.NewFromInt(int64(it.Quantity))),
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return domain.Quote{}, err
	}

	total := decimal.Zero
	for _, line := range lines {
		total = total.Add(line.LineTotal)
	}

	return domain.Quote{Lines: lines, Total: total}, nil
}
