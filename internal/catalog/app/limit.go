package app

import (
	"context"

	"github.com/dwikikusuma/shop-backoffice/internal/catalog/domain"
	"github.com/dwikikusuma/shop-backoffice/pkg/apperr"
)

const DefaultProductLimit = 10

var ErrLimitExceeded = apperr.New(apperr.KindBusinessRule, "LIMIT_EXCEEDED", "product limit reached")

// ValidateProductLimit fails when the collaborator already has the maximum
// number of AVAILABLE products. Other statuses do not count.
func (s *Service) ValidateProductLimit(ctx context.Context, collaboratorID string) error {
	n, err := s.repo.CountByCollaborator(ctx, collaboratorID, domain.StatusAvailable)
	if err != nil {
		return err
	}
	if n >= s.limit {
		return ErrLimitExceeded.Withf("collaborator has reached the limit of %d active products", s.limit)
	}
	return nil
}
