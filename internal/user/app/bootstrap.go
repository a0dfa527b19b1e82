package app

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/dwikikusuma/shop-backoffice/internal/auth"
	"github.com/dwikikusuma/shop-backoffice/internal/user/domain"
)

// EnsureAdmin creates the configured admin account, or reactivates it when
// it exists but was deactivated.
func (s *Service) EnsureAdmin(ctx context.Context, log *slog.Logger, email, password string) (domain.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	u, err := s.repo.GetByEmail(ctx, email)
	switch {
	case err == nil:
		if u.Active {
			log.Info("admin already present", slog.String("email", email))
			return u, nil
		}
		u.Active = true
		u, err = s.repo.Update(ctx, u)
		if err != nil {
			return domain.User{}, err
		}
		log.Info("admin reactivated", slog.String("email", email))
		return u, nil
	case !errors.Is(err, ErrUserNotFound):
		return domain.User{}, err
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return domain.User{}, err
	}

	u, err = s.repo.Create(ctx, domain.User{
		Name:         "System Admin",
		Email:        email,
		PasswordHash: hash,
		Role:         auth.RoleAdmin,
		Active:       true,
	})
	if err != nil {
		return domain.User{}, err
	}

	log.Info("admin created", slog.String("email", email))
	return u, nil
}
