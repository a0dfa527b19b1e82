package app

import (
	"context"
	"errors"

	"github.com/dwikikusuma/shop-backoffice/internal/auth"
	"github.com/dwikikusuma/shop-backoffice/pkg/apperr"
)

var (
	ErrCustomerNotFound     = apperr.New(apperr.KindNotFound, "CUSTOMER_NOT_FOUND", "customer not found")
	ErrCollaboratorNotFound = apperr.New(apperr.KindNotFound, "COLLABORATOR_NOT_FOUND", "collaborator not found")
)

// Resolver looks principals up by email. Admins resolve as collaborators.
type Resolver struct {
	repo UserRepo
}

func NewResolver(repo UserRepo) *Resolver {
	return &Resolver{repo: repo}
}

func (r *Resolver) Customer(ctx context.Context, p auth.Principal) (auth.Account, error) {
	return r.resolve(ctx, p, ErrCustomerNotFound, auth.RoleCustomer)
}

func (r *Resolver) Collaborator(ctx context.Context, p auth.Principal) (auth.Account, error) {
	return r.resolve(ctx, p, ErrCollaboratorNotFound, auth.RoleCollaborator, auth.RoleAdmin)
}

func (r *Resolver) resolve(ctx context.Context, p auth.Principal, notFound *apperr.Error, roles ...auth.Role) (auth.Account, error) {
	u, err := r.repo.GetByEmail(ctx, p.Email)
	if errors.Is(err, ErrUserNotFound) {
		return auth.Account{}, notFound.Withf("%s not found with email %s", roleNoun(roles[0]), p.Email)
	}
	if err != nil {
		return auth.Account{}, err
	}

	for _, role := range roles {
		if u.Role == role {
			return u.Account(), nil
		}
	}
	return auth.Account{}, notFound.Withf("%s not found with email %s", roleNoun(roles[0]), p.Email)
}

func roleNoun(r auth.Role) string {
	if r == auth.RoleCustomer {
		return "customer"
	}
	return "collaborator"
}
