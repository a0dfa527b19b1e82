// Package auth carries the authenticated principal through request
// contexts and gates gRPC methods by role.
package auth

import (
	"context"
	"fmt"
	"strings"

	"github.com/dwikikusuma/shop-backoffice/pkg/apperr"
)

type Role string

const (
	RoleCustomer     Role = "CUSTOMER"
	RoleCollaborator Role = "COLLABORATOR"
	RoleAdmin        Role = "ADMIN"
)

func ParseRole(s string) (Role, error) {
	switch r := Role(strings.ToUpper(strings.TrimSpace(s))); r {
	case RoleCustomer, RoleCollaborator, RoleAdmin:
		return r, nil
	default:
		return "", apperr.Invalidf("unknown role %q", s)
	}
}

// Principal is the identity proven by an access token.
type Principal struct {
	UserID string
	Email  string
	Role   Role
}

// Account is the domain record a principal resolves to.
type Account struct {
	ID    string
	Name  string
	Email string
	Role  Role
}

// Authenticator verifies an access token.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (Principal, error)
}

// Resolver maps a principal to its customer or collaborator record. Both
// fail with a not-found error when the principal's email has no matching
// record of that role.
type Resolver interface {
	Customer(ctx context.Context, p Principal) (Account, error)
	Collaborator(ctx context.Context, p Principal) (Account, error)
}

var ErrNoPrincipal = apperr.New(apperr.KindUnauthenticated, "NO_PRINCIPAL", "authentication required")

type principalKey struct{}

func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

func PrincipalFromContext(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(Principal)
	return p, ok
}

// MustPrincipal returns the principal stored in ctx or ErrNoPrincipal.
func MustPrincipal(ctx context.Context) (Principal, error) {
	p, ok := PrincipalFromContext(ctx)
	if !ok {
		return Principal{}, ErrNoPrincipal
	}
	return p, nil
}

func (p Principal) String() string {
	return fmt.Sprintf("%s(%s)", p.Email, p.Role)
}
