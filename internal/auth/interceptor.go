package auth

import (
	"context"
	"slices"
	"strings"

	"github.com/dwikikusuma/shop-backoffice/pkg/apperr"
	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
)

// Rule gates one gRPC method. Public methods skip authentication; otherwise
// the caller's role must be in Roles, or any role when Roles is empty.
type Rule struct {
	Public bool
	Roles  []Role
}

// Policy maps full method names ("/shop.cart.v1.CartService/AddItem") to
// rules. Methods without a rule are denied.
type Policy map[string]Rule

func Public() Rule { return Rule{Public: true} }
func Authenticated() Rule { return Rule{} }
func Roles(roles ...Role) Rule { return Rule{Roles: roles} }

var ErrMethodNotAllowed = apperr.Forbiddenf("method not allowed")

// UnaryServerInterceptor authenticates the bearer token in the
// "authorization" metadata and enforces policy.
func UnaryServerInterceptor(authn Authenticator, policy Policy) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		rule, ok := policy[info.FullMethod]
		if !ok {
			return nil, ErrMethodNotAllowed
		}
		if rule.Public {
			return handler(ctx, req)
		}

		token := bearerToken(ctx)
		if token == "" {
			return nil, ErrNoPrincipal
		}

		p, err := authn.Authenticate(ctx, token)
		if err != nil {
			return nil, err
		}

		if len(rule.Roles) > 0 && !slices.Contains(rule.Roles, p.Role) {
			return nil, apperr.Forbiddenf("role %s may not call %s", p.Role, info.FullMethod)
		}

		return handler(WithPrincipal(ctx, p), req)
	}
}

func bearerToken(ctx context.Context) string {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return ""
	}
	v := md.Get("authorization")
	if len(v) == 0 {
		return ""
	}
	h := strings.TrimSpace(v[0])
	if len(h) > 7 && strings.EqualFold(h[:7], "bearer ") {
		return strings.TrimSpace(h[7:])
	}
	return ""
}
