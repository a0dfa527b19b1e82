package grpc

import (
	"context"

	cartv1 "github.com/dwikikusuma/shop-backoffice/api/cart/v1"
	"github.com/dwikikusuma/shop-backoffice/internal/auth"
	"github.com/dwikikusuma/shop-backoffice/internal/cart/app"
	"github.com/dwikikusuma/shop-backoffice/internal/cart/domain"
	"github.com/dwikikusuma/shop-backoffice/pkg/rpc"
)

type Server struct {
	svc *app.Service
}

func NewServer(svc *app.Service) *Server {
	return &Server{svc: svc}
}

// mine runs fn with the caller's principal and converts the cart it
// returns.
func (s *Server) mine(ctx context.Context, fn func(auth.Principal) (domain.Cart, error)) (*cartv1.Cart, error) {
	p, err := auth.MustPrincipal(ctx)
	if err != nil {
		return nil, err
	}
	cart, err := fn(p)
	if err != nil {
		return nil, err
	}
	return toMessage(cart), nil
}

func (s *Server) GetCart(ctx context.Context, _ *rpc.Empty) (*cartv1.Cart, error) {
	return s.mine(ctx, func(p auth.Principal) (domain.Cart, error) {
		return s.svc.GetMine(ctx, p)
	})
}

func (s *Server) CreateCart(ctx context.Context, _ *rpc.Empty) (*cartv1.Cart, error) {
	return s.mine(ctx, func(p auth.Principal) (domain.Cart, error) {
		return s.svc.CreateCart(ctx, p)
	})
}

func (s *Server) AddItem(ctx context.Context, req *cartv1.AddItemRequest) (*cartv1.Cart, error) {
	return s.mine(ctx, func(p auth.Principal) (domain.Cart, error) {
		return s.svc.AddItem(ctx, p, req.ProductID, req.Quantity)
	})
}

func (s *Server) SetItemQuantity(ctx context.Context, req *cartv1.SetItemQuantityRequest) (*cartv1.Cart, error) {
	return s.mine(ctx, func(p auth.Principal) (domain.Cart, error) {
		return s.svc.SetItemQuantity(ctx, p, req.ItemID, req.Quantity)
	})
}

func (s *Server) RemoveItem(ctx context.Context, req *cartv1.ItemID) (*cartv1.Cart, error) {
	return s.mine(ctx, func(p auth.Principal) (domain.Cart, error) {
		return s.svc.RemoveItem(ctx, p, req.ItemID)
	})
}

func (s *Server) ClearCart(ctx context.Context, _ *rpc.Empty) (*cartv1.Cart, error) {
	return s.mine(ctx, func(p auth.Principal) (domain.Cart, error) {
		return s.svc.ClearCart(ctx, p)
	})
}

func (s *Server) DeleteCart(ctx context.Context, req *cartv1.CartID) (*rpc.Empty, error) {
	p, err := auth.MustPrincipal(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.svc.DeleteCart(ctx, p, req.ID); err != nil {
		return nil, err
	}
	return &rpc.Empty{}, nil
}

func (s *Server) ListCarts(ctx context.Context, _ *rpc.Empty) (*cartv1.CartList, error) {
	carts, err := s.svc.ListCarts(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]cartv1.Cart, 0, len(carts))
	for _, c := range carts {
		out = append(out, *toMessage(c))
	}
	return &cartv1.CartList{Carts: out}, nil
}

func toMessage(c domain.Cart) *cartv1.Cart {
	items := make([]cartv1.CartItem, 0, len(c.Items))
	for _, it := range c.Items {
		items = append(items, cartv1.CartItem{
			ID:            it.ID,
			ProductID:     it.ProductID,
			ProductTitle:  it.ProductTitle,
			ProductStatus: it.ProductStatus,
			UnitPrice:     it.UnitPrice,
			Quantity:      it.Quantity,
			SubTotal:      it.SubTotal(),
		})
	}

	return &cartv1.Cart{
		ID:          c.ID,
		CustomerID:  c.CustomerID,
		Items:       items,
		TotalAmount: c.Total(),
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}
