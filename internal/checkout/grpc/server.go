package grpc

import (
	"context"

	checkoutv1 "github.com/dwikikusuma/shop-backoffice/api/checkout/v1"
	orderv1 "github.com/dwikikusuma/shop-backoffice/api/order/v1"
	"github.com/dwikikusuma/shop-backoffice/internal/auth"
	"github.com/dwikikusuma/shop-backoffice/internal/checkout/app"
	"github.com/dwikikusuma/shop-backoffice/internal/checkout/domain"
	ordergrpc "github.com/dwikikusuma/shop-backoffice/internal/order/grpc"
	"github.com/dwikikusuma/shop-backoffice/pkg/apperr"
	"github.com/dwikikusuma/shop-backoffice/pkg/rpc"
)

type Server struct {
	svc *app.Service
}

func NewServer(svc *app.Service) *Server {
	return &Server{svc: svc}
}

func (s *Server) Quote(ctx context.Context, _ *rpc.Empty) (*checkoutv1.QuoteResponse, error) {
	p, err := auth.MustPrincipal(ctx)
	if err != nil {
		return nil, err
	}
	q, err := s.svc.Quote(ctx, p)
	if err != nil {
		return nil, err
	}
	return toMessage(q), nil
}

func (s *Server) Checkout(ctx context.Context, _ *rpc.Empty) (*orderv1.Order, error) {
	p, err := auth.MustPrincipal(ctx)
	if err != nil {
		return nil, err
	}
	o, err := s.svc.Checkout(ctx, p)
	if err != nil {
		return nil, err
	}
	return ordergrpc.ToMessage(o), nil
}

func (s *Server) CancelOrder(ctx context.Context, req *checkoutv1.CancelOrderRequest) (*orderv1.Order, error) {
	p, err := auth.MustPrincipal(ctx)
	if err != nil {
		return nil, err
	}
	if req.OrderID == "" {
		return nil, apperr.Invalidf("order_id is required")
	}
	o, err := s.svc.CancelOrder(ctx, p, req.OrderID)
	if err != nil {
		return nil, err
	}
	return ordergrpc.ToMessage(o), nil
}

func (s *Server) UpdateOrderStatus(ctx context.Context, req *checkoutv1.UpdateOrderStatusRequest) (*orderv1.Order, error) {
	if req.OrderID == "" {
		return nil, apperr.Invalidf("order_id is required")
	}
	o, err := s.svc.UpdateOrderStatus(ctx, req.OrderID, req.Status)
	if err != nil {
		return nil, err
	}
	return ordergrpc.ToMessage(o), nil
}

func toMessage(q domain.Quote) *checkoutv1.QuoteResponse {
	lines := make([]checkoutv1.QuoteLine, 0, len(q.Lines))
	for _, ln := range q.Lines {
		lines = append(lines, checkoutv1.QuoteLine{
			ProductID: ln.ProductID,
			Title:     ln.Title,
			Quantity:  ln.Quantity,
			Available: ln.Available,
			InStock:   ln.InStock(),
			UnitPrice: ln.UnitPrice,
			LineTotal: ln.LineTotal,
		})
	}

	return &checkoutv1.QuoteResponse{
		Lines: lines,
		Total: q.Total,
		Ready: q.Ready(),
	}
}
