package grpc

import (
	"context"

	orderv1 "github.com/dwikikusuma/shop-backoffice/api/order/v1"
	"github.com/dwikikusuma/shop-backoffice/internal/auth"
	"github.com/dwikikusuma/shop-backoffice/internal/order/app"
	"github.com/dwikikusuma/shop-backoffice/internal/order/domain"
	"github.com/dwikikusuma/shop-backoffice/pkg/rpc"
)

type Server struct {
	svc *app.Service
}

func NewServer(svc *app.Service) *Server {
	return &Server{svc: svc}
}

func (s *Server) GetOrder(ctx context.Context, req *orderv1.OrderID) (*orderv1.Order, error) {
	p, err := auth.MustPrincipal(ctx)
	if err != nil {
		return nil, err
	}
	o, err := s.svc.GetOrder(ctx, p, req.ID)
	if err != nil {
		return nil, err
	}
	return ToMessage(o), nil
}

func (s *Server) ListMyOrders(ctx context.Context, _ *rpc.Empty) (*orderv1.OrderList, error) {
	p, err := auth.MustPrincipal(ctx)
	if err != nil {
		return nil, err
	}
	orders, err := s.svc.ListMine(ctx, p)
	if err != nil {
		return nil, err
	}
	return toList(orders), nil
}

func (s *Server) ListOrders(ctx context.Context, _ *rpc.Empty) (*orderv1.OrderList, error) {
	orders, err := s.svc.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return toList(orders), nil
}

func (s *Server) ListSales(ctx context.Context, _ *rpc.Empty) (*orderv1.SaleList, error) {
	p, err := auth.MustPrincipal(ctx)
	if err != nil {
		return nil, err
	}
	sales, err := s.svc.ListSales(ctx, p)
	if err != nil {
		return nil, err
	}

	out := make([]orderv1.Sale, 0, len(sales))
	for _, sale := range sales {
		out = append(out, *toSale(sale))
	}
	return &orderv1.SaleList{Sales: out}, nil
}

func (s *Server) GetSale(ctx context.Context, req *orderv1.OrderID) (*orderv1.Sale, error) {
	p, err := auth.MustPrincipal(ctx)
	if err != nil {
		return nil, err
	}
	sale, err := s.svc.GetSale(ctx, p, req.ID)
	if err != nil {
		return nil, err
	}
	return toSale(sale), nil
}

// ToMessage converts an order for the wire. The checkout server reuses it.
func ToMessage(o domain.Order) *orderv1.Order {
	return &orderv1.Order{
		ID:           o.ID,
		CustomerID:   o.CustomerID,
		CustomerName: o.CustomerName,
		Status:       string(o.Status),
		Items:        toItems(o.Items),
		TotalAmount:  o.Total(),
		CreatedAt:    o.CreatedAt,
		UpdatedAt:    o.UpdatedAt,
	}
}

func toList(orders []domain.Order) *orderv1.OrderList {
	out := make([]orderv1.Order, 0, len(orders))
	for _, o := range orders {
		out = append(out, *ToMessage(o))
	}
	return &orderv1.OrderList{Orders: out}
}

func toSale(s domain.Sale) *orderv1.Sale {
	return &orderv1.Sale{
		OrderID:          s.OrderID,
		CustomerID:       s.CustomerID,
		CustomerName:     s.CustomerName,
		Status:           string(s.Status),
		MyItems:          toItems(s.Items),
		MyTotalAmount:    s.MyTotal,
		OrderTotalAmount: s.OrderTotal,
		CreatedAt:        s.CreatedAt,
		UpdatedAt:        s.UpdatedAt,
	}
}

func toItems(items []domain.Item) []orderv1.OrderItem {
	out := make([]orderv1.OrderItem, 0, len(items))
	for _, it := range items {
		out = append(out, orderv1.OrderItem{
			ID:           it.ID,
			ProductID:    it.ProductID,
			ProductTitle: it.ProductTitle,
			Quantity:     it.Quantity,
			UnitPrice:    it.UnitPrice,
			SubTotal:     it.SubTotal(),
		})
	}
	return out
}
