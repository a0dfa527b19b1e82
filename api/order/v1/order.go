// Package orderv1 defines the shop.order.v1.OrderService messages and
// descriptors.
package orderv1

import (
	"context"
	"time"

	"github.com/dwikikusuma/shop-backoffice/pkg/rpc"
	"github.com/shopspring/decimal"
	"google.golang.org/grpc"
)

const ServiceName = "shop.order.v1.OrderService"

// OrderItem carries the unit price frozen at checkout.
type OrderItem struct {
	ID           string          `json:"id"`
	ProductID    string          `json:"product_id"`
	ProductTitle string          `json:"product_title"`
	Quantity     int             `json:"quantity"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	SubTotal     decimal.Decimal `json:"sub_total"`
}

type Order struct {
	ID           string          `json:"id"`
	CustomerID   string          `json:"customer_id"`
	CustomerName string          `json:"customer_name"`
	Status       string          `json:"status"`
	Items        []OrderItem     `json:"items"`
	TotalAmount  decimal.Decimal `json:"total_amount"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

type OrderList struct {
	Orders []Order `json:"orders"`
}

// Sale is an order reduced to the calling collaborator's lines.
type Sale struct {
	OrderID          string          `json:"order_id"`
	CustomerID       string          `json:"customer_id"`
	CustomerName     string          `json:"customer_name"`
	Status           string          `json:"status"`
	MyItems          []OrderItem     `json:"my_items"`
	MyTotalAmount    decimal.Decimal `json:"my_total_amount"`
	OrderTotalAmount decimal.Decimal `json:"order_total_amount"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

type SaleList struct {
	Sales []Sale `json:"sales"`
}

type OrderID struct {
	ID string `json:"id"`
}

type OrderServiceServer interface {
	GetOrder(context.Context, *OrderID) (*Order, error)
	ListMyOrders(context.Context, *rpc.Empty) (*OrderList, error)
	ListOrders(context.Context, *rpc.Empty) (*OrderList, error)
	ListSales(context.Context, *rpc.Empty) (*SaleList, error)
	GetSale(context.Context, *OrderID) (*Sale, error)
}

var OrderServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*OrderServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		rpc.Unary(ServiceName, "GetOrder", OrderServiceServer.GetOrder),
		rpc.Unary(ServiceName, "ListMyOrders", OrderServiceServer.ListMyOrders),
		rpc.Unary(ServiceName, "ListOrders", OrderServiceServer.ListOrders),
		rpc.Unary(ServiceName, "ListSales", OrderServiceServer.ListSales),
		rpc.Unary(ServiceName, "GetSale", OrderServiceServer.GetSale),
	},
	Metadata: "api/order/v1/order.go",
}

func RegisterOrderServiceServer(s grpc.ServiceRegistrar, srv OrderServiceServer) {
	s.RegisterService(&OrderServiceDesc, srv)
}

type OrderServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewOrderServiceClient(cc grpc.ClientConnInterface) *OrderServiceClient {
	return &OrderServiceClient{cc: cc}
}

func (c *OrderServiceClient) GetOrder(ctx context.Context, in *OrderID, opts ...grpc.CallOption) (*Order, error) {
	return rpc.Invoke[Order](ctx, c.cc, ServiceName, "GetOrder", in, opts...)
}

func (c *OrderServiceClient) ListMyOrders(ctx context.Context, in *rpc.Empty, opts ...grpc.CallOption) (*OrderList, error) {
	return rpc.Invoke[OrderList](ctx, c.cc, ServiceName, "ListMyOrders", in, opts...)
}

func (c *OrderServiceClient) ListOrders(ctx context.Context, in *rpc.Empty, opts ...grpc.CallOption) (*OrderList, error) {
	return rpc.Invoke[OrderList](ctx, c.cc, ServiceName, "ListOrders", in, opts...)
}

func (c *OrderServiceClient) ListSales(ctx context.Context, in *rpc.Empty, opts ...grpc.CallOption) (*SaleList, error) {
	return rpc.Invoke[SaleList](ctx, c.cc, ServiceName, "ListSales", in, opts...)
}

func (c *OrderServiceClient) GetSale(ctx context.Context, in *OrderID, opts ...grpc.CallOption) (*Sale, error) {
	return rpc.Invoke[Sale](ctx, c.cc, ServiceName, "GetSale", in, opts...)
}
