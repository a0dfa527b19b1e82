// Package checkoutv1 defines the shop.checkout.v1.CheckoutService messages
// and descriptors. Order results reuse orderv1.Order.
package checkoutv1

import (
	"context"

	orderv1 "github.com/dwikikusuma/shop-backoffice/api/order/v1"
	"github.com/dwikikusuma/shop-backoffice/pkg/rpc"
	"github.com/shopspring/decimal"
	"google.golang.org/grpc"
)

const ServiceName = "shop.checkout.v1.CheckoutService"

type QuoteLine struct {
	ProductID string          `json:"product_id"`
	Title     string          `json:"title"`
	Quantity  int             `json:"quantity"`
	Available int             `json:"available"`
	InStock   bool            `json:"in_stock"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	LineTotal decimal.Decimal `json:"line_total"`
}

type QuoteResponse struct {
	Lines []QuoteLine     `json:"lines"`
	Total decimal.Decimal `json:"total"`
	Ready bool            `json:"ready"`
}

type CancelOrderRequest struct {
	OrderID string `json:"order_id"`
}

type UpdateOrderStatusRequest struct {
	OrderID string `json:"order_id"`
	Status  string `json:"status"`
}

type CheckoutServiceServer interface {
	Quote(context.Context, *rpc.Empty) (*QuoteResponse, error)
	Checkout(context.Context, *rpc.Empty) (*orderv1.Order, error)
	CancelOrder(context.Context, *CancelOrderRequest) (*orderv1.Order, error)
	UpdateOrderStatus(context.Context, *UpdateOrderStatusRequest) (*orderv1.Order, error)
}

var CheckoutServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*CheckoutServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		rpc.Unary(ServiceName, "Quote", CheckoutServiceServer.Quote),
		rpc.Unary(ServiceName, "Checkout", CheckoutServiceServer.Checkout),
		rpc.Unary(ServiceName, "CancelOrder", CheckoutServiceServer.CancelOrder),
		rpc.Unary(ServiceName, "UpdateOrderStatus", CheckoutServiceServer.UpdateOrderStatus),
	},
	Metadata: "api/checkout/v1/checkout.go",
}

func RegisterCheckoutServiceServer(s grpc.ServiceRegistrar, srv CheckoutServiceServer) {
	s.RegisterService(&CheckoutServiceDesc, srv)
}

type CheckoutServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewCheckoutServiceClient(cc grpc.ClientConnInterface) *CheckoutServiceClient {
	return &CheckoutServiceClient{cc: cc}
}

func (c *CheckoutServiceClient) Quote(ctx context.Context, in *rpc.Empty, opts ...grpc.CallOption) (*QuoteResponse, error) {
	return rpc.Invoke[QuoteResponse](ctx, c.cc, ServiceName, "Quote", in, opts...)
}

func (c *CheckoutServiceClient) Checkout(ctx context.Context, in *rpc.Empty, opts ...grpc.CallOption) (*orderv1.Order, error) {
	return rpc.Invoke[orderv1.Order](ctx, c.cc, ServiceName, "Checkout", in, opts...)
}

func (c *CheckoutServiceClient) CancelOrder(ctx context.Context, in *CancelOrderRequest, opts ...grpc.CallOption) (*orderv1.Order, error) {
	return rpc.Invoke[orderv1.Order](ctx, c.cc, ServiceName, "CancelOrder", in, opts...)
}

func (c *CheckoutServiceClient) UpdateOrderStatus(ctx context.Context, in *UpdateOrderStatusRequest, opts ...grpc.CallOption) (*orderv1.Order, error) {
	return rpc.Invoke[orderv1.Order](ctx, c.cc, ServiceName, "UpdateOrderStatus", in, opts...)
}
