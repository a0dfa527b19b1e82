// Package cartv1 defines the shop.cart.v1.CartService messages and
// descriptors.
package cartv1

import (
	"context"
	"time"

	"github.com/dwikikusuma/shop-backoffice/pkg/rpc"
	"github.com/shopspring/decimal"
	"google.golang.org/grpc"
)

const ServiceName = "shop.cart.v1.CartService"

// CartItem is priced at the product's current price.
type CartItem struct {
	ID            string          `json:"id"`
	ProductID     string          `json:"product_id"`
	ProductTitle  string          `json:"product_title"`
	ProductStatus string          `json:"product_status"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	Quantity      int             `json:"quantity"`
	SubTotal      decimal.Decimal `json:"sub_total"`
}

type Cart struct {
	ID          string          `json:"id"`
	CustomerID  string          `json:"customer_id"`
	Items       []CartItem      `json:"items"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

type AddItemRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

type SetItemQuantityRequest struct {
	ItemID   string `json:"item_id"`
	Quantity int    `json:"quantity"`
}

type ItemID struct {
	ItemID string `json:"item_id"`
}

type CartID struct {
	ID string `json:"id"`
}

type CartList struct {
	Carts []Cart `json:"carts"`
}

type CartServiceServer interface {
	GetCart(context.Context, *rpc.Empty) (*Cart, error)
	CreateCart(context.Context, *rpc.Empty) (*Cart, error)
	AddItem(context.Context, *AddItemRequest) (*Cart, error)
	SetItemQuantity(context.Context, *SetItemQuantityRequest) (*Cart, error)
	RemoveItem(context.Context, *ItemID) (*Cart, error)
	ClearCart(context.Context, *rpc.Empty) (*Cart, error)
	DeleteCart(context.Context, *CartID) (*rpc.Empty, error)
	ListCarts(context.Context, *rpc.Empty) (*CartList, error)
}

var CartServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*CartServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		rpc.Unary(ServiceName, "GetCart", CartServiceServer.GetCart),
		rpc.Unary(ServiceName, "CreateCart", CartServiceServer.CreateCart),
		rpc.Unary(ServiceName, "AddItem", CartServiceServer.AddItem),
		rpc.Unary(ServiceName, "SetItemQuantity", CartServiceServer.SetItemQuantity),
		rpc.Unary(ServiceName, "RemoveItem", CartServiceServer.RemoveItem),
		rpc.Unary(ServiceName, "ClearCart", CartServiceServer.ClearCart),
		rpc.Unary(ServiceName, "DeleteCart", CartServiceServer.DeleteCart),
		rpc.Unary(ServiceName, "ListCarts", CartServiceServer.ListCarts),
	},
	Metadata: "api/cart/v1/cart.go",
}

func RegisterCartServiceServer(s grpc.ServiceRegistrar, srv CartServiceServer) {
	s.RegisterService(&CartServiceDesc, srv)
}

type CartServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewCartServiceClient(cc grpc.ClientConnInterface) *CartServiceClient {
	return &CartServiceClient{cc: cc}
}

func (c *CartServiceClient) GetCart(ctx context.Context, in *rpc.Empty, opts ...grpc.CallOption) (*Cart, error) {
	return rpc.Invoke[Cart](ctx, c.cc, ServiceName, "GetCart", in, opts...)
}

func (c *CartServiceClient) CreateCart(ctx context.Context, in *rpc.Empty, opts ...grpc.CallOption) (*Cart, error) {
	return rpc.Invoke[Cart](ctx, c.cc, ServiceName, "CreateCart", in, opts...)
}

func (c *CartServiceClient) AddItem(ctx context.Context, in *AddItemRequest, opts ...grpc.CallOption) (*Cart, error) {
	return rpc.Invoke[Cart](ctx, c.cc, ServiceName, "AddItem", in, opts...)
}

func (c *CartServiceClient) SetItemQuantity(ctx context.Context, in *SetItemQuantityRequest, opts ...grpc.CallOption) (*Cart, error) {
	return rpc.Invoke[Cart](ctx, c.cc, ServiceName, "SetItemQuantity", in, opts...)
}

func (c *CartServiceClient) RemoveItem(ctx context.Context, in *ItemID, opts ...grpc.CallOption) (*Cart, error) {
	return rpc.Invoke[Cart](ctx, c.cc, ServiceName, "RemoveItem", in, opts...)
}

func (c *CartServiceClient) ClearCart(ctx context.Context, in *rpc.Empty, opts ...grpc.CallOption) (*Cart, error) {
	return rpc.Invoke[Cart](ctx, c.cc, ServiceName, "ClearCart", in, opts...)
}

func (c *CartServiceClient) DeleteCart(ctx context.Context, in *CartID, opts ...grpc.CallOption) (*rpc.Empty, error) {
	return rpc.Invoke[rpc.Empty](ctx, c.cc, ServiceName, "DeleteCart", in, opts...)
}

func (c *CartServiceClient) ListCarts(ctx context.Context, in *rpc.Empty, opts ...grpc.CallOption) (*CartList, error) {
	return rpc.Invoke[CartList](ctx, c.cc, ServiceName, "ListCarts", in, opts...)
}
