// Package catalogv1 defines the shop.catalog.v1.CatalogService messages
// and descriptors.
package catalogv1

import (
	"context"
	"time"

	"github.com/dwikikusuma/shop-backoffice/pkg/rpc"
	"github.com/shopspring/decimal"
	"google.golang.org/grpc"
)

const ServiceName = "shop.catalog.v1.CatalogService"

type Product struct {
	ID             string          `json:"id"`
	CollaboratorID string          `json:"collaborator_id"`
	SellerName     string          `json:"seller_name"`
	Title          string          `json:"title"`
	Description    string          `json:"description"`
	ImageURL       string          `json:"image_url"`
	Price          decimal.Decimal `json:"price"`
	Quantity       int             `json:"quantity"`
	Status         string          `json:"status"`
	Category       string          `json:"category"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// ProductInput carries every editable field; ID is ignored on create.
type ProductInput struct {
	ID          string          `json:"id,omitempty"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	ImageURL    string          `json:"image_url"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity"`
	Status      string          `json:"status"`
	Category    string          `json:"category"`
}

type ProductID struct {
	ID string `json:"id"`
}

type ListProductsRequest struct {
	Category string `json:"category,omitempty"`
}

type SearchProductsRequest struct {
	Query    string `json:"query,omitempty"`
	Category string `json:"category,omitempty"`
	Limit    int    `json:"limit,omitempty"`
	Cursor   string `json:"cursor,omitempty"`
}

type ProductList struct {
	Products   []Product `json:"products"`
	NextCursor string    `json:"next_cursor,omitempty"`
}

type CatalogServiceServer interface {
	ListProducts(context.Context, *ListProductsRequest) (*ProductList, error)
	SearchProducts(context.Context, *SearchProductsRequest) (*ProductList, error)
	GetProduct(context.Context, *ProductID) (*Product, error)
	CreateProduct(context.Context, *ProductInput) (*Product, error)
	UpdateProduct(context.Context, *ProductInput) (*Product, error)
	DiscontinueProduct(context.Context, *ProductID) (*Product, error)
	ListMyProducts(context.Context, *rpc.Empty) (*ProductList, error)
	ListInactiveProducts(context.Context, *rpc.Empty) (*ProductList, error)
}

var CatalogServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*CatalogServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		rpc.Unary(ServiceName, "ListProducts", CatalogServiceServer.ListProducts),
		rpc.Unary(ServiceName, "SearchProducts", CatalogServiceServer.SearchProducts),
		rpc.Unary(ServiceName, "GetProduct", CatalogServiceServer.GetProduct),
		rpc.Unary(ServiceName, "CreateProduct", CatalogServiceServer.CreateProduct),
		rpc.Unary(ServiceName, "UpdateProduct", CatalogServiceServer.UpdateProduct),
		rpc.Unary(ServiceName, "DiscontinueProduct", CatalogServiceServer.DiscontinueProduct),
		rpc.Unary(ServiceName, "ListMyProducts", CatalogServiceServer.ListMyProducts),
		rpc.Unary(ServiceName, "ListInactiveProducts", CatalogServiceServer.ListInactiveProducts),
	},
	Metadata: "api/catalog/v1/catalog.go",
}

func RegisterCatalogServiceServer(s grpc.ServiceRegistrar, srv CatalogServiceServer) {
	s.RegisterService(&CatalogServiceDesc, srv)
}

type CatalogServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewCatalogServiceClient(cc grpc.ClientConnInterface) *CatalogServiceClient {
	return &CatalogServiceClient{cc: cc}
}

func (c *CatalogServiceClient) ListProducts(ctx context.Context, in *ListProductsRequest, opts ...grpc.CallOption) (*ProductList, error) {
	return rpc.Invoke[ProductList](ctx, c.cc, ServiceName, "ListProducts", in, opts...)
}

func (c *CatalogServiceClient) SearchProducts(ctx context.Context, in *SearchProductsRequest, opts ...grpc.CallOption) (*ProductList, error) {
	return rpc.Invoke[ProductList](ctx, c.cc, ServiceName, "SearchProducts", in, opts...)
}

func (c *CatalogServiceClient) GetProduct(ctx context.Context, in *ProductID, opts ...grpc.CallOption) (*Product, error) {
	return rpc.Invoke[Product](ctx, c.cc, ServiceName, "GetProduct", in, opts...)
}

func (c *CatalogServiceClient) CreateProduct(ctx context.Context, in *ProductInput, opts ...grpc.CallOption) (*Product, error) {
	return rpc.Invoke[Product](ctx, c.cc, ServiceName, "CreateProduct", in, opts...)
}

func (c *CatalogServiceClient) UpdateProduct(ctx context.Context, in *ProductInput, opts ...grpc.CallOption) (*Product, error) {
	return rpc.Invoke[Product](ctx, c.cc, ServiceName, "UpdateProduct", in, opts...)
}

func (c *CatalogServiceClient) DiscontinueProduct(ctx context.Context, in *ProductID, opts ...grpc.CallOption) (*Product, error) {
	return rpc.Invoke[Product](ctx, c.cc, ServiceName, "DiscontinueProduct", in, opts...)
}

func (c *CatalogServiceClient) ListMyProducts(ctx context.Context, in *rpc.Empty, opts ...grpc.CallOption) (*ProductList, error) {
	return rpc.Invoke[ProductList](ctx, c.cc, ServiceName, "ListMyProducts", in, opts...)
}

func (c *CatalogServiceClient) ListInactiveProducts(ctx context.Context, in *rpc.Empty, opts ...grpc.CallOption) (*ProductList, error) {
	return rpc.Invoke[ProductList](ctx, c.cc, ServiceName, "ListInactiveProducts", in, opts...)
}
