package main

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	catalogv1 "github.com/dwikikusuma/shop-backoffice/api/catalog/v1"
	"github.com/dwikikusuma/shop-backoffice/pkg/apperr"
	"github.com/dwikikusuma/shop-backoffice/pkg/logger"
	"github.com/dwikikusuma/shop-backoffice/pkg/rpc"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/test/bufconn"
)

// fakeCatalog serves a single product and echoes the caller's
// authorization header in its title.
type fakeCatalog struct{}

func (fakeCatalog) ListProducts(_ context.Context, req *catalogv1.ListProductsRequest) (*catalogv1.ProductList, error) {
	return &catalogv1.ProductList{Products: []catalogv1.Product{{ID: "p1", Category: req.Category}}}, nil
}

func (fakeCatalog) SearchProducts(_ context.Context, req *catalogv1.SearchProductsRequest) (*catalogv1.ProductList, error) {
	return &catalogv1.ProductList{NextCursor: req.Query}, nil
}

func (fakeCatalog) GetProduct(ctx context.Context, req *catalogv1.ProductID) (*catalogv1.Product, error) {
	if req.ID != "p1" {
		return nil, apperr.New(apperr.KindNotFound, "PRODUCT_NOT_FOUND", "product "+req.ID+" not found")
	}
	md, _ := metadata.FromIncomingContext(ctx)
	return &catalogv1.Product{ID: "p1", Title: strings.Join(md.Get("authorization"), ""), Price: decimal.RequireFromString("9.90")}, nil
}

func (fakeCatalog) CreateProduct(context.Context, *catalogv1.ProductInput) (*catalogv1.Product, error) {
	return nil, apperr.ErrBusinessRule
}

func (fakeCatalog) UpdateProduct(context.Context, *catalogv1.ProductInput) (*catalogv1.Product, error) {
	return nil, apperr.ErrBusinessRule
}

func (fakeCatalog) DiscontinueProduct(context.Context, *catalogv1.ProductID) (*catalogv1.Product, error) {
	return nil, apperr.ErrBusinessRule
}

func (fakeCatalog) ListMyProducts(context.Context, *rpc.Empty) (*catalogv1.ProductList, error) {
	return &catalogv1.ProductList{}, nil
}

func (fakeCatalog) ListInactiveProducts(context.Context, *rpc.Empty) (*catalogv1.ProductList, error) {
	return &catalogv1.ProductList{}, nil
}

func newTestGateway(t *testing.T) *httptest.Server {
	t.Helper()

	lis := bufconn.Listen(1 << 20)
	srv := rpc.NewServer(rpc.LoggingInterceptor(logger.Discard()))
	catalogv1.RegisterCatalogServiceServer(srv, fakeCatalog{})
	go func() { _ = srv.Serve(lis) }()
	t.Cleanup(srv.Stop)

	conn, err := rpc.Dial("passthrough:///bufnet", grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
		return lis.DialContext(ctx)
	}))
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	ts := httptest.NewServer(newGateway(conn, logger.Discard(), nil).routes())
	t.Cleanup(ts.Close)
	return ts
}

func TestGatewayForwards(t *testing.T) {
	ts := newTestGateway(t)

	t.Run("authorization reaches the api", func(t *testing.T) {
		req, _ := http.NewRequest(http.MethodGet, ts.URL+"/api/v1/products/p1", nil)
		req.Header.Set("Authorization", "Bearer abc")
		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()

		require.Equal(t, http.StatusOK, resp.StatusCode)
		var p catalogv1.Product
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&p))
		assert.Equal(t, "Bearer abc", p.Title)
		assert.True(t, decimal.RequireFromString("9.90").Equal(p.Price))
	})

	t.Run("query parameters are bound", func(t *testing.T) {
		resp, err := http.Get(ts.URL + "/api/v1/products?category=BOOKS")
		require.NoError(t, err)
		defer resp.Body.Close()

		var list catalogv1.ProductList
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&list))
		require.Len(t, list.Products, 1)
		assert.Equal(t, "BOOKS", list.Products[0].Category)
	})

	t.Run("application error code is surfaced", func(t *testing.T) {
		resp, err := http.Get(ts.URL + "/api/v1/products/zzz")
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		var body errorBody
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, "PRODUCT_NOT_FOUND", body.Code)
		assert.Equal(t, "product zzz not found", body.Message)
	})

	t.Run("bad query is rejected before the call", func(t *testing.T) {
		resp, err := http.Get(ts.URL + "/api/v1/products/search?limit=ten")
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("oversized body is rejected before the call", func(t *testing.T) {
		payload := `{"title":"` + strings.Repeat("x", maxBodyBytes) + `"}`
		resp, err := http.Post(ts.URL+"/api/v1/products", "application/json", strings.NewReader(payload))
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusRequestEntityTooLarge, resp.StatusCode)
		var body errorBody
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, "PAYLOAD_TOO_LARGE", body.Code)
	})

	t.Run("malformed body is a bad request", func(t *testing.T) {
		resp, err := http.Post(ts.URL+"/api/v1/products", "application/json", strings.NewReader(`{"title":`))
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("unregistered service is internal", func(t *testing.T) {
		resp, err := http.Get(ts.URL + "/api/v1/cart")
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	})

	t.Run("health", func(t *testing.T) {
		resp, err := http.Get(ts.URL + "/readyz")
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})
}
