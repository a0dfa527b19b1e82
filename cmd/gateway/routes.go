package main

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	cartv1 "github.com/dwikikusuma/shop-backoffice/api/cart/v1"
	catalogv1 "github.com/dwikikusuma/shop-backoffice/api/catalog/v1"
	checkoutv1 "github.com/dwikikusuma/shop-backoffice/api/checkout/v1"
	orderv1 "github.com/dwikikusuma/shop-backoffice/api/order/v1"
	userv1 "github.com/dwikikusuma/shop-backoffice/api/user/v1"
	"github.com/dwikikusuma/shop-backoffice/pkg/rpc"
	"github.com/google/uuid"
	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
)

const (
	callTimeout  = 10 * time.Second
	maxBodyBytes = 1 << 20
)

type gateway struct {
	log   *slog.Logger
	ready func() bool

	users    *userv1.UserServiceClient
	catalog  *catalogv1.CatalogServiceClient
	carts    *cartv1.CartServiceClient
	checkout *checkoutv1.CheckoutServiceClient
	orders   *orderv1.OrderServiceClient
}

func newGateway(cc grpc.ClientConnInterface, log *slog.Logger, ready func() bool) *gateway {
	return &gateway{
		log:      log,
		ready:    ready,
		users:    userv1.NewUserServiceClient(cc),
		catalog:  catalogv1.NewCatalogServiceClient(cc),
		carts:    cartv1.NewCartServiceClient(cc),
		checkout: checkoutv1.NewCheckoutServiceClient(cc),
		orders:   orderv1.NewOrderServiceClient(cc),
	}
}

func (g *gateway) routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })
	mux.HandleFunc("GET /readyz", func(w http.ResponseWriter, r *http.Request) {
		if g.ready != nil && !g.ready() {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	})

	// users
	mux.Handle("POST /api/v1/auth/register", forward(g, http.StatusCreated, body[userv1.RegisterRequest], g.users.Register))
	mux.Handle("POST /api/v1/auth/login", forward(g, http.StatusOK, body[userv1.LoginRequest], g.users.Login))
	mux.Handle("GET /api/v1/me", forward(g, http.StatusOK, nil, g.users.Me))
	mux.Handle("POST /api/v1/users/collaborators", forward(g, http.StatusCreated, body[userv1.RegisterRequest], g.users.CreateCollaborator))
	mux.Handle("GET /api/v1/users", forward(g, http.StatusOK, bindListUsers, g.users.ListUsers))
	mux.Handle("GET /api/v1/users/{id}", forward(g, http.StatusOK, func(r *http.Request, in *userv1.UserID) error {
		in.ID = r.PathValue("id")
		return nil
	}, g.users.GetUser))
	mux.Handle("PUT /api/v1/users/{id}", forward(g, http.StatusOK, func(r *http.Request, in *userv1.UpdateUserRequest) error {
		err := decode(r, in)
		in.ID = r.PathValue("id")
		return err
	}, g.users.UpdateUser))
	mux.Handle("PATCH /api/v1/users/{id}/active", forward(g, http.StatusOK, func(r *http.Request, in *userv1.SetActiveRequest) error {
		err := decode(r, in)
		in.ID = r.PathValue("id")
		return err
	}, g.users.SetActive))
	mux.Handle("DELETE /api/v1/users/{id}", forward(g, http.StatusNoContent, func(r *http.Request, in *userv1.UserID) error {
		in.ID = r.PathValue("id")
		return nil
	}, g.users.DeleteUser))

	// catalog
	mux.Handle("GET /api/v1/products", forward(g, http.StatusOK, func(r *http.Request, in *catalogv1.ListProductsRequest) error {
		in.Category = r.URL.Query().Get("category")
		return nil
	}, g.catalog.ListProducts))
	mux.Handle("GET /api/v1/products/search", forward(g, http.StatusOK, bindSearch, g.catalog.SearchProducts))
	mux.Handle("GET /api/v1/products/mine", forward(g, http.StatusOK, nil, g.catalog.ListMyProducts))
	mux.Handle("GET /api/v1/products/inactive", forward(g, http.StatusOK, nil, g.catalog.ListInactiveProducts))
	mux.Handle("GET /api/v1/products/{id}", forward(g, http.StatusOK, productID, g.catalog.GetProduct))
	mux.Handle("POST /api/v1/products", forward(g, http.StatusCreated, body[catalogv1.ProductInput], g.catalog.CreateProduct))
	mux.Handle("PUT /api/v1/products/{id}", forward(g, http.StatusOK, func(r *http.Request, in *catalogv1.ProductInput) error {
		err := decode(r, in)
		in.ID = r.PathValue("id")
		return err
	}, g.catalog.UpdateProduct))
	mux.Handle("DELETE /api/v1/products/{id}", forward(g, http.StatusOK, productID, g.catalog.DiscontinueProduct))

	// cart
	mux.Handle("GET /api/v1/cart", forward(g, http.StatusOK, nil, g.carts.GetCart))
	mux.Handle("POST /api/v1/cart", forward(g, http.StatusCreated, nil, g.carts.CreateCart))
	mux.Handle("POST /api/v1/cart/items", forward(g, http.StatusOK, body[cartv1.AddItemRequest], g.carts.AddItem))
	mux.Handle("PUT /api/v1/cart/items/{itemID}", forward(g, http.StatusOK, func(r *http.Request, in *cartv1.SetItemQuantityRequest) error {
		err := decode(r, in)
		in.ItemID = r.PathValue("itemID")
		return err
	}, g.carts.SetItemQuantity))
	mux.Handle("DELETE /api/v1/cart/items/{itemID}", forward(g, http.StatusOK, func(r *http.Request, in *cartv1.ItemID) error {
		in.ItemID = r.PathValue("itemID")
		return nil
	}, g.carts.RemoveItem))
	mux.Handle("DELETE /api/v1/cart/items", forward(g, http.StatusOK, nil, g.carts.ClearCart))
	mux.Handle("GET /api/v1/carts", forward(g, http.StatusOK, nil, g.carts.ListCarts))
	mux.Handle("DELETE /api/v1/carts/{id}", forward(g, http.StatusNoContent, func(r *http.Request, in *cartv1.CartID) error {
		in.ID = r.PathValue("id")
		return nil
	}, g.carts.DeleteCart))

	// checkout
	mux.Handle("GET /api/v1/checkout/quote", forward(g, http.StatusOK, nil, g.checkout.Quote))
	mux.Handle("POST /api/v1/checkout", forward(g, http.StatusCreated, nil, g.checkout.Checkout))
	mux.Handle("POST /api/v1/orders/{id}/cancel", forward(g, http.StatusOK, func(r *http.Request, in *checkoutv1.CancelOrderRequest) error {
		in.OrderID = r.PathValue("id")
		return nil
	}, g.checkout.CancelOrder))
	mux.Handle("PATCH /api/v1/orders/{id}/status", forward(g, http.StatusOK, func(r *http.Request, in *checkoutv1.UpdateOrderStatusRequest) error {
		err := decode(r, in)
		in.OrderID = r.PathValue("id")
		return err
	}, g.checkout.UpdateOrderStatus))

	// orders
	mux.Handle("GET /api/v1/orders", forward(g, http.StatusOK, nil, g.orders.ListOrders))
	mux.Handle("GET /api/v1/orders/mine", forward(g, http.StatusOK, nil, g.orders.ListMyOrders))
	mux.Handle("GET /api/v1/orders/{id}", forward(g, http.StatusOK, orderID, g.orders.GetOrder))
	mux.Handle("GET /api/v1/sales", forward(g, http.StatusOK, nil, g.orders.ListSales))
	mux.Handle("GET /api/v1/sales/{id}", forward(g, http.StatusOK, orderID, g.orders.GetSale))

	return mux
}

// forward binds the request, calls the API with the caller's credentials
// and writes the JSON result with okStatus.
func forward[Req, Resp any](g *gateway, okStatus int, bind func(*http.Request, *Req) error, fn func(context.Context, *Req, ...grpc.CallOption) (*Resp, error)) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

		in := new(Req)
		if bind != nil {
			if err := bind(r, in); err != nil {
				var tooLarge *http.MaxBytesError
				if errors.As(err, &tooLarge) {
					writeJSON(w, http.StatusRequestEntityTooLarge, errorBody{Code: "PAYLOAD_TOO_LARGE", Message: "request body too large"})
					return
				}
				writeJSON(w, http.StatusBadRequest, errorBody{Code: "INVALID_ARGUMENT", Message: err.Error()})
				return
			}
		}

		ctx, cancel := context.WithTimeout(outgoing(r), callTimeout)
		defer cancel()

		var trailer metadata.MD
		out, err := fn(ctx, in, grpc.Trailer(&trailer))
		if err != nil {
			writeError(w, g.log, err, trailer)
			return
		}

		if okStatus == http.StatusNoContent {
			w.WriteHeader(okStatus)
			return
		}
		writeJSON(w, okStatus, out)
	})
}

// outgoing copies the Authorization header and a request id into gRPC
// metadata.
func outgoing(r *http.Request) context.Context {
	reqID := r.Header.Get("X-Request-Id")
	if reqID == "" {
		reqID = uuid.NewString()
	}
	md := metadata.Pairs(rpc.RequestIDHeader, reqID)
	if v := r.Header.Get("Authorization"); v != "" {
		md.Set("authorization", v)
	}
	return metadata.NewOutgoingContext(r.Context(), md)
}

func decode(r *http.Request, v any) error {
	err := json.NewDecoder(r.Body).Decode(v)
	var tooLarge *http.MaxBytesError
	switch {
	case err == nil, errors.Is(err, io.EOF):
		return nil
	case errors.As(err, &tooLarge):
		return err
	default:
		return errors.New("malformed JSON body")
	}
}

func body[Req any](r *http.Request, in *Req) error {
	return decode(r, in)
}

func productID(r *http.Request, in *catalogv1.ProductID) error {
	in.ID = r.PathValue("id")
	return nil
}

func orderID(r *http.Request, in *orderv1.OrderID) error {
	in.ID = r.PathValue("id")
	return nil
}

func bindSearch(r *http.Request, in *catalogv1.SearchProductsRequest) error {
	q := r.URL.Query()
	in.Query = q.Get("q")
	in.Category = q.Get("category")
	in.Cursor = q.Get("cursor")
	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return errors.New("limit must be a number")
		}
		in.Limit = n
	}
	return nil
}

func bindListUsers(r *http.Request, in *userv1.ListUsersRequest) error {
	q := r.URL.Query()
	in.Role = q.Get("role")
	if v := q.Get("active"); v != "" {
		active, err := strconv.ParseBool(v)
		if err != nil {
			return errors.New("active must be true or false")
		}
		in.Active = &active
	}
	return nil
}
