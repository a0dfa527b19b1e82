package grpc

import (
	"context"

	catalogv1 "github.com/dwikikusuma/shop-backoffice/api/catalog/v1"
	"github.com/dwikikusuma/shop-backoffice/internal/auth"
	"github.com/dwikikusuma/shop-backoffice/internal/catalog/app"
	"github.com/dwikikusuma/shop-backoffice/internal/catalog/domain"
	"github.com/dwikikusuma/shop-backoffice/pkg/apperr"
	"github.com/dwikikusuma/shop-backoffice/pkg/rpc"
)

type Server struct {
	svc *app.Service
}

func NewServer(svc *app.Service) *Server {
	return &Server{svc: svc}
}

func (s *Server) ListProducts(ctx context.Context, req *catalogv1.ListProductsRequest) (*catalogv1.ProductList, error) {
	products, err := s.svc.ListPublic(ctx, req.Category)
	if err != nil {
		return nil, err
	}
	return toList(products, ""), nil
}

func (s *Server) SearchProducts(ctx context.Context, req *catalogv1.SearchProductsRequest) (*catalogv1.ProductList, error) {
	products, next, err := s.svc.Search(ctx, req.Query, req.Category, req.Limit, req.Cursor)
	if err != nil {
		return nil, err
	}
	return toList(products, next), nil
}

func (s *Server) GetProduct(ctx context.Context, req *catalogv1.ProductID) (*catalogv1.Product, error) {
	if req.ID == "" {
		return nil, apperr.Invalidf("id is required")
	}
	p, err := s.svc.GetProduct(ctx, req.ID)
	if err != nil {
		return nil, err
	}
	return toMessage(p), nil
}

func (s *Server) CreateProduct(ctx context.Context, req *catalogv1.ProductInput) (*catalogv1.Product, error) {
	principal, err := auth.MustPrincipal(ctx)
	if err != nil {
		return nil, err
	}
	p, err := s.svc.CreateProduct(ctx, principal, toInput(req))
	if err != nil {
		return nil, err
	}
	return toMessage(p), nil
}

func (s *Server) UpdateProduct(ctx context.Context, req *catalogv1.ProductInput) (*catalogv1.Product, error) {
	principal, err := auth.MustPrincipal(ctx)
	if err != nil {
		return nil, err
	}
	if req.ID == "" {
		return nil, apperr.Invalidf("id is required")
	}
	p, err := s.svc.UpdateProduct(ctx, principal, req.ID, toInput(req))
	if err != nil {
		return nil, err
	}
	return toMessage(p), nil
}

func (s *Server) DiscontinueProduct(ctx context.Context, req *catalogv1.ProductID) (*catalogv1.Product, error) {
	principal, err := auth.MustPrincipal(ctx)
	if err != nil {
		return nil, err
	}
	p, err := s.svc.DiscontinueProduct(ctx, principal, req.ID)
	if err != nil {
		return nil, err
	}
	return toMessage(p), nil
}

func (s *Server) ListMyProducts(ctx context.Context, _ *rpc.Empty) (*catalogv1.ProductList, error) {
	principal, err := auth.MustPrincipal(ctx)
	if err != nil {
		return nil, err
	}
	products, err := s.svc.ListMine(ctx, principal)
	if err != nil {
		return nil, err
	}
	return toList(products, ""), nil
}

func (s *Server) ListInactiveProducts(ctx context.Context, _ *rpc.Empty) (*catalogv1.ProductList, error) {
	products, err := s.svc.ListInactive(ctx)
	if err != nil {
		return nil, err
	}
	return toList(products, ""), nil
}

func toInput(req *catalogv1.ProductInput) app.ProductInput {
	return app.ProductInput{
		Title:       req.Title,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		Price:       req.Price,
		Quantity:    req.Quantity,
		Status:      req.Status,
		Category:    req.Category,
	}
}

func toList(products []domain.Product, next string) *catalogv1.ProductList {
	out := make([]catalogv1.Product, 0, len(products))
	for _, p := range products {
		out = append(out, *toMessage(p))
	}
	return &catalogv1.ProductList{Products: out, NextCursor: next}
}

func toMessage(p domain.Product) *catalogv1.Product {
	return &catalogv1.Product{
		ID:             p.ID,
		CollaboratorID: p.CollaboratorID,
		SellerName:     p.SellerName,
		Title:          p.Title,
		Description:    p.Description,
		ImageURL:       p.ImageURL,
		Price:          p.Price,
		Quantity:       p.Quantity,
		Status:         string(p.Status),
		Category:       string(p.Category),
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}
