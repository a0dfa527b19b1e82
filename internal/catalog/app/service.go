package app

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"

	"github.com/dwikikusuma/shop-backoffice/internal/auth"
	"github.com/dwikikusuma/shop-backoffice/internal/catalog/domain"
	"github.com/dwikikusuma/shop-backoffice/pkg/apperr"
	"github.com/dwikikusuma/shop-backoffice/pkg/cache"
	"github.com/dwikikusuma/shop-backoffice/pkg/logger"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/singleflight"
)

var (
	ErrProductNotFound = apperr.New(apperr.KindNotFound, "PRODUCT_NOT_FOUND", "product not found")
	ErrNotOwner        = apperr.New(apperr.KindForbidden, "NOT_PRODUCT_OWNER", "you do not own this product")
)

const publicKeyPrefix = "catalog:public:"

type Service struct {
	repo     ProductRepo
	identity auth.Resolver

	cache    cache.Cache
	cacheTTL time.Duration
	group    singleflight.Group

	// gen moves on every invalidation; a load that saw an older gen must
	// not leave its rows in the cache.
	gen atomic.Uint64

	limit int
}

type Option func(*Service)

// WithCache enables cache-aside for the public listing.
func WithCache(c cache.Cache, ttl time.Duration) Option {
	return func(s *Service) {
		s.cache = c
		s.cacheTTL = ttl
	}
}

func WithProductLimit(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.limit = n
		}
	}
}

func NewService(repo ProductRepo, identity auth.Resolver, opts ...Option) *Service {
	s := &Service{
		repo:     repo,
		identity: identity,
		cache:    cache.Noop{},
		limit:    DefaultProductLimit,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ProductInput holds every editable product field.
type ProductInput struct {
	Title       string
	Description string
	ImageURL    string
	Price       decimal.Decimal
	Quantity    int
	Status      string
	Category    string
}

func (in ProductInput) validate() (domain.Status, domain.Category, error) {
	if strings.TrimSpace(in.Title) == "" {
		return "", "", apperr.Invalidf("title is required")
	}
	if strings.TrimSpace(in.Description) == "" {
		return "", "", apperr.Invalidf("description is required")
	}
	if strings.TrimSpace(in.ImageURL) == "" {
		return "", "", apperr.Invalidf("image url is required")
	}
	if !in.Price.IsPositive() {
		return "", "", apperr.Invalidf("price must be positive")
	}
	if in.Quantity <= 0 {
		return "", "", apperr.Invalidf("quantity must be positive")
	}
	st, ok := domain.ParseStatus(in.Status)
	if !ok {
		return "", "", apperr.Invalidf("unknown status %q", in.Status)
	}
	cat, ok := domain.ParseCategory(in.Category)
	if !ok {
		return "", "", apperr.Invalidf("unknown category %q", in.Category)
	}
	return st, cat, nil
}

func (in ProductInput) apply(p *domain.Product, st domain.Status, cat domain.Category) {
	p.Title = strings.TrimSpace(in.Title)
	p.Description = strings.TrimSpace(in.Description)
	p.ImageURL = strings.TrimSpace(in.ImageURL)
	p.Price = in.Price
	p.Quantity = in.Quantity
	p.Status = st
	p.Category = cat
}

func (s *Service) CreateProduct(ctx context.Context, principal auth.Principal, in ProductInput) (domain.Product, error) {
	seller, err := s.identity.Collaborator(ctx, principal)
	if err != nil {
		return domain.Product{}, err
	}

	st, cat, err := in.validate()
	if err != nil {
		return domain.Product{}, err
	}

	if err := s.ValidateProductLimit(ctx, seller.ID); err != nil {
		return domain.Product{}, err
	}

	p := domain.Product{CollaboratorID: seller.ID, SellerName: seller.Name}
	in.apply(&p, st, cat)

	created, err := s.repo.Create(ctx, p)
	if err != nil {
		return domain.Product{}, err
	}

	s.InvalidatePublic(ctx)
	return created, nil
}

func (s *Service) UpdateProduct(ctx context.Context, principal auth.Principal, id string, in ProductInput) (domain.Product, error) {
	p, err := s.ownedProduct(ctx, principal, id)
	if err != nil {
		return domain.Product{}, err
	}

	st, cat, err := in.validate()
	if err != nil {
		return domain.Product{}, err
	}
	in.apply(&p, st, cat)

	updated, err := s.repo.Update(ctx, p)
	if err != nil {
		return domain.Product{}, err
	}

	s.InvalidatePublic(ctx)
	return updated, nil
}

// DiscontinueProduct soft-deletes a product.
func (s *Service) DiscontinueProduct(ctx context.Context, principal auth.Principal, id string) (domain.Product, error) {
	p, err := s.ownedProduct(ctx, principal, id)
	if err != nil {
		return domain.Product{}, err
	}

	p.Status = domain.StatusDiscontinued
	updated, err := s.repo.Update(ctx, p)
	if err != nil {
		return domain.Product{}, err
	}

	s.InvalidatePublic(ctx)
	return updated, nil
}

func (s *Service) ownedProduct(ctx context.Context, principal auth.Principal, id string) (domain.Product, error) {
	seller, err := s.identity.Collaborator(ctx, principal)
	if err != nil {
		return domain.Product{}, err
	}

	p, err := s.GetProduct(ctx, id)
	if err != nil {
		return domain.Product{}, err
	}
	if p.CollaboratorID != seller.ID {
		return domain.Product{}, ErrNotOwner
	}
	return p, nil
}

func (s *Service) GetProduct(ctx context.Context, id string) (domain.Product, error) {
	if strings.TrimSpace(id) == "" {
		return domain.Product{}, apperr.Invalidf("product id is required")
	}
	return s.repo.Get(ctx, id)
}

// ListPublic returns AVAILABLE products, optionally for one category. An
// empty category means all of them.
func (s *Service) ListPublic(ctx context.Context, category string) ([]domain.Product, error) {
	var cat domain.Category
	if strings.TrimSpace(category) != "" {
		c, ok := domain.ParseCategory(category)
		if !ok {
			return nil, apperr.Invalidf("unknown category %q", category)
		}
		cat = c
	}

	key := publicKey(cat)
	if products, ok := s.cachedPublic(ctx, key); ok {
		return products, nil
	}

	// Concurrent misses share one query.
	v, err, _ := s.group.Do(key, func() (any, error) {
		if products, ok := s.cachedPublic(ctx, key); ok {
			return products, nil
		}
		gen := s.gen.Load()
		products, err := s.repo.ListByStatus(ctx, domain.StatusAvailable, cat)
		if err != nil {
			return nil, err
		}
		s.storePublic(ctx, key, gen, products)
		return products, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]domain.Product), nil
}

func publicKey(cat domain.Category) string {
	if cat == "" {
		return publicKeyPrefix + "ALL"
	}
	return publicKeyPrefix + string(cat)
}

func (s *Service) cachedPublic(ctx context.Context, key string) ([]domain.Product, bool) {
	raw, ok, err := s.cache.Get(ctx, key)
	if err != nil {
		logger.FromContext(ctx).Warn("catalog cache get failed", slog.String("key", key), slog.Any("err", err))
		return nil, false
	}
	if !ok {
		return nil, false
	}
	var products []domain.Product
	if err := json.Unmarshal(raw, &products); err != nil {
		return nil, false
	}
	return products, true
}

// storePublic caches products loaded at generation gen. An invalidation
// racing with the store drops the entry again.
func (s *Service) storePublic(ctx context.Context, key string, gen uint64, products []domain.Product) {
	if s.gen.Load() != gen {
		return
	}
	raw, err := json.Marshal(products)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, key, raw, s.cacheTTL); err != nil {
		logger.FromContext(ctx).Warn("catalog cache set failed", slog.String("key", key), slog.Any("err", err))
		return
	}
	if s.gen.Load() != gen {
		_ = s.cache.Delete(ctx, key)
	}
}

// InvalidatePublic drops every cached public listing. Failures are logged;
// entries then age out with their TTL.
func (s *Service) InvalidatePublic(ctx context.Context) {
	s.gen.Add(1)
	keys := make([]string, 0, len(domain.Categories)+1)
	keys = append(keys, publicKey(""))
	for _, c := range domain.Categories {
		keys = append(keys, publicKey(c))
	}
	if err := s.cache.Delete(ctx, keys...); err != nil {
		logger.FromContext(ctx).Warn("catalog cache invalidation failed", slog.Any("err", err))
	}
}

func (s *Service) ListMine(ctx context.Context, principal auth.Principal) ([]domain.Product, error) {
	seller, err := s.identity.Collaborator(ctx, principal)
	if err != nil {
		return nil, err
	}
	return s.repo.ListByCollaborator(ctx, seller.ID)
}

// ListInactive returns discontinued products.
func (s *Service) ListInactive(ctx context.Context) ([]domain.Product, error) {
	return s.repo.ListByStatus(ctx, domain.StatusDiscontinued, "")
}

// Search pages through purchasable products matching query in title or
// description.
func (s *Service) Search(ctx context.Context, query, category string, limit int, cursor string) ([]domain.Product, string, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}

	var cat domain.Category
	if strings.TrimSpace(category) != "" {
		c, ok := domain.ParseCategory(category)
		if !ok {
			return nil, "", apperr.Invalidf("unknown category %q", category)
		}
		cat = c
	}

	return s.repo.List(ctx, ListFilter{
		Query:    strings.TrimSpace(query),
		Category: cat,
		Limit:    limit,
		Cursor:   strings.TrimSpace(cursor),
	})
}
