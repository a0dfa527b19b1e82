package app

import (
	"context"
	"strings"

	"github.com/dwikikusuma/shop-backoffice/internal/auth"
	"github.com/dwikikusuma/shop-backoffice/internal/cart/domain"
	"github.com/dwikikusuma/shop-backoffice/pkg/apperr"
)

var (
	ErrCartNotFound       = apperr.New(apperr.KindNotFound, "CART_NOT_FOUND", "cart not found")
	ErrItemNotFound       = apperr.New(apperr.KindNotFound, "CART_ITEM_NOT_FOUND", "cart item not found")
	ErrCartExists         = apperr.New(apperr.KindBusinessRule, "CART_EXISTS", "customer already has a cart")
	ErrNotCartOwner       = apperr.New(apperr.KindForbidden, "NOT_CART_OWNER", "cart belongs to another customer")
	ErrProductUnavailable = apperr.New(apperr.KindBusinessRule, "PRODUCT_UNAVAILABLE", "product is not available")
)

type Service struct {
	repo     CartRepo
	catalog  CatalogReader
	identity auth.Resolver
}

func NewService(repo CartRepo, catalog CatalogReader, identity auth.Resolver) *Service {
	return &Service{
		repo:     repo,
		catalog:  catalog,
		identity: identity,
	}
}

func (s *Service) customer(ctx context.Context, p auth.Principal) (auth.Account, error) {
	return s.identity.Customer(ctx, p)
}

func (s *Service) GetMine(ctx context.Context, p auth.Principal) (domain.Cart, error) {
	c, err := s.customer(ctx, p)
	if err != nil {
		return domain.Cart{}, err
	}
	return s.repo.GetByCustomer(ctx, c.ID)
}

func (s *Service) CreateCart(ctx context.Context, p auth.Principal) (domain.Cart, error) {
	c, err := s.customer(ctx, p)
	if err != nil {
		return domain.Cart{}, err
	}
	return s.repo.Create(ctx, c.ID)
}

// AddItem puts qty units of a product in the customer's cart, creating the
// cart on first use. Adding a product already in the cart raises its
// quantity.
func (s *Service) AddItem(ctx context.Context, p auth.Principal, productID string, qty int) (domain.Cart, error) {
	if qty <= 0 {
		return domain.Cart{}, apperr.Invalidf("quantity must be positive")
	}
	if strings.TrimSpace(productID) == "" {
		return domain.Cart{}, apperr.Invalidf("product id is required")
	}

	c, err := s.customer(ctx, p)
	if err != nil {
		return domain.Cart{}, err
	}

	product, err := s.catalog.GetProduct(ctx, productID)
	if err != nil {
		return domain.Cart{}, err
	}
	if !product.Purchasable {
		return domain.Cart{}, ErrProductUnavailable.Withf("product %q is not available", product.Title)
	}

	cart, err := s.repo.GetOrCreate(ctx, c.ID)
	if err != nil {
		return domain.Cart{}, err
	}

	if err := s.repo.AddItem(ctx, cart.ID, product.ID, qty); err != nil {
		return domain.Cart{}, err
	}
	return s.repo.Get(ctx, cart.ID)
}

func (s *Service) SetItemQuantity(ctx context.Context, p auth.Principal, itemID string, qty int) (domain.Cart, error) {
	if qty <= 0 {
		return domain.Cart{}, apperr.Invalidf("quantity must be positive")
	}

	cart, err := s.cartWithItem(ctx, p, itemID)
	if err != nil {
		return domain.Cart{}, err
	}

	if err := s.repo.SetItemQuantity(ctx, cart.ID, itemID, qty); err != nil {
		return domain.Cart{}, err
	}
	return s.repo.Get(ctx, cart.ID)
}

func (s *Service) RemoveItem(ctx context.Context, p auth.Principal, itemID string) (domain.Cart, error) {
	cart, err := s.cartWithItem(ctx, p, itemID)
	if err != nil {
		return domain.Cart{}, err
	}

	if err := s.repo.RemoveItem(ctx, cart.ID, itemID); err != nil {
		return domain.Cart{}, err
	}
	return s.repo.Get(ctx, cart.ID)
}

func (s *Service) cartWithItem(ctx context.Context, p auth.Principal, itemID string) (domain.Cart, error) {
	cart, err := s.GetMine(ctx, p)
	if err != nil {
		return domain.Cart{}, err
	}
	if _, ok := cart.Item(itemID); !ok {
		return domain.Cart{}, ErrItemNotFound.Withf("item %s is not in your cart", itemID)
	}
	return cart, nil
}

func (s *Service) ClearCart(ctx context.Context, p auth.Principal) (domain.Cart, error) {
	cart, err := s.GetMine(ctx, p)
	if err != nil {
		return domain.Cart{}, err
	}
	if err := s.repo.ClearItems(ctx, cart.ID); err != nil {
		return domain.Cart{}, err
	}
	return s.repo.Get(ctx, cart.ID)
}

func (s *Service) DeleteCart(ctx context.Context, p auth.Principal, cartID string) error {
	c, err := s.customer(ctx, p)
	if err != nil {
		return err
	}

	cart, err := s.repo.Get(ctx, cartID)
	if err != nil {
		return err
	}
	if cart.CustomerID != c.ID {
		return ErrNotCartOwner
	}
	return s.repo.Delete(ctx, cart.ID)
}

func (s *Service) ListCarts(ctx context.Context) ([]domain.Cart, error) {
	return s.repo.List(ctx)
}
