package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/dwikikusuma/shop-backoffice/internal/auth"
	orderdomain "github.com/dwikikusuma/shop-backoffice/internal/order/domain"
	"github.com/dwikikusuma/shop-backoffice/pkg/apperr"
	"github.com/dwikikusuma/shop-backoffice/pkg/database"
	"github.com/dwikikusuma/shop-backoffice/pkg/logger"
)

var (
	ErrEmptyCart          = apperr.New(apperr.KindBusinessRule, "EMPTY_CART", "cart is empty")
	ErrInsufficientStock  = apperr.New(apperr.KindBusinessRule, "INSUFFICIENT_STOCK", "insufficient stock")
	ErrProductUnavailable = apperr.New(apperr.KindBusinessRule, "PRODUCT_UNAVAILABLE", "product is not available")
)

type Service struct {
	uow      UnitOfWork
	identity auth.Resolver
	cart     CartReader
	catalog  CatalogReader
	cache    CatalogInvalidator

	maxConcurrent int
}

type Option func(*Service)

// WithMaxConcurrent bounds the product lookups a quote runs at once.
func WithMaxConcurrent(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxConcurrent = n
		}
	}
}

func NewService(uow UnitOfWork, identity auth.Resolver, cart CartReader, catalog CatalogReader, cache CatalogInvalidator, opts ...Option) *Service {
	s := &Service{
		uow:           uow,
		identity:      identity,
		cart:          cart,
		catalog:       catalog,
		cache:         cache,
		maxConcurrent: 10,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) execTx(ctx context.Context, fn func(tx Tx) error) error {
	tx, err := s.uow.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("tx err: %w; rollback err: %v", err, rbErr)
		}
		return err
	}

	return tx.Commit()
}

// Checkout turns the customer's cart into a PENDING order. Stock is
// checked and decremented line by line in cart order, prices are frozen
// on the order lines and the cart is emptied. Nothing is written unless
// every step succeeds.
func (s *Service) Checkout(ctx context.Context, p auth.Principal) (orderdomain.Order, error) {
	c, err := s.identity.Customer(ctx, p)
	if err != nil {
		return orderdomain.Order{}, err
	}

	var placed orderdomain.Order
	err = s.execTx(ctx, func(tx Tx) error {
		cart, err := tx.Carts().GetByCustomer(ctx, c.ID)
		if err != nil {
			return err
		}
		if cart.IsEmpty() {
			return ErrEmptyCart
		}

		o := orderdomain.New(c.ID)
		for _, it := range cart.Items {
			product, err := tx.Products().Get(ctx, it.ProductID)
			if err != nil {
				return err
			}
			if product.Quantity < it.Quantity {
				return ErrInsufficientStock.Withf("insufficient stock for %q: available %d, requested %d",
					product.Title, product.Quantity, it.Quantity)
			}
			if !product.Purchasable() {
				return ErrProductUnavailable.Withf("product %q is not available", product.Title)
			}

			prev := product.Quantity
			product.Reserve(it.Quantity)
			if err := tx.Products().SaveStock(ctx, product, prev); err != nil {
				return err
			}
			o.AddLine(product.ID, product.Title, product.CollaboratorID, product.Price, it.Quantity)
		}

		placed, err = tx.Orders().Create(ctx, o)
		if err != nil {
			return err
		}
		if err := tx.Carts().ClearItems(ctx, cart.ID); err != nil {
			return err
		}
		return s.appendEvent(ctx, tx, orderdomain.EventOrderPlaced, placed, "")
	})
	if err != nil {
		return orderdomain.Order{}, err
	}

	placed.CustomerName = c.Name
	s.cache.InvalidatePublic(ctx)
	logger.FromContext(ctx).Info("order placed",
		slog.String("order_id", placed.ID),
		slog.Int("lines", len(placed.Items)),
		slog.String("total", placed.Total().String()),
	)
	return placed, nil
}

// CancelOrder cancels one of the customer's orders and puts every line's
// quantity back in stock.
func (s *Service) CancelOrder(ctx context.Context, p auth.Principal, orderID string) (orderdomain.Order, error) {
	c, err := s.identity.Customer(ctx, p)
	if err != nil {
		return orderdomain.Order{}, err
	}

	var cancelled orderdomain.Order
	err = s.execTx(ctx, func(tx Tx) error {
		o, err := tx.Orders().Get(ctx, orderID)
		if err != nil {
			return err
		}
		if o.CustomerID != c.ID {
			return orderdomain.ErrNotOrderOwner
		}

		prev := o.Status
		if err := o.Cancel(); err != nil {
			return err
		}

		for _, it := range o.Items {
			product, err := tx.Products().Get(ctx, it.ProductID)
			if err != nil {
				return err
			}
			before := product.Quantity
			product.Restock(it.Quantity)
			if err := tx.Products().SaveStock(ctx, product, before); err != nil {
				return err
			}
		}

		if err := tx.Orders().UpdateStatus(ctx, o.ID, o.Status); err != nil {
			return err
		}
		cancelled, err = tx.Orders().Get(ctx, o.ID)
		if err != nil {
			return err
		}
		return s.appendEvent(ctx, tx, orderdomain.EventOrderCancelled, cancelled, prev)
	})
	if err != nil {
		return orderdomain.Order{}, err
	}

	s.cache.InvalidatePublic(ctx)
	logger.FromContext(ctx).Info("order cancelled", slog.String("order_id", cancelled.ID))
	return cancelled, nil
}

// UpdateOrderStatus sets an order's status. Only moves out of CANCELLED
// and out of DELIVERED are refused; stock is not touched.
func (s *Service) UpdateOrderStatus(ctx context.Context, orderID, status string) (orderdomain.Order, error) {
	next, err := orderdomain.ParseStatus(status)
	if err != nil {
		return orderdomain.Order{}, err
	}

	var updated orderdomain.Order
	err = s.execTx(ctx, func(tx Tx) error {
		o, err := tx.Orders().Get(ctx, orderID)
		if err != nil {
			return err
		}

		prev := o.Status
		if err := o.TransitionTo(next); err != nil {
			return err
		}
		if err := tx.Orders().UpdateStatus(ctx, o.ID, o.Status); err != nil {
			return err
		}
		updated, err = tx.Orders().Get(ctx, o.ID)
		if err != nil {
			return err
		}
		return s.appendEvent(ctx, tx, orderdomain.EventOrderStatusChanged, updated, prev)
	})
	if err != nil {
		return orderdomain.Order{}, err
	}

	logger.FromContext(ctx).Info("order status updated",
		slog.String("order_id", updated.ID),
		slog.String("status", string(updated.Status)),
	)
	return updated, nil
}

func (s *Service) appendEvent(ctx context.Context, tx Tx, t orderdomain.EventType, o orderdomain.Order, prev orderdomain.Status) error {
	e, err := orderdomain.NewEvent(t, o, prev, database.Now())
	if err != nil {
		return err
	}
	return tx.Events().Append(ctx, e)
}
