package domain

import (
	"strings"
	"time"

	"github.com/dwikikusuma/shop-backoffice/pkg/apperr"
	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusPending   Status = "PENDING"
	StatusConfirmed Status = "CONFIRMED"
	StatusShipped   Status = "SHIPPED"
	StatusDelivered Status = "DELIVERED"
	StatusCancelled Status = "CANCELLED"
)

func ParseStatus(s string) (Status, error) {
	switch st := Status(strings.ToUpper(strings.TrimSpace(s))); st {
	case StatusPending, StatusConfirmed, StatusShipped, StatusDelivered, StatusCancelled:
		return st, nil
	default:
		return "", apperr.Invalidf("unknown order status %q", s)
	}
}

var (
	ErrOrderNotFound         = apperr.New(apperr.KindNotFound, "ORDER_NOT_FOUND", "order not found")
	ErrNotOrderOwner         = apperr.New(apperr.KindForbidden, "NOT_ORDER_OWNER", "order belongs to another customer")
	ErrAlreadyCancelled      = apperr.New(apperr.KindBusinessRule, "ALREADY_CANCELLED", "order is already cancelled")
	ErrCannotCancelDelivered = apperr.New(apperr.KindBusinessRule, "CANNOT_CANCEL_DELIVERED", "a delivered order cannot be cancelled")
	ErrCannotModifyCancelled = apperr.New(apperr.KindBusinessRule, "CANNOT_MODIFY_CANCELLED", "a cancelled order cannot change status")
	ErrCannotModifyDelivered = apperr.New(apperr.KindBusinessRule, "CANNOT_MODIFY_DELIVERED", "a delivered order cannot change status")
)

// Item is an order line. UnitPrice is frozen when the order is placed.
type Item struct {
	ID           string
	OrderID      string
	ProductID    string
	ProductTitle string
	SellerID     string
	Position     int
	Quantity     int
	UnitPrice    decimal.Decimal
}

func (i Item) SubTotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

type Order struct {
	ID           string
	CustomerID   string
	CustomerName string
	Status       Status
	Items        []Item
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// New starts a pending order for customerID.
func New(customerID string) Order {
	return Order{CustomerID: customerID, Status: StatusPending}
}

// AddLine appends a line priced at unitPrice.
func (o *Order) AddLine(productID, title, sellerID string, unitPrice decimal.Decimal, qty int) {
	o.Items = append(o.Items, Item{
		ProductID:    productID,
		ProductTitle: title,
		SellerID:     sellerID,
		Position:     len(o.Items),
		Quantity:     qty,
		UnitPrice:    unitPrice,
	})
}

func (o Order) Total() decimal.Decimal {
	total := decimal.Zero
	for _, it := range o.Items {
		total = total.Add(it.SubTotal())
	}
	return total
}

// Cancel moves the order to CANCELLED. Cancelled and delivered orders are
// rejected without change.
func (o *Order) Cancel() error {
	switch o.Status {
	case StatusCancelled:
		return ErrAlreadyCancelled
	case StatusDelivered:
		return ErrCannotCancelDelivered
	}
	o.Status = StatusCancelled
	return nil
}

// TransitionTo sets the status. Only CANCELLED and DELIVERED are guarded:
// nothing leaves CANCELLED, and DELIVERED may only be set again. Every
// other move is allowed, backwards included.
func (o *Order) TransitionTo(next Status) error {
	switch {
	case o.Status == StatusCancelled:
		return ErrCannotModifyCancelled
	case o.Status == StatusDelivered && next != StatusDelivered:
		return ErrCannotModifyDelivered
	}
	o.Status = next
	return nil
}

// Sale is an order seen by one seller: only that seller's lines, with
// their total next to the full order total.
type Sale struct {
	OrderID      string
	CustomerID   string
	CustomerName string
	Status       Status
	Items        []Item
	MyTotal      decimal.Decimal
	OrderTotal   decimal.Decimal
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// SaleFor reduces o to sellerID's lines. ok is false when the seller has
// none.
func (o Order) SaleFor(sellerID string) (sale Sale, ok bool) {
	mine := make([]Item, 0, len(o.Items))
	total := decimal.Zero
	for _, it := range o.Items {
		if it.SellerID == sellerID {
			mine = append(mine, it)
			total = total.Add(it.SubTotal())
		}
	}
	if len(mine) == 0 {
		return Sale{}, false
	}

	return Sale{
		OrderID:      o.ID,
		CustomerID:   o.CustomerID,
		CustomerName: o.CustomerName,
		Status:       o.Status,
		Items:        mine,
		MyTotal:      total,
		OrderTotal:   o.Total(),
		CreatedAt:    o.CreatedAt,
		UpdatedAt:    o.UpdatedAt,
	}, true
}
