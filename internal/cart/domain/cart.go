package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Item is a cart line. UnitPrice is the product's current price, so the
// subtotal follows price changes until checkout.
type Item struct {
	ID            string
	CartID        string
	ProductID     string
	ProductTitle  string
	ProductStatus string
	UnitPrice     decimal.Decimal
	Quantity      int
	CreatedAt     time.Time
}

func (i Item) SubTotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

type Cart struct {
	ID         string
	CustomerID string
	Items      []Item
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (c Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, it := range c.Items {
		total = total.Add(it.SubTotal())
	}
	return total
}

func (c Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

func (c Cart) Item(id string) (Item, bool) {
	for _, it := range c.Items {
		if it.ID == id {
			return it, true
		}
	}
	return Item{}, false
}
