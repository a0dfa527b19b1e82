package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusAvailable    Status = "AVAILABLE"
	StatusOutOfStock   Status = "OUT_OF_STOCK"
	StatusDiscontinued Status = "DISCONTINUED"
)

func ParseStatus(s string) (Status, bool) {
	switch st := Status(strings.ToUpper(strings.TrimSpace(s))); st {
	case StatusAvailable, StatusOutOfStock, StatusDiscontinued:
		return st, true
	default:
		return "", false
	}
}

type Category string

const (
	CategoryElectronics Category = "ELECTRONICS"
	CategoryBooks       Category = "BOOKS"
	CategoryClothing    Category = "CLOTHING"
	CategoryHome        Category = "HOME"
	CategorySports      Category = "SPORTS"
	CategoryToys        Category = "TOYS"
	CategoryFood        Category = "FOOD"
	CategoryBeauty      Category = "BEAUTY"
	CategoryOther       Category = "OTHER"
)

// Categories lists every category in display order.
var Categories = []Category{
	CategoryElectronics,
	CategoryBooks,
	CategoryClothing,
	CategoryHome,
	CategorySports,
	CategoryToys,
	CategoryFood,
	CategoryBeauty,
	CategoryOther,
}

func ParseCategory(s string) (Category, bool) {
	c := Category(strings.ToUpper(strings.TrimSpace(s)))
	for _, known := range Categories {
		if c == known {
			return c, true
		}
	}
	return "", false
}

type Product struct {
	ID             string
	CollaboratorID string
	SellerName     string
	Title          string
	Description    string
	ImageURL       string
	Price          decimal.Decimal
	Quantity       int
	Status         Status
	Category       Category
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (p Product) Purchasable() bool {
	return p.Status == StatusAvailable
}

// Reserve takes qty units out of stock. Running out flips the product to
// OUT_OF_STOCK. The caller checks availability first.
func (p *Product) Reserve(qty int) {
	p.Quantity -= qty
	if p.Quantity == 0 {
		p.Status = StatusOutOfStock
	}
}

// Restock puts qty units back. Only OUT_OF_STOCK comes back to AVAILABLE;
// a discontinued product stays discontinued.
func (p *Product) Restock(qty int) {
	p.Quantity += qty
	if p.Status == StatusOutOfStock && p.Quantity > 0 {
		p.Status = StatusAvailable
	}
}
