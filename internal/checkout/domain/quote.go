package domain

import "github.com/shopspring/decimal"

// QuoteLine prices one cart item at the current catalog price.
type QuoteLine struct {
	ProductID   string
	Title       string
	Quantity    int
	Available   int
	Purchasable bool
	UnitPrice   decimal.Decimal
	LineTotal   decimal.Decimal
}

// InStock reports whether checkout would accept this line right now.
func (l QuoteLine) InStock() bool {
	return l.Purchasable && l.Available >= l.Quantity
}

type Quote struct {
	Lines []QuoteLine
	Total decimal.Decimal
}

// Ready reports whether every line would pass checkout as of the quote.
func (q Quote) Ready() bool {
	for _, l := range q.Lines {
		if !l.InStock() {
			return false
		}
	}
	return len(q.Lines) > 0
}
