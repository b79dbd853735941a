package domain

import "github.com/shopspring/decimal"

// CartItem is one book-quantity-price line held in the session cart. UnitPrice
// is the price snapshotted when the line was first added and is used only for
// display; checkout re-prices against the catalog.
type CartItem struct {
	BookID    int64           `json:"bookId"`
	BookTitle string          `json:"bookTitle"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
}

// CartSubtotal sums unit price times quantity across lines.
func CartSubtotal(items []CartItem) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.UnitPrice.Mul(decimal.NewFromInt(int64(it.Quantity))))
	}
	return total
}
