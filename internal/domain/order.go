package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order statuses an admin may assign.
const (
	OrderStatusPending   = "Pending"
	OrderStatusShipped   = "Shipped"
	OrderStatusCompleted = "Completed"
	OrderStatusCancelled = "Cancelled"
)

// ValidOrderStatus reports whether s is one of the assignable statuses.
func ValidOrderStatus(s string) bool {
	switch s {
	case OrderStatusPending, OrderStatusShipped, OrderStatusCompleted, OrderStatusCancelled:
		return true
	}
	return false
}

// Order is the aggregate root for a placed order. Total always equals the sum
// of unit price times quantity over Items, computed once at creation.
type Order struct {
	ID            int64           `json:"id"`
	UserID        int64           `json:"userId"`
	UserEmail     string          `json:"userEmail,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
	PaymentMethod string          `json:"paymentMethod"`
	ShipToName    string          `json:"shipToName"`
	Address       string          `json:"address"`
	City          string          `json:"city"`
	PostalCode    string          `json:"postalCode"`
	Phone         string          `json:"phone"`
	Total         decimal.Decimal `json:"total"`
	Status        string          `json:"status"`
	Items         []OrderItem     `json:"items,omitempty"`
}

// OrderItem is an immutable order line. Title and price are snapshots taken at
// checkout time; later catalog changes do not touch them.
type OrderItem struct {
	ID        int64           `json:"id"`
	OrderID   int64           `json:"orderId"`
	BookID    int64           `json:"bookId"`
	BookTitle string          `json:"bookTitle"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
}

// ShippingInfo carries the checkout form fields.
type ShippingInfo struct {
	PaymentMethod string `json:"paymentMethod"`
	FullName      string `json:"fullName"`
	Address       string `json:"address"`
	City          string `json:"city"`
	PostalCode    string `json:"postalCode"`
	Phone         string `json:"phone"`
}
