package domain

import "github.com/shopspring/decimal"

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusPaid      OrderStatus = "paid"
	OrderStatusCancelled OrderStatus = "cancelled"
	OrderStatusToShip    OrderStatus = "toship"
	OrderStatusToReceive OrderStatus = "toreceive"
	OrderStatusToReview  OrderStatus = "toreview"
	OrderStatusRefund    OrderStatus = "refund"
)

// Resolved reports whether the order no longer needs a payment decision.
func (s OrderStatus) Resolved() bool {
	return s != OrderStatusPending
}

func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusCancelled || s == OrderStatusToReview || s == OrderStatusRefund
}

// String representation (for logging)
func (s OrderStatus) String() string {
	return string(s)
}

func CanTransitionTo(from, to OrderStatus) bool {
	switch from {
	case OrderStatusPending:
		return to == OrderStatusPaid || to == OrderStatusCancelled
	case OrderStatusPaid:
		return to == OrderStatusToShip || to == OrderStatusRefund
	case OrderStatusToShip:
		return to == OrderStatusToReceive || to == OrderStatusRefund
	case OrderStatusToReceive:
		return to == OrderStatusToReview || to == OrderStatusRefund
	default:
		return false
	}
}

// PendingOrder is the single-slot record of the last order this client
// created and has not yet seen resolved.
type PendingOrder struct {
	ID     int64       `json:"id"`
	Status OrderStatus `json:"status"`
}

// OrderItem is one line of an order payload, frozen at submission time.
type OrderItem struct {
	ProductID int64           `json:"product_id"`
	ModelID   int64           `json:"model_id"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
}

// OrderDetail is the authoritative order record, fetched on demand and
// never cached past the current view.
type OrderDetail struct {
	ID         int64           `json:"id"`
	Status     OrderStatus     `json:"status"`
	Items      []OrderItem     `json:"items"`
	TotalPrice decimal.Decimal `json:"total_price"`
	Address    string          `json:"address"`
	CreatedAt  string          `json:"created_at"`
}

// OrderSummary is one row of the order list view.
type OrderSummary struct {
	ID         int64           `json:"id"`
	Status     OrderStatus     `json:"status"`
	TotalPrice decimal.Decimal `json:"total_price"`
	Address    string          `json:"address,omitempty"`
	CreatedAt  string          `json:"created_at"`
	UpdatedAt  string          `json:"updated_at,omitempty"`
	ItemCount  int             `json:"item_count"`
}

// OrderCounts are the fulfillment bucket sizes shown on the orders tab.
type OrderCounts struct {
	Pending   int `json:"pending"`
	ToShip    int `json:"toship"`
	ToReceive int `json:"toreceive"`
	ToReview  int `json:"toreview"`
	Refund    int `json:"refund"`
}
