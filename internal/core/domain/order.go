package domain

import (
	"errors"
	"time"
)

// OrderStatus represents the lifecycle state of a storefront order.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusPaid      OrderStatus = "paid"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// orderTransitions defines the allowed state machine transitions.
var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending: {OrderStatusPaid, OrderStatusCancelled},
	OrderStatusPaid:    {OrderStatusShipped, OrderStatusCancelled},
	OrderStatusShipped: {OrderStatusDelivered},
}

var ErrOrderNotFound = errors.New("order not found")
var ErrInvalidOrderTransition = errors.New("invalid order status transition")
var ErrEmptyOrder = errors.New("order must contain at least one item")

// CanTransitionTo reports whether a transition from s to next is valid.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range orderTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// OrderItem is one product line within an order. UnitPrice is captured at
// checkout time so later catalog edits do not rewrite history.
type OrderItem struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	UnitPrice float64 `json:"unit_price"`
	Quantity  int     `json:"quantity"`
}

// OrderStatusHistoryEntry records a single status transition on an order.
type OrderStatusHistoryEntry struct {
	Status    OrderStatus `json:"status"`
	Timestamp time.Time   `json:"timestamp"`
	Notes     string      `json:"notes,omitempty"`
}

// Order is a storefront checkout record. Payment is simulated: a paid order
// carries a fake payment reference, no gateway is involved.
type Order struct {
	ID            string                    `json:"id"`
	UserID        string                    `json:"user_id"`
	Items         []OrderItem               `json:"items"`
	Total         float64                   `json:"total"`
	PaymentRef    string                    `json:"payment_ref,omitempty"`
	Status        OrderStatus               `json:"status"`
	StatusHistory []OrderStatusHistoryEntry `json:"status_history"`
	CreatedAt     time.Time                 `json:"created_at"`
	UpdatedAt     time.Time                 `json:"updated_at"`
}
