package models

import (
	"time"

	"github.com/google/uuid"
)

// Order lifecycle. Strictly linear: pending -> shipped -> delivered.
const (
	OrderPending   = "pending"
	OrderShipped   = "shipped"
	OrderDelivered = "delivered"
)

// NextOrderStatus reports whether next strictly follows current. Skipping or
// reversing a step is not a legal transition.
func NextOrderStatus(current, next string) bool {
	switch current {
	case OrderPending:
		return next == OrderShipped
	case OrderShipped:
		return next == OrderDelivered
	default:
		return false
	}
}

// Order is an admin-initiated replenishment order fulfilled by a supplier.
// Stock is incremented only when the order reaches delivered.
type Order struct {
	ID         uuid.UUID `json:"id" db:"id"`
	ItemID     uuid.UUID `json:"item_id" db:"item_id"`
	Quantity   int       `json:"quantity" db:"quantity"`
	SupplierID uuid.UUID `json:"supplier_id" db:"supplier_id"`
	Status     string    `json:"status" db:"status"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time `json:"updated_at" db:"updated_at"`
}

// OrderDetail joins the display names callers need alongside an order.
type OrderDetail struct {
	Order
	ItemName     string `json:"item_name" db:"item_name"`
	SupplierName string `json:"supplier_name" db:"supplier_name"`
}
