package models

import (
	"time"

	"github.com/google/uuid"
)

// Request lifecycle. Pending transitions exactly once to approved or rejected;
// both are terminal.
const (
	RequestPending  = "pending"
	RequestApproved = "approved"
	RequestRejected = "rejected"
)

// Request is an employee's ask to draw a quantity of an item from stock.
// Stock is not reserved at submission; it is committed only when an admin
// approves.
type Request struct {
	ID            uuid.UUID `json:"id" db:"id"`
	EmployeeID    uuid.UUID `json:"employee_id" db:"employee_id"`
	ItemID        uuid.UUID `json:"item_id" db:"item_id"`
	Quantity      int       `json:"quantity" db:"quantity"`
	Reason        *string   `json:"reason,omitempty" db:"reason"`
	Status        string    `json:"status" db:"status"`
	AdminResponse *string   `json:"admin_response,omitempty" db:"admin_response"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
}

// RequestDetail joins the display names callers need alongside a request.
type RequestDetail struct {
	Request
	ItemName     string `json:"item_name" db:"item_name"`
	EmployeeName string `json:"employee_name" db:"employee_name"`
}
