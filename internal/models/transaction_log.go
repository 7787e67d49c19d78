package models

import (
	"time"

	"github.com/google/uuid"
)

// TransactionLog is an append-only record of a user-visible mutation. Writes
// are fire-and-forget; a failed write never fails the business operation.
type TransactionLog struct {
	ID        uuid.UUID `json:"id" db:"id"`
	UserID    uuid.UUID `json:"user_id" db:"user_id"`
	Action    string    `json:"action" db:"action"`
	Details   string    `json:"details" db:"details"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// Actions recorded in the transaction log.
const (
	ActionSubmitRequest  = "request.submit"
	ActionDecideRequest  = "request.decide"
	ActionClearRequests  = "request.clear_all"
	ActionPlaceOrder     = "order.place"
	ActionAdvanceOrder   = "order.advance"
	ActionAdjustStock    = "inventory.adjust"
	ActionImportItems    = "inventory.import"
)
