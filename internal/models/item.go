package models

import (
	"time"

	"github.com/google/uuid"
)

// DefaultLowStockThreshold is applied when an item is created or imported
// without an explicit threshold.
const DefaultLowStockThreshold = 10

// Item is a stationery item tracked by the inventory ledger. Stock is the
// quantity on hand and never goes below zero; every stock mutation bumps
// UpdatedAt.
type Item struct {
	ID                uuid.UUID `json:"id" db:"id"`
	Name              string    `json:"name" db:"name"`
	Description       string    `json:"description" db:"description"`
	Stock             int       `json:"stock" db:"stock"`
	LowStockThreshold int       `json:"low_stock_threshold" db:"low_stock_threshold"`
	CreatedAt         time.Time `json:"created_at" db:"created_at"`
	UpdatedAt         time.Time `json:"updated_at" db:"updated_at"`
}

// ItemRow is one row of a bulk inventory import, matched against existing
// items by (name, description).
type ItemRow struct {
	Name              string `json:"name"`
	Description       string `json:"description"`
	Stock             int    `json:"stock"`
	LowStockThreshold int    `json:"low_stock_threshold"`
}
