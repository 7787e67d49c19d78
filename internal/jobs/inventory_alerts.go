package jobs

import (
	"context"
	"log"

	"stockroom/internal/repositories"

	"github.com/google/uuid"
)

// InventoryAlertService scans the catalogue for items at or below their
// per-item low stock threshold.
type InventoryAlertService struct {
	itemRepo repositories.ItemRepository
}

type InventoryAlert struct {
	ItemID       uuid.UUID
	ItemName     string
	CurrentStock int
	Threshold    int
}

func NewInventoryAlertService(itemRepo repositories.ItemRepository) *InventoryAlertService {
	return &InventoryAlertService{itemRepo: itemRepo}
}

func (a *InventoryAlertService) CheckLowStock(ctx context.Context) ([]InventoryAlert, error) {
	items, err := a.itemRepo.LowStock(ctx)
	if err != nil {
		log.Printf("Failed to list low stock items: %v", err)
		return nil, err
	}

	alerts := make([]InventoryAlert, 0, len(items))
	for _, item := range items {
		alerts = append(alerts, InventoryAlert{
			ItemID:       item.ID,
			ItemName:     item.Name,
			CurrentStock: item.Stock,
			Threshold:    item.LowStockThreshold,
		})
	}
	return alerts, nil
}

func (a *InventoryAlertService) LogLowStockAlerts(alerts []InventoryAlert) {
	if len(alerts) == 0 {
		return
	}

	log.Printf("Low stock alerts (%d items):", len(alerts))
	for _, alert := range alerts {
		log.Printf("- Item '%s' has %d units (threshold: %d)",
			alert.ItemName,
			alert.CurrentStock,
			alert.Threshold)
	}
}
