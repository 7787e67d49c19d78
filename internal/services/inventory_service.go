package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"stockroom/internal/caching"
	"stockroom/internal/models"
	"stockroom/internal/repositories"

	"github.com/google/uuid"
)

// itemCacheTTL is short because stock changes with every approval and
// delivery.
const itemCacheTTL = 5 * time.Minute

// InventoryService is the single owner of item stock. Every stock mutation in
// the system goes through AdjustStock or the import upsert; both hold the
// non-negative invariant transactionally.
type InventoryService interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Item, error)
	GetStock(ctx context.Context, id uuid.UUID) (int, error)
	AdjustStock(ctx context.Context, caller *models.User, id uuid.UUID, delta int) (int, error)
	List(ctx context.Context, limit, offset int) ([]*models.Item, error)
	LowStock(ctx context.Context) ([]*models.Item, error)
}

type inventoryService struct {
	itemRepo     repositories.ItemRepository
	transactor   *repositories.Transactor
	cacheService caching.CacheService
	txLog        TransactionLogService
}

func NewInventoryService(itemRepo repositories.ItemRepository, transactor *repositories.Transactor, cacheService caching.CacheService, txLog TransactionLogService) InventoryService {
	return &inventoryService{
		itemRepo:     itemRepo,
		transactor:   transactor,
		cacheService: cacheService,
		txLog:        txLog,
	}
}

func (s *inventoryService) GetByID(ctx context.Context, id uuid.UUID) (*models.Item, error) {
	// Try cache first; cache errors fall through to the database.
	if cached, err := s.cacheService.GetItem(ctx, id); cached != nil {
		return cached, nil
	} else if err != nil {
		log.Printf("Cache error for item %s: %v", id.String(), err)
	}

	item, err := s.itemRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if cacheErr := s.cacheService.SetItem(ctx, item, itemCacheTTL); cacheErr != nil {
		log.Printf("Failed to cache item %s: %v", id.String(), cacheErr)
	}

	return item, nil
}

func (s *inventoryService) GetStock(ctx context.Context, id uuid.UUID) (int, error) {
	item, err := s.GetByID(ctx, id)
	if err != nil {
		return 0, err
	}
	return item.Stock, nil
}

func (s *inventoryService) AdjustStock(ctx context.Context, caller *models.User, id uuid.UUID, delta int) (int, error) {
	var newStock int
	err := s.transactor.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		newStock, err = s.itemRepo.AdjustStock(ctx, id, delta)
		return err
	})
	if err != nil {
		return 0, err
	}

	if cacheErr := s.cacheService.DeleteItem(ctx, id); cacheErr != nil {
		log.Printf("Failed to invalidate cache for item %s: %v", id.String(), cacheErr)
	}
	s.txLog.Record(ctx, caller.ID, models.ActionAdjustStock, fmt.Sprintf("item %s adjusted by %d, stock now %d", id, delta, newStock))

	return newStock, nil
}

func (s *inventoryService) List(ctx context.Context, limit, offset int) ([]*models.Item, error) {
	return s.itemRepo.List(ctx, limit, offset)
}

func (s *inventoryService) LowStock(ctx context.Context) ([]*models.Item, error) {
	return s.itemRepo.LowStock(ctx)
}
