package services

import (
	"context"
	"fmt"
	"log"

	"stockroom/internal/caching"
	"stockroom/internal/domain"
	"stockroom/internal/models"
	"stockroom/internal/repositories"

	"github.com/google/uuid"
)

// OrderService drives replenishment orders: an admin places an order against a
// supplier, the supplier advances it pending -> shipped -> delivered, and
// delivery is the moment stock enters the ledger.
type OrderService interface {
	Place(ctx context.Context, caller *models.User, itemID, supplierID uuid.UUID, quantity int) (*models.Order, error)
	Advance(ctx context.Context, caller *models.User, orderID uuid.UUID, status string) (*models.Order, error)
	GetFor(ctx context.Context, caller *models.User, orderID uuid.UUID) (*models.Order, error)
	ListFor(ctx context.Context, caller *models.User, limit, offset int) ([]*models.OrderDetail, error)
}

type orderService struct {
	orderRepo    repositories.OrderRepository
	itemRepo     repositories.ItemRepository
	userRepo     repositories.UserRepository
	transactor   *repositories.Transactor
	cacheService caching.CacheService
	txLog        TransactionLogService
}

func NewOrderService(orderRepo repositories.OrderRepository, itemRepo repositories.ItemRepository, userRepo repositories.UserRepository, transactor *repositories.Transactor, cacheService caching.CacheService, txLog TransactionLogService) OrderService {
	return &orderService{
		orderRepo:    orderRepo,
		itemRepo:     itemRepo,
		userRepo:     userRepo,
		transactor:   transactor,
		cacheService: cacheService,
		txLog:        txLog,
	}
}

func (s *orderService) Place(ctx context.Context, caller *models.User, itemID, supplierID uuid.UUID, quantity int) (*models.Order, error) {
	if caller.Role != models.RoleAdmin {
		return nil, domain.Forbidden("only admins can place supplier orders")
	}
	if quantity <= 0 {
		return nil, domain.InvalidInput("quantity must be positive, got %d", quantity)
	}

	item, err := s.itemRepo.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}

	supplier, err := s.userRepo.GetByID(ctx, supplierID)
	if err != nil {
		return nil, err
	}
	if supplier.Role != models.RoleSupplier {
		return nil, domain.InvalidRole("user %s is not a supplier", supplierID)
	}

	order := &models.Order{
		ID:         uuid.New(),
		ItemID:     itemID,
		Quantity:   quantity,
		SupplierID: supplierID,
		Status:     models.OrderPending,
	}
	if err := s.orderRepo.Create(ctx, order); err != nil {
		return nil, err
	}

	s.txLog.Record(ctx, caller.ID, models.ActionPlaceOrder, fmt.Sprintf("order %s: %d x %s from %s", order.ID, quantity, item.Name, supplier.Username))

	return order, nil
}

func (s *orderService) Advance(ctx context.Context, caller *models.User, orderID uuid.UUID, status string) (*models.Order, error) {
	if caller.Role != models.RoleSupplier {
		return nil, domain.Forbidden("only suppliers can advance orders")
	}

	var order *models.Order
	err := s.transactor.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		order, err = s.orderRepo.GetForUpdate(ctx, orderID)
		if err != nil {
			return err
		}

		// Suppliers only ever see their own orders; a foreign id behaves
		// as if the order does not exist.
		if order.SupplierID != caller.ID {
			return domain.NotFound("order %s not found", orderID)
		}

		if !models.NextOrderStatus(order.Status, status) {
			return domain.InvalidTransition("order %s cannot move from %s to %s", orderID, order.Status, status)
		}

		// Stock enters the ledger exactly once, at delivery.
		if status == models.OrderDelivered {
			if _, err := s.itemRepo.AdjustStock(ctx, order.ItemID, order.Quantity); err != nil {
				return err
			}
		}

		if err := s.orderRepo.UpdateStatus(ctx, orderID, status); err != nil {
			return err
		}
		order.Status = status
		return nil
	})
	if err != nil {
		return nil, err
	}

	if status == models.OrderDelivered {
		if cacheErr := s.cacheService.DeleteItem(ctx, order.ItemID); cacheErr != nil {
			log.Printf("Failed to invalidate cache for item %s: %v", order.ItemID.String(), cacheErr)
		}
	}
	s.txLog.Record(ctx, caller.ID, models.ActionAdvanceOrder, fmt.Sprintf("order %s -> %s", orderID, status))

	return order, nil
}

// GetFor returns a single order. Suppliers only ever see their own; a foreign
// id behaves as if the order does not exist.
func (s *orderService) GetFor(ctx context.Context, caller *models.User, orderID uuid.UUID) (*models.Order, error) {
	if caller.Role == models.RoleEmployee {
		return nil, domain.Forbidden("employees cannot view supplier orders")
	}

	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if caller.Role == models.RoleSupplier && order.SupplierID != caller.ID {
		return nil, domain.NotFound("order %s not found", orderID)
	}
	return order, nil
}

func (s *orderService) ListFor(ctx context.Context, caller *models.User, limit, offset int) ([]*models.OrderDetail, error) {
	switch caller.Role {
	case models.RoleAdmin:
		return s.orderRepo.List(ctx, limit, offset)
	case models.RoleSupplier:
		return s.orderRepo.ListBySupplier(ctx, caller.ID, limit, offset)
	default:
		return nil, domain.Forbidden("employees cannot view supplier orders")
	}
}
