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

// RequestService drives the employee request lifecycle: pending at
// submission, then exactly one admin decision. Stock is checked advisorily at
// submission and committed only at approval, so two employees can both submit
// requests that together exceed stock; the approval transaction is the
// authoritative arbiter.
type RequestService interface {
	Submit(ctx context.Context, caller *models.User, itemID uuid.UUID, quantity int, reason *string) (*models.Request, error)
	Decide(ctx context.Context, caller *models.User, requestID uuid.UUID, status string, adminResponse *string) (*models.Request, error)
	GetFor(ctx context.Context, caller *models.User, requestID uuid.UUID) (*models.Request, error)
	ListFor(ctx context.Context, caller *models.User, limit, offset int) ([]*models.RequestDetail, error)
	ClearAll(ctx context.Context, caller *models.User) error
}

type requestService struct {
	requestRepo  repositories.RequestRepository
	itemRepo     repositories.ItemRepository
	transactor   *repositories.Transactor
	cacheService caching.CacheService
	txLog        TransactionLogService
}

func NewRequestService(requestRepo repositories.RequestRepository, itemRepo repositories.ItemRepository, transactor *repositories.Transactor, cacheService caching.CacheService, txLog TransactionLogService) RequestService {
	return &requestService{
		requestRepo:  requestRepo,
		itemRepo:     itemRepo,
		transactor:   transactor,
		cacheService: cacheService,
		txLog:        txLog,
	}
}

func (s *requestService) Submit(ctx context.Context, caller *models.User, itemID uuid.UUID, quantity int, reason *string) (*models.Request, error) {
	if quantity <= 0 {
		return nil, domain.InvalidInput("quantity must be positive, got %d", quantity)
	}

	item, err := s.itemRepo.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}

	// Advisory only: stock is not reserved here. The approval transaction
	// re-checks against live stock.
	if item.Stock < quantity {
		return nil, domain.InsufficientStock(item.Stock, quantity)
	}

	request := &models.Request{
		ID:         uuid.New(),
		EmployeeID: caller.ID,
		ItemID:     itemID,
		Quantity:   quantity,
		Reason:     reason,
		Status:     models.RequestPending,
	}
	if err := s.requestRepo.Create(ctx, request); err != nil {
		return nil, err
	}

	s.txLog.Record(ctx, caller.ID, models.ActionSubmitRequest, fmt.Sprintf("request %s: %d x %s", request.ID, quantity, item.Name))

	return request, nil
}

func (s *requestService) Decide(ctx context.Context, caller *models.User, requestID uuid.UUID, status string, adminResponse *string) (*models.Request, error) {
	if caller.Role != models.RoleAdmin {
		return nil, domain.Forbidden("only admins can decide requests")
	}
	if status != models.RequestApproved && status != models.RequestRejected {
		return nil, domain.InvalidInput("status must be %q or %q, got %q", models.RequestApproved, models.RequestRejected, status)
	}

	var request *models.Request
	err := s.transactor.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		request, err = s.requestRepo.GetForUpdate(ctx, requestID)
		if err != nil {
			return err
		}

		// Terminal states are final: re-deciding is an error, not a no-op.
		if request.Status != models.RequestPending {
			return domain.InvalidTransition("request %s is already %s", requestID, request.Status)
		}

		if status == models.RequestApproved {
			// Authoritative stock check: the decrement fails the whole
			// transaction if stock has drained since submission, leaving
			// the request pending for a retry or rejection.
			if _, err := s.itemRepo.AdjustStock(ctx, request.ItemID, -request.Quantity); err != nil {
				return err
			}
		}

		if err := s.requestRepo.UpdateDecision(ctx, requestID, status, adminResponse); err != nil {
			return err
		}
		request.Status = status
		request.AdminResponse = adminResponse
		return nil
	})
	if err != nil {
		return nil, err
	}

	if status == models.RequestApproved {
		if cacheErr := s.cacheService.DeleteItem(ctx, request.ItemID); cacheErr != nil {
			log.Printf("Failed to invalidate cache for item %s: %v", request.ItemID.String(), cacheErr)
		}
	}
	s.txLog.Record(ctx, caller.ID, models.ActionDecideRequest, fmt.Sprintf("request %s %s", requestID, status))

	return request, nil
}

// GetFor returns a single request. Employees only ever see their own; a
// foreign id behaves as if the request does not exist.
func (s *requestService) GetFor(ctx context.Context, caller *models.User, requestID uuid.UUID) (*models.Request, error) {
	request, err := s.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if caller.Role != models.RoleAdmin && request.EmployeeID != caller.ID {
		return nil, domain.NotFound("request %s not found", requestID)
	}
	return request, nil
}

func (s *requestService) ListFor(ctx context.Context, caller *models.User, limit, offset int) ([]*models.RequestDetail, error) {
	if caller.Role == models.RoleAdmin {
		return s.requestRepo.List(ctx, limit, offset)
	}
	return s.requestRepo.ListByEmployee(ctx, caller.ID, limit, offset)
}

func (s *requestService) ClearAll(ctx context.Context, caller *models.User) error {
	if caller.Role != models.RoleAdmin {
		return domain.Forbidden("only admins can clear requests")
	}
	if err := s.requestRepo.DeleteAll(ctx); err != nil {
		return err
	}
	s.txLog.Record(ctx, caller.ID, models.ActionClearRequests, "all requests cleared")
	return nil
}
