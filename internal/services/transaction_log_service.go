package services

import (
	"context"
	"log"

	"stockroom/internal/models"
	"stockroom/internal/repositories"

	"github.com/google/uuid"
)

// TransactionLogService records user-visible mutations. Record is
// fire-and-forget: a failed write is logged and swallowed so it can never
// fail the business operation that triggered it.
type TransactionLogService interface {
	Record(ctx context.Context, userID uuid.UUID, action, details string)
	List(ctx context.Context, limit, offset int) ([]*models.TransactionLog, error)
}

type transactionLogService struct {
	logRepo repositories.TransactionLogRepository
}

func NewTransactionLogService(logRepo repositories.TransactionLogRepository) TransactionLogService {
	return &transactionLogService{logRepo: logRepo}
}

func (s *transactionLogService) Record(ctx context.Context, userID uuid.UUID, action, details string) {
	entry := &models.TransactionLog{
		UserID:  userID,
		Action:  action,
		Details: details,
	}
	if err := s.logRepo.Create(ctx, entry); err != nil {
		log.Printf("Failed to record transaction log %s for user %s: %v", action, userID.String(), err)
	}
}

func (s *transactionLogService) List(ctx context.Context, limit, offset int) ([]*models.TransactionLog, error) {
	return s.logRepo.List(ctx, limit, offset)
}
