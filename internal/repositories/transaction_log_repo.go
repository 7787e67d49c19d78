package repositories

import (
	"context"
	"time"

	"stockroom/internal/models"

	"github.com/google/uuid"
)

type TransactionLogRepository interface {
	Create(ctx context.Context, entry *models.TransactionLog) error
	List(ctx context.Context, limit, offset int) ([]*models.TransactionLog, error)
}

type transactionLogRepo struct {
	db DB
}

func NewTransactionLogRepo(db DB) TransactionLogRepository {
	return &transactionLogRepo{db: db}
}

func (r *transactionLogRepo) Create(ctx context.Context, entry *models.TransactionLog) error {
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	entry.CreatedAt = time.Now()

	query := `
		INSERT INTO transaction_logs (id, user_id, action, details, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := queryEngine(ctx, r.db).Exec(ctx, query, entry.ID, entry.UserID, entry.Action, entry.Details, entry.CreatedAt)
	return err
}

func (r *transactionLogRepo) List(ctx context.Context, limit, offset int) ([]*models.TransactionLog, error) {
	query := `
		SELECT id, user_id, action, details, created_at
		FROM transaction_logs
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`
	rows, err := queryEngine(ctx, r.db).Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*models.TransactionLog
	for rows.Next() {
		entry := &models.TransactionLog{}
		if err := rows.Scan(&entry.ID, &entry.UserID, &entry.Action, &entry.Details, &entry.CreatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}
