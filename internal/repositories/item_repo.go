package repositories

import (
	"context"
	"errors"

	"stockroom/internal/domain"
	"stockroom/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type ItemRepository interface {
	Create(ctx context.Context, item *models.Item) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Item, error)
	GetForUpdate(ctx context.Context, id uuid.UUID) (*models.Item, error)
	List(ctx context.Context, limit, offset int) ([]*models.Item, error)
	LowStock(ctx context.Context) ([]*models.Item, error)
	AdjustStock(ctx context.Context, id uuid.UUID, delta int) (int, error)
	UpsertByNameAndDescription(ctx context.Context, row *models.ItemRow) error
}

type itemRepo struct {
	db DB
}

func NewItemRepo(db DB) ItemRepository {
	return &itemRepo{db: db}
}

func (r *itemRepo) Create(ctx context.Context, item *models.Item) error {
	query := `
		INSERT INTO items (id, name, description, stock, low_stock_threshold, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
	`
	_, err := queryEngine(ctx, r.db).Exec(ctx, query, item.ID, item.Name, item.Description, item.Stock, item.LowStockThreshold)
	return err
}

func (r *itemRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Item, error) {
	item := &models.Item{}
	query := `
		SELECT id, name, description, stock, low_stock_threshold, created_at, updated_at
		FROM items
		WHERE id = $1
	`
	err := queryEngine(ctx, r.db).QueryRow(ctx, query, id).Scan(&item.ID, &item.Name, &item.Description, &item.Stock, &item.LowStockThreshold, &item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NotFound("item %s not found", id)
		}
		return nil, err
	}
	return item, nil
}

// GetForUpdate locks the item row for the current transaction. Callers must
// run inside Transactor.WithinTx.
func (r *itemRepo) GetForUpdate(ctx context.Context, id uuid.UUID) (*models.Item, error) {
	item := &models.Item{}
	query := `
		SELECT id, name, description, stock, low_stock_threshold, created_at, updated_at
		FROM items
		WHERE id = $1
		FOR UPDATE
	`
	err := queryEngine(ctx, r.db).QueryRow(ctx, query, id).Scan(&item.ID, &item.Name, &item.Description, &item.Stock, &item.LowStockThreshold, &item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NotFound("item %s not found", id)
		}
		return nil, err
	}
	return item, nil
}

func (r *itemRepo) List(ctx context.Context, limit, offset int) ([]*models.Item, error) {
	query := `
		SELECT id, name, description, stock, low_stock_threshold, created_at, updated_at
		FROM items
		ORDER BY created_at, id
		LIMIT $1 OFFSET $2
	`
	rows, err := queryEngine(ctx, r.db).Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*models.Item
	for rows.Next() {
		item := &models.Item{}
		if err := rows.Scan(&item.ID, &item.Name, &item.Description, &item.Stock, &item.LowStockThreshold, &item.CreatedAt, &item.UpdatedAt); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (r *itemRepo) LowStock(ctx context.Context) ([]*models.Item, error) {
	query := `
		SELECT id, name, description, stock, low_stock_threshold, created_at, updated_at
		FROM items
		WHERE stock <= low_stock_threshold
		ORDER BY stock ASC
	`
	rows, err := queryEngine(ctx, r.db).Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*models.Item
	for rows.Next() {
		item := &models.Item{}
		if err := rows.Scan(&item.ID, &item.Name, &item.Description, &item.Stock, &item.LowStockThreshold, &item.CreatedAt, &item.UpdatedAt); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// AdjustStock applies delta to the item's stock and returns the new value.
// The WHERE guard makes the non-negative invariant part of the statement, so
// the check and the write cannot interleave with a concurrent adjustment.
func (r *itemRepo) AdjustStock(ctx context.Context, id uuid.UUID, delta int) (int, error) {
	q := queryEngine(ctx, r.db)

	query := `
		UPDATE items
		SET stock = stock + $2, updated_at = NOW()
		WHERE id = $1 AND stock + $2 >= 0
		RETURNING stock
	`
	var newStock int
	err := q.QueryRow(ctx, query, id, delta).Scan(&newStock)
	if err == nil {
		return newStock, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return 0, err
	}

	// Guard rejected the update: either the item is missing or the delta
	// would push stock negative.
	var current int
	err = q.QueryRow(ctx, `SELECT stock FROM items WHERE id = $1`, id).Scan(&current)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, domain.NotFound("item %s not found", id)
	}
	if err != nil {
		return 0, err
	}
	return 0, domain.InsufficientStock(current, -delta)
}

// UpsertByNameAndDescription is the idempotent import path: a row matching an
// existing (name, description) pair tops up that item's stock instead of
// inserting a duplicate.
func (r *itemRepo) UpsertByNameAndDescription(ctx context.Context, row *models.ItemRow) error {
	query := `
		INSERT INTO items (id, name, description, stock, low_stock_threshold, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		ON CONFLICT (name, description) DO UPDATE SET stock = items.stock + EXCLUDED.stock, updated_at = NOW()
	`
	_, err := queryEngine(ctx, r.db).Exec(ctx, query, uuid.New(), row.Name, row.Description, row.Stock, row.LowStockThreshold)
	return err
}
