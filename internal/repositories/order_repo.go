package repositories

import (
	"context"
	"errors"

	"stockroom/internal/domain"
	"stockroom/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type OrderRepository interface {
	Create(ctx context.Context, order *models.Order) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	GetForUpdate(ctx context.Context, id uuid.UUID) (*models.Order, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
	List(ctx context.Context, limit, offset int) ([]*models.OrderDetail, error)
	ListBySupplier(ctx context.Context, supplierID uuid.UUID, limit, offset int) ([]*models.OrderDetail, error)
}

type orderRepo struct {
	db DB
}

func NewOrderRepo(db DB) OrderRepository {
	return &orderRepo{db: db}
}

func (r *orderRepo) Create(ctx context.Context, order *models.Order) error {
	query := `
		INSERT INTO supplier_orders (id, item_id, quantity, supplier_id, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
	`
	_, err := queryEngine(ctx, r.db).Exec(ctx, query, order.ID, order.ItemID, order.Quantity, order.SupplierID, order.Status)
	return err
}

func (r *orderRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	return r.get(ctx, id, false)
}

// GetForUpdate locks the order row for the current transaction so two
// advance calls on the same order serialize.
func (r *orderRepo) GetForUpdate(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	return r.get(ctx, id, true)
}

func (r *orderRepo) get(ctx context.Context, id uuid.UUID, forUpdate bool) (*models.Order, error) {
	order := &models.Order{}
	query := `
		SELECT id, item_id, quantity, supplier_id, status, created_at, updated_at
		FROM supplier_orders
		WHERE id = $1
	`
	if forUpdate {
		query += ` FOR UPDATE`
	}
	err := queryEngine(ctx, r.db).QueryRow(ctx, query, id).Scan(&order.ID, &order.ItemID, &order.Quantity, &order.SupplierID, &order.Status, &order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NotFound("order %s not found", id)
		}
		return nil, err
	}
	return order, nil
}

func (r *orderRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	query := `
		UPDATE supplier_orders
		SET status = $2, updated_at = NOW()
		WHERE id = $1
	`
	_, err := queryEngine(ctx, r.db).Exec(ctx, query, id, status)
	return err
}

func (r *orderRepo) List(ctx context.Context, limit, offset int) ([]*models.OrderDetail, error) {
	query := `
		SELECT o.id, o.item_id, o.quantity, o.supplier_id, o.status, o.created_at, o.updated_at,
		       i.name AS item_name, u.username AS supplier_name
		FROM supplier_orders o
		JOIN items i ON i.id = o.item_id
		JOIN users u ON u.id = o.supplier_id
		ORDER BY o.created_at, o.id
		LIMIT $1 OFFSET $2
	`
	rows, err := queryEngine(ctx, r.db).Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanOrderDetails(rows)
}

func (r *orderRepo) ListBySupplier(ctx context.Context, supplierID uuid.UUID, limit, offset int) ([]*models.OrderDetail, error) {
	query := `
		SELECT o.id, o.item_id, o.quantity, o.supplier_id, o.status, o.created_at, o.updated_at,
		       i.name AS item_name, u.username AS supplier_name
		FROM supplier_orders o
		JOIN items i ON i.id = o.item_id
		JOIN users u ON u.id = o.supplier_id
		WHERE o.supplier_id = $1
		ORDER BY o.created_at, o.id
		LIMIT $2 OFFSET $3
	`
	rows, err := queryEngine(ctx, r.db).Query(ctx, query, supplierID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanOrderDetails(rows)
}

func scanOrderDetails(rows pgx.Rows) ([]*models.OrderDetail, error) {
	var details []*models.OrderDetail
	for rows.Next() {
		d := &models.OrderDetail{}
		if err := rows.Scan(&d.ID, &d.ItemID, &d.Quantity, &d.SupplierID, &d.Status, &d.CreatedAt, &d.UpdatedAt, &d.ItemName, &d.SupplierName); err != nil {
			return nil, err
		}
		details = append(details, d)
	}
	return details, rows.Err()
}
