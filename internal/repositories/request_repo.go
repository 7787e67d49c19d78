package repositories

import (
	"context"
	"errors"

	"stockroom/internal/domain"
	"stockroom/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type RequestRepository interface {
	Create(ctx context.Context, request *models.Request) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Request, error)
	GetForUpdate(ctx context.Context, id uuid.UUID) (*models.Request, error)
	UpdateDecision(ctx context.Context, id uuid.UUID, status string, adminResponse *string) error
	List(ctx context.Context, limit, offset int) ([]*models.RequestDetail, error)
	ListByEmployee(ctx context.Context, employeeID uuid.UUID, limit, offset int) ([]*models.RequestDetail, error)
	DeleteAll(ctx context.Context) error
}

type requestRepo struct {
	db DB
}

func NewRequestRepo(db DB) RequestRepository {
	return &requestRepo{db: db}
}

func (r *requestRepo) Create(ctx context.Context, request *models.Request) error {
	query := `
		INSERT INTO employee_requests (id, employee_id, item_id, quantity, reason, status, admin_response, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
	`
	_, err := queryEngine(ctx, r.db).Exec(ctx, query, request.ID, request.EmployeeID, request.ItemID, request.Quantity, request.Reason, request.Status, request.AdminResponse)
	return err
}

func (r *requestRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Request, error) {
	return r.get(ctx, id, false)
}

// GetForUpdate locks the request row for the current transaction, fencing off
// a concurrent decision on the same request.
func (r *requestRepo) GetForUpdate(ctx context.Context, id uuid.UUID) (*models.Request, error) {
	return r.get(ctx, id, true)
}

func (r *requestRepo) get(ctx context.Context, id uuid.UUID, forUpdate bool) (*models.Request, error) {
	request := &models.Request{}
	query := `
		SELECT id, employee_id, item_id, quantity, reason, status, admin_response, created_at
		FROM employee_requests
		WHERE id = $1
	`
	if forUpdate {
		query += ` FOR UPDATE`
	}
	err := queryEngine(ctx, r.db).QueryRow(ctx, query, id).Scan(&request.ID, &request.EmployeeID, &request.ItemID, &request.Quantity, &request.Reason, &request.Status, &request.AdminResponse, &request.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NotFound("request %s not found", id)
		}
		return nil, err
	}
	return request, nil
}

func (r *requestRepo) UpdateDecision(ctx context.Context, id uuid.UUID, status string, adminResponse *string) error {
	query := `
		UPDATE employee_requests
		SET status = $2, admin_response = $3
		WHERE id = $1
	`
	_, err := queryEngine(ctx, r.db).Exec(ctx, query, id, status, adminResponse)
	return err
}

func (r *requestRepo) List(ctx context.Context, limit, offset int) ([]*models.RequestDetail, error) {
	query := `
		SELECT r.id, r.employee_id, r.item_id, r.quantity, r.reason, r.status, r.admin_response, r.created_at,
		       i.name AS item_name, u.username AS employee_name
		FROM employee_requests r
		JOIN items i ON i.id = r.item_id
		JOIN users u ON u.id = r.employee_id
		ORDER BY r.created_at, r.id
		LIMIT $1 OFFSET $2
	`
	rows, err := queryEngine(ctx, r.db).Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanRequestDetails(rows)
}

func (r *requestRepo) ListByEmployee(ctx context.Context, employeeID uuid.UUID, limit, offset int) ([]*models.RequestDetail, error) {
	query := `
		SELECT r.id, r.employee_id, r.item_id, r.quantity, r.reason, r.status, r.admin_response, r.created_at,
		       i.name AS item_name, u.username AS employee_name
		FROM employee_requests r
		JOIN items i ON i.id = r.item_id
		JOIN users u ON u.id = r.employee_id
		WHERE r.employee_id = $1
		ORDER BY r.created_at, r.id
		LIMIT $2 OFFSET $3
	`
	rows, err := queryEngine(ctx, r.db).Query(ctx, query, employeeID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanRequestDetails(rows)
}

func scanRequestDetails(rows pgx.Rows) ([]*models.RequestDetail, error) {
	var details []*models.RequestDetail
	for rows.Next() {
		d := &models.RequestDetail{}
		if err := rows.Scan(&d.ID, &d.EmployeeID, &d.ItemID, &d.Quantity, &d.Reason, &d.Status, &d.AdminResponse, &d.CreatedAt, &d.ItemName, &d.EmployeeName); err != nil {
			return nil, err
		}
		details = append(details, d)
	}
	return details, rows.Err()
}

func (r *requestRepo) DeleteAll(ctx context.Context) error {
	_, err := queryEngine(ctx, r.db).Exec(ctx, `DELETE FROM employee_requests`)
	return err
}
