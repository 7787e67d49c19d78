package services

import (
	"context"
	"testing"
	"time"

	"stockroom/internal/models"
	"stockroom/internal/repositories"

	"github.com/google/uuid"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// Mock repositories and services shared by the service tests.

type MockItemRepository struct {
	mock.Mock
}

func (m *MockItemRepository) Create(ctx context.Context, item *models.Item) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockItemRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Item, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Item), args.Error(1)
}

func (m *MockItemRepository) GetForUpdate(ctx context.Context, id uuid.UUID) (*models.Item, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Item), args.Error(1)
}

func (m *MockItemRepository) List(ctx context.Context, limit, offset int) ([]*models.Item, error) {
	args := m.Called(ctx, limit, offset)
	return args.Get(0).([]*models.Item), args.Error(1)
}

func (m *MockItemRepository) LowStock(ctx context.Context) ([]*models.Item, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*models.Item), args.Error(1)
}

func (m *MockItemRepository) AdjustStock(ctx context.Context, id uuid.UUID, delta int) (int, error) {
	args := m.Called(ctx, id, delta)
	return args.Int(0), args.Error(1)
}

func (m *MockItemRepository) UpsertByNameAndDescription(ctx context.Context, row *models.ItemRow) error {
	args := m.Called(ctx, row)
	return args.Error(0)
}

type MockRequestRepository struct {
	mock.Mock
}

func (m *MockRequestRepository) Create(ctx context.Context, request *models.Request) error {
	args := m.Called(ctx, request)
	return args.Error(0)
}

func (m *MockRequestRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Request, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Request), args.Error(1)
}

func (m *MockRequestRepository) GetForUpdate(ctx context.Context, id uuid.UUID) (*models.Request, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Request), args.Error(1)
}

func (m *MockRequestRepository) UpdateDecision(ctx context.Context, id uuid.UUID, status string, adminResponse *string) error {
	args := m.Called(ctx, id, status, adminResponse)
	return args.Error(0)
}

func (m *MockRequestRepository) List(ctx context.Context, limit, offset int) ([]*models.RequestDetail, error) {
	args := m.Called(ctx, limit, offset)
	return args.Get(0).([]*models.RequestDetail), args.Error(1)
}

func (m *MockRequestRepository) ListByEmployee(ctx context.Context, employeeID uuid.UUID, limit, offset int) ([]*models.RequestDetail, error) {
	args := m.Called(ctx, employeeID, limit, offset)
	return args.Get(0).([]*models.RequestDetail), args.Error(1)
}

func (m *MockRequestRepository) DeleteAll(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) Create(ctx context.Context, order *models.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockOrderRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Order), args.Error(1)
}

func (m *MockOrderRepository) GetForUpdate(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Order), args.Error(1)
}

func (m *MockOrderRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockOrderRepository) List(ctx context.Context, limit, offset int) ([]*models.OrderDetail, error) {
	args := m.Called(ctx, limit, offset)
	return args.Get(0).([]*models.OrderDetail), args.Error(1)
}

func (m *MockOrderRepository) ListBySupplier(ctx context.Context, supplierID uuid.UUID, limit, offset int) ([]*models.OrderDetail, error) {
	args := m.Called(ctx, supplierID, limit, offset)
	return args.Get(0).([]*models.OrderDetail), args.Error(1)
}

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

type MockCacheService struct {
	mock.Mock
}

func (m *MockCacheService) GetItem(ctx context.Context, itemID uuid.UUID) (*models.Item, error) {
	args := m.Called(ctx, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Item), args.Error(1)
}

func (m *MockCacheService) SetItem(ctx context.Context, item *models.Item, ttl time.Duration) error {
	args := m.Called(ctx, item, ttl)
	return args.Error(0)
}

func (m *MockCacheService) DeleteItem(ctx context.Context, itemID uuid.UUID) error {
	args := m.Called(ctx, itemID)
	return args.Error(0)
}

func (m *MockCacheService) SetString(ctx context.Context, key string, value string, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)
	return args.Error(0)
}

func (m *MockCacheService) GetString(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *MockCacheService) DeletePattern(ctx context.Context, pattern string) error {
	args := m.Called(ctx, pattern)
	return args.Error(0)
}

func (m *MockCacheService) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type MockTransactionLogService struct {
	mock.Mock
}

func (m *MockTransactionLogService) Record(ctx context.Context, userID uuid.UUID, action, details string) {
	m.Called(ctx, userID, action, details)
}

func (m *MockTransactionLogService) List(ctx context.Context, limit, offset int) ([]*models.TransactionLog, error) {
	args := m.Called(ctx, limit, offset)
	return args.Get(0).([]*models.TransactionLog), args.Error(1)
}

type MockArchiveService struct {
	mock.Mock
}

func (m *MockArchiveService) Store(ctx context.Context, filename string, data []byte) (string, error) {
	args := m.Called(ctx, filename, data)
	return args.String(0), args.Error(1)
}

func (m *MockArchiveService) GetPresignedURL(ctx context.Context, objectName string, expiry time.Duration) (string, error) {
	args := m.Called(ctx, objectName, expiry)
	return args.String(0), args.Error(1)
}

func (m *MockArchiveService) EnsureBucketExists(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// newTestTransactor backs the Transactor with a pgxmock pool. Repository
// calls are mocked so only Begin/Commit/Rollback hit the pool.
func newTestTransactor(t *testing.T) (*repositories.Transactor, pgxmock.PgxPoolIface) {
	t.Helper()
	pool, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	return repositories.NewTransactor(pool), pool
}
