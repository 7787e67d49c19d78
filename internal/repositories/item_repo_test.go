package repositories

import (
	"context"
	"errors"
	"testing"
	"time"

	"stockroom/internal/domain"
	"stockroom/internal/models"

	"github.com/google/uuid"
	pgx "github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type ItemRepoTestSuite struct {
	suite.Suite
	mock    pgxmock.PgxPoolIface
	repo    ItemRepository
	itemID  uuid.UUID
	context context.Context
}

func (suite *ItemRepoTestSuite) SetupTest() {
	mock, err := pgxmock.NewPool()
	assert.NoError(suite.T(), err)
	suite.mock = mock

	suite.repo = NewItemRepo(mock)
	suite.itemID = uuid.New()
	suite.context = context.Background()
}

func (suite *ItemRepoTestSuite) TearDownTest() {
	suite.mock.Close()
}

func TestItemRepoTestSuite(t *testing.T) {
	suite.Run(t, new(ItemRepoTestSuite))
}

func (suite *ItemRepoTestSuite) TestGetByID_Success() {
	now := time.Now()
	rows := pgxmock.NewRows([]string{"id", "name", "description", "stock", "low_stock_threshold", "created_at", "updated_at"}).
		AddRow(suite.itemID, "Stapler", "Red swingline", 25, 10, now, now)

	suite.mock.ExpectQuery(`SELECT id, name, description, stock, low_stock_threshold, created_at, updated_at\s+FROM items\s+WHERE id = \$1`).
		WithArgs(suite.itemID).
		WillReturnRows(rows)

	item, err := suite.repo.GetByID(suite.context, suite.itemID)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "Stapler", item.Name)
	assert.Equal(suite.T(), 25, item.Stock)
}

func (suite *ItemRepoTestSuite) TestGetByID_NotFound() {
	suite.mock.ExpectQuery(`SELECT id, name, description, stock, low_stock_threshold, created_at, updated_at\s+FROM items\s+WHERE id = \$1`).
		WithArgs(suite.itemID).
		WillReturnError(pgx.ErrNoRows)

	item, err := suite.repo.GetByID(suite.context, suite.itemID)
	assert.Nil(suite.T(), item)
	assert.True(suite.T(), errors.Is(err, domain.ErrNotFound))
}

func (suite *ItemRepoTestSuite) TestAdjustStock_Success() {
	rows := pgxmock.NewRows([]string{"stock"}).AddRow(15)

	suite.mock.ExpectQuery(`UPDATE items\s+SET stock = stock \+ \$2, updated_at = NOW\(\)\s+WHERE id = \$1 AND stock \+ \$2 >= 0\s+RETURNING stock`).
		WithArgs(suite.itemID, -5).
		WillReturnRows(rows)

	newStock, err := suite.repo.AdjustStock(suite.context, suite.itemID, -5)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), 15, newStock)
}

func (suite *ItemRepoTestSuite) TestAdjustStock_InsufficientStock() {
	suite.mock.ExpectQuery(`UPDATE items\s+SET stock = stock \+ \$2, updated_at = NOW\(\)\s+WHERE id = \$1 AND stock \+ \$2 >= 0\s+RETURNING stock`).
		WithArgs(suite.itemID, -50).
		WillReturnError(pgx.ErrNoRows)

	suite.mock.ExpectQuery(`SELECT stock FROM items WHERE id = \$1`).
		WithArgs(suite.itemID).
		WillReturnRows(pgxmock.NewRows([]string{"stock"}).AddRow(10))

	_, err := suite.repo.AdjustStock(suite.context, suite.itemID, -50)
	assert.True(suite.T(), errors.Is(err, domain.ErrInsufficientStock))
}

func (suite *ItemRepoTestSuite) TestAdjustStock_ItemNotFound() {
	suite.mock.ExpectQuery(`UPDATE items\s+SET stock = stock \+ \$2, updated_at = NOW\(\)\s+WHERE id = \$1 AND stock \+ \$2 >= 0\s+RETURNING stock`).
		WithArgs(suite.itemID, 5).
		WillReturnError(pgx.ErrNoRows)

	suite.mock.ExpectQuery(`SELECT stock FROM items WHERE id = \$1`).
		WithArgs(suite.itemID).
		WillReturnError(pgx.ErrNoRows)

	_, err := suite.repo.AdjustStock(suite.context, suite.itemID, 5)
	assert.True(suite.T(), errors.Is(err, domain.ErrNotFound))
}

func (suite *ItemRepoTestSuite) TestUpsert_TopsUpExistingStock() {
	row := &models.ItemRow{
		Name:              "Stapler",
		Description:       "Red swingline",
		Stock:             20,
		LowStockThreshold: 10,
	}

	suite.mock.ExpectExec(`INSERT INTO items \(id, name, description, stock, low_stock_threshold, created_at, updated_at\)\s+VALUES \(\$1, \$2, \$3, \$4, \$5, NOW\(\), NOW\(\)\)\s+ON CONFLICT \(name, description\) DO UPDATE SET stock = items\.stock \+ EXCLUDED\.stock, updated_at = NOW\(\)`).
		WithArgs(pgxmock.AnyArg(), row.Name, row.Description, row.Stock, row.LowStockThreshold).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err := suite.repo.UpsertByNameAndDescription(suite.context, row)
	assert.NoError(suite.T(), err)
}

func (suite *ItemRepoTestSuite) TestLowStock_ReturnsOnlyFlaggedItems() {
	now := time.Now()
	rows := pgxmock.NewRows([]string{"id", "name", "description", "stock", "low_stock_threshold", "created_at", "updated_at"}).
		AddRow(suite.itemID, "Paper", "A4 ream", 3, 10, now, now)

	suite.mock.ExpectQuery(`SELECT id, name, description, stock, low_stock_threshold, created_at, updated_at\s+FROM items\s+WHERE stock <= low_stock_threshold\s+ORDER BY stock ASC`).
		WillReturnRows(rows)

	items, err := suite.repo.LowStock(suite.context)
	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), items, 1)
	assert.Equal(suite.T(), "Paper", items[0].Name)
}
