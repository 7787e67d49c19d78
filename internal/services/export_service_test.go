package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"stockroom/internal/domain"
	"stockroom/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportRequests_EmployeeGetsOwnRows(t *testing.T) {
	requestRepo := new(MockRequestRepository)
	orderRepo := new(MockOrderRepository)
	service := NewExportService(requestRepo, orderRepo)

	employee := &models.User{ID: uuid.New(), Username: "emp", Role: models.RoleEmployee}
	reason := "broke the old one"
	created := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	own := []*models.RequestDetail{
		{
			Request: models.Request{
				Quantity:  2,
				Reason:    &reason,
				Status:    models.RequestApproved,
				CreatedAt: created,
			},
			ItemName:     "Stapler",
			EmployeeName: "emp",
		},
	}
	requestRepo.On("ListByEmployee", context.Background(), employee.ID, exportPageSize, 0).Return(own, nil)

	f, err := service.ExportRequests(context.Background(), employee)
	require.NoError(t, err)

	rows, err := f.GetRows(exportSheet)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Item", rows[0][0])
	assert.Equal(t, "Stapler", rows[1][0])
	assert.Equal(t, "emp", rows[1][1])
	assert.Equal(t, "2", rows[1][2])
	assert.Equal(t, models.RequestApproved, rows[1][3])
	requestRepo.AssertNotCalled(t, "List")
}

func TestExportOrders_EmployeeForbidden(t *testing.T) {
	service := NewExportService(new(MockRequestRepository), new(MockOrderRepository))
	employee := &models.User{ID: uuid.New(), Role: models.RoleEmployee}

	_, err := service.ExportOrders(context.Background(), employee)
	assert.True(t, errors.Is(err, domain.ErrForbidden))
}

func TestExportOrders_AdminGetsAllRows(t *testing.T) {
	requestRepo := new(MockRequestRepository)
	orderRepo := new(MockOrderRepository)
	service := NewExportService(requestRepo, orderRepo)

	admin := &models.User{ID: uuid.New(), Role: models.RoleAdmin}
	now := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	all := []*models.OrderDetail{
		{
			Order: models.Order{
				Quantity:  40,
				Status:    models.OrderShipped,
				CreatedAt: now,
				UpdatedAt: now,
			},
			ItemName:     "Paper",
			SupplierName: "supp",
		},
	}
	orderRepo.On("List", context.Background(), exportPageSize, 0).Return(all, nil)

	f, err := service.ExportOrders(context.Background(), admin)
	require.NoError(t, err)

	rows, err := f.GetRows(exportSheet)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Paper", rows[1][0])
	assert.Equal(t, "supp", rows[1][1])
	assert.Equal(t, models.OrderShipped, rows[1][3])
}
