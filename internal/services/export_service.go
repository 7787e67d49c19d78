package services

import (
	"context"
	"fmt"

	"stockroom/internal/common"
	"stockroom/internal/domain"
	"stockroom/internal/models"
	"stockroom/internal/repositories"

	"github.com/xuri/excelize/v2"
)

const exportSheet = "Sheet1"

// ExportService renders request and order histories as xlsx workbooks.
// Employees export their own requests, suppliers their own orders, and admins
// everything.
type ExportService interface {
	ExportRequests(ctx context.Context, caller *models.User) (*excelize.File, error)
	ExportOrders(ctx context.Context, caller *models.User) (*excelize.File, error)
}

type exportService struct {
	requestRepo repositories.RequestRepository
	orderRepo   repositories.OrderRepository
}

func NewExportService(requestRepo repositories.RequestRepository, orderRepo repositories.OrderRepository) ExportService {
	return &exportService{requestRepo: requestRepo, orderRepo: orderRepo}
}

// exportPageSize bounds a single export; histories beyond this are truncated.
const exportPageSize = 10000

func (s *exportService) ExportRequests(ctx context.Context, caller *models.User) (*excelize.File, error) {
	var (
		requests []*models.RequestDetail
		err      error
	)
	if caller.Role == models.RoleAdmin {
		requests, err = s.requestRepo.List(ctx, exportPageSize, 0)
	} else {
		requests, err = s.requestRepo.ListByEmployee(ctx, caller.ID, exportPageSize, 0)
	}
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()

	// Headers
	f.SetCellValue(exportSheet, "A1", "Item")
	f.SetCellValue(exportSheet, "B1", "Employee")
	f.SetCellValue(exportSheet, "C1", "Quantity")
	f.SetCellValue(exportSheet, "D1", "Status")
	f.SetCellValue(exportSheet, "E1", "Reason")
	f.SetCellValue(exportSheet, "F1", "AdminResponse")
	f.SetCellValue(exportSheet, "G1", "CreatedAt")

	for i, r := range requests {
		row := fmt.Sprint(i + 2)
		f.SetCellValue(exportSheet, "A"+row, r.ItemName)
		f.SetCellValue(exportSheet, "B"+row, r.EmployeeName)
		f.SetCellValue(exportSheet, "C"+row, r.Quantity)
		f.SetCellValue(exportSheet, "D"+row, r.Status)
		f.SetCellValue(exportSheet, "E"+row, common.SafeString(r.Reason))
		f.SetCellValue(exportSheet, "F"+row, common.SafeString(r.AdminResponse))
		f.SetCellValue(exportSheet, "G"+row, r.CreatedAt.Format("2006-01-02 15:04:05"))
	}

	return f, nil
}

func (s *exportService) ExportOrders(ctx context.Context, caller *models.User) (*excelize.File, error) {
	var (
		orders []*models.OrderDetail
		err    error
	)
	switch caller.Role {
	case models.RoleAdmin:
		orders, err = s.orderRepo.List(ctx, exportPageSize, 0)
	case models.RoleSupplier:
		orders, err = s.orderRepo.ListBySupplier(ctx, caller.ID, exportPageSize, 0)
	default:
		return nil, domain.Forbidden("employees cannot export supplier orders")
	}
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()

	f.SetCellValue(exportSheet, "A1", "Item")
	f.SetCellValue(exportSheet, "B1", "Supplier")
	f.SetCellValue(exportSheet, "C1", "Quantity")
	f.SetCellValue(exportSheet, "D1", "Status")
	f.SetCellValue(exportSheet, "E1", "CreatedAt")
	f.SetCellValue(exportSheet, "F1", "UpdatedAt")

	for i, o := range orders {
		row := fmt.Sprint(i + 2)
		f.SetCellValue(exportSheet, "A"+row, o.ItemName)
		f.SetCellValue(exportSheet, "B"+row, o.SupplierName)
		f.SetCellValue(exportSheet, "C"+row, o.Quantity)
		f.SetCellValue(exportSheet, "D"+row, o.Status)
		f.SetCellValue(exportSheet, "E"+row, o.CreatedAt.Format("2006-01-02 15:04:05"))
		f.SetCellValue(exportSheet, "F"+row, o.UpdatedAt.Format("2006-01-02 15:04:05"))
	}

	return f, nil
}
