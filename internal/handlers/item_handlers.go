package handlers

import (
	"net/http"
	"strconv"

	"stockroom/internal/common"
	"stockroom/internal/services"

	"github.com/labstack/echo/v4"
)

// ItemHandlers handles inventory item HTTP requests
type ItemHandlers struct {
	inventoryService services.InventoryService
	importService    services.ImportService
}

func NewItemHandlers(inventoryService services.InventoryService, importService services.ImportService) *ItemHandlers {
	return &ItemHandlers{
		inventoryService: inventoryService,
		importService:    importService,
	}
}

// List returns the inventory catalogue, paginated.
func (h *ItemHandlers) List(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	offset, _ := strconv.Atoi(c.QueryParam("offset"))
	limit, offset = common.ValidatePaginationParams(limit, offset)

	items, err := h.inventoryService.List(c.Request().Context(), limit, offset)
	if err != nil {
		return common.SendDomainError(c, err)
	}
	return c.JSON(http.StatusOK, items)
}

// Get returns a single item by id.
func (h *ItemHandlers) Get(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	item, err := h.inventoryService.GetByID(c.Request().Context(), id)
	if err != nil {
		return common.SendDomainError(c, err)
	}
	return c.JSON(http.StatusOK, item)
}

// Stock returns the current stock level of an item.
func (h *ItemHandlers) Stock(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	stock, err := h.inventoryService.GetStock(c.Request().Context(), id)
	if err != nil {
		return common.SendDomainError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]int{"stock": stock})
}

// AdjustStockRequest represents a manual stock adjustment payload
type AdjustStockRequest struct {
	Delta int `json:"delta"`
}

// AdjustStock applies a signed stock delta to an item.
func (h *ItemHandlers) AdjustStock(c echo.Context) error {
	user, ok := common.GetUserFromContext(c.Request().Context())
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	var req AdjustStockRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}
	if req.Delta == 0 {
		return common.SendValidationError(c, "delta", "delta must be non-zero")
	}

	stock, err := h.inventoryService.AdjustStock(c.Request().Context(), user, id, req.Delta)
	if err != nil {
		return common.SendDomainError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]int{"stock": stock})
}

// LowStock returns items at or below their low stock threshold.
func (h *ItemHandlers) LowStock(c echo.Context) error {
	items, err := h.inventoryService.LowStock(c.Request().Context())
	if err != nil {
		return common.SendDomainError(c, err)
	}
	return c.JSON(http.StatusOK, items)
}

// Import loads items from an uploaded xlsx workbook.
func (h *ItemHandlers) Import(c echo.Context) error {
	user, ok := common.GetUserFromContext(c.Request().Context())
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return common.SendValidationError(c, "file", "file is required")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return common.SendClientError(c, "Failed to open uploaded file")
	}
	defer file.Close()

	result, err := h.importService.ImportItems(c.Request().Context(), user, fileHeader.Filename, file)
	if err != nil {
		return common.SendDomainError(c, err)
	}
	return c.JSON(http.StatusOK, result)
}

// LastImport returns the most recent import result, including its archive
// download link while that link is still valid.
func (h *ItemHandlers) LastImport(c echo.Context) error {
	user, ok := common.GetUserFromContext(c.Request().Context())
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	result, err := h.importService.LastResult(c.Request().Context(), user)
	if err != nil {
		return common.SendDomainError(c, err)
	}
	return c.JSON(http.StatusOK, result)
}
