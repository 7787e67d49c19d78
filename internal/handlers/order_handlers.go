package handlers

import (
	"net/http"
	"strconv"

	"stockroom/internal/common"
	"stockroom/internal/services"

	"github.com/labstack/echo/v4"
)

// OrderHandlers handles supplier order HTTP requests
type OrderHandlers struct {
	orderService  services.OrderService
	exportService services.ExportService
}

func NewOrderHandlers(orderService services.OrderService, exportService services.ExportService) *OrderHandlers {
	return &OrderHandlers{
		orderService:  orderService,
		exportService: exportService,
	}
}

// PlaceOrderPayload represents the order placement payload
type PlaceOrderPayload struct {
	ItemID     string `json:"item_id"`
	SupplierID string `json:"supplier_id"`
	Quantity   int    `json:"quantity"`
}

// Place creates a pending replenishment order against a supplier.
func (h *OrderHandlers) Place(c echo.Context) error {
	user, ok := common.GetUserFromContext(c.Request().Context())
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	var payload PlaceOrderPayload
	if err := c.Bind(&payload); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	itemID, err := common.ValidateUUID(payload.ItemID, "item_id")
	if err != nil {
		return common.SendValidationError(c, "item_id", err.Error())
	}
	supplierID, err := common.ValidateUUID(payload.SupplierID, "supplier_id")
	if err != nil {
		return common.SendValidationError(c, "supplier_id", err.Error())
	}

	order, err := h.orderService.Place(c.Request().Context(), user, itemID, supplierID, payload.Quantity)
	if err != nil {
		return common.SendDomainError(c, err)
	}
	return c.JSON(http.StatusCreated, order)
}

// Get returns a single order visible to the caller.
func (h *OrderHandlers) Get(c echo.Context) error {
	user, ok := common.GetUserFromContext(c.Request().Context())
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	orderID, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	order, err := h.orderService.GetFor(c.Request().Context(), user, orderID)
	if err != nil {
		return common.SendDomainError(c, err)
	}
	return c.JSON(http.StatusOK, order)
}

// List returns orders visible to the caller: all of them for admins, own
// orders for suppliers.
func (h *OrderHandlers) List(c echo.Context) error {
	user, ok := common.GetUserFromContext(c.Request().Context())
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	offset, _ := strconv.Atoi(c.QueryParam("offset"))
	limit, offset = common.ValidatePaginationParams(limit, offset)

	orders, err := h.orderService.ListFor(c.Request().Context(), user, limit, offset)
	if err != nil {
		return common.SendDomainError(c, err)
	}
	return c.JSON(http.StatusOK, orders)
}

// AdvanceOrderPayload represents the order status change payload
type AdvanceOrderPayload struct {
	Status string `json:"status"`
}

// Advance moves an order along pending -> shipped -> delivered.
func (h *OrderHandlers) Advance(c echo.Context) error {
	user, ok := common.GetUserFromContext(c.Request().Context())
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	orderID, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	var payload AdvanceOrderPayload
	if err := c.Bind(&payload); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	order, err := h.orderService.Advance(c.Request().Context(), user, orderID, payload.Status)
	if err != nil {
		return common.SendDomainError(c, err)
	}
	return c.JSON(http.StatusOK, order)
}

// Export streams the caller's visible orders as an xlsx workbook.
func (h *OrderHandlers) Export(c echo.Context) error {
	user, ok := common.GetUserFromContext(c.Request().Context())
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	f, err := h.exportService.ExportOrders(c.Request().Context(), user)
	if err != nil {
		return common.SendDomainError(c, err)
	}

	c.Response().Header().Set(echo.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="orders.xlsx"`)
	c.Response().WriteHeader(http.StatusOK)
	return f.Write(c.Response())
}
