package handlers

import (
	"net/http"
	"strconv"

	"stockroom/internal/common"
	"stockroom/internal/services"

	"github.com/labstack/echo/v4"
)

// RequestHandlers handles employee request HTTP requests
type RequestHandlers struct {
	requestService services.RequestService
	exportService  services.ExportService
}

func NewRequestHandlers(requestService services.RequestService, exportService services.ExportService) *RequestHandlers {
	return &RequestHandlers{
		requestService: requestService,
		exportService:  exportService,
	}
}

// SubmitRequestPayload represents the request submission payload
type SubmitRequestPayload struct {
	ItemID   string  `json:"item_id"`
	Quantity int     `json:"quantity"`
	Reason   *string `json:"reason"`
}

// Submit creates a pending request for the authenticated employee.
func (h *RequestHandlers) Submit(c echo.Context) error {
	user, ok := common.GetUserFromContext(c.Request().Context())
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	var payload SubmitRequestPayload
	if err := c.Bind(&payload); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	itemID, err := common.ValidateUUID(payload.ItemID, "item_id")
	if err != nil {
		return common.SendValidationError(c, "item_id", err.Error())
	}

	request, err := h.requestService.Submit(c.Request().Context(), user, itemID, payload.Quantity, payload.Reason)
	if err != nil {
		return common.SendDomainError(c, err)
	}
	return c.JSON(http.StatusCreated, request)
}

// Get returns a single request visible to the caller.
func (h *RequestHandlers) Get(c echo.Context) error {
	user, ok := common.GetUserFromContext(c.Request().Context())
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	requestID, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	request, err := h.requestService.GetFor(c.Request().Context(), user, requestID)
	if err != nil {
		return common.SendDomainError(c, err)
	}
	return c.JSON(http.StatusOK, request)
}

// List returns requests visible to the caller: all of them for admins, own
// requests for employees.
func (h *RequestHandlers) List(c echo.Context) error {
	user, ok := common.GetUserFromContext(c.Request().Context())
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	offset, _ := strconv.Atoi(c.QueryParam("offset"))
	limit, offset = common.ValidatePaginationParams(limit, offset)

	requests, err := h.requestService.ListFor(c.Request().Context(), user, limit, offset)
	if err != nil {
		return common.SendDomainError(c, err)
	}
	return c.JSON(http.StatusOK, requests)
}

// DecideRequestPayload represents the admin decision payload
type DecideRequestPayload struct {
	Status        string  `json:"status"`
	AdminResponse *string `json:"admin_response"`
}

// Decide approves or rejects a pending request.
func (h *RequestHandlers) Decide(c echo.Context) error {
	user, ok := common.GetUserFromContext(c.Request().Context())
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	requestID, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	var payload DecideRequestPayload
	if err := c.Bind(&payload); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	request, err := h.requestService.Decide(c.Request().Context(), user, requestID, payload.Status, payload.AdminResponse)
	if err != nil {
		return common.SendDomainError(c, err)
	}
	return c.JSON(http.StatusOK, request)
}

// Clear deletes all requests regardless of status.
func (h *RequestHandlers) Clear(c echo.Context) error {
	user, ok := common.GetUserFromContext(c.Request().Context())
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	if err := h.requestService.ClearAll(c.Request().Context(), user); err != nil {
		return common.SendDomainError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "All requests cleared"})
}

// Export streams the caller's visible requests as an xlsx workbook.
func (h *RequestHandlers) Export(c echo.Context) error {
	user, ok := common.GetUserFromContext(c.Request().Context())
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	f, err := h.exportService.ExportRequests(c.Request().Context(), user)
	if err != nil {
		return common.SendDomainError(c, err)
	}

	c.Response().Header().Set(echo.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="requests.xlsx"`)
	c.Response().WriteHeader(http.StatusOK)
	return f.Write(c.Response())
}
