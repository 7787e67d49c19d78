package handlers

import (
	"net/http"
	"strconv"

	"stockroom/internal/common"
	"stockroom/internal/services"

	"github.com/labstack/echo/v4"
)

// TransactionHandlers exposes the audit trail of inventory mutations.
type TransactionHandlers struct {
	txLog services.TransactionLogService
}

func NewTransactionHandlers(txLog services.TransactionLogService) *TransactionHandlers {
	return &TransactionHandlers{txLog: txLog}
}

// List returns transaction log entries, most recent first.
func (h *TransactionHandlers) List(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	offset, _ := strconv.Atoi(c.QueryParam("offset"))
	limit, offset = common.ValidatePaginationParams(limit, offset)

	logs, err := h.txLog.List(c.Request().Context(), limit, offset)
	if err != nil {
		return common.SendDomainError(c, err)
	}
	return c.JSON(http.StatusOK, logs)
}
