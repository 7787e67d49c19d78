package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"stockroom/internal/common"
	"stockroom/internal/models"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func invokeWithRole(t *testing.T, role string, allowed ...string) error {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()

	user := &models.User{ID: uuid.New(), Username: "someone", Role: role}
	req = req.WithContext(common.WithUser(req.Context(), user))
	c := e.NewContext(req, rec)

	handler := RequireRole(allowed...)(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	return handler(c)
}

func TestRequireRole_AllowsListedRole(t *testing.T) {
	err := invokeWithRole(t, models.RoleAdmin, models.RoleAdmin, models.RoleEmployee)
	assert.NoError(t, err)
}

func TestRequireRole_RejectsUnlistedRole(t *testing.T) {
	err := invokeWithRole(t, models.RoleSupplier, models.RoleAdmin)

	httpErr, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusForbidden, httpErr.Code)
}

func TestRequireRole_MissingUserUnauthorized(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	c := e.NewContext(req, httptest.NewRecorder())

	handler := RequireRole(models.RoleAdmin)(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	err := handler(c)

	httpErr, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, httpErr.Code)
}
