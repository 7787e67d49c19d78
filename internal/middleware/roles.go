package middleware

import (
	"net/http"

	"stockroom/internal/common"

	"github.com/labstack/echo/v4"
)

// RequireRole restricts a route group to the given roles. It must run after
// JWTMiddleware; a missing user in the context means the chain is miswired and
// the request is rejected.
func RequireRole(roles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(roles))
	for _, role := range roles {
		allowed[role] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user, ok := common.GetUserFromContext(c.Request().Context())
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "Missing token")
			}
			if _, ok := allowed[user.Role]; !ok {
				return echo.NewHTTPError(http.StatusForbidden, "Insufficient role")
			}
			return next(c)
		}
	}
}
