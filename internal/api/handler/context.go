package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/99minutos/credential-service/internal/api/middleware"
	"github.com/99minutos/credential-service/internal/core/domain"
)

// ctxAccountID extracts the subject injected by the Auth middleware. An
// empty subject means the route was mounted without the gate, which is
// treated the same as a missing token.
func ctxAccountID(c echo.Context) (string, error) {
	id, _ := c.Get(middleware.AccountIDKey).(string)
	if id == "" {
		id = middleware.AccountIDFromContext(c.Request().Context())
	}
	if id == "" {
		return "", domain.ErrNoTokenProvided
	}
	return id, nil
}
