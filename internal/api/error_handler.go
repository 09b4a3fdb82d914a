package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/99minutos/credential-service/internal/core/domain"
)

const internalErrorMessage = "Internal server error"

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error string `json:"error"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their fixed status code and message.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders a consistent JSON envelope: {"error": "<message>"}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		_ = c.JSON(code, errorResponse{Error: msg})
	}
}

// clientErrors lists domain errors in match order. Wrapped errors may carry
// several sentinels; the first match wins.
var clientErrors = []struct {
	err  error
	code int
}{
	{domain.ErrNoTokenProvided, http.StatusUnauthorized},
	{domain.ErrTokenInvalid, http.StatusUnauthorized},
	{domain.ErrValidation, http.StatusBadRequest},
	{domain.ErrPasswordTooLong, http.StatusBadRequest},
	// 409 semantics, surfaced as 400.
	{domain.ErrDuplicateAccount, http.StatusBadRequest},
	{domain.ErrInvalidCredentials, http.StatusUnauthorized},
	{domain.ErrAccountNotFound, http.StatusNotFound},
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	for _, ce := range clientErrors {
		if errors.Is(err, ce.err) {
			return ce.code, ce.err.Error()
		}
	}

	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) && he.Code < http.StatusInternalServerError {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Bool("storage", errors.Is(err, domain.ErrStorage)).
		Bool("configuration", errors.Is(err, domain.ErrConfiguration)).
		Msg("unhandled error")

	return http.StatusInternalServerError, internalErrorMessage
}
