package middleware

import (
	"context"
	"fmt"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/credential-service/internal/api/metrics"
	"github.com/99minutos/credential-service/internal/core/domain"
	"github.com/99minutos/credential-service/internal/core/ports"
)

const (
	bearerPrefix = "Bearer "

	// AccountIDKey is the echo context key holding the authenticated subject.
	AccountIDKey = "account_id"
)

type contextKey string

const accountIDContextKey contextKey = "account_id"

// ContextWithAccountID stores the authenticated subject in ctx.
func ContextWithAccountID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, accountIDContextKey, id)
}

// AccountIDFromContext returns the authenticated subject, or "" when the
// request did not pass through Auth.
func AccountIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(accountIDContextKey).(string)
	return id
}

// Auth verifies the bearer token exactly once and injects its subject into
// both the echo context and the request context. Rejections are returned as
// domain errors for the central error handler to render.
func Auth(verifier ports.TokenVerifier, recorder metrics.Recorder) echo.MiddlewareFunc {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
			if !strings.HasPrefix(authHeader, bearerPrefix) {
				recorder.IncTokenVerification("no_token")
				return domain.ErrNoTokenProvided
			}

			claim, err := verifier.Verify(authHeader[len(bearerPrefix):])
			if err != nil {
				recorder.IncTokenVerification("invalid")
				return fmt.Errorf("%w: %w", domain.ErrTokenInvalid, err)
			}

			recorder.IncTokenVerification("authenticated")
			c.Set(AccountIDKey, claim.Subject)
			req := c.Request()
			c.SetRequest(req.WithContext(ContextWithAccountID(req.Context(), claim.Subject)))

			return next(c)
		}
	}
}
