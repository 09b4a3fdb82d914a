package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/credential-service/internal/core/ports"
)

type ProfileHandler struct {
	accounts ports.AccountService
}

func NewProfileHandler(accounts ports.AccountService) *ProfileHandler {
	return &ProfileHandler{accounts: accounts}
}

// Get handles GET /profile.
//
// @Summary      Get the authenticated account
// @Tags         profile
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  profileResponse
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Failure      500  {object}  errorResponse
// @Router       /profile [get]
func (h *ProfileHandler) Get(c echo.Context) error {
	id, err := ctxAccountID(c)
	if err != nil {
		return err
	}

	account, err := h.accounts.Profile(c.Request().Context(), id)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, profileResponse{
		ID:        account.ID,
		Email:     account.Email,
		CreatedAt: account.CreatedAt,
	})
}
