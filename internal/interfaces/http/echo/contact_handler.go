package echo

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	app "github.com/mohammadpnp/contact-import/internal/application/contact"
)

type ContactHandler struct {
	useCase app.GetContactByEmail
}

func NewContactHandler(useCase app.GetContactByEmail) *ContactHandler {
	return &ContactHandler{useCase: useCase}
}

func (h *ContactHandler) GetContactByEmail(c echo.Context) error {
	out, err := h.useCase.Execute(c.Request().Context(), app.GetContactByEmailInput{
		Email: c.QueryParam("email"),
	})
	if err != nil {
		if errors.Is(err, app.ErrInvalidEmail) {
			return errorJSON(c, http.StatusBadRequest, "invalid_email", "email must be a valid address")
		}
		if errors.Is(err, app.ErrContactNotFound) {
			return errorJSON(c, http.StatusNotFound, "not_found", "contact not found")
		}

		return errorJSON(c, http.StatusInternalServerError, "internal_error", "failed to get contact")
	}

	return c.JSON(http.StatusOK, apiResponse{Data: out})
}
