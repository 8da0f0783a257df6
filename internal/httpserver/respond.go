package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/discoshop/backend/internal/service"
	"github.com/discoshop/backend/internal/transport"
)

// Envelope is the uniform response shape for every endpoint.
type Envelope struct {
	Success bool              `json:"success"`
	Message string            `json:"message,omitempty"`
	Data    any               `json:"data,omitempty"`
	Issues  []transport.Issue `json:"issues,omitempty"`
}

func ok(c echo.Context, code int, data any) error {
	return c.JSON(code, Envelope{Success: true, Data: data})
}

func fail(c echo.Context, code int, message string) error {
	return c.JSON(code, Envelope{Success: false, Message: message})
}

func invalid(c echo.Context, issues []transport.Issue) error {
	return c.JSON(http.StatusBadRequest, Envelope{
		Success: false,
		Message: "invalid request",
		Issues:  issues,
	})
}

// serviceError maps the service error taxonomy onto status codes at the
// boundary. Unrecognized errors surface as a generic 500; their detail
// goes to the log, never to the caller.
func serviceError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, service.ErrValidation),
		errors.Is(err, service.ErrInvalidLineItem),
		errors.Is(err, service.ErrInvalidStatus),
		errors.Is(err, service.ErrInvalidTransition),
		errors.Is(err, service.ErrNothingToUpdate):
		return fail(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrNotFound), errors.Is(err, gorm.ErrRecordNotFound):
		return fail(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrConflict), errors.Is(err, gorm.ErrDuplicatedKey):
		return fail(c, http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrForbidden):
		return fail(c, http.StatusForbidden, err.Error())
	}
	return fail(c, http.StatusInternalServerError, "internal error")
}
