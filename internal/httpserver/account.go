package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/discoshop/backend/internal/logging"
	"github.com/discoshop/backend/internal/service"
	"github.com/discoshop/backend/internal/session"
	"github.com/discoshop/backend/internal/transport"
)

type AccountHTTP struct {
	Svc      *service.UserService
	Validate *transport.Validator
}

func (h *AccountHTTP) GetMe(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "account.get_me")

	ident := session.FromContext(c)
	user, err := h.Svc.GetUser(ctx, ident.ID)
	if err != nil {
		l.Warn("get_me_failed", "error", err)
		return serviceError(c, err)
	}

	return ok(c, http.StatusOK, user)
}

// PatchMe is owner-only self service: name and avatar, nothing else.
func (h *AccountHTTP) PatchMe(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "account.patch_me")

	ident := session.FromContext(c)

	var req transport.AccountPatchRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("patch_me_failed", "status", 400, "reason", "invalid body", "error", err)
		return fail(c, http.StatusBadRequest, "invalid body")
	}
	if issues := h.Validate.Check(req); issues != nil {
		return invalid(c, issues)
	}

	user, err := h.Svc.UpdateAccount(ctx, ident.ID, service.AccountUpdate{
		Name:  req.Name,
		Image: req.Image,
	})
	if err != nil {
		l.Warn("patch_me_failed", "error", err)
		return serviceError(c, err)
	}

	l.Info("patch_me_success", "user_id", ident.ID)
	return ok(c, http.StatusOK, user)
}
