package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/discoshop/backend/internal/logging"
	"github.com/discoshop/backend/internal/models"
	"github.com/discoshop/backend/internal/service"
	"github.com/discoshop/backend/internal/transport"
)

// UserHTTP is the admin surface over user records. Role gates live in the
// router; handlers assume the caller already passed them.
type UserHTTP struct {
	Svc      *service.UserService
	Validate *transport.Validator
}

func (h *UserHTTP) GetUser(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "user.get")

	id, okID := pathID(c)
	if !okID {
		return fail(c, http.StatusBadRequest, "id must be an integer")
	}

	user, err := h.Svc.GetUser(ctx, id)
	if err != nil {
		l.Warn("get_user_failed", "user_id", id, "error", err)
		return serviceError(c, err)
	}

	return ok(c, http.StatusOK, user)
}

func (h *UserHTTP) PatchUser(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "user.patch")

	id, okID := pathID(c)
	if !okID {
		return fail(c, http.StatusBadRequest, "id must be an integer")
	}

	var req transport.UserPatchRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("patch_user_failed", "status", 400, "reason", "invalid body", "error", err)
		return fail(c, http.StatusBadRequest, "invalid body")
	}
	if issues := h.Validate.Check(req); issues != nil {
		return invalid(c, issues)
	}

	var role *models.Role
	if req.Role != nil {
		r := models.Role(*req.Role)
		role = &r
	}

	user, err := h.Svc.UpdateUser(ctx, id, service.UserUpdate{Name: req.Name, Role: role})
	if err != nil {
		l.Warn("patch_user_failed", "user_id", id, "error", err)
		return serviceError(c, err)
	}

	l.Info("patch_user_success", "user_id", id)
	return ok(c, http.StatusOK, user)
}

func (h *UserHTTP) DeleteUser(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "user.delete")

	id, okID := pathID(c)
	if !okID {
		return fail(c, http.StatusBadRequest, "id must be an integer")
	}

	if err := h.Svc.DeleteUser(ctx, id); err != nil {
		l.Warn("delete_user_failed", "user_id", id, "error", err)
		return serviceError(c, err)
	}

	l.Info("delete_user_success", "user_id", id)
	return c.NoContent(http.StatusNoContent)
}

func (h *UserHTTP) ChangeEmail(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "user.change_email")

	id, okID := pathID(c)
	if !okID {
		return fail(c, http.StatusBadRequest, "id must be an integer")
	}

	var req transport.ChangeEmailRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("change_email_failed", "status", 400, "reason", "invalid body", "error", err)
		return fail(c, http.StatusBadRequest, "invalid body")
	}
	if issues := h.Validate.Check(req); issues != nil {
		return invalid(c, issues)
	}

	user, err := h.Svc.ChangeEmail(ctx, id, req.Email)
	if err != nil {
		l.Warn("change_email_failed", "user_id", id, "error", err)
		return serviceError(c, err)
	}

	l.Info("change_email_success", "user_id", id)
	return ok(c, http.StatusOK, user)
}

func (h *UserHTTP) ChangePassword(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "user.change_password")

	id, okID := pathID(c)
	if !okID {
		return fail(c, http.StatusBadRequest, "id must be an integer")
	}

	var req transport.ChangePasswordRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("change_password_failed", "status", 400, "reason", "invalid body", "error", err)
		return fail(c, http.StatusBadRequest, "invalid body")
	}
	if issues := h.Validate.Check(req); issues != nil {
		return invalid(c, issues)
	}

	if err := h.Svc.ChangePassword(ctx, id, req.Password); err != nil {
		l.Warn("change_password_failed", "user_id", id, "error", err)
		return serviceError(c, err)
	}

	l.Info("change_password_success", "user_id", id)
	return ok(c, http.StatusOK, map[string]any{"message": "password updated"})
}
