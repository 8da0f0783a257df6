package httpserver

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/discoshop/backend/internal/logging"
	"github.com/discoshop/backend/internal/service"
	"github.com/discoshop/backend/internal/transport"
)

type AuthHTTP struct {
	Svc      *service.AuthService
	Validate *transport.Validator
}

func newCookie(name, value string, exp time.Time) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		Expires:  exp,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
	}
}

func (h *AuthHTTP) Register(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.register")

	var req transport.RegisterRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("register_failed", "status", 400, "reason", "invalid body", "error", err)
		return fail(c, http.StatusBadRequest, "invalid body")
	}
	if issues := h.Validate.Check(req); issues != nil {
		l.Warn("register_failed", "status", 400, "reason", "validation")
		return invalid(c, issues)
	}

	user, err := h.Svc.Register(ctx, req.Name, req.Email, req.Password)
	if err != nil {
		l.Warn("register_failed", "error", err)
		return serviceError(c, err)
	}

	l.Info("register_success", "user_id", user.ID)
	return ok(c, http.StatusCreated, user)
}

func (h *AuthHTTP) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.login")

	var req transport.LoginRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("login_failed", "status", 400, "reason", "invalid body", "error", err)
		return fail(c, http.StatusBadRequest, "invalid body")
	}
	if issues := h.Validate.Check(req); issues != nil {
		return invalid(c, issues)
	}

	user, pair, err := h.Svc.Login(ctx, req.Email, req.Password)
	if err != nil {
		l.Warn("login_failed", "reason", "invalid credentials")
		return fail(c, http.StatusUnauthorized, "invalid credentials")
	}

	c.SetCookie(newCookie("accessToken", pair.Access, pair.AccessExp))
	c.SetCookie(newCookie("refreshToken", pair.Refresh, pair.RefreshExp))

	l.Info("login_success", "user_id", user.ID)
	return ok(c, http.StatusOK, map[string]any{
		"user":         user,
		"access_token": pair.Access,
	})
}

func (h *AuthHTTP) Logout(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.logout")

	if cookie, err := c.Cookie("refreshToken"); err == nil && cookie.Value != "" {
		if err := h.Svc.Logout(ctx, cookie.Value); err != nil {
			l.Warn("logout_revoke_failed", "error", err)
		}
	}

	expired := time.Now().Add(-time.Hour)
	c.SetCookie(newCookie("accessToken", "", expired))
	c.SetCookie(newCookie("refreshToken", "", expired))

	l.Info("logout_success")
	return ok(c, http.StatusOK, map[string]any{"message": "logged out"})
}
