package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/discoshop/backend/internal/cart"
	"github.com/discoshop/backend/internal/logging"
	"github.com/discoshop/backend/internal/session"
	"github.com/discoshop/backend/internal/transport"
)

type CartHTTP struct {
	Store    *cart.Store
	Validate *transport.Validator
}

// ownerKey maps the request identity onto a cart namespace. Anonymous
// callers share the guest key; logging in or out switches keys without
// merging lists.
func (h *CartHTTP) ownerKey(c echo.Context) string {
	if ident := session.FromContext(c); ident != nil {
		return cart.OwnerKey(ident.ID)
	}
	return cart.GuestKey
}

func (h *CartHTTP) GetCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.get")

	lines, err := h.Store.Read(h.ownerKey(c))
	if err != nil {
		l.Error("get_cart_failed", "status", 500, "error", err)
		return fail(c, http.StatusInternalServerError, "cannot read cart")
	}

	return ok(c, http.StatusOK, lines)
}

// PutCart replaces the whole persisted list, the same full-rewrite
// contract the storefront uses against local storage.
func (h *CartHTTP) PutCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.put")

	var req transport.PutCartRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("put_cart_failed", "status", 400, "reason", "invalid body", "error", err)
		return fail(c, http.StatusBadRequest, "invalid body")
	}
	if issues := h.Validate.Check(req); issues != nil {
		return invalid(c, issues)
	}

	lines := make([]cart.Line, 0, len(req.Lines))
	for _, dto := range req.Lines {
		lines = append(lines, cart.Line{ProductID: dto.ID, Qty: dto.Qty})
	}

	if err := h.Store.Write(lines, h.ownerKey(c)); err != nil {
		l.Error("put_cart_failed", "status", 500, "error", err)
		return fail(c, http.StatusInternalServerError, "cannot write cart")
	}

	return ok(c, http.StatusOK, lines)
}

func (h *CartHTTP) ClearCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.clear")

	if err := h.Store.Write(cart.Clear(nil), h.ownerKey(c)); err != nil {
		l.Error("clear_cart_failed", "status", 500, "error", err)
		return fail(c, http.StatusInternalServerError, "cannot clear cart")
	}

	return c.NoContent(http.StatusNoContent)
}
