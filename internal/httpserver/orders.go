package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/discoshop/backend/internal/cart"
	"github.com/discoshop/backend/internal/logging"
	"github.com/discoshop/backend/internal/models"
	"github.com/discoshop/backend/internal/service"
	"github.com/discoshop/backend/internal/session"
	"github.com/discoshop/backend/internal/transport"
)

type OrderHTTP struct {
	Svc      *service.OrderService
	Cart     *cart.Store
	Validate *transport.Validator
}

func (h *OrderHTTP) CreateOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.create")

	ident := session.FromContext(c)

	var req transport.CreateOrderRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("create_order_failed", "status", 400, "reason", "invalid body", "error", err)
		return fail(c, http.StatusBadRequest, "invalid body")
	}
	if issues := h.Validate.Check(req); issues != nil {
		l.Warn("create_order_failed", "status", 400, "reason", "validation")
		return invalid(c, issues)
	}

	lines := make([]service.OrderLineInput, 0, len(req.Lines))
	for _, dto := range req.Lines {
		lines = append(lines, service.OrderLineInput{ProductID: dto.ProductID, Quantity: dto.Quantity})
	}

	order, err := h.Svc.CreateOrder(ctx, ident.ID, lines)
	if err != nil {
		l.Warn("create_order_failed", "error", err)
		return serviceError(c, err)
	}

	// Checkout empties the caller's cart; the order is already committed,
	// so a failure here only logs.
	if err := h.Cart.Write(cart.Clear(nil), cart.OwnerKey(ident.ID)); err != nil {
		l.Warn("cart_clear_failed", "user_id", ident.ID, "error", err)
	}

	l.Info("create_order_success", "order_id", order.ID, "total", order.Total)
	return ok(c, http.StatusCreated, order)
}

func (h *OrderHTTP) ListMyOrders(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.list_mine")

	ident := session.FromContext(c)
	orders, err := h.Svc.ListOrders(ctx, ident.ID)
	if err != nil {
		l.Error("list_orders_failed", "status", 500, "error", err)
		return serviceError(c, err)
	}

	return ok(c, http.StatusOK, orders)
}

func (h *OrderHTTP) Summary(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.summary")

	ident := session.FromContext(c)
	summary, err := h.Svc.Summary(ctx, ident.ID)
	if err != nil {
		l.Error("order_summary_failed", "status", 500, "error", err)
		return serviceError(c, err)
	}

	return ok(c, http.StatusOK, summary)
}

func (h *OrderHTTP) UpdateStatus(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.update_status")

	ident := session.FromContext(c)

	id, okID := pathID(c)
	if !okID {
		l.Warn("update_status_failed", "status", 400, "reason", "invalid id")
		return fail(c, http.StatusBadRequest, "id must be a positive integer")
	}

	var req transport.UpdateStatusRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("update_status_failed", "status", 400, "reason", "invalid body", "error", err)
		return fail(c, http.StatusBadRequest, "invalid body")
	}
	if issues := h.Validate.Check(req); issues != nil {
		return invalid(c, issues)
	}

	order, err := h.Svc.UpdateStatus(ctx, ident.ID, id, models.OrderStatus(req.Status))
	if err != nil {
		l.Warn("update_status_failed", "order_id", id, "target", req.Status, "error", err)
		return serviceError(c, err)
	}

	l.Info("update_status_success", "order_id", order.ID, "status", order.Status)
	return ok(c, http.StatusOK, order)
}
