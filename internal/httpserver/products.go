package httpserver

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/discoshop/backend/internal/logging"
	"github.com/discoshop/backend/internal/service"
	"github.com/discoshop/backend/internal/transport"
)

type ProductHTTP struct {
	Svc      *service.CatalogService
	Validate *transport.Validator
}

// parseIDs splits a csv query value into product ids, dropping anything
// that is not a positive integer.
func parseIDs(v string) []uint {
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]uint, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		n, err := strconv.ParseUint(p, 10, 32)
		if err != nil || n == 0 {
			continue
		}
		out = append(out, uint(n))
	}
	return out
}

func (h *ProductHTTP) ListProducts(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.list")

	ids := parseIDs(c.QueryParam("ids"))
	category := strings.ToLower(strings.TrimSpace(c.QueryParam("category")))

	items, err := h.Svc.ListProducts(ctx, ids, category)
	if err != nil {
		l.Error("list_products_failed", "status", 500, "error", err)
		return serviceError(c, err)
	}

	return ok(c, http.StatusOK, items)
}

func (h *ProductHTTP) GetProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.get")

	id, okID := pathID(c)
	if !okID {
		l.Warn("get_product_failed", "status", 400, "reason", "invalid id")
		return fail(c, http.StatusBadRequest, "id must be a positive integer")
	}

	product, err := h.Svc.GetProduct(ctx, id)
	if err != nil {
		l.Warn("get_product_failed", "error", err)
		return serviceError(c, err)
	}

	return ok(c, http.StatusOK, product)
}

func (h *ProductHTTP) SearchProducts(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.search")

	query := strings.TrimSpace(c.QueryParam("q"))
	if query == "" {
		return fail(c, http.StatusBadRequest, "q is required")
	}

	page := parseIntDefault(c.QueryParam("page"), 1)
	size := parseIntDefault(c.QueryParam("size"), 20)
	if page < 1 {
		page = 1
	}
	if size < 1 || size > 100 {
		size = 20
	}

	total, items, err := h.Svc.SearchProducts(ctx, query, (page-1)*size, size)
	if err != nil {
		l.Error("search_products_failed", "status", 500, "error", err)
		return fail(c, http.StatusInternalServerError, "search failed")
	}

	return ok(c, http.StatusOK, map[string]any{
		"items": items,
		"total": total,
		"page":  page,
		"size":  size,
	})
}

func (h *ProductHTTP) CreateProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.create")

	var req transport.CreateProductRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("create_product_failed", "status", 400, "reason", "invalid body", "error", err)
		return fail(c, http.StatusBadRequest, "invalid body")
	}
	if issues := h.Validate.Check(req); issues != nil {
		l.Warn("create_product_failed", "status", 400, "reason", "validation")
		return invalid(c, issues)
	}

	prod, err := h.Svc.CreateProduct(ctx, service.CreateProductInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Cover:       req.Cover,
		CategoryIDs: req.CategoryIDs,
	})
	if err != nil {
		l.Warn("create_product_failed", "error", err)
		return serviceError(c, err)
	}

	l.Info("create_product_success", "product_id", prod.ID)
	return ok(c, http.StatusCreated, prod)
}

func (h *ProductHTTP) PatchProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.patch")

	id, okID := pathID(c)
	if !okID {
		l.Warn("patch_product_failed", "status", 400, "reason", "invalid id")
		return fail(c, http.StatusBadRequest, "id must be a positive integer")
	}

	var req transport.PatchProductRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("patch_product_failed", "status", 400, "reason", "invalid body", "error", err)
		return fail(c, http.StatusBadRequest, "invalid body")
	}
	if issues := h.Validate.Check(req); issues != nil {
		return invalid(c, issues)
	}

	prod, err := h.Svc.PatchProduct(ctx, id, service.PatchProductInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Cover:       req.Cover,
	})
	if err != nil {
		l.Warn("patch_product_failed", "error", err)
		return serviceError(c, err)
	}

	l.Info("patch_product_success", "product_id", prod.ID)
	return ok(c, http.StatusOK, prod)
}

func (h *ProductHTTP) DeleteProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.delete")

	id, okID := pathID(c)
	if !okID {
		l.Warn("delete_product_failed", "status", 400, "reason", "invalid id")
		return fail(c, http.StatusBadRequest, "id must be a positive integer")
	}

	if err := h.Svc.DeleteProduct(ctx, id); err != nil {
		l.Warn("delete_product_failed", "error", err)
		return serviceError(c, err)
	}

	l.Info("delete_product_success", "product_id", id)
	return c.NoContent(http.StatusNoContent)
}

func parseIntDefault(s string, def int) int {
	if s == "" {
		return def
	}
	if v, err := strconv.Atoi(s); err == nil {
		return v
	}
	return def
}
