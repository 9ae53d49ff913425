package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/Skotchmaster/storefront/internal/logging"
	"github.com/Skotchmaster/storefront/internal/service"
	"github.com/Skotchmaster/storefront/internal/transport"
	"github.com/Skotchmaster/storefront/internal/util"
)

type CatalogHTTP struct {
	Svc *service.CatalogService
}

func (h *CatalogHTTP) GetProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.get_product")

	id := c.Param("id")
	product, err := h.Svc.GetProduct(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			l.Warn("get_product_error", "status", 404, "id", id)
			return c.JSON(http.StatusNotFound, transport.ErrorResponse{Error: "Product not found"})
		}
		l.Error("get_product_error", "status", 500, "error", err)
		return c.JSON(http.StatusInternalServerError, transport.ErrorResponse{Error: "Internal server error"})
	}

	return c.JSON(http.StatusOK, product)
}

// ListProducts is the listing page data: a fixed page of 12, newest first,
// optionally narrowed by the free-text query.
func (h *CatalogHTTP) ListProducts(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.list_products")

	q := c.QueryParam("q")
	page := util.ParseIntDefault(c.QueryParam("page"), 1)

	res, err := h.Svc.ListProducts(ctx, q, page)
	if err != nil {
		l.Error("list_products_error", "status", 500, "error", err)
		return c.JSON(http.StatusInternalServerError, transport.ErrorResponse{Error: "Internal server error"})
	}

	l.Info("list_products_success", "q", q, "page", res.Page, "total", res.Total)
	return c.JSON(http.StatusOK, map[string]any{
		"data": res.Products,
		"meta": map[string]any{
			"page":     res.Page,
			"size":     res.Size,
			"total":    res.Total,
			"has_next": res.HasNext,
			"has_prev": res.HasPrev,
		},
	})
}
