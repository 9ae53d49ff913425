package httpserver

import (
	"net/http"

	"github.com/elastic/go-elasticsearch/v9"
	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/storefront/internal/logging"
	"github.com/Skotchmaster/storefront/internal/service/search"
	"github.com/Skotchmaster/storefront/internal/transport"
	"github.com/Skotchmaster/storefront/internal/util"
)

type SearchHTTP struct {
	ES    *elasticsearch.Client
	Index string
}

func NewSearchHTTP(es *elasticsearch.Client, index string) *SearchHTTP {
	return &SearchHTTP{ES: es, Index: index}
}

func (h *SearchHTTP) Search(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "search")

	q := c.QueryParam("q")
	if q == "" {
		return c.JSON(http.StatusBadRequest, transport.ErrorResponse{Error: "q is required"})
	}

	page := util.ParseIntDefault(c.QueryParam("page"), 1)
	from, size := util.Calculate(page, util.DefaultPageSize)

	total, products, err := search.Search(ctx, h.ES, h.Index, q, from, size)
	if err != nil {
		l.Error("search_error", "status", 500, "error", err)
		return c.JSON(http.StatusInternalServerError, transport.ErrorResponse{Error: "Internal server error"})
	}

	return c.JSON(http.StatusOK, map[string]any{"total": total, "products": products})
}
