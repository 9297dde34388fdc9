package httpserver

import (
	"context"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/inventory/internal/logging"
	"github.com/Skotchmaster/inventory/internal/models"
	"github.com/Skotchmaster/inventory/internal/search"
	"github.com/Skotchmaster/inventory/internal/transport"
)

type ProductSearcher interface {
	Search(ctx context.Context, query string, size int) (int64, []models.ProductRow, error)
}

type SearchHTTP struct {
	Searcher ProductSearcher
}

func (h *SearchHTTP) SearchProducts(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.search")

	q := strings.TrimSpace(c.QueryParam("q"))
	if q == "" {
		l.Warn("search_failed", "status", 400, "reason", "empty query")
		return echo.NewHTTPError(http.StatusBadRequest, "q is required")
	}

	total, items, err := h.Searcher.Search(ctx, q, search.DefaultSize)
	if err != nil {
		l.Error("search_failed", "status", 500, "reason", "search backend error", "error", err)
		return storageError("search failed", err)
	}

	return c.JSON(http.StatusOK, transport.SearchResponse{Total: total, Products: items})
}
