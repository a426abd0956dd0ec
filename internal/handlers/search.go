package handlers

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/wholesaleworks/marketplace/internal/models"
)

const searchLimit = 20

type Searcher interface {
	Search(ctx context.Context, query string, size int) ([]models.Product, error)
}

type SearchHandler struct {
	Searcher Searcher
}

func (h *SearchHandler) Search(c echo.Context) error {
	if h.Searcher == nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "search is not configured")
	}

	q := c.QueryParam("q")
	if q == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "missing query")
	}

	products, err := h.Searcher.Search(c.Request().Context(), q, searchLimit)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"products": products})
}
