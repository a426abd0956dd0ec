package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/wholesaleworks/marketplace/internal/models"
	"github.com/wholesaleworks/marketplace/internal/store"
)

const (
	categoriesLimit  = 6
	newArrivalsLimit = 8
)

type CatalogStore interface {
	Categories(ctx context.Context, limit int64) ([]models.Category, error)
	ProductByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error)
	ProductsByCategory(ctx context.Context, category string) ([]models.Product, error)
	AllProducts(ctx context.Context) ([]models.Product, error)
	ProductsByOwner(ctx context.Context, email string) ([]models.Product, error)
	LatestProducts(ctx context.Context, limit int64) ([]models.Product, error)
}

type CatalogHandler struct {
	Store CatalogStore
}

func (h *CatalogHandler) GetCategories(c echo.Context) error {
	categories, err := h.Store.Categories(c.Request().Context(), 0)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, categories)
}

func (h *CatalogHandler) GetCategoriesLimited(c echo.Context) error {
	categories, err := h.Store.Categories(c.Request().Context(), categoriesLimit)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, categories)
}

func (h *CatalogHandler) GetCategoryProducts(c echo.Context) error {
	products, err := h.Store.ProductsByCategory(c.Request().Context(), c.Param("category"))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, products)
}

func (h *CatalogHandler) GetProduct(c echo.Context) error {
	id, err := parseObjectID(c, "id")
	if err != nil {
		return err
	}

	product, err := h.Store.ProductByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "product not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, product)
}

func (h *CatalogHandler) GetNewArrivals(c echo.Context) error {
	products, err := h.Store.LatestProducts(c.Request().Context(), newArrivalsLimit)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, products)
}

func (h *CatalogHandler) GetProducts(c echo.Context) error {
	products, err := h.Store.AllProducts(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, products)
}

func (h *CatalogHandler) GetMyProducts(c echo.Context) error {
	products, err := h.Store.ProductsByOwner(c.Request().Context(), c.QueryParam("email"))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, products)
}
