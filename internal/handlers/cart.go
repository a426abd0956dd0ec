package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/wholesaleworks/marketplace/internal/events"
	"github.com/wholesaleworks/marketplace/internal/jwtmiddleware"
	"github.com/wholesaleworks/marketplace/internal/models"
	"github.com/wholesaleworks/marketplace/internal/store"
)

type CartStore interface {
	AddToCart(ctx context.Context, entry *models.CartEntry) error
	RemoveFromCart(ctx context.Context, id primitive.ObjectID) (*models.CartEntry, error)
	CartByEmail(ctx context.Context, email string) ([]models.CartEntry, error)
	CartEntryByID(ctx context.Context, id primitive.ObjectID) (*models.CartEntry, error)
}

type CartHandler struct {
	Store    CartStore
	Producer *events.Producer
}

func (h *CartHandler) AddToCart(c echo.Context) error {
	email, err := jwtmiddleware.TokenEmail(c)
	if err != nil {
		return err
	}

	var req struct {
		ProductID string `json:"product_id"`
		Quantity  any    `json:"quantity"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	productID, err := primitive.ObjectIDFromHex(req.ProductID)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid product id")
	}
	quantity, err := toInt("quantity", req.Quantity)
	if err != nil {
		return err
	}
	if quantity < 1 {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, "quantity must be positive")
	}

	entry := models.CartEntry{
		ProductID: productID,
		Email:     email,
		Quantity:  quantity,
	}

	if err := h.Store.AddToCart(c.Request().Context(), &entry); err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			return echo.NewHTTPError(http.StatusNotFound, "product not found")
		case errors.Is(err, store.ErrBelowMinimum):
			return echo.NewHTTPError(http.StatusUnprocessableEntity, "quantity below minimum selling quantity")
		case errors.Is(err, store.ErrInsufficientStock):
			return echo.NewHTTPError(http.StatusConflict, "insufficient stock")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	publish(c, h.Producer, events.TopicCart, map[string]any{
		"type":      "cart_item_added",
		"email":     email,
		"productID": entry.ProductID.Hex(),
		"quantity":  entry.Quantity,
	})

	return c.JSON(http.StatusCreated, entry)
}

func (h *CartHandler) GetCart(c echo.Context) error {
	email := c.QueryParam("email")
	if email == "" {
		var err error
		if email, err = jwtmiddleware.TokenEmail(c); err != nil {
			return err
		}
	}

	entries, err := h.Store.CartByEmail(c.Request().Context(), email)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, entries)
}

func (h *CartHandler) GetCartEntry(c echo.Context) error {
	id, err := parseObjectID(c, "cartId")
	if err != nil {
		return err
	}

	entry, err := h.Store.CartEntryByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "cart entry not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, entry)
}

// Both removal routes share one contract: the entry is deleted and its
// reserved stock restored in the same transaction.
func (h *CartHandler) DeleteCartEntry(c echo.Context) error {
	return h.remove(c, "id")
}

func (h *CartHandler) RemoveFromCart(c echo.Context) error {
	return h.remove(c, "cartId")
}

func (h *CartHandler) remove(c echo.Context, param string) error {
	id, err := parseObjectID(c, param)
	if err != nil {
		return err
	}

	entry, err := h.Store.RemoveFromCart(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "cart entry not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	publish(c, h.Producer, events.TopicCart, map[string]any{
		"type":      "cart_item_removed",
		"email":     entry.Email,
		"productID": entry.ProductID.Hex(),
		"quantity":  entry.Quantity,
	})

	return c.JSON(http.StatusOK, entry)
}
