package handlers

import (
	"context"
	"errors"
	"math"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/wholesaleworks/marketplace/internal/events"
	"github.com/wholesaleworks/marketplace/internal/jwtmiddleware"
	"github.com/wholesaleworks/marketplace/internal/models"
	"github.com/wholesaleworks/marketplace/internal/store"
)

type OrderStore interface {
	CreateOrder(ctx context.Context, order *models.Order) error
	OrdersByEmail(ctx context.Context, email string) ([]models.Order, error)
	ProductByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error)
}

type CheckoutHandler struct {
	Store    OrderStore
	Payments Intenter
	Producer *events.Producer
}

type checkoutRequest struct {
	ProductID string `json:"product_id"`
	Quantity  any    `json:"quantity"`
}

// priceOrder resolves the request against the live product record so
// pricing is never taken from the client.
func (h *CheckoutHandler) priceOrder(c echo.Context) (*models.Order, error) {
	var req checkoutRequest
	if err := c.Bind(&req); err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	productID, err := primitive.ObjectIDFromHex(req.ProductID)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "invalid product id")
	}
	quantity, err := toInt("quantity", req.Quantity)
	if err != nil {
		return nil, err
	}
	if quantity < 1 {
		return nil, echo.NewHTTPError(http.StatusUnprocessableEntity, "quantity must be positive")
	}

	product, err := h.Store.ProductByID(c.Request().Context(), productID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, echo.NewHTTPError(http.StatusNotFound, "product not found")
		}
		return nil, echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return &models.Order{
		ProductID: productID,
		Quantity:  quantity,
		UnitPrice: product.Price,
		Total:     product.Price * float64(quantity),
	}, nil
}

func (h *CheckoutHandler) CreatePaymentIntent(c echo.Context) error {
	order, err := h.priceOrder(c)
	if err != nil {
		return err
	}

	amount := int64(math.Round(order.Total * 100))
	if amount <= 0 {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, "amount must be positive")
	}

	secret, err := h.Payments.CreateIntent(c.Request().Context(), amount, "usd")
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"clientSecret": secret})
}

func (h *CheckoutHandler) AddOrder(c echo.Context) error {
	email, err := jwtmiddleware.TokenEmail(c)
	if err != nil {
		return err
	}

	order, err := h.priceOrder(c)
	if err != nil {
		return err
	}
	order.Email = email

	if err := h.Store.CreateOrder(c.Request().Context(), order); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	publish(c, h.Producer, events.TopicOrders, map[string]any{
		"type":      "order_created",
		"email":     email,
		"orderID":   order.ID.Hex(),
		"productID": order.ProductID.Hex(),
		"quantity":  order.Quantity,
		"total":     order.Total,
	})

	return c.JSON(http.StatusCreated, order)
}

func (h *CheckoutHandler) MyOrders(c echo.Context) error {
	email := c.QueryParam("email")
	if email == "" {
		var err error
		if email, err = jwtmiddleware.TokenEmail(c); err != nil {
			return err
		}
	}

	orders, err := h.Store.OrdersByEmail(c.Request().Context(), email)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to load orders")
	}
	return c.JSON(http.StatusOK, orders)
}
