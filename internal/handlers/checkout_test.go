package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/wholesaleworks/marketplace/internal/models"
)

type fakeIntenter struct {
	amount   int64
	currency string
	err      error
}

func (f *fakeIntenter) CreateIntent(_ context.Context, amount int64, currency string) (string, error) {
	f.amount = amount
	f.currency = currency
	if f.err != nil {
		return "", f.err
	}
	return "pi_secret_123", nil
}

func TestAddOrderRecomputesPricing(t *testing.T) {
	fs := newFakeStore()
	id := fs.addProduct(models.Product{Name: "Widget", Price: 9.99, Quantity: 100})
	h := &CheckoutHandler{Store: fs}

	// client-supplied pricing must be ignored
	load := map[string]any{
		"product_id": id.Hex(),
		"quantity":   10,
		"unit_price": 0.01,
		"total":      0.1,
	}
	rec, c := newTestContext(http.MethodPost, "/add-order", load)
	withEmail(c, "buyer@example.com")

	require.NoError(t, h.AddOrder(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	var order models.Order
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &order))
	require.Equal(t, 9.99, order.UnitPrice)
	require.InDelta(t, 99.9, order.Total, 1e-9)
	require.Equal(t, "buyer@example.com", order.Email)

	require.Len(t, fs.orders, 1)
	require.InDelta(t, 99.9, fs.orders[0].Total, 1e-9)
}

func TestAddOrderMissingProduct(t *testing.T) {
	h := &CheckoutHandler{Store: newFakeStore()}

	load := map[string]any{"product_id": "65f000000000000000000000", "quantity": 1}
	_, c := newTestContext(http.MethodPost, "/add-order", load)
	withEmail(c, "buyer@example.com")

	err := h.AddOrder(c)
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok, "expected HTTPError")
	require.Equal(t, http.StatusNotFound, he.Code)
}

func TestMyOrdersEnriched(t *testing.T) {
	fs := newFakeStore()
	id := fs.addProduct(models.Product{Name: "Widget", Price: 9.99, Quantity: 100})
	require.NoError(t, fs.CreateOrder(context.Background(), &models.Order{
		Email: "buyer@example.com", ProductID: id, Quantity: 10, UnitPrice: 9.99, Total: 99.9,
	}))
	require.NoError(t, fs.CreateOrder(context.Background(), &models.Order{
		Email: "other@example.com", ProductID: id, Quantity: 1, UnitPrice: 9.99, Total: 9.99,
	}))

	h := &CheckoutHandler{Store: fs}
	rec, c := newTestContext(http.MethodGet, "/my-orders?email=buyer@example.com", nil)
	withEmail(c, "buyer@example.com")

	require.NoError(t, h.MyOrders(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var orders []models.Order
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &orders))
	require.Len(t, orders, 1)
	require.NotNil(t, orders[0].Product)
	require.Equal(t, "Widget", orders[0].Product.Name)
}

func TestCreatePaymentIntent(t *testing.T) {
	fs := newFakeStore()
	id := fs.addProduct(models.Product{Name: "Widget", Price: 9.99, Quantity: 100})
	intenter := &fakeIntenter{}
	h := &CheckoutHandler{Store: fs, Payments: intenter}

	load := map[string]any{"product_id": id.Hex(), "quantity": 10}
	rec, c := newTestContext(http.MethodPost, "/create-payment-intent", load)
	withEmail(c, "buyer@example.com")

	require.NoError(t, h.CreatePaymentIntent(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, "pi_secret_123", resp["clientSecret"])

	// 9.99 * 10 in cents
	require.Equal(t, int64(9990), intenter.amount)
	require.Equal(t, "usd", intenter.currency)
}

func TestCreatePaymentIntentProcessorError(t *testing.T) {
	fs := newFakeStore()
	id := fs.addProduct(models.Product{Name: "Widget", Price: 9.99, Quantity: 100})
	h := &CheckoutHandler{Store: fs, Payments: &fakeIntenter{err: errors.New("card declined")}}

	load := map[string]any{"product_id": id.Hex(), "quantity": 1}
	_, c := newTestContext(http.MethodPost, "/create-payment-intent", load)
	withEmail(c, "buyer@example.com")

	err := h.CreatePaymentIntent(c)
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok, "expected HTTPError")
	require.Equal(t, http.StatusInternalServerError, he.Code)
	require.Contains(t, he.Message, "card declined")
}
