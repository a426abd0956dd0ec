package handlers

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/wholesaleworks/marketplace/internal/events"
	"github.com/wholesaleworks/marketplace/internal/models"
)

// Indexer mirrors product mutations into the search index. A nil Indexer
// disables indexing.
type Indexer interface {
	IndexProduct(ctx context.Context, product models.Product) error
	DeleteProduct(ctx context.Context, id string) error
}

// Intenter creates payment intents with an external processor.
type Intenter interface {
	CreateIntent(ctx context.Context, amount int64, currency string) (string, error)
}

func parseObjectID(c echo.Context, name string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(c.Param(name))
	if err != nil {
		return primitive.NilObjectID, echo.NewHTTPError(http.StatusBadRequest, "invalid id format")
	}
	return id, nil
}

func publish(c echo.Context, producer *events.Producer, topic string, event map[string]any) {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := producer.PublishEvent(ctx, topic, fmt.Sprint(event["email"]), event); err != nil {
		c.Logger().Errorf("kafka publish error: %v", err)
	}
}

// The storefront sends numeric product fields as strings; accept both
// forms and fail loudly on garbage instead of storing a NaN.
func toFloat(field string, v any) (float64, error) {
	switch t := v.(type) {
	case nil:
		return 0, nil
	case float64:
		return t, nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return 0, echo.NewHTTPError(http.StatusUnprocessableEntity, field+" must be numeric")
		}
		return f, nil
	}
	return 0, echo.NewHTTPError(http.StatusUnprocessableEntity, field+" must be numeric")
}

func toInt(field string, v any) (int64, error) {
	f, err := toFloat(field, v)
	if err != nil {
		return 0, err
	}
	if f != float64(int64(f)) {
		return 0, echo.NewHTTPError(http.StatusUnprocessableEntity, field+" must be an integer")
	}
	return int64(f), nil
}
