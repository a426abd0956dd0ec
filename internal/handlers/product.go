package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/wholesaleworks/marketplace/internal/events"
	"github.com/wholesaleworks/marketplace/internal/jwtmiddleware"
	"github.com/wholesaleworks/marketplace/internal/models"
	"github.com/wholesaleworks/marketplace/internal/store"
)

type ProductStore interface {
	CreateProduct(ctx context.Context, product *models.Product) error
	UpdateProduct(ctx context.Context, id primitive.ObjectID, fields bson.M) error
	DeleteProduct(ctx context.Context, id primitive.ObjectID) error
	ProductByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error)
}

type ProductHandler struct {
	Store    ProductStore
	Producer *events.Producer
	Index    Indexer
}

type productPayload struct {
	Name                   string `json:"name"`
	Brand                  string `json:"brand"`
	Category               string `json:"category"`
	Description            string `json:"description"`
	Image                  string `json:"image"`
	Price                  any    `json:"price"`
	Quantity               any    `json:"quantity"`
	MinimumSellingQuantity any    `json:"minimum_selling_quantity"`
	Rating                 any    `json:"rating"`
}

func (h *ProductHandler) CreateProduct(c echo.Context) error {
	email, err := jwtmiddleware.TokenEmail(c)
	if err != nil {
		return err
	}

	var req productPayload
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if req.Name == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "name is required")
	}

	price, err := toFloat("price", req.Price)
	if err != nil {
		return err
	}
	quantity, err := toInt("quantity", req.Quantity)
	if err != nil {
		return err
	}
	minQty, err := toInt("minimum_selling_quantity", req.MinimumSellingQuantity)
	if err != nil {
		return err
	}
	rating, err := toInt("rating", req.Rating)
	if err != nil {
		return err
	}

	product := models.Product{
		Name:                   req.Name,
		Brand:                  req.Brand,
		Category:               req.Category,
		Description:            req.Description,
		Image:                  req.Image,
		Price:                  price,
		Quantity:               quantity,
		MinimumSellingQuantity: minQty,
		Rating:                 int(rating),
		OwnerEmail:             email,
	}

	if err := h.Store.CreateProduct(c.Request().Context(), &product); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	h.index(c, product)
	publish(c, h.Producer, events.TopicProducts, map[string]any{
		"type":      "product_created",
		"productID": product.ID.Hex(),
		"name":      product.Name,
		"email":     email,
	})

	return c.JSON(http.StatusCreated, product)
}

func (h *ProductHandler) UpdateProduct(c echo.Context) error {
	id, err := parseObjectID(c, "id")
	if err != nil {
		return err
	}

	var req productPayload
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	fields, err := updateFields(req)
	if err != nil {
		return err
	}

	if err := h.Store.UpdateProduct(c.Request().Context(), id, fields); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "product not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if product, err := h.Store.ProductByID(c.Request().Context(), id); err == nil {
		h.index(c, *product)
	}
	publish(c, h.Producer, events.TopicProducts, map[string]any{
		"type":      "product_updated",
		"productID": id.Hex(),
	})

	return c.JSON(http.StatusOK, echo.Map{"modified": true})
}

func (h *ProductHandler) DeleteProduct(c echo.Context) error {
	id, err := parseObjectID(c, "id")
	if err != nil {
		return err
	}

	if err := h.Store.DeleteProduct(c.Request().Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "product not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if h.Index != nil {
		if err := h.Index.DeleteProduct(c.Request().Context(), id.Hex()); err != nil {
			c.Logger().Errorf("search delete error: %v", err)
		}
	}
	publish(c, h.Producer, events.TopicProducts, map[string]any{
		"type":      "product_deleted",
		"productID": id.Hex(),
	})

	return c.NoContent(http.StatusNoContent)
}

// updateFields keeps only the fields the caller actually sent, so the
// update is a partial merge.
func updateFields(req productPayload) (bson.M, error) {
	fields := bson.M{}
	if req.Name != "" {
		fields["name"] = req.Name
	}
	if req.Brand != "" {
		fields["brand"] = req.Brand
	}
	if req.Category != "" {
		fields["category"] = req.Category
	}
	if req.Description != "" {
		fields["description"] = req.Description
	}
	if req.Image != "" {
		fields["image"] = req.Image
	}
	if req.Price != nil {
		price, err := toFloat("price", req.Price)
		if err != nil {
			return nil, err
		}
		fields["price"] = price
	}
	if req.Quantity != nil {
		quantity, err := toInt("quantity", req.Quantity)
		if err != nil {
			return nil, err
		}
		fields["quantity"] = quantity
	}
	if req.MinimumSellingQuantity != nil {
		minQty, err := toInt("minimum_selling_quantity", req.MinimumSellingQuantity)
		if err != nil {
			return nil, err
		}
		fields["minimum_selling_quantity"] = minQty
	}
	if req.Rating != nil {
		rating, err := toInt("rating", req.Rating)
		if err != nil {
			return nil, err
		}
		fields["rating"] = rating
	}
	return fields, nil
}

func (h *ProductHandler) index(c echo.Context, product models.Product) {
	if h.Index == nil {
		return
	}
	if err := h.Index.IndexProduct(c.Request().Context(), product); err != nil {
		c.Logger().Errorf("search index error: %v", err)
	}
}
