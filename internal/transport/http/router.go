package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/wholesaleworks/marketplace/internal/handlers"
	"github.com/wholesaleworks/marketplace/internal/jwtmiddleware"
)

type Deps struct {
	JWTSecret []byte
	Catalog   *handlers.CatalogHandler
	Product   *handlers.ProductHandler
	Cart      *handlers.CartHandler
	Checkout  *handlers.CheckoutHandler
	Auth      *handlers.AuthHandler
	Search    *handlers.SearchHandler
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/", func(c echo.Context) error { return c.String(http.StatusOK, "server working") })
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	e.GET("/categories", d.Catalog.GetCategories)
	e.GET("/categories-limit", d.Catalog.GetCategoriesLimited)
	e.GET("/category/:category", d.Catalog.GetCategoryProducts)
	e.GET("/product/:id", d.Catalog.GetProduct)
	e.GET("/new-arrival-products", d.Catalog.GetNewArrivals)
	e.GET("/products", d.Catalog.GetProducts)
	e.GET("/search", d.Search.Search)

	e.POST("/user", d.Auth.CreateUser)
	e.POST("/jwt", d.Auth.IssueToken)
	e.POST("/logout", d.Auth.Logout)

	// Every route touching user-owned data sits behind both guards.
	owned := e.Group("", jwtmiddleware.Verify(d.JWTSecret), jwtmiddleware.RequireOwner)

	owned.GET("/my-products", d.Catalog.GetMyProducts)
	owned.POST("/add-product", d.Product.CreateProduct)
	owned.PUT("/update-product/:id", d.Product.UpdateProduct)
	owned.DELETE("/delete/:id", d.Product.DeleteProduct)

	owned.POST("/add-to-cart", d.Cart.AddToCart)
	owned.GET("/cart", d.Cart.GetCart)
	owned.GET("/cart/:cartId", d.Cart.GetCartEntry)
	owned.DELETE("/delete-cart/:id", d.Cart.DeleteCartEntry)
	owned.DELETE("/remove-from-cart/:cartId", d.Cart.RemoveFromCart)

	owned.POST("/create-payment-intent", d.Checkout.CreatePaymentIntent)
	owned.POST("/add-order", d.Checkout.AddOrder)
	owned.GET("/my-orders", d.Checkout.MyOrders)
}
