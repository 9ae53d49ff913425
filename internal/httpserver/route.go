package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	middleware "github.com/Skotchmaster/storefront/internal/middleware/auth"
)

type Deps struct {
	CartHandler    *CartHTTP
	CatalogHandler *CatalogHTTP
	SearchHandler  *SearchHTTP
	JWTSecret      []byte
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	// The listing page lives at the root; echo answers unsupported methods
	// on registered paths with 405 and an Allow header.
	e.GET("/", d.CatalogHandler.ListProducts)

	v1 := e.Group("/api/v1")

	v1.GET("/products", d.CatalogHandler.ListProducts)
	v1.GET("/products/:id", d.CatalogHandler.GetProduct)

	if d.SearchHandler != nil {
		v1.GET("/search", d.SearchHandler.Search)
	}

	sessionMW := middleware.NewSessionMiddleware(d.JWTSecret)

	cart := v1.Group("/cart")
	cart.Use(sessionMW.RequireLogin)

	cart.GET("", d.CartHandler.GetCart)
	cart.POST("", d.CartHandler.AddToCart)
	cart.DELETE("", d.CartHandler.RemoveFromCart)
}
