package httpserver

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/sakhi_shop/pkg/logging"
)

type Deps struct {
	Pages    *PagesHTTP
	Cart     *CartHTTP
	Catalog  *CatalogHTTP
	Sessions *Sessions
	// Ready reports whether the cart backend is reachable. Nil means always ready.
	Ready func(ctx context.Context) error
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error {
		if d.Ready == nil {
			return c.NoContent(http.StatusOK)
		}
		if err := d.Ready(c.Request().Context()); err != nil {
			logging.FromContext(c.Request().Context()).Error("readiness_check_failed", "status", 503, "error", err)
			return c.NoContent(http.StatusServiceUnavailable)
		}
		return c.NoContent(http.StatusOK)
	})

	site := e.Group("", d.Sessions.Middleware)

	site.GET("/", d.Pages.Home)
	site.GET("/shop", d.Pages.Shop)
	site.GET("/product", d.Pages.Product)
	site.GET("/cart", d.Pages.Cart)
	site.GET("/account", d.Pages.Account)
	site.GET("/contact", d.Pages.Contact)

	site.POST("/cart/add", d.Cart.AddForm)
	site.POST("/cart/remove", d.Cart.RemoveForm)
	site.POST("/cart/quantity", d.Cart.QuantityForm)
	site.POST("/contact", d.Pages.ContactSubmit)
	site.POST("/account/login", d.Pages.LoginSubmit)
	site.POST("/account/signup", d.Pages.SignupSubmit)
	site.POST("/newsletter", d.Pages.NewsletterSubmit)

	api := site.Group("/api")
	api.GET("/products", d.Catalog.GetProducts)
	api.GET("/products/:id", d.Catalog.GetProduct)

	api.GET("/cart", d.Cart.GetCart)
	api.GET("/cart/count", d.Cart.GetCount)
	api.POST("/cart/items", d.Cart.AddItem)
	api.PATCH("/cart/items/:id", d.Cart.ChangeQuantity)
	api.DELETE("/cart/items/:id", d.Cart.RemoveItem)
}
