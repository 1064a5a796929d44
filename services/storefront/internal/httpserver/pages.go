package httpserver

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/sakhi_shop/pkg/logging"
	"github.com/Skotchmaster/sakhi_shop/pkg/middleware/csrf"
	"github.com/Skotchmaster/sakhi_shop/services/storefront/internal/catalog"
	"github.com/Skotchmaster/sakhi_shop/services/storefront/internal/forms"
	"github.com/Skotchmaster/sakhi_shop/services/storefront/internal/service"
	"github.com/Skotchmaster/sakhi_shop/services/storefront/internal/view"
)

const relatedCount = 4

type PagesHTTP struct {
	Catalog *catalog.Catalog
	Svc     *service.CartService
	Carts   *Carts
}

// page fills the fields shared by every page: the header badge and the form token.
func (h *PagesHTTP) page(c echo.Context, title string) view.Page {
	ctx := c.Request().Context()
	items := h.Svc.Get(ctx, h.Carts.Open(c), SessionID(c))
	return view.Page{
		Title:     title,
		CartCount: items.TotalCount(),
		CSRFToken: csrf.Token(c),
		Cart:      items,
	}
}

func (h *PagesHTTP) Home(c echo.Context) error {
	p := h.page(c, "Home")
	p.Sections = h.Catalog.Sections()
	return c.Render(http.StatusOK, "home", p)
}

func (h *PagesHTTP) Shop(c echo.Context) error {
	p := h.page(c, "Shop")
	products, applied := h.Catalog.ByCategory(c.QueryParam("category"))
	p.Query = c.QueryParam("q")
	p.Products = catalog.Search(products, p.Query)
	p.Categories = h.Catalog.Categories()
	p.Category = applied
	return c.Render(http.StatusOK, "shop", p)
}

func (h *PagesHTTP) Product(c echo.Context) error {
	l := logging.FromContext(c.Request().Context()).With("handler", "page.product")

	prod, ok := h.Catalog.Detail(parseIntDefault(c.QueryParam("id"), 0))
	if !ok {
		l.Warn("product_page_error", "status", 404, "reason", "empty catalog")
		return echo.NewHTTPError(http.StatusNotFound, "no products")
	}

	p := h.page(c, prod.Name)
	p.Product = prod
	p.Related = h.Catalog.Related(prod.ID, relatedCount)
	return c.Render(http.StatusOK, "product", p)
}

func (h *PagesHTTP) Cart(c echo.Context) error {
	return c.Render(http.StatusOK, "cart", h.page(c, "Cart"))
}

func (h *PagesHTTP) Account(c echo.Context) error {
	p := h.page(c, "Account")
	p.AuthMode = authMode(c.QueryParam("mode"))
	return c.Render(http.StatusOK, "account", p)
}

func (h *PagesHTTP) Contact(c echo.Context) error {
	return c.Render(http.StatusOK, "contact", h.page(c, "Contact"))
}

func authMode(mode string) string {
	if mode == "signup" {
		return "signup"
	}
	return "login"
}

// The form endpoints re-render their page with the validation result. Nothing
// submitted is stored or sent anywhere.

func (h *PagesHTTP) ContactSubmit(c echo.Context) error {
	l := logging.FromContext(c.Request().Context()).With("handler", "form.contact")

	var f forms.Contact
	if err := c.Bind(&f); err != nil {
		l.Warn("contact_form_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form")
	}
	res := f.Validate()

	p := h.page(c, "Contact")
	p.Result = &res
	return c.Render(formStatus(l, "contact_form", res), "contact", p)
}

func (h *PagesHTTP) LoginSubmit(c echo.Context) error {
	l := logging.FromContext(c.Request().Context()).With("handler", "form.login")

	var f forms.Login
	if err := c.Bind(&f); err != nil {
		l.Warn("login_form_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form")
	}
	res := f.Validate()

	p := h.page(c, "Account")
	p.AuthMode = "login"
	p.Result = &res
	return c.Render(formStatus(l, "login_form", res), "account", p)
}

func (h *PagesHTTP) SignupSubmit(c echo.Context) error {
	l := logging.FromContext(c.Request().Context()).With("handler", "form.signup")

	var f forms.Signup
	if err := c.Bind(&f); err != nil {
		l.Warn("signup_form_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form")
	}
	res := f.Validate()

	p := h.page(c, "Account")
	p.AuthMode = "signup"
	p.Result = &res
	return c.Render(formStatus(l, "signup_form", res), "account", p)
}

func (h *PagesHTTP) NewsletterSubmit(c echo.Context) error {
	l := logging.FromContext(c.Request().Context()).With("handler", "form.newsletter")

	var f forms.Newsletter
	if err := c.Bind(&f); err != nil {
		l.Warn("newsletter_form_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form")
	}
	res := f.Validate()

	p := h.page(c, "Home")
	p.Sections = h.Catalog.Sections()
	p.Newsletter = &res
	return c.Render(formStatus(l, "newsletter_form", res), "home", p)
}

func formStatus(l *slog.Logger, event string, res forms.Result) int {
	if res.Err() != nil {
		l.Info(event+"_invalid", "status", 422)
		return http.StatusUnprocessableEntity
	}
	l.Info(event + "_success")
	return http.StatusOK
}
