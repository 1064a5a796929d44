package view

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/sakhi_shop/services/storefront/internal/cart"
	"github.com/Skotchmaster/sakhi_shop/services/storefront/internal/catalog"
	"github.com/Skotchmaster/sakhi_shop/services/storefront/internal/forms"
)

//go:embed templates/*.html
var templateFS embed.FS

var pages = []string{"home", "shop", "product", "cart", "account", "contact"}

// Page is the data every template receives. Each page reads only the fields it needs.
type Page struct {
	Title     string
	CartCount int
	CSRFToken string

	Sections catalog.Sections

	Products   []catalog.Product
	Categories []string
	Category   string
	Query      string

	Product catalog.Product
	Related []catalog.Product

	Cart cart.Cart

	AuthMode   string
	Result     *forms.Result
	Newsletter *forms.Result
}

// Card is a product tile together with the token its add-to-cart form posts.
type Card struct {
	catalog.Product
	Token string
}

func cards(products []catalog.Product, token string) []Card {
	out := make([]Card, 0, len(products))
	for _, p := range products {
		out = append(out, Card{Product: p, Token: token})
	}
	return out
}

type Renderer struct {
	pages map[string]*template.Template
}

func funcs() template.FuncMap {
	return template.FuncMap{
		"inr":   INR,
		"cards": cards,
		"mul":   func(a, b int) int { return a * b },
	}
}

func NewRenderer() (*Renderer, error) {
	return newRenderer(templateFS)
}

func newRenderer(fsys fs.FS) (*Renderer, error) {
	r := &Renderer{pages: make(map[string]*template.Template, len(pages))}
	for _, name := range pages {
		t, err := template.New(name).Funcs(funcs()).ParseFS(fsys,
			"templates/layout.html",
			"templates/partials.html",
			"templates/"+name+".html",
		)
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}
		r.pages[name] = t
	}
	return r, nil
}

// Render implements echo.Renderer.
func (r *Renderer) Render(w io.Writer, name string, data any, _ echo.Context) error {
	t, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("unknown page %q", name)
	}
	return t.ExecuteTemplate(w, "layout", data)
}
