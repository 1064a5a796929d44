package catalog

import (
	"slices"
	"strings"
)

// Catalog is a read-only, ordered product list.
type Catalog struct {
	products   []Product
	categories []string
}

func New(products []Product, categories []string) *Catalog {
	return &Catalog{
		products:   slices.Clone(products),
		categories: slices.Clone(categories),
	}
}

// Default returns the storefront's built-in catalog.
func Default() *Catalog {
	return New(products, categories)
}

func (c *Catalog) All() []Product {
	return slices.Clone(c.products)
}

// Categories lists the filter options, "All" first.
func (c *Catalog) Categories() []string {
	return append([]string{AllCategories}, c.categories...)
}

func (c *Catalog) Lookup(id int) (Product, bool) {
	for _, p := range c.products {
		if p.ID == id {
			return p, true
		}
	}
	return Product{}, false
}

// ByCategory filters by category. Unknown categories behave like "All"; the
// category actually applied is returned alongside the products.
func (c *Catalog) ByCategory(category string) ([]Product, string) {
	if !slices.Contains(c.categories, category) {
		return c.All(), AllCategories
	}
	out := make([]Product, 0, len(c.products))
	for _, p := range c.products {
		if p.Category == category {
			out = append(out, p)
		}
	}
	return out, category
}

// Search keeps the products whose name contains q, case-insensitively.
func Search(products []Product, q string) []Product {
	q = strings.ToLower(strings.TrimSpace(q))
	if q == "" {
		return products
	}
	out := make([]Product, 0, len(products))
	for _, p := range products {
		if strings.Contains(strings.ToLower(p.Name), q) {
			out = append(out, p)
		}
	}
	return out
}

type Sections struct {
	Featured    []Product
	NewArrivals []Product
	BestSellers []Product
}

func (c *Catalog) Sections() Sections {
	return Sections{
		Featured:    c.window(0, 4),
		NewArrivals: c.window(4, 8),
		BestSellers: c.window(2, 6),
	}
}

func (c *Catalog) window(from, to int) []Product {
	from = min(from, len(c.products))
	to = min(to, len(c.products))
	return slices.Clone(c.products[from:to])
}

// Detail resolves the product page. A missing or unknown id shows the first product.
func (c *Catalog) Detail(id int) (Product, bool) {
	if p, ok := c.Lookup(id); ok {
		return p, true
	}
	if len(c.products) == 0 {
		return Product{}, false
	}
	return c.products[0], true
}

// Related returns up to n products other than id, in catalog order.
func (c *Catalog) Related(id, n int) []Product {
	out := make([]Product, 0, n)
	for _, p := range c.products {
		if len(out) == n {
			break
		}
		if p.ID != id {
			out = append(out, p)
		}
	}
	return out
}
