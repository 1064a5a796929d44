package cart

import (
	"slices"

	"github.com/Skotchmaster/sakhi_shop/services/storefront/internal/catalog"
)

// Line is one cart entry. Name, Price and Image are copied from the catalog when
// the line is created and are not refreshed afterwards.
type Line struct {
	ProductID int    `json:"id"`
	Name      string `json:"name"`
	Price     int    `json:"price"`
	Image     string `json:"image"`
	Quantity  int    `json:"qty"`
}

// MaxQuantity bounds a single line so quantities and totals cannot overflow.
const MaxQuantity = 9999

// Cart is an ordered list of lines, at most one per product.
type Cart struct {
	Lines []Line
}

func newLine(p catalog.Product) Line {
	return Line{
		ProductID: p.ID,
		Name:      p.Name,
		Price:     p.Price,
		Image:     p.Image1,
		Quantity:  1,
	}
}

func (c Cart) index(productID int) int {
	return slices.IndexFunc(c.Lines, func(l Line) bool { return l.ProductID == productID })
}

func (c Cart) Line(productID int) (Line, bool) {
	i := c.index(productID)
	if i < 0 {
		return Line{}, false
	}
	return c.Lines[i], true
}

func (c Cart) IsEmpty() bool { return len(c.Lines) == 0 }

func (c Cart) TotalCount() int {
	n := 0
	for _, l := range c.Lines {
		n += l.Quantity
	}
	return n
}

func (c Cart) TotalPrice() int {
	total := 0
	for _, l := range c.Lines {
		total += l.Price * l.Quantity
	}
	return total
}

func (c Cart) LineTotal(productID int) int {
	l, ok := c.Line(productID)
	if !ok {
		return 0
	}
	return l.Price * l.Quantity
}

func (c Cart) clone() Cart {
	return Cart{Lines: slices.Clone(c.Lines)}
}

func (c Cart) without(productID int) Cart {
	out := Cart{}
	for _, l := range c.Lines {
		if l.ProductID != productID {
			out.Lines = append(out.Lines, l)
		}
	}
	return out
}
