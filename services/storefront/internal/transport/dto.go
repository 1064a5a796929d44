package transport

import (
	"github.com/Skotchmaster/sakhi_shop/services/storefront/internal/cart"
	"github.com/Skotchmaster/sakhi_shop/services/storefront/internal/catalog"
)

type AddItemRequest struct {
	ProductID int `json:"product_id" form:"product_id"`
}

type QuantityRequest struct {
	Delta int `json:"delta" form:"delta"`
}

type LineResponse struct {
	ProductID int    `json:"product_id"`
	Name      string `json:"name"`
	Price     int    `json:"price"`
	Image     string `json:"image"`
	Quantity  int    `json:"quantity"`
	LineTotal int    `json:"line_total"`
}

type CartResponse struct {
	Items []LineResponse `json:"items"`
	Count int            `json:"count"`
	Total int            `json:"total"`
}

type CountResponse struct {
	Count int `json:"count"`
}

type ProductsResponse struct {
	Data     []catalog.Product `json:"data"`
	Meta     catalog.PageMeta  `json:"meta"`
	Category string            `json:"category"`
}

func NewCartResponse(c cart.Cart) CartResponse {
	items := make([]LineResponse, 0, len(c.Lines))
	for _, l := range c.Lines {
		items = append(items, LineResponse{
			ProductID: l.ProductID,
			Name:      l.Name,
			Price:     l.Price,
			Image:     l.Image,
			Quantity:  l.Quantity,
			LineTotal: l.Price * l.Quantity,
		})
	}
	return CartResponse{
		Items: items,
		Count: c.TotalCount(),
		Total: c.TotalPrice(),
	}
}
