package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/sakhi_shop/pkg/logging"
	"github.com/Skotchmaster/sakhi_shop/services/storefront/internal/catalog"
	"github.com/Skotchmaster/sakhi_shop/services/storefront/internal/transport"
)

type CatalogHTTP struct {
	Catalog *catalog.Catalog
}

func (h *CatalogHTTP) GetProducts(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.get_products")

	products, applied := h.Catalog.ByCategory(c.QueryParam("category"))
	products = catalog.Search(products, c.QueryParam("q"))

	page := parseIntDefault(c.QueryParam("page"), 1)
	size := parseIntDefault(c.QueryParam("size"), catalog.DefaultPageSize)
	items, meta := catalog.Page(products, page, size)

	l.Debug("get_products_success", "category", applied, "total", meta.Total)
	return c.JSON(http.StatusOK, transport.ProductsResponse{
		Data:     items,
		Meta:     meta,
		Category: applied,
	})
}

func (h *CatalogHTTP) GetProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.get_product")

	id, err := parseProductID(c.Param("id"))
	if err != nil {
		l.Warn("get_product_failed", "status", 400, "reason", "id is not a positive integer", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	p, ok := h.Catalog.Lookup(id)
	if !ok {
		l.Warn("get_product_failed", "status", 404, "product_id", id)
		return echo.NewHTTPError(http.StatusNotFound, "product with this id does not exist")
	}
	return c.JSON(http.StatusOK, p)
}
