package httpserver

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/sakhi_shop/services/storefront/internal/catalog"
	"github.com/Skotchmaster/sakhi_shop/services/storefront/internal/transport"
)

func TestGetProducts(t *testing.T) {
	env := newTestEnv(t, nil)

	cases := []struct {
		name     string
		path     string
		ids      []int
		category string
		meta     catalog.PageMeta
	}{
		{
			name:     "all",
			path:     "/api/products",
			ids:      []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10},
			category: "All",
			meta:     catalog.PageMeta{Page: 1, Size: 20, Total: 10, TotalPages: 1},
		},
		{
			name:     "category",
			path:     "/api/products?category=Sarees",
			ids:      []int{5, 9},
			category: "Sarees",
			meta:     catalog.PageMeta{Page: 1, Size: 20, Total: 2, TotalPages: 1},
		},
		{
			name:     "unknown category and search",
			path:     "/api/products?category=Shoes&q=DRESS",
			ids:      []int{1, 6, 10},
			category: "All",
			meta:     catalog.PageMeta{Page: 1, Size: 20, Total: 3, TotalPages: 1},
		},
		{
			name:     "second page",
			path:     "/api/products?page=2&size=4",
			ids:      []int{5, 6, 7, 8},
			category: "All",
			meta:     catalog.PageMeta{Page: 2, Size: 4, Total: 10, TotalPages: 3, HasPrev: true, HasNext: true},
		},
		{
			name:     "page far past the end",
			path:     "/api/products?page=922337203685477581",
			ids:      []int{},
			category: "All",
			meta:     catalog.PageMeta{Page: 922337203685477581, Size: 20, Total: 10, TotalPages: 1, HasPrev: true},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec, c := env.doJSONRequest(http.MethodGet, tc.path, nil)
			require.NoError(t, env.Deps.Catalog.GetProducts(c))
			require.Equal(t, http.StatusOK, rec.Code)

			var resp transport.ProductsResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			ids := make([]int, 0, len(resp.Data))
			for _, p := range resp.Data {
				ids = append(ids, p.ID)
			}
			require.Equal(t, tc.ids, ids)
			require.Equal(t, tc.category, resp.Category)
			require.Equal(t, tc.meta, resp.Meta)
		})
	}
}

func TestGetProduct(t *testing.T) {
	env := newTestEnv(t, nil)

	rec, c := env.doJSONRequest(http.MethodGet, "/api/products/4", nil)
	c.SetParamNames("id")
	c.SetParamValues("4")
	require.NoError(t, env.Deps.Catalog.GetProduct(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var p catalog.Product
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &p))
	require.Equal(t, "Beige Linen Co-ord Set", p.Name)
	require.Equal(t, 2499, p.Price)
	require.Equal(t, 3499, p.OldPrice)

	_, c = env.doJSONRequest(http.MethodGet, "/api/products/11", nil)
	c.SetParamNames("id")
	c.SetParamValues("11")
	requireHTTPError(t, env.Deps.Catalog.GetProduct(c), http.StatusNotFound)

	_, c = env.doJSONRequest(http.MethodGet, "/api/products/x", nil)
	c.SetParamNames("id")
	c.SetParamValues("x")
	requireHTTPError(t, env.Deps.Catalog.GetProduct(c), http.StatusBadRequest)
}
