package httpserver

import (
	"encoding/base64"
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/sakhi_shop/services/storefront/internal/repo"
)

func TestAddItem(t *testing.T) {
	env := newTestEnv(t, repo.NewMemoryBackend())

	for i := 0; i < 2; i++ {
		rec, c := env.doJSONRequest(http.MethodPost, "/api/cart/items", map[string]int{"product_id": 1})
		require.NoError(t, env.Deps.Cart.AddItem(c))
		require.Equal(t, http.StatusOK, rec.Code)
	}

	rec, c := env.doJSONRequest(http.MethodPost, "/api/cart/items", map[string]int{"product_id": 3})
	require.NoError(t, env.Deps.Cart.AddItem(c))

	resp := decodeCart(t, rec)
	require.Len(t, resp.Items, 2)
	require.Equal(t, 1, resp.Items[0].ProductID)
	require.Equal(t, 2, resp.Items[0].Quantity)
	require.Equal(t, 4598, resp.Items[0].LineTotal)
	require.Equal(t, 3, resp.Count)
	require.Equal(t, 2*2299+1299, resp.Total)
	require.Equal(t, []string{"cart_item_added", "cart_item_added", "cart_item_added"}, env.Events.all())
}

func TestAddItemValidation(t *testing.T) {
	env := newTestEnv(t, repo.NewMemoryBackend())

	_, c := env.doJSONRequest(http.MethodPost, "/api/cart/items", map[string]string{"product_id": "abc"})
	requireHTTPError(t, env.Deps.Cart.AddItem(c), http.StatusBadRequest)

	_, c = env.doJSONRequest(http.MethodPost, "/api/cart/items", map[string]int{"product_id": 0})
	requireHTTPError(t, env.Deps.Cart.AddItem(c), http.StatusBadRequest)

	rec, c := env.doJSONRequest(http.MethodPost, "/api/cart/items", map[string]int{"product_id": 999})
	require.NoError(t, env.Deps.Cart.AddItem(c))
	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeCart(t, rec)
	require.Empty(t, resp.Items)
	require.Zero(t, resp.Count)
	require.Empty(t, env.Events.all())
}

func TestChangeQuantityAndRemove(t *testing.T) {
	env := newTestEnv(t, repo.NewMemoryBackend())

	_, c := env.doJSONRequest(http.MethodPost, "/api/cart/items", map[string]int{"product_id": 1})
	require.NoError(t, env.Deps.Cart.AddItem(c))
	_, c = env.doJSONRequest(http.MethodPost, "/api/cart/items", map[string]int{"product_id": 2})
	require.NoError(t, env.Deps.Cart.AddItem(c))

	rec, c := env.doJSONRequest(http.MethodPatch, "/api/cart/items/1", map[string]int{"delta": 2})
	c.SetParamNames("id")
	c.SetParamValues("1")
	require.NoError(t, env.Deps.Cart.ChangeQuantity(c))
	resp := decodeCart(t, rec)
	require.Equal(t, 3, resp.Items[0].Quantity)
	require.Equal(t, 4, resp.Count)

	rec, c = env.doJSONRequest(http.MethodPatch, "/api/cart/items/2", map[string]int{"delta": -1})
	c.SetParamNames("id")
	c.SetParamValues("2")
	require.NoError(t, env.Deps.Cart.ChangeQuantity(c))
	resp = decodeCart(t, rec)
	require.Len(t, resp.Items, 1)
	require.Equal(t, 1, resp.Items[0].ProductID)

	rec, c = env.doJSONRequest(http.MethodDelete, "/api/cart/items/1", nil)
	c.SetParamNames("id")
	c.SetParamValues("1")
	require.NoError(t, env.Deps.Cart.RemoveItem(c))
	require.Empty(t, decodeCart(t, rec).Items)

	// removing again is a no-op
	rec, c = env.doJSONRequest(http.MethodDelete, "/api/cart/items/1", nil)
	c.SetParamNames("id")
	c.SetParamValues("1")
	require.NoError(t, env.Deps.Cart.RemoveItem(c))
	require.Equal(t, http.StatusOK, rec.Code)

	require.Equal(t, []string{
		"cart_item_added", "cart_item_added", "cart_quantity_changed", "cart_item_removed", "cart_item_removed",
	}, env.Events.all())
}

func TestCartItemBadParams(t *testing.T) {
	env := newTestEnv(t, repo.NewMemoryBackend())

	_, c := env.doJSONRequest(http.MethodPatch, "/api/cart/items/abc", map[string]int{"delta": 1})
	c.SetParamNames("id")
	c.SetParamValues("abc")
	requireHTTPError(t, env.Deps.Cart.ChangeQuantity(c), http.StatusBadRequest)

	_, c = env.doJSONRequest(http.MethodPatch, "/api/cart/items/1", map[string]string{"delta": "many"})
	c.SetParamNames("id")
	c.SetParamValues("1")
	requireHTTPError(t, env.Deps.Cart.ChangeQuantity(c), http.StatusBadRequest)

	_, c = env.doJSONRequest(http.MethodDelete, "/api/cart/items/-4", nil)
	c.SetParamNames("id")
	c.SetParamValues("-4")
	requireHTTPError(t, env.Deps.Cart.RemoveItem(c), http.StatusBadRequest)
}

func TestCookieCartRoundTrip(t *testing.T) {
	env := newTestEnv(t, nil)

	rec := env.serve(jsonRequest(t, http.MethodPost, "/api/cart/items", map[string]int{"product_id": 5}))
	require.Equal(t, http.StatusOK, rec.Code)

	ck := cookieNamed(rec, CartCookie)
	require.NotNil(t, ck)
	require.Equal(t, http.SameSiteLaxMode, ck.SameSite)
	require.Equal(t, cartCookieMaxAge, ck.MaxAge)
	raw, err := base64.RawURLEncoding.DecodeString(ck.Value)
	require.NoError(t, err)
	require.JSONEq(t, `[{"id":5,"name":"Soft Gold Banarasi Saree","price":3299,"image":"https://picsum.photos/id/1062/600/800","qty":1}]`, string(raw))

	rec = env.serve(jsonRequest(t, http.MethodPost, "/api/cart/items", map[string]int{"product_id": 5}), ck)
	ck = cookieNamed(rec, CartCookie)
	require.NotNil(t, ck)

	rec = env.serve(jsonRequest(t, http.MethodGet, "/api/cart/count", nil), ck)
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"count":2}`, rec.Body.String())
}

func TestCookieCartReadsDoNotWrite(t *testing.T) {
	env := newTestEnv(t, nil)

	rec := env.serve(jsonRequest(t, http.MethodGet, "/api/cart", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Nil(t, cookieNamed(rec, CartCookie))

	rec = env.serve(jsonRequest(t, http.MethodPost, "/api/cart/items", map[string]int{"product_id": 404}))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Nil(t, cookieNamed(rec, CartCookie))
}

func TestCorruptCartCookieFailsOpen(t *testing.T) {
	env := newTestEnv(t, nil)

	for _, value := range []string{
		"%%%not-base64",
		base64.RawURLEncoding.EncodeToString([]byte(`{"id":1}`)),
		base64.RawURLEncoding.EncodeToString([]byte(`[{"id":1,"name":"x","price":1,"image":"","qty":0}]`)),
	} {
		rec := env.serve(jsonRequest(t, http.MethodGet, "/api/cart", nil), &http.Cookie{Name: CartCookie, Value: value})
		require.Equal(t, http.StatusOK, rec.Code)
		require.JSONEq(t, `{"items":[],"count":0,"total":0}`, rec.Body.String())
	}

	// the next write replaces the corrupt value
	bad := &http.Cookie{Name: CartCookie, Value: "%%%"}
	rec := env.serve(jsonRequest(t, http.MethodPost, "/api/cart/items", map[string]int{"product_id": 2}), bad)
	require.Equal(t, 1, decodeCart(t, rec).Count)
	require.NotNil(t, cookieNamed(rec, CartCookie))
}

func TestFormPostsRedirect(t *testing.T) {
	env := newTestEnv(t, repo.NewMemoryBackend())

	req := formRequest("/cart/add", url.Values{"product_id": {"2"}})
	req.Header.Set("Referer", "http://example.com/shop?category=Kurtis")
	rec := env.serve(req)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	require.Equal(t, "/shop?category=Kurtis", rec.Header().Get("Location"))

	sess := cookieNamed(rec, SessionCookie)
	require.NotNil(t, sess)

	rec = env.serve(formRequest("/cart/quantity", url.Values{"product_id": {"2"}, "delta": {"1"}}), sess)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	require.Equal(t, "/cart", rec.Header().Get("Location"))

	rec = env.serve(jsonRequest(t, http.MethodGet, "/cart", nil), sess)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "Ivory Embroidered Kurti Set")
	require.Contains(t, rec.Body.String(), `<span class="qty">2</span>`)
	require.Contains(t, rec.Body.String(), "₹3,798")

	rec = env.serve(formRequest("/cart/remove", url.Values{"product_id": {"2"}}), sess)
	require.Equal(t, http.StatusSeeOther, rec.Code)

	rec = env.serve(jsonRequest(t, http.MethodGet, "/cart", nil), sess)
	require.Contains(t, rec.Body.String(), `id="empty-cart"`)
}

func TestFormAddIgnoresForeignReferer(t *testing.T) {
	env := newTestEnv(t, repo.NewMemoryBackend())

	req := formRequest("/cart/add", url.Values{"product_id": {"2"}})
	req.Header.Set("Referer", "https://elsewhere.test/phish")
	rec := env.serve(req)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	require.Equal(t, "/shop", rec.Header().Get("Location"))
}

func TestFormAddIgnoresSchemeRelativeReferer(t *testing.T) {
	env := newTestEnv(t, repo.NewMemoryBackend())

	for _, ref := range []string{
		"http://example.com//evil.test/x",
		"//example.com//evil.test",
		"http://example.com/%5Cevil.test",
		`http://example.com/\evil.test`,
	} {
		req := formRequest("/cart/add", url.Values{"product_id": {"2"}})
		req.Header.Set("Referer", ref)
		rec := env.serve(req)
		require.Equal(t, http.StatusSeeOther, rec.Code, ref)
		require.Equal(t, "/shop", rec.Header().Get("Location"), ref)
	}

	req := formRequest("/cart/add", url.Values{"product_id": {"2"}})
	req.Header.Set("Referer", "http://example.com/product/2?from=shop")
	rec := env.serve(req)
	require.Equal(t, "/product/2?from=shop", rec.Header().Get("Location"))
}

func TestFormPostsRejectMalformedInput(t *testing.T) {
	env := newTestEnv(t, repo.NewMemoryBackend())

	rec := env.serve(formRequest("/cart/add", url.Values{"product_id": {"two"}}))
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.serve(formRequest("/cart/quantity", url.Values{"product_id": {"2"}, "delta": {"up"}}))
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.serve(formRequest("/cart/remove", url.Values{}))
	require.Equal(t, http.StatusBadRequest, rec.Code)
}
