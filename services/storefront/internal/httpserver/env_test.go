package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/sakhi_shop/services/storefront/internal/cart"
	"github.com/Skotchmaster/sakhi_shop/services/storefront/internal/catalog"
	"github.com/Skotchmaster/sakhi_shop/services/storefront/internal/service"
	"github.com/Skotchmaster/sakhi_shop/services/storefront/internal/transport"
	"github.com/Skotchmaster/sakhi_shop/services/storefront/internal/view"
)

const testSession = "0b6f3a52-5d1e-4f7a-9c43-2f1e8d7a6b50"

type eventLog struct {
	mu    sync.Mutex
	types []string
}

func (l *eventLog) PublishEvent(_ context.Context, _, _ string, event any) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.types = append(l.types, event.(map[string]any)["type"].(string))
	return nil
}

func (l *eventLog) Close() error { return nil }

func (l *eventLog) all() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.types...)
}

type testEnv struct {
	T      *testing.T
	E      *echo.Echo
	Events *eventLog
	Deps   *Deps
}

// newTestEnv wires the full route table. A nil backend keeps carts in cookies.
func newTestEnv(t *testing.T, backend cart.Backend) *testEnv {
	t.Helper()

	renderer, err := view.NewRenderer()
	require.NoError(t, err)

	e := echo.New()
	e.Renderer = renderer

	events := &eventLog{}
	cat := catalog.Default()
	svc := &service.CartService{Catalog: cat, Events: events}
	carts := &Carts{Backend: backend}

	deps := &Deps{
		Pages:    &PagesHTTP{Catalog: cat, Svc: svc, Carts: carts},
		Cart:     &CartHTTP{Svc: svc, Carts: carts},
		Catalog:  &CatalogHTTP{Catalog: cat},
		Sessions: &Sessions{Secret: []byte("test-secret"), TTL: time.Hour},
	}
	Register(e, deps)

	return &testEnv{T: t, E: e, Events: events, Deps: deps}
}

// doJSONRequest builds a context for calling a handler directly, already inside a session.
func (env *testEnv) doJSONRequest(method, path string, body any, cookies ...*http.Cookie) (*httptest.ResponseRecorder, echo.Context) {
	var buf bytes.Buffer
	if body != nil {
		require.NoError(env.T, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	rec := httptest.NewRecorder()
	c := env.E.NewContext(req, rec)
	c.Set(SessionKey, testSession)
	return rec, c
}

// serve runs a request through the router and middleware.
func (env *testEnv) serve(req *http.Request, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	rec := httptest.NewRecorder()
	env.E.ServeHTTP(rec, req)
	return rec
}

func formRequest(path string, values url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(values.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	return req
}

func jsonRequest(t *testing.T, method, path string, body any) *http.Request {
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	return req
}

func decodeCart(t *testing.T, rec *httptest.ResponseRecorder) transport.CartResponse {
	t.Helper()
	var resp transport.CartResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func cookieNamed(rec *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == name {
			return ck
		}
	}
	return nil
}

func requireHTTPError(t *testing.T, err error, code int) {
	t.Helper()
	var he *echo.HTTPError
	require.ErrorAs(t, err, &he)
	require.Equal(t, code, he.Code)
}
