package httpserver

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/sakhi_shop/services/storefront/internal/cart"
)

const (
	CartCookie       = "sakhi_cart"
	cartCookieMaxAge = 365 * 24 * 60 * 60
)

// cookieStorage keeps the cart in the visitor's browser. It is bound to one
// request: loads read the request cookie until a save replaces it.
type cookieStorage struct {
	c      echo.Context
	secure bool

	saved   []byte
	written bool
}

func newCookieStorage(c echo.Context, secure bool) *cookieStorage {
	return &cookieStorage{c: c, secure: secure}
}

func (s *cookieStorage) Load(context.Context) ([]byte, error) {
	if s.written {
		return s.saved, nil
	}
	ck, err := s.c.Cookie(CartCookie)
	if err != nil {
		if errors.Is(err, http.ErrNoCookie) {
			return nil, nil
		}
		return nil, err
	}
	if ck.Value == "" {
		return nil, nil
	}
	data, err := base64.RawURLEncoding.DecodeString(ck.Value)
	if err != nil {
		return nil, fmt.Errorf("decode %s cookie: %w", CartCookie, err)
	}
	return data, nil
}

func (s *cookieStorage) Save(_ context.Context, data []byte) error {
	s.c.SetCookie(&http.Cookie{
		Name:     CartCookie,
		Value:    base64.RawURLEncoding.EncodeToString(data),
		Path:     "/",
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   cartCookieMaxAge,
	})
	s.saved = data
	s.written = true
	return nil
}

// Carts picks the storage for the current visitor: the configured server-side
// backend keyed by session id, or the cart cookie when there is none.
type Carts struct {
	Backend      cart.Backend
	SecureCookie bool
}

func (cs *Carts) Open(c echo.Context) cart.Storage {
	if cs == nil || cs.Backend == nil {
		return newCookieStorage(c, cs != nil && cs.SecureCookie)
	}
	return cs.Backend.Open(SessionID(c))
}
