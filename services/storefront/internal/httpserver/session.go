package httpserver

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/sakhi_shop/pkg/logging"
	"github.com/Skotchmaster/sakhi_shop/pkg/session"
)

const (
	SessionCookie = "sakhi_session"
	// SessionKey is the echo context key holding the current session id.
	SessionKey = "session_id"
)

// Sessions hands every visitor a signed session cookie whose subject keys the
// server-side cart and the published cart events.
type Sessions struct {
	Secret []byte
	TTL    time.Duration
	Secure bool
}

func (s *Sessions) Middleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		l := logging.FromContext(ctx)

		id := ""
		if ck, err := c.Cookie(SessionCookie); err == nil {
			sid, err := session.Parse(s.Secret, ck.Value)
			if err != nil {
				l.Warn("session_cookie_rejected", "error", err)
			}
			id = sid
		}

		if id == "" {
			id = session.NewID()
			token, err := session.Issue(s.Secret, id, time.Now().Add(s.TTL))
			if err != nil {
				l.Error("session_issue_error", "status", 500, "error", err)
				return echo.NewHTTPError(http.StatusInternalServerError, "cannot start session")
			}
			c.SetCookie(&http.Cookie{
				Name:     SessionCookie,
				Value:    token,
				Path:     "/",
				HttpOnly: true,
				Secure:   s.Secure,
				SameSite: http.SameSiteLaxMode,
				MaxAge:   int(s.TTL.Seconds()),
			})
		}

		c.Set(SessionKey, id)
		c.SetRequest(c.Request().WithContext(logging.IntoContext(ctx, l.With("session_id", id))))
		return next(c)
	}
}

// SessionID returns the id set by Sessions.Middleware, or "" outside it.
func SessionID(c echo.Context) string {
	s, _ := c.Get(SessionKey).(string)
	return s
}
