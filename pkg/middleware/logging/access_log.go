package loggingmw

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/sakhi_shop/pkg/logging"
)

// Options tunes the access log.
type Options struct {
	// QuietPrefixes are path prefixes whose successful responses log at debug,
	// so liveness and readiness polling does not flood info.
	QuietPrefixes []string
	// SessionKey is the echo context key a downstream middleware stores the
	// session id under. It is read after the handler runs.
	SessionKey string
}

// AccessLog puts a request-scoped logger into the request context and writes
// one http_request line per request once the response status is known.
func AccessLog(base *slog.Logger, opts Options) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			l := base.With("method", req.Method, "route", c.Path())
			if rid := requestID(c); rid != "" {
				l = l.With("request_id", rid)
				c.Response().Header().Set(echo.HeaderXRequestID, rid)
			}
			c.SetRequest(req.WithContext(logging.IntoContext(req.Context(), l)))

			start := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}

			attrs := []any{
				"status", c.Response().Status,
				"uri", req.URL.RequestURI(),
				"remote_ip", c.RealIP(),
				"duration_ms", time.Since(start).Milliseconds(),
				"bytes", c.Response().Size,
			}
			if opts.SessionKey != "" {
				if sid, _ := c.Get(opts.SessionKey).(string); sid != "" {
					attrs = append(attrs, "session_id", sid)
				}
			}
			if err != nil {
				attrs = append(attrs, "error", err.Error())
			}

			l.Log(req.Context(), opts.level(req.URL.Path, c.Response().Status, err), "http_request", attrs...)
			return nil
		}
	}
}

func (o Options) level(path string, status int, err error) slog.Level {
	switch {
	case status >= http.StatusInternalServerError:
		return slog.LevelError
	case err != nil && !isHTTPError(err):
		return slog.LevelError
	case status >= http.StatusBadRequest:
		return slog.LevelWarn
	}
	for _, p := range o.QuietPrefixes {
		if strings.HasPrefix(path, p) {
			return slog.LevelDebug
		}
	}
	return slog.LevelInfo
}

func isHTTPError(err error) bool {
	var he *echo.HTTPError
	return errors.As(err, &he)
}

func requestID(c echo.Context) string {
	if rid := c.Request().Header.Get(echo.HeaderXRequestID); rid != "" {
		return rid
	}
	return c.Response().Header().Get(echo.HeaderXRequestID)
}
