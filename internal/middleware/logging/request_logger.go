package loggingmw

import (
	"log/slog"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/Skotchmaster/inventory/internal/logging"
)

type Config struct {
	Logger  *slog.Logger
	Skipper middleware.Skipper
	// SlowThreshold, when positive, raises successful requests slower than it to warn.
	SlowThreshold time.Duration
}

// SkipPrefixes skips requests whose URL path starts with any of prefixes.
func SkipPrefixes(prefixes ...string) middleware.Skipper {
	return func(c echo.Context) bool {
		p := c.Request().URL.Path
		for _, pre := range prefixes {
			if strings.HasPrefix(p, pre) {
				return true
			}
		}
		return false
	}
}

func RequestLogger(base *slog.Logger) echo.MiddlewareFunc {
	return RequestLoggerWithConfig(Config{Logger: base})
}

// RequestLoggerWithConfig puts a request scoped logger into the request
// context and logs one "request completed" line per request. Handler errors
// are rendered here so the logged status is the one the client saw.
func RequestLoggerWithConfig(cfg Config) echo.MiddlewareFunc {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Skipper == nil {
		cfg.Skipper = middleware.DefaultSkipper
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if cfg.Skipper(c) {
				return next(c)
			}

			req := c.Request()
			l := cfg.Logger.With(
				"method", req.Method,
				"path", c.Path(),
				"url", req.URL.Path,
				"remote_ip", c.RealIP(),
				"user_agent", req.UserAgent(),
			)
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
			dur := time.Since(start)

			res := c.Response()
			attrs := []any{"status", res.Status, "duration_ms", dur.Milliseconds()}
			switch {
			case res.Status >= 500:
				if err != nil {
					attrs = append(attrs, "error", err.Error())
				}
				l.Error("request completed", attrs...)
			case res.Status >= 400:
				l.Warn("request completed", attrs...)
			case cfg.SlowThreshold > 0 && dur > cfg.SlowThreshold:
				l.Warn("request completed", append(attrs, "slow", true)...)
			default:
				l.Info("request completed", append(attrs, "bytes", res.Size)...)
			}
			return nil
		}
	}
}

func requestID(c echo.Context) string {
	if rid := c.Response().Header().Get(echo.HeaderXRequestID); rid != "" {
		return rid
	}
	return c.Request().Header.Get(echo.HeaderXRequestID)
}
