package httpserver

import (
	"log/slog"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	loggingmw "github.com/Skotchmaster/inventory/internal/middleware/logging"
)

const (
	bodyLimit     = "20M"
	slowThreshold = 2 * time.Second
)

func NewEcho(logger *slog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = ErrorHandler

	e.Pre(echomw.RemoveTrailingSlash())
	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(loggingmw.RequestLoggerWithConfig(loggingmw.Config{
		Logger:        logger,
		Skipper:       loggingmw.SkipPrefixes("/health"),
		SlowThreshold: slowThreshold,
	}))
	e.Use(echomw.CORS())
	e.Use(echomw.BodyLimit(bodyLimit))

	return e
}
