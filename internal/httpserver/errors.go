package httpserver

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/inventory/internal/logging"
	"github.com/Skotchmaster/inventory/internal/transport"
)

const (
	KindValidation   = "validation"
	KindUnauthorized = "unauthorized"
	KindForbidden    = "forbidden"
	KindNotFound     = "not_found"
	KindStorage      = "storage"
	KindInternal     = "internal"
)

var errStorage = errors.New("storage failure")

// storageError is a 500 whose body reports the storage kind.
func storageError(msg string, err error) *echo.HTTPError {
	return echo.NewHTTPError(http.StatusInternalServerError, msg).SetInternal(fmt.Errorf("%w: %w", errStorage, err))
}

func kindOf(he *echo.HTTPError) string {
	switch {
	case he.Code == http.StatusUnauthorized:
		return KindUnauthorized
	case he.Code == http.StatusForbidden:
		return KindForbidden
	case he.Code == http.StatusNotFound || he.Code == http.StatusMethodNotAllowed:
		return KindNotFound
	case he.Code >= 400 && he.Code < 500:
		return KindValidation
	case errors.Is(he.Internal, errStorage):
		return KindStorage
	default:
		return KindInternal
	}
}

// ErrorHandler renders every error as {"error": <message>, "code": <kind>}.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	var he *echo.HTTPError
	if !errors.As(err, &he) {
		logging.FromContext(c.Request().Context()).Error("unhandled_error", "error", err)
		he = echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}

	msg, ok := he.Message.(string)
	if !ok || msg == "" {
		msg = http.StatusText(he.Code)
	}

	var werr error
	if c.Request().Method == http.MethodHead {
		werr = c.NoContent(he.Code)
	} else {
		werr = c.JSON(he.Code, transport.ErrorResponse{Error: msg, Code: kindOf(he)})
	}
	if werr != nil {
		logging.FromContext(c.Request().Context()).Error("write_error_response_failed", "error", werr)
	}
}
