package httpserver

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/inventory/internal/logging"
	"github.com/Skotchmaster/inventory/internal/upload"
)

type UploadHTTP struct {
	Store upload.Store
}

func (h *UploadHTTP) ServeUpload(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "upload.serve")

	name, err := url.PathUnescape(c.Param("name"))
	if err != nil || !upload.ValidName(name) {
		l.Warn("serve_upload_failed", "status", 404, "reason", "invalid name", "name", c.Param("name"))
		return echo.NewHTTPError(http.StatusNotFound, "file not found")
	}

	rc, ctype, err := h.Store.Open(ctx, name)
	if err != nil {
		if errors.Is(err, upload.ErrNotFound) {
			l.Warn("serve_upload_failed", "status", 404, "reason", "file not found", "name", name)
			return echo.NewHTTPError(http.StatusNotFound, "file not found")
		}
		l.Error("serve_upload_failed", "status", 500, "reason", "cannot open file", "error", err)
		return storageError("cannot open file", err)
	}
	defer rc.Close()

	return c.Stream(http.StatusOK, ctype, rc)
}
