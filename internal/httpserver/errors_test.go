package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorHandler_Kinds(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
		msg    string
	}{
		{name: "validation", err: echo.NewHTTPError(http.StatusBadRequest, "bad"), status: 400, code: KindValidation, msg: "bad"},
		{name: "too large", err: echo.ErrStatusRequestEntityTooLarge, status: 413, code: KindValidation},
		{name: "unauthorized", err: echo.NewHTTPError(http.StatusUnauthorized, "who"), status: 401, code: KindUnauthorized, msg: "who"},
		{name: "forbidden", err: echo.NewHTTPError(http.StatusForbidden, "no"), status: 403, code: KindForbidden, msg: "no"},
		{name: "route not found", err: echo.ErrNotFound, status: 404, code: KindNotFound},
		{name: "storage", err: storageError("cannot save", errors.New("UNIQUE constraint failed: suppliers.cnpj")), status: 500, code: KindStorage, msg: "cannot save"},
		{name: "plain 500", err: echo.NewHTTPError(http.StatusInternalServerError, "boom"), status: 500, code: KindInternal, msg: "boom"},
		{name: "raw error", err: errors.New("secret detail"), status: 500, code: KindInternal, msg: "internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			rec := httptest.NewRecorder()
			c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

			ErrorHandler(tt.err, c)

			require.Equal(t, tt.status, rec.Code)
			var body map[string]string
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.code, body["code"])
			assert.NotEmpty(t, body["error"])
			if tt.msg != "" {
				assert.Equal(t, tt.msg, body["error"])
			}
			assert.NotContains(t, rec.Body.String(), "UNIQUE")
			assert.NotContains(t, rec.Body.String(), "secret detail")
		})
	}
}
