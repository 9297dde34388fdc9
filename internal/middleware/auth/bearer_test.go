package auth

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/inventory/internal/logging"
	"github.com/Skotchmaster/inventory/internal/tokens"
)

var secret = []byte("test-jwt-secret")

func issue(t *testing.T, id uint, role string) string {
	t.Helper()
	tok, _, err := (&tokens.Issuer{Secret: secret, TTL: time.Hour}).Issue(id, role)
	require.NoError(t, err)
	return tok
}

func run(t *testing.T, mw echo.MiddlewareFunc, authHeader string) (echo.Context, error) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/usuarios", nil)
	if authHeader != "" {
		req.Header.Set(echo.HeaderAuthorization, authHeader)
	}
	c := e.NewContext(req, httptest.NewRecorder())
	err := mw(func(c echo.Context) error { return c.NoContent(http.StatusOK) })(c)
	return c, err
}

func statusOf(t *testing.T, err error) int {
	t.Helper()
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok, "expected HTTPError, got %v", err)
	return he.Code
}

func TestRequireAdmin(t *testing.T) {
	m := NewBearerAuth(secret)

	_, err := run(t, m.RequireAdmin, "")
	assert.Equal(t, http.StatusUnauthorized, statusOf(t, err))

	_, err = run(t, m.RequireAdmin, "Basic abc")
	assert.Equal(t, http.StatusUnauthorized, statusOf(t, err))

	_, err = run(t, m.RequireAdmin, "Bearer not-a-jwt")
	assert.Equal(t, http.StatusUnauthorized, statusOf(t, err))

	_, err = run(t, m.RequireAdmin, "Bearer "+issue(t, 2, "user"))
	assert.Equal(t, http.StatusForbidden, statusOf(t, err))

	c, err := run(t, m.RequireAdmin, "bearer "+issue(t, 1, "admin"))
	require.NoError(t, err)
	assert.EqualValues(t, 1, c.Get(ContextUserID))
	assert.Equal(t, "admin", c.Get(ContextRole))
}

func TestRequireAuth(t *testing.T) {
	m := NewBearerAuth(secret)

	c, err := run(t, m.RequireAuth, "Bearer "+issue(t, 5, "user"))
	require.NoError(t, err)
	assert.EqualValues(t, 5, c.Get(ContextUserID))

	other := NewBearerAuth([]byte("other"))
	_, err = run(t, other.RequireAuth, "Bearer "+issue(t, 5, "user"))
	assert.Equal(t, http.StatusUnauthorized, statusOf(t, err))
}

func TestRequireAuth_TagsRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/usuarios", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+issue(t, 9, "admin"))
	req = req.WithContext(logging.IntoContext(req.Context(), logging.NewWithWriter(&buf, "info")))
	c := e.NewContext(req, httptest.NewRecorder())

	h := NewBearerAuth(secret).RequireAuth(func(c echo.Context) error {
		logging.FromContext(c.Request().Context()).Info("handled")
		return nil
	})
	require.NoError(t, h(c))

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.EqualValues(t, 9, line["user_id"])
	assert.Equal(t, "admin", line["role"])
}
