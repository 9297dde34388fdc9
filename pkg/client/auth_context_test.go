package client

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAuthContext_Hydration(t *testing.T) {
	tests := []struct {
		name   string
		values map[string]string
		want   *User
	}{
		{name: "empty"},
		{name: "token only", values: map[string]string{KeyToken: "t"}},
		{name: "user only", values: map[string]string{KeyUser: `{"id":1,"name":"Ana","role":"user"}`}},
		{name: "corrupt user", values: map[string]string{KeyToken: "t", KeyUser: "{"}},
		{
			name:   "both",
			values: map[string]string{KeyToken: "t", KeyUser: `{"id":1,"name":"Ana","role":"admin"}`},
			want:   &User{ID: 1, Name: "Ana", Role: "admin"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewMemoryStorage()
			for k, v := range tt.values {
				require.NoError(t, s.Set(k, v))
			}

			a := NewAuthContext(NewClient("http://unused", s), s)
			assert.Equal(t, tt.want, a.User())
			assert.Equal(t, tt.want != nil, a.IsAuthenticated())
			if tt.want != nil {
				assert.Equal(t, "t", a.Token())
				assert.True(t, a.IsAdmin())
			} else {
				assert.Empty(t, a.Token())
			}
		})
	}
}

func TestAuthContext_LoginPersistsAndLogoutClears(t *testing.T) {
	srv := newServer(t)
	storage := NewFileStorage(filepath.Join(t.TempDir(), "state", "local.json"))
	api := NewClient(srv.URL, storage)
	ctx := context.Background()

	a := NewAuthContext(api, storage)
	assert.False(t, a.IsAuthenticated())

	_, err := a.Login(ctx, "admin@example.com", "wrong")
	assert.Equal(t, http.StatusUnauthorized, StatusOf(err))
	assert.False(t, a.IsAuthenticated())

	u, err := a.Login(ctx, "admin@example.com", "admin123")
	require.NoError(t, err)
	assert.Equal(t, "Admin", u.Name)
	assert.True(t, a.IsAdmin())
	assert.NotEmpty(t, a.Token())

	token, ok := storage.Get(KeyToken)
	require.True(t, ok)
	assert.Equal(t, a.Token(), token)

	restored := NewAuthContext(api, NewFileStorage(storage.path))
	require.NotNil(t, restored.User())
	assert.Equal(t, *u, *restored.User())

	require.NoError(t, a.Logout())
	assert.Nil(t, a.User())
	assert.Empty(t, a.Token())
	_, ok = storage.Get(KeyToken)
	assert.False(t, ok)
	_, ok = storage.Get(KeyUser)
	assert.False(t, ok)
}

func TestAuthContext_LoginWithoutToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"user": map[string]any{"id": 3, "name": "Bia", "role": "user"}})
	}))
	t.Cleanup(srv.Close)

	storage := NewMemoryStorage()
	require.NoError(t, storage.Set(KeyToken, "stale"))
	a := NewAuthContext(NewClient(srv.URL, storage), storage)

	u, err := a.Login(context.Background(), "bia@example.com", "x")
	require.NoError(t, err)
	assert.Equal(t, "Bia", u.Name)
	assert.Empty(t, a.Token())
	assert.False(t, a.IsAdmin())

	_, ok := storage.Get(KeyToken)
	assert.False(t, ok)
	raw, ok := storage.Get(KeyUser)
	require.True(t, ok)
	assert.JSONEq(t, `{"id":3,"name":"Bia","role":"user"}`, raw)
}

func TestAuthContext_RegisterErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusForbidden)
		_, _ = io.WriteString(w, `{"error":"admin registration is disabled","code":"forbidden"}`)
	}))
	t.Cleanup(srv.Close)

	s := NewMemoryStorage()
	err := NewAuthContext(NewClient(srv.URL, s), s).Register(context.Background(), "A", "a@x", "p", "admin")

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "forbidden", apiErr.Code)
	assert.Equal(t, "admin registration is disabled", apiErr.Message)
}
