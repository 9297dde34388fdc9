package main

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/inventory/internal/app"
	"github.com/Skotchmaster/inventory/internal/config"
	"github.com/Skotchmaster/inventory/internal/console"
	"github.com/Skotchmaster/inventory/internal/logging"
	"github.com/Skotchmaster/inventory/pkg/client"
)

func newTestApp(t *testing.T) *console.App {
	t.Helper()

	a, err := app.New(context.Background(), config.Config{
		DBDriver:      "sqlite",
		DatabaseURL:   ":memory:",
		UploadDir:     t.TempDir(),
		JWTSecret:     []byte("test-jwt-secret"),
		TokenTTL:      time.Hour,
		AdminEmail:    "admin@example.com",
		AdminPassword: "admin123",
		AdminName:     "Admin",
	}, logging.NewWithWriter(io.Discard, "error"))
	require.NoError(t, err)

	srv := httptest.NewServer(a.Echo)
	t.Cleanup(func() {
		srv.Close()
		_ = a.Close()
	})

	storage := client.NewMemoryStorage()
	api := client.NewClient(srv.URL, storage)
	return console.NewApp(api, client.NewAuthContext(api, storage), strings.NewReader(""), io.Discard, logging.NewWithWriter(io.Discard, "error"))
}

// run executes a fresh root command with stdin answers and returns what it printed.
func run(ui *console.App, answers []string, args ...string) (string, error) {
	out := &bytes.Buffer{}
	ui.Out = out
	ui.In = bufio.NewReader(strings.NewReader(strings.Join(answers, "\n") + "\n"))

	cmd := newRootCmd(ui)
	cmd.SetArgs(args)
	cmd.SetErr(io.Discard)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestCommands_AdminFlow(t *testing.T) {
	ui := newTestApp(t)

	_, err := run(ui, nil, "whoami")
	assert.ErrorIs(t, err, console.ErrLoginRequired)

	out, err := run(ui, nil, "login", "--email", "admin@example.com", "--senha", "admin123")
	require.NoError(t, err)
	assert.Contains(t, out, "Bem-vindo, Admin.")

	out, err = run(ui, nil, "whoami")
	require.NoError(t, err)
	assert.Contains(t, out, "Admin (id 1, role admin)")

	out, err = run(ui, []string{"Acme", "1", "ana@acme.com", ""}, "suppliers", "create")
	require.NoError(t, err)
	assert.Contains(t, out, "Acme")

	_, err = run(ui, []string{"Widget", "", "9.99", "5", "1", ""}, "products", "create")
	require.NoError(t, err)
	_, err = run(ui, []string{"Bolt", "", "1.5", "100", "1", ""}, "produtos", "create")
	require.NoError(t, err)

	out, err = run(ui, nil, "products", "list", "--nome", "wid")
	require.NoError(t, err)
	assert.Contains(t, out, "Widget")
	assert.NotContains(t, out, "Bolt")

	out, err = run(ui, nil, "products", "list", "--ordem", "asc")
	require.NoError(t, err)
	assert.Less(t, strings.Index(out, "Bolt"), strings.Index(out, "Widget"))

	out, err = run(ui, nil, "products", "show", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Widget")

	_, err = run(ui, []string{"Widget XL", "", "", "", "", ""}, "products", "edit", "1")
	require.NoError(t, err)
	out, err = run(ui, nil, "products", "show", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Widget XL")
	assert.Contains(t, out, "9.99")

	out, err = run(ui, []string{"s"}, "products", "rm", "2")
	require.NoError(t, err)
	assert.NotContains(t, out, "Bolt")

	out, err = run(ui, nil, "suppliers", "list", "--filtro", "acme")
	require.NoError(t, err)
	assert.Contains(t, out, "ana@acme.com")

	out, err = run(ui, nil, "users")
	require.NoError(t, err)
	assert.Contains(t, out, "admin@example.com")

	_, err = run(ui, nil, "logout")
	require.NoError(t, err)
	_, err = run(ui, nil, "whoami")
	assert.ErrorIs(t, err, console.ErrLoginRequired)
}

func TestCommands_RegisterPromptsAndRoleChecks(t *testing.T) {
	ui := newTestApp(t)

	_, err := run(ui, []string{"Bia", "bia@example.com", "secret"}, "register")
	require.NoError(t, err)

	_, err = run(ui, []string{"secret"}, "login", "--email", "bia@example.com")
	require.NoError(t, err)

	_, err = run(ui, nil, "products", "create")
	assert.ErrorIs(t, err, console.ErrForbidden)
	_, err = run(ui, nil, "users")
	assert.ErrorIs(t, err, console.ErrForbidden)
}

func TestCommands_ArgumentErrors(t *testing.T) {
	ui := newTestApp(t)

	_, err := run(ui, nil, "products", "show", "abc")
	assert.Error(t, err)

	_, err = run(ui, nil, "products", "show")
	assert.Error(t, err)

	_, err = run(ui, nil, "search")
	assert.Error(t, err)

	_, err = run(ui, nil, "bogus")
	assert.Error(t, err)
}

func TestDescribe(t *testing.T) {
	assert.Equal(t, "login required: run inventoryctl login", describe(fmt.Errorf("users: %w", console.ErrLoginRequired)))
	assert.Equal(t, "admin role required", describe(console.ErrForbidden))
	assert.Equal(t, "boom", describe(fmt.Errorf("boom")))
}
