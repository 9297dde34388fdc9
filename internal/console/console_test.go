package console

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/inventory/internal/app"
	"github.com/Skotchmaster/inventory/internal/config"
	"github.com/Skotchmaster/inventory/internal/logging"
	"github.com/Skotchmaster/inventory/pkg/client"
)

type testEnv struct {
	app    *App
	out    *bytes.Buffer
	errLog *bytes.Buffer
}

func newTestEnv(t *testing.T) *testEnv {
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
	out, errLog := &bytes.Buffer{}, &bytes.Buffer{}
	log := slog.New(slog.NewTextHandler(errLog, nil))

	return &testEnv{
		app:    NewApp(api, client.NewAuthContext(api, storage), strings.NewReader(""), out, log),
		out:    out,
		errLog: errLog,
	}
}

func (e *testEnv) answer(lines ...string) {
	e.app.In = bufio.NewReader(strings.NewReader(strings.Join(lines, "\n") + "\n"))
}

func (e *testEnv) login(t *testing.T, email, password string) {
	t.Helper()
	_, err := e.app.Auth.Login(context.Background(), email, password)
	require.NoError(t, err)
}

func (e *testEnv) seed(t *testing.T) (uint, uint) {
	t.Helper()
	ctx := context.Background()
	contact := "ana@acme.com"
	sid, err := e.app.API.CreateSupplier(ctx, client.Supplier{Name: "Acme", CNPJ: "1", Contact: &contact})
	require.NoError(t, err)
	price, qty := 9.99, 5
	pid, err := e.app.API.CreateProduct(ctx, client.ProductForm{Name: "Widget", Price: &price, Quantity: &qty, SupplierID: sid})
	require.NoError(t, err)
	return sid, pid
}

func TestRequire(t *testing.T) {
	env := newTestEnv(t)

	assert.ErrorIs(t, env.app.Require(""), ErrLoginRequired)
	assert.ErrorIs(t, env.app.Require(client.RoleAdmin), ErrLoginRequired)

	require.NoError(t, env.app.Auth.Register(context.Background(), "Bia", "bia@example.com", "secret", ""))
	env.login(t, "bia@example.com", "secret")
	assert.NoError(t, env.app.Require(""))
	assert.ErrorIs(t, env.app.Require(client.RoleAdmin), ErrForbidden)

	env.login(t, "admin@example.com", "admin123")
	assert.NoError(t, env.app.Require(client.RoleAdmin))
}

func TestProductList_ActionsOnlyForAdmin(t *testing.T) {
	env := newTestEnv(t)
	env.seed(t)
	ctx := context.Background()

	page := NewProductListPage(env.app, client.ProductFilter{})
	require.NoError(t, env.app.Navigate(ctx, page))
	assert.Contains(t, env.out.String(), "Widget")
	assert.Contains(t, env.out.String(), "Acme")
	assert.Contains(t, env.out.String(), "9.99")
	assert.NotContains(t, env.out.String(), "Ações")

	env.out.Reset()
	env.login(t, "admin@example.com", "admin123")
	page.Render(env.out)
	assert.Contains(t, env.out.String(), "Ações")
	assert.Contains(t, env.out.String(), "delete 1")

	env.out.Reset()
	empty := NewProductListPage(env.app, client.ProductFilter{Name: "nothing"})
	require.NoError(t, env.app.Navigate(ctx, empty))
	assert.Equal(t, "Nenhum produto encontrado.\n", env.out.String())
}

func TestProductList_Delete(t *testing.T) {
	env := newTestEnv(t)
	_, pid := env.seed(t)
	ctx := context.Background()

	page := NewProductListPage(env.app, client.ProductFilter{})
	require.NoError(t, page.Load(ctx))

	_, err := page.Delete(ctx, pid)
	assert.ErrorIs(t, err, ErrLoginRequired)

	env.login(t, "admin@example.com", "admin123")

	env.answer("n")
	deleted, err := page.Delete(ctx, pid)
	require.NoError(t, err)
	assert.False(t, deleted)
	assert.Len(t, page.Rows, 1)
	_, err = env.app.API.GetProduct(ctx, pid)
	require.NoError(t, err)

	env.answer("s")
	deleted, err = page.Delete(ctx, pid)
	require.NoError(t, err)
	assert.True(t, deleted)
	assert.Empty(t, page.Rows)
	_, err = env.app.API.GetProduct(ctx, pid)
	assert.Equal(t, 404, client.StatusOf(err))
}

func TestProductForm_CreateAndEdit(t *testing.T) {
	env := newTestEnv(t)
	sid, _ := env.seed(t)
	ctx := context.Background()

	img := filepath.Join(t.TempDir(), "bolt.png")
	require.NoError(t, os.WriteFile(img, []byte("png"), 0o600))

	form := NewProductFormPage(env.app, 0)
	require.NoError(t, env.app.Navigate(ctx, form))
	assert.Contains(t, env.out.String(), "Novo produto")
	require.Len(t, form.Suppliers, 1)

	env.answer("Bolt", "steel", "1.5", "100", id(sid), img)
	require.NoError(t, form.Fill())
	assert.Equal(t, "Bolt", form.Form.Name)
	assert.Equal(t, 1.5, *form.Form.Price)
	assert.Equal(t, 100, *form.Form.Quantity)

	env.out.Reset()
	list, err := form.Submit(ctx)
	require.NoError(t, err)
	require.Len(t, list.Rows, 2)
	assert.Contains(t, env.out.String(), "Bolt")
	require.NotNil(t, list.Rows[1].Image)
	assert.True(t, strings.HasSuffix(*list.Rows[1].Image, "-bolt.png"))

	edit := NewProductFormPage(env.app, list.Rows[1].ID)
	require.NoError(t, edit.Load(ctx))
	assert.Equal(t, "Bolt", edit.Form.Name)
	assert.Equal(t, "steel", *edit.Form.Description)
	assert.Equal(t, sid, edit.Form.SupplierID)

	// keep everything but the name
	env.answer("Bolt M8", "", "", "", "", "")
	require.NoError(t, edit.Fill())
	_, err = edit.Submit(ctx)
	require.NoError(t, err)

	got, err := env.app.API.GetProduct(ctx, edit.ID)
	require.NoError(t, err)
	assert.Equal(t, "Bolt M8", got.Name)
	assert.Equal(t, 1.5, *got.Price)
	assert.Equal(t, *list.Rows[1].Image, *got.Image)
}

func TestProductForm_SubmitFailureIsLogged(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	form := NewProductFormPage(env.app, 0)
	form.Form = client.ProductForm{Name: "Orphan"}

	list, err := form.Submit(ctx)
	require.Error(t, err)
	assert.Nil(t, list)
	assert.Equal(t, 400, client.StatusOf(err))
	assert.Contains(t, env.errLog.String(), "product_save_failed")
	assert.Empty(t, env.out.String())
}

func TestProductForm_FillRejectsBadNumbers(t *testing.T) {
	env := newTestEnv(t)
	form := NewProductFormPage(env.app, 0)

	env.answer("Bolt", "", "cheap")
	assert.Error(t, form.Fill())
	assert.Empty(t, form.Form.Name)
}

func TestSupplierPages(t *testing.T) {
	env := newTestEnv(t)
	sid, pid := env.seed(t)
	ctx := context.Background()

	form := NewSupplierFormPage(env.app, 0)
	env.answer("Globex", "2", "", "Rua A, 1")
	require.NoError(t, form.Fill())
	assert.Nil(t, form.Form.Contact)

	list, err := form.Submit(ctx)
	require.NoError(t, err)
	require.Len(t, list.Rows, 2)
	assert.Contains(t, env.out.String(), "Globex")
	assert.Contains(t, env.out.String(), "Rua A, 1")

	list.Filter = "ACME.COM"
	require.Len(t, list.Visible(), 1)
	assert.Equal(t, "Acme", list.Visible()[0].Name)
	list.Filter = "glo"
	require.Len(t, list.Visible(), 1)
	assert.Equal(t, "Globex", list.Visible()[0].Name)
	list.Filter = ""

	edit := NewSupplierFormPage(env.app, sid)
	require.NoError(t, edit.Load(ctx))
	assert.Equal(t, "Acme", edit.Form.Name)
	assert.Equal(t, "ana@acme.com", *edit.Form.Contact)

	env.login(t, "admin@example.com", "admin123")

	env.answer("s")
	deleted, err := list.Delete(ctx, sid)
	require.Error(t, err)
	assert.False(t, deleted)
	assert.Len(t, list.Rows, 2)
	assert.Contains(t, env.errLog.String(), "supplier_delete_failed")

	require.NoError(t, env.app.API.DeleteProduct(ctx, pid))
	env.answer("sim")
	deleted, err = list.Delete(ctx, sid)
	require.NoError(t, err)
	assert.True(t, deleted)
	require.Len(t, list.Rows, 1)
	assert.Equal(t, "Globex", list.Rows[0].Name)
}

func TestAuthPages(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	login, err := NewRegisterPage(env.app).Submit(ctx, "Bia", "bia@example.com", "secret", "")
	require.NoError(t, err)
	assert.Contains(t, env.out.String(), "Usuário registrado com sucesso!")

	_, err = login.Submit(ctx, "bia@example.com", "wrong")
	require.Error(t, err)
	assert.Contains(t, env.out.String(), "Falha ao realizar login")
	assert.False(t, env.app.Auth.IsAuthenticated())

	list, err := login.Submit(ctx, "bia@example.com", "secret")
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Contains(t, env.out.String(), "Bem-vindo, Bia.")
	assert.True(t, env.app.Auth.IsAuthenticated())

	assert.ErrorIs(t, NewUsersPage(env.app).Load(ctx), ErrForbidden)

	_, err = env.app.Logout(ctx)
	require.NoError(t, err)
	assert.False(t, env.app.Auth.IsAuthenticated())
	assert.Contains(t, env.out.String(), "Sessão encerrada.")

	_, err = NewRegisterPage(env.app).Submit(ctx, "Eve", "eve@example.com", "x", "admin")
	assert.Equal(t, 403, client.StatusOf(err))
	assert.Contains(t, env.errLog.String(), "register_failed")
}

func TestUsersPage(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.login(t, "admin@example.com", "admin123")

	page := NewUsersPage(env.app)
	require.NoError(t, env.app.Navigate(ctx, page))
	require.Len(t, page.Rows, 1)
	assert.Contains(t, env.out.String(), "admin@example.com")
}

func TestSearchPage_WithoutSearchBackend(t *testing.T) {
	env := newTestEnv(t)

	err := NewSearchPage(env.app, "widget").Load(context.Background())
	require.Error(t, err)
	assert.Equal(t, 400, client.StatusOf(err))
}

func TestPromptAndConfirm(t *testing.T) {
	env := newTestEnv(t)

	env.answer("", "novo")
	v, err := env.app.Prompt("Nome", "antigo")
	require.NoError(t, err)
	assert.Equal(t, "antigo", v)
	v, err = env.app.Prompt("Nome", "antigo")
	require.NoError(t, err)
	assert.Equal(t, "novo", v)

	for answer, want := range map[string]bool{"s": true, "YES": true, "": false, "n": false, "talvez": false} {
		env.answer(answer)
		ok, err := env.app.Confirm("?")
		require.NoError(t, err)
		assert.Equal(t, want, ok, answer)
	}

	env.app.In = bufio.NewReader(strings.NewReader(""))
	ok, err := env.app.Confirm("?")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestDetailPages(t *testing.T) {
	env := newTestEnv(t)
	sid, pid := env.seed(t)
	ctx := context.Background()

	require.NoError(t, env.app.Navigate(ctx, NewProductPage(env.app, pid)))
	assert.Contains(t, env.out.String(), "Acme (1)")
	assert.Contains(t, env.out.String(), "9.99")

	require.NoError(t, env.app.Navigate(ctx, NewSupplierPage(env.app, sid)))
	assert.Contains(t, env.out.String(), "ana@acme.com")

	err := env.app.Navigate(ctx, NewProductPage(env.app, 99))
	assert.Equal(t, 404, client.StatusOf(err))
	assert.Contains(t, env.errLog.String(), "product_get_failed")
}

func TestNewTable_KeepsHeadersAndLongCells(t *testing.T) {
	var buf bytes.Buffer
	tw := newTable(&buf, "Nome", "Descrição")
	row(tw, "Widget", strings.Repeat("longa ", 10))
	tw.Render()

	out := buf.String()
	assert.Contains(t, out, "Descrição")
	assert.NotContains(t, out, "DESCRIÇÃO")
	assert.Contains(t, out, strings.TrimSpace(strings.Repeat("longa ", 10)), "cells are not wrapped")
	assert.Contains(t, out, "+-")
}
