package console

import (
	"context"
	"fmt"
	"io"

	"github.com/Skotchmaster/inventory/pkg/client"
)

type LoginPage struct {
	app *App
}

func NewLoginPage(app *App) *LoginPage {
	return &LoginPage{app: app}
}

func (p *LoginPage) Load(context.Context) error { return nil }

func (p *LoginPage) Render(w io.Writer) {
	fmt.Fprintln(w, "Login")
}

// Submit signs in and lands on the product list.
func (p *LoginPage) Submit(ctx context.Context, email, password string) (*ProductListPage, error) {
	u, err := p.app.Auth.Login(ctx, email, password)
	if err != nil {
		p.app.Log.Error("login_failed", "status", client.StatusOf(err), "error", err)
		fmt.Fprintln(p.app.Out, "Falha ao realizar login. Verifique suas credenciais.")
		return nil, err
	}
	fmt.Fprintf(p.app.Out, "Bem-vindo, %s.\n", u.Name)

	list := NewProductListPage(p.app, client.ProductFilter{})
	if err := p.app.Navigate(ctx, list); err != nil {
		return nil, err
	}
	return list, nil
}

type RegisterPage struct {
	app *App
}

func NewRegisterPage(app *App) *RegisterPage {
	return &RegisterPage{app: app}
}

func (p *RegisterPage) Load(context.Context) error { return nil }

func (p *RegisterPage) Render(w io.Writer) {
	fmt.Fprintln(w, "Registro")
}

// Submit registers the account and sends the user to the login page.
func (p *RegisterPage) Submit(ctx context.Context, name, email, password, role string) (*LoginPage, error) {
	if err := p.app.Auth.Register(ctx, name, email, password, role); err != nil {
		p.app.Log.Error("register_failed", "status", client.StatusOf(err), "error", err)
		return nil, err
	}
	fmt.Fprintln(p.app.Out, "Usuário registrado com sucesso!")

	login := NewLoginPage(p.app)
	if err := p.app.Navigate(ctx, login); err != nil {
		return nil, err
	}
	return login, nil
}

// Logout clears the session and shows the login page.
func (a *App) Logout(ctx context.Context) (*LoginPage, error) {
	if err := a.Auth.Logout(); err != nil {
		a.Log.Error("logout_failed", "error", err)
		return nil, err
	}
	fmt.Fprintln(a.Out, "Sessão encerrada.")

	login := NewLoginPage(a)
	if err := a.Navigate(ctx, login); err != nil {
		return nil, err
	}
	return login, nil
}

// UsersPage lists accounts. Admin only.
type UsersPage struct {
	app  *App
	Rows []client.UserRecord
}

func NewUsersPage(app *App) *UsersPage {
	return &UsersPage{app: app}
}

func (p *UsersPage) Load(ctx context.Context) error {
	if err := p.app.Require(client.RoleAdmin); err != nil {
		return err
	}
	rows, err := p.app.API.ListUsers(ctx)
	if err != nil {
		p.app.Log.Error("user_list_failed", "status", client.StatusOf(err), "error", err)
		return err
	}
	p.Rows = rows
	return nil
}

func (p *UsersPage) Render(w io.Writer) {
	tw := newTable(w, "ID", "Nome", "Email", "Role")
	for _, u := range p.Rows {
		row(tw, id(u.ID), u.Name, u.Email, u.Role)
	}
	tw.Render()
}

// SearchPage shows full-text search hits.
type SearchPage struct {
	app   *App
	Query string
	Total int64
	Rows  []client.Product
}

func NewSearchPage(app *App, query string) *SearchPage {
	return &SearchPage{app: app, Query: query}
}

func (p *SearchPage) Load(ctx context.Context) error {
	total, rows, err := p.app.API.SearchProducts(ctx, p.Query)
	if err != nil {
		p.app.Log.Error("product_search_failed", "status", client.StatusOf(err), "error", err)
		return err
	}
	p.Total, p.Rows = total, rows
	return nil
}

func (p *SearchPage) Render(w io.Writer) {
	fmt.Fprintf(w, "%d resultado(s) para %q\n", p.Total, p.Query)
	list := &ProductListPage{app: p.app, Rows: p.Rows}
	list.Render(w)
}
