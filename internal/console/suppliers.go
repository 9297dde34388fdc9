package console

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/Skotchmaster/inventory/pkg/client"
)

// SupplierListPage lists suppliers. Filter narrows the loaded rows by name
// or contact without another request.
type SupplierListPage struct {
	app    *App
	Filter string
	Rows   []client.Supplier
}

func NewSupplierListPage(app *App) *SupplierListPage {
	return &SupplierListPage{app: app}
}

func (p *SupplierListPage) Load(ctx context.Context) error {
	rows, err := p.app.API.ListSuppliers(ctx)
	if err != nil {
		p.app.Log.Error("supplier_list_failed", "error", err)
		return err
	}
	p.Rows = rows
	return nil
}

func (p *SupplierListPage) Visible() []client.Supplier {
	if p.Filter == "" {
		return p.Rows
	}
	needle := strings.ToLower(p.Filter)
	out := make([]client.Supplier, 0, len(p.Rows))
	for _, s := range p.Rows {
		if strings.Contains(strings.ToLower(s.Name), needle) ||
			strings.Contains(strings.ToLower(plain(s.Contact)), needle) {
			out = append(out, s)
		}
	}
	return out
}

func (p *SupplierListPage) Render(w io.Writer) {
	rows := p.Visible()
	if len(rows) == 0 {
		fmt.Fprintln(w, "Nenhum fornecedor encontrado.")
		return
	}

	admin := p.app.Auth.IsAdmin()
	header := []string{"ID", "Nome", "CNPJ", "Contato", "Endereço"}
	if admin {
		header = append(header, "Ações")
	}

	tw := newTable(w, header...)
	for _, s := range rows {
		cols := []string{id(s.ID), s.Name, s.CNPJ, text(s.Contact), text(s.Address)}
		if admin {
			cols = append(cols, fmt.Sprintf("edit %d | delete %d", s.ID, s.ID))
		}
		row(tw, cols...)
	}
	tw.Render()
}

func (p *SupplierListPage) Delete(ctx context.Context, supplierID uint) (bool, error) {
	if err := p.app.Require(client.RoleAdmin); err != nil {
		return false, err
	}

	ok, err := p.app.Confirm("Tem certeza que deseja excluir este fornecedor?")
	if err != nil || !ok {
		return false, err
	}

	if err := p.app.API.DeleteSupplier(ctx, supplierID); err != nil {
		p.app.Log.Error("supplier_delete_failed", "supplier_id", supplierID, "error", err)
		fmt.Fprintln(p.app.Out, "Erro ao tentar excluir o fornecedor. Verifique se ele está associado a produtos.")
		return false, err
	}

	kept := p.Rows[:0]
	for _, s := range p.Rows {
		if s.ID != supplierID {
			kept = append(kept, s)
		}
	}
	p.Rows = kept
	return true, nil
}

type SupplierFormPage struct {
	app  *App
	ID   uint
	Form client.Supplier
}

func NewSupplierFormPage(app *App, supplierID uint) *SupplierFormPage {
	return &SupplierFormPage{app: app, ID: supplierID}
}

func (p *SupplierFormPage) Load(ctx context.Context) error {
	if p.ID == 0 {
		return nil
	}
	cur, err := p.app.API.GetSupplier(ctx, p.ID)
	if err != nil {
		p.app.Log.Error("supplier_get_failed", "supplier_id", p.ID, "error", err)
		return err
	}
	p.Form = *cur
	p.Form.ID = 0
	return nil
}

func (p *SupplierFormPage) Render(w io.Writer) {
	if p.ID == 0 {
		fmt.Fprintln(w, "Novo fornecedor")
		return
	}
	fmt.Fprintf(w, "Fornecedor %d: %s\n", p.ID, p.Form.Name)
}

func (p *SupplierFormPage) Fill() error {
	var (
		f   = p.Form
		err error
		raw string
	)

	if f.Name, err = p.app.Prompt("Nome", f.Name); err != nil {
		return err
	}
	if f.CNPJ, err = p.app.Prompt("CNPJ", f.CNPJ); err != nil {
		return err
	}
	if raw, err = p.app.Prompt("Contato", plain(f.Contact)); err != nil {
		return err
	}
	f.Contact = optional(raw)
	if raw, err = p.app.Prompt("Endereço", plain(f.Address)); err != nil {
		return err
	}
	f.Address = optional(raw)

	p.Form = f
	return nil
}

func (p *SupplierFormPage) Submit(ctx context.Context) (*SupplierListPage, error) {
	var err error
	if p.ID == 0 {
		_, err = p.app.API.CreateSupplier(ctx, p.Form)
	} else {
		err = p.app.API.UpdateSupplier(ctx, p.ID, p.Form)
	}
	if err != nil {
		p.app.Log.Error("supplier_save_failed", "supplier_id", p.ID, "error", err)
		return nil, err
	}

	list := NewSupplierListPage(p.app)
	if err := p.app.Navigate(ctx, list); err != nil {
		return nil, err
	}
	return list, nil
}

type SupplierPage struct {
	app      *App
	ID       uint
	Supplier *client.Supplier
}

func NewSupplierPage(app *App, supplierID uint) *SupplierPage {
	return &SupplierPage{app: app, ID: supplierID}
}

func (p *SupplierPage) Load(ctx context.Context) error {
	cur, err := p.app.API.GetSupplier(ctx, p.ID)
	if err != nil {
		p.app.Log.Error("supplier_get_failed", "supplier_id", p.ID, "status", client.StatusOf(err), "error", err)
		return err
	}
	p.Supplier = cur
	return nil
}

func (p *SupplierPage) Render(w io.Writer) {
	if p.Supplier == nil {
		return
	}
	tw := newTable(w, "Campo", "Valor")
	row(tw, "ID", id(p.Supplier.ID))
	row(tw, "Nome", p.Supplier.Name)
	row(tw, "CNPJ", p.Supplier.CNPJ)
	row(tw, "Contato", text(p.Supplier.Contact))
	row(tw, "Endereço", text(p.Supplier.Address))
	tw.Render()
}
