package console

import (
	"context"
	"fmt"
	"io"

	"github.com/Skotchmaster/inventory/pkg/client"
)

type ProductListPage struct {
	app    *App
	Filter client.ProductFilter
	Rows   []client.Product
}

func NewProductListPage(app *App, filter client.ProductFilter) *ProductListPage {
	return &ProductListPage{app: app, Filter: filter}
}

func (p *ProductListPage) Load(ctx context.Context) error {
	rows, err := p.app.API.ListProducts(ctx, p.Filter)
	if err != nil {
		p.app.Log.Error("product_list_failed", "error", err)
		return err
	}
	p.Rows = rows
	return nil
}

// Render shows the action column only to admins.
func (p *ProductListPage) Render(w io.Writer) {
	if len(p.Rows) == 0 {
		fmt.Fprintln(w, "Nenhum produto encontrado.")
		return
	}

	admin := p.app.Auth.IsAdmin()
	header := []string{"ID", "Nome", "Descrição", "Preço", "Quantidade", "Fornecedor", "Imagem"}
	if admin {
		header = append(header, "Ações")
	}

	tw := newTable(w, header...)
	for _, r := range p.Rows {
		cols := []string{id(r.ID), r.Name, text(r.Description), money(r.Price), count(r.Quantity), text(r.SupplierName), text(r.Image)}
		if admin {
			cols = append(cols, fmt.Sprintf("edit %d | delete %d", r.ID, r.ID))
		}
		row(tw, cols...)
	}
	tw.Render()
}

// Delete asks first and, once the server agrees, drops the row from Rows.
func (p *ProductListPage) Delete(ctx context.Context, productID uint) (bool, error) {
	if err := p.app.Require(client.RoleAdmin); err != nil {
		return false, err
	}

	ok, err := p.app.Confirm("Tem certeza que deseja excluir este produto?")
	if err != nil || !ok {
		return false, err
	}

	if err := p.app.API.DeleteProduct(ctx, productID); err != nil {
		p.app.Log.Error("product_delete_failed", "product_id", productID, "error", err)
		return false, err
	}

	kept := p.Rows[:0]
	for _, r := range p.Rows {
		if r.ID != productID {
			kept = append(kept, r)
		}
	}
	p.Rows = kept
	return true, nil
}

// ProductFormPage creates a product when ID is zero and edits it otherwise.
type ProductFormPage struct {
	app       *App
	ID        uint
	Form      client.ProductForm
	Suppliers []client.Supplier
}

func NewProductFormPage(app *App, productID uint) *ProductFormPage {
	return &ProductFormPage{app: app, ID: productID}
}

func (p *ProductFormPage) Load(ctx context.Context) error {
	suppliers, err := p.app.API.ListSuppliers(ctx)
	if err != nil {
		p.app.Log.Error("supplier_list_failed", "error", err)
		return err
	}
	p.Suppliers = suppliers

	if p.ID == 0 {
		return nil
	}
	cur, err := p.app.API.GetProduct(ctx, p.ID)
	if err != nil {
		p.app.Log.Error("product_get_failed", "product_id", p.ID, "error", err)
		return err
	}
	p.Form = client.ProductForm{
		Name:        cur.Name,
		Description: cur.Description,
		Price:       cur.Price,
		Quantity:    cur.Quantity,
		SupplierID:  cur.SupplierID,
	}
	return nil
}

func (p *ProductFormPage) Render(w io.Writer) {
	if p.ID == 0 {
		fmt.Fprintln(w, "Novo produto")
	} else {
		fmt.Fprintf(w, "Produto %d\n", p.ID)
	}
	if len(p.Suppliers) > 0 {
		tw := newTable(w, "Fornecedor", "Nome")
		for _, s := range p.Suppliers {
			row(tw, id(s.ID), s.Name)
		}
		tw.Render()
	}
}

// Fill prompts for every field, keeping current values on empty answers.
func (p *ProductFormPage) Fill() error {
	var (
		f   = p.Form
		err error
		raw string
	)

	if f.Name, err = p.app.Prompt("Nome", f.Name); err != nil {
		return err
	}
	if raw, err = p.app.Prompt("Descrição", plain(f.Description)); err != nil {
		return err
	}
	f.Description = optional(raw)

	if raw, err = p.app.Prompt("Preço", plainMoney(f.Price)); err != nil {
		return err
	}
	if f.Price, err = parseFloat(raw); err != nil {
		return err
	}

	if raw, err = p.app.Prompt("Quantidade", plainCount(f.Quantity)); err != nil {
		return err
	}
	if f.Quantity, err = parseInt(raw); err != nil {
		return err
	}

	cur := ""
	if f.SupplierID != 0 {
		cur = id(f.SupplierID)
	}
	if raw, err = p.app.Prompt("Fornecedor", cur); err != nil {
		return err
	}
	if raw != "" {
		if f.SupplierID, err = ParseID(raw); err != nil {
			return err
		}
	}

	if f.ImagePath, err = p.app.Prompt("Imagem (arquivo)", f.ImagePath); err != nil {
		return err
	}

	p.Form = f
	return nil
}

// Submit posts or puts the form and navigates to the product list.
// Failures go to the error log only.
func (p *ProductFormPage) Submit(ctx context.Context) (*ProductListPage, error) {
	var err error
	if p.ID == 0 {
		_, err = p.app.API.CreateProduct(ctx, p.Form)
	} else {
		err = p.app.API.UpdateProduct(ctx, p.ID, p.Form)
	}
	if err != nil {
		p.app.Log.Error("product_save_failed", "product_id", p.ID, "error", err)
		return nil, err
	}

	list := NewProductListPage(p.app, client.ProductFilter{})
	if err := p.app.Navigate(ctx, list); err != nil {
		return nil, err
	}
	return list, nil
}

func plainMoney(v *float64) string {
	if v == nil {
		return ""
	}
	return money(v)
}

func plainCount(v *int) string {
	if v == nil {
		return ""
	}
	return count(v)
}

type ProductPage struct {
	app     *App
	ID      uint
	Product *client.Product
}

func NewProductPage(app *App, productID uint) *ProductPage {
	return &ProductPage{app: app, ID: productID}
}

func (p *ProductPage) Load(ctx context.Context) error {
	cur, err := p.app.API.GetProduct(ctx, p.ID)
	if err != nil {
		p.app.Log.Error("product_get_failed", "product_id", p.ID, "status", client.StatusOf(err), "error", err)
		return err
	}
	p.Product = cur
	return nil
}

func (p *ProductPage) Render(w io.Writer) {
	if p.Product == nil {
		return
	}
	tw := newTable(w, "Campo", "Valor")
	row(tw, "ID", id(p.Product.ID))
	row(tw, "Nome", p.Product.Name)
	row(tw, "Descrição", text(p.Product.Description))
	row(tw, "Preço", money(p.Product.Price))
	row(tw, "Quantidade", count(p.Product.Quantity))
	row(tw, "Fornecedor", fmt.Sprintf("%s (%d)", text(p.Product.SupplierName), p.Product.SupplierID))
	row(tw, "Imagem", text(p.Product.Image))
	tw.Render()
}
