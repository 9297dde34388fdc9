package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Skotchmaster/inventory/internal/console"
	"github.com/Skotchmaster/inventory/pkg/client"
)

func newRootCmd(ui *console.App) *cobra.Command {
	root := &cobra.Command{
		Use:   "inventoryctl",
		Short: "Manage products and suppliers of an inventory server",
		Long: `Manage products and suppliers of an inventory server.

The server is read from INVENTORY_URL (default http://localhost:8080) and the
session is kept in the file named by INVENTORY_STATE.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(ui.Out)

	root.AddCommand(
		newProductsCmd(ui),
		newSuppliersCmd(ui),
		newSearchCmd(ui),
		newLoginCmd(ui),
		newRegisterCmd(ui),
		newLogoutCmd(ui),
		newWhoamiCmd(ui),
		newUsersCmd(ui),
	)
	return root
}

func newProductsCmd(ui *console.App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "products",
		Aliases: []string{"produtos"},
		Short:   "List and edit products",
	}

	var (
		filter     client.ProductFilter
		supplierID uint
	)
	list := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List products",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			filter.SupplierID = supplierID
			return ui.Navigate(cmd.Context(), console.NewProductListPage(ui, filter))
		},
	}
	list.Flags().StringVar(&filter.Name, "nome", "", "name contains")
	list.Flags().UintVar(&supplierID, "fornecedor", 0, "supplier id")
	list.Flags().StringVar(&filter.PriceOrder, "ordem", "", "price order: asc or desc")

	show := &cobra.Command{
		Use:   "show ID",
		Short: "Show one product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := console.ParseID(args[0])
			if err != nil {
				return err
			}
			return ui.Navigate(cmd.Context(), console.NewProductPage(ui, id))
		},
	}

	create := &cobra.Command{
		Use:   "create",
		Short: "Create a product interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return submitProductForm(cmd, ui, 0)
		},
	}

	edit := &cobra.Command{
		Use:   "edit ID",
		Short: "Edit a product interactively",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := console.ParseID(args[0])
			if err != nil {
				return err
			}
			return submitProductForm(cmd, ui, id)
		},
	}

	del := &cobra.Command{
		Use:     "delete ID",
		Aliases: []string{"rm"},
		Short:   "Delete a product after confirmation",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := console.ParseID(args[0])
			if err != nil {
				return err
			}
			page := console.NewProductListPage(ui, client.ProductFilter{})
			if err := page.Load(cmd.Context()); err != nil {
				return err
			}
			deleted, err := page.Delete(cmd.Context(), id)
			if err != nil || !deleted {
				return err
			}
			page.Render(ui.Out)
			return nil
		},
	}

	cmd.AddCommand(list, show, create, edit, del)
	return cmd
}

func submitProductForm(cmd *cobra.Command, ui *console.App, id uint) error {
	if err := ui.Require(client.RoleAdmin); err != nil {
		return err
	}
	form := console.NewProductFormPage(ui, id)
	if err := ui.Navigate(cmd.Context(), form); err != nil {
		return err
	}
	if err := form.Fill(); err != nil {
		return err
	}
	_, err := form.Submit(cmd.Context())
	return err
}

func newSuppliersCmd(ui *console.App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "suppliers",
		Aliases: []string{"fornecedores"},
		Short:   "List and edit suppliers",
	}

	var filter string
	list := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List suppliers",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			page := console.NewSupplierListPage(ui)
			page.Filter = filter
			return ui.Navigate(cmd.Context(), page)
		},
	}
	list.Flags().StringVar(&filter, "filtro", "", "name or contact contains")

	show := &cobra.Command{
		Use:   "show ID",
		Short: "Show one supplier",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := console.ParseID(args[0])
			if err != nil {
				return err
			}
			return ui.Navigate(cmd.Context(), console.NewSupplierPage(ui, id))
		},
	}

	create := &cobra.Command{
		Use:   "create",
		Short: "Create a supplier interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return submitSupplierForm(cmd, ui, 0)
		},
	}

	edit := &cobra.Command{
		Use:   "edit ID",
		Short: "Edit a supplier interactively",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := console.ParseID(args[0])
			if err != nil {
				return err
			}
			return submitSupplierForm(cmd, ui, id)
		},
	}

	del := &cobra.Command{
		Use:     "delete ID",
		Aliases: []string{"rm"},
		Short:   "Delete a supplier after confirmation",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := console.ParseID(args[0])
			if err != nil {
				return err
			}
			page := console.NewSupplierListPage(ui)
			if err := page.Load(cmd.Context()); err != nil {
				return err
			}
			deleted, err := page.Delete(cmd.Context(), id)
			if err != nil || !deleted {
				return err
			}
			page.Render(ui.Out)
			return nil
		},
	}

	cmd.AddCommand(list, show, create, edit, del)
	return cmd
}

func submitSupplierForm(cmd *cobra.Command, ui *console.App, id uint) error {
	if err := ui.Require(client.RoleAdmin); err != nil {
		return err
	}
	form := console.NewSupplierFormPage(ui, id)
	if err := ui.Navigate(cmd.Context(), form); err != nil {
		return err
	}
	if err := form.Fill(); err != nil {
		return err
	}
	_, err := form.Submit(cmd.Context())
	return err
}

func newSearchCmd(ui *console.App) *cobra.Command {
	return &cobra.Command{
		Use:   "search QUERY...",
		Short: "Full-text product search",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ui.Navigate(cmd.Context(), console.NewSearchPage(ui, strings.Join(args, " ")))
		},
	}
}

func newLoginCmd(ui *console.App) *cobra.Command {
	var email, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and keep the session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			page := console.NewLoginPage(ui)
			page.Render(ui.Out)
			if err := prompt(ui, "Email", &email); err != nil {
				return err
			}
			if err := prompt(ui, "Senha", &password); err != nil {
				return err
			}
			_, err := page.Submit(cmd.Context(), email, password)
			return err
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "senha", "", "account password")
	return cmd
}

func newRegisterCmd(ui *console.App) *cobra.Command {
	var name, email, password, role string
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			page := console.NewRegisterPage(ui)
			page.Render(ui.Out)
			for _, f := range []struct {
				label string
				dst   *string
			}{{"Nome", &name}, {"Email", &email}, {"Senha", &password}} {
				if err := prompt(ui, f.label, f.dst); err != nil {
					return err
				}
			}
			_, err := page.Submit(cmd.Context(), name, email, password, role)
			return err
		},
	}
	cmd.Flags().StringVar(&name, "nome", "", "display name")
	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "senha", "", "account password")
	cmd.Flags().StringVar(&role, "role", "", "admin or user")
	return cmd
}

func newLogoutCmd(ui *console.App) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := ui.Logout(cmd.Context())
			return err
		},
	}
}

func newWhoamiCmd(ui *console.App) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			u := ui.Auth.User()
			if u == nil {
				return console.ErrLoginRequired
			}
			fmt.Fprintf(ui.Out, "%s (id %d, role %s)\n", u.Name, u.ID, u.Role)
			return nil
		},
	}
}

func newUsersCmd(ui *console.App) *cobra.Command {
	return &cobra.Command{
		Use:   "users",
		Short: "List accounts (admin)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return ui.Navigate(cmd.Context(), console.NewUsersPage(ui))
		},
	}
}

// prompt asks for a value the flags left empty.
func prompt(ui *console.App, label string, dst *string) error {
	if *dst != "" {
		return nil
	}
	v, err := ui.Prompt(label, "")
	if err != nil {
		return err
	}
	*dst = v
	return nil
}
