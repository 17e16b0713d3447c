package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"motoparts/internal/models"
)

func newAdminCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Admin console",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := e.setup(cmd); err != nil {
				return err
			}
			_, err := e.front.RequireAdmin()
			return err
		},
	}
	cmd.AddCommand(
		newAdminOrdersCmd(e),
		newAdminUsersCmd(e),
		newAdminProductCmd(e),
		newAdminCategoryCmd(e),
		&cobra.Command{
			Use:   "report",
			Short: "Sales and stock report",
			RunE: func(cmd *cobra.Command, args []string) error {
				r, err := e.front.Report(cmd.Context())
				if err != nil {
					return err
				}
				return printReport(cmd.OutOrStdout(), *r)
			},
		},
	)
	return cmd
}

func newAdminOrdersCmd(e *env) *cobra.Command {
	var search, status string
	cmd := &cobra.Command{
		Use:   "orders",
		Short: "List all orders",
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := e.front.FetchAllOrders(cmd.Context()); err != nil {
				return err
			}
			return printOrders(cmd.OutOrStdout(), e.front.AdminOrderView(search, models.OrderStatus(status)))
		},
	}
	cmd.Flags().StringVarP(&search, "search", "s", "", "Order id, cart id or customer name")
	cmd.Flags().StringVar(&status, "status", "", "Only orders in this status")

	cmd.AddCommand(&cobra.Command{
		Use:   "status <orderId> <status>",
		Short: "Move an order to another status",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := e.front.UpdateOrderStatus(cmd.Context(), args[0], models.OrderStatus(args[1])); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), e.front.Store().State().SuccessMessage)
			return nil
		},
	})
	return cmd
}

func newAdminUsersCmd(e *env) *cobra.Command {
	var search string
	cmd := &cobra.Command{
		Use:   "users",
		Short: "List admin accounts",
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := e.front.FetchAdmins(cmd.Context()); err != nil {
				return err
			}
			return printUsers(cmd.OutOrStdout(), e.front.UserView(search))
		},
	}
	cmd.Flags().StringVarP(&search, "search", "s", "", "Name or email")

	show := &cobra.Command{
		Use:   "show <userId>",
		Short: "Show one user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := e.front.FetchUser(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printUsers(cmd.OutOrStdout(), []models.UserRecord{*u})
		},
	}

	var in models.AdminInput
	create := &cobra.Command{
		Use:   "create",
		Short: "Create an admin account",
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := e.front.CreateAdmin(cmd.Context(), in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Admin %s created.\n", u.Email)
			return nil
		},
	}
	create.Flags().StringVar(&in.Name, "name", "", "Full name")
	create.Flags().StringVar(&in.Email, "email", "", "Email address")
	create.Flags().StringVar(&in.Password, "password", "", "Password")

	var name, email, role string
	update := &cobra.Command{
		Use:   "update <userId>",
		Short: "Change a user's name, email or role",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var upd models.UserUpdate
			if cmd.Flags().Changed("name") {
				upd.Name = &name
			}
			if cmd.Flags().Changed("email") {
				upd.Email = &email
			}
			if cmd.Flags().Changed("role") {
				r := models.Role(role)
				upd.Role = &r
			}
			u, err := e.front.UpdateUser(cmd.Context(), args[0], upd)
			if err != nil {
				return err
			}
			return printUsers(cmd.OutOrStdout(), []models.UserRecord{*u})
		},
	}
	update.Flags().StringVar(&name, "name", "", "New name")
	update.Flags().StringVar(&email, "email", "", "New email")
	update.Flags().StringVar(&role, "role", "", "user, admin or superadmin")

	del := &cobra.Command{
		Use:   "delete <userId>",
		Short: "Delete an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := e.front.DeleteUser(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "User deleted.")
			return nil
		},
	}

	cmd.AddCommand(show, create, update, del)
	return cmd
}

func newAdminProductCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "product",
		Short: "Manage the catalog",
	}

	var (
		in       models.ProductInput
		oldPrice float64
	)
	input := func(cmd *cobra.Command) models.ProductInput {
		out := in
		if cmd.Flags().Changed("old-price") {
			out.OldPrice = models.Price(oldPrice)
		}
		return out
	}
	create := &cobra.Command{
		Use:   "create",
		Short: "Add a product",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := e.front.CreateProduct(cmd.Context(), input(cmd))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Product %s created.\n", p.ID)
			return nil
		},
	}
	update := &cobra.Command{
		Use:   "update <productId>",
		Short: "Replace a product's details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := e.front.UpdateProduct(cmd.Context(), args[0], input(cmd))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Product %s updated.\n", p.ID)
			return nil
		},
	}
	for _, c := range []*cobra.Command{create, update} {
		f := c.Flags()
		f.StringVar(&in.Name, "name", "", "Product name")
		f.StringVar(&in.Description, "description", "", "Description")
		f.Float64Var(&in.Price, "price", 0, "Price")
		f.Float64Var(&oldPrice, "old-price", 0, "Previous price, shown as a discount")
		f.IntVar(&in.Stock, "stock", 0, "Units in stock")
		f.StringSliceVar(&in.Images, "image", nil, "Image URL (repeatable)")
		f.StringVar(&in.Category, "category", "", "Category id")
		f.StringVar(&in.SubCategory, "subcategory", "", "Subcategory id")
		f.StringVar(&in.Brand, "brand", "", "Brand")
		f.StringVar(&in.Condition, "condition", "new", "new, used or refurbished")
		f.StringVar(&in.SKU, "sku", "", "Stock keeping unit")
		f.BoolVar(&in.IsActive, "active", true, "List the product in the store")
	}

	del := &cobra.Command{
		Use:   "delete <productId>",
		Short: "Delete a product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := e.front.DeleteProduct(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Product deleted.")
			return nil
		},
	}
	cmd.AddCommand(create, update, del)
	return cmd
}

func newAdminCategoryCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "category",
		Short: "Manage categories",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "add <name>",
			Short: "Create a category",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				c, err := e.front.AddCategory(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Category %s created.\n", c.ID)
				return nil
			},
		},
		&cobra.Command{
			Use:   "add-sub <categoryId> <name>",
			Short: "Create a subcategory",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				sub, err := e.front.AddSubCategory(cmd.Context(), args[1], args[0])
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Subcategory %s created.\n", sub.ID)
				return nil
			},
		},
	)
	return cmd
}
