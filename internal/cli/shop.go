package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"motoparts/internal/models"
)

func newProductsCmd(e *env) *cobra.Command {
	var (
		params           models.ProductSearchParams
		minPrice, maxPrc float64
		sortBy           string
	)
	cmd := &cobra.Command{
		Use:   "products",
		Short: "List and filter the catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := e.front.FetchProducts(cmd.Context()); err != nil {
				return err
			}
			if cmd.Flags().Changed("min-price") {
				params.MinPrice = models.Price(minPrice)
			}
			if cmd.Flags().Changed("max-price") {
				params.MaxPrice = models.Price(maxPrc)
			}
			params.SortBy = models.ParseSortKey(sortBy)
			return printProducts(cmd.OutOrStdout(), e.front.FilteredProducts(params))
		},
	}
	cmd.Flags().StringVarP(&params.Search, "search", "s", "", "Search name, brand, category, description and SKU")
	cmd.Flags().StringVar(&params.Category, "category", "", "Category id")
	cmd.Flags().StringVar(&params.Brand, "brand", "", "Exact brand")
	cmd.Flags().Float64Var(&minPrice, "min-price", 0, "Minimum price (inclusive)")
	cmd.Flags().Float64Var(&maxPrc, "max-price", 0, "Maximum price (inclusive)")
	cmd.Flags().StringVar(&sortBy, "sort", "", "price_asc, price_desc or newest")
	return cmd
}

func newProductCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "product <id>",
		Short: "Show one product with its reviews",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := e.front.Product(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			printProduct(w, *p)
			reviews, err := e.front.FetchReviews(cmd.Context(), p.ID)
			if err != nil {
				return err
			}
			fmt.Fprintln(w)
			printReviews(w, reviews)
			return nil
		},
	}
}

func newCategoriesCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "categories [categoryId]",
		Short: "List categories, or the subcategories of one",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			if len(args) == 1 {
				subs, err := e.front.FetchSubCategories(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				for _, sub := range subs {
					fmt.Fprintf(w, "%s\t%s\n", sub.ID, sub.Name)
				}
				return nil
			}
			cats, err := e.front.FetchCategories(cmd.Context())
			if err != nil {
				return err
			}
			for _, c := range cats {
				fmt.Fprintf(w, "%s\t%s\n", c.ID, c.Name)
			}
			return nil
		},
	}
}

func newCartCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cart",
		Short: "Show and change the cart",
		RunE: func(cmd *cobra.Command, args []string) error {
			cart, err := e.front.FetchCart(cmd.Context())
			if err != nil {
				return err
			}
			return printCart(cmd.OutOrStdout(), cart)
		},
	}

	var qty int
	add := &cobra.Command{
		Use:   "add <productId>",
		Short: "Add a product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cart, err := e.front.AddToCart(cmd.Context(), args[0], qty)
			if err != nil {
				return err
			}
			return printCart(cmd.OutOrStdout(), cart)
		},
	}
	add.Flags().IntVarP(&qty, "quantity", "q", 1, "Units to add")

	set := &cobra.Command{
		Use:   "set <productId> <quantity>",
		Short: "Set a line's quantity; 0 removes it",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid quantity %q: %w", args[1], err)
			}
			if _, err := e.front.FetchCart(cmd.Context()); err != nil {
				return err
			}
			cart, err := e.front.SetQuantity(cmd.Context(), args[0], n)
			if err != nil {
				return err
			}
			return printCart(cmd.OutOrStdout(), cart)
		},
	}

	inc := &cobra.Command{
		Use:   "inc <productId>",
		Short: "Add one unit",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := e.front.FetchCart(cmd.Context()); err != nil {
				return err
			}
			cart, err := e.front.Increment(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printCart(cmd.OutOrStdout(), cart)
		},
	}

	dec := &cobra.Command{
		Use:   "dec <productId>",
		Short: "Remove one unit; the line goes away at zero",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := e.front.FetchCart(cmd.Context()); err != nil {
				return err
			}
			cart, err := e.front.Decrement(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printCart(cmd.OutOrStdout(), cart)
		},
	}

	remove := &cobra.Command{
		Use:   "remove <productId>",
		Short: "Remove a line",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cart, err := e.front.RemoveFromCart(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printCart(cmd.OutOrStdout(), cart)
		},
	}

	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Empty the cart",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := e.front.ClearCart(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Cart cleared.")
			return nil
		},
	}

	cmd.AddCommand(add, set, inc, dec, remove, clearCmd)
	return cmd
}

func newCheckoutCmd(e *env) *cobra.Command {
	var in models.CheckoutInput
	cmd := &cobra.Command{
		Use:   "checkout",
		Short: "Place an order for the cart and pay with M-Pesa",
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := e.front.RequireAuth(); err != nil {
				return err
			}
			if _, err := e.front.FetchCart(cmd.Context()); err != nil {
				return err
			}
			res, err := e.front.Checkout(cmd.Context(), in)
			w := cmd.OutOrStdout()
			if res != nil && res.Order != nil {
				fmt.Fprintf(w, "Order %s placed, total %s.\n", res.Order.ID, price(res.Order.TotalAmount))
			}
			if err != nil {
				if res != nil {
					fmt.Fprintf(w, "Payment was not started. Retry with: motoparts pay %s --phone %s\n", res.Order.ID, in.Phone)
				}
				return err
			}
			fmt.Fprintln(w, res.CustomerMessage)
			return nil
		},
	}
	cmd.Flags().StringVar(&in.ShippingAddress, "address", "", "Shipping address")
	cmd.Flags().StringVar(&in.Phone, "phone", "", "M-Pesa phone number")
	cmd.Flags().StringVar(&in.PaymentMethod, "payment", "mpesa", "Payment method")
	return cmd
}

func newPayCmd(e *env) *cobra.Command {
	var phone string
	cmd := &cobra.Command{
		Use:   "pay <orderId>",
		Short: "Retry the M-Pesa payment of an order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := e.front.RequireAuth(); err != nil {
				return err
			}
			msg, err := e.front.PayOrder(cmd.Context(), args[0], phone)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), msg)
			return nil
		},
	}
	cmd.Flags().StringVar(&phone, "phone", "", "M-Pesa phone number")
	return cmd
}

func newOrdersCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "orders",
		Short: "List your orders",
		RunE: func(cmd *cobra.Command, args []string) error {
			orders, err := e.front.MyOrders(cmd.Context())
			if err != nil {
				return err
			}
			return printOrders(cmd.OutOrStdout(), orders)
		},
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "show <orderId>",
			Short: "Show one order",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				order, err := e.front.Order(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				return printOrder(cmd.OutOrStdout(), *order)
			},
		},
		&cobra.Command{
			Use:   "cancel <orderId>",
			Short: "Cancel a pending order",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				if _, err := e.front.CancelOrder(cmd.Context(), args[0]); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), e.front.Store().State().SuccessMessage)
				return nil
			},
		},
	)
	return cmd
}

func newWishlistCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "wishlist",
		Short: "Show your wishlist",
		RunE: func(cmd *cobra.Command, args []string) error {
			products, err := e.front.FetchWishlist(cmd.Context())
			if err != nil {
				return err
			}
			return printProducts(cmd.OutOrStdout(), products)
		},
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "add <productId>",
			Short: "Save a product",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				products, err := e.front.AddToWishlist(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				return printProducts(cmd.OutOrStdout(), products)
			},
		},
		&cobra.Command{
			Use:   "remove <productId>",
			Short: "Drop a saved product",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				products, err := e.front.RemoveFromWishlist(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				return printProducts(cmd.OutOrStdout(), products)
			},
		},
		&cobra.Command{
			Use:   "clear",
			Short: "Empty the wishlist",
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := e.front.ClearWishlist(cmd.Context()); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Wishlist cleared.")
				return nil
			},
		},
	)
	return cmd
}

func newReviewsCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reviews <productId>",
		Short: "List the reviews of a product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reviews, err := e.front.FetchReviews(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			printReviews(cmd.OutOrStdout(), reviews)
			return nil
		},
	}

	var (
		rating  int
		comment string
	)
	add := &cobra.Command{
		Use:   "add <productId>",
		Short: "Review a product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := e.front.AddReview(cmd.Context(), args[0], rating, comment)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Review %s added.\n", r.ID)
			return nil
		},
	}
	update := &cobra.Command{
		Use:   "update <reviewId>",
		Short: "Edit one of your reviews",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := e.front.UpdateReview(cmd.Context(), args[0], rating, comment)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Review %s updated.\n", r.ID)
			return nil
		},
	}
	for _, c := range []*cobra.Command{add, update} {
		c.Flags().IntVar(&rating, "rating", 0, "Rating from 1 to 5")
		c.Flags().StringVar(&comment, "comment", "", "Comment")
	}
	del := &cobra.Command{
		Use:   "delete <reviewId>",
		Short: "Delete one of your reviews",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := e.front.DeleteReview(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Review deleted.")
			return nil
		},
	}
	cmd.AddCommand(add, update, del)
	return cmd
}
