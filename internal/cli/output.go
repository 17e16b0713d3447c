package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/shopspring/decimal"

	"motoparts/internal/models"
	"motoparts/internal/storefront"
)

func money(v decimal.Decimal) string {
	return "KES " + v.StringFixed(2)
}

func price(v float64) string {
	return money(decimal.NewFromFloat(v))
}

func table(w io.Writer, header ...string) *tabwriter.Writer {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(header, "\t"))
	return tw
}

func printProducts(w io.Writer, products []models.Product) error {
	if len(products) == 0 {
		fmt.Fprintln(w, "No products found.")
		return nil
	}
	tw := table(w, "ID", "NAME", "BRAND", "CATEGORY", "PRICE", "STOCK")
	for _, p := range products {
		stock := fmt.Sprint(p.Stock)
		if !p.InStock() {
			stock = "out of stock"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n", p.ID, p.Name, p.Brand, p.Category.Name(), price(p.Price), stock)
	}
	return tw.Flush()
}

func printProduct(w io.Writer, p models.Product) {
	fmt.Fprintf(w, "%s (%s)\n", p.Name, p.ID)
	if p.Brand != "" {
		fmt.Fprintf(w, "Brand:     %s\n", p.Brand)
	}
	fmt.Fprintf(w, "Price:     %s", price(p.Price))
	if p.OldPrice != nil {
		fmt.Fprintf(w, " (was %s)", price(*p.OldPrice))
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Stock:     %d\n", p.Stock)
	if !p.Category.IsZero() {
		fmt.Fprintf(w, "Category:  %s\n", p.Category.Name())
	}
	if p.Condition != "" {
		fmt.Fprintf(w, "Condition: %s\n", p.Condition)
	}
	if p.Rating != nil {
		reviews := 0
		if p.NumReviews != nil {
			reviews = *p.NumReviews
		}
		fmt.Fprintf(w, "Rating:    %.1f (%d reviews)\n", *p.Rating, reviews)
	}
	if p.Description != "" {
		fmt.Fprintf(w, "\n%s\n", p.Description)
	}
}

func printCart(w io.Writer, cart *models.Cart) error {
	if cart.IsEmpty() {
		fmt.Fprintln(w, "Your cart is empty.")
		return nil
	}
	tw := table(w, "PRODUCT", "NAME", "QTY", "PRICE", "SUBTOTAL")
	for _, item := range cart.Items {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%s\n", item.Product.ID, item.Product.Name, item.Quantity, price(item.Price), money(item.Subtotal()))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(w, "Items: %d  Total: %s\n", cart.Count(), money(cart.Total()))
	return nil
}

func printOrders(w io.Writer, orders []models.Order) error {
	if len(orders) == 0 {
		fmt.Fprintln(w, "No orders found.")
		return nil
	}
	tw := table(w, "ID", "CUSTOMER", "STATUS", "TOTAL", "CREATED")
	for _, o := range orders {
		customer := ""
		if o.User != nil {
			customer = o.User.Name
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", o.ID, customer, o.Status, price(o.TotalAmount), o.CreatedAt.Format("2006-01-02"))
	}
	return tw.Flush()
}

func printOrder(w io.Writer, o models.Order) error {
	fmt.Fprintf(w, "Order %s [%s]\n", o.ID, o.Status)
	fmt.Fprintf(w, "Ship to: %s\nPayment: %s\n", o.ShippingAddress, o.PaymentMethod)
	tw := table(w, "PRODUCT", "QTY", "PRICE")
	for _, item := range o.Items {
		fmt.Fprintf(tw, "%s\t%d\t%s\n", item.Product.Name, item.Quantity, price(item.Price))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(w, "Total: %s\n", price(o.TotalAmount))
	return nil
}

func printUsers(w io.Writer, users []models.UserRecord) error {
	if len(users) == 0 {
		fmt.Fprintln(w, "No users found.")
		return nil
	}
	tw := table(w, "ID", "NAME", "EMAIL", "ROLE", "PROVIDER")
	for _, u := range users {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", u.ID, u.Name, u.Email, u.Role, u.Provider)
	}
	return tw.Flush()
}

func printReviews(w io.Writer, reviews []models.Review) {
	if len(reviews) == 0 {
		fmt.Fprintln(w, "No reviews yet.")
		return
	}
	for _, r := range reviews {
		fmt.Fprintf(w, "%s %s by %s (%s)\n", strings.Repeat("*", r.Rating), r.ID, r.User.Name, r.CreatedAt.Format("2006-01-02"))
		if r.Comment != "" {
			fmt.Fprintf(w, "  %s\n", r.Comment)
		}
	}
}

func printReport(w io.Writer, r storefront.Report) error {
	fmt.Fprintf(w, "Revenue:         %s\n", money(r.Revenue))
	fmt.Fprintf(w, "Orders:          %d\n", r.OrderCount)
	fmt.Fprintf(w, "Inventory value: %s\n", money(r.InventoryValue))
	for _, st := range models.OrderStatuses {
		fmt.Fprintf(w, "  %-10s %d\n", st, r.StatusCounts[st])
	}

	if len(r.MonthlySales) > 0 {
		fmt.Fprintln(w, "\nMonthly sales")
		tw := table(w, "MONTH", "ORDERS", "REVENUE")
		for _, m := range r.MonthlySales {
			fmt.Fprintf(tw, "%s\t%d\t%s\n", m.Month, m.Orders, money(m.Revenue))
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}
	if len(r.TopProducts) > 0 {
		fmt.Fprintln(w, "\nTop products")
		tw := table(w, "PRODUCT", "UNITS", "REVENUE")
		for _, p := range r.TopProducts {
			fmt.Fprintf(tw, "%s\t%d\t%s\n", p.Name, p.Units, money(p.Revenue))
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}
	if len(r.LowStock) > 0 {
		fmt.Fprintln(w, "\nLow stock")
		tw := table(w, "PRODUCT", "STOCK")
		for _, p := range r.LowStock {
			fmt.Fprintf(tw, "%s\t%d\n", p.Name, p.Stock)
		}
		return tw.Flush()
	}
	return nil
}
