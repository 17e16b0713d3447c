package storefront

import (
	"cmp"
	"context"
	"slices"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"motoparts/internal/models"
)

// Report summarises sales and stock for the admin dashboard.
type Report struct {
	Revenue        decimal.Decimal
	OrderCount     int
	StatusCounts   map[models.OrderStatus]int
	MonthlySales   []MonthlySales
	TopProducts    []ProductSales
	LowStock       []models.Product
	InventoryValue decimal.Decimal
}

// MonthlySales is the revenue of one calendar month, keyed "2006-01".
type MonthlySales struct {
	Month   string
	Revenue decimal.Decimal
	Orders  int
}

// ProductSales is the units and revenue one product brought in.
type ProductSales struct {
	ProductID string
	Name      string
	Units     int
	Revenue   decimal.Decimal
}

const topProductLimit = 5

// BuildReport computes the report. Cancelled orders count towards the status
// breakdown only.
func BuildReport(products []models.Product, orders []models.Order, lowStockThreshold int) Report {
	r := Report{
		Revenue:        decimal.Zero,
		OrderCount:     len(orders),
		StatusCounts:   make(map[models.OrderStatus]int, len(models.OrderStatuses)),
		InventoryValue: decimal.Zero,
	}

	months := map[string]*MonthlySales{}
	sales := map[string]*ProductSales{}
	for _, o := range orders {
		r.StatusCounts[o.Status]++
		if o.Status == models.OrderCancelled {
			continue
		}
		total := decimal.NewFromFloat(o.TotalAmount)
		r.Revenue = r.Revenue.Add(total)

		key := o.CreatedAt.Format("2006-01")
		m, ok := months[key]
		if !ok {
			m = &MonthlySales{Month: key, Revenue: decimal.Zero}
			months[key] = m
		}
		m.Revenue = m.Revenue.Add(total)
		m.Orders++

		for _, item := range o.Items {
			ps, ok := sales[item.Product.ID]
			if !ok {
				ps = &ProductSales{ProductID: item.Product.ID, Name: item.Product.Name, Revenue: decimal.Zero}
				sales[item.Product.ID] = ps
			}
			ps.Units += item.Quantity
			ps.Revenue = ps.Revenue.Add(item.Subtotal())
		}
	}

	for _, m := range months {
		r.MonthlySales = append(r.MonthlySales, *m)
	}
	slices.SortFunc(r.MonthlySales, func(a, b MonthlySales) int { return cmp.Compare(a.Month, b.Month) })

	for _, ps := range sales {
		r.TopProducts = append(r.TopProducts, *ps)
	}
	slices.SortFunc(r.TopProducts, func(a, b ProductSales) int {
		if c := cmp.Compare(b.Units, a.Units); c != 0 {
			return c
		}
		return cmp.Compare(a.ProductID, b.ProductID)
	})
	if len(r.TopProducts) > topProductLimit {
		r.TopProducts = r.TopProducts[:topProductLimit]
	}

	for _, p := range products {
		if p.Stock <= lowStockThreshold {
			r.LowStock = append(r.LowStock, p)
		}
		value := decimal.NewFromFloat(p.Price).Mul(decimal.NewFromInt(int64(p.Stock)))
		r.InventoryValue = r.InventoryValue.Add(value)
	}
	slices.SortStableFunc(r.LowStock, func(a, b models.Product) int { return cmp.Compare(a.Stock, b.Stock) })
	return r
}

// Report loads products and all orders concurrently and builds the report.
func (s *Storefront) Report(ctx context.Context) (*Report, error) {
	if _, err := s.RequireAdmin(); err != nil {
		return nil, err
	}
	var (
		products []models.Product
		orders   []models.Order
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		products, err = s.FetchProducts(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		orders, err = s.FetchAllOrders(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	r := BuildReport(products, orders, s.opts.LowStockThreshold)
	return &r, nil
}
