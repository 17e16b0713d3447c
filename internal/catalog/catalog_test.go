package catalog_test

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"motoparts/internal/catalog"
	"motoparts/internal/models"
)

func at(day int) *time.Time {
	t := time.Date(2024, 1, day, 0, 0, 0, 0, time.UTC)
	return &t
}

func fixture() []models.Product {
	engine := models.PopulatedRef(models.Category{ID: "c-engine", Name: "Engine"})
	brakes := models.IDRef[models.Category]("c-brakes")
	return []models.Product{
		{ID: "1", Name: "Spark Plug", Brand: "NGK", Price: 450, Category: engine, IsActive: true, CreatedAt: at(3)},
		{ID: "2", Name: "Piston Kit", Brand: "Bajaj", Price: 3200, Category: engine, IsActive: true, CreatedAt: at(1), SKU: "PK-150"},
		{ID: "3", Name: "Brake Pads", Brand: "TVS", Price: 900, Category: brakes, IsActive: true, CreatedAt: at(2), Description: "Sintered pads"},
		{ID: "4", Name: "Old Chain", Brand: "TVS", Price: 100, Category: brakes, IsActive: false, CreatedAt: at(4)},
		{ID: "5", Name: "Free Sticker", Brand: "Ñandú", Price: 0, IsActive: true},
		{ID: "6", Name: "Clutch Cable", Brand: "Bajaj", Price: 900, IsActive: true, CreatedAt: at(5)},
	}
}

func ids(products []models.Product) []string {
	out := make([]string, 0, len(products))
	for _, p := range products {
		out = append(out, p.ID)
	}
	return out
}

func TestFilterProducts(t *testing.T) {
	products := fixture()

	tests := []struct {
		name   string
		params models.ProductSearchParams
		want   []string
	}{
		{"no filters keeps active", models.ProductSearchParams{}, []string{"1", "2", "3", "5", "6"}},
		{"search name", models.ProductSearchParams{Search: "PLUG"}, []string{"1"}},
		{"search populated category name", models.ProductSearchParams{Search: "engine"}, []string{"1", "2"}},
		{"search description", models.ProductSearchParams{Search: "sintered"}, []string{"3"}},
		{"search sku", models.ProductSearchParams{Search: "pk-150"}, []string{"2"}},
		{"search ignores diacritics", models.ProductSearchParams{Search: "nandu"}, []string{"5"}},
		{"category by bare id", models.ProductSearchParams{Category: "c-brakes"}, []string{"3"}},
		{"category by populated id", models.ProductSearchParams{Category: "c-engine"}, []string{"1", "2"}},
		{"brand exact", models.ProductSearchParams{Brand: "Bajaj"}, []string{"2", "6"}},
		{"zero min price is a bound", models.ProductSearchParams{MinPrice: models.Price(0)}, []string{"1", "2", "3", "5", "6"}},
		{"min price", models.ProductSearchParams{MinPrice: models.Price(900)}, []string{"2", "3", "6"}},
		{"max price", models.ProductSearchParams{MaxPrice: models.Price(450)}, []string{"1", "5"}},
		{"zero max price", models.ProductSearchParams{MaxPrice: models.Price(0)}, []string{"5"}},
		{"price asc stable", models.ProductSearchParams{SortBy: models.SortPriceAsc}, []string{"5", "1", "3", "6", "2"}},
		{"price desc stable", models.ProductSearchParams{SortBy: models.SortPriceDesc}, []string{"2", "3", "6", "1", "5"}},
		{"newest, missing date last", models.ProductSearchParams{SortBy: models.SortNewest}, []string{"6", "1", "3", "2", "5"}},
		{"combined", models.ProductSearchParams{Brand: "Bajaj", MaxPrice: models.Price(1000), SortBy: models.SortPriceAsc}, []string{"6"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(catalog.FilterProducts(products, tt.params)))
		})
	}
}

func TestFilterProductsDoesNotMutateInput(t *testing.T) {
	products := fixture()
	before := ids(products)
	catalog.FilterProducts(products, models.ProductSearchParams{SortBy: models.SortPriceDesc, Search: "a"})
	assert.Equal(t, before, ids(products))
}

func TestFilterProductsProperties(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	brands := []string{"NGK", "TVS", "Bajaj", ""}
	for round := 0; round < 200; round++ {
		var products []models.Product
		n := rng.Intn(20)
		for i := 0; i < n; i++ {
			products = append(products, models.Product{
				ID:       string(rune('a' + i)),
				Name:     "Part",
				Brand:    brands[rng.Intn(len(brands))],
				Price:    float64(rng.Intn(50) * 10),
				IsActive: rng.Intn(4) > 0,
			})
		}
		lo := float64(rng.Intn(30) * 10)
		params := models.ProductSearchParams{
			Brand:    brands[rng.Intn(len(brands))],
			MinPrice: models.Price(lo),
			MaxPrice: models.Price(lo + float64(rng.Intn(30)*10)),
			SortBy:   models.SortPriceAsc,
		}

		got := catalog.FilterProducts(products, params)
		for i, p := range got {
			require.True(t, p.IsActive)
			require.GreaterOrEqual(t, p.Price, *params.MinPrice)
			require.LessOrEqual(t, p.Price, *params.MaxPrice)
			if params.Brand != "" {
				require.Equal(t, params.Brand, p.Brand)
			}
			if i > 0 {
				require.LessOrEqual(t, got[i-1].Price, p.Price)
			}
		}
		// Filtering again is a no-op.
		require.Equal(t, ids(got), ids(catalog.FilterProducts(got, params)))
	}
}

func TestSelectorMemoizes(t *testing.T) {
	products := fixture()
	s := catalog.NewSelector()

	first := s.Select(products, models.ProductSearchParams{MinPrice: models.Price(0)})
	second := s.Select(products, models.ProductSearchParams{MinPrice: models.Price(0)})
	assert.Equal(t, 1, s.Recomputations())
	assert.Equal(t, ids(first), ids(second))
	require.NotEmpty(t, first)
	assert.Same(t, &first[0], &second[0], "memoized result is the same slice")

	s.Select(products, models.ProductSearchParams{})
	assert.Equal(t, 2, s.Recomputations())

	copied := append([]models.Product(nil), products...)
	s.Select(copied, models.ProductSearchParams{})
	assert.Equal(t, 3, s.Recomputations())

	// Mutating the caller's bound afterwards does not poison the memo.
	bound := 500.0
	params := models.ProductSearchParams{MaxPrice: &bound}
	s.Select(copied, params)
	bound = 10
	got := s.Select(copied, params)
	assert.Equal(t, 5, s.Recomputations())
	assert.Equal(t, []string{"5"}, ids(got))
}

func TestFilterProductsThreeItemSet(t *testing.T) {
	products := []models.Product{
		{ID: "a", Price: 100, IsActive: true},
		{ID: "b", Price: 50, IsActive: true},
		{ID: "c", Price: 200, IsActive: false},
	}

	got := catalog.FilterProducts(products, models.ProductSearchParams{MinPrice: models.Price(60)})
	assert.Equal(t, []string{"a"}, ids(got))

	got = catalog.FilterProducts(products, models.ProductSearchParams{SortBy: models.SortPriceDesc})
	require.Len(t, got, 2)
	assert.Equal(t, 100.0, got[0].Price)
	assert.Equal(t, 50.0, got[1].Price)
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "nandu", catalog.Normalize("Ñandú"))
	assert.Equal(t, "cafe creme", catalog.Normalize("Café Crème"))
	assert.Equal(t, "", catalog.Normalize(""))
}

func TestFacets(t *testing.T) {
	products := fixture()
	assert.Equal(t, []string{"Bajaj", "NGK", "TVS", "Ñandú"}, catalog.Brands(products))

	lo, hi, ok := catalog.PriceBounds(products)
	assert.True(t, ok)
	assert.Zero(t, lo)
	assert.Equal(t, 3200.0, hi)

	_, _, ok = catalog.PriceBounds(nil)
	assert.False(t, ok)
}

func TestFilterOrdersAndUsers(t *testing.T) {
	orders := []models.Order{
		{ID: "o-1", CartID: "user_1", Status: models.OrderPending, User: &models.OrderUser{Name: "Jane Rider"}},
		{ID: "o-2", CartID: "user_2", Status: models.OrderShipped, User: &models.OrderUser{Name: "Joe"}},
		{ID: "o-3", CartID: "guest_9", Status: models.OrderPending},
	}
	assert.Len(t, catalog.FilterOrders(orders, "", ""), 3)
	assert.Len(t, catalog.FilterOrders(orders, "", models.OrderPending), 2)
	assert.Equal(t, "o-1", catalog.FilterOrders(orders, "jane", "")[0].ID)
	assert.Equal(t, "o-3", catalog.FilterOrders(orders, "guest", "")[0].ID)
	assert.Empty(t, catalog.FilterOrders(orders, "joe", models.OrderPending))

	users := []models.UserRecord{
		{ID: "1", Name: "Jane", Email: "jane@example.com", Role: models.RoleAdmin},
		{ID: "2", Name: "Joe", Email: "JOE@example.com", Role: models.RoleUser},
		{ID: "3", Name: "Root", Email: "root@example.com", Role: models.RoleSuperAdmin},
	}
	assert.Len(t, catalog.FilterUsers(users, "joe@"), 1)
	assert.Len(t, catalog.AdminsOnly(users), 2)
}
