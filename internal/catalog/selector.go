// Package catalog derives the storefront's product views from the in-memory
// product set. Everything here is pure except the memo in Selector.
package catalog

import (
	"cmp"
	"slices"
	"sync"
	"time"

	"motoparts/internal/models"
)

var epoch = time.Unix(0, 0)

// FilterProducts returns the active products matching params, in the order
// params.SortBy asks for. Steps run in a fixed order and each narrows the
// previous result; an unset filter is a no-op. The input slice is not modified.
func FilterProducts(products []models.Product, params models.ProductSearchParams) []models.Product {
	result := make([]models.Product, 0, len(products))
	for _, p := range products {
		if p.IsActive {
			result = append(result, p)
		}
	}

	if params.Search != "" {
		q := Normalize(params.Search)
		result = slices.DeleteFunc(result, func(p models.Product) bool {
			return !matchesSearch(p, q)
		})
	}

	if params.Category != "" {
		result = slices.DeleteFunc(result, func(p models.Product) bool {
			return p.Category.IsZero() || p.Category.ID() != params.Category
		})
	}

	if params.Brand != "" {
		result = slices.DeleteFunc(result, func(p models.Product) bool {
			return p.Brand != params.Brand
		})
	}

	if params.MinPrice != nil {
		minPrice := *params.MinPrice
		result = slices.DeleteFunc(result, func(p models.Product) bool {
			return p.Price < minPrice
		})
	}

	if params.MaxPrice != nil {
		maxPrice := *params.MaxPrice
		result = slices.DeleteFunc(result, func(p models.Product) bool {
			return p.Price > maxPrice
		})
	}

	switch params.SortBy {
	case models.SortPriceAsc:
		slices.SortStableFunc(result, func(a, b models.Product) int {
			return cmp.Compare(a.Price, b.Price)
		})
	case models.SortPriceDesc:
		slices.SortStableFunc(result, func(a, b models.Product) int {
			return cmp.Compare(b.Price, a.Price)
		})
	case models.SortNewest:
		slices.SortStableFunc(result, func(a, b models.Product) int {
			return createdAt(b).Compare(createdAt(a))
		})
	}

	return result
}

// matchesSearch ORs the normalized query over name, brand, category name,
// description and SKU.
func matchesSearch(p models.Product, q string) bool {
	return containsNormalized(p.Name, q) ||
		containsNormalized(p.Brand, q) ||
		containsNormalized(p.Category.Name(), q) ||
		containsNormalized(p.Description, q) ||
		containsNormalized(p.SKU, q)
}

func createdAt(p models.Product) time.Time {
	if p.CreatedAt == nil {
		return epoch
	}
	return *p.CreatedAt
}

// Selector memoizes FilterProducts against its last inputs. Repeated calls
// with the same product slice and equal params return the same result slice,
// so it is cheap to call on every keystroke of a live search.
type Selector struct {
	mu       sync.Mutex
	valid    bool
	products []models.Product
	params   models.ProductSearchParams
	result   []models.Product
	misses   int
}

// NewSelector returns an empty memoizing selector.
func NewSelector() *Selector {
	return &Selector{}
}

// Select returns the filtered view, recomputing only when an input changed.
// Products are compared by slice identity, params by value.
func (s *Selector) Select(products []models.Product, params models.ProductSearchParams) []models.Product {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.valid && sameSlice(s.products, products) && s.params.Equal(params) {
		return s.result
	}
	s.misses++
	s.products = products
	s.params = cloneParams(params)
	s.result = FilterProducts(products, params)
	s.valid = true
	return s.result
}

// Recomputations returns how many times Select had to recompute.
func (s *Selector) Recomputations() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.misses
}

func sameSlice(a, b []models.Product) bool {
	if len(a) != len(b) {
		return false
	}
	return len(a) == 0 || &a[0] == &b[0]
}

func cloneParams(p models.ProductSearchParams) models.ProductSearchParams {
	if p.MinPrice != nil {
		p.MinPrice = models.Price(*p.MinPrice)
	}
	if p.MaxPrice != nil {
		p.MaxPrice = models.Price(*p.MaxPrice)
	}
	return p
}
