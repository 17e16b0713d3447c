package catalog

import (
	"slices"
	"strings"

	"motoparts/internal/models"
)

// Brands lists the distinct brands of active products, sorted.
func Brands(products []models.Product) []string {
	seen := make(map[string]struct{})
	var brands []string
	for _, p := range products {
		if !p.IsActive || p.Brand == "" {
			continue
		}
		if _, ok := seen[p.Brand]; ok {
			continue
		}
		seen[p.Brand] = struct{}{}
		brands = append(brands, p.Brand)
	}
	slices.Sort(brands)
	return brands
}

// PriceBounds returns the lowest and highest active price. ok is false when
// there are no active products.
func PriceBounds(products []models.Product) (lo, hi float64, ok bool) {
	for _, p := range products {
		if !p.IsActive {
			continue
		}
		if !ok {
			lo, hi, ok = p.Price, p.Price, true
			continue
		}
		lo = min(lo, p.Price)
		hi = max(hi, p.Price)
	}
	return lo, hi, ok
}

// FilterOrders is the admin order table filter: search matches the order id,
// the cart id or the owner's name (case-insensitive); status, when set, must
// match exactly.
func FilterOrders(orders []models.Order, search string, status models.OrderStatus) []models.Order {
	q := strings.ToLower(search)
	var result []models.Order
	for _, o := range orders {
		if status != "" && o.Status != status {
			continue
		}
		if !strings.Contains(o.ID, search) &&
			!strings.Contains(o.CartID, search) &&
			(o.User == nil || !strings.Contains(strings.ToLower(o.User.Name), q)) {
			continue
		}
		result = append(result, o)
	}
	return result
}

// FilterUsers matches name or email, case-insensitive.
func FilterUsers(users []models.UserRecord, search string) []models.UserRecord {
	q := strings.ToLower(search)
	var result []models.UserRecord
	for _, u := range users {
		if strings.Contains(strings.ToLower(u.Name), q) || strings.Contains(strings.ToLower(u.Email), q) {
			result = append(result, u)
		}
	}
	return result
}

// AdminsOnly keeps admin and superadmin accounts.
func AdminsOnly(users []models.UserRecord) []models.UserRecord {
	var result []models.UserRecord
	for _, u := range users {
		if u.Role.IsAdmin() {
			result = append(result, u)
		}
	}
	return result
}
