package state

import (
	"slices"

	"motoparts/internal/models"
)

// Status is the loading flag and last error of one slice.
type Status struct {
	Loading bool
	Err     string
}

// State is the whole client-side application state. Reduce never mutates a
// State in place, so a snapshot handed to a listener stays valid.
type State struct {
	Auth models.AuthSession

	Products         []models.Product
	Categories       []models.Category
	SubCategories    []models.SubCategory
	SelectedCategory *models.Category

	Cart    *models.Cart
	CartSeq uint64

	Orders         []models.Order
	AdminOrders    []models.Order
	SuccessMessage string

	Wishlist []models.Product
	Reviews  []models.Review

	Users        []models.UserRecord
	SelectedUser *models.UserRecord

	Status map[Slice]Status
}

// StatusOf returns the status of one slice.
func (s State) StatusOf(slice Slice) Status {
	return s.Status[slice]
}

func (s State) withStatus(slice Slice, st Status) State {
	next := make(map[Slice]Status, len(s.Status)+1)
	for k, v := range s.Status {
		next[k] = v
	}
	next[slice] = st
	s.Status = next
	return s
}

func (s State) done(slice Slice) State {
	return s.withStatus(slice, Status{})
}

// Reduce is the pure transition function.
func Reduce(s State, action Action) State {
	switch a := action.(type) {
	case RequestStarted:
		return s.withStatus(a.Slice, Status{Loading: true})
	case RequestFailed:
		return s.withStatus(a.Slice, Status{Err: a.Err})

	case SetCredentials:
		s.Auth = a.Session
		return s.done(SliceAuth)
	case LoggedOut:
		s.Auth = models.AuthSession{}
		s.Cart = nil
		s.Orders = nil
		s.Wishlist = nil
		return s.done(SliceAuth)

	case ProductsLoaded:
		s.Products = a.Products
		return s.done(SliceProducts)
	case ProductStored:
		s.Products = upsert(s.Products, a.Product, func(p models.Product) string { return p.ID })
		return s.done(SliceProducts)
	case ProductRemoved:
		s.Products = remove(s.Products, a.ID, func(p models.Product) string { return p.ID })
		return s.done(SliceProducts)
	case CategoriesLoaded:
		s.Categories = a.Categories
		return s.done(SliceCategories)
	case CategoryAdded:
		s.Categories = appendCopy(s.Categories, a.Category)
		return s.done(SliceCategories)
	case CategorySelected:
		s.SelectedCategory = a.Category
		s.SubCategories = nil
		return s
	case SubCategoriesLoaded:
		s.SubCategories = a.SubCategories
		return s.done(SliceCategories)
	case SubCategoryAdded:
		s.SubCategories = appendCopy(s.SubCategories, a.SubCategory)
		return s.done(SliceCategories)

	case CartLoaded:
		if a.Seq < s.CartSeq {
			return s
		}
		s.Cart = a.Cart
		s.CartSeq = a.Seq
		return s.done(SliceCart)
	case CartCleared:
		if a.Seq < s.CartSeq {
			return s
		}
		s.Cart = nil
		s.CartSeq = a.Seq
		return s.done(SliceCart)

	case MyOrdersLoaded:
		s.Orders = a.Orders
		return s.done(SliceOrders)
	case AdminOrdersLoaded:
		s.AdminOrders = a.Orders
		return s.done(SliceOrders)
	case OrderStored:
		id := func(o models.Order) string { return o.ID }
		s.Orders = replace(s.Orders, a.Order, id)
		s.AdminOrders = replace(s.AdminOrders, a.Order, id)
		s.SuccessMessage = a.Message
		return s.done(SliceOrders)
	case SuccessCleared:
		s.SuccessMessage = ""
		return s

	case WishlistLoaded:
		s.Wishlist = a.Products
		return s.done(SliceWishlist)
	case WishlistCleared:
		s.Wishlist = nil
		return s.done(SliceWishlist)

	case ReviewsLoaded:
		s.Reviews = a.Reviews
		return s.done(SliceReviews)
	case ReviewAdded:
		s.Reviews = append([]models.Review{a.Review}, s.Reviews...)
		return s.done(SliceReviews)
	case ReviewUpdated:
		s.Reviews = replace(s.Reviews, a.Review, func(r models.Review) string { return r.ID })
		return s.done(SliceReviews)
	case ReviewDeleted:
		s.Reviews = remove(s.Reviews, a.ID, func(r models.Review) string { return r.ID })
		return s.done(SliceReviews)
	case ReviewsCleared:
		s.Reviews = nil
		return s

	case UsersLoaded:
		s.Users = a.Users
		return s.done(SliceUsers)
	case UserSelected:
		s.SelectedUser = a.User
		return s.done(SliceUsers)
	case UserAdded:
		s.Users = appendCopy(s.Users, a.User)
		return s.done(SliceUsers)
	case UserUpdated:
		s.Users = replace(s.Users, a.User, func(u models.UserRecord) string { return u.ID })
		return s.done(SliceUsers)
	case UserDeleted:
		s.Users = remove(s.Users, a.ID, func(u models.UserRecord) string { return u.ID })
		return s.done(SliceUsers)
	}
	return s
}

func appendCopy[T any](items []T, item T) []T {
	out := make([]T, 0, len(items)+1)
	out = append(out, items...)
	return append(out, item)
}

// replace swaps the element with a matching id; items without a match are unchanged.
func replace[T any](items []T, item T, id func(T) string) []T {
	i := slices.IndexFunc(items, func(v T) bool { return id(v) == id(item) })
	if i < 0 {
		return items
	}
	out := slices.Clone(items)
	out[i] = item
	return out
}

// upsert replaces a matching element or appends item.
func upsert[T any](items []T, item T, id func(T) string) []T {
	if slices.ContainsFunc(items, func(v T) bool { return id(v) == id(item) }) {
		return replace(items, item, id)
	}
	return appendCopy(items, item)
}

func remove[T any](items []T, key string, id func(T) string) []T {
	out := make([]T, 0, len(items))
	for _, v := range items {
		if id(v) != key {
			out = append(out, v)
		}
	}
	return out
}
