package state

import "motoparts/internal/models"

// Action is a state transition request handled by Reduce.
type Action interface {
	Type() string
}

// Slice names a part of State that tracks its own loading and error status.
type Slice string

const (
	SliceAuth       Slice = "auth"
	SliceProducts   Slice = "product"
	SliceCategories Slice = "category"
	SliceCart       Slice = "cart"
	SliceOrders     Slice = "orders"
	SliceWishlist   Slice = "wishlist"
	SliceReviews    Slice = "reviews"
	SliceUsers      Slice = "users"
)

// Request lifecycle.
type (
	RequestStarted struct{ Slice Slice }
	RequestFailed  struct {
		Slice Slice
		Err   string
	}
)

// Auth.
type (
	SetCredentials struct{ Session models.AuthSession }
	LoggedOut      struct{}
)

// Catalog.
type (
	ProductsLoaded      struct{ Products []models.Product }
	ProductStored       struct{ Product models.Product }
	ProductRemoved      struct{ ID string }
	CategoriesLoaded    struct{ Categories []models.Category }
	CategoryAdded       struct{ Category models.Category }
	CategorySelected    struct{ Category *models.Category }
	SubCategoriesLoaded struct{ SubCategories []models.SubCategory }
	SubCategoryAdded    struct{ SubCategory models.SubCategory }
)

// Cart. Seq orders responses; see Store.NextCartSeq.
type (
	CartLoaded struct {
		Cart *models.Cart
		Seq  uint64
	}
	CartCleared struct{ Seq uint64 }
)

// Orders.
type (
	MyOrdersLoaded    struct{ Orders []models.Order }
	AdminOrdersLoaded struct{ Orders []models.Order }
	OrderStored       struct {
		Order   models.Order
		Message string
	}
	SuccessCleared struct{}
)

// Wishlist.
type (
	WishlistLoaded  struct{ Products []models.Product }
	WishlistCleared struct{}
)

// Reviews.
type (
	ReviewsLoaded  struct{ Reviews []models.Review }
	ReviewAdded    struct{ Review models.Review }
	ReviewUpdated  struct{ Review models.Review }
	ReviewDeleted  struct{ ID string }
	ReviewsCleared struct{}
)

// Admin users.
type (
	UsersLoaded  struct{ Users []models.UserRecord }
	UserSelected struct{ User *models.UserRecord }
	UserAdded    struct{ User models.UserRecord }
	UserUpdated  struct{ User models.UserRecord }
	UserDeleted  struct{ ID string }
)

func (a RequestStarted) Type() string      { return string(a.Slice) + "/pending" }
func (a RequestFailed) Type() string       { return string(a.Slice) + "/rejected" }
func (SetCredentials) Type() string        { return "auth/setCredentials" }
func (LoggedOut) Type() string             { return "auth/logout" }
func (ProductsLoaded) Type() string        { return "product/loaded" }
func (ProductStored) Type() string         { return "product/stored" }
func (ProductRemoved) Type() string        { return "product/removed" }
func (CategoriesLoaded) Type() string      { return "category/getCategories" }
func (CategoryAdded) Type() string         { return "category/addCategory" }
func (CategorySelected) Type() string      { return "category/selectCategory" }
func (SubCategoriesLoaded) Type() string   { return "category/getSubCategories" }
func (SubCategoryAdded) Type() string      { return "category/addSubCategory" }
func (CartLoaded) Type() string            { return "cart/loaded" }
func (CartCleared) Type() string           { return "cart/clear" }
func (MyOrdersLoaded) Type() string        { return "orders/fetchMine" }
func (AdminOrdersLoaded) Type() string     { return "orders/fetchOrders" }
func (OrderStored) Type() string           { return "orders/stored" }
func (SuccessCleared) Type() string        { return "orders/clearSuccess" }
func (WishlistLoaded) Type() string        { return "wishlist/loaded" }
func (WishlistCleared) Type() string       { return "wishlist/clear" }
func (ReviewsLoaded) Type() string         { return "reviews/fetchByProduct" }
func (ReviewAdded) Type() string           { return "reviews/create" }
func (ReviewUpdated) Type() string         { return "reviews/update" }
func (ReviewDeleted) Type() string         { return "reviews/delete" }
func (ReviewsCleared) Type() string        { return "reviews/clear" }
func (UsersLoaded) Type() string           { return "users/fetch" }
func (UserSelected) Type() string          { return "users/fetchById" }
func (UserAdded) Type() string             { return "users/createAdmin" }
func (UserUpdated) Type() string           { return "users/update" }
func (UserDeleted) Type() string           { return "users/delete" }
