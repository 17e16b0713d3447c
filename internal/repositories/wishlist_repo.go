package repositories

import (
	"slices"
	"sync"
)

// WishlistRepository stores the product ids each user saved, in insertion order.
type WishlistRepository interface {
	Get(userID string) ([]string, error)
	Add(userID, productID string) error
	Remove(userID, productID string) error
	Clear(userID string) error
}

// MockWishlistRepository is an in-memory WishlistRepository.
type MockWishlistRepository struct {
	lists map[string][]string
	mu    sync.RWMutex
}

// NewMockWishlistRepository creates an empty MockWishlistRepository.
func NewMockWishlistRepository() *MockWishlistRepository {
	return &MockWishlistRepository{lists: make(map[string][]string)}
}

// Get returns the saved product ids of a user.
func (r *MockWishlistRepository) Get(userID string) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.lists[userID]), nil
}

// Add saves a product; adding it twice keeps one entry.
func (r *MockWishlistRepository) Add(userID, productID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !slices.Contains(r.lists[userID], productID) {
		r.lists[userID] = append(r.lists[userID], productID)
	}
	return nil
}

// Remove drops a saved product.
func (r *MockWishlistRepository) Remove(userID, productID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.lists[userID] = slices.DeleteFunc(r.lists[userID], func(id string) bool { return id == productID })
	return nil
}

// Clear empties a user's wishlist.
func (r *MockWishlistRepository) Clear(userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.lists, userID)
	return nil
}
