package repositories

import (
	"fmt"
	"slices"
	"sync"

	"github.com/google/uuid"

	"motoparts/internal/models"
)

// CartRepository stores carts by their cart key.
type CartRepository interface {
	Get(cartID string) (*models.Cart, error)
	Save(cart *models.Cart) error
	Delete(cartID string) error
}

// MockCartRepository is an in-memory CartRepository.
type MockCartRepository struct {
	carts map[string]models.Cart
	mu    sync.RWMutex
}

// NewMockCartRepository creates an empty MockCartRepository.
func NewMockCartRepository() *MockCartRepository {
	return &MockCartRepository{carts: make(map[string]models.Cart)}
}

// Get returns a copy of the cart stored under cartID.
func (r *MockCartRepository) Get(cartID string) (*models.Cart, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	cart, ok := r.carts[cartID]
	if !ok {
		return nil, fmt.Errorf("cart %s: %w", cartID, ErrNotFound)
	}
	cart.Items = slices.Clone(cart.Items)
	return &cart, nil
}

// Save creates or replaces a cart.
func (r *MockCartRepository) Save(cart *models.Cart) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if cart.ID == "" {
		cart.ID = uuid.New().String()
	}
	stored := *cart
	stored.Items = slices.Clone(cart.Items)
	r.carts[cart.CartID] = stored
	return nil
}

// Delete drops a cart. Deleting a missing cart is not an error.
func (r *MockCartRepository) Delete(cartID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.carts, cartID)
	return nil
}
