package repositories

import (
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"motoparts/internal/models"
)

// ReviewRepository defines the interface for review data access.
type ReviewRepository interface {
	GetByProduct(productID string) ([]models.Review, error)
	GetByID(id string) (*models.Review, error)
	Create(review *models.Review) error
	Update(review *models.Review) error
	Delete(id string) error
}

// MockReviewRepository is an in-memory ReviewRepository.
type MockReviewRepository struct {
	reviews map[string]models.Review
	mu      sync.RWMutex
}

// NewMockReviewRepository creates an empty MockReviewRepository.
func NewMockReviewRepository() *MockReviewRepository {
	return &MockReviewRepository{reviews: make(map[string]models.Review)}
}

// GetByProduct lists the reviews of a product, newest first.
func (r *MockReviewRepository) GetByProduct(productID string) ([]models.Review, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.Review, 0)
	for _, rv := range r.reviews {
		if rv.Product == productID {
			out = append(out, rv)
		}
	}
	slices.SortFunc(out, func(a, b models.Review) int { return b.CreatedAt.Compare(a.CreatedAt) })
	return out, nil
}

// GetByID returns one review.
func (r *MockReviewRepository) GetByID(id string) (*models.Review, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rv, ok := r.reviews[id]
	if !ok {
		return nil, fmt.Errorf("review with ID %s: %w", id, ErrNotFound)
	}
	return &rv, nil
}

// Create stores a new review. A user may review a product once.
func (r *MockReviewRepository) Create(review *models.Review) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, rv := range r.reviews {
		if rv.Product == review.Product && rv.User.ID == review.User.ID {
			return fmt.Errorf("review of product %s: %w", review.Product, ErrDuplicate)
		}
	}
	if review.ID == "" {
		review.ID = uuid.New().String()
	}
	review.CreatedAt = time.Now()
	review.UpdatedAt = review.CreatedAt
	r.reviews[review.ID] = *review
	return nil
}

// Update replaces an existing review.
func (r *MockReviewRepository) Update(review *models.Review) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.reviews[review.ID]; !ok {
		return fmt.Errorf("review with ID %s: %w", review.ID, ErrNotFound)
	}
	review.UpdatedAt = time.Now()
	r.reviews[review.ID] = *review
	return nil
}

// Delete removes a review.
func (r *MockReviewRepository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.reviews[id]; !ok {
		return fmt.Errorf("review with ID %s: %w", id, ErrNotFound)
	}
	delete(r.reviews, id)
	return nil
}
