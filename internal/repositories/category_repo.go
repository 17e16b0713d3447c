package repositories

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/google/uuid"

	"motoparts/internal/models"
)

// CategoryRepository defines the interface for category data access.
type CategoryRepository interface {
	Categories() ([]models.Category, error)
	GetCategory(id string) (*models.Category, error)
	CreateCategory(category *models.Category) error
	SubCategories(categoryID string) ([]models.SubCategory, error)
	GetSubCategory(id string) (*models.SubCategory, error)
	CreateSubCategory(sub *models.SubCategory) error
}

// MockCategoryRepository keeps categories and subcategories in memory.
type MockCategoryRepository struct {
	categories map[string]models.Category
	subs       map[string]models.SubCategory
	mu         sync.RWMutex
}

// NewMockCategoryRepository creates an empty MockCategoryRepository.
func NewMockCategoryRepository() *MockCategoryRepository {
	return &MockCategoryRepository{
		categories: make(map[string]models.Category),
		subs:       make(map[string]models.SubCategory),
	}
}

// Categories lists every category by name.
func (r *MockCategoryRepository) Categories() ([]models.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.Category, 0, len(r.categories))
	for _, c := range r.categories {
		out = append(out, c)
	}
	slices.SortFunc(out, func(a, b models.Category) int { return cmp.Compare(a.Name, b.Name) })
	return out, nil
}

// GetCategory returns one category.
func (r *MockCategoryRepository) GetCategory(id string) (*models.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.categories[id]
	if !ok {
		return nil, fmt.Errorf("category with ID %s: %w", id, ErrNotFound)
	}
	return &c, nil
}

// CreateCategory adds a category. Names are unique, ignoring case.
func (r *MockCategoryRepository) CreateCategory(category *models.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, c := range r.categories {
		if strings.EqualFold(c.Name, category.Name) {
			return fmt.Errorf("category %q: %w", category.Name, ErrDuplicate)
		}
	}
	if category.ID == "" {
		category.ID = uuid.New().String()
	}
	r.categories[category.ID] = *category
	return nil
}

// SubCategories lists the subcategories of one category by name.
func (r *MockCategoryRepository) SubCategories(categoryID string) ([]models.SubCategory, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.SubCategory, 0)
	for _, s := range r.subs {
		if s.Category == categoryID {
			out = append(out, s)
		}
	}
	slices.SortFunc(out, func(a, b models.SubCategory) int { return cmp.Compare(a.Name, b.Name) })
	return out, nil
}

// GetSubCategory returns one subcategory.
func (r *MockCategoryRepository) GetSubCategory(id string) (*models.SubCategory, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.subs[id]
	if !ok {
		return nil, fmt.Errorf("subcategory with ID %s: %w", id, ErrNotFound)
	}
	return &s, nil
}

// CreateSubCategory adds a subcategory under an existing category.
func (r *MockCategoryRepository) CreateSubCategory(sub *models.SubCategory) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.categories[sub.Category]; !ok {
		return fmt.Errorf("category with ID %s: %w", sub.Category, ErrNotFound)
	}
	for _, s := range r.subs {
		if s.Category == sub.Category && strings.EqualFold(s.Name, sub.Name) {
			return fmt.Errorf("subcategory %q: %w", sub.Name, ErrDuplicate)
		}
	}
	if sub.ID == "" {
		sub.ID = uuid.New().String()
	}
	r.subs[sub.ID] = *sub
	return nil
}
