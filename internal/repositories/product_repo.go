package repositories

import (
	"errors"

	"motoparts/internal/models"
)

var (
	// ErrNotFound is wrapped by every repository lookup that finds nothing.
	ErrNotFound = errors.New("not found")
	// ErrDuplicate is wrapped when a unique value is already taken.
	ErrDuplicate = errors.New("already exists")
)

// ProductRepository defines the interface for product data access.
type ProductRepository interface {
	GetAll() ([]models.Product, error)
	GetByID(id string) (*models.Product, error)
	Create(product *models.Product) error
	Update(product *models.Product) error
	Delete(id string) error
}
