package repositories

import "motoparts/internal/models"

// UserRepository defines the interface for account data access.
type UserRepository interface {
	Create(account *models.Account) error
	GetAll() ([]models.Account, error)
	GetByEmail(email string) (*models.Account, error)
	GetByID(id string) (*models.Account, error)
	Update(account *models.Account) error
	Delete(id string) error
}
