package repositories

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"motoparts/internal/models"
)

// GORMUserRepository is a GORM implementation of UserRepository.
type GORMUserRepository struct {
	db *gorm.DB
}

// NewGORMUserRepository creates a new instance of GORMUserRepository.
func NewGORMUserRepository(db *gorm.DB) *GORMUserRepository {
	return &GORMUserRepository{
		db: db,
	}
}

// Create creates a new account. Emails are stored lower-cased.
func (r *GORMUserRepository) Create(account *models.Account) error {
	if account.ID == "" {
		account.ID = uuid.New().String()
	}
	account.Email = strings.ToLower(account.Email)
	if err := r.db.Create(account).Error; err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// GetAll lists every account, newest first.
func (r *GORMUserRepository) GetAll() ([]models.Account, error) {
	var accounts []models.Account
	if err := r.db.Order("created_at desc").Find(&accounts).Error; err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return accounts, nil
}

// GetByEmail retrieves an account by email, case-insensitively.
func (r *GORMUserRepository) GetByEmail(email string) (*models.Account, error) {
	return r.first("email = ?", strings.ToLower(email), "email "+email)
}

// GetByID retrieves an account by its ID.
func (r *GORMUserRepository) GetByID(id string) (*models.Account, error) {
	return r.first("id = ?", id, "ID "+id)
}

func (r *GORMUserRepository) first(query, arg, desc string) (*models.Account, error) {
	var account models.Account
	if err := r.db.First(&account, query, arg).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user with %s: %w", desc, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get user by %s: %w", desc, err)
	}
	return &account, nil
}

// Update saves every field of an existing account.
func (r *GORMUserRepository) Update(account *models.Account) error {
	account.Email = strings.ToLower(account.Email)
	res := r.db.Model(&models.Account{}).Where("id = ?", account.ID).
		Select("name", "email", "phone", "password", "role", "provider").Updates(account)
	if res.Error != nil {
		return fmt.Errorf("failed to update user: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("user with ID %s: %w", account.ID, ErrNotFound)
	}
	return nil
}

// Delete soft-deletes an account.
func (r *GORMUserRepository) Delete(id string) error {
	res := r.db.Delete(&models.Account{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete user: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("user with ID %s: %w", id, ErrNotFound)
	}
	return nil
}
