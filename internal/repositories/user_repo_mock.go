package repositories

import (
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"motoparts/internal/models"
)

// MockUserRepository is an in-memory implementation of UserRepository.
type MockUserRepository struct {
	accounts map[string]models.Account
	mu       sync.RWMutex
}

// NewMockUserRepository creates a new instance of MockUserRepository.
func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{accounts: make(map[string]models.Account)}
}

// Create adds an account; emails are unique ignoring case.
func (r *MockUserRepository) Create(account *models.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	account.Email = strings.ToLower(account.Email)
	for _, a := range r.accounts {
		if a.Email == account.Email {
			return fmt.Errorf("email '%s' %w", account.Email, ErrDuplicate)
		}
	}
	if account.ID == "" {
		account.ID = uuid.New().String()
	}
	account.CreatedAt = time.Now()
	account.UpdatedAt = account.CreatedAt
	r.accounts[account.ID] = *account
	return nil
}

// GetAll lists every account, newest first.
func (r *MockUserRepository) GetAll() ([]models.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.Account, 0, len(r.accounts))
	for _, a := range r.accounts {
		out = append(out, a)
	}
	slices.SortFunc(out, func(a, b models.Account) int { return b.CreatedAt.Compare(a.CreatedAt) })
	return out, nil
}

// GetByEmail retrieves an account by email, case-insensitively.
func (r *MockUserRepository) GetByEmail(email string) (*models.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, a := range r.accounts {
		if strings.EqualFold(a.Email, email) {
			return &a, nil
		}
	}
	return nil, fmt.Errorf("user with email %s: %w", email, ErrNotFound)
}

// GetByID retrieves an account by its ID.
func (r *MockUserRepository) GetByID(id string) (*models.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.accounts[id]
	if !ok {
		return nil, fmt.Errorf("user with ID %s: %w", id, ErrNotFound)
	}
	return &a, nil
}

// Update replaces an existing account.
func (r *MockUserRepository) Update(account *models.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.accounts[account.ID]; !ok {
		return fmt.Errorf("user with ID %s: %w", account.ID, ErrNotFound)
	}
	account.Email = strings.ToLower(account.Email)
	account.UpdatedAt = time.Now()
	r.accounts[account.ID] = *account
	return nil
}

// Delete removes an account.
func (r *MockUserRepository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.accounts[id]; !ok {
		return fmt.Errorf("user with ID %s: %w", id, ErrNotFound)
	}
	delete(r.accounts, id)
	return nil
}
