package services_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"motoparts/internal/models"
	"motoparts/internal/repositories"
	"motoparts/pkg/rabbitmq"
)

// MockPublisher records published events.
type MockPublisher struct {
	mock.Mock
	mu     sync.Mutex
	events []rabbitmq.Event
}

func (m *MockPublisher) Publish(event rabbitmq.Event) error {
	m.mu.Lock()
	m.events = append(m.events, event)
	m.mu.Unlock()
	args := m.Called(event)
	return args.Error(0)
}

func (m *MockPublisher) Types() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, 0, len(m.events))
	for _, e := range m.events {
		out = append(out, e.Type)
	}
	return out
}

func seedProduct(t *testing.T, repo repositories.ProductRepository, id string, price float64, stock int) models.Product {
	t.Helper()
	p := models.Product{ID: id, Name: "Part " + id, Price: price, Stock: stock, IsActive: true}
	require.NoError(t, repo.Create(&p))
	return p
}

func stockOf(t *testing.T, repo repositories.ProductRepository, id string) int {
	t.Helper()
	p, err := repo.GetByID(id)
	require.NoError(t, err)
	return p.Stock
}

var (
	customer = &models.User{ID: "u-1", Name: "Jane", Email: "jane@example.com", Role: models.RoleUser}
	stranger = &models.User{ID: "u-2", Name: "Joe", Email: "joe@example.com", Role: models.RoleUser}
	admin    = &models.User{ID: "a-1", Name: "Admin", Email: "admin@example.com", Role: models.RoleAdmin}
)
