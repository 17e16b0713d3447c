// Package storage is the client's durable key/value store, the equivalent of
// browser localStorage. It holds the auth blob and the guest cart id.
package storage

import (
	"fmt"
	"sync"
)

// Well-known keys.
const (
	KeyAuth        = "auth"
	KeyGuestCartID = "guestCartId"
)

// Storage is a string key/value store.
type Storage interface {
	GetItem(key string) (value string, ok bool, err error)
	SetItem(key, value string) error
	RemoveItem(key string) error
	Close() error
}

// Drivers accepted by Open.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// Open returns the storage for driver. dsn is ignored for the memory driver.
func Open(driver, dsn string) (Storage, error) {
	switch driver {
	case DriverMemory:
		return NewMemoryStorage(), nil
	case DriverSQLite, DriverPostgres:
		return OpenGORM(driver, dsn)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", driver)
	}
}

// MemoryStorage is an in-memory implementation of Storage.
type MemoryStorage struct {
	items map[string]string
	mu    sync.RWMutex
}

// NewMemoryStorage creates an empty MemoryStorage.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		items: make(map[string]string),
	}
}

// GetItem returns the value stored under key.
func (s *MemoryStorage) GetItem(key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.items[key]
	return v, ok, nil
}

// SetItem stores value under key.
func (s *MemoryStorage) SetItem(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items[key] = value
	return nil
}

// RemoveItem deletes key. Removing a missing key is not an error.
func (s *MemoryStorage) RemoveItem(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.items, key)
	return nil
}

func (s *MemoryStorage) Close() error { return nil }
