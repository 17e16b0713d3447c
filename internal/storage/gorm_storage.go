package storage

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// Item is one stored key/value row.
type Item struct {
	Key       string `gorm:"column:item_key;primaryKey;type:varchar(128)"`
	Value     string `gorm:"type:text"`
	UpdatedAt time.Time
}

// TableName keeps the table name stable across drivers.
func (Item) TableName() string { return "local_items" }

// GORMStorage is a GORM implementation of Storage.
type GORMStorage struct {
	db *gorm.DB
}

// OpenGORM connects with the sqlite or postgres driver and migrates the table.
func OpenGORM(driver, dsn string) (*GORMStorage, error) {
	var dialector gorm.Dialector
	switch driver {
	case DriverSQLite:
		dialector = sqlite.Open(dsn)
	case DriverPostgres:
		dialector = postgres.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported GORM driver %q", driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		return nil, fmt.Errorf("failed to open %s storage: %w", driver, err)
	}
	return NewGORMStorage(db)
}

// NewGORMStorage wraps an existing connection.
func NewGORMStorage(db *gorm.DB) (*GORMStorage, error) {
	if err := db.AutoMigrate(&Item{}); err != nil {
		return nil, fmt.Errorf("failed to migrate storage: %w", err)
	}
	return &GORMStorage{db: db}, nil
}

// GetItem returns the value stored under key.
func (s *GORMStorage) GetItem(key string) (string, bool, error) {
	var item Item
	if err := s.db.First(&item, "item_key = ?", key).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("failed to read %s: %w", key, err)
	}
	return item.Value, true, nil
}

// SetItem upserts value under key.
func (s *GORMStorage) SetItem(key, value string) error {
	item := Item{Key: key, Value: value, UpdatedAt: time.Now()}
	err := s.db.Clauses(clause.OnConflict{UpdateAll: true}).Create(&item).Error
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}

// RemoveItem deletes key. Removing a missing key is not an error.
func (s *GORMStorage) RemoveItem(key string) error {
	if err := s.db.Delete(&Item{}, "item_key = ?", key).Error; err != nil {
		return fmt.Errorf("failed to remove %s: %w", key, err)
	}
	return nil
}

// Close releases the underlying connection pool.
func (s *GORMStorage) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
