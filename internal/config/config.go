// Package config reads settings from the environment through viper.
package config

import (
	"time"

	"github.com/spf13/viper"
)

// Client is the storefront CLI configuration.
type Client struct {
	APIURL            string
	StorageDriver     string
	StorageDSN        string
	HTTPTimeout       time.Duration
	MergeCartOnLogin  bool
	LogLevel          string
	LowStockThreshold int
}

// Sandbox is the configuration of the sandbox API server.
type Sandbox struct {
	AppPort     string
	JWTSecret   string
	TokenTTL    time.Duration
	DatabaseDSN string
	RabbitMQURL string
	LogLevel    string
}

// New returns a viper instance with every default set and the environment
// bound.
func New() *viper.Viper {
	v := viper.New()
	v.SetDefault("API_URL", "http://localhost:8080/api")
	v.SetDefault("STORAGE_DRIVER", "sqlite")
	v.SetDefault("STORAGE_DSN", "motoparts.db")
	v.SetDefault("HTTP_TIMEOUT", 0)
	v.SetDefault("CART_MERGE_ON_LOGIN", false)
	v.SetDefault("LOW_STOCK_THRESHOLD", 5)
	v.SetDefault("LOG_LEVEL", "info")

	v.SetDefault("APP_PORT", ":8080")
	v.SetDefault("JWT_SECRET", "sandbox-secret")
	v.SetDefault("TOKEN_TTL", 24*time.Hour)
	v.SetDefault("DATABASE_DSN", "file::memory:?cache=shared")
	v.SetDefault("RABBITMQ_URL", "")
	v.AutomaticEnv()
	return v
}

// LoadClient reads the CLI settings from v.
func LoadClient(v *viper.Viper) Client {
	return Client{
		APIURL:            v.GetString("API_URL"),
		StorageDriver:     v.GetString("STORAGE_DRIVER"),
		StorageDSN:        v.GetString("STORAGE_DSN"),
		HTTPTimeout:       v.GetDuration("HTTP_TIMEOUT"),
		MergeCartOnLogin:  v.GetBool("CART_MERGE_ON_LOGIN"),
		LogLevel:          v.GetString("LOG_LEVEL"),
		LowStockThreshold: v.GetInt("LOW_STOCK_THRESHOLD"),
	}
}

// LoadSandbox reads the sandbox server settings from v.
func LoadSandbox(v *viper.Viper) Sandbox {
	return Sandbox{
		AppPort:     v.GetString("APP_PORT"),
		JWTSecret:   v.GetString("JWT_SECRET"),
		TokenTTL:    v.GetDuration("TOKEN_TTL"),
		DatabaseDSN: v.GetString("DATABASE_DSN"),
		RabbitMQURL: v.GetString("RABBITMQ_URL"),
		LogLevel:    v.GetString("LOG_LEVEL"),
	}
}
