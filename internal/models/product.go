package models

import "time"

// Category groups products in the catalog.
type Category struct {
	ID       string `json:"_id"`
	Name     string `json:"name" validate:"required,min=2,max=100"`
	IsActive bool   `json:"isActive"`
}

func (c Category) RefID() string   { return c.ID }
func (c Category) RefName() string { return c.Name }

// SubCategory belongs to exactly one Category.
type SubCategory struct {
	ID       string `json:"_id"`
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Category string `json:"category" validate:"required"`
	IsActive bool   `json:"isActive"`
}

func (s SubCategory) RefID() string   { return s.ID }
func (s SubCategory) RefName() string { return s.Name }

// Product represents a spare part listed in the store.
type Product struct {
	ID          string           `json:"_id" gorm:"primaryKey;type:varchar(36)"`
	Name        string           `json:"name" gorm:"type:varchar(100)"`
	Description string           `json:"description" gorm:"type:text"`
	Price       float64          `json:"price"`
	OldPrice    *float64         `json:"oldPrice,omitempty"`
	Stock       int              `json:"stock"`
	Images      []string         `json:"images" gorm:"type:text;serializer:json"`
	Category    Ref[Category]    `json:"category,omitzero" gorm:"type:text;serializer:json"`
	SubCategory Ref[SubCategory] `json:"subCategory,omitzero" gorm:"type:text;serializer:json"`
	Brand       string           `json:"brand" gorm:"index;type:varchar(100)"`
	Condition   string           `json:"condition" gorm:"type:varchar(20)"`
	IsActive    bool             `json:"isActive"`
	SKU         string           `json:"sku" gorm:"type:varchar(64)"`
	CreatedBy   string           `json:"createdBy,omitempty" gorm:"type:varchar(36)"`
	CreatedAt   *time.Time       `json:"createdAt,omitempty"`
	UpdatedAt   *time.Time       `json:"updatedAt,omitempty"`
	Rating      *float64         `json:"rating,omitempty"`
	NumReviews  *int             `json:"numReviews,omitempty"`
}

// InStock reports whether at least one unit is available.
func (p Product) InStock() bool {
	return p.Stock > 0
}

// ProductInput is the admin payload for creating or updating a product.
type ProductInput struct {
	Name        string   `json:"name" validate:"required,min=3,max=100"`
	Description string   `json:"description" validate:"omitempty,max=2000"`
	Price       float64  `json:"price" validate:"required,gt=0"`
	OldPrice    *float64 `json:"oldPrice,omitempty" validate:"omitempty,gtfield=Price"`
	Stock       int      `json:"stock" validate:"gte=0"`
	Images      []string `json:"images" validate:"omitempty,dive,url"`
	Category    string   `json:"category" validate:"required"`
	SubCategory string   `json:"subCategory,omitempty"`
	Brand       string   `json:"brand" validate:"omitempty,max=100"`
	Condition   string   `json:"condition" validate:"omitempty,oneof=new used refurbished"`
	IsActive    bool     `json:"isActive"`
	SKU         string   `json:"sku" validate:"omitempty,max=64"`
}
