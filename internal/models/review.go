package models

import "time"

// ReviewAuthor is the populated author of a review.
type ReviewAuthor struct {
	ID   string `json:"_id"`
	Name string `json:"name"`
}

// Review is a customer rating of a product.
type Review struct {
	ID        string       `json:"_id"`
	Rating    int          `json:"rating"`
	Comment   string       `json:"comment"`
	CreatedAt time.Time    `json:"createdAt"`
	UpdatedAt time.Time    `json:"updatedAt"`
	User      ReviewAuthor `json:"user"`
	Product   string       `json:"product"`
}

// ReviewInput is the body for creating (with ProductID) or updating a review.
type ReviewInput struct {
	ProductID string `json:"productId,omitempty"`
	Rating    int    `json:"rating" validate:"required,min=1,max=5"`
	Comment   string `json:"comment" validate:"omitempty,max=1000"`
}

// Wishlist is the signed-in user's saved products.
type Wishlist struct {
	Products []Product `json:"products"`
}
