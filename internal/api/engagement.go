package api

import (
	"context"

	"motoparts/internal/models"
)

// ProductReviews: GET /reviews/product/:productId.
func (c *Client) ProductReviews(ctx context.Context, productID string) ([]models.Review, error) {
	var reviews []models.Review
	if err := c.get(ctx, "/reviews/product/"+escape(productID), nil, &reviews); err != nil {
		return nil, err
	}
	return reviews, nil
}

// CreateReview: POST /reviews.
func (c *Client) CreateReview(ctx context.Context, in models.ReviewInput) (*models.Review, error) {
	var review models.Review
	if err := c.post(ctx, "/reviews", in, &review); err != nil {
		return nil, err
	}
	return &review, nil
}

// UpdateReview: PATCH /reviews/:id.
func (c *Client) UpdateReview(ctx context.Context, id string, in models.ReviewInput) (*models.Review, error) {
	in.ProductID = ""
	var review models.Review
	if err := c.patch(ctx, "/reviews/"+escape(id), in, &review); err != nil {
		return nil, err
	}
	return &review, nil
}

// DeleteReview: DELETE /reviews/:id.
func (c *Client) DeleteReview(ctx context.Context, id string) error {
	return c.delete(ctx, "/reviews/"+escape(id), nil, nil)
}

// Wishlist: GET /wishlists.
func (c *Client) Wishlist(ctx context.Context) (*models.Wishlist, error) {
	var w models.Wishlist
	if err := c.get(ctx, "/wishlists", nil, &w); err != nil {
		return nil, err
	}
	return &w, nil
}

// AddToWishlist: POST /wishlists.
func (c *Client) AddToWishlist(ctx context.Context, productID string) (*models.Wishlist, error) {
	var w models.Wishlist
	if err := c.post(ctx, "/wishlists", map[string]string{"productId": productID}, &w); err != nil {
		return nil, err
	}
	return &w, nil
}

// RemoveFromWishlist: DELETE /wishlists/:productId.
func (c *Client) RemoveFromWishlist(ctx context.Context, productID string) (*models.Wishlist, error) {
	var w models.Wishlist
	if err := c.delete(ctx, "/wishlists/"+escape(productID), nil, &w); err != nil {
		return nil, err
	}
	return &w, nil
}

// ClearWishlist: DELETE /wishlists.
func (c *Client) ClearWishlist(ctx context.Context) error {
	return c.delete(ctx, "/wishlists", nil, nil)
}
