package services

import (
	"errors"
	"fmt"

	"motoparts/internal/models"
	"motoparts/internal/repositories"
)

// EngagementService handles product reviews and wishlists.
type EngagementService struct {
	reviews   repositories.ReviewRepository
	wishlists repositories.WishlistRepository
	products  repositories.ProductRepository
}

// NewEngagementService creates a new EngagementService.
func NewEngagementService(reviews repositories.ReviewRepository, wishlists repositories.WishlistRepository, products repositories.ProductRepository) *EngagementService {
	return &EngagementService{reviews: reviews, wishlists: wishlists, products: products}
}

// ProductReviews lists the reviews of a product, newest first.
func (s *EngagementService) ProductReviews(productID string) ([]models.Review, error) {
	return s.reviews.GetByProduct(productID)
}

// CreateReview stores a review and refreshes the product's rating.
func (s *EngagementService) CreateReview(user *models.User, in models.ReviewInput) (*models.Review, error) {
	if in.ProductID == "" {
		return nil, fmt.Errorf("%w: productId is required", ErrInvalidInput)
	}
	if _, err := s.products.GetByID(in.ProductID); err != nil {
		return nil, err
	}
	review := &models.Review{
		Rating:  in.Rating,
		Comment: in.Comment,
		User:    models.ReviewAuthor{ID: user.ID, Name: user.Name},
		Product: in.ProductID,
	}
	if err := s.reviews.Create(review); err != nil {
		return nil, err
	}
	return review, s.refreshRating(review.Product)
}

// UpdateReview lets the author change rating and comment.
func (s *EngagementService) UpdateReview(user *models.User, id string, in models.ReviewInput) (*models.Review, error) {
	review, err := s.reviews.GetByID(id)
	if err != nil {
		return nil, err
	}
	if review.User.ID != user.ID {
		return nil, fmt.Errorf("%w: review %s belongs to another user", ErrForbidden, id)
	}
	review.Rating = in.Rating
	review.Comment = in.Comment
	if err := s.reviews.Update(review); err != nil {
		return nil, err
	}
	return review, s.refreshRating(review.Product)
}

// DeleteReview removes a review; its author and admins may do so.
func (s *EngagementService) DeleteReview(user *models.User, id string) error {
	review, err := s.reviews.GetByID(id)
	if err != nil {
		return err
	}
	if review.User.ID != user.ID && !user.Role.IsAdmin() {
		return fmt.Errorf("%w: review %s belongs to another user", ErrForbidden, id)
	}
	if err := s.reviews.Delete(id); err != nil {
		return err
	}
	return s.refreshRating(review.Product)
}

func (s *EngagementService) refreshRating(productID string) error {
	product, err := s.products.GetByID(productID)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	reviews, err := s.reviews.GetByProduct(productID)
	if err != nil {
		return err
	}
	n := len(reviews)
	product.NumReviews = &n
	product.Rating = nil
	if n > 0 {
		sum := 0
		for _, r := range reviews {
			sum += r.Rating
		}
		avg := float64(sum) / float64(n)
		product.Rating = &avg
	}
	return s.products.Update(product)
}

// Wishlist returns the saved products of a user, skipping deleted ones.
func (s *EngagementService) Wishlist(userID string) (*models.Wishlist, error) {
	ids, err := s.wishlists.Get(userID)
	if err != nil {
		return nil, err
	}
	w := &models.Wishlist{Products: make([]models.Product, 0, len(ids))}
	for _, id := range ids {
		product, err := s.products.GetByID(id)
		if errors.Is(err, repositories.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		w.Products = append(w.Products, *product)
	}
	return w, nil
}

// AddToWishlist saves a product.
func (s *EngagementService) AddToWishlist(userID, productID string) (*models.Wishlist, error) {
	if _, err := s.products.GetByID(productID); err != nil {
		return nil, err
	}
	if err := s.wishlists.Add(userID, productID); err != nil {
		return nil, err
	}
	return s.Wishlist(userID)
}

// RemoveFromWishlist drops a saved product.
func (s *EngagementService) RemoveFromWishlist(userID, productID string) (*models.Wishlist, error) {
	if err := s.wishlists.Remove(userID, productID); err != nil {
		return nil, err
	}
	return s.Wishlist(userID)
}

// ClearWishlist empties a wishlist.
func (s *EngagementService) ClearWishlist(userID string) error {
	return s.wishlists.Clear(userID)
}
