package storefront

import (
	"context"
	"slices"

	"motoparts/internal/models"
	"motoparts/internal/state"
)

// FetchWishlist loads the signed-in user's wishlist.
func (s *Storefront) FetchWishlist(ctx context.Context) ([]models.Product, error) {
	if _, err := s.RequireAuth(); err != nil {
		return nil, err
	}
	return s.applyWishlist(ctx, "fetch wishlist", s.api.Wishlist)
}

// AddToWishlist saves a product for later.
func (s *Storefront) AddToWishlist(ctx context.Context, productID string) ([]models.Product, error) {
	if _, err := s.RequireAuth(); err != nil {
		return nil, err
	}
	return s.applyWishlist(ctx, "add to wishlist", func(ctx context.Context) (*models.Wishlist, error) {
		return s.api.AddToWishlist(ctx, productID)
	})
}

// RemoveFromWishlist drops a saved product.
func (s *Storefront) RemoveFromWishlist(ctx context.Context, productID string) ([]models.Product, error) {
	if _, err := s.RequireAuth(); err != nil {
		return nil, err
	}
	return s.applyWishlist(ctx, "remove from wishlist", func(ctx context.Context) (*models.Wishlist, error) {
		return s.api.RemoveFromWishlist(ctx, productID)
	})
}

// ToggleWishlist adds the product when absent and removes it otherwise.
func (s *Storefront) ToggleWishlist(ctx context.Context, productID string) ([]models.Product, error) {
	if s.InWishlist(productID) {
		return s.RemoveFromWishlist(ctx, productID)
	}
	return s.AddToWishlist(ctx, productID)
}

// InWishlist reports whether the product is in the wishlist held in state.
func (s *Storefront) InWishlist(productID string) bool {
	return slices.ContainsFunc(s.store.State().Wishlist, func(p models.Product) bool {
		return p.ID == productID
	})
}

// ClearWishlist empties the wishlist.
func (s *Storefront) ClearWishlist(ctx context.Context) error {
	if _, err := s.RequireAuth(); err != nil {
		return err
	}
	s.begin(state.SliceWishlist)
	if err := s.api.ClearWishlist(ctx); err != nil {
		return s.fail(state.SliceWishlist, "clear wishlist", err, "Failed to clear wishlist")
	}
	s.store.Dispatch(state.WishlistCleared{})
	return nil
}

func (s *Storefront) applyWishlist(ctx context.Context, op string, call func(ctx context.Context) (*models.Wishlist, error)) ([]models.Product, error) {
	s.begin(state.SliceWishlist)
	w, err := call(ctx)
	if err != nil {
		return nil, s.fail(state.SliceWishlist, op, err, "Wishlist update failed")
	}
	var products []models.Product
	if w != nil {
		products = w.Products
	}
	s.store.Dispatch(state.WishlistLoaded{Products: products})
	return products, nil
}

// FetchReviews loads the reviews of one product, newest first as served.
func (s *Storefront) FetchReviews(ctx context.Context, productID string) ([]models.Review, error) {
	s.begin(state.SliceReviews)
	reviews, err := s.api.ProductReviews(ctx, productID)
	if err != nil {
		return nil, s.fail(state.SliceReviews, "fetch reviews", err, "Failed to load reviews")
	}
	s.store.Dispatch(state.ReviewsLoaded{Reviews: reviews})
	return reviews, nil
}

// AddReview posts a review; it is shown first.
func (s *Storefront) AddReview(ctx context.Context, productID string, rating int, comment string) (*models.Review, error) {
	if _, err := s.RequireAuth(); err != nil {
		return nil, err
	}
	in := models.ReviewInput{ProductID: productID, Rating: rating, Comment: comment}
	if err := s.check(in); err != nil {
		return nil, err
	}
	s.begin(state.SliceReviews)
	review, err := s.api.CreateReview(ctx, in)
	if err != nil {
		return nil, s.fail(state.SliceReviews, "add review", err, "Failed to add review")
	}
	s.store.Dispatch(state.ReviewAdded{Review: *review})
	return review, nil
}

// UpdateReview edits the rating and comment of a review.
func (s *Storefront) UpdateReview(ctx context.Context, id string, rating int, comment string) (*models.Review, error) {
	if _, err := s.RequireAuth(); err != nil {
		return nil, err
	}
	in := models.ReviewInput{Rating: rating, Comment: comment}
	if err := s.check(in); err != nil {
		return nil, err
	}
	s.begin(state.SliceReviews)
	review, err := s.api.UpdateReview(ctx, id, in)
	if err != nil {
		return nil, s.fail(state.SliceReviews, "update review", err, "Failed to update review")
	}
	s.store.Dispatch(state.ReviewUpdated{Review: *review})
	return review, nil
}

// DeleteReview removes a review.
func (s *Storefront) DeleteReview(ctx context.Context, id string) error {
	if _, err := s.RequireAuth(); err != nil {
		return err
	}
	s.begin(state.SliceReviews)
	if err := s.api.DeleteReview(ctx, id); err != nil {
		return s.fail(state.SliceReviews, "delete review", err, "Failed to delete review")
	}
	s.store.Dispatch(state.ReviewDeleted{ID: id})
	return nil
}

// ClearReviews forgets the reviews held in state, e.g. when leaving a product page.
func (s *Storefront) ClearReviews() {
	s.store.Dispatch(state.ReviewsCleared{})
}
