package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"motoparts/internal/models"
	"motoparts/internal/repositories"
	"motoparts/internal/services"
)

func newEngagementService(t *testing.T) (*services.EngagementService, *repositories.MockProductRepository) {
	t.Helper()
	products := repositories.NewMockProductRepository()
	seedProduct(t, products, "p1", 100, 5)
	seedProduct(t, products, "p2", 200, 5)
	return services.NewEngagementService(repositories.NewMockReviewRepository(), repositories.NewMockWishlistRepository(), products), products
}

func TestEngagementService_ReviewsUpdateRating(t *testing.T) {
	service, products := newEngagementService(t)

	review, err := service.CreateReview(customer, models.ReviewInput{ProductID: "p1", Rating: 5, Comment: "Fits my Boxer"})
	require.NoError(t, err)
	assert.Equal(t, "Jane", review.User.Name)

	_, err = service.CreateReview(stranger, models.ReviewInput{ProductID: "p1", Rating: 2})
	require.NoError(t, err)

	p, err := products.GetByID("p1")
	require.NoError(t, err)
	require.NotNil(t, p.Rating)
	assert.Equal(t, 3.5, *p.Rating)
	assert.Equal(t, 2, *p.NumReviews)

	// One review per user and product.
	_, err = service.CreateReview(customer, models.ReviewInput{ProductID: "p1", Rating: 1})
	assert.ErrorIs(t, err, repositories.ErrDuplicate)

	_, err = service.CreateReview(customer, models.ReviewInput{Rating: 4})
	assert.ErrorIs(t, err, services.ErrInvalidInput)
	_, err = service.CreateReview(customer, models.ReviewInput{ProductID: "missing", Rating: 4})
	assert.ErrorIs(t, err, repositories.ErrNotFound)

	reviews, err := service.ProductReviews("p1")
	require.NoError(t, err)
	assert.Len(t, reviews, 2)
}

func TestEngagementService_ReviewOwnership(t *testing.T) {
	service, products := newEngagementService(t)

	review, err := service.CreateReview(customer, models.ReviewInput{ProductID: "p1", Rating: 4})
	require.NoError(t, err)

	_, err = service.UpdateReview(stranger, review.ID, models.ReviewInput{Rating: 1})
	assert.ErrorIs(t, err, services.ErrForbidden)
	_, err = service.UpdateReview(admin, review.ID, models.ReviewInput{Rating: 1})
	assert.ErrorIs(t, err, services.ErrForbidden)

	updated, err := service.UpdateReview(customer, review.ID, models.ReviewInput{Rating: 2, Comment: "Wore out fast"})
	require.NoError(t, err)
	assert.Equal(t, 2, updated.Rating)

	assert.ErrorIs(t, service.DeleteReview(stranger, review.ID), services.ErrForbidden)
	require.NoError(t, service.DeleteReview(admin, review.ID))

	p, err := products.GetByID("p1")
	require.NoError(t, err)
	assert.Nil(t, p.Rating)
	assert.Equal(t, 0, *p.NumReviews)

	assert.ErrorIs(t, service.DeleteReview(customer, review.ID), repositories.ErrNotFound)
}

func TestEngagementService_Wishlist(t *testing.T) {
	service, products := newEngagementService(t)

	w, err := service.Wishlist(customer.ID)
	require.NoError(t, err)
	assert.Empty(t, w.Products)

	_, err = service.AddToWishlist(customer.ID, "p2")
	require.NoError(t, err)
	w, err = service.AddToWishlist(customer.ID, "p1")
	require.NoError(t, err)
	w, err = service.AddToWishlist(customer.ID, "p1")
	require.NoError(t, err)
	require.Len(t, w.Products, 2)
	assert.Equal(t, "p2", w.Products[0].ID)

	_, err = service.AddToWishlist(customer.ID, "missing")
	assert.ErrorIs(t, err, repositories.ErrNotFound)

	// Deleted products drop out of the list.
	require.NoError(t, products.Delete("p2"))
	w, err = service.Wishlist(customer.ID)
	require.NoError(t, err)
	require.Len(t, w.Products, 1)
	assert.Equal(t, "p1", w.Products[0].ID)

	w, err = service.RemoveFromWishlist(customer.ID, "p1")
	require.NoError(t, err)
	assert.Empty(t, w.Products)

	_, err = service.AddToWishlist(customer.ID, "p1")
	require.NoError(t, err)
	require.NoError(t, service.ClearWishlist(customer.ID))
	w, err = service.Wishlist(customer.ID)
	require.NoError(t, err)
	assert.Empty(t, w.Products)

	other, err := service.Wishlist(stranger.ID)
	require.NoError(t, err)
	assert.Empty(t, other.Products)
}
