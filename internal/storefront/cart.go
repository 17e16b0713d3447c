package storefront

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"motoparts/internal/api"
	"motoparts/internal/models"
	"motoparts/internal/session"
	"motoparts/internal/state"
)

func (s *Storefront) cartKey() (string, error) {
	return s.resolver.CartKey(s.CurrentUser())
}

// applyCart runs call with the current cart key and stores the cart it
// returns, unless a newer cart response has been applied meanwhile.
func (s *Storefront) applyCart(ctx context.Context, op string, call func(ctx context.Context, key string) (*models.Cart, error)) (*models.Cart, error) {
	key, err := s.cartKey()
	if err != nil {
		return nil, err
	}
	seq := s.store.NextCartSeq()
	s.begin(state.SliceCart)
	cart, err := call(ctx, key)
	if err != nil {
		return nil, s.fail(state.SliceCart, op, err, "Cart update failed")
	}
	s.store.Dispatch(state.CartLoaded{Cart: cart, Seq: seq})
	return cart, nil
}

// Cart returns the cart currently held in state.
func (s *Storefront) Cart() *models.Cart {
	return s.store.State().Cart
}

// FetchCart loads the cart for the current scope.
func (s *Storefront) FetchCart(ctx context.Context) (*models.Cart, error) {
	return s.applyCart(ctx, "fetch cart", s.api.Cart)
}

// AddToCart adds quantity units of a product.
func (s *Storefront) AddToCart(ctx context.Context, productID string, quantity int) (*models.Cart, error) {
	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}
	return s.applyCart(ctx, "add to cart", func(ctx context.Context, key string) (*models.Cart, error) {
		return s.api.AddToCart(ctx, key, productID, quantity)
	})
}

// SetQuantity sets a line's quantity. Anything below 1 removes the line.
func (s *Storefront) SetQuantity(ctx context.Context, productID string, quantity int) (*models.Cart, error) {
	if quantity < 1 {
		return s.RemoveFromCart(ctx, productID)
	}
	return s.applyCart(ctx, "update cart", func(ctx context.Context, key string) (*models.Cart, error) {
		return s.api.UpdateCartItem(ctx, key, productID, quantity)
	})
}

// Increment adds one unit, creating the line if needed.
func (s *Storefront) Increment(ctx context.Context, productID string) (*models.Cart, error) {
	item, ok := s.Cart().Item(productID)
	if !ok {
		return s.AddToCart(ctx, productID, 1)
	}
	return s.SetQuantity(ctx, productID, item.Quantity+1)
}

// Decrement removes one unit; the line is removed instead of reaching zero.
func (s *Storefront) Decrement(ctx context.Context, productID string) (*models.Cart, error) {
	item, ok := s.Cart().Item(productID)
	if !ok {
		return nil, ErrNotInCart
	}
	return s.SetQuantity(ctx, productID, item.Quantity-1)
}

// RemoveFromCart drops a line.
func (s *Storefront) RemoveFromCart(ctx context.Context, productID string) (*models.Cart, error) {
	return s.applyCart(ctx, "remove from cart", func(ctx context.Context, key string) (*models.Cart, error) {
		return s.api.RemoveCartItem(ctx, key, productID)
	})
}

// ClearCart empties the cart.
func (s *Storefront) ClearCart(ctx context.Context) error {
	key, err := s.cartKey()
	if err != nil {
		return err
	}
	seq := s.store.NextCartSeq()
	s.begin(state.SliceCart)
	if err := s.api.ClearCart(ctx, key); err != nil {
		return s.fail(state.SliceCart, "clear cart", err, "Could not clear cart")
	}
	s.store.Dispatch(state.CartCleared{Seq: seq})
	return nil
}

// mergeGuestCart re-adds every guest line to the user's cart, then clears
// the guest cart and forgets its id.
func (s *Storefront) mergeGuestCart(ctx context.Context, user models.User) error {
	guest, ok, err := s.resolver.StoredGuest()
	if err != nil || !ok {
		return err
	}
	guestCart, err := s.api.Cart(ctx, guest.CartKey())
	if err != nil && !errors.Is(err, api.ErrNotFound) {
		return fmt.Errorf("failed to load guest cart: %w", err)
	}

	userKey := session.Authenticated(user.ID).CartKey()
	if guestCart != nil {
		for _, item := range guestCart.Items {
			if _, err := s.api.AddToCart(ctx, userKey, item.Product.ID, item.Quantity); err != nil {
				return fmt.Errorf("failed to move %s into user cart: %w", item.Product.ID, err)
			}
		}
		if len(guestCart.Items) > 0 {
			if err := s.api.ClearCart(ctx, guest.CartKey()); err != nil {
				s.logger.Warn("failed to clear merged guest cart", zap.Error(err))
			}
		}
	}
	if err := s.resolver.ForgetGuest(); err != nil {
		return err
	}
	_, err = s.FetchCart(ctx)
	return err
}
