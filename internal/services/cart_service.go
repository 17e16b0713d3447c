package services

import (
	"errors"
	"fmt"

	"motoparts/internal/models"
	"motoparts/internal/repositories"
)

// CartService manages carts keyed by the client's cart key.
type CartService struct {
	carts    repositories.CartRepository
	products repositories.ProductRepository
}

// NewCartService creates a new CartService.
func NewCartService(carts repositories.CartRepository, products repositories.ProductRepository) *CartService {
	return &CartService{carts: carts, products: products}
}

// GetCart returns the cart stored under cartID, or an empty one.
func (s *CartService) GetCart(cartID string) (*models.Cart, error) {
	cart, err := s.carts.Get(cartID)
	if errors.Is(err, repositories.ErrNotFound) {
		return withTotal(&models.Cart{CartID: cartID, Items: []models.CartItem{}}), nil
	}
	if err != nil {
		return nil, err
	}
	return withTotal(cart), nil
}

// AddItem adds quantity units of a product, capturing its current price.
func (s *CartService) AddItem(cartID, productID string, quantity int) (*models.Cart, error) {
	if quantity < 1 {
		return nil, fmt.Errorf("%w: quantity must be at least 1", ErrInvalidInput)
	}
	product, err := s.products.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if !product.IsActive {
		return nil, fmt.Errorf("%w: %s is not available", ErrInvalidInput, product.Name)
	}
	cart, err := s.GetCart(cartID)
	if err != nil {
		return nil, err
	}

	i := indexOf(cart, productID)
	want := quantity
	if i >= 0 {
		want += cart.Items[i].Quantity
	}
	if want > product.Stock {
		return nil, fmt.Errorf("%w: only %d of %s in stock", ErrInvalidInput, product.Stock, product.Name)
	}
	if i >= 0 {
		cart.Items[i].Quantity = want
		cart.Items[i].Product = *product
	} else {
		cart.Items = append(cart.Items, models.CartItem{Product: *product, Quantity: quantity, Price: product.Price})
	}
	return s.save(cart)
}

// UpdateItem sets the quantity of a line already in the cart.
func (s *CartService) UpdateItem(cartID, productID string, quantity int) (*models.Cart, error) {
	if quantity < 1 {
		return nil, fmt.Errorf("%w: quantity must be at least 1", ErrInvalidInput)
	}
	cart, err := s.GetCart(cartID)
	if err != nil {
		return nil, err
	}
	i := indexOf(cart, productID)
	if i < 0 {
		return nil, fmt.Errorf("product %s in cart: %w", productID, repositories.ErrNotFound)
	}
	product, err := s.products.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if quantity > product.Stock {
		return nil, fmt.Errorf("%w: only %d of %s in stock", ErrInvalidInput, product.Stock, product.Name)
	}
	cart.Items[i].Quantity = quantity
	return s.save(cart)
}

// RemoveItem drops a line.
func (s *CartService) RemoveItem(cartID, productID string) (*models.Cart, error) {
	cart, err := s.GetCart(cartID)
	if err != nil {
		return nil, err
	}
	i := indexOf(cart, productID)
	if i < 0 {
		return nil, fmt.Errorf("product %s in cart: %w", productID, repositories.ErrNotFound)
	}
	cart.Items = append(cart.Items[:i], cart.Items[i+1:]...)
	return s.save(cart)
}

// Clear deletes the cart.
func (s *CartService) Clear(cartID string) error {
	return s.carts.Delete(cartID)
}

func (s *CartService) save(cart *models.Cart) (*models.Cart, error) {
	withTotal(cart)
	if err := s.carts.Save(cart); err != nil {
		return nil, fmt.Errorf("failed to save cart: %w", err)
	}
	return cart, nil
}

func indexOf(cart *models.Cart, productID string) int {
	for i, item := range cart.Items {
		if item.Product.ID == productID {
			return i
		}
	}
	return -1
}

func withTotal(cart *models.Cart) *models.Cart {
	total := models.SumItems(cart.Items).InexactFloat64()
	cart.TotalAmount = &total
	return cart
}
