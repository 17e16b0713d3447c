package api

import (
	"context"

	"motoparts/internal/models"
)

// Products fetches the full catalog: GET /products.
func (c *Client) Products(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	if err := c.get(ctx, "/products", nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// Product fetches one product: GET /products/:id.
func (c *Client) Product(ctx context.Context, id string) (*models.Product, error) {
	var product models.Product
	if err := c.get(ctx, "/products/"+escape(id), nil, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// CreateProduct: POST /products/manage.
func (c *Client) CreateProduct(ctx context.Context, in models.ProductInput) (*models.Product, error) {
	var product models.Product
	if err := c.post(ctx, "/products/manage", in, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// UpdateProduct: PATCH /products/:id.
func (c *Client) UpdateProduct(ctx context.Context, id string, in models.ProductInput) (*models.Product, error) {
	var product models.Product
	if err := c.patch(ctx, "/products/"+escape(id), in, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// DeleteProduct: DELETE /products/:id.
func (c *Client) DeleteProduct(ctx context.Context, id string) error {
	return c.delete(ctx, "/products/"+escape(id), nil, nil)
}

// Categories: GET /categories.
func (c *Client) Categories(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	if err := c.get(ctx, "/categories", nil, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

// CreateCategory: POST /categories.
func (c *Client) CreateCategory(ctx context.Context, name string) (*models.Category, error) {
	var category models.Category
	if err := c.post(ctx, "/categories", map[string]string{"name": name}, &category); err != nil {
		return nil, err
	}
	return &category, nil
}

// SubCategories lists the subcategories of one category: GET /subcategories/:categoryId.
func (c *Client) SubCategories(ctx context.Context, categoryID string) ([]models.SubCategory, error) {
	var subs []models.SubCategory
	if err := c.get(ctx, "/subcategories/"+escape(categoryID), nil, &subs); err != nil {
		return nil, err
	}
	return subs, nil
}

// CreateSubCategory: POST /subcategories.
func (c *Client) CreateSubCategory(ctx context.Context, name, categoryID string) (*models.SubCategory, error) {
	var sub models.SubCategory
	body := map[string]string{"name": name, "category": categoryID}
	if err := c.post(ctx, "/subcategories", body, &sub); err != nil {
		return nil, err
	}
	return &sub, nil
}
