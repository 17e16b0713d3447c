package services

import (
	"fmt"
	"strings"
	"time"

	"motoparts/internal/models"
	"motoparts/internal/repositories"
)

// ProductService handles the catalog: products, categories and subcategories.
type ProductService struct {
	repo       repositories.ProductRepository
	categories repositories.CategoryRepository
}

// NewProductService creates a new ProductService.
func NewProductService(repo repositories.ProductRepository, categories repositories.CategoryRepository) *ProductService {
	return &ProductService{
		repo:       repo,
		categories: categories,
	}
}

// GetAllProducts retrieves all products.
func (s *ProductService) GetAllProducts() ([]models.Product, error) {
	return s.repo.GetAll()
}

// GetProductByID retrieves a single product by its ID.
func (s *ProductService) GetProductByID(id string) (*models.Product, error) {
	return s.repo.GetByID(id)
}

// CreateProduct stores a new product with its category populated.
func (s *ProductService) CreateProduct(in models.ProductInput, createdBy string) (*models.Product, error) {
	product := &models.Product{CreatedBy: createdBy}
	if err := s.apply(product, in); err != nil {
		return nil, err
	}
	now := time.Now()
	product.CreatedAt = &now
	product.UpdatedAt = &now
	if err := s.repo.Create(product); err != nil {
		return nil, err
	}
	return product, nil
}

// UpdateProduct replaces the editable fields of a product.
func (s *ProductService) UpdateProduct(id string, in models.ProductInput) (*models.Product, error) {
	product, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if err := s.apply(product, in); err != nil {
		return nil, err
	}
	now := time.Now()
	product.UpdatedAt = &now
	if err := s.repo.Update(product); err != nil {
		return nil, err
	}
	return product, nil
}

func (s *ProductService) apply(p *models.Product, in models.ProductInput) error {
	if in.OldPrice != nil && *in.OldPrice <= in.Price {
		return fmt.Errorf("%w: old price must be greater than price", ErrInvalidInput)
	}
	category, err := s.categories.GetCategory(in.Category)
	if err != nil {
		return err
	}
	p.SubCategory = models.Ref[models.SubCategory]{}
	if in.SubCategory != "" {
		sub, err := s.categories.GetSubCategory(in.SubCategory)
		if err != nil {
			return err
		}
		if sub.Category != category.ID {
			return fmt.Errorf("%w: subcategory %s is not in category %s", ErrInvalidInput, sub.ID, category.ID)
		}
		p.SubCategory = models.PopulatedRef(*sub)
	}

	p.Name = strings.TrimSpace(in.Name)
	p.Description = in.Description
	p.Price = in.Price
	p.OldPrice = in.OldPrice
	p.Stock = in.Stock
	p.Images = in.Images
	p.Category = models.PopulatedRef(*category)
	p.Brand = in.Brand
	p.Condition = in.Condition
	p.IsActive = in.IsActive
	p.SKU = in.SKU
	return nil
}

// DeleteProduct deletes a product by its ID.
func (s *ProductService) DeleteProduct(id string) error {
	return s.repo.Delete(id)
}

// Categories lists all categories.
func (s *ProductService) Categories() ([]models.Category, error) {
	return s.categories.Categories()
}

// CreateCategory adds an active category.
func (s *ProductService) CreateCategory(name string) (*models.Category, error) {
	c := &models.Category{Name: strings.TrimSpace(name), IsActive: true}
	if err := s.categories.CreateCategory(c); err != nil {
		return nil, err
	}
	return c, nil
}

// SubCategories lists the subcategories of a category.
func (s *ProductService) SubCategories(categoryID string) ([]models.SubCategory, error) {
	if _, err := s.categories.GetCategory(categoryID); err != nil {
		return nil, err
	}
	return s.categories.SubCategories(categoryID)
}

// CreateSubCategory adds an active subcategory.
func (s *ProductService) CreateSubCategory(name, categoryID string) (*models.SubCategory, error) {
	sub := &models.SubCategory{Name: strings.TrimSpace(name), Category: categoryID, IsActive: true}
	if err := s.categories.CreateSubCategory(sub); err != nil {
		return nil, err
	}
	return sub, nil
}
