package storefront

import (
	"context"

	"motoparts/internal/models"
	"motoparts/internal/state"
)

// FetchProducts loads the catalog into state.
func (s *Storefront) FetchProducts(ctx context.Context) ([]models.Product, error) {
	s.begin(state.SliceProducts)
	products, err := s.api.Products(ctx)
	if err != nil {
		return nil, s.fail(state.SliceProducts, "fetch products", err, "Failed to load products")
	}
	s.store.Dispatch(state.ProductsLoaded{Products: products})
	return products, nil
}

// FilteredProducts is the memoized view of the products in state.
func (s *Storefront) FilteredProducts(params models.ProductSearchParams) []models.Product {
	return s.selector.Select(s.store.State().Products, params)
}

// Product loads one product and keeps it in state.
func (s *Storefront) Product(ctx context.Context, id string) (*models.Product, error) {
	s.begin(state.SliceProducts)
	p, err := s.api.Product(ctx, id)
	if err != nil {
		return nil, s.fail(state.SliceProducts, "fetch product", err, "Product not found")
	}
	s.store.Dispatch(state.ProductStored{Product: *p})
	return p, nil
}

// CreateProduct validates the input (old price must exceed price) before
// calling the API.
func (s *Storefront) CreateProduct(ctx context.Context, in models.ProductInput) (*models.Product, error) {
	if _, err := s.RequireAdmin(); err != nil {
		return nil, err
	}
	if err := s.checkProduct(in); err != nil {
		return nil, err
	}
	s.begin(state.SliceProducts)
	p, err := s.api.CreateProduct(ctx, in)
	if err != nil {
		return nil, s.fail(state.SliceProducts, "create product", err, "Failed to create product")
	}
	s.store.Dispatch(state.ProductStored{Product: *p})
	return p, nil
}

// UpdateProduct replaces a product's editable fields.
func (s *Storefront) UpdateProduct(ctx context.Context, id string, in models.ProductInput) (*models.Product, error) {
	if _, err := s.RequireAdmin(); err != nil {
		return nil, err
	}
	if err := s.checkProduct(in); err != nil {
		return nil, err
	}
	s.begin(state.SliceProducts)
	p, err := s.api.UpdateProduct(ctx, id, in)
	if err != nil {
		return nil, s.fail(state.SliceProducts, "update product", err, "Failed to update product")
	}
	s.store.Dispatch(state.ProductStored{Product: *p})
	return p, nil
}

// DeleteProduct removes a product.
func (s *Storefront) DeleteProduct(ctx context.Context, id string) error {
	if _, err := s.RequireAdmin(); err != nil {
		return err
	}
	s.begin(state.SliceProducts)
	if err := s.api.DeleteProduct(ctx, id); err != nil {
		return s.fail(state.SliceProducts, "delete product", err, "Failed to delete product")
	}
	s.store.Dispatch(state.ProductRemoved{ID: id})
	return nil
}

func (s *Storefront) checkProduct(in models.ProductInput) error {
	err := s.check(in)
	if verr, ok := err.(*ValidationError); ok {
		if _, bad := verr.Fields["OldPrice"]; bad {
			verr.Fields["OldPrice"] = "Old price must be greater than the current price"
		}
	}
	return err
}

// FetchCategories loads all categories.
func (s *Storefront) FetchCategories(ctx context.Context) ([]models.Category, error) {
	s.begin(state.SliceCategories)
	cats, err := s.api.Categories(ctx)
	if err != nil {
		return nil, s.fail(state.SliceCategories, "fetch categories", err, "Failed to load categories")
	}
	s.store.Dispatch(state.CategoriesLoaded{Categories: cats})
	return cats, nil
}

// AddCategory creates a category.
func (s *Storefront) AddCategory(ctx context.Context, name string) (*models.Category, error) {
	if _, err := s.RequireAdmin(); err != nil {
		return nil, err
	}
	if err := s.check(models.Category{Name: name}); err != nil {
		return nil, err
	}
	cat, err := s.api.CreateCategory(ctx, name)
	if err != nil {
		return nil, s.fail(state.SliceCategories, "add category", err, "Failed to create category")
	}
	s.store.Dispatch(state.CategoryAdded{Category: *cat})
	return cat, nil
}

// SelectCategory makes cat current and loads its subcategories.
func (s *Storefront) SelectCategory(ctx context.Context, cat models.Category) ([]models.SubCategory, error) {
	s.store.Dispatch(state.CategorySelected{Category: &cat})
	return s.FetchSubCategories(ctx, cat.ID)
}

// FetchSubCategories loads the subcategories of one category.
func (s *Storefront) FetchSubCategories(ctx context.Context, categoryID string) ([]models.SubCategory, error) {
	s.begin(state.SliceCategories)
	subs, err := s.api.SubCategories(ctx, categoryID)
	if err != nil {
		return nil, s.fail(state.SliceCategories, "fetch subcategories", err, "Failed to load subcategories")
	}
	s.store.Dispatch(state.SubCategoriesLoaded{SubCategories: subs})
	return subs, nil
}

// AddSubCategory creates a subcategory under categoryID.
func (s *Storefront) AddSubCategory(ctx context.Context, name, categoryID string) (*models.SubCategory, error) {
	if _, err := s.RequireAdmin(); err != nil {
		return nil, err
	}
	if err := s.check(models.SubCategory{Name: name, Category: categoryID}); err != nil {
		return nil, err
	}
	sub, err := s.api.CreateSubCategory(ctx, name, categoryID)
	if err != nil {
		return nil, s.fail(state.SliceCategories, "add subcategory", err, "Failed to create subcategory")
	}
	s.store.Dispatch(state.SubCategoryAdded{SubCategory: *sub})
	return sub, nil
}
