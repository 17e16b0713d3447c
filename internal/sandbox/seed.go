package sandbox

import (
	"fmt"

	"go.uber.org/zap"

	"motoparts/internal/models"
)

// Seeded admin credentials.
const (
	AdminEmail    = "admin@motoparts.local"
	AdminPassword = "admin123"
)

type seedProduct struct {
	name, brand, sub string
	price            float64
	oldPrice         float64
	stock            int
}

var seedCatalog = map[string][]seedProduct{
	"Engine": {
		{name: "Spark Plug NGK CR7HSA", brand: "NGK", sub: "Ignition", price: 450, stock: 120},
		{name: "Piston Kit 150cc", brand: "Bajaj", sub: "Pistons", price: 3200, oldPrice: 3600, stock: 15},
		{name: "Oil Filter Boxer", brand: "Bajaj", sub: "Filters", price: 350, stock: 4},
	},
	"Brakes": {
		{name: "Front Brake Pads", brand: "TVS", sub: "Pads", price: 900, stock: 40},
		{name: "Rear Brake Shoe", brand: "Honda", sub: "Shoes", price: 750, oldPrice: 850, stock: 0},
	},
	"Electrical": {
		{name: "Headlight Bulb 12V", brand: "Osram", sub: "Lighting", price: 300, stock: 60},
		{name: "Battery 12V 5Ah", brand: "Chloride Exide", sub: "Batteries", price: 4200, stock: 8},
	},
}

// Seed creates the admin account and a small catalog. Running it against an
// already seeded database only adds what is missing.
func (s *Server) Seed() error {
	admin, err := s.seedAdmin()
	if err != nil {
		return err
	}

	existing, err := s.Products.GetAllProducts()
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		s.logger.Info("catalog already seeded", zap.Int("products", len(existing)))
		return nil
	}

	for _, categoryName := range []string{"Brakes", "Electrical", "Engine"} {
		category, err := s.Products.CreateCategory(categoryName)
		if err != nil {
			return fmt.Errorf("failed to seed category %s: %w", categoryName, err)
		}
		subs := make(map[string]string)
		for _, p := range seedCatalog[categoryName] {
			subID, ok := subs[p.sub]
			if !ok {
				sub, err := s.Products.CreateSubCategory(p.sub, category.ID)
				if err != nil {
					return fmt.Errorf("failed to seed subcategory %s: %w", p.sub, err)
				}
				subID = sub.ID
				subs[p.sub] = subID
			}
			in := models.ProductInput{
				Name:        p.name,
				Description: fmt.Sprintf("%s genuine replacement part.", p.brand),
				Price:       p.price,
				Stock:       p.stock,
				Category:    category.ID,
				SubCategory: subID,
				Brand:       p.brand,
				Condition:   "new",
				IsActive:    true,
			}
			if p.oldPrice > 0 {
				in.OldPrice = models.Price(p.oldPrice)
			}
			product, err := s.Products.CreateProduct(in, admin)
			if err != nil {
				return fmt.Errorf("failed to seed product %s: %w", p.name, err)
			}
			s.logger.Debug("seeded product", zap.String("name", product.Name), zap.String("id", product.ID))
		}
	}
	s.logger.Info("sandbox seeded", zap.String("admin", AdminEmail))
	return nil
}

func (s *Server) seedAdmin() (string, error) {
	if err := s.Auth.SeedAccount("Store Admin", AdminEmail, AdminPassword, models.RoleSuperAdmin); err != nil {
		return "", fmt.Errorf("failed to seed admin: %w", err)
	}
	session, err := s.Auth.LoginUser(AdminEmail, AdminPassword)
	if err != nil {
		return "", fmt.Errorf("failed to sign in seeded admin: %w", err)
	}
	return session.User.ID, nil
}
