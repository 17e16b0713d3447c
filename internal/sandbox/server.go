// Package sandbox assembles the local storefront API the client talks to
// during development and tests.
package sandbox

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"motoparts/internal/config"
	"motoparts/internal/handlers"
	"motoparts/internal/middleware"
	"motoparts/internal/models"
	"motoparts/internal/repositories"
	"motoparts/internal/services"
)

// Server is the wired sandbox API.
type Server struct {
	App      *fiber.App
	Auth     *services.AuthService
	Products *services.ProductService
	Carts    *services.CartService
	Orders   *services.OrderService
	Engage   *services.EngagementService
	logger   *zap.Logger
}

// OpenDatabase opens the sqlite database and migrates the account and
// product tables.
func OpenDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Silent)})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.AutoMigrate(&models.Account{}, &models.Product{}); err != nil {
		return nil, fmt.Errorf("failed to auto-migrate database: %w", err)
	}
	return db, nil
}

// New wires repositories, services and handlers onto a fiber app. Accounts
// and products live in db; carts, orders, categories, reviews and wishlists
// are kept in memory. events may be nil.
func New(cfg config.Sandbox, db *gorm.DB, events services.EventPublisher, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}

	productRepo := repositories.NewGORMProductRepository(db)
	userRepo := repositories.NewGORMUserRepository(db)

	authService := services.NewAuthService(userRepo, cfg.JWTSecret, cfg.TokenTTL, logger)
	productService := services.NewProductService(productRepo, repositories.NewMockCategoryRepository())
	cartService := services.NewCartService(repositories.NewMockCartRepository(), productRepo)
	orderService := services.NewOrderService(repositories.NewMockOrderRepository(), productRepo, cartService, events, logger)
	engagementService := services.NewEngagementService(repositories.NewMockReviewRepository(), repositories.NewMockWishlistRepository(), productRepo)

	// Route params and query values are stored as map keys by the in-memory
	// repositories, so they must not alias fasthttp's reused buffers.
	app := fiber.New(fiber.Config{DisableStartupMessage: true, Immutable: true})
	app.Use(fiberlogger.New(fiberlogger.Config{
		Output: zap.NewStdLog(logger.Named("http")).Writer(),
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
			"events": events != nil,
		})
	})

	guards := handlers.Guards{
		Auth:  middleware.AuthRequired(authService, logger),
		Admin: middleware.AdminRequired(),
	}
	api := app.Group("/api")
	handlers.NewAuthHandler(authService, logger).RegisterRoutes(api, guards)
	handlers.NewProductHandler(productService, logger).RegisterRoutes(api, guards)
	handlers.NewCartHandler(cartService, logger).RegisterRoutes(api, guards)
	handlers.NewOrderHandler(orderService, logger).RegisterRoutes(api, guards)
	handlers.NewEngagementHandler(engagementService, logger).RegisterRoutes(api, guards)
	handlers.NewUserHandler(authService, logger).RegisterRoutes(api, guards)

	return &Server{
		App:      app,
		Auth:     authService,
		Products: productService,
		Carts:    cartService,
		Orders:   orderService,
		Engage:   engagementService,
		logger:   logger,
	}
}
