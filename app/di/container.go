package di

import (
	"fmt"
	"log/slog"

	"github.com/labstack/echo/v4"

	"bookbazaar/app/config"
	"bookbazaar/app/driver/postgres"
	"bookbazaar/app/driver/rediscache"
	"bookbazaar/app/port"
	"bookbazaar/app/rest"
	"bookbazaar/app/rest/handlers"
	"bookbazaar/app/usecase"
	"bookbazaar/app/utils/security"
)

// Container holds all dependencies for the application
type Container struct {
	Config *config.Config
	Logger *slog.Logger

	// Drivers
	DB    *postgres.DB
	Cache *rediscache.Cache

	Tokens *security.TokenIssuer

	// Usecases
	AuthUsecase    port.AuthUsecase
	CatalogUsecase port.CatalogUsecase
	CartUsecase    port.CartUsecase
	OrderUsecase   port.OrderUsecase
	ReviewUsecase  port.ReviewUsecase
}

// NewContainer creates and initializes a new dependency injection container
func NewContainer(cfg *config.Config, logger *slog.Logger) (*Container, error) {
	container := &Container{
		Config: cfg,
		Logger: logger,
	}

	var err error

	// Initialize database connection
	container.DB, err = postgres.NewConnection(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	// Initialize catalog cache when enabled
	if cfg.EnableCache {
		container.Cache, err = rediscache.New(cfg.RedisURL, cfg.CacheTTL, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize catalog cache: %w", err)
		}
	}

	container.Tokens, err = security.NewTokenIssuer(cfg.TokenSecret, cfg.TokenIssuer, cfg.TokenTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize token issuer: %w", err)
	}

	// Initialize repositories
	userRepository := postgres.NewUserRepository(container.DB.Pool(), logger)
	bookRepository := postgres.NewBookRepository(container.DB.Pool(), logger)
	cartRepository := postgres.NewCartRepository(container.DB.Pool(), logger)
	orderRepository := postgres.NewOrderRepository(container.DB.Pool(), logger)
	reviewRepository := postgres.NewReviewRepository(container.DB.Pool(), logger)

	// Initialize usecases
	var catalogCache port.CatalogCache
	if container.Cache != nil {
		catalogCache = container.Cache
	}
	container.AuthUsecase = usecase.NewAuthUseCase(userRepository, container.Tokens, cfg.AdminEmail, logger)
	container.CatalogUsecase = usecase.NewCatalogUseCase(bookRepository, catalogCache, logger)
	container.CartUsecase = usecase.NewCartUseCase(cartRepository, bookRepository, logger)
	container.OrderUsecase = usecase.NewOrderUseCase(orderRepository, bookRepository, cartRepository, logger)
	container.ReviewUsecase = usecase.NewReviewUseCase(reviewRepository, bookRepository, logger)

	logger.Info("Container initialized with full dependency stack")

	return container, nil
}

// CreateRouter creates and returns a fully configured Echo router
func (c *Container) CreateRouter() *echo.Echo {
	var cachePinger handlers.Pinger
	if c.Cache != nil {
		cachePinger = c.Cache
	}

	routerConfig := rest.RouterConfig{
		Logger:         c.Logger,
		Tokens:         c.Tokens,
		AuthUsecase:    c.AuthUsecase,
		CatalogUsecase: c.CatalogUsecase,
		CartUsecase:    c.CartUsecase,
		OrderUsecase:   c.OrderUsecase,
		ReviewUsecase:  c.ReviewUsecase,
		DBPinger:       c.DB,
		CachePinger:    cachePinger,
	}

	router := rest.NewRouter(routerConfig)

	c.Logger.Info("Full API router created")
	return router
}

// Close closes all resources
func (c *Container) Close() error {
	if c.Cache != nil {
		if err := c.Cache.Close(); err != nil {
			c.Logger.Warn("Failed to close cache connection", "error", err)
		}
	}

	if c.DB != nil {
		c.DB.Close()
	}

	c.Logger.Info("Container closed successfully")
	return nil
}
