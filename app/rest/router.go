package rest

import (
	"log/slog"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"bookbazaar/app/port"
	"bookbazaar/app/rest/handlers"
	custommw "bookbazaar/app/rest/middleware"
	"bookbazaar/app/utils/security"
)

// RouterConfig holds router configuration
type RouterConfig struct {
	Logger         *slog.Logger
	Tokens         *security.TokenIssuer
	AuthUsecase    port.AuthUsecase
	CatalogUsecase port.CatalogUsecase
	CartUsecase    port.CartUsecase
	OrderUsecase   port.OrderUsecase
	ReviewUsecase  port.ReviewUsecase
	DBPinger       handlers.Pinger
	CachePinger    handlers.Pinger
}

// NewRouter creates and configures the Echo router
func NewRouter(config RouterConfig) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	authHandler := handlers.NewAuthHandler(config.AuthUsecase, config.Logger)
	bookHandler := handlers.NewBookHandler(config.CatalogUsecase, config.Logger)
	cartHandler := handlers.NewCartHandler(config.CartUsecase, config.Logger)
	orderHandler := handlers.NewOrderHandler(config.OrderUsecase, config.Logger)
	reviewHandler := handlers.NewReviewHandler(config.ReviewUsecase, config.Logger)
	healthHandler := handlers.NewHealthHandler(config.DBPinger, config.CachePinger, config.Logger)

	authMiddleware := custommw.NewAuthMiddleware(config.Tokens, config.AuthUsecase, config.Logger)
	rateLimiter := custommw.NewRateLimiter()

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(custommw.DefaultCORS())
	e.Use(rateLimiter.RateLimit())

	e.GET("/health", healthHandler.Health)

	auth := e.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.GET("/me", authHandler.Me, authMiddleware.RequireAuth())
	auth.POST("/api-key", authHandler.GenerateAPIKey, authMiddleware.RequireAuth())

	books := e.Group("/books")
	books.GET("", bookHandler.List, authMiddleware.OptionalAPIKey())
	books.GET("/:id", bookHandler.Get, authMiddleware.OptionalAPIKey())
	books.POST("", bookHandler.Create, authMiddleware.RequireAuth(), authMiddleware.RequireAdmin())
	books.PUT("/:id", bookHandler.Update, authMiddleware.RequireAuth(), authMiddleware.RequireAdmin())
	books.DELETE("/:id", bookHandler.Delete, authMiddleware.RequireAuth(), authMiddleware.RequireAdmin())
	books.GET("/:id/reviews", reviewHandler.ListByBook, authMiddleware.OptionalAPIKey())
	books.POST("/:id/reviews", reviewHandler.Create, authMiddleware.RequireAuth())

	e.DELETE("/reviews/:reviewId", reviewHandler.Delete, authMiddleware.RequireAuth())

	cart := e.Group("/cart", authMiddleware.RequireAuth())
	cart.GET("", cartHandler.Get)
	cart.POST("", cartHandler.Add)
	cart.PUT("/:itemId", cartHandler.Update)
	cart.DELETE("/:itemId", cartHandler.Remove)

	orders := e.Group("/orders", authMiddleware.RequireAuth())
	orders.POST("", orderHandler.Place)
	orders.GET("", orderHandler.List)

	return e
}
