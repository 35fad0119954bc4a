package routes

import (
	"context"
	"net/http"
	"time"

	_ "bookstore-management/docs"
	"bookstore-management/internal/config"
	"bookstore-management/internal/delivery/http/handler"
	domainInventory "bookstore-management/internal/domain/inventory"
	domainUser "bookstore-management/internal/domain/user"
	"bookstore-management/internal/infrastructure/database/postgres"
	"bookstore-management/internal/logger"
	"bookstore-management/internal/middleware"
	"bookstore-management/internal/usecase/inventory"
	"bookstore-management/internal/usecase/user"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.uber.org/zap"
)

const (
	docsPrefix     = "/api-docs"
	healthTimeout  = 2 * time.Second
	maxRequestSize = middleware.DefaultMaxRequestSize
)

// Dependencies are the collaborators the router wires into handlers.
type Dependencies struct {
	Users    domainUser.Repository
	Books    domainInventory.Repository
	Stock    domainInventory.Repository
	Notifier inventory.LowStockNotifier
	// Health reports whether the backing store is reachable.
	Health func(ctx context.Context) error
}

// NewDependencies builds the postgres-backed repositories.
func NewDependencies(db *postgres.DB, notifier inventory.LowStockNotifier) Dependencies {
	return Dependencies{
		Users:    postgres.NewUserRepository(db),
		Books:    postgres.NewItemRepository(db, domainInventory.Books),
		Stock:    postgres.NewItemRepository(db, domainInventory.Stock),
		Notifier: notifier,
		Health:   db.Health,
	}
}

// SetupRoutes builds the engine. The returned stop func releases the rate
// limiter's sweeper and must be called on shutdown.
func SetupRoutes(cfg *config.Config, deps Dependencies) (*gin.Engine, func()) {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Order: recovery, request ID, logging, security headers, CORS, body limit, rate limit, metrics
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.SecurityHeadersMiddleware(docsPrefix))
	router.Use(middleware.CORSMiddleware(&cfg.CORS))
	router.Use(middleware.RequestSizeLimitMiddleware(maxRequestSize))
	limiter := middleware.NewRateLimiter(cfg.RateLimit.GeneralRPS, cfg.RateLimit.GeneralBurst)
	router.Use(middleware.RateLimitMiddleware(limiter))
	router.Use(middleware.MetricsMiddleware())

	router.GET("/health", func(c *gin.Context) {
		if deps.Health != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), healthTimeout)
			defer cancel()
			if err := deps.Health(ctx); err != nil {
				logger.Warn("Health check failed", zap.Error(err))
				c.JSON(http.StatusServiceUnavailable, gin.H{
					"status":  "unhealthy",
					"message": "Database connection failed",
				})
				return
			}
		}

		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"message": "Service is running",
		})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET(docsPrefix+"/*any", gin.WrapH(httpSwagger.Handler(httpSwagger.URL(docsPrefix+"/doc.json"))))

	userService := user.NewService(deps.Users, cfg)
	authHandler := handler.NewAuthHandler(userService)
	userHandler := handler.NewUserHandler(userService)

	bookHandler := handler.NewInventoryHandler(inventory.NewService(deps.Books, deps.Notifier))
	stockHandler := handler.NewInventoryHandler(inventory.NewService(deps.Stock, deps.Notifier))

	api := router.Group("/api")
	{
		api.GET("", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"message": "Api Book Management"})
		})

		protected := api.Group("")
		protected.Use(middleware.AuthMiddleware(cfg))

		authHandler.RegisterRoutes(api)
		userHandler.RegisterRoutes(api, protected)
		bookHandler.RegisterRoutes(protected)
		stockHandler.RegisterRoutes(protected)
	}

	return router, limiter.Stop
}
