package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bookstore-management/internal/config"
	"bookstore-management/internal/infrastructure/database/postgres"
	"bookstore-management/internal/infrastructure/messaging"
	"bookstore-management/internal/logger"
	"bookstore-management/internal/observability/tracing"
	"bookstore-management/internal/routes"
	"bookstore-management/internal/usecase/inventory"
	"bookstore-management/pkg/mqtt"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
)

// @title Api Book Management
// @version 1.0
// @description User authentication and CRUD for users, books and stock records.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("Failed to load configuration: " + err.Error() + "\n")
		os.Exit(1)
	}

	env := cfg.Server.Environment
	if env == "" {
		env = "development"
	}
	if err := logger.Init(env); err != nil {
		os.Stderr.WriteString("Failed to initialize logger: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("environment", env),
	)

	if err := cfg.Validate(); err != nil {
		logger.Fatal("Invalid configuration", zap.Error(err))
	}

	db, err := postgres.NewDB(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("Failed to close database connection", zap.Error(err))
		}
	}()

	if cfg.Database.AutoMigrate {
		if err := db.Migrate(context.Background()); err != nil {
			logger.Fatal("Failed to apply migrations", zap.Error(err))
		}
	}

	shutdownTracing, err := tracing.Init(context.Background(), cfg)
	if err != nil {
		logger.Fatal("Failed to initialize tracing", zap.Error(err))
	}

	notifier, closeNotifier := newNotifier(cfg)
	defer closeNotifier()

	router, stopRoutes := routes.SetupRoutes(cfg, routes.NewDependencies(db, notifier))
	defer stopRoutes()

	host := cfg.Server.Host
	if host == "" {
		host = "0.0.0.0"
	}
	port := cfg.Server.Port
	if port == "" {
		port = "8080"
	}
	addr := net.JoinHostPort(host, port)

	server := &http.Server{
		Addr:         addr,
		Handler:      otelhttp.NewHandler(router, cfg.Tracing.ServiceName),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("Server starting",
			zap.String("address", addr),
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutdown Server ...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Failed to shutdown server", zap.Error(err))
	}
	if err := shutdownTracing(ctx); err != nil {
		logger.Error("Failed to flush traces", zap.Error(err))
	}

	logger.Info("Server exited properly")
}

// newNotifier publishes low-stock events over MQTT when a broker is configured
// and reachable, and logs them otherwise.
func newNotifier(cfg *config.Config) (inventory.LowStockNotifier, func()) {
	if cfg.MQTT.Broker == "" {
		return inventory.LogNotifier{}, func() {}
	}

	client := mqtt.NewClient(mqtt.DefaultConfig(cfg.MQTT.Broker, cfg.MQTT.ClientID, cfg.MQTT.Username, cfg.MQTT.Password))
	if err := client.Connect(); err != nil {
		logger.Warn("MQTT broker unavailable, low-stock events will only be logged",
			zap.String("broker", cfg.MQTT.Broker),
			zap.Error(err),
		)
		return inventory.LogNotifier{}, func() {}
	}

	return messaging.NewMQTTNotifier(client, cfg.MQTT.TopicPrefix), client.Disconnect
}
