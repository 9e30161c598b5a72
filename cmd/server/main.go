package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gomarket/internal/config"
	handlers "gomarket/internal/handlers/shared"
	"gomarket/internal/middleware"
	"gomarket/internal/repositories/mongodb"
	"gomarket/internal/services"
	"gomarket/pkg/cache"
	"gomarket/pkg/database"
	"gomarket/pkg/logger"
	"gomarket/routes"

	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	appLogger, err := logger.NewLogger(&logger.Config{
		Level:  logger.LogLevel(cfg.App.LogLevel),
		Format: cfg.App.LogFormat,
		Output: "stdout",
	})
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	// Connect MongoDB
	mongo, err := database.NewMongoDB(&database.DatabaseConfig{
		URI:            cfg.Database.URI,
		Database:       cfg.Database.Database,
		MaxPoolSize:    cfg.Database.MaxPoolSize,
		MinPoolSize:    cfg.Database.MinPoolSize,
		ConnectTimeout: cfg.Database.ConnectTimeout,
		SocketTimeout:  cfg.Database.SocketTimeout,
	})
	if err != nil {
		appLogger.Fatal("Failed to connect to MongoDB: " + err.Error())
	}
	defer mongo.Close()

	// Run index migrations
	if err := database.NewMigrator(mongo.Database).Up(); err != nil {
		appLogger.Fatal("Failed to run migrations: " + err.Error())
	}

	// Connect Redis
	redisCache, err := cache.NewRedisCache(&cache.RedisConfig{
		Host:         cfg.Redis.Host,
		Port:         cfg.Redis.Port,
		Password:     cfg.Redis.Password,
		DB:           cfg.Redis.DB,
		PoolSize:     cfg.Redis.PoolSize,
		MinIdleConns: cfg.Redis.MinIdleConns,
		DialTimeout:  cfg.Redis.DialTimeout,
		ReadTimeout:  cfg.Redis.ReadTimeout,
		WriteTimeout: cfg.Redis.WriteTimeout,
	})
	if err != nil {
		appLogger.Fatal("Failed to connect to Redis: " + err.Error())
	}
	defer redisCache.Close()

	// Repositories
	userRepo := mongodb.NewUserRepository(mongo.Database)
	productRepo := mongodb.NewProductRepository(mongo.Database, redisCache)
	codeRepo := mongodb.NewPickupCodeRepository(mongo.Database)
	recordRepo := mongodb.NewPickupRecordRepository(mongo.Database)
	orderRepo := mongodb.NewOrderRepository(mongo.Database)
	statsRepo := mongodb.NewStatsRepository(mongo.Database)

	// Services
	authService := services.NewAuthService(userRepo, cfg.Security.JWTSecret, appLogger)
	productService := services.NewProductService(productRepo, appLogger)
	codeService := services.NewPickupCodeService(codeRepo, productRepo, appLogger)
	orderService := services.NewOrderService(orderRepo, productRepo, appLogger)
	pickupService := services.NewPickupService(codeRepo, recordRepo, orderRepo, productRepo, userRepo, appLogger)
	statsService := services.NewStatsService(statsRepo, recordRepo, appLogger)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	productHandler := handlers.NewProductHandler(productService)
	codeHandler := handlers.NewPickupCodeHandler(codeService)
	orderHandler := handlers.NewOrderHandler(orderService)
	pickupHandler := handlers.NewPickupHandler(pickupService)
	statsHandler := handlers.NewStatsHandler(statsService)

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware(appLogger))

	v1 := router.Group("/api/v1")
	{
		routes.SetupAuthRoutes(v1, authHandler, cfg)
		routes.SetupProductRoutes(v1, productHandler, cfg)
		routes.SetupPickupCodeRoutes(v1, codeHandler, cfg)
		routes.SetupOrderRoutes(v1, orderHandler, cfg)
		routes.SetupPickupRoutes(v1, pickupHandler, cfg, redisCache, appLogger)
		routes.SetupStatsRoutes(v1, statsHandler, cfg)
	}

	router.GET("/health", func(c *gin.Context) {
		status := "healthy"
		code := http.StatusOK
		if err := mongo.Ping(); err != nil {
			status = "degraded"
			code = http.StatusServiceUnavailable
		}
		c.JSON(code, gin.H{
			"status":  status,
			"version": cfg.App.Version,
		})
	})

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.App.Port),
		Handler: router,
	}

	go func() {
		appLogger.Infof("Starting %s on port %d", cfg.App.Name, cfg.App.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Fatal("Server failed: " + err.Error())
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		appLogger.Error("Forced shutdown: " + err.Error())
	}
}
