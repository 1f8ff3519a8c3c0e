package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/ahmedharati210-cyber/life-accessories-app-sub001/cache"
	"github.com/ahmedharati210-cyber/life-accessories-app-sub001/controllers"
	"github.com/ahmedharati210-cyber/life-accessories-app-sub001/database"
	"github.com/ahmedharati210-cyber/life-accessories-app-sub001/events"
	"github.com/ahmedharati210-cyber/life-accessories-app-sub001/logger"
	"github.com/ahmedharati210-cyber/life-accessories-app-sub001/middleware"
	"github.com/ahmedharati210-cyber/life-accessories-app-sub001/repository"
	"github.com/ahmedharati210-cyber/life-accessories-app-sub001/routes"
	"github.com/ahmedharati210-cyber/life-accessories-app-sub001/sender"
	"github.com/ahmedharati210-cyber/life-accessories-app-sub001/services"
)

func main() {
	// Load .env file (optional, falls back to system env)
	_ = godotenv.Load()

	log := logger.Initialize(os.Getenv("GIN_MODE"))
	defer log.Sync()

	cfg, err := LoadConfig()
	if err != nil {
		zap.L().Fatal("Failed to load configuration", zap.Error(err))
	}
	gin.SetMode(cfg.GinMode)

	client, db, err := database.Connect(cfg.MongoURL, cfg.MongoDB)
	if err != nil {
		zap.L().Fatal("Failed to connect to MongoDB", zap.Error(err))
	}
	defer func() {
		if err := database.Close(client); err != nil {
			zap.L().Warn("Failed to close MongoDB connection", zap.Error(err))
		}
	}()

	productRepo := repository.NewMongoProductRepository(db)
	categoryRepo := repository.NewMongoCategoryRepository(db)
	orderRepo := repository.NewMongoOrderRepository(db)
	historyRepo := repository.NewMongoStockHistoryRepository(db)
	areaRepo := repository.NewMongoAreaRepository(db)

	indexCtx, cancelIndexes := context.WithTimeout(context.Background(), 30*time.Second)
	ensureIndexes(indexCtx, productRepo, categoryRepo, orderRepo, historyRepo, areaRepo)
	cancelIndexes()

	store := newCacheStore(cfg)

	var email sender.EmailSender
	smtpSender, err := sender.NewSMTPSender(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword)
	if err != nil {
		zap.L().Warn("Email sending disabled", zap.Error(err))
	} else {
		email = smtpSender
	}

	var publisher events.Publisher = events.NoopPublisher{}
	if cfg.KafkaBrokers != "" {
		producer := events.NewKafkaProducer(strings.Split(cfg.KafkaBrokers, ","), cfg.KafkaOrdersTopic)
		defer producer.Close()
		publisher = producer
	}

	stockSvc := services.NewStockService(productRepo, historyRepo, store)
	productSvc := services.NewProductService(productRepo, categoryRepo, store)
	categorySvc := services.NewCategoryService(categoryRepo, productRepo, store)
	areaSvc := services.NewAreaService(areaRepo)
	orderSvc := services.NewOrderService(orderRepo, productRepo, areaRepo, stockSvc, publisher, email)
	alertSvc := services.NewAlertService(productRepo, email, cfg.AlertRecipient, cfg.LowStockThreshold)

	warmer := cache.NewWarmer(store, productRepo, categoryRepo)
	warmCtx, cancelWarm := context.WithTimeout(context.Background(), 30*time.Second)
	warmer.WarmAll(warmCtx)
	cancelWarm()

	sessions := middleware.NewSessionManager(cfg.AdminSessionSecret, cfg.AdminPasswordHash)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(logger.RequestLogger())
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORSMiddleware(cfg.AllowedOrigins))
	r.Use(middleware.RateLimitMiddleware(100.0/60.0, 50))
	r.Use(middleware.MetricsMiddleware())

	routes.Register(r, routes.Controllers{
		Products:   controllers.NewProductController(productSvc),
		Categories: controllers.NewCategoryController(categorySvc),
		Orders:     controllers.NewOrderController(orderSvc),
		Stock:      controllers.NewStockController(stockSvc, alertSvc),
		Cache:      controllers.NewCacheController(store, warmer),
		Areas:      controllers.NewAreaController(areaSvc),
		Auth:       controllers.NewAuthController(sessions),
	}, sessions, cfg.AdminRoutePrefix)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		zap.L().Info("Server starting", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zap.L().Fatal("Server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zap.L().Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zap.L().Error("Forced shutdown", zap.Error(err))
	}
	zap.L().Info("Server stopped")
}

// newCacheStore picks the configured cache backend. Redis failures at startup
// fall back to the in-memory store so the service still boots.
func newCacheStore(cfg *Config) cache.Store {
	if cfg.CacheBackend != "redis" {
		return cache.NewMemoryStore()
	}

	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		zap.L().Warn("Failed to parse REDIS_URL, using in-memory cache", zap.Error(err))
		return cache.NewMemoryStore()
	}

	client := redis.NewClient(opts)
	pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		zap.L().Warn("Redis unreachable, using in-memory cache", zap.Error(err))
		return cache.NewMemoryStore()
	}

	zap.L().Info("Using Redis cache backend")
	return cache.NewRedisStore(client)
}

type indexer interface {
	EnsureIndexes(ctx context.Context) error
}

// ensureIndexes creates indexes best-effort; a failure is logged, not fatal,
// so the service can start against a restricted database user.
func ensureIndexes(ctx context.Context, indexers ...indexer) {
	for _, ix := range indexers {
		if err := ix.EnsureIndexes(ctx); err != nil {
			zap.L().Warn("Failed to ensure indexes", zap.Error(err))
		}
	}
}
