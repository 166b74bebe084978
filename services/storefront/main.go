package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	sdkaws "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	awspkg "github.com/sOuL2000s/Shoppy-Assignment-First-Track/pkg/aws"
	apperrors "github.com/sOuL2000s/Shoppy-Assignment-First-Track/pkg/errors"
	"github.com/sOuL2000s/Shoppy-Assignment-First-Track/pkg/logger"
	pkgmiddleware "github.com/sOuL2000s/Shoppy-Assignment-First-Track/pkg/middleware"
	"github.com/sOuL2000s/Shoppy-Assignment-First-Track/services/storefront/config"
	"github.com/sOuL2000s/Shoppy-Assignment-First-Track/services/storefront/controllers"
	"github.com/sOuL2000s/Shoppy-Assignment-First-Track/services/storefront/database"
	"github.com/sOuL2000s/Shoppy-Assignment-First-Track/services/storefront/events"
	"github.com/sOuL2000s/Shoppy-Assignment-First-Track/services/storefront/models"
	"github.com/sOuL2000s/Shoppy-Assignment-First-Track/services/storefront/repository"
	"github.com/sOuL2000s/Shoppy-Assignment-First-Track/services/storefront/routes"
	"github.com/sOuL2000s/Shoppy-Assignment-First-Track/services/storefront/services"
)

const serviceName = "storefront"

func main() {
	ctx := context.Background()

	cfg, err := config.Load(ctx)
	if err != nil {
		logger.MustNew("development", nil).Fatal("Failed to load configuration", zap.Error(err))
	}

	var awsCfg sdkaws.Config
	needsAWS := cfg.CloudWatchEnabled || cfg.EventsBackend == config.EventsSNS
	if needsAWS {
		awsCfg, err = awspkg.LoadAWSConfig(ctx)
		if err != nil {
			logger.MustNew(cfg.Env, nil).Fatal("Failed to load AWS config", zap.Error(err))
		}
	}

	log := newLogger(ctx, cfg, awsCfg)
	defer log.Sync()
	zap.ReplaceGlobals(log)

	db, err := database.ConnectPostgres(ctx, cfg.Postgres.DSN(), log)
	if err != nil {
		log.Fatal("Failed to connect to Postgres", zap.Error(err))
	}

	redisClient, err := database.NewRedisClient(ctx, cfg.RedisURL)
	if err != nil {
		log.Fatal("Failed to connect to Redis", zap.Error(err))
	}

	publisher := newPublisher(cfg, awsCfg, log)

	// metrics stays a nil interface unless CloudWatch is on
	var metrics awspkg.MetricsRecorder
	if cfg.CloudWatchEnabled {
		metrics = awspkg.NewMetricsClient(awsCfg, true)
	}

	cartRepo := repository.NewRedisCartRepository(redisClient, cfg.CartTTL)
	productRepo := repository.NewGormProductRepository(db)
	orderRepo := repository.NewGormOrderRepository(db)
	checkoutStore := repository.NewGormCheckoutStore(db)

	cartService := services.NewCartService(cartRepo, productRepo, log)
	checkoutService := services.NewCheckoutService(cartRepo, checkoutStore, publisher, metrics, log)
	orderService := services.NewOrderService(orderRepo, log)
	productService := services.NewProductService(productRepo, metrics, log)

	cartController := controllers.NewCartController(cartService, checkoutService)
	orderController := controllers.NewOrderController(orderService)
	productController := controllers.NewProductController(productService)

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(logger.RequestID())
	r.Use(pkgmiddleware.RequestLogger(log))
	r.Use(pkgmiddleware.SecurityHeaders())
	r.Use(pkgmiddleware.CORSMiddleware(cfg.AllowedOrigins))
	r.Use(pkgmiddleware.RateLimitMiddleware(pkgmiddleware.NewRateLimiter(rate.Every(time.Minute/100), 50, 5*time.Minute)))
	r.Use(pkgmiddleware.MetricsMiddleware(metrics, serviceName))
	r.Use(pkgmiddleware.Timeout(30 * time.Second))
	r.Use(apperrors.ErrorMiddleware())

	routes.RegisterRoutes(r, []byte(cfg.JWTSecret), cartController, orderController, productController)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("Storefront service starting", zap.String("port", cfg.Port), zap.String("events", cfg.EventsBackend))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}

	if err := publisher.Close(); err != nil {
		log.Warn("Failed to close event publisher", zap.Error(err))
	}
	if err := redisClient.Close(); err != nil {
		log.Warn("Failed to close Redis client", zap.Error(err))
	}
	if err := database.Close(db); err != nil {
		log.Warn("Failed to close Postgres", zap.Error(err))
	}
	log.Info("Server exiting")
}

func newLogger(ctx context.Context, cfg *config.Config, awsCfg sdkaws.Config) *zap.Logger {
	if !cfg.CloudWatchEnabled {
		return logger.MustNew(cfg.Env, nil)
	}

	sink, err := awspkg.NewCloudWatchLogsClient(ctx, awsCfg, serviceName)
	if err != nil {
		log := logger.MustNew(cfg.Env, nil)
		log.Warn("CloudWatch Logs unavailable, logging to stdout only", zap.Error(err))
		return log
	}
	return logger.MustNew(cfg.Env, sink)
}

func newPublisher(cfg *config.Config, awsCfg sdkaws.Config, log *zap.Logger) events.Publisher {
	switch cfg.EventsBackend {
	case config.EventsKafka:
		return events.NewKafkaPublisher(cfg.KafkaBrokers, cfg.OrderEventsTopic, log)
	case config.EventsSNS:
		return events.NewSNSPublisher(awspkg.NewSNSClient(awsCfg), cfg.OrderEventsTopicARN, models.EventOrderPlaced)
	default:
		return events.Noop{}
	}
}
