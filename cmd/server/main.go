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

	"go.mongodb.org/mongo-driver/mongo"
	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"

	"github.com/MongoPete/airbnb-clone/internal/adapter/http/handler"
	"github.com/MongoPete/airbnb-clone/internal/adapter/http/router"
	redisAdapter "github.com/MongoPete/airbnb-clone/internal/adapter/lock/redis"
	natsAdapter "github.com/MongoPete/airbnb-clone/internal/adapter/messaging/nats"
	"github.com/MongoPete/airbnb-clone/internal/adapter/repository/cache"
	mongoRepo "github.com/MongoPete/airbnb-clone/internal/adapter/repository/mongodb"
	"github.com/MongoPete/airbnb-clone/internal/config"
	"github.com/MongoPete/airbnb-clone/internal/domain"
	"github.com/MongoPete/airbnb-clone/internal/features"
	"github.com/MongoPete/airbnb-clone/internal/platform/logger"
	"github.com/MongoPete/airbnb-clone/internal/platform/metrics"
	"github.com/MongoPete/airbnb-clone/internal/platform/tracer"
	"github.com/MongoPete/airbnb-clone/internal/usecase"
	"github.com/MongoPete/airbnb-clone/internal/validation"
)

type schemaStore interface {
	validation.SchemaInstaller
	validation.DocumentCounter
}

func main() {
	appLogger := logger.NewFromEnv()
	defer func() { _ = appLogger.Sync() }()

	cfg, err := config.Load(appLogger)
	if err != nil {
		appLogger.Fatal("Failed to load configuration", zap.Error(err))
	}
	flags := features.New(cfg.Features)
	appLogger.Info("Configuration loaded",
		zap.String("service_name", cfg.ServiceName),
		zap.String("http_port", cfg.HTTPPort),
		zap.Bool("mongo_uri_set", cfg.MongoConfigured()),
		zap.Bool("redis_set", cfg.RedisAddress != ""),
		zap.String("nats_url", cfg.NATSURL),
		zap.Any("features_enabled", flags.Enabled()),
	)

	tp := tracer.InitTracer(cfg.ServiceName, cfg.OTExporterOTLPEndpoint, appLogger)
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tp.Shutdown(ctx); err != nil {
			appLogger.Error("Failed to shutdown tracer provider", zap.Error(err))
		}
	}()

	metricsManager := metrics.NewMetricsManager(cfg.ServiceName)

	// Document store. Without MONGO_URI the service still starts and every
	// store-backed call answers ErrConfigurationUnavailable.
	var (
		propertyRepo domain.PropertyRepository = mongoRepo.UnconfiguredProperties{}
		bookingRepo  domain.BookingRepository  = mongoRepo.UnconfiguredBookings{}
		favoriteRepo domain.FavoriteRepository = mongoRepo.UnconfiguredFavorites{}
		schemas      schemaStore               = mongoRepo.UnconfiguredSchemaStore{}
		mongoClient  *mongo.Client
	)
	if cfg.MongoConfigured() {
		mongoClient, err = mongoRepo.Connect(context.Background(), cfg.MongoURI, cfg.MongoConnectTimeout)
		if err != nil {
			appLogger.Fatal("Failed to connect to MongoDB", zap.Error(err))
		}
		defer func() {
			if err := mongoClient.Disconnect(context.Background()); err != nil {
				appLogger.Error("Error disconnecting from MongoDB", zap.Error(err))
			}
		}()
		db := mongoClient.Database(cfg.MongoDatabase)
		advanced := flags.IsEnabled(features.AdvancedIndexing)
		propertyRepo = mongoRepo.NewPropertyRepository(db, cfg.PropertiesCollection, advanced, appLogger)
		bookingRepo = mongoRepo.NewBookingRepository(db, cfg.BookingsCollection, advanced, appLogger)
		favoriteRepo = mongoRepo.NewFavoriteRepository(db, cfg.FavoritesCollection, appLogger)
		schemas = mongoRepo.NewSchemaStore(db, appLogger)
		appLogger.Info("Connected to MongoDB", zap.String("database", cfg.MongoDatabase))
	} else {
		appLogger.Warn("MONGO_URI is not set, running without a document store")
	}

	// Shared cache and booking lock.
	var (
		remote cache.Remote
		locker domain.BookingLocker
	)
	switch {
	case cfg.RedisAddress != "":
		redisClient, err := redisAdapter.NewClient(context.Background(), cfg.RedisAddress, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			appLogger.Fatal("Failed to connect to Redis", zap.String("address", cfg.RedisAddress), zap.Error(err))
		}
		defer redisClient.Close()
		remote = cache.NewRedisRemote(redisClient)
		locker = redisAdapter.NewBookingLocker(redisClient, cfg.BookingLockTTL)
		appLogger.Info("Redis cache and booking lock enabled", zap.String("address", cfg.RedisAddress))
	case cfg.MemcachedAddress != "":
		remote = cache.NewMemcachedRemote(cfg.MemcachedAddress)
		appLogger.Info("Memcached cache enabled", zap.String("address", cfg.MemcachedAddress))
	}
	if locker == nil && flags.IsEnabled(features.Transactions) {
		appLogger.Warn("TRANSACTIONS is enabled but REDIS_ADDRESS is not set, bookings are not serialised")
	}
	propertyCache := cache.NewPropertyCache(cfg.LocalCacheSize, remote, cfg.CacheTTL, appLogger)
	defer propertyCache.Close()

	var publisher domain.EventPublisher = natsAdapter.NoopPublisher{}
	if cfg.NATSURL != "" {
		natsPublisher, err := natsAdapter.NewPublisher(cfg.NATSURL, appLogger, cfg.ServiceName)
		if err != nil {
			appLogger.Warn("NATS unavailable, events will not be published", zap.Error(err))
		} else {
			defer natsPublisher.Close()
			publisher = natsPublisher
		}
	}

	validator := validation.NewValidator(flags, schemas, schemas, appLogger,
		validation.PropertyRules(cfg.PropertiesCollection),
		validation.BookingRules(cfg.BookingsCollection),
	)
	if validator.IsEnabled() && cfg.MongoConfigured() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		results, err := validator.SetupValidation(ctx)
		cancel()
		if err != nil {
			appLogger.Warn("Schema validation setup failed", zap.Error(err))
		}
		for _, r := range results {
			appLogger.Info("Schema validation installed",
				zap.String("collection", r.Collection),
				zap.String("action", string(r.Action)),
				zap.String("error", r.Error),
			)
		}
	}

	propertyUsecase := usecase.NewPropertyUsecase(propertyRepo, propertyCache, validator, publisher, flags, metricsManager, appLogger)
	bookingUsecase := usecase.NewBookingUsecase(bookingRepo, validator, locker, publisher, flags, metricsManager, cfg.DefaultUserID, appLogger)
	favoriteUsecase := usecase.NewFavoriteUsecase(favoriteRepo, propertyRepo, publisher, metricsManager, appLogger)
	validationUsecase := usecase.NewValidationUsecase(validator, appLogger)

	mux := router.New(router.Handlers{
		Properties: handler.NewPropertyHandler(propertyUsecase, appLogger),
		Bookings:   handler.NewBookingHandler(bookingUsecase, appLogger),
		Favorites:  handler.NewFavoriteHandler(favoriteUsecase, appLogger),
		Validation: handler.NewValidationHandler(validationUsecase, appLogger),
		System:     handler.NewSystemHandler(flags, cfg.ServiceName),
	}, appLogger, metricsManager)

	httpServer := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		appLogger.Info("Starting HTTP server", zap.String("port", cfg.HTTPPort))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	lis, err := net.Listen("tcp", ":"+cfg.GRPCHealthPort)
	if err != nil {
		appLogger.Fatal("Failed to listen for gRPC health", zap.String("port", cfg.GRPCHealthPort), zap.Error(err))
	}
	grpcSrv := grpc.NewServer(grpc.StatsHandler(otelgrpc.NewServerHandler()))
	healthServer := health.NewServer()
	grpc_health_v1.RegisterHealthServer(grpcSrv, healthServer)
	healthServer.SetServingStatus(cfg.ServiceName, grpc_health_v1.HealthCheckResponse_SERVING)
	go func() {
		appLogger.Info("Starting gRPC health server", zap.String("port", cfg.GRPCHealthPort))
		if err := grpcSrv.Serve(lis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
			appLogger.Error("gRPC health server failed", zap.Error(err))
		}
	}()

	go func() {
		if err := metrics.StartMetricsServer(cfg.PrometheusMetricsPort, appLogger, metricsManager.Registry); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Error("Prometheus metrics server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	appLogger.Info("Received shutdown signal", zap.String("signal", sig.String()))

	healthServer.SetServingStatus(cfg.ServiceName, grpc_health_v1.HealthCheckResponse_NOT_SERVING)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		appLogger.Error("HTTP server shutdown failed", zap.Error(err))
	}
	grpcSrv.GracefulStop()
	appLogger.Info("Application shutting down")
}
