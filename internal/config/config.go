package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/MongoPete/airbnb-clone/internal/features"
	"github.com/MongoPete/airbnb-clone/internal/platform/logger"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const featurePrefix = "FEATURE_"

// Config holds all configuration for the service.
type Config struct {
	ServiceName            string        `mapstructure:"SERVICE_NAME"`
	HTTPPort               string        `mapstructure:"HTTP_PORT"`
	GRPCHealthPort         string        `mapstructure:"GRPC_HEALTH_PORT"`
	MongoURI               string        `mapstructure:"MONGO_URI"`
	MongoDatabase          string        `mapstructure:"MONGO_DATABASE"`
	MongoConnectTimeout    time.Duration `mapstructure:"MONGO_CONNECT_TIMEOUT"`
	PropertiesCollection   string        `mapstructure:"PROPERTIES_COLLECTION"`
	BookingsCollection     string        `mapstructure:"BOOKINGS_COLLECTION"`
	FavoritesCollection    string        `mapstructure:"FAVORITES_COLLECTION"`
	NATSURL                string        `mapstructure:"NATS_URL"`
	RedisAddress           string        `mapstructure:"REDIS_ADDRESS"`
	RedisPassword          string        `mapstructure:"REDIS_PASSWORD"`
	RedisDB                int           `mapstructure:"REDIS_DB"`
	MemcachedAddress       string        `mapstructure:"MEMCACHED_ADDRESS"`
	CacheTTL               time.Duration `mapstructure:"CACHE_TTL"`
	LocalCacheSize         int64         `mapstructure:"LOCAL_CACHE_SIZE"`
	BookingLockTTL         time.Duration `mapstructure:"BOOKING_LOCK_TTL"`
	DefaultUserID          string        `mapstructure:"DEFAULT_USER_ID"`
	PrometheusMetricsPort  string        `mapstructure:"PROMETHEUS_METRICS_PORT"`
	OTExporterOTLPEndpoint string        `mapstructure:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	LogLevel               string        `mapstructure:"LOG_LEVEL"`
	LogFormat              string        `mapstructure:"LOG_FORMAT"`

	// Features is filled from FEATURE_<NAME> variables, not by Unmarshal.
	Features map[features.Feature]bool `mapstructure:"-"`
}

// MongoConfigured reports whether a document store connection string is set.
func (c *Config) MongoConfigured() bool {
	return strings.TrimSpace(c.MongoURI) != ""
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("SERVICE_NAME", "rental-service")
	v.SetDefault("HTTP_PORT", "8080")
	v.SetDefault("GRPC_HEALTH_PORT", "50055")
	v.SetDefault("MONGO_URI", "")
	v.SetDefault("MONGO_DATABASE", "sample_airbnb")
	v.SetDefault("MONGO_CONNECT_TIMEOUT", "10s")
	v.SetDefault("PROPERTIES_COLLECTION", "listingsAndReviews")
	v.SetDefault("BOOKINGS_COLLECTION", "bookings")
	v.SetDefault("FAVORITES_COLLECTION", "favorites")
	v.SetDefault("NATS_URL", "")
	v.SetDefault("REDIS_ADDRESS", "")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("MEMCACHED_ADDRESS", "")
	v.SetDefault("CACHE_TTL", "1h")
	v.SetDefault("LOCAL_CACHE_SIZE", 1000)
	v.SetDefault("BOOKING_LOCK_TTL", "5s")
	v.SetDefault("DEFAULT_USER_ID", "test-user-123")
	v.SetDefault("PROMETHEUS_METRICS_PORT", "9095")
	v.SetDefault("OTEL_EXPORTER_OTLP_ENDPOINT", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	for _, f := range features.All {
		v.SetDefault(featurePrefix+string(f), features.Defaults[f])
	}
}

// Load reads configuration from the environment, after loading a .env file
// when one is present.
func Load(appLogger *logger.Logger) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		appLogger.Debug("No .env file loaded, relying on OS environment", zap.Error(err))
	}
	return load(viper.New(), appLogger)
}

func load(v *viper.Viper, appLogger *logger.Logger) (*Config, error) {
	setDefaults(v)
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}

	cfg.Features = make(map[features.Feature]bool, len(features.All))
	for _, f := range features.All {
		cfg.Features[f] = v.GetBool(featurePrefix + string(f))
	}

	if cfg.HTTPPort == "" {
		return nil, fmt.Errorf("config: HTTP_PORT must not be empty")
	}
	if !cfg.MongoConfigured() {
		appLogger.Warn("MONGO_URI is not set; store-backed endpoints will answer 503")
	}

	appLogger.Debug("Configuration loaded",
		zap.String("service_name", cfg.ServiceName),
		zap.String("http_port", cfg.HTTPPort),
		zap.Bool("mongo_uri_present", cfg.MongoConfigured()),
		zap.String("mongo_database", cfg.MongoDatabase),
		zap.String("nats_url", cfg.NATSURL),
		zap.String("redis_address", cfg.RedisAddress),
		zap.Any("features", cfg.Features),
	)
	return &cfg, nil
}
