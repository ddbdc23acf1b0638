package config

import (
	"errors"
	"fmt"
	"time"

	pkgconfig "github.com/diqie123/sistem-entri-data-inventaris/pkg/config"
	"github.com/diqie123/sistem-entri-data-inventaris/pkg/database"
	"github.com/diqie123/sistem-entri-data-inventaris/pkg/logger"
)

// Config holds all configuration for the inventory console.
type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat   string `env:"LOG_FORMAT" envDefault:"json"`

	// HTTP server
	HTTPPort int `env:"CONSOLE_HTTP_PORT" envDefault:"8010"`

	// Views
	ProductPageSize   int           `env:"PRODUCT_PAGE_SIZE" envDefault:"10"`
	AuditPageSize     int           `env:"AUDIT_PAGE_SIZE" envDefault:"15"`
	LowStockThreshold int           `env:"LOW_STOCK_THRESHOLD" envDefault:"10"`
	NotificationTTL   time.Duration `env:"NOTIFICATION_TTL" envDefault:"5s"`

	// Seed dataset
	SeedEnabled bool   `env:"SEED_ENABLED" envDefault:"true"`
	SeedFile    string `env:"SEED_FILE"`

	// Redis session store
	RedisEnabled bool          `env:"REDIS_ENABLED" envDefault:"false"`
	RedisHost    string        `env:"REDIS_HOST" envDefault:"localhost"`
	RedisPort    int           `env:"REDIS_PORT" envDefault:"6379"`
	RedisPass    string        `env:"REDIS_PASSWORD"`
	RedisDB      int           `env:"REDIS_DB" envDefault:"0"`
	DraftTTL     time.Duration `env:"DRAFT_TTL" envDefault:"168h"`

	// Kafka
	KafkaEnabled bool     `env:"KAFKA_ENABLED" envDefault:"false"`
	KafkaBrokers []string `env:"KAFKA_BROKERS" envDefault:"localhost:9092" envSeparator:","`

	// Import endpoint
	ImportRateLimitRPS   float64 `env:"IMPORT_RATE_LIMIT_RPS" envDefault:"2"`
	ImportRateLimitBurst int     `env:"IMPORT_RATE_LIMIT_BURST" envDefault:"5"`
	ImportMaxBytes       int64   `env:"IMPORT_MAX_BYTES" envDefault:"5242880"`

	// OpenTelemetry
	OTELEnabled    bool    `env:"OTEL_ENABLED" envDefault:"false"`
	OTELEndpoint   string  `env:"OTEL_EXPORTER_OTLP_ENDPOINT" envDefault:"localhost:4318"`
	OTELSampleRate float64 `env:"OTEL_SAMPLE_RATE" envDefault:"1.0"`

	// Pprof debug endpoints (IP allowlist in CIDR notation)
	PprofAllowedCIDRs []string `env:"PPROF_ALLOWED_CIDRS" envDefault:"10.0.0.0/8,172.16.0.0/12,192.168.0.0/16,127.0.0.0/8,::1/128" envSeparator:","`

	// CORS
	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envDefault:"*" envSeparator:","`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := pkgconfig.Load(cfg); err != nil {
		return nil, fmt.Errorf("load console config: %w", err)
	}
	return cfg, nil
}

// Validate checks the parsed values.
func (c *Config) Validate() error {
	if !logger.ValidFormat(c.LogFormat) {
		return fmt.Errorf("LOG_FORMAT must be json or text, got %q", c.LogFormat)
	}
	if c.HTTPPort < 1 || c.HTTPPort > 65535 {
		return fmt.Errorf("invalid HTTP port: %d", c.HTTPPort)
	}
	if c.ProductPageSize < 1 {
		return fmt.Errorf("PRODUCT_PAGE_SIZE must be positive, got %d", c.ProductPageSize)
	}
	if c.AuditPageSize < 1 {
		return fmt.Errorf("AUDIT_PAGE_SIZE must be positive, got %d", c.AuditPageSize)
	}
	if c.LowStockThreshold < 2 {
		return fmt.Errorf("LOW_STOCK_THRESHOLD must be at least 2, got %d", c.LowStockThreshold)
	}
	if c.NotificationTTL <= 0 {
		return errors.New("NOTIFICATION_TTL must be positive")
	}
	if c.RedisEnabled {
		if c.RedisHost == "" {
			return errors.New("REDIS_HOST is required when REDIS_ENABLED is set")
		}
		if c.RedisPort < 1 || c.RedisPort > 65535 {
			return fmt.Errorf("invalid Redis port: %d", c.RedisPort)
		}
		if c.DraftTTL <= 0 {
			return errors.New("DRAFT_TTL must be positive")
		}
	}
	if c.KafkaEnabled && len(c.KafkaBrokers) == 0 {
		return errors.New("KAFKA_BROKERS is required when KAFKA_ENABLED is set")
	}
	if c.ImportRateLimitRPS <= 0 || c.ImportRateLimitBurst < 1 {
		return fmt.Errorf("import rate limit must be positive, got %g rps burst %d", c.ImportRateLimitRPS, c.ImportRateLimitBurst)
	}
	if c.ImportMaxBytes < 1 {
		return fmt.Errorf("IMPORT_MAX_BYTES must be positive, got %d", c.ImportMaxBytes)
	}
	if c.OTELSampleRate < 0 || c.OTELSampleRate > 1.0 {
		return fmt.Errorf("OTEL_SAMPLE_RATE must be between 0.0 and 1.0, got %f", c.OTELSampleRate)
	}
	return nil
}

// Redis returns the Redis connection settings.
func (c *Config) Redis() database.RedisConfig {
	rc := database.DefaultRedisConfig()
	rc.Host = c.RedisHost
	rc.Port = c.RedisPort
	rc.Password = c.RedisPass
	rc.DB = c.RedisDB
	return rc
}
