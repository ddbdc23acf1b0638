package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/diqie123/sistem-entri-data-inventaris/internal/config"
	"github.com/diqie123/sistem-entri-data-inventaris/internal/domain"
	"github.com/diqie123/sistem-entri-data-inventaris/internal/event"
	handler "github.com/diqie123/sistem-entri-data-inventaris/internal/handler/http"
	"github.com/diqie123/sistem-entri-data-inventaris/internal/notify"
	"github.com/diqie123/sistem-entri-data-inventaris/internal/repository"
	"github.com/diqie123/sistem-entri-data-inventaris/internal/repository/memory"
	redisrepo "github.com/diqie123/sistem-entri-data-inventaris/internal/repository/redis"
	"github.com/diqie123/sistem-entri-data-inventaris/internal/seed"
	"github.com/diqie123/sistem-entri-data-inventaris/internal/service"
	"github.com/diqie123/sistem-entri-data-inventaris/internal/view"
	"github.com/diqie123/sistem-entri-data-inventaris/pkg/breaker"
	"github.com/diqie123/sistem-entri-data-inventaris/pkg/database"
	"github.com/diqie123/sistem-entri-data-inventaris/pkg/health"
	pkgkafka "github.com/diqie123/sistem-entri-data-inventaris/pkg/kafka"
	"github.com/diqie123/sistem-entri-data-inventaris/pkg/middleware"
	"github.com/diqie123/sistem-entri-data-inventaris/pkg/tracing"
)

const serviceName = "inventory-console"

// App wires together all dependencies and runs the inventory console.
type App struct {
	cfg            *config.Config
	logger         *slog.Logger
	rdb            *redis.Client
	publisher      pkgkafka.Publisher
	importLimiter  *middleware.RateLimiter
	tracerShutdown func(context.Context) error
	httpServer     *http.Server
}

// NewApp creates a new application instance, initializing all dependencies.
func NewApp(cfg *config.Config, logger *slog.Logger) (*App, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	a := &App{cfg: cfg, logger: logger}

	// Initialize OpenTelemetry tracing.
	tracingCfg := tracing.DefaultConfig(serviceName)
	tracingCfg.Environment = cfg.Environment
	tracingCfg.OTLPEndpoint = cfg.OTELEndpoint
	tracingCfg.SampleRate = cfg.OTELSampleRate
	tracingCfg.Enabled = cfg.OTELEnabled
	tracerShutdown, err := tracing.InitTracer(ctx, tracingCfg)
	if err != nil {
		return nil, fmt.Errorf("init tracer: %w", err)
	}
	a.tracerShutdown = tracerShutdown

	// Load the initial inventory.
	var products []domain.Product
	var categories []string
	if cfg.SeedEnabled {
		ds, err := seed.Load(cfg.SeedFile)
		if err != nil {
			return nil, fmt.Errorf("load seed: %w", err)
		}
		products, categories = ds.Products, ds.Categories
		logger.Info("seed dataset loaded",
			slog.Int("products", len(products)),
			slog.Int("extra_categories", len(categories)),
		)
	}
	store := memory.NewStore(products, categories)

	healthHandler := health.NewHandler()

	// Session store: Redis when enabled, in-process otherwise.
	var sessionRepo repository.SessionRepository
	if cfg.RedisEnabled {
		rdb, err := database.NewRedisClient(ctx, cfg.Redis())
		if err != nil {
			return nil, fmt.Errorf("connect to redis: %w", err)
		}
		logger.Info("connected to Redis",
			slog.String("addr", cfg.Redis().Addr()),
			slog.Int("db", cfg.RedisDB),
		)
		a.rdb = rdb

		cbCfg := breaker.DefaultConfig("redis-session")
		cbCfg.IsSuccessful = redisrepo.IsSuccessful
		sessionRepo = redisrepo.NewSessionRepository(rdb, breaker.New(cbCfg, logger), cfg.DraftTTL)
		healthHandler.RegisterNonCritical("redis", database.RedisChecker(rdb))
	} else {
		sessionRepo = memory.NewSessionRepository()
	}

	// Event publishing: Kafka when enabled, discarded otherwise.
	if cfg.KafkaEnabled {
		producer := pkgkafka.NewProducer(pkgkafka.DefaultProducerConfig(cfg.KafkaBrokers), logger)
		a.publisher = producer
		healthHandler.RegisterNonCritical("kafka", producer.Ping)
		logger.Info("kafka producer initialized", slog.Any("brokers", cfg.KafkaBrokers))
	} else {
		a.publisher = pkgkafka.NopPublisher{}
	}

	// Build the dependency graph.
	session := view.NewSession(cfg.ProductPageSize)
	queue := notify.NewQueue(cfg.NotificationTTL)
	eventProducer := event.NewProducer(a.publisher, logger)
	sessionService := service.NewSessionService(sessionRepo, logger)
	productService := service.NewProductService(store, session, eventProducer, queue, sessionService, cfg.LowStockThreshold, logger)

	if err := productService.RefreshMetrics(ctx); err != nil {
		return nil, fmt.Errorf("refresh inventory metrics: %w", err)
	}

	svcs := handler.Services{
		Products:      productService,
		Categories:    service.NewCategoryService(store, session, eventProducer, queue, logger),
		Imports:       service.NewImportService(store, session, eventProducer, queue, logger),
		Exports:       service.NewExportService(store, session, queue, cfg.LowStockThreshold, logger),
		Dashboard:     service.NewDashboardService(store, cfg.LowStockThreshold),
		History:       service.NewHistoryService(store.AuditLogs(), cfg.AuditPageSize),
		Views:         service.NewViewService(store.Products(), session, productService, cfg.LowStockThreshold),
		Session:       sessionService,
		Notifications: queue,
	}

	a.importLimiter = middleware.NewRateLimiter(cfg.ImportRateLimitRPS, cfg.ImportRateLimitBurst, 0, logger)

	// HTTP router.
	router := handler.NewRouter(svcs, healthHandler, handler.RouterConfig{
		Environment:     cfg.Environment,
		CORSOrigins:     cfg.CORSAllowedOrigins,
		PprofCIDRs:      cfg.PprofAllowedCIDRs,
		ProductPageSize: cfg.ProductPageSize,
		ImportMaxBytes:  cfg.ImportMaxBytes,
		ImportLimiter:   a.importLimiter,
	}, logger)

	a.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return a, nil
}

// Run starts the HTTP server and blocks until the context is canceled.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		a.logger.Info("starting HTTP server",
			slog.String("addr", a.httpServer.Addr),
		)
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("shutdown signal received")
	case err := <-errCh:
		_ = a.Shutdown()
		return err
	}

	return a.Shutdown()
}

// Shutdown gracefully stops all components.
func (a *App) Shutdown() error {
	a.logger.Info("shutting down application...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.httpServer.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("http server shutdown error", slog.String("error", err.Error()))
	}

	a.importLimiter.Stop()

	if err := a.publisher.Close(); err != nil {
		a.logger.Error("kafka producer close error", slog.String("error", err.Error()))
	}

	if a.rdb != nil {
		if err := a.rdb.Close(); err != nil {
			a.logger.Error("redis close error", slog.String("error", err.Error()))
		}
	}

	if err := a.tracerShutdown(shutdownCtx); err != nil {
		a.logger.Error("tracer shutdown error", slog.String("error", err.Error()))
	}

	a.logger.Info("application shutdown complete")
	return nil
}
