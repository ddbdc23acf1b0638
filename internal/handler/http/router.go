package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/diqie123/sistem-entri-data-inventaris/internal/notify"
	"github.com/diqie123/sistem-entri-data-inventaris/internal/service"
	"github.com/diqie123/sistem-entri-data-inventaris/pkg/health"
	"github.com/diqie123/sistem-entri-data-inventaris/pkg/middleware"
)

// serviceName labels metrics and spans emitted by the router.
const serviceName = "inventory-console"

// Services groups the application services exposed over HTTP.
type Services struct {
	Products      *service.ProductService
	Categories    *service.CategoryService
	Imports       *service.ImportService
	Exports       *service.ExportService
	Dashboard     *service.DashboardService
	History       *service.HistoryService
	Views         *service.ViewService
	Session       *service.SessionService
	Notifications *notify.Queue
}

// RouterConfig holds the transport settings of the router.
type RouterConfig struct {
	Environment     string
	CORSOrigins     []string
	PprofCIDRs      []string
	ProductPageSize int
	ImportMaxBytes  int64

	// ImportLimiter throttles the import endpoint per client IP. Nil disables it.
	ImportLimiter *middleware.RateLimiter
}

// NewRouter creates a chi router with all console routes registered.
func NewRouter(
	svcs Services,
	healthHandler *health.Handler,
	cfg RouterConfig,
	logger *slog.Logger,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.CORS(middleware.NewCORSConfig(cfg.Environment, cfg.CORSOrigins)))
	r.Use(chimw.Compress(5))
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(middleware.RequestLogging(logger))
	r.Use(middleware.PrometheusMetrics(serviceName))
	r.Use(middleware.Tracing(serviceName))
	r.Use(middleware.RequestLogger(logger))

	// Health check endpoints
	r.Get("/health/live", healthHandler.LivenessHandler())
	r.Get("/health/ready", healthHandler.ReadinessHandler())
	r.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		promhttp.Handler().ServeHTTP(w, r)
	})

	// Pprof debug endpoints with IP allowlist.
	middleware.RegisterPprof(r, cfg.PprofCIDRs, logger)

	productHandler := NewProductHandler(svcs.Products, cfg.ProductPageSize, logger)
	transferHandler := NewTransferHandler(svcs.Imports, svcs.Exports, cfg.ImportMaxBytes, logger)
	viewHandler := NewViewHandler(svcs.Views, logger)
	categoryHandler := NewCategoryHandler(svcs.Categories, logger)
	auditHandler := NewAuditHandler(svcs.History, logger)
	dashboardHandler := NewDashboardHandler(svcs.Dashboard, logger)
	sessionHandler := NewSessionHandler(svcs.Session, logger)
	notificationHandler := NewNotificationHandler(svcs.Notifications, logger)

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/products", func(r chi.Router) {
			// Import accepts CSV bodies, so it sits outside the JSON-only group.
			r.Group(func(r chi.Router) {
				if cfg.ImportLimiter != nil {
					r.Use(cfg.ImportLimiter.Middleware())
				}
				r.Post("/import", transferHandler.Import)
			})

			r.Group(func(r chi.Router) {
				r.Use(ContentTypeJSON)

				r.Get("/", productHandler.ListProducts)
				r.Post("/", productHandler.CreateProduct)
				r.Get("/export", transferHandler.Export)
				r.Post("/bulk-delete", productHandler.BulkDeleteProducts)
				r.Get("/{id}", productHandler.GetProduct)
				r.Put("/{id}", productHandler.UpdateProduct)
				r.Delete("/{id}", productHandler.DeleteProduct)
				r.Post("/{id}/duplicate", productHandler.DuplicateProduct)
				r.Get("/{id}/history", productHandler.GetProductHistory)
			})
		})

		r.Group(func(r chi.Router) {
			r.Use(ContentTypeJSON)

			r.Route("/view", func(r chi.Router) {
				r.Get("/", viewHandler.GetTable)
				r.Put("/filters", viewHandler.SetFilters)
				r.Post("/sort", viewHandler.RequestSort)
				r.Put("/page", viewHandler.SetPage)
				r.Put("/selection", viewHandler.Select)
				r.Post("/selection/page", viewHandler.SelectPage)
				r.Delete("/selection", viewHandler.ClearSelection)
				r.Delete("/selection/products", viewHandler.DeleteSelected)
			})

			r.Route("/categories", func(r chi.Router) {
				r.Get("/", categoryHandler.ListCategories)
				r.Post("/", categoryHandler.AddCategory)
				r.Put("/{name}", categoryHandler.RenameCategory)
				r.Delete("/{name}", categoryHandler.RemoveCategory)
			})

			r.Get("/audit-logs", auditHandler.ListAuditLogs)
			r.Get("/dashboard", dashboardHandler.GetStats)

			r.Route("/session", func(r chi.Router) {
				r.Get("/draft", sessionHandler.GetDraft)
				r.Put("/draft", sessionHandler.SaveDraft)
				r.Delete("/draft", sessionHandler.DiscardDraft)
				r.Get("/theme", sessionHandler.GetTheme)
				r.Put("/theme", sessionHandler.SetTheme)
			})

			r.Get("/notifications", notificationHandler.ListNotifications)
			r.Delete("/notifications/{id}", notificationHandler.DismissNotification)
		})
	})

	return r
}
