package http

import (
	"log/slog"
	"net/http"

	"github.com/diqie123/sistem-entri-data-inventaris/internal/service"
	"github.com/diqie123/sistem-entri-data-inventaris/pkg/httputil"
)

// DashboardHandler serves the inventory summary.
type DashboardHandler struct {
	service *service.DashboardService
	logger  *slog.Logger
}

// NewDashboardHandler creates a new dashboard HTTP handler.
func NewDashboardHandler(svc *service.DashboardService, logger *slog.Logger) *DashboardHandler {
	return &DashboardHandler{
		service: svc,
		logger:  logger,
	}
}

// GetStats handles GET /api/v1/dashboard
func (h *DashboardHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.Stats(r.Context())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: stats})
}
