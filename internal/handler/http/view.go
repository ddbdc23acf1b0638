package http

import (
	"log/slog"
	"net/http"

	"github.com/diqie123/sistem-entri-data-inventaris/internal/domain"
	"github.com/diqie123/sistem-entri-data-inventaris/internal/service"
	"github.com/diqie123/sistem-entri-data-inventaris/pkg/httputil"
	"github.com/diqie123/sistem-entri-data-inventaris/pkg/validator"
)

// ViewHandler exposes the console table session: filters, sort, page and
// selection.
type ViewHandler struct {
	service *service.ViewService
	logger  *slog.Logger
}

// NewViewHandler creates a new view HTTP handler.
func NewViewHandler(svc *service.ViewService, logger *slog.Logger) *ViewHandler {
	return &ViewHandler{
		service: svc,
		logger:  logger,
	}
}

// --- Request DTOs ---

// SortRequest names the column whose header was clicked.
type SortRequest struct {
	Key string `json:"key" validate:"required"`
}

// PageRequest moves the table to a page. Out-of-range pages are clamped.
type PageRequest struct {
	Page int `json:"page"`
}

// SelectionRequest selects or deselects products by id.
type SelectionRequest struct {
	IDs      []string `json:"ids" validate:"required,min=1"`
	Selected bool     `json:"selected"`
}

// PageSelectionRequest selects or deselects every product on the visible page.
type PageSelectionRequest struct {
	Selected bool `json:"selected"`
}

// GetTable handles GET /api/v1/view
func (h *ViewHandler) GetTable(w http.ResponseWriter, r *http.Request) {
	table, err := h.service.Table(r.Context())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: table})
}

// SetFilters handles PUT /api/v1/view/filters
func (h *ViewHandler) SetFilters(w http.ResponseWriter, r *http.Request) {
	q := domain.DefaultViewQuery()
	if !decodeJSON(w, r, &q) {
		return
	}

	table, err := h.service.SetFilters(r.Context(), q)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: table})
}

// RequestSort handles POST /api/v1/view/sort
//
// Requesting the current key toggles the direction; any other key sorts
// ascending.
func (h *ViewHandler) RequestSort(w http.ResponseWriter, r *http.Request) {
	var req SortRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := validator.Validate(req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	table, err := h.service.RequestSort(r.Context(), req.Key)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: table})
}

// SetPage handles PUT /api/v1/view/page
func (h *ViewHandler) SetPage(w http.ResponseWriter, r *http.Request) {
	var req PageRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	table, err := h.service.SetPage(r.Context(), req.Page)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: table})
}

// Select handles PUT /api/v1/view/selection
func (h *ViewHandler) Select(w http.ResponseWriter, r *http.Request) {
	var req SelectionRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := validator.Validate(req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	state, err := h.service.Select(r.Context(), req.IDs, req.Selected)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: state})
}

// SelectPage handles POST /api/v1/view/selection/page
func (h *ViewHandler) SelectPage(w http.ResponseWriter, r *http.Request) {
	var req PageSelectionRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	state, err := h.service.SelectPage(r.Context(), req.Selected)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: state})
}

// ClearSelection handles DELETE /api/v1/view/selection
func (h *ViewHandler) ClearSelection(w http.ResponseWriter, _ *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: h.service.ClearSelection()})
}

// DeleteSelected handles DELETE /api/v1/view/selection/products
func (h *ViewHandler) DeleteSelected(w http.ResponseWriter, r *http.Request) {
	n, err := h.service.DeleteSelected(r.Context())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: DeletedResponse{Deleted: n}})
}
