package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/diqie123/sistem-entri-data-inventaris/internal/domain"
	"github.com/diqie123/sistem-entri-data-inventaris/internal/service"
	apperrors "github.com/diqie123/sistem-entri-data-inventaris/pkg/errors"
	"github.com/diqie123/sistem-entri-data-inventaris/pkg/httputil"
	"github.com/diqie123/sistem-entri-data-inventaris/pkg/pagination"
	"github.com/diqie123/sistem-entri-data-inventaris/pkg/validator"
)

// ProductHandler handles HTTP requests for product endpoints.
type ProductHandler struct {
	service  *service.ProductService
	pageSize int
	logger   *slog.Logger
}

// NewProductHandler creates a new product HTTP handler.
func NewProductHandler(svc *service.ProductService, pageSize int, logger *slog.Logger) *ProductHandler {
	return &ProductHandler{
		service:  svc,
		pageSize: pageSize,
		logger:   logger,
	}
}

// --- Request DTOs ---

// BulkDeleteRequest is the JSON request body for deleting several products.
type BulkDeleteRequest struct {
	IDs []string `json:"ids" validate:"required,min=1,dive,required"`
}

// DeletedResponse reports how many products a bulk delete removed.
type DeletedResponse struct {
	Deleted int `json:"deleted"`
}

// ListProducts handles GET /api/v1/products
//
// It reads search, status, category, sort, direction, page and per_page from
// the query string and leaves the console session untouched.
func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	sortCfg := domain.DefaultSortConfig()
	if key := q.Get("sort"); key != "" {
		sortCfg.Key = key
	}
	switch dir := domain.SortDirection(q.Get("direction")); dir {
	case "":
	case domain.SortAscending, domain.SortDescending:
		sortCfg.Direction = dir
	default:
		httputil.WriteError(w, r, apperrors.InvalidInput("direction must be ascending or descending"), h.logger)
		return
	}

	status := q.Get("status")
	if status != "" && status != domain.StatusAll {
		if _, ok := domain.ParseStatus(status); !ok {
			httputil.WriteError(w, r, apperrors.InvalidInput("unknown status: "+status), h.logger)
			return
		}
	}

	result, err := h.service.List(r.Context(), service.ListQuery{
		Filters: domain.ViewQuery{
			Search:   q.Get("search"),
			Status:   status,
			Category: q.Get("category"),
		},
		Sort: sortCfg,
		Page: pagination.FromRequest(r, h.pageSize),
	})
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: result})
}

// GetProduct handles GET /api/v1/products/{id}
func (h *ProductHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	product, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: product})
}

// CreateProduct handles POST /api/v1/products
func (h *ProductHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var draft domain.Draft
	if !decodeJSON(w, r, &draft) {
		return
	}

	product, err := h.service.Create(r.Context(), &draft)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, httputil.Response{Data: product})
}

// UpdateProduct handles PUT /api/v1/products/{id}
//
// Every field of the body is optional; absent fields keep their value.
func (h *ProductHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	var patch domain.Patch
	if !decodeJSON(w, r, &patch) {
		return
	}

	product, err := h.service.Update(r.Context(), chi.URLParam(r, "id"), patch)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: product})
}

// DeleteProduct handles DELETE /api/v1/products/{id}
func (h *ProductHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.service.Delete(r.Context(), id); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: map[string]string{"id": id, "status": "deleted"}})
}

// BulkDeleteProducts handles POST /api/v1/products/bulk-delete
func (h *ProductHandler) BulkDeleteProducts(w http.ResponseWriter, r *http.Request) {
	var req BulkDeleteRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := validator.Validate(req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	n, err := h.service.DeleteMany(r.Context(), req.IDs)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: DeletedResponse{Deleted: n}})
}

// DuplicateProduct handles POST /api/v1/products/{id}/duplicate
//
// The response is a pre-filled draft; nothing is stored until it is created.
func (h *ProductHandler) DuplicateProduct(w http.ResponseWriter, r *http.Request) {
	draft, err := h.service.Duplicate(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: draft})
}

// GetProductHistory handles GET /api/v1/products/{id}/history
func (h *ProductHandler) GetProductHistory(w http.ResponseWriter, r *http.Request) {
	logs, err := h.service.History(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	if logs == nil {
		logs = []domain.AuditLog{}
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: logs})
}
