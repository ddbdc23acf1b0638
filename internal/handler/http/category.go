package http

import (
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/diqie123/sistem-entri-data-inventaris/internal/service"
	apperrors "github.com/diqie123/sistem-entri-data-inventaris/pkg/errors"
	"github.com/diqie123/sistem-entri-data-inventaris/pkg/httputil"
	"github.com/diqie123/sistem-entri-data-inventaris/pkg/validator"
)

// CategoryHandler handles HTTP requests for the category registry.
type CategoryHandler struct {
	service *service.CategoryService
	logger  *slog.Logger
}

// NewCategoryHandler creates a new category HTTP handler.
func NewCategoryHandler(svc *service.CategoryService, logger *slog.Logger) *CategoryHandler {
	return &CategoryHandler{
		service: svc,
		logger:  logger,
	}
}

// CategoryRequest is the JSON request body for adding or renaming a category.
type CategoryRequest struct {
	Name string `json:"name" validate:"notblank"`
}

// ListCategories handles GET /api/v1/categories
func (h *CategoryHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.service.List(r.Context())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: categories})
}

// AddCategory handles POST /api/v1/categories
func (h *CategoryHandler) AddCategory(w http.ResponseWriter, r *http.Request) {
	var req CategoryRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := validator.Validate(req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	if err := h.service.Add(r.Context(), req.Name); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, httputil.Response{Data: map[string]string{"name": strings.TrimSpace(req.Name)}})
}

// RenameCategory handles PUT /api/v1/categories/{name}
func (h *CategoryHandler) RenameCategory(w http.ResponseWriter, r *http.Request) {
	oldName, ok := h.nameParam(w, r)
	if !ok {
		return
	}

	var req CategoryRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := validator.Validate(req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	if err := h.service.Rename(r.Context(), oldName, req.Name); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: map[string]string{
		"previous_name": oldName,
		"name":          strings.TrimSpace(req.Name),
	}})
}

// RemoveCategory handles DELETE /api/v1/categories/{name}
func (h *CategoryHandler) RemoveCategory(w http.ResponseWriter, r *http.Request) {
	name, ok := h.nameParam(w, r)
	if !ok {
		return
	}

	if err := h.service.Remove(r.Context(), name); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: map[string]string{"name": name, "status": "deleted"}})
}

// nameParam returns the unescaped {name} path segment. chi matches on the raw
// path when the request carries escaped slashes.
func (h *CategoryHandler) nameParam(w http.ResponseWriter, r *http.Request) (string, bool) {
	name := chi.URLParam(r, "name")
	if r.URL.RawPath == "" {
		return name, true
	}
	name, err := url.PathUnescape(name)
	if err != nil {
		httputil.WriteError(w, r, apperrors.InvalidInput("invalid category name in path"), h.logger)
		return "", false
	}
	return name, true
}
