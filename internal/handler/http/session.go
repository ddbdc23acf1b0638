package http

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/diqie123/sistem-entri-data-inventaris/internal/domain"
	"github.com/diqie123/sistem-entri-data-inventaris/internal/service"
	apperrors "github.com/diqie123/sistem-entri-data-inventaris/pkg/errors"
	"github.com/diqie123/sistem-entri-data-inventaris/pkg/httputil"
	"github.com/diqie123/sistem-entri-data-inventaris/pkg/validator"
)

// SessionHandler serves the new-product draft and the theme preference.
type SessionHandler struct {
	service *service.SessionService
	logger  *slog.Logger
}

// NewSessionHandler creates a new session HTTP handler.
func NewSessionHandler(svc *service.SessionService, logger *slog.Logger) *SessionHandler {
	return &SessionHandler{
		service: svc,
		logger:  logger,
	}
}

// ThemeRequest is the JSON request body for storing the theme.
type ThemeRequest struct {
	Theme domain.Theme `json:"theme" validate:"required,oneof=dark light"`
}

// ThemeResponse carries the effective theme.
type ThemeResponse struct {
	Theme domain.Theme `json:"theme"`
}

// GetDraft handles GET /api/v1/session/draft
func (h *SessionHandler) GetDraft(w http.ResponseWriter, r *http.Request) {
	draft, ok := h.service.LoadDraft(r.Context())
	if !ok {
		httputil.WriteError(w, r, apperrors.NotFound("draft", domain.DraftStorageKey), h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: draft})
}

// SaveDraft handles PUT /api/v1/session/draft
//
// Drafts are stored as typed, without validation.
func (h *SessionHandler) SaveDraft(w http.ResponseWriter, r *http.Request) {
	var draft domain.Draft
	if !decodeJSON(w, r, &draft) {
		return
	}

	h.service.SaveDraft(r.Context(), &draft)
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: draft})
}

// DiscardDraft handles DELETE /api/v1/session/draft
func (h *SessionHandler) DiscardDraft(w http.ResponseWriter, r *http.Request) {
	h.service.DiscardDraft(r.Context())
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: map[string]string{"status": "discarded"}})
}

// GetTheme handles GET /api/v1/session/theme
//
// prefers_dark carries the platform preference used when no theme is stored.
func (h *SessionHandler) GetTheme(w http.ResponseWriter, r *http.Request) {
	prefersDark, _ := strconv.ParseBool(r.URL.Query().Get("prefers_dark"))
	theme := h.service.Theme(r.Context(), prefersDark)

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: ThemeResponse{Theme: theme}})
}

// SetTheme handles PUT /api/v1/session/theme
func (h *SessionHandler) SetTheme(w http.ResponseWriter, r *http.Request) {
	var req ThemeRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := validator.Validate(req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	if err := h.service.SetTheme(r.Context(), req.Theme); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: ThemeResponse{Theme: req.Theme}})
}
