package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/diqie123/sistem-entri-data-inventaris/internal/notify"
	apperrors "github.com/diqie123/sistem-entri-data-inventaris/pkg/errors"
	"github.com/diqie123/sistem-entri-data-inventaris/pkg/httputil"
)

// NotificationHandler serves the transient notification queue.
type NotificationHandler struct {
	queue  *notify.Queue
	logger *slog.Logger
}

// NewNotificationHandler creates a new notification HTTP handler.
func NewNotificationHandler(queue *notify.Queue, logger *slog.Logger) *NotificationHandler {
	return &NotificationHandler{
		queue:  queue,
		logger: logger,
	}
}

// ListNotifications handles GET /api/v1/notifications
//
// Only unexpired notifications are returned, oldest first.
func (h *NotificationHandler) ListNotifications(w http.ResponseWriter, _ *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: h.queue.Active()})
}

// DismissNotification handles DELETE /api/v1/notifications/{id}
func (h *NotificationHandler) DismissNotification(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !h.queue.Dismiss(id) {
		httputil.WriteError(w, r, apperrors.NotFound("notification", id), h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: map[string]string{"id": id, "status": "dismissed"}})
}
