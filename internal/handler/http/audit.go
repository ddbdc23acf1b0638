package http

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/diqie123/sistem-entri-data-inventaris/internal/domain"
	"github.com/diqie123/sistem-entri-data-inventaris/internal/service"
	apperrors "github.com/diqie123/sistem-entri-data-inventaris/pkg/errors"
	"github.com/diqie123/sistem-entri-data-inventaris/pkg/httputil"
)

// dateLayout is the calendar-day format of the start and end filters.
const dateLayout = "2006-01-02"

// AuditHandler serves the audit log.
type AuditHandler struct {
	service *service.HistoryService
	logger  *slog.Logger
}

// NewAuditHandler creates a new audit log HTTP handler.
func NewAuditHandler(svc *service.HistoryService, logger *slog.Logger) *AuditHandler {
	return &AuditHandler{
		service: svc,
		logger:  logger,
	}
}

// ListAuditLogs handles GET /api/v1/audit-logs
//
// Query parameters: search, action (all, CREATE, UPDATE or DELETE), start and
// end (YYYY-MM-DD, both inclusive) and page.
func (h *AuditHandler) ListAuditLogs(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	query := domain.AuditQuery{
		Search: q.Get("search"),
		Action: q.Get("action"),
	}

	var err error
	if query.Start, err = parseDay(q.Get("start")); err != nil {
		httputil.WriteError(w, r, apperrors.InvalidInput("start must be a date in YYYY-MM-DD format"), h.logger)
		return
	}
	if query.End, err = parseDay(q.Get("end")); err != nil {
		httputil.WriteError(w, r, apperrors.InvalidInput("end must be a date in YYYY-MM-DD format"), h.logger)
		return
	}

	page := 1
	if raw := q.Get("page"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			page = v
		}
	}

	result, err := h.service.List(r.Context(), query, page)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: result})
}

func parseDay(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	t, err := time.ParseInLocation(dateLayout, raw, time.UTC)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
