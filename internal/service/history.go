package service

import (
	"context"
	"fmt"

	"github.com/diqie123/sistem-entri-data-inventaris/internal/domain"
	"github.com/diqie123/sistem-entri-data-inventaris/internal/repository"
	"github.com/diqie123/sistem-entri-data-inventaris/internal/view"
	apperrors "github.com/diqie123/sistem-entri-data-inventaris/pkg/errors"
	"github.com/diqie123/sistem-entri-data-inventaris/pkg/pagination"
)

// DefaultAuditPageSize is the number of audit entries per page.
const DefaultAuditPageSize = 15

// HistoryService browses the audit log.
type HistoryService struct {
	logs     repository.AuditLogRepository
	pageSize int
}

// NewHistoryService creates a new history service.
func NewHistoryService(logs repository.AuditLogRepository, pageSize int) *HistoryService {
	if pageSize < 1 {
		pageSize = DefaultAuditPageSize
	}
	return &HistoryService{logs: logs, pageSize: pageSize}
}

// List returns one page of the audit entries matching q, newest first.
func (s *HistoryService) List(ctx context.Context, q domain.AuditQuery, page int) (*pagination.Result[domain.AuditLog], error) {
	if q.Action != "" && q.Action != domain.ActionAll && !domain.AuditAction(q.Action).IsValid() {
		return nil, apperrors.InvalidInput("unknown audit action: " + q.Action)
	}

	logs, err := s.logs.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list audit logs: %w", err)
	}

	matched := make([]domain.AuditLog, 0, len(logs))
	for _, l := range logs {
		if q.Matches(l) {
			matched = append(matched, l)
		}
	}

	result := view.Paginate(matched, page, s.pageSize)
	return &result, nil
}
