package memory

import (
	"context"

	"github.com/diqie123/sistem-entri-data-inventaris/internal/domain"
)

// AuditLogRepository implements repository.AuditLogRepository over a Store.
type AuditLogRepository struct {
	access access
}

// Append records entries; the last one becomes the newest.
func (r *AuditLogRepository) Append(ctx context.Context, entries ...domain.AuditLog) error {
	if len(entries) == 0 {
		return nil
	}
	return r.access(ctx, true, func(st *state) error {
		st.logs = append(st.logs, entries...)
		return nil
	})
}

// List returns every entry, newest first.
func (r *AuditLogRepository) List(ctx context.Context) ([]domain.AuditLog, error) {
	return r.collect(ctx, func(domain.AuditLog) bool { return true })
}

// ListByProduct returns the entries of one product, newest first.
func (r *AuditLogRepository) ListByProduct(ctx context.Context, productID string) ([]domain.AuditLog, error) {
	return r.collect(ctx, func(l domain.AuditLog) bool { return l.ProductID == productID })
}

func (r *AuditLogRepository) collect(ctx context.Context, keep func(domain.AuditLog) bool) ([]domain.AuditLog, error) {
	out := []domain.AuditLog{}
	err := r.access(ctx, false, func(st *state) error {
		for i := len(st.logs) - 1; i >= 0; i-- {
			if keep(st.logs[i]) {
				out = append(out, st.logs[i])
			}
		}
		return nil
	})
	return out, err
}
