package http

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/diqie123/sistem-entri-data-inventaris/internal/domain"
	"github.com/diqie123/sistem-entri-data-inventaris/pkg/pagination"
)

// withAuditTrail writes one CREATE, one UPDATE and one DELETE entry, all
// stamped with testNow.
func withAuditTrail(t *testing.T, srv *testServer) {
	t.Helper()

	rec := srv.do(t, http.MethodPost, "/api/v1/products", map[string]any{
		"name": "Desk", "sku": "D-1", "category": "Home", "price": 120, "stock": 4,
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = srv.do(t, http.MethodPut, "/api/v1/products/p2", map[string]any{"stock": 9})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = srv.do(t, http.MethodDelete, "/api/v1/products/p3", nil)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestListAuditLogs(t *testing.T) {
	srv := newTestServer(t, seedProducts())
	withAuditTrail(t, srv)

	tests := []struct {
		name      string
		query     string
		total     int
		wantNames []string
	}{
		{"first page newest first", "", 3, []string{"Cable", "Mouse"}},
		{"second page", "?page=2", 3, []string{"Desk"}},
		{"action filter", "?action=UPDATE", 1, []string{"Mouse"}},
		{"explicit all", "?action=all&search=DESK", 1, []string{"Desk"}},
		{"end day is inclusive", "?start=2024-06-01&end=2024-06-01", 3, []string{"Cable", "Mouse"}},
		{"start after every entry", "?start=2024-06-02", 0, []string{}},
		{"end before every entry", "?end=2024-05-31", 0, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := srv.do(t, http.MethodGet, "/api/v1/audit-logs"+tt.query, nil)
			require.Equal(t, http.StatusOK, rec.Code)

			page := decodeData[pagination.Result[domain.AuditLog]](t, rec)
			assert.Equal(t, tt.total, page.TotalCount)
			names := make([]string, len(page.Data))
			for i, l := range page.Data {
				names[i] = l.ProductName
			}
			assert.Equal(t, tt.wantNames, names)
		})
	}
}

func TestListAuditLogs_InvalidQuery(t *testing.T) {
	srv := newTestServer(t, seedProducts())

	for _, q := range []string{"?action=PATCH", "?start=01/06/2024", "?end=2024-13-01"} {
		t.Run(q, func(t *testing.T) {
			rec := srv.do(t, http.MethodGet, "/api/v1/audit-logs"+q, nil)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, "INVALID_INPUT", decodeError(t, rec).Code)
		})
	}
}
