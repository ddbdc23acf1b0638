package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/diqie123/sistem-entri-data-inventaris/internal/domain"
	"github.com/diqie123/sistem-entri-data-inventaris/internal/event"
	"github.com/diqie123/sistem-entri-data-inventaris/internal/notify"
	"github.com/diqie123/sistem-entri-data-inventaris/internal/repository/memory"
	"github.com/diqie123/sistem-entri-data-inventaris/internal/service"
	"github.com/diqie123/sistem-entri-data-inventaris/internal/view"
	"github.com/diqie123/sistem-entri-data-inventaris/pkg/health"
	"github.com/diqie123/sistem-entri-data-inventaris/pkg/httputil"
	pkgkafka "github.com/diqie123/sistem-entri-data-inventaris/pkg/kafka"
	"github.com/diqie123/sistem-entri-data-inventaris/pkg/middleware"
)

var testNow = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

// ============================================================================
// Test helpers
// ============================================================================

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))
}

func sequentialIDs() func() string {
	var (
		mu sync.Mutex
		n  int
	)
	return func() string {
		mu.Lock()
		defer mu.Unlock()
		n++
		return fmt.Sprintf("id-%03d", n)
	}
}

func testProduct(id, name, sku, category string, price int64, stock int) domain.Product {
	ts := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	return domain.Product{
		ID:          id,
		Name:        name,
		SKU:         sku,
		Category:    category,
		Price:       decimal.NewFromInt(price),
		Stock:       stock,
		Status:      domain.StatusActive,
		LastUpdated: ts,
		DateAdded:   ts,
	}
}

func seedProducts() []domain.Product {
	return []domain.Product{
		testProduct("p1", "Lamp", "L-1", "Home", 10, 20),
		testProduct("p2", "Mouse", "M-1", "Electronics", 25, 5),
		testProduct("p3", "Cable", "C-1", "Electronics", 3, 0),
	}
}

type testServer struct {
	handler http.Handler
	store   *memory.Store
	queue   *notify.Queue
}

type serverOption func(*RouterConfig)

func withImportLimiter(l *middleware.RateLimiter) serverOption {
	return func(c *RouterConfig) { c.ImportLimiter = l }
}

func withImportMaxBytes(n int64) serverOption {
	return func(c *RouterConfig) { c.ImportMaxBytes = n }
}

// newTestServer wires the production router over an in-memory store holding
// products, the categories of products plus "Books", and a view page size of 2.
func newTestServer(t *testing.T, products []domain.Product, opts ...serverOption) *testServer {
	t.Helper()

	logger := testLogger()
	clock := func() time.Time { return testNow }
	svcOpts := []service.Option{service.WithClock(clock), service.WithIDGenerator(sequentialIDs())}
	threshold := domain.DefaultLowStockThreshold

	store := memory.NewStore(products, []string{"Books"})
	session := view.NewSession(2)
	queue := notify.NewQueue(time.Hour, notify.WithClock(clock))
	producer := event.NewProducer(pkgkafka.NopPublisher{}, logger)
	drafts := service.NewSessionService(memory.NewSessionRepository(), logger)
	productSvc := service.NewProductService(store, session, producer, queue, drafts, threshold, logger, svcOpts...)

	svcs := Services{
		Products:      productSvc,
		Categories:    service.NewCategoryService(store, session, producer, queue, logger),
		Imports:       service.NewImportService(store, session, producer, queue, logger, svcOpts...),
		Exports:       service.NewExportService(store, session, queue, threshold, logger, svcOpts...),
		Dashboard:     service.NewDashboardService(store, threshold),
		History:       service.NewHistoryService(store.AuditLogs(), 2),
		Views:         service.NewViewService(store.Products(), session, productSvc, threshold),
		Session:       drafts,
		Notifications: queue,
	}

	cfg := RouterConfig{
		Environment:     "development",
		PprofCIDRs:      []string{"127.0.0.0/8"},
		ProductPageSize: 10,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	return &testServer{
		handler: NewRouter(svcs, health.NewHandler(), cfg, logger),
		store:   store,
		queue:   queue,
	}
}

// do sends body as JSON (when non-nil) and returns the recorded response.
func (s *testServer) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

func (s *testServer) send(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

func (s *testServer) productIDs(t *testing.T) []string {
	t.Helper()
	products, err := s.store.Products().List(context.Background())
	require.NoError(t, err)
	ids := make([]string, len(products))
	for i, p := range products {
		ids[i] = p.ID
	}
	return ids
}

func (s *testServer) messages() []string {
	active := s.queue.Active()
	out := make([]string, len(active))
	for i, n := range active {
		out[i] = n.Message
	}
	return out
}

// envelope mirrors httputil.Response with a typed payload.
type envelope[T any] struct {
	Data  T                       `json:"data"`
	Error *httputil.ErrorResponse `json:"error"`
}

// decodeData reads the response body into an envelope carrying T.
func decodeData[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var env envelope[T]
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&env))
	require.Nil(t, env.Error, "unexpected error envelope")
	return env.Data
}

// decodeError reads the error part of the response body.
func decodeError(t *testing.T, rec *httptest.ResponseRecorder) *httputil.ErrorResponse {
	t.Helper()
	var resp httputil.Response
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.NotNil(t, resp.Error, "expected an error envelope")
	return resp.Error
}
