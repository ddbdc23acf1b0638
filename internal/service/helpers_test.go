package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/shopspring/decimal"

	"github.com/diqie123/sistem-entri-data-inventaris/internal/domain"
	"github.com/diqie123/sistem-entri-data-inventaris/internal/event"
	"github.com/diqie123/sistem-entri-data-inventaris/internal/notify"
	"github.com/diqie123/sistem-entri-data-inventaris/internal/repository/memory"
	"github.com/diqie123/sistem-entri-data-inventaris/internal/view"
	pkgkafka "github.com/diqie123/sistem-entri-data-inventaris/pkg/kafka"
)

var testNow = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

// --- Recording publisher ---

type recordingPublisher struct {
	mu     sync.Mutex
	topics []string
}

func (p *recordingPublisher) Publish(_ context.Context, topic string, _ *pkgkafka.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.topics = append(p.topics, topic)
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

func (p *recordingPublisher) Topics() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.topics...)
}

// --- Test environment ---

type testEnv struct {
	store     *memory.Store
	session   *view.Session
	notifier  *notify.Queue
	publisher *recordingPublisher
	drafts    *SessionService
	draftRepo *memory.SessionRepository

	products   *ProductService
	categories *CategoryService
	imports    *ImportService
	exports    *ExportService
	dashboard  *DashboardService
	history    *HistoryService
	views      *ViewService
}

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
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

func newTestEnv(t *testing.T, products ...domain.Product) *testEnv {
	t.Helper()

	logger := newTestLogger()
	opts := []Option{WithClock(func() time.Time { return testNow }), WithIDGenerator(sequentialIDs())}

	env := &testEnv{
		store:     memory.NewStore(products, []string{"Books"}),
		session:   view.NewSession(2),
		notifier:  notify.NewQueue(time.Hour, notify.WithClock(func() time.Time { return testNow })),
		publisher: &recordingPublisher{},
		draftRepo: memory.NewSessionRepository(),
	}
	producer := event.NewProducer(env.publisher, logger)
	env.drafts = NewSessionService(env.draftRepo, logger)

	env.products = NewProductService(env.store, env.session, producer, env.notifier, env.drafts, domain.DefaultLowStockThreshold, logger, opts...)
	env.categories = NewCategoryService(env.store, env.session, producer, env.notifier, logger)
	env.imports = NewImportService(env.store, env.session, producer, env.notifier, logger, opts...)
	env.exports = NewExportService(env.store, env.session, env.notifier, domain.DefaultLowStockThreshold, logger, opts...)
	env.dashboard = NewDashboardService(env.store, domain.DefaultLowStockThreshold)
	env.history = NewHistoryService(env.store.AuditLogs(), 2)
	env.views = NewViewService(env.store.Products(), env.session, env.products, domain.DefaultLowStockThreshold)
	return env
}

func (e *testEnv) auditLogs(t *testing.T) []domain.AuditLog {
	t.Helper()
	logs, err := e.store.AuditLogs().List(context.Background())
	if err != nil {
		t.Fatalf("list audit logs: %v", err)
	}
	return logs
}

func (e *testEnv) productIDs(t *testing.T) []string {
	t.Helper()
	products, err := e.store.Products().List(context.Background())
	if err != nil {
		t.Fatalf("list products: %v", err)
	}
	ids := make([]string, len(products))
	for i, p := range products {
		ids[i] = p.ID
	}
	return ids
}

func (e *testEnv) messages() []string {
	active := e.notifier.Active()
	out := make([]string, len(active))
	for i, n := range active {
		out[i] = n.Message
	}
	return out
}

// counterValue reads the current value of a labelled counter.
func counterValue(t *testing.T, c prometheus.Collector, labels map[string]string) float64 {
	t.Helper()
	ch := make(chan prometheus.Metric, 100)
	c.Collect(ch)
	close(ch)

	for m := range ch {
		d := &dto.Metric{}
		if err := m.Write(d); err != nil {
			continue
		}
		match := true
		for k, v := range labels {
			found := false
			for _, lp := range d.GetLabel() {
				if lp.GetName() == k && lp.GetValue() == v {
					found = true
					break
				}
			}
			if !found {
				match = false
				break
			}
		}
		if match {
			if d.GetCounter() != nil {
				return d.GetCounter().GetValue()
			}
			return d.GetGauge().GetValue()
		}
	}
	return 0
}

func decimalPtr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func strPtr(s string) *string {
	return &s
}

func intPtr(i int) *int {
	return &i
}
