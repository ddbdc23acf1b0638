package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/diqie123/sistem-entri-data-inventaris/internal/csvimport"
	"github.com/diqie123/sistem-entri-data-inventaris/internal/domain"
	"github.com/diqie123/sistem-entri-data-inventaris/internal/event"
	"github.com/diqie123/sistem-entri-data-inventaris/internal/notify"
	"github.com/diqie123/sistem-entri-data-inventaris/internal/repository"
	"github.com/diqie123/sistem-entri-data-inventaris/internal/view"
	"github.com/diqie123/sistem-entri-data-inventaris/pkg/tracing"
)

// ImportService bulk-creates products from uploaded CSV files.
type ImportService struct {
	store    repository.Store
	session  *view.Session
	producer *event.Producer
	notifier *notify.Queue
	logger   *slog.Logger
	runtime
}

// NewImportService creates a new import service.
func NewImportService(
	store repository.Store,
	session *view.Session,
	producer *event.Producer,
	notifier *notify.Queue,
	logger *slog.Logger,
	opts ...Option,
) *ImportService {
	return &ImportService{
		store:    store,
		session:  session,
		producer: producer,
		notifier: notifier,
		logger:   logger,
		runtime:  newRuntime(opts),
	}
}

// Import reads a CSV document from r and commits every valid row in a single
// transaction, with one CREATE audit entry per product. Rejected rows are
// reported in the result; Import itself never fails. Reading r is the only
// step that waits; once parsing starts the import runs to completion even if
// ctx is cancelled.
func (s *ImportService) Import(ctx context.Context, r io.Reader) domain.ImportResult {
	ctx, span := tracing.Start(ctx, tracerName, "ImportService.Import")
	defer span.End()

	text, err := csvimport.Decode(r)
	if err != nil {
		s.logger.WarnContext(ctx, "import upload unreadable", slog.String("error", err.Error()))
		return s.finish(ctx, domain.ImportResult{
			Errors: []domain.ImportError{{Row: 0, Message: "could not read file: " + err.Error()}},
		}, nil, nil)
	}

	batch := csvimport.Parse(text, csvimport.Options{Now: s.now, NewID: s.newID})
	result := batch.Result()
	if len(batch.Products) == 0 {
		return s.finish(ctx, result, nil, nil)
	}

	products := batch.Products
	var added []string
	txCtx := context.WithoutCancel(ctx)
	err = s.store.WithinTx(txCtx, func(tx repository.Tx) error {
		var err error
		added, err = resolveCategories(txCtx, tx, products)
		if err != nil {
			return err
		}
		if err := tx.Products().Prepend(txCtx, products...); err != nil {
			return fmt.Errorf("insert imported products: %w", err)
		}

		now := s.now()
		entries := make([]domain.AuditLog, len(products))
		for i, p := range products {
			entries[i] = domain.NewCreateLog(s.newID(), now, p)
		}
		if err := tx.AuditLogs().Append(txCtx, entries...); err != nil {
			return fmt.Errorf("append audit logs: %w", err)
		}
		return observeProducts(txCtx, tx)
	})
	if err != nil {
		tracing.RecordError(span, err)
		s.logger.ErrorContext(ctx, "import commit failed", slog.String("error", err.Error()))
		return s.finish(ctx, domain.ImportResult{
			Errors: append(result.Errors, domain.ImportError{Row: 0, Message: "could not save imported products: " + err.Error()}),
		}, nil, nil)
	}

	recordAudit(domain.ActionCreate, len(products))
	s.session.ResetPage()
	return s.finish(ctx, result, products, added)
}

// resolveCategories files every product under the registered spelling of its
// category, registering names that are new. The first spelling of a new name
// wins for the whole batch. It returns the names registered.
func resolveCategories(ctx context.Context, tx repository.Tx, products []domain.Product) ([]string, error) {
	var added []string
	for i := range products {
		name, ok, err := tx.Categories().Lookup(ctx, products[i].Category)
		if err != nil {
			return nil, fmt.Errorf("lookup category: %w", err)
		}
		if ok {
			products[i].Category = name
			continue
		}
		if err := tx.Categories().Add(ctx, products[i].Category); err != nil {
			return nil, fmt.Errorf("register category: %w", err)
		}
		added = append(added, products[i].Category)
	}
	return added, nil
}

func (s *ImportService) finish(ctx context.Context, result domain.ImportResult, products []domain.Product, added []string) domain.ImportResult {
	if result.Errors == nil {
		result.Errors = []domain.ImportError{}
	}
	trace.SpanFromContext(ctx).SetAttributes(
		attribute.Int("import.accepted", result.SuccessCount),
		attribute.Int("import.rejected", len(result.Errors)),
		attribute.Int("import.categories_added", len(added)),
	)
	importRowsTotal.WithLabelValues(outcomeAccepted).Add(float64(result.SuccessCount))
	importRowsTotal.WithLabelValues(outcomeRejected).Add(float64(len(result.Errors)))

	switch {
	case len(result.Errors) == 1 && result.Errors[0].Message == csvimport.MsgEmptyFile:
		s.notifier.Error("Import failed: CSV file is empty.")
	case len(result.Errors) > 0 && result.SuccessCount > 0:
		s.notifier.Warning(fmt.Sprintf("Import complete: %d products added, %d errors.", result.SuccessCount, len(result.Errors)))
	case len(result.Errors) > 0:
		s.notifier.Error(fmt.Sprintf("Import failed with %d errors.", len(result.Errors)))
	default:
		s.notifier.Success(fmt.Sprintf("%d products imported successfully.", result.SuccessCount))
	}

	if len(products) > 0 {
		ids := make([]string, len(products))
		for i, p := range products {
			ids[i] = p.ID
		}
		data := event.ImportCompletedData{
			SuccessCount: result.SuccessCount,
			ErrorCount:   len(result.Errors),
			ProductIDs:   ids,
			Categories:   added,
		}
		if err := s.producer.PublishImportCompleted(ctx, s.newID(), data); err != nil {
			s.logger.ErrorContext(ctx, "failed to publish import.completed event",
				slog.String("error", err.Error()),
			)
		}
	}

	s.logger.InfoContext(ctx, "import finished",
		slog.Int("imported", result.SuccessCount),
		slog.Int("rejected", len(result.Errors)),
		slog.Int("new_categories", len(added)),
	)
	return result
}
