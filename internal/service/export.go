package service

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"go.opentelemetry.io/otel/attribute"

	"github.com/diqie123/sistem-entri-data-inventaris/internal/domain"
	"github.com/diqie123/sistem-entri-data-inventaris/internal/export"
	"github.com/diqie123/sistem-entri-data-inventaris/internal/notify"
	"github.com/diqie123/sistem-entri-data-inventaris/internal/repository"
	"github.com/diqie123/sistem-entri-data-inventaris/internal/view"
	apperrors "github.com/diqie123/sistem-entri-data-inventaris/pkg/errors"
	"github.com/diqie123/sistem-entri-data-inventaris/pkg/tracing"
)

// ExportScope selects which products an export contains.
type ExportScope string

// Export scopes.
const (
	// ScopeAll exports the whole collection in collection order.
	ScopeAll ExportScope = "all"
	// ScopeFiltered exports the filtered and sorted table across all pages.
	ScopeFiltered ExportScope = "filtered"
	// ScopeSelected exports the selected products in collection order.
	ScopeSelected ExportScope = "selected"
)

// ParseExportScope validates a scope name.
func ParseExportScope(raw string) (ExportScope, error) {
	switch sc := ExportScope(raw); sc {
	case ScopeAll, ScopeFiltered, ScopeSelected:
		return sc, nil
	}
	return "", apperrors.InvalidInput(fmt.Sprintf("unsupported export scope %q", raw))
}

// ExportService renders product subsets as downloadable files.
type ExportService struct {
	store     repository.Store
	session   *view.Session
	notifier  *notify.Queue
	threshold int
	logger    *slog.Logger
	runtime
}

// NewExportService creates a new export service.
func NewExportService(
	store repository.Store,
	session *view.Session,
	notifier *notify.Queue,
	threshold int,
	logger *slog.Logger,
	opts ...Option,
) *ExportService {
	return &ExportService{
		store:     store,
		session:   session,
		notifier:  notifier,
		threshold: threshold,
		logger:    logger,
		runtime:   newRuntime(opts),
	}
}

// Export encodes the products in scope. An empty subset is rejected.
func (s *ExportService) Export(ctx context.Context, format export.Format, scope ExportScope) (*export.File, error) {
	ctx, span := tracing.Start(ctx, tracerName, "ExportService.Export",
		attribute.String("export.format", string(format)),
		attribute.String("export.scope", string(scope)),
	)
	defer span.End()

	products, err := s.subset(ctx, scope)
	if err != nil {
		tracing.RecordError(span, err)
		return nil, err
	}
	span.SetAttributes(attribute.Int("export.count", len(products)))
	if len(products) == 0 {
		s.notifier.Warning("There is no data to export for the selected scope.")
		return nil, apperrors.InvalidInput("there is no data to export for the selected scope")
	}

	file, err := export.Encode(format, products, s.now())
	if err != nil {
		tracing.RecordError(span, err)
		return nil, err
	}

	exportTotal.WithLabelValues(string(format), string(scope)).Inc()
	s.notifier.Info(fmt.Sprintf("%s export started.", strings.ToUpper(string(format))))
	s.logger.InfoContext(ctx, "products exported",
		slog.String("format", string(format)),
		slog.String("scope", string(scope)),
		slog.Int("count", len(products)),
	)
	return file, nil
}

func (s *ExportService) subset(ctx context.Context, scope ExportScope) ([]domain.Product, error) {
	products, err := s.store.Products().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}

	switch scope {
	case ScopeAll:
		return products, nil
	case ScopeFiltered:
		return view.Derive(products, s.session.Query(), s.session.SortConfig(), s.threshold), nil
	case ScopeSelected:
		selected := s.session.Selected()
		return slices.DeleteFunc(products, func(p domain.Product) bool {
			return !slices.Contains(selected, p.ID)
		}), nil
	default:
		return nil, apperrors.InvalidInput(fmt.Sprintf("unsupported export scope %q", scope))
	}
}
