package service

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/diqie123/sistem-entri-data-inventaris/internal/domain"
	"github.com/diqie123/sistem-entri-data-inventaris/internal/event"
	"github.com/diqie123/sistem-entri-data-inventaris/internal/notify"
	"github.com/diqie123/sistem-entri-data-inventaris/internal/repository"
	"github.com/diqie123/sistem-entri-data-inventaris/internal/view"
	apperrors "github.com/diqie123/sistem-entri-data-inventaris/pkg/errors"
	"github.com/diqie123/sistem-entri-data-inventaris/pkg/pagination"
	pkgvalidator "github.com/diqie123/sistem-entri-data-inventaris/pkg/validator"
)

// DraftDiscarder clears the stored new-product draft.
type DraftDiscarder interface {
	DiscardDraft(ctx context.Context)
}

// ProductService implements the product store: validated creation, update and
// deletion, each committed together with its audit entry.
type ProductService struct {
	store     repository.Store
	session   *view.Session
	producer  *event.Producer
	notifier  *notify.Queue
	drafts    DraftDiscarder
	threshold int
	logger    *slog.Logger
	runtime
}

// NewProductService creates a new product service. drafts may be nil.
func NewProductService(
	store repository.Store,
	session *view.Session,
	producer *event.Producer,
	notifier *notify.Queue,
	drafts DraftDiscarder,
	threshold int,
	logger *slog.Logger,
	opts ...Option,
) *ProductService {
	return &ProductService{
		store:     store,
		session:   session,
		producer:  producer,
		notifier:  notifier,
		drafts:    drafts,
		threshold: threshold,
		logger:    logger,
		runtime:   newRuntime(opts),
	}
}

// ListQuery selects a page of the product table without touching the console
// session.
type ListQuery struct {
	Filters domain.ViewQuery
	Sort    domain.SortConfig
	Page    pagination.Params
}

// Create validates draft and inserts the new product at the head of the
// collection.
func (s *ProductService) Create(ctx context.Context, draft *domain.Draft) (*domain.Product, error) {
	var product domain.Product
	err := s.store.WithinTx(ctx, func(tx repository.Tx) error {
		if err := validateDraft(ctx, tx, *draft); err != nil {
			return err
		}

		now := s.now()
		product = draft.NewProduct(s.newID(), now)
		if err := tx.Products().Prepend(ctx, product); err != nil {
			return fmt.Errorf("insert product: %w", err)
		}
		if err := tx.AuditLogs().Append(ctx, domain.NewCreateLog(s.newID(), now, product)); err != nil {
			return fmt.Errorf("append audit log: %w", err)
		}
		return observeProducts(ctx, tx)
	})
	if err != nil {
		return nil, err
	}

	recordAudit(domain.ActionCreate, 1)
	s.session.ResetPage()
	if s.drafts != nil {
		s.drafts.DiscardDraft(ctx)
	}

	if err := s.producer.PublishProductCreated(ctx, &product); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish product.created event",
			slog.String("product_id", product.ID),
			slog.String("error", err.Error()),
		)
	}

	s.notifier.Success("Product added successfully!")
	s.logger.InfoContext(ctx, "product created",
		slog.String("product_id", product.ID),
		slog.String("sku", product.SKU),
	)

	return &product, nil
}

// Update applies patch to the product with the given id. The patched record
// is validated as a whole and lastUpdated always moves forward.
func (s *ProductService) Update(ctx context.Context, id string, patch domain.Patch) (*domain.Product, error) {
	var (
		updated domain.Product
		changes []domain.FieldChange
	)
	err := s.store.WithinTx(ctx, func(tx repository.Tx) error {
		current, err := tx.Products().GetByID(ctx, id)
		if err != nil {
			return err
		}

		next := patch.Apply(*current)
		if next.Status == "" {
			next.Status = domain.StatusActive
		}
		if err := validateDraft(ctx, tx, domain.DraftFromProduct(next)); err != nil {
			return err
		}

		now := s.now()
		next.LastUpdated = domain.NextTimestamp(now, current.LastUpdated)
		if err := tx.Products().Update(ctx, &next); err != nil {
			return fmt.Errorf("update product: %w", err)
		}
		if err := tx.AuditLogs().Append(ctx, domain.NewUpdateLog(s.newID(), now, *current, next)); err != nil {
			return fmt.Errorf("append audit log: %w", err)
		}

		updated = next
		changes = domain.Diff(*current, next)
		return nil
	})
	if err != nil {
		return nil, err
	}

	recordAudit(domain.ActionUpdate, 1)

	if err := s.producer.PublishProductUpdated(ctx, &updated, changes); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish product.updated event",
			slog.String("product_id", updated.ID),
			slog.String("error", err.Error()),
		)
	}

	s.notifier.Success("Product updated successfully!")
	s.logger.InfoContext(ctx, "product updated",
		slog.String("product_id", updated.ID),
		slog.Int("changed_fields", len(changes)),
	)

	return &updated, nil
}

// Delete removes the product with the given id.
func (s *ProductService) Delete(ctx context.Context, id string) error {
	var removed *domain.Product
	err := s.store.WithinTx(ctx, func(tx repository.Tx) error {
		var err error
		removed, err = tx.Products().Delete(ctx, id)
		if err != nil {
			return err
		}
		if err := tx.AuditLogs().Append(ctx, domain.NewDeleteLog(s.newID(), s.now(), *removed)); err != nil {
			return fmt.Errorf("append audit log: %w", err)
		}
		return observeProducts(ctx, tx)
	})
	if err != nil {
		return err
	}

	recordAudit(domain.ActionDelete, 1)
	s.session.Deselect(id)
	s.session.ResetPage()

	if err := s.producer.PublishProductsDeleted(ctx, *removed); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish product.deleted event",
			slog.String("product_id", id),
			slog.String("error", err.Error()),
		)
	}

	s.notifier.Success(fmt.Sprintf("Product \"%s\" has been deleted.", removed.Name))
	s.logger.InfoContext(ctx, "product deleted",
		slog.String("product_id", id),
	)

	return nil
}

// DeleteMany removes every listed product and records a single aggregated
// audit entry. Unknown ids are ignored; it fails only when none match.
func (s *ProductService) DeleteMany(ctx context.Context, ids []string) (int, error) {
	ids = uniqueIDs(ids)

	var removed []domain.Product
	err := s.store.WithinTx(ctx, func(tx repository.Tx) error {
		var err error
		removed, err = tx.Products().DeleteMany(ctx, ids)
		if err != nil {
			return fmt.Errorf("delete products: %w", err)
		}
		if len(removed) == 0 {
			return apperrors.InvalidInput("none of the given products exist")
		}
		if err := tx.AuditLogs().Append(ctx, domain.NewBulkDeleteLog(s.newID(), s.now(), removed)); err != nil {
			return fmt.Errorf("append audit log: %w", err)
		}
		return observeProducts(ctx, tx)
	})
	if err != nil {
		return 0, err
	}

	recordAudit(domain.ActionDelete, 1)
	removedIDs := make([]string, len(removed))
	for i, p := range removed {
		removedIDs[i] = p.ID
	}
	s.session.Deselect(removedIDs...)
	s.session.ResetPage()

	if err := s.producer.PublishProductsDeleted(ctx, removed...); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish product.deleted events",
			slog.Int("count", len(removed)),
			slog.String("error", err.Error()),
		)
	}

	s.notifier.Success(fmt.Sprintf("%d products have been deleted.", len(removed)))
	s.logger.InfoContext(ctx, "products bulk deleted",
		slog.Int("count", len(removed)),
	)

	return len(removed), nil
}

// Duplicate returns a draft seeded from the product with the given id. The
// draft is not stored; pass it to Create to persist it.
func (s *ProductService) Duplicate(ctx context.Context, id string) (*domain.Draft, error) {
	p, err := s.store.Products().GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get product by id: %w", err)
	}
	draft := domain.DuplicateDraft(*p, s.now())
	return &draft, nil
}

// Get retrieves a product by its ID.
func (s *ProductService) Get(ctx context.Context, id string) (*domain.Product, error) {
	p, err := s.store.Products().GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get product by id: %w", err)
	}
	return p, nil
}

// All returns every product in collection order.
func (s *ProductService) All(ctx context.Context) ([]domain.Product, error) {
	products, err := s.store.Products().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return products, nil
}

// List filters, sorts and paginates the collection as q describes.
func (s *ProductService) List(ctx context.Context, q ListQuery) (*pagination.Result[domain.ProductView], error) {
	if q.Sort.Key == "" {
		q.Sort = domain.DefaultSortConfig()
	}
	if !view.IsSortKey(q.Sort.Key) {
		return nil, apperrors.InvalidInput("unknown sort key: " + q.Sort.Key)
	}
	if q.Filters.Status == "" {
		q.Filters.Status = domain.StatusAll
	}
	if q.Filters.Category == "" {
		q.Filters.Category = domain.CategoryAll
	}

	products, err := s.All(ctx)
	if err != nil {
		return nil, err
	}
	derived := view.Derive(products, q.Filters, q.Sort, s.threshold)
	page := view.Paginate(view.Views(derived, s.threshold), q.Page.Page, q.Page.PerPage)
	return &page, nil
}

// History returns the audit entries of one product, newest first. Entries of
// deleted products remain available.
func (s *ProductService) History(ctx context.Context, productID string) ([]domain.AuditLog, error) {
	logs, err := s.store.AuditLogs().ListByProduct(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("list product history: %w", err)
	}
	return logs, nil
}

// RefreshMetrics publishes the current collection size.
func (s *ProductService) RefreshMetrics(ctx context.Context) error {
	products, err := s.All(ctx)
	if err != nil {
		return err
	}
	productsTotal.Set(float64(len(products)))
	return nil
}

// validateDraft checks the field rules of d and that its category is
// registered.
func validateDraft(ctx context.Context, tx repository.Tx, d domain.Draft) error {
	verr := d.Validate()
	if category := strings.TrimSpace(d.Category); category != "" {
		ok, err := tx.Categories().Contains(ctx, category)
		if err != nil {
			return fmt.Errorf("check category: %w", err)
		}
		if !ok {
			verr = pkgvalidator.WithField(verr, "category", "must be a registered category")
		}
	}
	return verr
}

func observeProducts(ctx context.Context, tx repository.Tx) error {
	products, err := tx.Products().List(ctx)
	if err != nil {
		return fmt.Errorf("count products: %w", err)
	}
	productsTotal.Set(float64(len(products)))
	return nil
}

func uniqueIDs(ids []string) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if !slices.Contains(out, id) {
			out = append(out, id)
		}
	}
	return out
}
