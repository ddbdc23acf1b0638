package service

import (
	"context"
	"fmt"

	"github.com/diqie123/sistem-entri-data-inventaris/internal/domain"
	"github.com/diqie123/sistem-entri-data-inventaris/internal/repository"
	"github.com/diqie123/sistem-entri-data-inventaris/internal/view"
	apperrors "github.com/diqie123/sistem-entri-data-inventaris/pkg/errors"
)

// ViewService drives the console product table: filters, sort order,
// pagination and selection over the live collection.
type ViewService struct {
	products  repository.ProductRepository
	session   *view.Session
	deleter   *ProductService
	threshold int
}

// NewViewService creates a new view service.
func NewViewService(products repository.ProductRepository, session *view.Session, deleter *ProductService, threshold int) *ViewService {
	return &ViewService{
		products:  products,
		session:   session,
		deleter:   deleter,
		threshold: threshold,
	}
}

// Table renders the current page of the session.
func (s *ViewService) Table(ctx context.Context) (*view.Table, error) {
	products, err := s.products.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	table := s.session.Render(products, s.threshold)
	return &table, nil
}

// SetFilters replaces the filters. The selection is cleared and the table
// returns to the first page.
func (s *ViewService) SetFilters(ctx context.Context, q domain.ViewQuery) (*view.Table, error) {
	if q.Status != "" && q.Status != domain.StatusAll && !domain.ProductStatus(q.Status).IsValid() {
		return nil, apperrors.InvalidInput("unknown status filter: " + q.Status)
	}
	s.session.SetFilters(q)
	return s.Table(ctx)
}

// RequestSort sorts by key, toggling the direction when key is already
// active.
func (s *ViewService) RequestSort(ctx context.Context, key string) (*view.Table, error) {
	if _, err := s.session.RequestSort(key); err != nil {
		return nil, err
	}
	return s.Table(ctx)
}

// SetPage navigates to page, clamped to the available pages.
func (s *ViewService) SetPage(ctx context.Context, page int) (*view.Table, error) {
	table, err := s.Table(ctx)
	if err != nil {
		return nil, err
	}
	s.session.SetPage(page, table.TotalPages)
	return s.Table(ctx)
}

// Select adds ids to the selection, or removes them when selected is false.
// Ids that are not in the collection are ignored.
func (s *ViewService) Select(ctx context.Context, ids []string, selected bool) (*view.State, error) {
	if selected {
		products, err := s.products.List(ctx)
		if err != nil {
			return nil, fmt.Errorf("list products: %w", err)
		}
		known := make(map[string]struct{}, len(products))
		for _, p := range products {
			known[p.ID] = struct{}{}
		}
		valid := make([]string, 0, len(ids))
		for _, id := range ids {
			if _, ok := known[id]; ok {
				valid = append(valid, id)
			}
		}
		ids = valid
	}
	s.session.Select(ids, selected)
	state := s.session.Snapshot()
	return &state, nil
}

// SelectPage selects or deselects every product on the current page.
func (s *ViewService) SelectPage(ctx context.Context, selected bool) (*view.State, error) {
	products, err := s.products.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	s.session.Select(s.session.VisibleIDs(products, s.threshold), selected)
	state := s.session.Snapshot()
	return &state, nil
}

// ClearSelection empties the selection.
func (s *ViewService) ClearSelection() view.State {
	s.session.ClearSelection()
	return s.session.Snapshot()
}

// DeleteSelected bulk-deletes the selected products and clears the
// selection.
func (s *ViewService) DeleteSelected(ctx context.Context) (int, error) {
	ids := s.session.Selected()
	if len(ids) == 0 {
		return 0, apperrors.InvalidInput("no products are selected")
	}
	n, err := s.deleter.DeleteMany(ctx, ids)
	if err != nil {
		return 0, err
	}
	s.session.ClearSelection()
	return n, nil
}
