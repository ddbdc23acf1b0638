package view

import (
	"slices"
	"sync"

	"github.com/diqie123/sistem-entri-data-inventaris/internal/domain"
	apperrors "github.com/diqie123/sistem-entri-data-inventaris/pkg/errors"
	"github.com/diqie123/sistem-entri-data-inventaris/pkg/pagination"
)

// State is a snapshot of a console session.
type State struct {
	Filters  domain.ViewQuery  `json:"filters"`
	Sort     domain.SortConfig `json:"sort"`
	Page     int               `json:"page"`
	PageSize int               `json:"pageSize"`
	Selected []string          `json:"selectedProductIds"`
}

// Session is the product table state of one console: filters, sort order,
// current page and the selection. It never calls into the store; the store
// side may call into it while holding its own lock.
type Session struct {
	mu       sync.Mutex
	query    domain.ViewQuery
	sort     domain.SortConfig
	page     int
	pageSize int
	selected []string
}

// NewSession creates a session showing everything, sorted by name.
func NewSession(pageSize int) *Session {
	if pageSize < 1 {
		pageSize = pagination.DefaultParams(0).PerPage
	}
	return &Session{
		query:    domain.DefaultViewQuery(),
		sort:     domain.DefaultSortConfig(),
		page:     1,
		pageSize: pageSize,
	}
}

// Snapshot returns the current state.
func (s *Session) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return State{
		Filters:  s.query,
		Sort:     s.sort,
		Page:     s.page,
		PageSize: s.pageSize,
		Selected: slices.Clone(s.selectedOrEmpty()),
	}
}

// Query returns the active filters.
func (s *Session) Query() domain.ViewQuery {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.query
}

// SortConfig returns the active sort order.
func (s *Session) SortConfig() domain.SortConfig {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sort
}

// SetFilters replaces all filters. Empty status and category mean "all".
func (s *Session) SetFilters(q domain.ViewQuery) {
	if q.Status == "" {
		q.Status = domain.StatusAll
	}
	if q.Category == "" {
		q.Category = domain.CategoryAll
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.query = q
	s.filtersChanged()
}

// SetSearch changes the search term.
func (s *Session) SetSearch(term string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.query.Search = term
	s.filtersChanged()
}

// SetStatusFilter changes the status filter.
func (s *Session) SetStatusFilter(status string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.query.Status = status
	s.filtersChanged()
}

// SetCategoryFilter changes the category filter.
func (s *Session) SetCategoryFilter(category string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.query.Category = category
	s.filtersChanged()
}

// filtersChanged drops the selection so hidden rows cannot stay selected, and
// returns to the first page. Callers hold mu.
func (s *Session) filtersChanged() {
	s.selected = nil
	s.page = 1
}

// RetargetCategory follows a category rename: an active filter on oldName
// moves to newName.
func (s *Session) RetargetCategory(oldName, newName string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.query.Category == oldName {
		s.query.Category = newName
		s.filtersChanged()
	}
}

// ResetCategory follows a category removal: an active filter on name falls
// back to "all".
func (s *Session) ResetCategory(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.query.Category == name {
		s.query.Category = domain.CategoryAll
		s.filtersChanged()
	}
}

// RequestSort sorts by key. Requesting the active key flips the direction;
// a new key starts ascending.
func (s *Session) RequestSort(key string) (domain.SortConfig, error) {
	if !IsSortKey(key) {
		return domain.SortConfig{}, apperrors.InvalidInput("unknown sort key: " + key)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	direction := domain.SortAscending
	if s.sort.Key == key && s.sort.Direction == domain.SortAscending {
		direction = domain.SortDescending
	}
	s.sort = domain.SortConfig{Key: key, Direction: direction}
	return s.sort, nil
}

// SetPage moves to page, clamped to [1, totalPages].
func (s *Session) SetPage(page, totalPages int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.page = pagination.Clamp(page, totalPages)
	return s.page
}

// ResetPage returns to the first page. It is called whenever the product
// collection grows or shrinks.
func (s *Session) ResetPage() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.page = 1
}

// Select adds ids to the selection, or removes them when selected is false.
// The selection keeps the order in which ids were first selected.
func (s *Session) Select(ids []string, selected bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !selected {
		s.deselect(ids)
		return
	}
	for _, id := range ids {
		if !slices.Contains(s.selected, id) {
			s.selected = append(s.selected, id)
		}
	}
}

// Deselect removes ids from the selection, typically after they were deleted.
func (s *Session) Deselect(ids ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deselect(ids)
}

func (s *Session) deselect(ids []string) {
	s.selected = slices.DeleteFunc(s.selected, func(id string) bool {
		return slices.Contains(ids, id)
	})
}

// ClearSelection empties the selection.
func (s *Session) ClearSelection() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selected = nil
}

// Selected returns the selected product ids.
func (s *Session) Selected() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.selectedOrEmpty())
}

func (s *Session) selectedOrEmpty() []string {
	if s.selected == nil {
		return []string{}
	}
	return s.selected
}

// Table is the rendered product table of a session.
type Table struct {
	pagination.Result[domain.ProductView]
	State State `json:"state"`
}

// Render runs the pipeline over products with the session settings and
// returns the current page. A page left out of range by a shrinking result is
// clamped and remembered.
func (s *Session) Render(products []domain.Product, threshold int) Table {
	s.mu.Lock()
	defer s.mu.Unlock()

	derived := Derive(products, s.query, s.sort, threshold)
	page := Paginate(Views(derived, threshold), s.page, s.pageSize)
	s.page = page.Page

	return Table{
		Result: page,
		State: State{
			Filters:  s.query,
			Sort:     s.sort,
			Page:     s.page,
			PageSize: s.pageSize,
			Selected: slices.Clone(s.selectedOrEmpty()),
		},
	}
}

// VisibleIDs returns the ids on the current page.
func (s *Session) VisibleIDs(products []domain.Product, threshold int) []string {
	table := s.Render(products, threshold)
	ids := make([]string, len(table.Data))
	for i, p := range table.Data {
		ids[i] = p.ID
	}
	return ids
}
