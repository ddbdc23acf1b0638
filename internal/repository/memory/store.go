package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/diqie123/sistem-entri-data-inventaris/internal/domain"
	"github.com/diqie123/sistem-entri-data-inventaris/internal/repository"
)

// state is one immutable version of the application data once committed.
type state struct {
	products   []domain.Product
	logs       []domain.AuditLog // oldest first
	categories *domain.CategoryRegistry
}

func (s *state) clone() *state {
	return &state{
		products: slices.Clone(s.products),
		// Capping the capacity makes the next append reallocate, so the
		// committed version never sees entries from an aborted transaction.
		logs:       s.logs[:len(s.logs):len(s.logs)],
		categories: s.categories.Clone(),
	}
}

func (s *state) indexOf(id string) int {
	return slices.IndexFunc(s.products, func(p domain.Product) bool { return p.ID == id })
}

// access runs fn against a state. write marks fn as mutating.
type access func(ctx context.Context, write bool, fn func(*state) error) error

// Store is an in-memory, copy-on-write implementation of repository.Store.
// Writers are serialized; readers see the last committed version.
type Store struct {
	mu sync.RWMutex
	st *state
}

// NewStore creates a store holding products and the given categories. The
// categories of the products are registered as well.
func NewStore(products []domain.Product, categories []string) *Store {
	reg := domain.NewCategoryRegistry(categories...)
	for _, p := range products {
		reg.Merge([]string{p.Category})
	}
	return &Store{
		st: &state{
			products:   slices.Clone(products),
			categories: reg,
		},
	}
}

// Products implements repository.Tx.
func (s *Store) Products() repository.ProductRepository {
	return &ProductRepository{access: s.access}
}

// AuditLogs implements repository.Tx.
func (s *Store) AuditLogs() repository.AuditLogRepository {
	return &AuditLogRepository{access: s.access}
}

// Categories implements repository.Tx.
func (s *Store) Categories() repository.CategoryRepository {
	return &CategoryRepository{access: s.access}
}

// WithinTx implements repository.Store.
func (s *Store) WithinTx(ctx context.Context, fn func(tx repository.Tx) error) error {
	return s.commit(ctx, func(st *state) error {
		return fn(newTx(st))
	})
}

func (s *Store) access(ctx context.Context, write bool, fn func(*state) error) error {
	if write {
		return s.commit(ctx, fn)
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return fn(s.st)
}

func (s *Store) commit(ctx context.Context, fn func(*state) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.st.clone()
	if err := fn(next); err != nil {
		return err
	}
	s.st = next
	return nil
}

// tx binds repositories to the working copy of one transaction.
type tx struct {
	access access
}

func newTx(st *state) *tx {
	return &tx{access: func(_ context.Context, _ bool, fn func(*state) error) error {
		return fn(st)
	}}
}

func (t *tx) Products() repository.ProductRepository {
	return &ProductRepository{access: t.access}
}

func (t *tx) AuditLogs() repository.AuditLogRepository {
	return &AuditLogRepository{access: t.access}
}

func (t *tx) Categories() repository.CategoryRepository {
	return &CategoryRepository{access: t.access}
}
