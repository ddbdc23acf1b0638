package repository

import (
	"context"

	"github.com/diqie123/sistem-entri-data-inventaris/internal/domain"
)

// ProductRepository defines the operations on the product collection. The
// collection is ordered: newest records first.
type ProductRepository interface {
	// List returns every product in collection order.
	List(ctx context.Context) ([]domain.Product, error)

	// GetByID retrieves a product by its unique identifier.
	GetByID(ctx context.Context, id string) (*domain.Product, error)

	// Prepend inserts products at the head of the collection, keeping their
	// relative order.
	Prepend(ctx context.Context, products ...domain.Product) error

	// Update replaces an existing product in place.
	Update(ctx context.Context, product *domain.Product) error

	// Delete removes a product and returns the removed record.
	Delete(ctx context.Context, id string) (*domain.Product, error)

	// DeleteMany removes every product whose id is listed and returns the
	// removed records in collection order. Unknown ids are ignored.
	DeleteMany(ctx context.Context, ids []string) ([]domain.Product, error)

	// ReassignCategory points every product in category from at category to
	// and returns how many were changed.
	ReassignCategory(ctx context.Context, from, to string) (int, error)

	// CountByCategory returns the number of products per category.
	CountByCategory(ctx context.Context) (map[string]int, error)
}

// AuditLogRepository is the append-only audit ledger.
type AuditLogRepository interface {
	// Append records entries in the order given; the last one becomes the
	// newest.
	Append(ctx context.Context, entries ...domain.AuditLog) error

	// List returns every entry, newest first.
	List(ctx context.Context) ([]domain.AuditLog, error)

	// ListByProduct returns the entries of one product, newest first.
	ListByProduct(ctx context.Context, productID string) ([]domain.AuditLog, error)
}

// CategoryRepository holds the category registry.
type CategoryRepository interface {
	List(ctx context.Context) ([]string, error)
	Contains(ctx context.Context, name string) (bool, error)
	// Lookup returns the registered spelling of name, ignoring case.
	Lookup(ctx context.Context, name string) (string, bool, error)
	Add(ctx context.Context, name string) error
	Rename(ctx context.Context, oldName, newName string) error
	Remove(ctx context.Context, name string) error
	// Merge registers every name not already present and returns those added.
	Merge(ctx context.Context, names []string) ([]string, error)
}

// Tx groups the repositories that take part in one unit of work.
type Tx interface {
	Products() ProductRepository
	AuditLogs() AuditLogRepository
	Categories() CategoryRepository
}

// Store is the owned application state. Repository calls made directly on the
// store are atomic on their own; WithinTx makes several calls atomic together.
type Store interface {
	Tx

	// WithinTx runs fn in a transaction. Changes become visible only if fn
	// returns nil; otherwise the state is left exactly as it was.
	WithinTx(ctx context.Context, fn func(tx Tx) error) error
}

// SessionRepository keeps the console conveniences that outlive a request:
// the unsaved new-product draft and the theme preference. Missing values are
// reported as not found.
type SessionRepository interface {
	SaveDraft(ctx context.Context, draft *domain.Draft) error
	LoadDraft(ctx context.Context) (*domain.Draft, error)
	DeleteDraft(ctx context.Context) error
	SaveTheme(ctx context.Context, theme domain.Theme) error
	LoadTheme(ctx context.Context) (domain.Theme, error)
}
