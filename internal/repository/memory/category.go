package memory

import (
	"context"
)

// CategoryRepository implements repository.CategoryRepository over a Store.
type CategoryRepository struct {
	access access
}

// List returns the registered names in order.
func (r *CategoryRepository) List(ctx context.Context) ([]string, error) {
	var out []string
	err := r.access(ctx, false, func(st *state) error {
		out = st.categories.Names()
		return nil
	})
	if out == nil {
		out = []string{}
	}
	return out, err
}

// Contains reports whether name is registered with exactly this spelling.
func (r *CategoryRepository) Contains(ctx context.Context, name string) (bool, error) {
	var found bool
	err := r.access(ctx, false, func(st *state) error {
		found = st.categories.Contains(name)
		return nil
	})
	return found, err
}

// Lookup returns the registered spelling of name, ignoring case.
func (r *CategoryRepository) Lookup(ctx context.Context, name string) (string, bool, error) {
	var (
		spelling string
		found    bool
	)
	err := r.access(ctx, false, func(st *state) error {
		spelling, found = st.categories.Lookup(name)
		return nil
	})
	return spelling, found, err
}

// Add registers a new category.
func (r *CategoryRepository) Add(ctx context.Context, name string) error {
	return r.access(ctx, true, func(st *state) error {
		return st.categories.Add(name)
	})
}

// Rename replaces oldName with newName in the registry only.
func (r *CategoryRepository) Rename(ctx context.Context, oldName, newName string) error {
	return r.access(ctx, true, func(st *state) error {
		return st.categories.Rename(oldName, newName)
	})
}

// Remove unregisters a category.
func (r *CategoryRepository) Remove(ctx context.Context, name string) error {
	return r.access(ctx, true, func(st *state) error {
		return st.categories.Remove(name)
	})
}

// Merge registers every name not already present.
func (r *CategoryRepository) Merge(ctx context.Context, names []string) ([]string, error) {
	var added []string
	err := r.access(ctx, true, func(st *state) error {
		added = st.categories.Merge(names)
		return nil
	})
	return added, err
}
