package domain

import (
	"slices"
	"strings"

	"golang.org/x/text/cases"

	apperrors "github.com/diqie123/sistem-entri-data-inventaris/pkg/errors"
)

// CategoryAll is the filter value that matches every category.
const CategoryAll = "all"

// DefaultCategory is assigned to imported rows without a category.
const DefaultCategory = "Uncategorized"

// FoldCategory returns the case-folded form used to compare category names.
func FoldCategory(name string) string {
	// A Caser keeps state, so each call gets its own.
	return cases.Fold().String(name)
}

// CategoryRegistry is the sorted set of valid category names. Names are unique
// under Unicode case folding and kept in byte-wise lexicographic order.
type CategoryRegistry struct {
	names []string
}

// NewCategoryRegistry builds a registry from names. Blank names are skipped and
// later spellings of an already present name are dropped.
func NewCategoryRegistry(names ...string) *CategoryRegistry {
	r := &CategoryRegistry{}
	r.Merge(names)
	return r
}

// Clone returns an independent copy of r.
func (r *CategoryRegistry) Clone() *CategoryRegistry {
	return &CategoryRegistry{names: slices.Clone(r.names)}
}

// Names returns the registered names in order.
func (r *CategoryRegistry) Names() []string {
	return slices.Clone(r.names)
}

// Len returns the number of registered names.
func (r *CategoryRegistry) Len() int {
	return len(r.names)
}

// Contains reports whether name is registered with exactly this spelling.
func (r *CategoryRegistry) Contains(name string) bool {
	_, found := slices.BinarySearch(r.names, name)
	return found
}

// Lookup finds the registered spelling of name, ignoring case.
func (r *CategoryRegistry) Lookup(name string) (string, bool) {
	key := FoldCategory(name)
	for _, n := range r.names {
		if FoldCategory(n) == key {
			return n, true
		}
	}
	return "", false
}

// Add registers a new name. It fails with a conflict when the name is already
// present in any casing.
func (r *CategoryRegistry) Add(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return apperrors.InvalidInput("category name is required")
	}
	if existing, ok := r.Lookup(name); ok {
		return apperrors.AlreadyExists("category", "name", existing)
	}
	r.insert(name)
	return nil
}

// Rename replaces oldName with newName. Changing only the casing of a name is
// allowed; colliding with a different registered name is not.
func (r *CategoryRegistry) Rename(oldName, newName string) error {
	newName = strings.TrimSpace(newName)
	if newName == "" {
		return apperrors.InvalidInput("category name is required")
	}
	idx := slices.Index(r.names, oldName)
	if idx < 0 {
		return apperrors.NotFound("category", oldName)
	}
	newKey := FoldCategory(newName)
	for _, n := range r.names {
		if n != oldName && FoldCategory(n) == newKey {
			return apperrors.AlreadyExists("category", "name", n)
		}
	}
	r.names = slices.Delete(r.names, idx, idx+1)
	r.insert(newName)
	return nil
}

// Remove unregisters name.
func (r *CategoryRegistry) Remove(name string) error {
	idx := slices.Index(r.names, name)
	if idx < 0 {
		return apperrors.NotFound("category", name)
	}
	r.names = slices.Delete(r.names, idx, idx+1)
	return nil
}

// Merge adds every name not yet present in any casing and returns the names
// that were added.
func (r *CategoryRegistry) Merge(names []string) []string {
	var added []string
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if _, ok := r.Lookup(name); ok {
			continue
		}
		r.insert(name)
		added = append(added, name)
	}
	return added
}

func (r *CategoryRegistry) insert(name string) {
	idx, _ := slices.BinarySearch(r.names, name)
	r.names = slices.Insert(r.names, idx, name)
}

// CategoryCount pairs a category with the number of products in it.
type CategoryCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}
