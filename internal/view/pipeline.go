// Package view derives the product table from the store: filter, then sort,
// then paginate. Every function here is pure; Session holds the UI state the
// pipeline is driven by.
package view

import (
	"cmp"
	"slices"
	"strings"

	"github.com/diqie123/sistem-entri-data-inventaris/internal/domain"
	"github.com/diqie123/sistem-entri-data-inventaris/pkg/pagination"
)

// Filter returns the products matching q in their original order. Search is a
// case-insensitive substring of name or SKU, matched as typed. Low Stock
// selects by stock level (0 < stock < threshold) whatever the stored status;
// every other status matches the stored status exactly.
func Filter(products []domain.Product, q domain.ViewQuery, threshold int) []domain.Product {
	search := strings.ToLower(q.Search)
	out := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if search != "" &&
			!strings.Contains(strings.ToLower(p.Name), search) &&
			!strings.Contains(strings.ToLower(p.SKU), search) {
			continue
		}
		if !matchesStatus(p, q.Status, threshold) {
			continue
		}
		if q.Category != "" && q.Category != domain.CategoryAll && p.Category != q.Category {
			continue
		}
		out = append(out, p)
	}
	return out
}

func matchesStatus(p domain.Product, status string, threshold int) bool {
	switch status {
	case "", domain.StatusAll:
		return true
	case string(domain.StatusLowStock):
		return domain.IsLowStock(p.Stock, threshold)
	default:
		return string(p.Status) == status
	}
}

// IsSortKey reports whether key names a sortable product field.
func IsSortKey(key string) bool {
	_, ok := comparators[key]
	return ok
}

// SortKeys returns the accepted sort keys.
func SortKeys() []string {
	keys := make([]string, 0, len(comparators))
	for k := range comparators {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

type comparator func(a, b domain.Product) int

func byString(f func(domain.Product) string) comparator {
	return func(a, b domain.Product) int { return strings.Compare(f(a), f(b)) }
}

func compareBool(a, b bool) int {
	switch {
	case a == b:
		return 0
	case !a:
		return -1
	default:
		return 1
	}
}

var comparators = map[string]comparator{
	domain.SortByID:           byString(func(p domain.Product) string { return p.ID }),
	domain.SortByName:         byString(func(p domain.Product) string { return p.Name }),
	domain.SortBySKU:          byString(func(p domain.Product) string { return p.SKU }),
	domain.SortByCategory:     byString(func(p domain.Product) string { return p.Category }),
	domain.SortByDescription:  byString(func(p domain.Product) string { return p.Description }),
	domain.SortByStatus:       byString(func(p domain.Product) string { return string(p.Status) }),
	domain.SortByImageURL:     byString(func(p domain.Product) string { return p.ImageURL }),
	domain.SortByContactEmail: byString(func(p domain.Product) string { return p.ContactEmail }),
	domain.SortByProductURL:   byString(func(p domain.Product) string { return p.ProductURL }),
	domain.SortByPrice:        func(a, b domain.Product) int { return a.Price.Cmp(b.Price) },
	domain.SortByStock:        func(a, b domain.Product) int { return cmp.Compare(a.Stock, b.Stock) },
	domain.SortByLastUpdated:  func(a, b domain.Product) int { return a.LastUpdated.Compare(b.LastUpdated) },
	domain.SortByDateAdded:    func(a, b domain.Product) int { return a.DateAdded.Compare(b.DateAdded) },
	domain.SortByIsFeatured:   func(a, b domain.Product) int { return compareBool(a.IsFeatured, b.IsFeatured) },
}

// Sort returns a stably sorted copy of products. Unknown keys leave the order
// unchanged. Descending order reverses the comparison, so equal elements keep
// their input order in both directions.
func Sort(products []domain.Product, cfg domain.SortConfig) []domain.Product {
	out := slices.Clone(products)
	compare, ok := comparators[cfg.Key]
	if !ok {
		return out
	}
	if cfg.Direction == domain.SortDescending {
		slices.SortStableFunc(out, func(a, b domain.Product) int { return compare(b, a) })
	} else {
		slices.SortStableFunc(out, compare)
	}
	return out
}

// Paginate returns the window of items on page. The page is clamped to
// [1, totalPages] and totalPages is at least 1.
func Paginate[T any](items []T, page, size int) pagination.Result[T] {
	return pagination.Window(items, pagination.Params{Page: page, PerPage: size})
}

// Derive runs the whole pipeline.
func Derive(products []domain.Product, q domain.ViewQuery, sortCfg domain.SortConfig, threshold int) []domain.Product {
	return Sort(Filter(products, q, threshold), sortCfg)
}

// Views attaches the display status to each product.
func Views(products []domain.Product, threshold int) []domain.ProductView {
	out := make([]domain.ProductView, len(products))
	for i, p := range products {
		out[i] = domain.NewProductView(p, threshold)
	}
	return out
}
