package memory

import (
	"context"
	"slices"

	"github.com/diqie123/sistem-entri-data-inventaris/internal/domain"
	apperrors "github.com/diqie123/sistem-entri-data-inventaris/pkg/errors"
)

// ProductRepository implements repository.ProductRepository over a Store.
type ProductRepository struct {
	access access
}

// List returns a copy of every product in collection order.
func (r *ProductRepository) List(ctx context.Context) ([]domain.Product, error) {
	var out []domain.Product
	err := r.access(ctx, false, func(st *state) error {
		out = slices.Clone(st.products)
		return nil
	})
	if out == nil {
		out = []domain.Product{}
	}
	return out, err
}

// GetByID retrieves a product by its unique identifier.
func (r *ProductRepository) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	var out *domain.Product
	err := r.access(ctx, false, func(st *state) error {
		i := st.indexOf(id)
		if i < 0 {
			return apperrors.NotFound("product", id)
		}
		p := st.products[i]
		out = &p
		return nil
	})
	return out, err
}

// Prepend inserts products at the head of the collection.
func (r *ProductRepository) Prepend(ctx context.Context, products ...domain.Product) error {
	if len(products) == 0 {
		return nil
	}
	return r.access(ctx, true, func(st *state) error {
		seen := make(map[string]struct{}, len(products))
		for _, p := range products {
			if _, dup := seen[p.ID]; dup || st.indexOf(p.ID) >= 0 {
				return apperrors.AlreadyExists("product", "id", p.ID)
			}
			seen[p.ID] = struct{}{}
		}
		st.products = slices.Insert(st.products, 0, products...)
		return nil
	})
}

// Update replaces an existing product in place.
func (r *ProductRepository) Update(ctx context.Context, product *domain.Product) error {
	return r.access(ctx, true, func(st *state) error {
		i := st.indexOf(product.ID)
		if i < 0 {
			return apperrors.NotFound("product", product.ID)
		}
		st.products[i] = *product
		return nil
	})
}

// Delete removes a product and returns the removed record.
func (r *ProductRepository) Delete(ctx context.Context, id string) (*domain.Product, error) {
	var out *domain.Product
	err := r.access(ctx, true, func(st *state) error {
		i := st.indexOf(id)
		if i < 0 {
			return apperrors.NotFound("product", id)
		}
		p := st.products[i]
		out = &p
		st.products = slices.Delete(st.products, i, i+1)
		return nil
	})
	return out, err
}

// DeleteMany removes every listed product in one pass.
func (r *ProductRepository) DeleteMany(ctx context.Context, ids []string) ([]domain.Product, error) {
	wanted := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		wanted[id] = struct{}{}
	}

	var removed []domain.Product
	err := r.access(ctx, true, func(st *state) error {
		removed = nil
		st.products = slices.DeleteFunc(st.products, func(p domain.Product) bool {
			if _, ok := wanted[p.ID]; ok {
				removed = append(removed, p)
				return true
			}
			return false
		})
		return nil
	})
	return removed, err
}

// ReassignCategory moves every product in category from to category to.
func (r *ProductRepository) ReassignCategory(ctx context.Context, from, to string) (int, error) {
	var n int
	err := r.access(ctx, true, func(st *state) error {
		n = 0
		for i := range st.products {
			if st.products[i].Category == from {
				st.products[i].Category = to
				n++
			}
		}
		return nil
	})
	return n, err
}

// CountByCategory returns the number of products per category.
func (r *ProductRepository) CountByCategory(ctx context.Context) (map[string]int, error) {
	counts := make(map[string]int)
	err := r.access(ctx, false, func(st *state) error {
		for _, p := range st.products {
			counts[p.Category]++
		}
		return nil
	})
	return counts, err
}
