package view

import (
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/diqie123/sistem-entri-data-inventaris/internal/domain"
)

const threshold = domain.DefaultLowStockThreshold

func mk(id, name, sku, category string, price string, stock int, status domain.ProductStatus) domain.Product {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return domain.Product{
		ID:          id,
		Name:        name,
		SKU:         sku,
		Category:    category,
		Price:       decimal.RequireFromString(price),
		Stock:       stock,
		Status:      status,
		LastUpdated: base,
		DateAdded:   base,
	}
}

func fixture() []domain.Product {
	return []domain.Product{
		mk("1", "Laptop", "LP-1", "Electronics", "1299.99", 25, domain.StatusActive),
		mk("2", "mouse", "WM-1", "Electronics", "24.99", 8, domain.StatusActive),
		mk("3", "Keyboard", "KB-1", "Electronics", "89.5", 3, domain.StatusDiscontinued),
		mk("4", "Mug", "MUG-1", "Home", "8.75", 0, domain.StatusActive),
		mk("5", "Lamp", "LAMP-1", "Home", "32.5", 9, domain.StatusLowStock),
		mk("6", "Yoga Mat", "YM-1", "Sports", "29.9", 150, domain.StatusLowStock),
	}
}

func productIDs(items []domain.Product) []string {
	out := make([]string, len(items))
	for i, p := range items {
		out[i] = p.ID
	}
	return out
}

func TestFilter(t *testing.T) {
	tests := []struct {
		name  string
		query domain.ViewQuery
		want  []string
	}{
		{"everything", domain.DefaultViewQuery(), []string{"1", "2", "3", "4", "5", "6"}},
		{"zero value query", domain.ViewQuery{}, []string{"1", "2", "3", "4", "5", "6"}},
		{"search name any case", domain.ViewQuery{Search: "MOUSE", Status: "all", Category: "all"}, []string{"2"}},
		{"search sku", domain.ViewQuery{Search: "lamp-", Status: "all", Category: "all"}, []string{"5"}},
		{"category exact", domain.ViewQuery{Status: "all", Category: "Home"}, []string{"4", "5"}},
		{"category is case sensitive", domain.ViewQuery{Status: "all", Category: "home"}, []string{}},
		{"low stock selects by stock level", domain.ViewQuery{Status: "Low Stock", Category: "all"}, []string{"2", "3", "5"}},
		{"active matches stored status", domain.ViewQuery{Status: "Active", Category: "all"}, []string{"1", "2", "4"}},
		{"discontinued matches stored status", domain.ViewQuery{Status: "Discontinued", Category: "all"}, []string{"3"}},
		{"search is not trimmed", domain.ViewQuery{Search: " mouse", Status: "all", Category: "all"}, []string{}},
		{"combined", domain.ViewQuery{Search: "k", Status: "Low Stock", Category: "Electronics"}, []string{"3"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Filter(fixture(), tt.query, threshold)
			assert.Equal(t, tt.want, productIDs(got))
		})
	}
}

func TestSort(t *testing.T) {
	tests := []struct {
		name string
		cfg  domain.SortConfig
		want []string
	}{
		{"name ascending is byte-wise", domain.SortConfig{Key: "name", Direction: domain.SortAscending}, []string{"3", "5", "1", "4", "6", "2"}},
		{"price ascending is numeric", domain.SortConfig{Key: "price", Direction: domain.SortAscending}, []string{"4", "2", "6", "5", "3", "1"}},
		{"price descending", domain.SortConfig{Key: "price", Direction: domain.SortDescending}, []string{"1", "3", "5", "6", "2", "4"}},
		{"stock ascending", domain.SortConfig{Key: "stock", Direction: domain.SortAscending}, []string{"4", "3", "2", "5", "1", "6"}},
		{"unknown key keeps order", domain.SortConfig{Key: "nope", Direction: domain.SortAscending}, []string{"1", "2", "3", "4", "5", "6"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Sort(fixture(), tt.cfg)
			assert.Equal(t, tt.want, productIDs(got))
		})
	}
}

func TestSort_StableInBothDirections(t *testing.T) {
	items := fixture()
	asc := Sort(items, domain.SortConfig{Key: "category", Direction: domain.SortAscending})
	assert.Equal(t, []string{"1", "2", "3", "4", "5", "6"}, productIDs(asc))

	desc := Sort(items, domain.SortConfig{Key: "category", Direction: domain.SortDescending})
	assert.Equal(t, []string{"6", "4", "5", "1", "2", "3"}, productIDs(desc))
}

func TestSort_BooleansAndTimestamps(t *testing.T) {
	items := fixture()
	items[0].IsFeatured = true
	items[3].IsFeatured = true
	items[2].DateAdded = items[2].DateAdded.Add(-time.Hour)

	featured := Sort(items, domain.SortConfig{Key: "isFeatured", Direction: domain.SortAscending})
	assert.Equal(t, []string{"2", "3", "5", "6", "1", "4"}, productIDs(featured))

	added := Sort(items, domain.SortConfig{Key: "dateAdded", Direction: domain.SortAscending})
	assert.Equal(t, "3", added[0].ID)
}

func TestSort_DoesNotMutateInput(t *testing.T) {
	items := fixture()
	_ = Sort(items, domain.SortConfig{Key: "price", Direction: domain.SortAscending})
	assert.Equal(t, []string{"1", "2", "3", "4", "5", "6"}, productIDs(items))
}

func TestPaginate(t *testing.T) {
	items := make([]int, 23)
	for i := range items {
		items[i] = i
	}

	tests := []struct {
		name      string
		page      int
		wantPage  int
		wantLen   int
		wantFirst int
	}{
		{"first", 1, 1, 10, 0},
		{"last partial", 3, 3, 3, 20},
		{"beyond clamps to last", 9, 3, 3, 20},
		{"zero clamps to first", 0, 1, 10, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Paginate(items, tt.page, 10)
			assert.Equal(t, tt.wantPage, got.Page)
			assert.Equal(t, 3, got.TotalPages)
			require.Len(t, got.Data, tt.wantLen)
			assert.Equal(t, tt.wantFirst, got.Data[0])
		})
	}

	empty := Paginate([]int{}, 4, 10)
	assert.Equal(t, 1, empty.Page)
	assert.Equal(t, 1, empty.TotalPages)
	assert.Empty(t, empty.Data)
}

func TestLowStockSortedByStock(t *testing.T) {
	var items []domain.Product
	for i := 0; i < 40; i++ {
		items = append(items, mk(fmt.Sprint(i), fmt.Sprintf("P%02d", i), "S", "C", "1", (i*7)%23, domain.StatusActive))
	}

	derived := Derive(items,
		domain.ViewQuery{Status: string(domain.StatusLowStock), Category: domain.CategoryAll},
		domain.SortConfig{Key: domain.SortByStock, Direction: domain.SortAscending},
		threshold)

	require.NotEmpty(t, derived)
	for i, p := range derived {
		assert.True(t, p.Stock > 0 && p.Stock < 10, "stock %d", p.Stock)
		if i > 0 {
			assert.LessOrEqual(t, derived[i-1].Stock, p.Stock)
		}
	}

	pages := Paginate(derived, 1, 10).TotalPages
	for page := 1; page <= pages; page++ {
		assert.LessOrEqual(t, len(Paginate(derived, page, 10).Data), 10)
	}
}

func TestFilter_StatusAgainstStoredStatus(t *testing.T) {
	items := []domain.Product{
		mk("a", "Stored low, empty", "A", "C", "1", 0, domain.StatusLowStock),
		mk("b", "Stored low, plenty", "B", "C", "1", 50, domain.StatusLowStock),
		mk("c", "Active, running out", "C", "C", "1", 5, domain.StatusActive),
		mk("d", "Stored low, running out", "D", "C", "1", 9, domain.StatusLowStock),
	}
	byStock := domain.SortConfig{Key: domain.SortByStock, Direction: domain.SortAscending}

	low := Derive(items, domain.ViewQuery{Status: string(domain.StatusLowStock), Category: domain.CategoryAll}, byStock, threshold)
	assert.Equal(t, []string{"c", "d"}, productIDs(low))
	for _, p := range low {
		assert.True(t, p.Stock > 0 && p.Stock < threshold, "stock %d", p.Stock)
	}

	active := Derive(items, domain.ViewQuery{Status: string(domain.StatusActive), Category: domain.CategoryAll}, byStock, threshold)
	assert.Equal(t, []string{"c"}, productIDs(active))
}

func TestViews(t *testing.T) {
	views := Views(fixture(), threshold)
	assert.Equal(t, domain.StatusLowStock, views[1].DisplayStatus)
	assert.Equal(t, domain.StatusActive, views[1].Status)
	assert.Equal(t, domain.StatusActive, views[3].DisplayStatus)
}

func TestSortKeys(t *testing.T) {
	keys := SortKeys()
	assert.Len(t, keys, 14)
	assert.True(t, IsSortKey("lastUpdated"))
	assert.False(t, IsSortKey("LastUpdated"))
}
