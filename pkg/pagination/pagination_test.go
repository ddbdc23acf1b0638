package pagination

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultParams(t *testing.T) {
	assert.Equal(t, Params{Page: 1, PerPage: 15}, DefaultParams(15))
	assert.Equal(t, Params{Page: 1, PerPage: 10}, DefaultParams(0))
}

func TestFromRequest(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  Params
	}{
		{"defaults", "", Params{Page: 1, PerPage: 10}},
		{"custom", "?page=3&per_page=50", Params{Page: 3, PerPage: 50}},
		{"negative page", "?page=-1", Params{Page: 1, PerPage: 10}},
		{"zero page", "?page=0", Params{Page: 1, PerPage: 10}},
		{"non numeric page", "?page=abc", Params{Page: 1, PerPage: 10}},
		{"per page above max", "?per_page=500", Params{Page: 1, PerPage: 10}},
		{"per page at max", "?per_page=100", Params{Page: 1, PerPage: 100}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/items"+tt.query, nil)
			assert.Equal(t, tt.want, FromRequest(req, 10))
		})
	}
}

func TestTotalPages(t *testing.T) {
	assert.Equal(t, 1, TotalPages(0, 10))
	assert.Equal(t, 1, TotalPages(10, 10))
	assert.Equal(t, 2, TotalPages(11, 10))
	assert.Equal(t, 3, TotalPages(25, 10))
	assert.Equal(t, 1, TotalPages(25, 0))
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 1, Clamp(0, 3))
	assert.Equal(t, 1, Clamp(-4, 3))
	assert.Equal(t, 2, Clamp(2, 3))
	assert.Equal(t, 3, Clamp(9, 3))
	assert.Equal(t, 1, Clamp(5, 0))
}

func TestWindow(t *testing.T) {
	items := make([]int, 25)
	for i := range items {
		items[i] = i
	}

	tests := []struct {
		name     string
		page     int
		wantPage int
		wantData []int
		hasNext  bool
		hasPrev  bool
	}{
		{"first page", 1, 1, []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, true, false},
		{"last partial page", 3, 3, []int{20, 21, 22, 23, 24}, false, true},
		{"beyond last clamps", 7, 3, []int{20, 21, 22, 23, 24}, false, true},
		{"below first clamps", 0, 1, []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Window(items, Params{Page: tt.page, PerPage: 10})
			assert.Equal(t, tt.wantPage, res.Page)
			assert.Equal(t, tt.wantData, res.Data)
			assert.Equal(t, 25, res.TotalCount)
			assert.Equal(t, 3, res.TotalPages)
			assert.Equal(t, tt.hasNext, res.HasNext)
			assert.Equal(t, tt.hasPrev, res.HasPrev)
		})
	}
}

func TestWindow_Empty(t *testing.T) {
	res := Window([]string{}, Params{Page: 4, PerPage: 10})

	assert.Equal(t, 1, res.Page)
	assert.Equal(t, 1, res.TotalPages)
	assert.NotNil(t, res.Data)
	assert.Empty(t, res.Data)
	assert.False(t, res.HasNext)
}

func TestWindow_DoesNotAliasInput(t *testing.T) {
	items := []int{1, 2, 3}
	res := Window(items, Params{Page: 1, PerPage: 2})
	res.Data[0] = 99
	assert.Equal(t, 1, items[0])
}
