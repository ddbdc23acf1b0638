package domain

// StatusAll is the status filter value that matches every product.
const StatusAll = "all"

// SortDirection orders a sorted view.
type SortDirection string

// Sort direction constants.
const (
	SortAscending  SortDirection = "ascending"
	SortDescending SortDirection = "descending"
)

// Sort keys accepted by the product table. They are the JSON field names of
// Product.
const (
	SortByID           = "id"
	SortByName         = "name"
	SortBySKU          = "sku"
	SortByCategory     = "category"
	SortByDescription  = "description"
	SortByPrice        = "price"
	SortByStock        = "stock"
	SortByStatus       = "status"
	SortByImageURL     = "imageUrl"
	SortByLastUpdated  = "lastUpdated"
	SortByDateAdded    = "dateAdded"
	SortByIsFeatured   = "isFeatured"
	SortByContactEmail = "contactEmail"
	SortByProductURL   = "productUrl"
)

// SortConfig selects the sort key and direction of the product table.
type SortConfig struct {
	Key       string        `json:"key"`
	Direction SortDirection `json:"direction"`
}

// DefaultSortConfig orders by name, ascending.
func DefaultSortConfig() SortConfig {
	return SortConfig{Key: SortByName, Direction: SortAscending}
}

// ViewQuery holds the product table filters. Status and Category take "all"
// to disable the respective filter.
type ViewQuery struct {
	Search   string `json:"search"`
	Status   string `json:"status"`
	Category string `json:"category"`
}

// DefaultViewQuery matches every product.
func DefaultViewQuery() ViewQuery {
	return ViewQuery{Status: StatusAll, Category: CategoryAll}
}
