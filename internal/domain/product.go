package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductStatus is the stored lifecycle status of a product.
type ProductStatus string

// Product status constants.
const (
	StatusActive       ProductStatus = "Active"
	StatusDiscontinued ProductStatus = "Discontinued"
	StatusLowStock     ProductStatus = "Low Stock"
)

// DefaultLowStockThreshold is the exclusive upper bound of the stock range
// displayed as Low Stock.
const DefaultLowStockThreshold = 10

func init() {
	// Prices travel as JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true
}

// Statuses returns every valid product status in display order.
func Statuses() []ProductStatus {
	return []ProductStatus{StatusActive, StatusDiscontinued, StatusLowStock}
}

// IsValid reports whether s is a known status.
func (s ProductStatus) IsValid() bool {
	for _, v := range Statuses() {
		if v == s {
			return true
		}
	}
	return false
}

// ParseStatus returns the status named by raw, falling back to Active for
// unknown or empty values. The boolean reports whether raw was recognised.
func ParseStatus(raw string) (ProductStatus, bool) {
	s := ProductStatus(raw)
	if s.IsValid() {
		return s, true
	}
	return StatusActive, false
}

// Product is a single inventory record.
type Product struct {
	ID           string          `json:"id" yaml:"id"`
	Name         string          `json:"name" yaml:"name"`
	SKU          string          `json:"sku" yaml:"sku"`
	Category     string          `json:"category" yaml:"category"`
	Description  string          `json:"description" yaml:"description"`
	Price        decimal.Decimal `json:"price" yaml:"price"`
	Stock        int             `json:"stock" yaml:"stock"`
	Status       ProductStatus   `json:"status" yaml:"status"`
	ImageURL     string          `json:"imageUrl" yaml:"imageUrl"`
	LastUpdated  time.Time       `json:"lastUpdated" yaml:"lastUpdated"`
	DateAdded    time.Time       `json:"dateAdded" yaml:"dateAdded"`
	IsFeatured   bool            `json:"isFeatured" yaml:"isFeatured"`
	ContactEmail string          `json:"contactEmail" yaml:"contactEmail"`
	ProductURL   string          `json:"productUrl" yaml:"productUrl"`
}

// IsLowStock reports whether stock lies strictly between zero and threshold.
func IsLowStock(stock, threshold int) bool {
	return stock > 0 && stock < threshold
}

// DisplayStatus overlays Low Stock on the stored status when the stock level
// warrants it. The stored status is left untouched.
func (p Product) DisplayStatus(threshold int) ProductStatus {
	if IsLowStock(p.Stock, threshold) {
		return StatusLowStock
	}
	return p.Status
}

// StockValue returns price multiplied by stock.
func (p Product) StockValue() decimal.Decimal {
	return p.Price.Mul(decimal.NewFromInt(int64(p.Stock)))
}

// ProductView is a product as presented in a table, carrying its display
// status next to the stored one.
type ProductView struct {
	Product
	DisplayStatus ProductStatus `json:"displayStatus"`
}

// NewProductView builds the presentation form of p.
func NewProductView(p Product, threshold int) ProductView {
	return ProductView{Product: p, DisplayStatus: p.DisplayStatus(threshold)}
}

// Timestamp returns now truncated to millisecond precision in UTC, matching
// the resolution of the ISO-8601 strings the console exchanges.
func Timestamp(now time.Time) time.Time {
	return now.UTC().Truncate(time.Millisecond)
}

// NextTimestamp returns a timestamp for a modification of a record last
// touched at prev. The result is always strictly after prev.
func NextTimestamp(now, prev time.Time) time.Time {
	ts := Timestamp(now)
	if !ts.After(prev) {
		ts = prev.Add(time.Millisecond)
	}
	return ts
}
