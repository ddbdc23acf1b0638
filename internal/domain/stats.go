package domain

import "github.com/shopspring/decimal"

// Stats summarises the inventory for the dashboard.
type Stats struct {
	TotalProducts      int             `json:"totalProducts"`
	TotalStockValue    decimal.Decimal `json:"totalStockValue"`
	LowStockCount      int             `json:"lowStockCount"`
	ActiveCount        int             `json:"activeCount"`
	ProductsByCategory []CategoryCount `json:"productsByCategory"`
	LowStockAlert      bool            `json:"lowStockAlert"`
}
