package service

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/diqie123/sistem-entri-data-inventaris/internal/domain"
	"github.com/diqie123/sistem-entri-data-inventaris/internal/repository"
)

// DashboardService computes inventory summary figures.
type DashboardService struct {
	store     repository.Store
	threshold int
}

// NewDashboardService creates a new dashboard service.
func NewDashboardService(store repository.Store, threshold int) *DashboardService {
	return &DashboardService{store: store, threshold: threshold}
}

// Stats summarises the current collection. Categories are listed in registry
// order and only when they hold at least one product.
func (s *DashboardService) Stats(ctx context.Context) (*domain.Stats, error) {
	var (
		products []domain.Product
		names    []string
	)
	err := s.store.WithinTx(ctx, func(tx repository.Tx) error {
		var err error
		if products, err = tx.Products().List(ctx); err != nil {
			return fmt.Errorf("list products: %w", err)
		}
		if names, err = tx.Categories().List(ctx); err != nil {
			return fmt.Errorf("list categories: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	stats := &domain.Stats{
		TotalProducts:      len(products),
		TotalStockValue:    decimal.Zero,
		ProductsByCategory: []domain.CategoryCount{},
	}
	counts := make(map[string]int)
	for _, p := range products {
		stats.TotalStockValue = stats.TotalStockValue.Add(p.StockValue())
		if domain.IsLowStock(p.Stock, s.threshold) {
			stats.LowStockCount++
		}
		if p.Status == domain.StatusActive {
			stats.ActiveCount++
		}
		counts[p.Category]++
	}
	for _, name := range names {
		if n := counts[name]; n > 0 {
			stats.ProductsByCategory = append(stats.ProductsByCategory, domain.CategoryCount{Name: name, Count: n})
		}
	}
	stats.LowStockAlert = stats.LowStockCount > 0

	return stats, nil
}
