package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/diqie123/sistem-entri-data-inventaris/internal/domain"
)

func TestDashboardService_Stats(t *testing.T) {
	products := seedProducts()
	products[2].Status = domain.StatusDiscontinued
	products = append(products, testProduct("p4", "Keyboard", "K-1", "Electronics", 40, 9))
	env := newTestEnv(t, products...)

	stats, err := env.dashboard.Stats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 4, stats.TotalProducts)
	// 10*20 + 25*5 + 3*0 + 40*9
	assert.Equal(t, "685", stats.TotalStockValue.String())
	assert.Equal(t, 2, stats.LowStockCount)
	assert.Equal(t, 3, stats.ActiveCount)
	assert.True(t, stats.LowStockAlert)
	assert.Equal(t, []domain.CategoryCount{
		{Name: "Electronics", Count: 3},
		{Name: "Home", Count: 1},
	}, stats.ProductsByCategory)
}

func TestDashboardService_Empty(t *testing.T) {
	env := newTestEnv(t)

	stats, err := env.dashboard.Stats(context.Background())
	require.NoError(t, err)
	assert.Zero(t, stats.TotalProducts)
	assert.True(t, stats.TotalStockValue.IsZero())
	assert.False(t, stats.LowStockAlert)
	assert.NotNil(t, stats.ProductsByCategory)
	assert.Empty(t, stats.ProductsByCategory)
}
