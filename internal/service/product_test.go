package service

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/diqie123/sistem-entri-data-inventaris/internal/domain"
	"github.com/diqie123/sistem-entri-data-inventaris/internal/event"
	apperrors "github.com/diqie123/sistem-entri-data-inventaris/pkg/errors"
	"github.com/diqie123/sistem-entri-data-inventaris/pkg/pagination"
	pkgvalidator "github.com/diqie123/sistem-entri-data-inventaris/pkg/validator"
)

func validDraft() *domain.Draft {
	return &domain.Draft{
		Name:     "  Desk  ",
		SKU:      "D-1",
		Category: "Home",
		Price:    decimal.RequireFromString("120.50"),
		Stock:    4,
	}
}

func TestProductService_Create(t *testing.T) {
	env := newTestEnv(t, seedProducts()...)
	ctx := context.Background()

	env.drafts.SaveDraft(ctx, &domain.Draft{Name: "half typed"})
	env.session.SetPage(2, 2)
	createdBefore := counterValue(t, auditEntriesTotal, map[string]string{"action": "CREATE"})

	p, err := env.products.Create(ctx, validDraft())
	require.NoError(t, err)

	assert.NotEmpty(t, p.ID)
	assert.Equal(t, "Desk", p.Name)
	assert.Equal(t, domain.StatusActive, p.Status)
	assert.Equal(t, testNow, p.DateAdded)
	assert.Equal(t, testNow, p.LastUpdated)

	assert.Equal(t, []string{p.ID, "p1", "p2", "p3"}, env.productIDs(t))

	logs := env.auditLogs(t)
	require.Len(t, logs, 1)
	assert.Equal(t, domain.ActionCreate, logs[0].Action)
	assert.Equal(t, p.ID, logs[0].ProductID)
	assert.Equal(t, `Product "Desk" was created.`, logs[0].Details)

	assert.Equal(t, 1, env.session.Snapshot().Page)
	_, ok := env.drafts.LoadDraft(ctx)
	assert.False(t, ok, "draft should be cleared after a successful create")

	assert.Equal(t, []string{event.TopicProductCreated}, env.publisher.Topics())
	assert.Contains(t, env.messages(), "Product added successfully!")
	assert.Equal(t, createdBefore+1, counterValue(t, auditEntriesTotal, map[string]string{"action": "CREATE"}))
	assert.Equal(t, float64(4), counterValue(t, productsTotal, nil))
}

func TestProductService_Create_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(d *domain.Draft)
		field  string
	}{
		{"blank name", func(d *domain.Draft) { d.Name = "   " }, "name"},
		{"missing category", func(d *domain.Draft) { d.Category = "" }, "category"},
		{"unregistered category", func(d *domain.Draft) { d.Category = "Garden" }, "category"},
		{"zero price", func(d *domain.Draft) { d.Price = decimal.Zero }, "price"},
		{"negative stock", func(d *domain.Draft) { d.Stock = -1 }, "stock"},
		{"bad email", func(d *domain.Draft) { d.ContactEmail = "not-an-email" }, "contactEmail"},
		{"bad url", func(d *domain.Draft) { d.ProductURL = "not a url" }, "productUrl"},
		{"bad status", func(d *domain.Draft) { d.Status = "Archived" }, "status"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t, seedProducts()...)
			d := validDraft()
			tt.mutate(d)

			p, err := env.products.Create(context.Background(), d)
			require.Error(t, err)
			assert.Nil(t, p)

			var valErr *pkgvalidator.ValidationError
			require.ErrorAs(t, err, &valErr)
			assert.Contains(t, valErr.Fields(), tt.field)

			assert.Equal(t, []string{"p1", "p2", "p3"}, env.productIDs(t))
			assert.Empty(t, env.auditLogs(t))
			assert.Empty(t, env.publisher.Topics())
		})
	}
}

func TestProductService_Create_OptionalFieldsAccepted(t *testing.T) {
	env := newTestEnv(t, seedProducts()...)
	d := validDraft()
	d.ContactEmail = "sales@shop.example"
	d.ProductURL = "shop.example/desk"
	d.Status = domain.StatusDiscontinued

	p, err := env.products.Create(context.Background(), d)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusDiscontinued, p.Status)
	assert.Equal(t, "shop.example/desk", p.ProductURL)
}

func TestProductService_Update(t *testing.T) {
	env := newTestEnv(t, seedProducts()...)
	ctx := context.Background()

	updated, err := env.products.Update(ctx, "p1", domain.Patch{
		Name:  strPtr("Desk Lamp"),
		Price: decimalPtr("12.5"),
	})
	require.NoError(t, err)

	assert.Equal(t, "p1", updated.ID)
	assert.Equal(t, "Desk Lamp", updated.Name)
	assert.Equal(t, seedProducts()[0].DateAdded, updated.DateAdded)
	assert.Equal(t, testNow, updated.LastUpdated)

	stored, err := env.products.Get(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, *updated, *stored)
	assert.Equal(t, []string{"p1", "p2", "p3"}, env.productIDs(t), "update keeps the position")

	logs := env.auditLogs(t)
	require.Len(t, logs, 1)
	assert.Equal(t, domain.ActionUpdate, logs[0].Action)
	assert.Equal(t, "Desk Lamp", logs[0].ProductName)
	assert.Equal(t, `name changed from "Lamp" to "Desk Lamp". price changed from "10" to "12.5"`, logs[0].Details)

	assert.Equal(t, []string{event.TopicProductUpdated}, env.publisher.Topics())
	assert.Contains(t, env.messages(), "Product updated successfully!")
}

func TestProductService_Update_TimestampStrictlyIncreases(t *testing.T) {
	p := testProduct("p1", "Lamp", "L-1", "Home", 10, 20)
	p.LastUpdated = testNow
	env := newTestEnv(t, p)

	first, err := env.products.Update(context.Background(), "p1", domain.Patch{Stock: intPtr(21)})
	require.NoError(t, err)
	second, err := env.products.Update(context.Background(), "p1", domain.Patch{Stock: intPtr(22)})
	require.NoError(t, err)

	assert.True(t, first.LastUpdated.After(testNow))
	assert.True(t, second.LastUpdated.After(first.LastUpdated))
}

func TestProductService_Update_NoChanges(t *testing.T) {
	env := newTestEnv(t, seedProducts()...)

	_, err := env.products.Update(context.Background(), "p2", domain.Patch{})
	require.NoError(t, err)

	logs := env.auditLogs(t)
	require.Len(t, logs, 1)
	assert.Equal(t, "Product saved with no changes.", logs[0].Details)
}

func TestProductService_Update_Errors(t *testing.T) {
	env := newTestEnv(t, seedProducts()...)
	ctx := context.Background()

	_, err := env.products.Update(ctx, "missing", domain.Patch{Name: strPtr("x")})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	_, err = env.products.Update(ctx, "p1", domain.Patch{Name: strPtr(""), Stock: intPtr(-3)})
	var valErr *pkgvalidator.ValidationError
	require.ErrorAs(t, err, &valErr)
	assert.Contains(t, valErr.Fields(), "name")
	assert.Contains(t, valErr.Fields(), "stock")

	stored, err := env.products.Get(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, "Lamp", stored.Name)
	assert.Empty(t, env.auditLogs(t))
}

func TestProductService_Delete(t *testing.T) {
	env := newTestEnv(t, seedProducts()...)
	ctx := context.Background()
	env.session.Select([]string{"p1", "p2"}, true)

	require.NoError(t, env.products.Delete(ctx, "p1"))

	assert.Equal(t, []string{"p2", "p3"}, env.productIDs(t))
	assert.Equal(t, []string{"p2"}, env.session.Selected())

	logs := env.auditLogs(t)
	require.Len(t, logs, 1)
	assert.Equal(t, domain.ActionDelete, logs[0].Action)
	assert.Equal(t, `Product "Lamp" (SKU: L-1) was deleted.`, logs[0].Details)
	assert.Contains(t, env.messages(), `Product "Lamp" has been deleted.`)

	err := env.products.Delete(ctx, "p1")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.Len(t, env.auditLogs(t), 1)
}

func TestProductService_DeleteMany(t *testing.T) {
	env := newTestEnv(t, seedProducts()...)
	ctx := context.Background()

	n, err := env.products.DeleteMany(ctx, []string{"p3", "unknown", "p1", "p3"})
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, []string{"p2"}, env.productIDs(t))

	logs := env.auditLogs(t)
	require.Len(t, logs, 1)
	assert.Equal(t, domain.MultipleProductsID, logs[0].ProductID)
	assert.Equal(t, "2 products", logs[0].ProductName)
	assert.Equal(t, "Bulk deleted products: Lamp (SKU: L-1), Cable (SKU: C-1).", logs[0].Details)
	assert.Contains(t, env.messages(), "2 products have been deleted.")
	assert.Len(t, env.publisher.Topics(), 2)
}

func TestProductService_DeleteMany_NoneMatch(t *testing.T) {
	env := newTestEnv(t, seedProducts()...)

	n, err := env.products.DeleteMany(context.Background(), []string{"x", "y"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	assert.Zero(t, n)
	assert.Empty(t, env.auditLogs(t))
	assert.Len(t, env.productIDs(t), 3)
}

func TestProductService_Duplicate(t *testing.T) {
	env := newTestEnv(t, seedProducts()...)
	ctx := context.Background()

	draft, err := env.products.Duplicate(ctx, "p2")
	require.NoError(t, err)
	assert.Equal(t, "Mouse (Copy)", draft.Name)
	assert.Empty(t, draft.SKU)
	require.NotNil(t, draft.DateAdded)
	assert.Equal(t, testNow, *draft.DateAdded)
	assert.Len(t, env.productIDs(t), 3, "duplicate does not store anything")

	created, err := env.products.Create(ctx, draft)
	require.NoError(t, err)
	assert.Equal(t, "Mouse (Copy)", created.Name)
	assert.Equal(t, "Electronics", created.Category)

	_, err = env.products.Duplicate(ctx, "missing")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestProductService_List(t *testing.T) {
	env := newTestEnv(t, seedProducts()...)

	page, err := env.products.List(context.Background(), ListQuery{
		Filters: domain.ViewQuery{Status: string(domain.StatusLowStock)},
		Page:    pagination.DefaultParams(10),
	})
	require.NoError(t, err)
	require.Len(t, page.Data, 1)
	assert.Equal(t, "p2", page.Data[0].ID)
	assert.Equal(t, domain.StatusLowStock, page.Data[0].DisplayStatus)
	assert.Equal(t, domain.StatusActive, page.Data[0].Status)

	page, err = env.products.List(context.Background(), ListQuery{
		Sort: domain.SortConfig{Key: domain.SortByPrice, Direction: domain.SortDescending},
		Page: pagination.Params{Page: 1, PerPage: 2},
	})
	require.NoError(t, err)
	assert.Equal(t, 3, page.TotalCount)
	assert.Equal(t, 2, page.TotalPages)
	assert.Equal(t, "p2", page.Data[0].ID)
	assert.Equal(t, "p1", page.Data[1].ID)

	_, err = env.products.List(context.Background(), ListQuery{Sort: domain.SortConfig{Key: "weight"}})
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

func TestProductService_History(t *testing.T) {
	env := newTestEnv(t, seedProducts()...)
	ctx := context.Background()

	_, err := env.products.Update(ctx, "p1", domain.Patch{Stock: intPtr(30)})
	require.NoError(t, err)
	_, err = env.products.Update(ctx, "p2", domain.Patch{Stock: intPtr(30)})
	require.NoError(t, err)
	require.NoError(t, env.products.Delete(ctx, "p1"))

	logs, err := env.products.History(ctx, "p1")
	require.NoError(t, err)
	require.Len(t, logs, 2)
	assert.Equal(t, domain.ActionDelete, logs[0].Action)
	assert.Equal(t, domain.ActionUpdate, logs[1].Action)
}
