package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"handloom_market/internal/analytics"
	"handloom_market/internal/api/dto"
	"handloom_market/internal/model"
)

func ptr[T any](v T) *T { return &v }

func TestCatalogService_Search(t *testing.T) {
	ctx := context.Background()
	repos, _ := setupRepos(t)
	svc := NewCatalogService(repos, 5)

	assert.Len(t, svc.Search(ctx, &dto.ProductQuery{}), 8)
	assert.Len(t, svc.Search(ctx, &dto.ProductQuery{Category: "sarees"}), 3)
	assert.Len(t, svc.Search(ctx, &dto.ProductQuery{Q: "silk"}), 3)
	assert.Len(t, svc.Search(ctx, &dto.ProductQuery{Category: "Sarees", MaxPrice: 9000}), 2)

	byArtisan := svc.Search(ctx, &dto.ProductQuery{Q: "meera"})
	require.Len(t, byArtisan, 2)
	assert.ElementsMatch(t, []string{"1", "2"}, []string{byArtisan[0].ID, byArtisan[1].ID})

	_, err := NewInventoryService(repos, svc).Disable(ctx, "4")
	require.NoError(t, err)
	assert.Len(t, svc.Search(ctx, &dto.ProductQuery{}), 7)

	assert.Equal(t, []string{"Dupattas", "Home Decor", "Sarees", "Shawls"}, svc.Categories(ctx))
}

func TestCatalogService_CreateUpdateDelete(t *testing.T) {
	ctx := context.Background()
	repos, _ := setupRepos(t)
	svc := NewCatalogService(repos, 5)
	svc.SetClock(fixedClock)

	meera := analytics.NewActor("meera@x.com", "Meera Weaves")
	p := svc.Create(ctx, "meera@x.com", &dto.CreateProductRequest{Name: "Tussar Saree", Category: "Sarees", Price: 4000, Stock: 2})
	assert.NotEmpty(t, p.ID)
	assert.False(t, p.Approved)
	assert.Equal(t, "2024-05-14T10:30:00Z", p.CreatedAt)
	assert.Len(t, svc.Owned(ctx, meera), 3)

	updated, err := svc.Update(ctx, &meera, p.ID, model.ProductPatch{Price: ptr(4200.0), Stock: ptr(0)})
	require.NoError(t, err)
	assert.Equal(t, 4200.0, updated.Price)
	assert.Equal(t, model.ProductOutOfStock, updated.Status)
	assert.Equal(t, "2024-05-14T10:30:00Z", updated.UpdatedAt)

	valley := analytics.NewActor("Valley Looms")
	_, err = svc.Update(ctx, &valley, p.ID, model.ProductPatch{Name: ptr("mine now")})
	assert.ErrorIs(t, err, ErrNotOwner)
	assert.ErrorIs(t, svc.Delete(ctx, &valley, p.ID), ErrNotOwner)

	require.NoError(t, svc.Delete(ctx, &meera, p.ID))
	_, err = svc.Get(ctx, p.ID)
	assert.ErrorIs(t, err, ErrProductNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, nil, p.ID), ErrProductNotFound)
}

func TestCatalogService_LowStock(t *testing.T) {
	ctx := context.Background()
	repos, _ := setupRepos(t)
	svc := NewCatalogService(repos, 0)

	low := svc.LowStock(repos.Products.List(ctx))
	ids := make([]string, 0, len(low))
	for _, p := range low {
		ids = append(ids, p.ID)
	}
	assert.Equal(t, []string{"2", "5", "8"}, ids)
	assert.Equal(t, model.DefaultLowStockThreshold, svc.Threshold())
}

func TestInventoryService(t *testing.T) {
	ctx := context.Background()
	repos, _ := setupRepos(t)
	catalog := NewCatalogService(repos, 5)
	catalog.Create(ctx, "ravi@x.com", &dto.CreateProductRequest{Name: "Woollen Rug", Category: "Home Decor", Price: 3000, Stock: 10})
	svc := NewInventoryService(repos, catalog)

	view := svc.List(ctx, &dto.InventoryQuery{})
	assert.Equal(t, 9, view.Total)
	assert.Equal(t, 3, view.LowStock)
	assert.Equal(t, 1, view.Pending)

	assert.Len(t, svc.List(ctx, &dto.InventoryQuery{LowStock: true}).Products, 3)
	assert.Len(t, svc.List(ctx, &dto.InventoryQuery{Q: "home decor"}).Products, 2)

	rug := svc.List(ctx, &dto.InventoryQuery{Q: "rug"}).Products
	require.Len(t, rug, 1)
	approved, err := svc.Approve(ctx, rug[0].ID)
	require.NoError(t, err)
	assert.True(t, approved.Approved)

	require.NoError(t, svc.Delete(ctx, rug[0].ID))
	_, err = svc.Approve(ctx, rug[0].ID)
	assert.ErrorIs(t, err, ErrProductNotFound)
}
