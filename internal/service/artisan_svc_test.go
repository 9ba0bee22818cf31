package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"handloom_market/internal/analytics"
	"handloom_market/internal/model"
)

func TestArtisanService(t *testing.T) {
	ctx := context.Background()
	repos, _ := setupRepos(t)
	repos.Orders.Save(ctx, []model.Order{
		{
			ID: "o1", Date: "2024-05-03", Status: model.OrderStatusPending, BuyerName: "Asha",
			Items: []model.OrderItem{
				{ProductID: "1", Name: "Banarasi Silk Saree", Qty: 1, Price: 8500, Review: &model.Review{Rating: 5, Comment: "Stunning"}},
				{ProductID: "3", Name: "Pashmina Shawl", Qty: 1, Price: 6400},
			},
		},
		{
			ID: "o2", Date: "2024-04-20", Status: model.OrderStatusDelivered,
			Items: []model.OrderItem{{ProductID: "2", Qty: 2, Price: 12000, Review: &model.Review{Rating: 3}}},
		},
		{
			ID: "o3", Date: "2024-05-05", Status: model.OrderStatusShipped,
			Items: []model.OrderItem{{ProductID: "4", Qty: 1, Price: 1800}},
		},
	})
	repos.Transactions.Save(ctx, []model.Transaction{
		{ID: "t1", Amount: 8500, Status: model.TransactionPending, OwnerKey: "Meera Weaves"},
		{ID: "t2", Amount: 24000, Status: model.TransactionVerified, OwnerKey: "meera weaves", Payout: "PO-7"},
	})
	catalog := NewCatalogService(repos, 5)
	svc := NewArtisanService(repos, catalog, 5)
	svc.SetClock(fixedClock)
	meera := analytics.NewActor("meera@x.com", "Meera Weaves", "u_meera")

	dash := svc.Dashboard(ctx, meera)
	assert.Equal(t, 2, dash.TotalProducts)
	assert.Equal(t, 2, dash.TotalOrders)
	assert.Equal(t, 32500.0, dash.TotalEarnings)
	assert.Equal(t, 8500.0, dash.MonthlyEarnings)
	assert.Equal(t, 8500.0, dash.PendingPayouts)
	assert.Equal(t, 1, dash.Statuses.New)
	assert.Equal(t, 1, dash.Statuses.Delivered)
	assert.Equal(t, 4.0, dash.AverageRating)
	assert.Equal(t, 2, dash.ReviewCount)
	require.Len(t, dash.LowStock, 1)
	assert.Equal(t, "2", dash.LowStock[0].ID)
	require.Len(t, dash.RecentOrders, 2)
	assert.Equal(t, "o1", dash.RecentOrders[0].ID)

	orders := svc.Orders(ctx, meera, "")
	require.Len(t, orders, 2)
	assert.Len(t, orders[0].Items, 1)
	assert.Len(t, svc.Orders(ctx, meera, "new"), 1)

	reviews := svc.Reviews(ctx, meera)
	require.Len(t, reviews, 2)
	assert.Equal(t, "Asha", reviews[0].BuyerName)

	assert.Empty(t, svc.Reviews(ctx, analytics.NewActor("Gram Khadi")))
}
