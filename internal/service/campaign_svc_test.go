package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"handloom_market/internal/api/dto"
	"handloom_market/internal/model"
)

func TestCampaignService_Lifecycle(t *testing.T) {
	ctx := context.Background()
	repos, _ := setupRepos(t)
	svc := NewCampaignService(repos)
	svc.SetClock(fixedClock)

	c := svc.Create(ctx, &dto.CreateCampaignRequest{Title: "Summer Looms", Start: "2024-05-01", End: "2024-05-31", Coupon: "SUMMER"})
	assert.NotEmpty(t, c.ID)
	assert.Equal(t, "2024-05-14T10:30:00Z", c.CreatedAt)

	view, err := svc.Get(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, model.CampaignRunning, view.Metrics.Status)

	updated, err := svc.Update(ctx, c.ID, model.CampaignPatch{Title: ptr("Monsoon Looms")})
	require.NoError(t, err)
	assert.Equal(t, "Monsoon Looms", updated.Title)
	assert.Equal(t, "SUMMER", updated.Coupon)

	require.NoError(t, svc.Delete(ctx, c.ID))
	assert.ErrorIs(t, svc.Delete(ctx, c.ID), ErrCampaignNotFound)
	_, err = svc.Get(ctx, c.ID)
	assert.ErrorIs(t, err, ErrCampaignNotFound)
}

func TestCampaignService_TogglePause(t *testing.T) {
	ctx := context.Background()
	repos, _ := setupRepos(t)
	repos.Campaigns.Save(ctx, []model.Campaign{{ID: "c1", Title: "Future", Start: "2024-06-01"}})
	svc := NewCampaignService(repos)
	svc.SetClock(fixedClock)

	c, err := svc.TogglePause(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, model.CampaignPaused, c.EffectiveStatus(fixedNow))

	// 恢复后回到按日期推导的状态
	c, err = svc.TogglePause(ctx, "c1")
	require.NoError(t, err)
	assert.Empty(t, c.ManualStatus)
	assert.Equal(t, model.CampaignUpcoming, c.EffectiveStatus(fixedNow))

	c, err = svc.End(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, model.CampaignEnded, c.EffectiveStatus(fixedNow))

	_, err = svc.TogglePause(ctx, "c1")
	assert.ErrorIs(t, err, ErrCampaignEnded)

	_, err = svc.End(ctx, "missing")
	assert.ErrorIs(t, err, ErrCampaignNotFound)
}

func TestCampaignService_TrackingAndDashboard(t *testing.T) {
	ctx := context.Background()
	repos, _ := setupRepos(t)
	repos.Campaigns.Save(ctx, []model.Campaign{
		{ID: "c1", Title: "Diwali", Start: "2024-05-01", Coupon: "DIWALI"},
		{ID: "c2", Title: "Old", Start: "2024-01-01", End: "2024-01-31"},
	})
	repos.Orders.Save(ctx, []model.Order{
		{ID: "o1", Coupon: "diwali", Total: 900},
		{ID: "o2", Total: 500, Items: []model.OrderItem{{Qty: 1, Price: 300, CampaignID: "c2"}, {Qty: 1, Price: 200}}},
	})
	svc := NewCampaignService(repos)
	svc.SetClock(fixedClock)

	for i := 0; i < 4; i++ {
		_, err := svc.RecordView(ctx, "c1")
		require.NoError(t, err)
	}
	_, err := svc.RecordClick(ctx, "c1")
	require.NoError(t, err)
	_, err = svc.RecordClick(ctx, "missing")
	assert.ErrorIs(t, err, ErrCampaignNotFound)

	dash := svc.Dashboard(ctx)
	assert.Equal(t, 2, dash.Summary.Total)
	assert.Equal(t, 1, dash.Summary.ByStatus[model.CampaignRunning])
	assert.Equal(t, 1, dash.Summary.ByStatus[model.CampaignExpired])
	assert.Equal(t, 4, dash.Summary.TotalViews)
	assert.Equal(t, 25.0, dash.Summary.OverallCTR)
	assert.Equal(t, 1200.0, dash.Summary.TotalSales)

	require.Len(t, dash.Campaigns, 2)
	assert.Equal(t, 900.0, dash.Campaigns[0].Metrics.Sales)
	assert.Equal(t, 90000.0, dash.Campaigns[0].Metrics.Conversion)
	assert.Equal(t, 300.0, dash.Campaigns[1].Metrics.Sales)
	assert.Equal(t, 0.0, dash.Campaigns[1].Metrics.CTR)
}
