package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"handloom_market/internal/model"
)

func TestCTR(t *testing.T) {
	assert.Equal(t, 0.0, CTR(0, 10))
	assert.Equal(t, 25.0, CTR(40, 10))
	assert.Equal(t, 33.33, CTR(3, 1))
}

func TestConversion(t *testing.T) {
	assert.Equal(t, 0.0, Conversion(500, 0))
	assert.Equal(t, 5000.0, Conversion(500, 10))
}

func TestCampaignSales_OrderLevelMatchCountsOnce(t *testing.T) {
	c := &model.Campaign{ID: "c1", Coupon: "DIWALI"}
	orders := []model.Order{
		// 订单级命中后不再重复累加明细
		{ID: "o1", CampaignID: "c1", Total: 1000, Items: []model.OrderItem{
			{Qty: 1, Price: 600, CampaignID: "c1"},
			{Qty: 1, Price: 400, CampaignID: "c1"},
		}},
		{ID: "o2", Coupon: "diwali", Total: 250},
		{ID: "o3", Total: 900, Items: []model.OrderItem{
			{Qty: 2, Price: 100, CampaignID: "c1"},
			{Qty: 1, Price: 700},
		}},
		{ID: "o4", Coupon: "HOLI", Total: 300},
	}

	sales, count := CampaignSales(c, orders)
	assert.Equal(t, 1450.0, sales)
	assert.Equal(t, 3, count)
}

func TestCampaignSales_EmptyCouponNeverMatches(t *testing.T) {
	c := &model.Campaign{ID: "c1"}
	sales, count := CampaignSales(c, []model.Order{{ID: "o1", Total: 100}})
	assert.Equal(t, 0.0, sales)
	assert.Equal(t, 0, count)
}

func TestMetricsFor(t *testing.T) {
	now := time.Date(2024, 5, 15, 12, 0, 0, 0, time.UTC)
	c := &model.Campaign{ID: "c1", Start: "2024-05-01", End: "2024-05-31", Views: 200, Clicks: 20}
	orders := []model.Order{{ID: "o1", CampaignID: "c1", Total: 400}}

	m := MetricsFor(c, orders, now)
	assert.Equal(t, model.CampaignRunning, m.Status)
	assert.Equal(t, 10.0, m.CTR)
	assert.Equal(t, 400.0, m.Sales)
	assert.Equal(t, 1, m.Orders)
	assert.Equal(t, 2000.0, m.Conversion)
}

func TestSummarizeCampaigns(t *testing.T) {
	now := time.Date(2024, 5, 15, 12, 0, 0, 0, time.UTC)
	campaigns := []model.Campaign{
		{ID: "c1", Start: "2024-05-01", End: "2024-05-31", Views: 100, Clicks: 10},
		{ID: "c2", Start: "2024-06-01", Views: 0, Clicks: 0},
		{ID: "c3", Start: "2024-04-01", End: "2024-04-30", Views: 100, Clicks: 30},
		{ID: "c4", Start: "2024-05-01", ManualStatus: "paused"},
	}
	orders := []model.Order{
		{ID: "o1", CampaignID: "c1", Total: 100},
		{ID: "o2", CampaignID: "c3", Total: 50},
	}

	s := SummarizeCampaigns(campaigns, orders, now)
	assert.Equal(t, 4, s.Total)
	assert.Equal(t, 1, s.ByStatus[model.CampaignRunning])
	assert.Equal(t, 1, s.ByStatus[model.CampaignUpcoming])
	assert.Equal(t, 1, s.ByStatus[model.CampaignExpired])
	assert.Equal(t, 1, s.ByStatus[model.CampaignPaused])
	assert.Equal(t, 0, s.ByStatus[model.CampaignEnded])
	assert.Equal(t, 200, s.TotalViews)
	assert.Equal(t, 40, s.TotalClicks)
	assert.Equal(t, 20.0, s.OverallCTR)
	assert.Equal(t, 150.0, s.TotalSales)
}
