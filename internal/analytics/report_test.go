package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"handloom_market/internal/model"
)

func TestDailyRevenue_Window(t *testing.T) {
	now := time.Date(2024, 5, 14, 18, 30, 0, 0, time.UTC)
	orders := []model.Order{
		{Date: "2024-05-14T09:00:00Z", Total: 100},
		{Date: "2024-05-14", Total: 50},
		{Date: "2024-05-01T00:00:00Z", Total: 70},
		{Date: "2024-04-30", Total: 999},
		{Date: "2024-05-15", Total: 999},
		{Total: 999},
	}

	buckets := DailyRevenue(orders, now, 0)
	require.Len(t, buckets, DefaultReportDays)
	assert.Equal(t, "2024-05-01", buckets[0].Date)
	assert.Equal(t, "2024-05-14", buckets[13].Date)
	for i := 1; i < len(buckets); i++ {
		assert.Less(t, buckets[i-1].Date, buckets[i].Date)
	}

	assert.Equal(t, 70.0, buckets[0].Revenue)
	assert.Equal(t, 1, buckets[0].Orders)
	assert.Equal(t, 150.0, buckets[13].Revenue)
	assert.Equal(t, 2, buckets[13].Orders)

	total := 0.0
	for _, b := range buckets {
		total += b.Revenue
	}
	assert.Equal(t, 220.0, total)
}

func TestDailyRevenue_CrossesMonth(t *testing.T) {
	now := time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC)
	buckets := DailyRevenue(nil, now, 3)
	require.Len(t, buckets, 3)
	assert.Equal(t, []string{"2024-02-29", "2024-03-01", "2024-03-02"},
		[]string{buckets[0].Date, buckets[1].Date, buckets[2].Date})
}

func TestCategoryDistribution(t *testing.T) {
	products := []model.Product{
		{Category: "Sarees", Sales: 5},
		{Category: "Shawls", Sales: 8},
		{Category: "", Sales: 3},
		{Category: "Sarees", Sales: 3},
		{Category: "Bags", Sales: 8},
		{Category: "  ", Sales: 2},
	}

	got := CategoryDistribution(products)
	assert.Equal(t, []CategoryShare{
		{Category: "Sarees", Sales: 8},
		{Category: "Shawls", Sales: 8},
		{Category: "Bags", Sales: 8},
		{Category: "Uncategorized", Sales: 5},
	}, got)
}

func TestTopProducts(t *testing.T) {
	products := []model.Product{
		{ID: "a", Sales: 1, Price: 10},
		{ID: "b", Sales: 5, Price: 20},
		{ID: "c", Sales: 5, Price: 30},
		{ID: "d", Sales: 0},
	}

	got := TopProducts(products, 3)
	require.Len(t, got, 3)
	assert.Equal(t, "b", got[0].ID)
	assert.Equal(t, "c", got[1].ID)
	assert.Equal(t, "a", got[2].ID)
	assert.Equal(t, 100.0, got[0].Revenue)

	assert.Len(t, TopProducts(products, 0), 4)
}

func TestTopArtisans(t *testing.T) {
	products := []model.Product{
		{OwnerKey: "meera", Sales: 2},
		{OwnerKey: "", Sales: 4},
		{OwnerKey: "ravi", Sales: 6},
		{OwnerKey: "meera", Sales: 4},
	}

	got := TopArtisans(products, 0)
	assert.Equal(t, []ArtisanRank{
		{OwnerKey: "meera", Products: 2, Sales: 6},
		{OwnerKey: "ravi", Products: 1, Sales: 6},
		{OwnerKey: "unknown", Products: 1, Sales: 4},
	}, got)
}

func TestUserGrowth(t *testing.T) {
	accounts := []model.Account{
		{RegistrationDate: "2024-05-03T10:00:00Z"},
		{RegistrationDate: "2024-05-01"},
		{RegistrationDate: "2024-05-03"},
		{RegistrationDate: ""},
	}

	assert.Equal(t, []GrowthPoint{
		{Date: "2024-05-01", Count: 1},
		{Date: "2024-05-03", Count: 2},
	}, UserGrowth(accounts))
	assert.Empty(t, UserGrowth(nil))
}

func TestBuildInsights(t *testing.T) {
	daily := []DailyBucket{
		{Date: "2024-05-01", Revenue: 100},
		{Date: "2024-05-02", Revenue: 300},
		{Date: "2024-05-03", Revenue: 300},
		{Date: "2024-05-04", Revenue: 0},
	}
	categories := []CategoryShare{{Category: "Sarees", Sales: 9}, {Category: "Bags", Sales: 1}}
	products := []model.Product{
		{Price: 80, Cost: 100},
		{Price: 120, Cost: 100},
		{Price: 10},
	}

	in := BuildInsights(daily, categories, products)
	assert.Equal(t, "Sarees", in.TopCategory)
	assert.Equal(t, "2024-05-02", in.PeakDay)
	assert.Equal(t, 300.0, in.PeakRevenue)
	assert.Equal(t, 1, in.LossMakingProducts)
	assert.Equal(t, 700.0, in.WindowRevenue)
	assert.Equal(t, 175.0, in.AverageDailyRevenue)

	empty := BuildInsights(nil, nil, nil)
	assert.Equal(t, Insights{}, empty)
}
