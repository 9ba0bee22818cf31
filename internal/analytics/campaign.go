package analytics

import (
	"time"

	"github.com/shopspring/decimal"

	"handloom_market/internal/model"
)

// CampaignMetrics 活动指标
type CampaignMetrics struct {
	Status     model.CampaignStatus `json:"status"`
	CTR        float64              `json:"ctr"`
	Sales      float64              `json:"sales"`
	Orders     int                  `json:"orders"`
	Conversion float64              `json:"conversion"`
}

// CTR 点击率（百分比），曝光为 0 时返回 0
func CTR(views, clicks int) float64 {
	return percent(decimal.NewFromInt(int64(clicks)), views)
}

// Conversion 转化率（百分比）= 销售额 / 点击数 × 100，点击为 0 时返回 0
func Conversion(sales float64, clicks int) float64 {
	return percent(decimal.NewFromFloat(sales), clicks)
}

func percent(numerator decimal.Decimal, denominator int) float64 {
	if denominator <= 0 {
		return 0
	}
	return numerator.Mul(decimal.NewFromInt(100)).
		Div(decimal.NewFromInt(int64(denominator))).
		Round(2).InexactFloat64()
}

// CampaignSales 活动带来的销售额和订单数
// 订单级命中（campaignId 或券码）计整单金额，不再扫描明细；
// 否则只累计带该活动 ID 的明细金额
func CampaignSales(c *model.Campaign, orders []model.Order) (float64, int) {
	sum := decimal.Zero
	count := 0
	for i := range orders {
		o := &orders[i]
		if (c.ID != "" && o.CampaignID == c.ID) || o.MatchesCoupon(c.Coupon) {
			sum = sum.Add(decimal.NewFromFloat(o.Total))
			count++
			continue
		}
		matched := false
		for j := range o.Items {
			if c.ID != "" && o.Items[j].CampaignID == c.ID {
				sum = sum.Add(o.Items[j].LineTotal())
				matched = true
			}
		}
		if matched {
			count++
		}
	}
	return sum.InexactFloat64(), count
}

// MetricsFor 单个活动的全部指标
func MetricsFor(c *model.Campaign, orders []model.Order, now time.Time) CampaignMetrics {
	sales, count := CampaignSales(c, orders)
	return CampaignMetrics{
		Status:     c.EffectiveStatus(now),
		CTR:        CTR(c.Views, c.Clicks),
		Sales:      sales,
		Orders:     count,
		Conversion: Conversion(sales, c.Clicks),
	}
}

// CampaignSummary 营销看板汇总
type CampaignSummary struct {
	Total       int                          `json:"total"`
	ByStatus    map[model.CampaignStatus]int `json:"byStatus"`
	TotalViews  int                          `json:"totalViews"`
	TotalClicks int                          `json:"totalClicks"`
	OverallCTR  float64                      `json:"overallCtr"`
	TotalSales  float64                      `json:"totalSales"`
}

// SummarizeCampaigns 汇总所有活动
func SummarizeCampaigns(campaigns []model.Campaign, orders []model.Order, now time.Time) CampaignSummary {
	s := CampaignSummary{
		Total: len(campaigns),
		ByStatus: map[model.CampaignStatus]int{
			model.CampaignUpcoming: 0,
			model.CampaignRunning:  0,
			model.CampaignExpired:  0,
			model.CampaignPaused:   0,
			model.CampaignEnded:    0,
		},
	}
	sales := decimal.Zero
	for i := range campaigns {
		c := &campaigns[i]
		s.ByStatus[c.EffectiveStatus(now)]++
		s.TotalViews += c.Views
		s.TotalClicks += c.Clicks
		amount, _ := CampaignSales(c, orders)
		sales = sales.Add(decimal.NewFromFloat(amount))
	}
	s.OverallCTR = CTR(s.TotalViews, s.TotalClicks)
	s.TotalSales = sales.InexactFloat64()
	return s
}
