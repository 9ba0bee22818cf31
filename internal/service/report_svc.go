package service

import (
	"context"
	"time"

	"handloom_market/internal/analytics"
)

// Report 报表页
type Report struct {
	GeneratedAt     string                    `json:"generatedAt"`
	Days            int                       `json:"days"`
	Daily           []analytics.DailyBucket   `json:"daily"`
	Categories      []analytics.CategoryShare `json:"categories"`
	TopProducts     []analytics.ProductRank   `json:"topProducts"`
	TopArtisans     []analytics.ArtisanRank   `json:"topArtisans"`
	ArtisanEarnings map[string]float64        `json:"artisanEarnings"` // 按归属键汇总的明细收入，空键为无法归属
	UserGrowth      []analytics.GrowthPoint   `json:"userGrowth"`
	Insights        analytics.Insights        `json:"insights"`
}

// ReportService 报表
type ReportService struct {
	repos *Repositories
	now   Clock
}

func NewReportService(repos *Repositories) *ReportService {
	return &ReportService{repos: repos, now: time.Now}
}

func (s *ReportService) SetClock(now Clock) {
	s.now = now
}

// Build days/top 为 0 时使用默认值
func (s *ReportService) Build(ctx context.Context, days, top int) *Report {
	if days <= 0 {
		days = analytics.DefaultReportDays
	}
	now := s.now()
	products := s.repos.Products.List(ctx)
	orders := s.repos.Orders.List(ctx)

	daily := analytics.DailyRevenue(orders, now, days)
	categories := analytics.CategoryDistribution(products)
	if categories == nil {
		categories = make([]analytics.CategoryShare, 0)
	}
	artisans := analytics.TopArtisans(products, top)
	if artisans == nil {
		artisans = make([]analytics.ArtisanRank, 0)
	}
	return &Report{
		GeneratedAt:     isoTime(now),
		Days:            days,
		Daily:           daily,
		Categories:      categories,
		TopProducts:     analytics.TopProducts(products, top),
		TopArtisans:     artisans,
		ArtisanEarnings: analytics.NewAttributor(products).EarningsByOwner(orders),
		UserGrowth:      analytics.UserGrowth(s.repos.Accounts.List(ctx)),
		Insights:        analytics.BuildInsights(daily, categories, products),
	}
}
