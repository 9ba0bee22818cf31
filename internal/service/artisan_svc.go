package service

import (
	"context"
	"time"

	"handloom_market/internal/analytics"
	"handloom_market/internal/model"
)

// ArtisanService 手艺人看板
type ArtisanService struct {
	repos   *Repositories
	catalog *CatalogService
	recent  int
	now     Clock
}

func NewArtisanService(repos *Repositories, catalog *CatalogService, recent int) *ArtisanService {
	if recent <= 0 {
		recent = analytics.DefaultRecentLimit
	}
	return &ArtisanService{repos: repos, catalog: catalog, recent: recent, now: time.Now}
}

func (s *ArtisanService) SetClock(now Clock) {
	s.now = now
}

// ArtisanDashboard 手艺人首页
type ArtisanDashboard struct {
	TotalProducts   int                      `json:"totalProducts"`
	TotalOrders     int                      `json:"totalOrders"`
	TotalEarnings   float64                  `json:"totalEarnings"`
	MonthlyEarnings float64                  `json:"monthlyEarnings"`
	PendingPayouts  float64                  `json:"pendingPayouts"`
	Statuses        analytics.StatusCounters `json:"statuses"`
	AverageRating   float64                  `json:"averageRating"`
	ReviewCount     int                      `json:"reviewCount"`
	LowStock        []model.Product          `json:"lowStock"`
	RecentOrders    []model.Order            `json:"recentOrders"`
}

// Dashboard 只统计属于该手艺人的明细
func (s *ArtisanService) Dashboard(ctx context.Context, actor analytics.Actor) *ArtisanDashboard {
	products := s.repos.Products.List(ctx)
	orders := s.repos.Orders.List(ctx)
	attr := analytics.NewAttributor(products)

	owned := make([]model.Product, 0)
	for _, p := range products {
		if actor.Owns(p.OwnerKey) {
			owned = append(owned, p)
		}
	}
	mine := attr.OrdersFor(orders, actor)
	reviews := attr.Reviews(orders, actor)

	return &ArtisanDashboard{
		TotalProducts:   len(owned),
		TotalOrders:     len(mine),
		TotalEarnings:   attr.Earnings(orders, actor),
		MonthlyEarnings: attr.MonthlyEarnings(orders, actor, s.now()),
		PendingPayouts:  analytics.PendingPayouts(s.repos.Transactions.List(ctx), actor),
		Statuses:        analytics.CountStatuses(mine),
		AverageRating:   analytics.AverageRating(reviews),
		ReviewCount:     len(reviews),
		LowStock:        s.catalog.LowStock(owned),
		RecentOrders:    analytics.RecentOrders(mine, s.recent),
	}
}

// Orders 相关订单，明细只保留属于自己的部分，可按状态过滤
func (s *ArtisanService) Orders(ctx context.Context, actor analytics.Actor, status string) []model.Order {
	attr := analytics.NewAttributor(s.repos.Products.List(ctx))
	mine := attr.OrdersFor(s.repos.Orders.List(ctx), actor)
	out := make([]model.Order, 0, len(mine))
	for _, o := range mine {
		if status != "" && o.Status != model.ParseOrderStatus(status) {
			continue
		}
		out = append(out, o)
	}
	return out
}

// Reviews 收到的评价
func (s *ArtisanService) Reviews(ctx context.Context, actor analytics.Actor) []analytics.ReviewEntry {
	attr := analytics.NewAttributor(s.repos.Products.List(ctx))
	out := attr.Reviews(s.repos.Orders.List(ctx), actor)
	if out == nil {
		out = make([]analytics.ReviewEntry, 0)
	}
	return out
}
