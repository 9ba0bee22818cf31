package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"handloom_market/internal/analytics"
	"handloom_market/internal/api/dto"
	"handloom_market/internal/model"
)

var (
	ErrCampaignNotFound = errors.New("活动不存在")
	ErrCampaignEnded    = errors.New("活动已结束，不能暂停或恢复")
)

// CampaignService 营销活动
type CampaignService struct {
	repos *Repositories
	now   Clock
}

func NewCampaignService(repos *Repositories) *CampaignService {
	return &CampaignService{repos: repos, now: time.Now}
}

func (s *CampaignService) SetClock(now Clock) {
	s.now = now
}

// CampaignView 活动及其实时指标
type CampaignView struct {
	model.Campaign
	Metrics analytics.CampaignMetrics `json:"metrics"`
}

// CampaignDashboard 营销看板
type CampaignDashboard struct {
	Summary   analytics.CampaignSummary `json:"summary"`
	Campaigns []CampaignView            `json:"campaigns"`
}

// Dashboard 汇总与逐个活动指标
func (s *CampaignService) Dashboard(ctx context.Context) *CampaignDashboard {
	campaigns := s.repos.Campaigns.List(ctx)
	orders := s.repos.Orders.List(ctx)
	now := s.now()
	return &CampaignDashboard{
		Summary:   analytics.SummarizeCampaigns(campaigns, orders, now),
		Campaigns: s.views(campaigns, orders, now),
	}
}

// List 全部活动
func (s *CampaignService) List(ctx context.Context) []CampaignView {
	return s.views(s.repos.Campaigns.List(ctx), s.repos.Orders.List(ctx), s.now())
}

// Get 单个活动
func (s *CampaignService) Get(ctx context.Context, id string) (*CampaignView, error) {
	for _, c := range s.repos.Campaigns.List(ctx) {
		if c.ID == id {
			v := CampaignView{Campaign: c, Metrics: analytics.MetricsFor(&c, s.repos.Orders.List(ctx), s.now())}
			return &v, nil
		}
	}
	return nil, ErrCampaignNotFound
}

// Create 新建活动
func (s *CampaignService) Create(ctx context.Context, req *dto.CreateCampaignRequest) *model.Campaign {
	c := model.Campaign{
		ID:        "cmp_" + uuid.NewString(),
		Title:     strings.TrimSpace(req.Title),
		Start:     strings.TrimSpace(req.Start),
		End:       strings.TrimSpace(req.End),
		Discount:  req.Discount,
		Coupon:    strings.TrimSpace(req.Coupon),
		Featured:  req.Featured,
		CreatedAt: isoTime(s.now()),
	}
	s.repos.Campaigns.Save(ctx, append(s.repos.Campaigns.List(ctx), c))
	return &c
}

// Update 部分更新
func (s *CampaignService) Update(ctx context.Context, id string, patch model.CampaignPatch) (*model.Campaign, error) {
	return s.update(ctx, id, func(c *model.Campaign) error {
		c.Apply(patch)
		return nil
	})
}

// Delete 删除活动
func (s *CampaignService) Delete(ctx context.Context, id string) error {
	campaigns := s.repos.Campaigns.List(ctx)
	for i := range campaigns {
		if campaigns[i].ID == id {
			s.repos.Campaigns.Save(ctx, append(campaigns[:i], campaigns[i+1:]...))
			return nil
		}
	}
	return ErrCampaignNotFound
}

// TogglePause 暂停中则恢复（清除手动状态），否则暂停；已结束的活动不可操作
func (s *CampaignService) TogglePause(ctx context.Context, id string) (*model.Campaign, error) {
	return s.update(ctx, id, func(c *model.Campaign) error {
		switch model.CampaignStatus(c.ManualStatus) {
		case model.CampaignEnded:
			return ErrCampaignEnded
		case model.CampaignPaused:
			c.ManualStatus = ""
		default:
			c.ManualStatus = string(model.CampaignPaused)
		}
		return nil
	})
}

// End 手动结束
func (s *CampaignService) End(ctx context.Context, id string) (*model.Campaign, error) {
	return s.update(ctx, id, func(c *model.Campaign) error {
		c.ManualStatus = string(model.CampaignEnded)
		return nil
	})
}

// RecordView 曝光计数
func (s *CampaignService) RecordView(ctx context.Context, id string) (*model.Campaign, error) {
	return s.update(ctx, id, func(c *model.Campaign) error {
		c.Views++
		return nil
	})
}

// RecordClick 点击计数
func (s *CampaignService) RecordClick(ctx context.Context, id string) (*model.Campaign, error) {
	return s.update(ctx, id, func(c *model.Campaign) error {
		c.Clicks++
		return nil
	})
}

func (s *CampaignService) views(campaigns []model.Campaign, orders []model.Order, now time.Time) []CampaignView {
	out := make([]CampaignView, 0, len(campaigns))
	for i := range campaigns {
		out = append(out, CampaignView{
			Campaign: campaigns[i],
			Metrics:  analytics.MetricsFor(&campaigns[i], orders, now),
		})
	}
	return out
}

func (s *CampaignService) update(ctx context.Context, id string, fn func(*model.Campaign) error) (*model.Campaign, error) {
	campaigns := s.repos.Campaigns.List(ctx)
	for i := range campaigns {
		if campaigns[i].ID != id {
			continue
		}
		if err := fn(&campaigns[i]); err != nil {
			return nil, err
		}
		s.repos.Campaigns.Save(ctx, campaigns)
		return &campaigns[i], nil
	}
	return nil, ErrCampaignNotFound
}
