package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"handloom_market/internal/model"
)

var ErrNotificationNotFound = errors.New("通知不存在")

// NotificationService 站内通知，由定时任务写入
type NotificationService struct {
	repos     *Repositories
	threshold int
	now       Clock
}

func NewNotificationService(repos *Repositories, lowStockThreshold int) *NotificationService {
	return &NotificationService{repos: repos, threshold: lowStockThreshold, now: time.Now}
}

func (s *NotificationService) SetClock(now Clock) {
	s.now = now
}

// ForAudience 发给任一受众的通知
func (s *NotificationService) ForAudience(ctx context.Context, audiences ...string) []model.Notification {
	out := make([]model.Notification, 0)
	for _, n := range s.repos.Notifications.List(ctx) {
		if addressedTo(&n, audiences) {
			out = append(out, n)
		}
	}
	return out
}

// MarkRead 标记已读，传入受众时只能操作发给这些受众的通知
func (s *NotificationService) MarkRead(ctx context.Context, id string, audiences ...string) error {
	list := s.repos.Notifications.List(ctx)
	for i := range list {
		if list[i].ID == id {
			if len(audiences) > 0 && !addressedTo(&list[i], audiences) {
				return ErrNotificationNotFound
			}
			list[i].Read = true
			s.repos.Notifications.Save(ctx, list)
			return nil
		}
	}
	return ErrNotificationNotFound
}

func addressedTo(n *model.Notification, audiences []string) bool {
	for _, a := range audiences {
		if a != "" && strings.EqualFold(n.Audience, a) {
			return true
		}
	}
	return false
}

// SweepLowStock 为低库存商品通知归属手艺人和管理员
// 同一商品同一受众已有未读通知时不重复发送，返回新增条数
func (s *NotificationService) SweepLowStock(ctx context.Context) int {
	list := s.repos.Notifications.List(ctx)
	pending := make(map[string]bool)
	for _, n := range list {
		if n.Kind == model.NotificationLowStock && !n.Read {
			pending[n.RefID+"|"+strings.ToLower(n.Audience)] = true
		}
	}

	added := 0
	for _, p := range s.repos.Products.List(ctx) {
		if !p.IsLowStock(s.threshold) {
			continue
		}
		msg := fmt.Sprintf("%s 库存仅剩 %d 件", p.Name, p.Stock)
		for _, audience := range []string{p.OwnerKey, model.RoleAdmin} {
			key := p.ID + "|" + strings.ToLower(audience)
			if audience == "" || pending[key] {
				continue
			}
			pending[key] = true
			list = append(list, s.newNotification(model.NotificationLowStock, msg, audience, p.ID))
			added++
		}
	}
	if added > 0 {
		s.repos.Notifications.Save(ctx, list)
	}
	return added
}

// SweepExpiredCampaigns 已过期活动通知营销人员，每个活动只通知一次
func (s *NotificationService) SweepExpiredCampaigns(ctx context.Context) int {
	list := s.repos.Notifications.List(ctx)
	notified := make(map[string]bool)
	for _, n := range list {
		if n.Kind == model.NotificationCampaignExpired {
			notified[n.RefID] = true
		}
	}

	now := s.now()
	added := 0
	for _, c := range s.repos.Campaigns.List(ctx) {
		if notified[c.ID] || c.EffectiveStatus(now) != model.CampaignExpired {
			continue
		}
		notified[c.ID] = true
		msg := fmt.Sprintf("活动 %s 已于 %s 到期", c.Title, c.End)
		list = append(list, s.newNotification(model.NotificationCampaignExpired, msg, model.RoleMarketing, c.ID))
		added++
	}
	if added > 0 {
		s.repos.Notifications.Save(ctx, list)
	}
	return added
}

func (s *NotificationService) newNotification(kind, msg, audience, ref string) model.Notification {
	return model.Notification{
		ID:        "ntf_" + uuid.NewString(),
		Kind:      kind,
		Message:   msg,
		Audience:  audience,
		RefID:     ref,
		CreatedAt: isoTime(s.now()),
	}
}
