package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"handloom_market/internal/api/dto"
	"handloom_market/internal/model"
)

var ErrTicketNotFound = errors.New("工单不存在")

// AnonymousName 未署名反馈的默认名称
const AnonymousName = "Anonymous"

// ==================== SupportService ====================

// SupportService 客服工单
type SupportService struct {
	repos *Repositories
	now   Clock
}

func NewSupportService(repos *Repositories) *SupportService {
	return &SupportService{repos: repos, now: time.Now}
}

func (s *SupportService) SetClock(now Clock) {
	s.now = now
}

// Create 任何访客都可提交
func (s *SupportService) Create(ctx context.Context, req *dto.TicketRequest) *model.SupportTicket {
	t := model.SupportTicket{
		ID:        "tkt_" + uuid.NewString(),
		Subject:   strings.TrimSpace(req.Subject),
		Message:   strings.TrimSpace(req.Message),
		Email:     strings.TrimSpace(req.Email),
		Status:    model.TicketOpen,
		CreatedAt: isoTime(s.now()),
	}
	if t.Email == "" {
		if user, ok := s.repos.Session.Get(ctx); ok {
			t.Email = user.Email
		}
	}
	s.repos.Tickets.Save(ctx, append(s.repos.Tickets.List(ctx), t))
	return &t
}

// List 全部工单，status 非空时过滤
func (s *SupportService) List(ctx context.Context, status string) []model.SupportTicket {
	out := make([]model.SupportTicket, 0)
	for _, t := range s.repos.Tickets.List(ctx) {
		if status == "" || t.Status == status {
			out = append(out, t)
		}
	}
	return out
}

// Resolve 标记已解决
func (s *SupportService) Resolve(ctx context.Context, id string) (*model.SupportTicket, error) {
	tickets := s.repos.Tickets.List(ctx)
	for i := range tickets {
		if tickets[i].ID == id {
			tickets[i].Status = model.TicketResolved
			s.repos.Tickets.Save(ctx, tickets)
			return &tickets[i], nil
		}
	}
	return nil, ErrTicketNotFound
}

// ==================== FeedbackService ====================

// FeedbackService 访客反馈
type FeedbackService struct {
	repos *Repositories
	now   Clock
}

func NewFeedbackService(repos *Repositories) *FeedbackService {
	return &FeedbackService{repos: repos, now: time.Now}
}

func (s *FeedbackService) SetClock(now Clock) {
	s.now = now
}

// Submit 未署名时记为 Anonymous
func (s *FeedbackService) Submit(ctx context.Context, req *dto.FeedbackRequest) *model.Feedback {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		name = AnonymousName
	}
	f := model.Feedback{
		ID:        "fb_" + uuid.NewString(),
		Name:      name,
		Message:   strings.TrimSpace(req.Message),
		CreatedAt: isoTime(s.now()),
	}
	s.repos.Feedback.Save(ctx, append(s.repos.Feedback.List(ctx), f))
	return &f
}

// List 最新的在前
func (s *FeedbackService) List(ctx context.Context) []model.Feedback {
	list := s.repos.Feedback.List(ctx)
	out := make([]model.Feedback, 0, len(list))
	for i := len(list) - 1; i >= 0; i-- {
		out = append(out, list[i])
	}
	return out
}
