package repository

import (
	"context"

	"handloom_market/internal/model"
)

// TicketRepository 客服工单
type TicketRepository interface {
	List(ctx context.Context) []model.SupportTicket
	Save(ctx context.Context, tickets []model.SupportTicket)
}

type ticketRepo struct {
	*collection[model.SupportTicket]
}

func NewTicketRepository(records *Records) TicketRepository {
	return &ticketRepo{collection: newCollection(records, KeySupportTickets, decodeTicket)}
}

func (r *ticketRepo) List(ctx context.Context) []model.SupportTicket {
	return r.list(ctx)
}

func (r *ticketRepo) Save(ctx context.Context, tickets []model.SupportTicket) {
	r.save(ctx, tickets)
}

// NotificationRepository 站内通知
type NotificationRepository interface {
	List(ctx context.Context) []model.Notification
	Save(ctx context.Context, list []model.Notification)
}

type notificationRepo struct {
	*collection[model.Notification]
}

func NewNotificationRepository(records *Records) NotificationRepository {
	return &notificationRepo{collection: newCollection(records, KeyNotifications, decodeNotification)}
}

func (r *notificationRepo) List(ctx context.Context) []model.Notification {
	return r.list(ctx)
}

func (r *notificationRepo) Save(ctx context.Context, list []model.Notification) {
	r.save(ctx, list)
}

// FeedbackRepository 访客反馈
type FeedbackRepository interface {
	List(ctx context.Context) []model.Feedback
	Save(ctx context.Context, list []model.Feedback)
}

type feedbackRepo struct {
	*collection[model.Feedback]
}

func NewFeedbackRepository(records *Records) FeedbackRepository {
	return &feedbackRepo{collection: newCollection(records, KeyFeedback, decodeFeedback)}
}

func (r *feedbackRepo) List(ctx context.Context) []model.Feedback {
	return r.list(ctx)
}

func (r *feedbackRepo) Save(ctx context.Context, list []model.Feedback) {
	r.save(ctx, list)
}
