package service

import (
	"time"

	"handloom_market/internal/repository"
)

// Clock 当前时间来源，测试时替换
type Clock func() time.Time

// Repositories 服务层依赖的全部集合
type Repositories struct {
	Accounts      repository.AccountRepository
	Session       repository.SessionRepository
	Cart          repository.CartRepository
	Products      repository.ProductRepository
	Orders        repository.OrderRepository
	Transactions  repository.TransactionRepository
	Campaigns     repository.CampaignRepository
	Tickets       repository.TicketRepository
	Notifications repository.NotificationRepository
	Feedback      repository.FeedbackRepository
}

// NewRepositories 基于同一个记录存储构建所有集合
func NewRepositories(records *repository.Records) *Repositories {
	return &Repositories{
		Accounts:      repository.NewAccountRepository(records),
		Session:       repository.NewSessionRepository(records),
		Cart:          repository.NewCartRepository(records),
		Products:      repository.NewProductRepository(records),
		Orders:        repository.NewOrderRepository(records),
		Transactions:  repository.NewTransactionRepository(records),
		Campaigns:     repository.NewCampaignRepository(records),
		Tickets:       repository.NewTicketRepository(records),
		Notifications: repository.NewNotificationRepository(records),
		Feedback:      repository.NewFeedbackRepository(records),
	}
}

func isoTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
