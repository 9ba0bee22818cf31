package model

// ==================== 工单 ====================

const (
	TicketOpen     = "open"
	TicketResolved = "resolved"
)

// SupportTicket 客服工单
type SupportTicket struct {
	ID        string `json:"id"`
	Subject   string `json:"subject"`
	Message   string `json:"message,omitempty"`
	Email     string `json:"email,omitempty"`
	Status    string `json:"status"`
	CreatedAt string `json:"createdAt,omitempty"`
}

// ==================== 通知 ====================

const (
	NotificationLowStock        = "low_stock"
	NotificationCampaignExpired = "campaign_expired"
)

// Notification 站内通知，Audience 为角色名或归属键
type Notification struct {
	ID        string `json:"id"`
	Kind      string `json:"kind"`
	Message   string `json:"message"`
	Audience  string `json:"audience"`
	RefID     string `json:"refId,omitempty"`
	Read      bool   `json:"read"`
	CreatedAt string `json:"createdAt,omitempty"`
}

// ==================== 反馈 ====================

// Feedback 访客反馈
type Feedback struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Message   string `json:"message"`
	CreatedAt string `json:"createdAt,omitempty"`
}
