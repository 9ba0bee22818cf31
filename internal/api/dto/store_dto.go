package dto

// ==================== 前台 ====================

// ProductQuery 商品搜索条件
type ProductQuery struct {
	Q        string  `form:"q"`
	Category string  `form:"category"`
	MaxPrice float64 `form:"maxPrice" binding:"omitempty,gte=0"`
}

// AddCartItemRequest 加入购物车
type AddCartItemRequest struct {
	ProductID string `json:"productId" binding:"required"`
}

// CheckoutRequest 下单信息，全部可选
type CheckoutRequest struct {
	BuyerName string `json:"buyerName" binding:"omitempty,max=100"`
	Email     string `json:"email" binding:"omitempty,email"`
	Address   string `json:"address" binding:"omitempty,max=500"`
	Mode      string `json:"mode" binding:"omitempty,max=30"`
	Coupon    string `json:"coupon" binding:"omitempty,max=50"`
}

// FeedbackRequest 访客反馈
type FeedbackRequest struct {
	Name    string `json:"name" binding:"omitempty,max=100"`
	Message string `json:"message" binding:"required,max=2000"`
}

// TicketRequest 提交工单
type TicketRequest struct {
	Subject string `json:"subject" binding:"required,max=200"`
	Message string `json:"message" binding:"required,max=5000"`
	Email   string `json:"email" binding:"omitempty,email"`
}
