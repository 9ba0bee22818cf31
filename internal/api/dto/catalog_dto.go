package dto

// ==================== 商品 ====================

// CreateProductRequest 手艺人上架商品
type CreateProductRequest struct {
	Name        string  `json:"name" binding:"required,max=200"`
	Category    string  `json:"category" binding:"omitempty,max=100"`
	Description string  `json:"description" binding:"omitempty,max=5000"`
	Price       float64 `json:"price" binding:"required,gt=0"`
	Cost        float64 `json:"cost" binding:"omitempty,gte=0"`
	Stock       int     `json:"stock" binding:"gte=0"`
	Image       string  `json:"image" binding:"omitempty,max=1000"`
}

// ==================== 活动 ====================

// CreateCampaignRequest 新建活动
type CreateCampaignRequest struct {
	Title    string   `json:"title" binding:"required,max=200"`
	Start    string   `json:"start"`
	End      string   `json:"end"`
	Discount float64  `json:"discount" binding:"omitempty,gte=0,lte=100"`
	Coupon   string   `json:"coupon" binding:"omitempty,max=50"`
	Featured []string `json:"featured"`
}
