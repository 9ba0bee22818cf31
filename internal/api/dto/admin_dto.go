package dto

// ==================== 用户管理 ====================

// UserListQuery 用户列表筛选
type UserListQuery struct {
	Q    string `form:"q"`
	Role string `form:"role" binding:"omitempty,oneof=buyer artisan admin marketing"`
}

// ResetPasswordRequest 管理员重置密码
type ResetPasswordRequest struct {
	Password string `json:"password" binding:"required,min=6,max=100"`
}

// ChangeRoleRequest 修改角色
type ChangeRoleRequest struct {
	Role string `json:"role" binding:"required,oneof=buyer artisan admin marketing"`
}

// BulkDeleteRequest 批量删除用户
type BulkDeleteRequest struct {
	IDs []string `json:"ids" binding:"required,min=1"`
}

// ArtisanListQuery 手艺人列表筛选
type ArtisanListQuery struct {
	Status string `form:"status" binding:"omitempty,oneof=pending active suspended rejected"`
}

// ==================== 库存 / 订单 ====================

// InventoryQuery 库存搜索
type InventoryQuery struct {
	Q        string `form:"q"`
	LowStock bool   `form:"lowStock"`
}

// OrderListQuery 订单列表筛选
type OrderListQuery struct {
	Status string `form:"status"`
}

// OrderStatusRequest 修改订单状态
type OrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// ReportQuery 报表窗口
type ReportQuery struct {
	Days int `form:"days" binding:"omitempty,min=1,max=366"`
	Top  int `form:"top" binding:"omitempty,min=1,max=100"`
}
