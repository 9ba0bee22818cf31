package dto

// ==================== 登录 ====================

// LoginRequest 登录请求，Role 为登录页选择的身份
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role" binding:"required,oneof=buyer artisan admin marketing"`
}

// LoginResponse 登录响应
type LoginResponse struct {
	Email    string `json:"email"`
	Role     string `json:"role"`
	Name     string `json:"name,omitempty"`
	Redirect string `json:"redirect"`
}

// ==================== 注册 ====================

// SignupRequest 注册请求，管理员账号不能自助注册
type SignupRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6,max=100"`
	Name     string `json:"name" binding:"required,max=100"`
	Phone    string `json:"phone" binding:"omitempty,max=20"`
	Role     string `json:"role" binding:"required,oneof=buyer artisan marketing"`
	ShopName string `json:"shopName" binding:"omitempty,max=100"`
}

// SessionResponse 当前会话
type SessionResponse struct {
	Authenticated bool   `json:"authenticated"`
	Email         string `json:"email,omitempty"`
	Role          string `json:"role,omitempty"`
	Name          string `json:"name,omitempty"`
	Home          string `json:"home"`
}
