package model

import "strings"

// Account 注册账号
// 密码以明文保存，与既有数据格式保持一致
type Account struct {
	ID               string  `json:"id"`
	Email            string  `json:"email"`
	Password         string  `json:"password"`
	Role             string  `json:"role"`
	Status           string  `json:"status"`
	Name             string  `json:"name,omitempty"`
	Phone            string  `json:"phone,omitempty"`
	ShopName         string  `json:"shopName,omitempty"`
	RegistrationDate string  `json:"registrationDate,omitempty"`
	LastLogin        *string `json:"lastLogin"`
	TotalProducts    int     `json:"totalProducts,omitempty"`
	TotalSales       float64 `json:"totalSales,omitempty"`
}

// SameEmail 邮箱忽略大小写和首尾空白比较
func (a *Account) SameEmail(email string) bool {
	return strings.EqualFold(strings.TrimSpace(a.Email), strings.TrimSpace(email))
}

// CanSignIn 停用和驳回的账号不可登录
func (a *Account) CanSignIn() bool {
	return a.Status != AccountSuspended && a.Status != AccountRejected
}

// DisplayName 展示名称
func (a *Account) DisplayName() string {
	if a.Name != "" {
		return a.Name
	}
	if a.ShopName != "" {
		return a.ShopName
	}
	return a.Email
}

// SessionUser 当前会话用户，保存在 user 键下
type SessionUser struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	Name  string `json:"name,omitempty"`
}
