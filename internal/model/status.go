package model

import "strings"

// ==================== 订单状态 ====================

// OrderStatus 订单状态
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"    // 新订单
	OrderStatusProcessing OrderStatus = "processing" // 处理中（含已确认）
	OrderStatusShipped    OrderStatus = "shipped"    // 已发货
	OrderStatusDelivered  OrderStatus = "delivered"  // 已签收
	OrderStatusCancelled  OrderStatus = "cancelled"  // 已取消
	OrderStatusReturned   OrderStatus = "returned"   // 已退货
)

// ParseOrderStatus 把历史数据中的自由文本状态映射为枚举
// 空值和 pending/new 为新订单，无法识别的非空值按处理中统计
func ParseOrderStatus(raw string) OrderStatus {
	s := strings.ToLower(strings.TrimSpace(raw))
	switch {
	case s == "":
		return OrderStatusPending
	case strings.Contains(s, "cancel"):
		return OrderStatusCancelled
	case strings.Contains(s, "return"), strings.Contains(s, "refund"):
		return OrderStatusReturned
	case strings.Contains(s, "deliver"), strings.Contains(s, "complete"):
		return OrderStatusDelivered
	case strings.Contains(s, "ship"), strings.Contains(s, "transit"):
		return OrderStatusShipped
	case strings.Contains(s, "pending"), s == "new", s == "placed":
		return OrderStatusPending
	default:
		return OrderStatusProcessing
	}
}

// orderStatusInputs 管理端可提交的状态写法
var orderStatusInputs = map[string]bool{
	"pending":    true,
	"new":        true,
	"processing": true,
	"confirmed":  true,
	"shipped":    true,
	"delivered":  true,
	"completed":  true,
	"cancelled":  true,
	"canceled":   true,
	"returned":   true,
}

// LookupOrderStatus 解析管理端提交的状态，大小写不敏感，只接受白名单内的写法
func LookupOrderStatus(raw string) (OrderStatus, bool) {
	s := strings.ToLower(strings.TrimSpace(raw))
	if !orderStatusInputs[s] {
		return "", false
	}
	return ParseOrderStatus(s), true
}

// CanCancel 是否可取消
func (s OrderStatus) CanCancel() bool {
	return s == OrderStatusPending || s == OrderStatusProcessing
}

// ==================== 交易状态 ====================

// TransactionStatus 交易状态
type TransactionStatus string

const (
	TransactionPending  TransactionStatus = "pending"
	TransactionVerified TransactionStatus = "verified"
	TransactionRefunded TransactionStatus = "refunded"
)

// ParseTransactionStatus 历史交易状态映射
func ParseTransactionStatus(raw string) TransactionStatus {
	s := strings.ToLower(strings.TrimSpace(raw))
	switch {
	case strings.Contains(s, "refund"):
		return TransactionRefunded
	case strings.Contains(s, "verif"), strings.Contains(s, "complete"),
		strings.Contains(s, "paid"), strings.Contains(s, "success"):
		return TransactionVerified
	default:
		return TransactionPending
	}
}

// ==================== 账号 ====================

// 角色
const (
	RoleBuyer     = "buyer"
	RoleArtisan   = "artisan"
	RoleAdmin     = "admin"
	RoleMarketing = "marketing"
)

// 账号状态
const (
	AccountPending   = "pending"
	AccountActive    = "active"
	AccountSuspended = "suspended"
	AccountRejected  = "rejected"
)

// ValidRole 是否为已知角色
func ValidRole(role string) bool {
	switch role {
	case RoleBuyer, RoleArtisan, RoleAdmin, RoleMarketing:
		return true
	}
	return false
}

// ==================== 商品状态 ====================

const (
	ProductActive     = "active"
	ProductOutOfStock = "out_of_stock"
	ProductHidden     = "hidden"
	ProductDisabled   = "disabled"
)
