package model

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ==================== Order 订单 ====================

// Order 订单
type Order struct {
	ID         string      `json:"id"`
	Items      []OrderItem `json:"items,omitempty"`
	Status     OrderStatus `json:"status"`
	Total      float64     `json:"total"`
	BuyerName  string      `json:"buyerName,omitempty"`
	Email      string      `json:"email,omitempty"`
	Date       string      `json:"date,omitempty"`
	Address    string      `json:"address,omitempty"`
	CampaignID string      `json:"campaignId,omitempty"`
	Coupon     string      `json:"coupon,omitempty"`
}

// OrderItem 订单明细
// OwnerKey 为空时由商品目录按 ProductID 补全归属
type OrderItem struct {
	ProductID  string  `json:"productId,omitempty"`
	Name       string  `json:"name,omitempty"`
	Qty        int     `json:"qty"`
	Price      float64 `json:"price"`
	OwnerKey   string  `json:"ownerKey,omitempty"`
	CampaignID string  `json:"campaignId,omitempty"`
	Review     *Review `json:"review,omitempty"`
}

// Review 买家评价
type Review struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment,omitempty"`
	Date    string `json:"date,omitempty"`
}

// LineTotal 明细金额
func (i *OrderItem) LineTotal() decimal.Decimal {
	return decimal.NewFromFloat(i.Price).Mul(decimal.NewFromInt(int64(i.Qty)))
}

// ItemsTotal 明细合计
func (o *Order) ItemsTotal() float64 {
	sum := decimal.Zero
	for i := range o.Items {
		sum = sum.Add(o.Items[i].LineTotal())
	}
	return sum.InexactFloat64()
}

// DatePrefix 日期的前 n 个字符，用于按日/月分组
func (o *Order) DatePrefix(n int) string {
	return prefix(o.Date, n)
}

// MatchesCoupon 券码忽略大小写匹配
func (o *Order) MatchesCoupon(code string) bool {
	return code != "" && o.Coupon != "" && strings.EqualFold(strings.TrimSpace(o.Coupon), strings.TrimSpace(code))
}

func prefix(s string, n int) string {
	if len(s) < n {
		return s
	}
	return s[:n]
}
