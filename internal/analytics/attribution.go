// Package analytics 派生数据计算：归属、看板聚合、活动指标、报表
// 全部为纯函数，输入集合快照，输出聚合结果
package analytics

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"handloom_market/internal/model"
)

// ==================== 归属主体 ====================

// Actor 手艺人的归属键集合（邮箱、账号 ID、名称）
type Actor struct {
	Keys []string
}

// NewActor 忽略空键
func NewActor(keys ...string) Actor {
	a := Actor{}
	for _, k := range keys {
		if k = strings.TrimSpace(k); k != "" {
			a.Keys = append(a.Keys, k)
		}
	}
	return a
}

// Owns 归属键是否属于该主体，空键不属于任何人
func (a Actor) Owns(ownerKey string) bool {
	if ownerKey == "" {
		return false
	}
	for _, k := range a.Keys {
		if strings.EqualFold(k, ownerKey) {
			return true
		}
	}
	return false
}

// ==================== Attributor ====================

// Attributor 明细归属解析
// 明细自带归属键优先，否则按 productId 关联商品目录
type Attributor struct {
	catalog map[string]string
}

func NewAttributor(products []model.Product) *Attributor {
	catalog := make(map[string]string, len(products))
	for i := range products {
		catalog[products[i].ID] = products[i].OwnerKey
	}
	return &Attributor{catalog: catalog}
}

// OwnerOf 明细的唯一归属键，无法归属返回空
func (a *Attributor) OwnerOf(item *model.OrderItem) string {
	if item.OwnerKey != "" {
		return item.OwnerKey
	}
	if item.ProductID != "" {
		return a.catalog[item.ProductID]
	}
	return ""
}

// Belongs 明细是否属于主体
func (a *Attributor) Belongs(item *model.OrderItem, actor Actor) bool {
	return actor.Owns(a.OwnerOf(item))
}

// ItemsFor 订单中属于主体的明细
func (a *Attributor) ItemsFor(order *model.Order, actor Actor) []model.OrderItem {
	var out []model.OrderItem
	for i := range order.Items {
		if a.Belongs(&order.Items[i], actor) {
			out = append(out, order.Items[i])
		}
	}
	return out
}

// OrdersFor 与主体相关的订单，明细只保留属于主体的部分
func (a *Attributor) OrdersFor(orders []model.Order, actor Actor) []model.Order {
	var out []model.Order
	for i := range orders {
		items := a.ItemsFor(&orders[i], actor)
		if len(items) == 0 {
			continue
		}
		o := orders[i]
		o.Items = items
		out = append(out, o)
	}
	return out
}

// ==================== 收入 ====================

// Earnings 主体所有订单中属于它的明细金额合计
func (a *Attributor) Earnings(orders []model.Order, actor Actor) float64 {
	return a.earnings(orders, actor, func(*model.Order) bool { return true })
}

// MonthlyEarnings 与 now 同年同月的订单收入
func (a *Attributor) MonthlyEarnings(orders []model.Order, actor Actor, now time.Time) float64 {
	month := now.UTC().Format("2006-01")
	return a.earnings(orders, actor, func(o *model.Order) bool {
		return o.DatePrefix(7) == month
	})
}

func (a *Attributor) earnings(orders []model.Order, actor Actor, keep func(*model.Order) bool) float64 {
	sum := decimal.Zero
	for i := range orders {
		if !keep(&orders[i]) {
			continue
		}
		for j := range orders[i].Items {
			item := &orders[i].Items[j]
			if a.Belongs(item, actor) {
				sum = sum.Add(item.LineTotal())
			}
		}
	}
	return sum.InexactFloat64()
}

// EarningsByOwner 每个归属键的收入，无法归属的明细计入空键
func (a *Attributor) EarningsByOwner(orders []model.Order) map[string]float64 {
	sums := make(map[string]decimal.Decimal)
	for i := range orders {
		for j := range orders[i].Items {
			item := &orders[i].Items[j]
			owner := a.OwnerOf(item)
			sums[owner] = sums[owner].Add(item.LineTotal())
		}
	}
	out := make(map[string]float64, len(sums))
	for k, v := range sums {
		out[k] = v.InexactFloat64()
	}
	return out
}

// PendingPayouts 主体名下待结算的流水金额
func PendingPayouts(txs []model.Transaction, actor Actor) float64 {
	sum := decimal.Zero
	for i := range txs {
		if actor.Owns(txs[i].OwnerKey) && txs[i].AwaitingPayout() {
			sum = sum.Add(decimal.NewFromFloat(txs[i].Amount))
		}
	}
	return sum.InexactFloat64()
}

// ==================== 状态计数 ====================

// StatusCounters 看板上的订单状态计数
type StatusCounters struct {
	New        int `json:"new"`
	Processing int `json:"processing"`
	Shipped    int `json:"shipped"`
	Delivered  int `json:"delivered"`
	Cancelled  int `json:"cancelled"`
	Returned   int `json:"returned"`
}

// Total 计数合计
func (c StatusCounters) Total() int {
	return c.New + c.Processing + c.Shipped + c.Delivered + c.Cancelled + c.Returned
}

// CountStatuses 每个订单恰好落入一个桶
func CountStatuses(orders []model.Order) StatusCounters {
	var c StatusCounters
	for i := range orders {
		switch orders[i].Status {
		case model.OrderStatusPending:
			c.New++
		case model.OrderStatusShipped:
			c.Shipped++
		case model.OrderStatusDelivered:
			c.Delivered++
		case model.OrderStatusCancelled:
			c.Cancelled++
		case model.OrderStatusReturned:
			c.Returned++
		default:
			c.Processing++
		}
	}
	return c
}

// ==================== 评价 ====================

// ReviewEntry 手艺人收到的评价
type ReviewEntry struct {
	OrderID     string `json:"orderId"`
	ProductID   string `json:"productId"`
	ProductName string `json:"productName"`
	BuyerName   string `json:"buyerName,omitempty"`
	Rating      int    `json:"rating"`
	Comment     string `json:"comment,omitempty"`
	Date        string `json:"date,omitempty"`
}

// Reviews 属于主体的明细上的评价
func (a *Attributor) Reviews(orders []model.Order, actor Actor) []ReviewEntry {
	var out []ReviewEntry
	for i := range orders {
		o := &orders[i]
		for j := range o.Items {
			item := &o.Items[j]
			if item.Review == nil || !a.Belongs(item, actor) {
				continue
			}
			date := item.Review.Date
			if date == "" {
				date = o.Date
			}
			out = append(out, ReviewEntry{
				OrderID:     o.ID,
				ProductID:   item.ProductID,
				ProductName: item.Name,
				BuyerName:   o.BuyerName,
				Rating:      item.Review.Rating,
				Comment:     item.Review.Comment,
				Date:        date,
			})
		}
	}
	return out
}

// AverageRating 平均评分，无评价返回 0
func AverageRating(reviews []ReviewEntry) float64 {
	if len(reviews) == 0 {
		return 0
	}
	sum := 0
	for _, r := range reviews {
		sum += r.Rating
	}
	return decimal.NewFromInt(int64(sum)).
		Div(decimal.NewFromInt(int64(len(reviews)))).
		Round(2).InexactFloat64()
}
