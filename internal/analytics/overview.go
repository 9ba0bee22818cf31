package analytics

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"handloom_market/internal/model"
)

// DefaultRecentLimit 最近列表默认条数
const DefaultRecentLimit = 5

// Overview 管理后台首页
type Overview struct {
	TotalUsers       int             `json:"totalUsers"`
	TotalArtisans    int             `json:"totalArtisans"`
	TotalProducts    int             `json:"totalProducts"`
	TotalOrders      int             `json:"totalOrders"`
	TodaySales       float64         `json:"todaySales"`
	PendingApprovals int             `json:"pendingApprovals"`
	OpenTickets      int             `json:"openTickets"`
	RecentUsers      []model.Account `json:"recentUsers"`
	RecentOrders     []model.Order   `json:"recentOrders"`
}

// OverviewInput 首页所需集合
type OverviewInput struct {
	Accounts []model.Account
	Products []model.Product
	Orders   []model.Order
	Tickets  []model.SupportTicket
}

// BuildOverview 聚合首页数据
func BuildOverview(in OverviewInput, now time.Time, recent int) Overview {
	if recent <= 0 {
		recent = DefaultRecentLimit
	}
	ov := Overview{
		TotalUsers:    len(in.Accounts),
		TotalProducts: len(in.Products),
		TotalOrders:   len(in.Orders),
		TodaySales:    TodaySales(in.Orders, now),
		RecentUsers:   RecentAccounts(in.Accounts, recent),
		RecentOrders:  RecentOrders(in.Orders, recent),
	}
	for i := range in.Accounts {
		if in.Accounts[i].Role != model.RoleArtisan {
			continue
		}
		ov.TotalArtisans++
		if in.Accounts[i].Status == model.AccountPending {
			ov.PendingApprovals++
		}
	}
	for i := range in.Tickets {
		if in.Tickets[i].Status != model.TicketResolved {
			ov.OpenTickets++
		}
	}
	return ov
}

// TodaySales 订单日期前缀等于今天（UTC ISO 日期）的金额合计
func TodaySales(orders []model.Order, now time.Time) float64 {
	today := now.UTC().Format("2006-01-02")
	sum := decimal.Zero
	for i := range orders {
		if orders[i].DatePrefix(10) == today {
			sum = sum.Add(decimal.NewFromFloat(orders[i].Total))
		}
	}
	return sum.InexactFloat64()
}

// RecentAccounts 按注册时间倒序取前 n
func RecentAccounts(accounts []model.Account, n int) []model.Account {
	return recent(accounts, n, func(a *model.Account) string { return a.RegistrationDate })
}

// RecentOrders 按下单时间倒序取前 n
func RecentOrders(orders []model.Order, n int) []model.Order {
	return recent(orders, n, func(o *model.Order) string { return o.Date })
}

// recent 有时间的记录按时间倒序在前，无时间的记录按插入顺序倒序在后
func recent[T any](items []T, n int, key func(*T) string) []T {
	var dated, undated []T
	for i := len(items) - 1; i >= 0; i-- {
		if key(&items[i]) != "" {
			dated = append(dated, items[i])
		} else {
			undated = append(undated, items[i])
		}
	}
	sort.SliceStable(dated, func(i, j int) bool { return key(&dated[i]) > key(&dated[j]) })

	out := make([]T, 0, len(items))
	out = append(out, dated...)
	out = append(out, undated...)
	if len(out) > n {
		out = out[:n]
	}
	return out
}

// ==================== 订单与支付汇总 ====================

// OrderTotals 订单管理页汇总
type OrderTotals struct {
	Count    int            `json:"count"`
	Revenue  float64        `json:"revenue"`
	ByStatus StatusCounters `json:"byStatus"`
}

// SummarizeOrders 已取消和已退货订单不计收入
func SummarizeOrders(orders []model.Order) OrderTotals {
	sum := decimal.Zero
	for i := range orders {
		switch orders[i].Status {
		case model.OrderStatusCancelled, model.OrderStatusReturned:
			continue
		}
		sum = sum.Add(decimal.NewFromFloat(orders[i].Total))
	}
	return OrderTotals{
		Count:    len(orders),
		Revenue:  sum.InexactFloat64(),
		ByStatus: CountStatuses(orders),
	}
}

// PaymentSummary 支付管理页汇总
type PaymentSummary struct {
	TotalRevenue   float64 `json:"totalRevenue"`
	MonthlyRevenue float64 `json:"monthlyRevenue"`
	PendingCount   int     `json:"pendingCount"`
	RefundedAmount float64 `json:"refundedAmount"`
}

// SummarizePayments 收入按毛额统计，退款单独累计
func SummarizePayments(txs []model.Transaction, now time.Time) PaymentSummary {
	month := now.UTC().Format("2006-01")
	total, monthly, refunded := decimal.Zero, decimal.Zero, decimal.Zero
	var s PaymentSummary
	for i := range txs {
		amount := decimal.NewFromFloat(txs[i].Amount)
		total = total.Add(amount)
		if txs[i].DatePrefix(7) == month {
			monthly = monthly.Add(amount)
		}
		if txs[i].Status == model.TransactionPending {
			s.PendingCount++
		}
		if txs[i].Refunded() {
			refunded = refunded.Add(amount)
		}
	}
	s.TotalRevenue = total.InexactFloat64()
	s.MonthlyRevenue = monthly.InexactFloat64()
	s.RefundedAmount = refunded.InexactFloat64()
	return s
}
