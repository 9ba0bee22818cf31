package analytics

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"handloom_market/internal/model"
)

// DefaultReportDays 日报默认窗口
const DefaultReportDays = 14

// DefaultTopN 排行榜默认条数
const DefaultTopN = 10

// ==================== 日收入 ====================

// DailyBucket 单日收入
type DailyBucket struct {
	Date    string  `json:"date"`
	Revenue float64 `json:"revenue"`
	Orders  int     `json:"orders"`
}

// DailyRevenue 以 now 所在日（UTC）为最后一天的 days 个连续日桶，日期升序
// 窗口外的订单不计入
func DailyRevenue(orders []model.Order, now time.Time, days int) []DailyBucket {
	if days <= 0 {
		days = DefaultReportDays
	}
	today := now.UTC()
	index := make(map[string]int, days)
	sums := make([]decimal.Decimal, days)
	buckets := make([]DailyBucket, days)
	for i := 0; i < days; i++ {
		date := today.AddDate(0, 0, i-days+1).Format("2006-01-02")
		buckets[i].Date = date
		index[date] = i
	}

	for i := range orders {
		pos, ok := index[orders[i].DatePrefix(10)]
		if !ok {
			continue
		}
		sums[pos] = sums[pos].Add(decimal.NewFromFloat(orders[i].Total))
		buckets[pos].Orders++
	}
	for i := range buckets {
		buckets[i].Revenue = sums[i].InexactFloat64()
	}
	return buckets
}

// ==================== 分类分布 ====================

// CategoryShare 分类销量
type CategoryShare struct {
	Category string `json:"category"`
	Sales    int    `json:"sales"`
}

// CategoryDistribution 按分类汇总销量，降序，同销量保持首次出现顺序
func CategoryDistribution(products []model.Product) []CategoryShare {
	var out []CategoryShare
	pos := make(map[string]int)
	for i := range products {
		cat := products[i].CategoryOrDefault()
		idx, ok := pos[cat]
		if !ok {
			idx = len(out)
			pos[cat] = idx
			out = append(out, CategoryShare{Category: cat})
		}
		out[idx].Sales += products[i].Sales
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Sales > out[j].Sales })
	return out
}

// ==================== 排行 ====================

// ProductRank 商品销量排行项
type ProductRank struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	OwnerKey string  `json:"ownerKey,omitempty"`
	Sales    int     `json:"sales"`
	Revenue  float64 `json:"revenue"`
}

// TopProducts 按销量稳定降序取前 n
func TopProducts(products []model.Product, n int) []ProductRank {
	if n <= 0 {
		n = DefaultTopN
	}
	ranked := make([]ProductRank, 0, len(products))
	for i := range products {
		p := &products[i]
		ranked = append(ranked, ProductRank{
			ID:       p.ID,
			Name:     p.Name,
			OwnerKey: p.OwnerKey,
			Sales:    p.Sales,
			Revenue:  decimal.NewFromFloat(p.Price).Mul(decimal.NewFromInt(int64(p.Sales))).InexactFloat64(),
		})
	}
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].Sales > ranked[j].Sales })
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

// ArtisanRank 手艺人销量排行项
type ArtisanRank struct {
	OwnerKey string `json:"ownerKey"`
	Products int    `json:"products"`
	Sales    int    `json:"sales"`
}

// TopArtisans 按归属键汇总商品销量，稳定降序取前 n
func TopArtisans(products []model.Product, n int) []ArtisanRank {
	if n <= 0 {
		n = DefaultTopN
	}
	var out []ArtisanRank
	pos := make(map[string]int)
	for i := range products {
		key := products[i].OwnerKey
		if key == "" {
			key = "unknown"
		}
		idx, ok := pos[key]
		if !ok {
			idx = len(out)
			pos[key] = idx
			out = append(out, ArtisanRank{OwnerKey: key})
		}
		out[idx].Products++
		out[idx].Sales += products[i].Sales
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Sales > out[j].Sales })
	if len(out) > n {
		out = out[:n]
	}
	return out
}

// ==================== 用户增长 ====================

// GrowthPoint 单日注册数
type GrowthPoint struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// UserGrowth 按注册日期（前 10 位）计数，日期升序；无注册日期的账号不计入
func UserGrowth(accounts []model.Account) []GrowthPoint {
	counts := make(map[string]int)
	for i := range accounts {
		d := accounts[i].RegistrationDate
		if len(d) > 10 {
			d = d[:10]
		}
		if d == "" {
			continue
		}
		counts[d]++
	}
	out := make([]GrowthPoint, 0, len(counts))
	for d, c := range counts {
		out = append(out, GrowthPoint{Date: d, Count: c})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}

// ==================== 洞察 ====================

// Insights 报表页的结论性指标
type Insights struct {
	TopCategory         string  `json:"topCategory"`
	PeakDay             string  `json:"peakDay"`
	PeakRevenue         float64 `json:"peakRevenue"`
	LossMakingProducts  int     `json:"lossMakingProducts"`
	WindowRevenue       float64 `json:"windowRevenue"`
	AverageDailyRevenue float64 `json:"averageDailyRevenue"`
}

// BuildInsights 从日报和分类分布中提取结论
// 峰值日取收入最高的最早一天，无收入时为空
func BuildInsights(daily []DailyBucket, categories []CategoryShare, products []model.Product) Insights {
	var in Insights
	if len(categories) > 0 {
		in.TopCategory = categories[0].Category
	}

	total := decimal.Zero
	for _, b := range daily {
		total = total.Add(decimal.NewFromFloat(b.Revenue))
		if b.Revenue > in.PeakRevenue {
			in.PeakRevenue = b.Revenue
			in.PeakDay = b.Date
		}
	}
	in.WindowRevenue = total.InexactFloat64()
	if len(daily) > 0 {
		in.AverageDailyRevenue = total.Div(decimal.NewFromInt(int64(len(daily)))).Round(2).InexactFloat64()
	}

	for i := range products {
		if products[i].IsLossMaking() {
			in.LossMakingProducts++
		}
	}
	return in
}
