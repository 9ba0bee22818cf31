package model

import (
	"sort"

	"github.com/shopspring/decimal"
)

// CartEntry 购物车条目，保存加入时的商品快照
type CartEntry struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Image    string  `json:"image,omitempty"`
	Category string  `json:"category,omitempty"`
	OwnerKey string  `json:"ownerKey,omitempty"`
	Qty      int     `json:"qty"`
}

// Cart 购物车，按商品 ID 索引
type Cart map[string]CartEntry

// Add 已存在则数量加一并刷新快照，否则以数量 1 加入
func (c Cart) Add(p Product) {
	qty := 1
	if existing, ok := c[p.ID]; ok {
		qty = existing.Qty + 1
	}
	c[p.ID] = CartEntry{
		ID:       p.ID,
		Name:     p.Name,
		Price:    p.Price,
		Image:    p.Image,
		Category: p.Category,
		OwnerKey: p.OwnerKey,
		Qty:      qty,
	}
}

// Remove 移除条目
func (c Cart) Remove(productID string) bool {
	if _, ok := c[productID]; !ok {
		return false
	}
	delete(c, productID)
	return true
}

// TotalItems 商品件数
func (c Cart) TotalItems() int {
	n := 0
	for _, e := range c {
		n += e.Qty
	}
	return n
}

// TotalPrice 合计金额
func (c Cart) TotalPrice() float64 {
	sum := decimal.Zero
	for _, e := range c {
		sum = sum.Add(decimal.NewFromFloat(e.Price).Mul(decimal.NewFromInt(int64(e.Qty))))
	}
	return sum.InexactFloat64()
}

// Entries 按商品 ID 排序的条目列表
func (c Cart) Entries() []CartEntry {
	list := make([]CartEntry, 0, len(c))
	for _, e := range c {
		list = append(list, e)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list
}
