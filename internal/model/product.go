package model

import (
	_ "embed"
	"strings"
)

// DefaultLowStockThreshold 低库存阈值
const DefaultLowStockThreshold = 5

// Product 商品
// OwnerKey 是归一化后的归属键，历史数据中的 artisan/seller/owner/artisanId/userId 在读取时折叠到这里
type Product struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Category    string  `json:"category,omitempty"`
	Description string  `json:"description,omitempty"`
	Price       float64 `json:"price"`
	Cost        float64 `json:"cost,omitempty"`
	Stock       int     `json:"stock"`
	Status      string  `json:"status,omitempty"`
	Approved    bool    `json:"approved"`
	OwnerKey    string  `json:"ownerKey,omitempty"`
	Sales       int     `json:"sales"`
	Image       string  `json:"image,omitempty"`
	CreatedAt   string  `json:"createdAt,omitempty"`
	UpdatedAt   string  `json:"updatedAt,omitempty"`
}

// IsLowStock 库存不高于阈值即为低库存，threshold <= 0 使用默认值
func (p *Product) IsLowStock(threshold int) bool {
	if threshold <= 0 {
		threshold = DefaultLowStockThreshold
	}
	return p.Stock <= threshold
}

// IsListed 是否在前台展示
func (p *Product) IsListed() bool {
	return p.Status != ProductHidden && p.Status != ProductDisabled
}

// IsLossMaking 售价低于成本
func (p *Product) IsLossMaking() bool {
	return p.Cost > 0 && p.Price < p.Cost
}

// CategoryOrDefault 未分类商品归入 Uncategorized
func (p *Product) CategoryOrDefault() string {
	if c := strings.TrimSpace(p.Category); c != "" {
		return c
	}
	return "Uncategorized"
}

// ProductPatch 商品部分更新，nil 字段不修改
type ProductPatch struct {
	Name        *string  `json:"name"`
	Category    *string  `json:"category"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	Cost        *float64 `json:"cost"`
	Stock       *int     `json:"stock"`
	Status      *string  `json:"status"`
	Image       *string  `json:"image"`
}

// Apply 合并补丁
func (p *Product) Apply(patch ProductPatch) {
	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.Category != nil {
		p.Category = *patch.Category
	}
	if patch.Description != nil {
		p.Description = *patch.Description
	}
	if patch.Price != nil {
		p.Price = *patch.Price
	}
	if patch.Cost != nil {
		p.Cost = *patch.Cost
	}
	if patch.Stock != nil {
		p.Stock = *patch.Stock
	}
	if patch.Status != nil {
		p.Status = *patch.Status
	}
	if patch.Image != nil {
		p.Image = *patch.Image
	}
}

// SeedProducts 内置的初始商品目录（JSON 数组）
//
//go:embed seed_products.json
var SeedProducts []byte
