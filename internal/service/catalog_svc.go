package service

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"handloom_market/internal/analytics"
	"handloom_market/internal/api/dto"
	"handloom_market/internal/model"
	"handloom_market/pkg/snowflake"
)

var ErrNotOwner = errors.New("无权操作他人的商品")

// CatalogService 商品目录
type CatalogService struct {
	repos     *Repositories
	threshold int
	now       Clock
}

func NewCatalogService(repos *Repositories, lowStockThreshold int) *CatalogService {
	return &CatalogService{repos: repos, threshold: lowStockThreshold, now: time.Now}
}

func (s *CatalogService) SetClock(now Clock) {
	s.now = now
}

// Threshold 低库存阈值
func (s *CatalogService) Threshold() int {
	if s.threshold <= 0 {
		return model.DefaultLowStockThreshold
	}
	return s.threshold
}

// ==================== 前台 ====================

// Get 按 ID 查询
func (s *CatalogService) Get(ctx context.Context, id string) (*model.Product, error) {
	p, ok := s.repos.Products.FindByID(ctx, id)
	if !ok {
		return nil, ErrProductNotFound
	}
	return p, nil
}

// Search 前台可见商品按关键字、分类、价格上限过滤
func (s *CatalogService) Search(ctx context.Context, q *dto.ProductQuery) []model.Product {
	keyword := strings.ToLower(strings.TrimSpace(q.Q))
	out := make([]model.Product, 0)
	for _, p := range s.repos.Products.List(ctx) {
		if !p.IsListed() {
			continue
		}
		if keyword != "" && !matchesKeyword(&p, keyword) {
			continue
		}
		if q.Category != "" && !strings.EqualFold(p.CategoryOrDefault(), q.Category) {
			continue
		}
		if q.MaxPrice > 0 && p.Price > q.MaxPrice {
			continue
		}
		out = append(out, p)
	}
	return out
}

// matchesKeyword 关键字可命中商品名、描述及工坊名
func matchesKeyword(p *model.Product, keyword string) bool {
	for _, field := range []string{p.Name, p.Description, p.OwnerKey} {
		if strings.Contains(strings.ToLower(field), keyword) {
			return true
		}
	}
	return false
}

// Categories 前台可见商品的分类，按字母排序
func (s *CatalogService) Categories(ctx context.Context) []string {
	seen := make(map[string]bool)
	out := make([]string, 0)
	for _, p := range s.repos.Products.List(ctx) {
		if !p.IsListed() {
			continue
		}
		c := p.CategoryOrDefault()
		if !seen[c] {
			seen[c] = true
			out = append(out, c)
		}
	}
	sort.Strings(out)
	return out
}

// ==================== 手艺人 ====================

// Owned 主体名下的商品
func (s *CatalogService) Owned(ctx context.Context, actor analytics.Actor) []model.Product {
	out := make([]model.Product, 0)
	for _, p := range s.repos.Products.List(ctx) {
		if actor.Owns(p.OwnerKey) {
			out = append(out, p)
		}
	}
	return out
}

// Create 上架新商品，待管理员审核
func (s *CatalogService) Create(ctx context.Context, ownerKey string, req *dto.CreateProductRequest) *model.Product {
	p := model.Product{
		ID:          snowflake.GenStringID(),
		Name:        strings.TrimSpace(req.Name),
		Category:    strings.TrimSpace(req.Category),
		Description: req.Description,
		Price:       req.Price,
		Cost:        req.Cost,
		Stock:       req.Stock,
		Status:      model.ProductActive,
		Approved:    false,
		OwnerKey:    ownerKey,
		Image:       req.Image,
		CreatedAt:   isoTime(s.now()),
	}
	if p.Stock <= 0 {
		p.Status = model.ProductOutOfStock
	}
	s.repos.Products.Save(ctx, append(s.repos.Products.List(ctx), p))
	return &p
}

// Update 部分更新，actor 为 nil 表示管理员
func (s *CatalogService) Update(ctx context.Context, actor *analytics.Actor, id string, patch model.ProductPatch) (*model.Product, error) {
	products := s.repos.Products.List(ctx)
	i, err := s.locate(products, actor, id)
	if err != nil {
		return nil, err
	}
	products[i].Apply(patch)
	if patch.Stock != nil && patch.Status == nil {
		switch {
		case products[i].Stock <= 0 && products[i].Status == model.ProductActive:
			products[i].Status = model.ProductOutOfStock
		case products[i].Stock > 0 && products[i].Status == model.ProductOutOfStock:
			products[i].Status = model.ProductActive
		}
	}
	products[i].UpdatedAt = isoTime(s.now())
	s.repos.Products.Save(ctx, products)
	return &products[i], nil
}

// Delete 删除商品，actor 为 nil 表示管理员
func (s *CatalogService) Delete(ctx context.Context, actor *analytics.Actor, id string) error {
	products := s.repos.Products.List(ctx)
	i, err := s.locate(products, actor, id)
	if err != nil {
		return err
	}
	s.repos.Products.Save(ctx, append(products[:i], products[i+1:]...))
	return nil
}

// LowStock 库存不高于阈值的商品
func (s *CatalogService) LowStock(products []model.Product) []model.Product {
	out := make([]model.Product, 0)
	for _, p := range products {
		if p.IsLowStock(s.Threshold()) {
			out = append(out, p)
		}
	}
	return out
}

func (s *CatalogService) locate(products []model.Product, actor *analytics.Actor, id string) (int, error) {
	for i := range products {
		if products[i].ID != id {
			continue
		}
		if actor != nil && !actor.Owns(products[i].OwnerKey) {
			return -1, ErrNotOwner
		}
		return i, nil
	}
	return -1, ErrProductNotFound
}
