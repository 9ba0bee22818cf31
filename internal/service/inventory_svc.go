package service

import (
	"context"
	"strings"
	"time"

	"handloom_market/internal/api/dto"
	"handloom_market/internal/model"
)

// InventoryService 管理员库存管理
type InventoryService struct {
	repos   *Repositories
	catalog *CatalogService
	now     Clock
}

func NewInventoryService(repos *Repositories, catalog *CatalogService) *InventoryService {
	return &InventoryService{repos: repos, catalog: catalog, now: time.Now}
}

func (s *InventoryService) SetClock(now Clock) {
	s.now = now
}

// InventoryView 库存页
type InventoryView struct {
	Products  []model.Product `json:"products"`
	Total     int             `json:"total"`
	LowStock  int             `json:"lowStock"`
	Pending   int             `json:"pendingApproval"`
	Threshold int             `json:"threshold"`
}

// List 按名称或分类搜索，可只看低库存
func (s *InventoryService) List(ctx context.Context, q *dto.InventoryQuery) *InventoryView {
	all := s.repos.Products.List(ctx)
	keyword := strings.ToLower(strings.TrimSpace(q.Q))

	view := &InventoryView{Products: make([]model.Product, 0), Total: len(all), Threshold: s.catalog.Threshold()}
	for _, p := range all {
		low := p.IsLowStock(view.Threshold)
		if low {
			view.LowStock++
		}
		if !p.Approved {
			view.Pending++
		}
		if q.LowStock && !low {
			continue
		}
		if keyword != "" &&
			!strings.Contains(strings.ToLower(p.Name), keyword) &&
			!strings.Contains(strings.ToLower(p.Category), keyword) {
			continue
		}
		view.Products = append(view.Products, p)
	}
	return view
}

// Approve 审核通过
func (s *InventoryService) Approve(ctx context.Context, id string) (*model.Product, error) {
	return s.mutate(ctx, id, func(p *model.Product) {
		p.Approved = true
		if p.Status == model.ProductDisabled {
			p.Status = model.ProductActive
		}
	})
}

// Disable 下架
func (s *InventoryService) Disable(ctx context.Context, id string) (*model.Product, error) {
	return s.mutate(ctx, id, func(p *model.Product) {
		p.Status = model.ProductDisabled
	})
}

// Delete 删除
func (s *InventoryService) Delete(ctx context.Context, id string) error {
	return s.catalog.Delete(ctx, nil, id)
}

func (s *InventoryService) mutate(ctx context.Context, id string, fn func(*model.Product)) (*model.Product, error) {
	products := s.repos.Products.List(ctx)
	for i := range products {
		if products[i].ID == id {
			fn(&products[i])
			products[i].UpdatedAt = isoTime(s.now())
			s.repos.Products.Save(ctx, products)
			return &products[i], nil
		}
	}
	return nil, ErrProductNotFound
}
