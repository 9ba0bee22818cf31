package repository

import (
	"context"

	"handloom_market/internal/model"
)

// ProductRepository 商品目录
type ProductRepository interface {
	List(ctx context.Context) []model.Product
	Save(ctx context.Context, products []model.Product)
	FindByID(ctx context.Context, id string) (*model.Product, bool)
}

type productRepo struct {
	*collection[model.Product]
}

// NewProductRepository 未写入过 products 时回退到内置目录
func NewProductRepository(records *Records) ProductRepository {
	c := newCollection(records, KeyProducts, decodeProduct)
	c.fallback = SeedCatalog
	return &productRepo{collection: c}
}

func (r *productRepo) List(ctx context.Context) []model.Product {
	return r.list(ctx)
}

func (r *productRepo) Save(ctx context.Context, products []model.Product) {
	r.save(ctx, products)
}

func (r *productRepo) FindByID(ctx context.Context, id string) (*model.Product, bool) {
	list := r.list(ctx)
	i := find(list, func(p *model.Product) bool { return p.ID == id })
	if i < 0 {
		return nil, false
	}
	return &list[i], true
}

// SeedCatalog 解码内置目录
func SeedCatalog() []model.Product {
	elems, _ := parseArray(model.SeedProducts)
	out := make([]model.Product, 0, len(elems))
	for _, e := range elems {
		out = append(out, decodeProduct(e))
	}
	return out
}
