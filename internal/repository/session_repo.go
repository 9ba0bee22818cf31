package repository

import (
	"context"

	"handloom_market/internal/model"
)

// ==================== 会话 ====================

// SessionRepository 当前会话用户
type SessionRepository interface {
	Get(ctx context.Context) (*model.SessionUser, bool)
	Set(ctx context.Context, user model.SessionUser)
	Clear(ctx context.Context)
}

type sessionRepo struct {
	records *Records
}

func NewSessionRepository(records *Records) SessionRepository {
	return &sessionRepo{records: records}
}

func (r *sessionRepo) Get(ctx context.Context) (*model.SessionUser, bool) {
	raw, ok := r.records.ReadRaw(ctx, KeyUser)
	if !ok {
		return nil, false
	}
	return decodeSession(raw)
}

func (r *sessionRepo) Set(ctx context.Context, user model.SessionUser) {
	r.records.Write(ctx, KeyUser, user)
}

func (r *sessionRepo) Clear(ctx context.Context) {
	r.records.Remove(ctx, KeyUser)
}

// ==================== 购物车 ====================

// CartRepository 购物车
type CartRepository interface {
	Get(ctx context.Context) model.Cart
	Save(ctx context.Context, cart model.Cart)
	Clear(ctx context.Context)
}

type cartRepo struct {
	records *Records
}

func NewCartRepository(records *Records) CartRepository {
	return &cartRepo{records: records}
}

// Get 缺失或损坏时返回空购物车
func (r *cartRepo) Get(ctx context.Context) model.Cart {
	raw, ok := r.records.ReadRaw(ctx, KeyCart)
	if !ok {
		return model.Cart{}
	}
	cart, ok := decodeCart(raw)
	if !ok {
		r.records.Malformed(KeyCart, errNotObject)
		return model.Cart{}
	}
	return cart
}

func (r *cartRepo) Save(ctx context.Context, cart model.Cart) {
	if cart == nil {
		cart = model.Cart{}
	}
	r.records.Write(ctx, KeyCart, cart)
}

func (r *cartRepo) Clear(ctx context.Context) {
	r.records.Write(ctx, KeyCart, model.Cart{})
}
