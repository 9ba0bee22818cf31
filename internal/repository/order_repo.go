package repository

import (
	"context"

	"handloom_market/internal/model"
)

// OrderRepository 订单
type OrderRepository interface {
	List(ctx context.Context) []model.Order
	Save(ctx context.Context, orders []model.Order)
	FindByID(ctx context.Context, id string) (*model.Order, bool)
}

type orderRepo struct {
	*collection[model.Order]
}

func NewOrderRepository(records *Records) OrderRepository {
	return &orderRepo{collection: newCollection(records, KeyOrders, decodeOrder)}
}

func (r *orderRepo) List(ctx context.Context) []model.Order {
	return r.list(ctx)
}

func (r *orderRepo) Save(ctx context.Context, orders []model.Order) {
	r.save(ctx, orders)
}

func (r *orderRepo) FindByID(ctx context.Context, id string) (*model.Order, bool) {
	list := r.list(ctx)
	i := find(list, func(o *model.Order) bool { return o.ID == id })
	if i < 0 {
		return nil, false
	}
	return &list[i], true
}

// TransactionRepository 支付流水
type TransactionRepository interface {
	List(ctx context.Context) []model.Transaction
	Save(ctx context.Context, txs []model.Transaction)
}

type transactionRepo struct {
	*collection[model.Transaction]
}

func NewTransactionRepository(records *Records) TransactionRepository {
	return &transactionRepo{collection: newCollection(records, KeyTransactions, decodeTransaction)}
}

func (r *transactionRepo) List(ctx context.Context) []model.Transaction {
	return r.list(ctx)
}

func (r *transactionRepo) Save(ctx context.Context, txs []model.Transaction) {
	r.save(ctx, txs)
}
