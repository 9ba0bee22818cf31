package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"handloom_market/internal/analytics"
	"handloom_market/internal/model"
)

var (
	ErrOrderNotFound       = errors.New("订单不存在")
	ErrInvalidOrderStatus  = errors.New("订单状态无效")
	ErrOrderNotCancellable = errors.New("订单当前状态不可取消")
	ErrTransactionNotFound = errors.New("支付流水不存在")
)

// ==================== OrderService ====================

// OrderService 管理员订单管理
type OrderService struct {
	repos *Repositories
}

func NewOrderService(repos *Repositories) *OrderService {
	return &OrderService{repos: repos}
}

// OrderListView 订单页
type OrderListView struct {
	Orders []model.Order         `json:"orders"`
	Totals analytics.OrderTotals `json:"totals"`
}

// List 按状态过滤，汇总始终基于全部订单
func (s *OrderService) List(ctx context.Context, status string) (*OrderListView, error) {
	all := s.repos.Orders.List(ctx)
	view := &OrderListView{Orders: make([]model.Order, 0), Totals: analytics.SummarizeOrders(all)}

	if status == "" || status == "all" {
		view.Orders = append(view.Orders, all...)
		return view, nil
	}
	want, ok := model.LookupOrderStatus(status)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrInvalidOrderStatus, status)
	}
	for _, o := range all {
		if o.Status == want {
			view.Orders = append(view.Orders, o)
		}
	}
	return view, nil
}

// ChangeStatus 修改状态，别名按白名单归一到枚举值
func (s *OrderService) ChangeStatus(ctx context.Context, id, status string) (*model.Order, error) {
	want, ok := model.LookupOrderStatus(status)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrInvalidOrderStatus, status)
	}
	return s.update(ctx, id, func(o *model.Order) error {
		o.Status = want
		return nil
	})
}

// Cancel 取消订单
func (s *OrderService) Cancel(ctx context.Context, id string) (*model.Order, error) {
	return s.update(ctx, id, func(o *model.Order) error {
		if !o.Status.CanCancel() {
			return ErrOrderNotCancellable
		}
		o.Status = model.OrderStatusCancelled
		return nil
	})
}

func (s *OrderService) update(ctx context.Context, id string, fn func(*model.Order) error) (*model.Order, error) {
	orders := s.repos.Orders.List(ctx)
	for i := range orders {
		if orders[i].ID != id {
			continue
		}
		if err := fn(&orders[i]); err != nil {
			return nil, err
		}
		s.repos.Orders.Save(ctx, orders)
		return &orders[i], nil
	}
	return nil, ErrOrderNotFound
}

// ==================== PaymentService ====================

// PaymentService 支付流水管理
type PaymentService struct {
	repos *Repositories
	now   Clock
}

func NewPaymentService(repos *Repositories) *PaymentService {
	return &PaymentService{repos: repos, now: time.Now}
}

func (s *PaymentService) SetClock(now Clock) {
	s.now = now
}

// PaymentView 支付页
type PaymentView struct {
	Transactions []model.Transaction      `json:"transactions"`
	Summary      analytics.PaymentSummary `json:"summary"`
}

// List 全部流水和汇总
func (s *PaymentService) List(ctx context.Context) *PaymentView {
	txs := s.repos.Transactions.List(ctx)
	return &PaymentView{Transactions: txs, Summary: analytics.SummarizePayments(txs, s.now())}
}

// Verify 确认收款
func (s *PaymentService) Verify(ctx context.Context, id string) (*model.Transaction, error) {
	return s.update(ctx, id, func(t *model.Transaction) {
		t.Status = model.TransactionVerified
	})
}

// Refund 退款
func (s *PaymentService) Refund(ctx context.Context, id string) (*model.Transaction, error) {
	return s.update(ctx, id, func(t *model.Transaction) {
		t.Status = model.TransactionRefunded
		t.RefundStatus = string(model.TransactionRefunded)
	})
}

func (s *PaymentService) update(ctx context.Context, id string, fn func(*model.Transaction)) (*model.Transaction, error) {
	txs := s.repos.Transactions.List(ctx)
	for i := range txs {
		if txs[i].ID == id {
			fn(&txs[i])
			s.repos.Transactions.Save(ctx, txs)
			return &txs[i], nil
		}
	}
	return nil, ErrTransactionNotFound
}
