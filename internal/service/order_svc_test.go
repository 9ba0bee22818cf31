package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"handloom_market/internal/model"
)

func seedOrders(t *testing.T, repos *Repositories) {
	t.Helper()
	repos.Orders.Save(context.Background(), []model.Order{
		{ID: "o1", Status: model.OrderStatusPending, Total: 100, Date: "2024-05-01"},
		{ID: "o2", Status: model.OrderStatusShipped, Total: 200, Date: "2024-05-02"},
		{ID: "o3", Status: model.OrderStatusCancelled, Total: 400, Date: "2024-05-03"},
	})
}

func TestOrderService_List(t *testing.T) {
	ctx := context.Background()
	repos, _ := setupRepos(t)
	seedOrders(t, repos)
	svc := NewOrderService(repos)

	all, err := svc.List(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all.Orders, 3)
	assert.Equal(t, 300.0, all.Totals.Revenue)
	assert.Equal(t, 1, all.Totals.ByStatus.New)

	shipped, err := svc.List(ctx, "shipped")
	require.NoError(t, err)
	require.Len(t, shipped.Orders, 1)
	assert.Equal(t, "o2", shipped.Orders[0].ID)
	assert.Equal(t, 3, shipped.Totals.Count)

	byAlias, err := svc.List(ctx, "NEW")
	require.NoError(t, err)
	assert.Len(t, byAlias.Orders, 1)

	_, err = svc.List(ctx, "lost")
	assert.ErrorIs(t, err, ErrInvalidOrderStatus)
}

func TestOrderService_ChangeStatusAndCancel(t *testing.T) {
	ctx := context.Background()
	repos, _ := setupRepos(t)
	seedOrders(t, repos)
	svc := NewOrderService(repos)

	o, err := svc.ChangeStatus(ctx, "o1", "processing")
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusProcessing, o.Status)

	o, err = svc.ChangeStatus(ctx, "o3", "Confirmed")
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusProcessing, o.Status)
	_, err = svc.ChangeStatus(ctx, "o1", "packed")
	assert.ErrorIs(t, err, ErrInvalidOrderStatus)
	_, err = svc.ChangeStatus(ctx, "missing", "shipped")
	assert.ErrorIs(t, err, ErrOrderNotFound)

	o, err = svc.Cancel(ctx, "o1")
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusCancelled, o.Status)

	_, err = svc.Cancel(ctx, "o2")
	assert.ErrorIs(t, err, ErrOrderNotCancellable)

	stored, _ := repos.Orders.FindByID(ctx, "o1")
	assert.Equal(t, model.OrderStatusCancelled, stored.Status)
}

func TestPaymentService(t *testing.T) {
	ctx := context.Background()
	repos, _ := setupRepos(t)
	repos.Transactions.Save(ctx, []model.Transaction{
		{ID: "t1", Amount: 500, Status: model.TransactionPending, Date: "2024-05-02"},
		{ID: "t2", Amount: 300, Status: model.TransactionVerified, Date: "2024-04-02"},
	})
	svc := NewPaymentService(repos)
	svc.SetClock(fixedClock)

	view := svc.List(ctx)
	assert.Equal(t, 800.0, view.Summary.TotalRevenue)
	assert.Equal(t, 500.0, view.Summary.MonthlyRevenue)
	assert.Equal(t, 1, view.Summary.PendingCount)

	tx, err := svc.Verify(ctx, "t1")
	require.NoError(t, err)
	assert.Equal(t, model.TransactionVerified, tx.Status)

	tx, err = svc.Refund(ctx, "t2")
	require.NoError(t, err)
	assert.Equal(t, model.TransactionRefunded, tx.Status)
	assert.Equal(t, "refunded", tx.RefundStatus)

	view = svc.List(ctx)
	assert.Equal(t, 800.0, view.Summary.TotalRevenue)
	assert.Equal(t, 300.0, view.Summary.RefundedAmount)
	assert.Equal(t, 0, view.Summary.PendingCount)

	_, err = svc.Refund(ctx, "missing")
	assert.ErrorIs(t, err, ErrTransactionNotFound)
}
