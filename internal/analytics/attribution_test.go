package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"handloom_market/internal/model"
)

func sampleCatalog() []model.Product {
	return []model.Product{
		{ID: "p1", Name: "Banarasi Saree", OwnerKey: "meera@x.com", Price: 500},
		{ID: "p2", Name: "Pashmina Shawl", OwnerKey: "Ravi Crafts", Price: 300},
		{ID: "p3", Name: "Jute Bag", Price: 50},
	}
}

func sampleOrders() []model.Order {
	return []model.Order{
		{
			ID: "o1", Date: "2024-05-02T10:00:00Z", Status: model.OrderStatusPending, Total: 1300,
			Items: []model.OrderItem{
				{ProductID: "p1", Name: "Banarasi Saree", Qty: 2, Price: 500},
				{ProductID: "p2", Name: "Pashmina Shawl", Qty: 1, Price: 300},
			},
		},
		{
			ID: "o2", Date: "2024-04-20", Status: model.OrderStatusDelivered, Total: 500,
			Items: []model.OrderItem{
				{ProductID: "p1", Name: "Banarasi Saree", Qty: 1, Price: 500,
					Review: &model.Review{Rating: 4, Comment: "lovely"}},
			},
		},
		{
			ID: "o3", Date: "2024-05-10", Status: model.OrderStatusShipped, Total: 170,
			Items: []model.OrderItem{
				{ProductID: "p3", Name: "Jute Bag", Qty: 1, Price: 50},
				{ProductID: "gone", Name: "Old item", Qty: 1, Price: 20, OwnerKey: "MEERA@x.com"},
				{Name: "No product", Qty: 1, Price: 100},
			},
		},
	}
}

func TestActor_Owns(t *testing.T) {
	a := NewActor("meera@x.com", "", "  u_1 ", "Meera Weaves")

	assert.Len(t, a.Keys, 3)
	assert.True(t, a.Owns("MEERA@X.COM"))
	assert.True(t, a.Owns("u_1"))
	assert.True(t, a.Owns("meera weaves"))
	assert.False(t, a.Owns(""))
	assert.False(t, a.Owns("ravi@x.com"))
}

func TestAttributor_OwnerOf(t *testing.T) {
	attr := NewAttributor(sampleCatalog())

	// 明细自带的归属键优先于目录
	assert.Equal(t, "x", attr.OwnerOf(&model.OrderItem{ProductID: "p1", OwnerKey: "x"}))
	assert.Equal(t, "meera@x.com", attr.OwnerOf(&model.OrderItem{ProductID: "p1"}))
	assert.Equal(t, "", attr.OwnerOf(&model.OrderItem{ProductID: "p3"}))
	assert.Equal(t, "", attr.OwnerOf(&model.OrderItem{ProductID: "missing"}))
	assert.Equal(t, "", attr.OwnerOf(&model.OrderItem{}))
}

func TestAttributor_ItemsBelongToAtMostOneArtisan(t *testing.T) {
	attr := NewAttributor(sampleCatalog())
	actors := []Actor{NewActor("meera@x.com"), NewActor("Ravi Crafts")}

	for _, o := range sampleOrders() {
		for i := range o.Items {
			owners := 0
			for _, a := range actors {
				if attr.Belongs(&o.Items[i], a) {
					owners++
				}
			}
			assert.LessOrEqual(t, owners, 1, "order %s item %d", o.ID, i)
		}
	}
}

func TestAttributor_OrdersFor(t *testing.T) {
	attr := NewAttributor(sampleCatalog())
	meera := NewActor("meera@x.com")

	orders := attr.OrdersFor(sampleOrders(), meera)
	require.Len(t, orders, 3)
	assert.Len(t, orders[0].Items, 1)
	assert.Equal(t, "p1", orders[0].Items[0].ProductID)
	assert.Len(t, orders[2].Items, 1)
	assert.Equal(t, "gone", orders[2].Items[0].ProductID)

	ravi := attr.OrdersFor(sampleOrders(), NewActor("ravi crafts"))
	require.Len(t, ravi, 1)
	assert.Equal(t, "o1", ravi[0].ID)

	assert.Empty(t, attr.OrdersFor(sampleOrders(), NewActor("nobody")))
}

func TestAttributor_Earnings(t *testing.T) {
	attr := NewAttributor(sampleCatalog())
	orders := sampleOrders()

	// 只计算属于自己的明细，不计整单金额
	assert.Equal(t, 1520.0, attr.Earnings(orders, NewActor("meera@x.com")))
	assert.Equal(t, 300.0, attr.Earnings(orders, NewActor("Ravi Crafts")))

	now := time.Date(2024, 5, 15, 9, 0, 0, 0, time.UTC)
	assert.Equal(t, 1020.0, attr.MonthlyEarnings(orders, NewActor("meera@x.com"), now))
}

func TestAttributor_EarningsByOwner(t *testing.T) {
	attr := NewAttributor(sampleCatalog())
	got := attr.EarningsByOwner(sampleOrders())

	assert.Equal(t, 1500.0, got["meera@x.com"])
	assert.Equal(t, 20.0, got["MEERA@x.com"])
	assert.Equal(t, 300.0, got["Ravi Crafts"])
	assert.Equal(t, 150.0, got[""])
}

func TestPendingPayouts(t *testing.T) {
	txs := []model.Transaction{
		{ID: "t1", Amount: 100, Status: model.TransactionPending, OwnerKey: "meera@x.com"},
		{ID: "t2", Amount: 200, Status: model.TransactionVerified, OwnerKey: "Meera@X.com"},
		{ID: "t3", Amount: 400, Status: model.TransactionVerified, OwnerKey: "meera@x.com", Payout: "PO-1"},
		{ID: "t4", Amount: 800, Status: model.TransactionPending, OwnerKey: "ravi@x.com"},
	}

	assert.Equal(t, 300.0, PendingPayouts(txs, NewActor("meera@x.com")))
	assert.Equal(t, 0.0, PendingPayouts(nil, NewActor("meera@x.com")))
}

func TestCountStatuses(t *testing.T) {
	orders := []model.Order{
		{Status: model.OrderStatusPending},
		{Status: model.OrderStatusPending},
		{Status: model.OrderStatusProcessing},
		{Status: model.OrderStatusShipped},
		{Status: model.OrderStatusDelivered},
		{Status: model.OrderStatusCancelled},
		{Status: model.OrderStatusReturned},
		{Status: model.OrderStatus("")},
	}

	c := CountStatuses(orders)
	assert.Equal(t, StatusCounters{New: 2, Processing: 2, Shipped: 1, Delivered: 1, Cancelled: 1, Returned: 1}, c)
	assert.Equal(t, len(orders), c.Total())
}

func TestAttributor_Reviews(t *testing.T) {
	attr := NewAttributor(sampleCatalog())

	reviews := attr.Reviews(sampleOrders(), NewActor("meera@x.com"))
	require.Len(t, reviews, 1)
	assert.Equal(t, "o2", reviews[0].OrderID)
	assert.Equal(t, 4, reviews[0].Rating)
	assert.Equal(t, "2024-04-20", reviews[0].Date)

	assert.Empty(t, attr.Reviews(sampleOrders(), NewActor("Ravi Crafts")))
}

func TestAverageRating(t *testing.T) {
	assert.Equal(t, 0.0, AverageRating(nil))
	assert.Equal(t, 3.67, AverageRating([]ReviewEntry{{Rating: 5}, {Rating: 4}, {Rating: 2}}))
}
