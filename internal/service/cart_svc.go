package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"handloom_market/internal/api/dto"
	"handloom_market/internal/model"
	"handloom_market/pkg/log"
	"handloom_market/pkg/net"
	"handloom_market/pkg/snowflake"
)

var (
	ErrProductNotFound = errors.New("商品不存在")
	ErrCartItemMissing = errors.New("购物车中没有该商品")
	ErrCartEmpty       = errors.New("购物车为空")
)

// CartView 购物车展示
type CartView struct {
	Items      []model.CartEntry `json:"items"`
	TotalItems int               `json:"totalItems"`
	TotalPrice float64           `json:"totalPrice"`
}

func viewOf(cart model.Cart) *CartView {
	return &CartView{
		Items:      cart.Entries(),
		TotalItems: cart.TotalItems(),
		TotalPrice: cart.TotalPrice(),
	}
}

// ==================== CartService ====================

// CartService 购物车
type CartService struct {
	repos *Repositories
}

func NewCartService(repos *Repositories) *CartService {
	return &CartService{repos: repos}
}

// Get 当前购物车
func (s *CartService) Get(ctx context.Context) *CartView {
	return viewOf(s.repos.Cart.Get(ctx))
}

// Add 加入商品，已存在则数量加一
func (s *CartService) Add(ctx context.Context, productID string) (*CartView, error) {
	product, ok := s.repos.Products.FindByID(ctx, productID)
	if !ok {
		return nil, ErrProductNotFound
	}
	cart := s.repos.Cart.Get(ctx)
	cart.Add(*product)
	s.repos.Cart.Save(ctx, cart)
	return viewOf(cart), nil
}

// Remove 移除商品
func (s *CartService) Remove(ctx context.Context, productID string) (*CartView, error) {
	cart := s.repos.Cart.Get(ctx)
	if !cart.Remove(productID) {
		return nil, ErrCartItemMissing
	}
	s.repos.Cart.Save(ctx, cart)
	return viewOf(cart), nil
}

// Clear 清空
func (s *CartService) Clear(ctx context.Context) {
	s.repos.Cart.Clear(ctx)
}

// ==================== CheckoutService ====================

// CheckoutService 下单
type CheckoutService struct {
	repos   *Repositories
	gateway net.CheckoutGateway
	now     Clock
}

func NewCheckoutService(repos *Repositories, gateway net.CheckoutGateway) *CheckoutService {
	if gateway == nil {
		gateway = net.LocalCheckoutGateway{}
	}
	return &CheckoutService{repos: repos, gateway: gateway, now: time.Now}
}

func (s *CheckoutService) SetClock(now Clock) {
	s.now = now
}

// Checkout 把购物车转成订单
// 结账服务受理后追加订单和待确认流水，累加商品销量，清空购物车
func (s *CheckoutService) Checkout(ctx context.Context, req *dto.CheckoutRequest) (*model.Order, error) {
	cart := s.repos.Cart.Get(ctx)
	if len(cart) == 0 {
		return nil, ErrCartEmpty
	}
	if req == nil {
		req = &dto.CheckoutRequest{}
	}

	order := model.Order{
		ID:        "ORD-" + snowflake.GenStringID(),
		Status:    model.OrderStatusPending,
		BuyerName: strings.TrimSpace(req.BuyerName),
		Email:     strings.TrimSpace(req.Email),
		Date:      isoTime(s.now()),
		Address:   strings.TrimSpace(req.Address),
		Coupon:    strings.TrimSpace(req.Coupon),
	}
	if user, ok := s.repos.Session.Get(ctx); ok {
		if order.Email == "" {
			order.Email = user.Email
		}
		if order.BuyerName == "" {
			order.BuyerName = user.Name
		}
	}
	if order.Coupon != "" {
		for _, c := range s.repos.Campaigns.List(ctx) {
			if strings.EqualFold(c.Coupon, order.Coupon) {
				order.CampaignID = c.ID
				break
			}
		}
	}
	for _, e := range cart.Entries() {
		order.Items = append(order.Items, model.OrderItem{
			ProductID: e.ID,
			Name:      e.Name,
			Qty:       e.Qty,
			Price:     e.Price,
			OwnerKey:  e.OwnerKey,
		})
	}
	order.Total = order.ItemsTotal()

	if err := s.gateway.Submit(ctx, order.ID, order); err != nil {
		return nil, fmt.Errorf("checkout order %s: %w", order.ID, err)
	}

	s.repos.Orders.Save(ctx, append(s.repos.Orders.List(ctx), order))

	mode := req.Mode
	if mode == "" {
		mode = "online"
	}
	txs := s.repos.Transactions.List(ctx)
	for _, owner := range ownersOf(order.Items) {
		txs = append(txs, model.Transaction{
			ID:        "TXN-" + uuid.NewString(),
			OrderID:   order.ID,
			Amount:    itemsAmount(order.Items, owner),
			Status:    model.TransactionPending,
			Mode:      mode,
			Date:      order.Date,
			OwnerKey:  owner,
			BuyerName: order.BuyerName,
			Email:     order.Email,
		})
	}
	s.repos.Transactions.Save(ctx, txs)

	products := s.repos.Products.List(ctx)
	for i := range products {
		if e, ok := cart[products[i].ID]; ok {
			products[i].Sales += e.Qty
		}
	}
	s.repos.Products.Save(ctx, products)

	s.repos.Cart.Clear(ctx)
	log.L.Info("order placed",
		zap.String("order_id", order.ID),
		zap.Float64("total", order.Total),
		zap.Int("items", len(order.Items)))
	return &order, nil
}

// ownersOf 明细中出现的归属键，保持首次出现顺序
func ownersOf(items []model.OrderItem) []string {
	var owners []string
	seen := make(map[string]bool)
	for i := range items {
		if !seen[items[i].OwnerKey] {
			seen[items[i].OwnerKey] = true
			owners = append(owners, items[i].OwnerKey)
		}
	}
	return owners
}

func itemsAmount(items []model.OrderItem, owner string) float64 {
	var picked model.Order
	for i := range items {
		if items[i].OwnerKey == owner {
			picked.Items = append(picked.Items, items[i])
		}
	}
	return picked.ItemsTotal()
}
