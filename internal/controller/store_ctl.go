package controller

import (
	"github.com/gin-gonic/gin"

	"handloom_market/internal/api/dto"
	"handloom_market/internal/service"
)

// StoreController 前台：商品、购物车、反馈、工单、活动上报
type StoreController struct {
	catalogService  *service.CatalogService
	cartService     *service.CartService
	checkoutService *service.CheckoutService
	feedbackService *service.FeedbackService
	supportService  *service.SupportService
	campaignService *service.CampaignService
}

func NewStoreController(
	catalogService *service.CatalogService,
	cartService *service.CartService,
	checkoutService *service.CheckoutService,
	feedbackService *service.FeedbackService,
	supportService *service.SupportService,
	campaignService *service.CampaignService,
) *StoreController {
	return &StoreController{
		catalogService:  catalogService,
		cartService:     cartService,
		checkoutService: checkoutService,
		feedbackService: feedbackService,
		supportService:  supportService,
		campaignService: campaignService,
	}
}

// ==================== 商品 ====================

// ListProducts 商品列表
// @Router /products [get]
func (c *StoreController) ListProducts(ctx *gin.Context) {
	var q dto.ProductQuery
	if err := ctx.ShouldBindQuery(&q); err != nil {
		badRequest(ctx, err)
		return
	}
	list := c.catalogService.Search(ctx.Request.Context(), &q)
	success(ctx, "ok", gin.H{"list": list, "total": len(list)})
}

// GetProduct 商品详情
// @Router /products/{id} [get]
func (c *StoreController) GetProduct(ctx *gin.Context) {
	p, err := c.catalogService.Get(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		handleError(ctx, err)
		return
	}
	success(ctx, "ok", p)
}

// Categories 分类
// @Router /products/categories [get]
func (c *StoreController) Categories(ctx *gin.Context) {
	success(ctx, "ok", c.catalogService.Categories(ctx.Request.Context()))
}

// ==================== 购物车 ====================

// GetCart 当前购物车
// @Router /cart [get]
func (c *StoreController) GetCart(ctx *gin.Context) {
	success(ctx, "ok", c.cartService.Get(ctx.Request.Context()))
}

// AddToCart 加入购物车
// @Router /cart/items [post]
func (c *StoreController) AddToCart(ctx *gin.Context) {
	var req dto.AddCartItemRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, err)
		return
	}
	view, err := c.cartService.Add(ctx.Request.Context(), req.ProductID)
	if err != nil {
		handleError(ctx, err)
		return
	}
	success(ctx, "已加入购物车", view)
}

// RemoveFromCart 移除
// @Router /cart/items/{id} [delete]
func (c *StoreController) RemoveFromCart(ctx *gin.Context) {
	view, err := c.cartService.Remove(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		handleError(ctx, err)
		return
	}
	success(ctx, "已移除", view)
}

// ClearCart 清空
// @Router /cart [delete]
func (c *StoreController) ClearCart(ctx *gin.Context) {
	c.cartService.Clear(ctx.Request.Context())
	success(ctx, "已清空", c.cartService.Get(ctx.Request.Context()))
}

// Checkout 下单
// @Router /cart/checkout [post]
func (c *StoreController) Checkout(ctx *gin.Context) {
	var req dto.CheckoutRequest
	if ctx.Request.ContentLength > 0 {
		if err := ctx.ShouldBindJSON(&req); err != nil {
			badRequest(ctx, err)
			return
		}
	}
	order, err := c.checkoutService.Checkout(ctx.Request.Context(), &req)
	if err != nil {
		handleError(ctx, err)
		return
	}
	success(ctx, "下单成功", order)
}

// ==================== 反馈 / 工单 ====================

// ListFeedback 反馈列表
// @Router /feedback [get]
func (c *StoreController) ListFeedback(ctx *gin.Context) {
	success(ctx, "ok", c.feedbackService.List(ctx.Request.Context()))
}

// SubmitFeedback 提交反馈
// @Router /feedback [post]
func (c *StoreController) SubmitFeedback(ctx *gin.Context) {
	var req dto.FeedbackRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, err)
		return
	}
	success(ctx, "感谢反馈", c.feedbackService.Submit(ctx.Request.Context(), &req))
}

// CreateTicket 提交工单
// @Router /tickets [post]
func (c *StoreController) CreateTicket(ctx *gin.Context) {
	var req dto.TicketRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, err)
		return
	}
	success(ctx, "工单已提交", c.supportService.Create(ctx.Request.Context(), &req))
}

// ==================== 活动上报 ====================

// TrackView 曝光
// @Router /campaigns/{id}/view [post]
func (c *StoreController) TrackView(ctx *gin.Context) {
	cmp, err := c.campaignService.RecordView(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		handleError(ctx, err)
		return
	}
	success(ctx, "ok", gin.H{"views": cmp.Views, "clicks": cmp.Clicks})
}

// TrackClick 点击
// @Router /campaigns/{id}/click [post]
func (c *StoreController) TrackClick(ctx *gin.Context) {
	cmp, err := c.campaignService.RecordClick(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		handleError(ctx, err)
		return
	}
	success(ctx, "ok", gin.H{"views": cmp.Views, "clicks": cmp.Clicks})
}
