package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"handloom_market/internal/analytics"
	"handloom_market/internal/api/dto"
	"handloom_market/internal/middleware"
	"handloom_market/internal/model"
	"handloom_market/internal/service"
)

// ArtisanController 手艺人后台
type ArtisanController struct {
	sessionService      *service.SessionService
	artisanService      *service.ArtisanService
	catalogService      *service.CatalogService
	notificationService *service.NotificationService
}

func NewArtisanController(
	sessionService *service.SessionService,
	artisanService *service.ArtisanService,
	catalogService *service.CatalogService,
	notificationService *service.NotificationService,
) *ArtisanController {
	return &ArtisanController{
		sessionService:      sessionService,
		artisanService:      artisanService,
		catalogService:      catalogService,
		notificationService: notificationService,
	}
}

// actor 当前手艺人的归属主体，路由已过角色校验
func (c *ArtisanController) actor(ctx *gin.Context) (*model.SessionUser, analytics.Actor, bool) {
	user, ok := middleware.GetSessionUser(ctx)
	if !ok {
		fail(ctx, http.StatusUnauthorized, "未登录")
		return nil, analytics.Actor{}, false
	}
	return user, c.sessionService.ActorFor(ctx.Request.Context(), user), true
}

// Dashboard 看板
// @Router /artisan/dashboard [get]
func (c *ArtisanController) Dashboard(ctx *gin.Context) {
	_, actor, ok := c.actor(ctx)
	if !ok {
		return
	}
	success(ctx, "ok", c.artisanService.Dashboard(ctx.Request.Context(), actor))
}

// Orders 订单，?status= 过滤
// @Router /artisan/orders [get]
func (c *ArtisanController) Orders(ctx *gin.Context) {
	_, actor, ok := c.actor(ctx)
	if !ok {
		return
	}
	list := c.artisanService.Orders(ctx.Request.Context(), actor, ctx.Query("status"))
	if list == nil {
		list = []model.Order{}
	}
	success(ctx, "ok", gin.H{"list": list, "total": len(list)})
}

// Reviews 评价
// @Router /artisan/reviews [get]
func (c *ArtisanController) Reviews(ctx *gin.Context) {
	_, actor, ok := c.actor(ctx)
	if !ok {
		return
	}
	reviews := c.artisanService.Reviews(ctx.Request.Context(), actor)
	success(ctx, "ok", gin.H{
		"list":          reviews,
		"averageRating": analytics.AverageRating(reviews),
	})
}

// ==================== 商品 ====================

// Products 我的商品
// @Router /artisan/products [get]
func (c *ArtisanController) Products(ctx *gin.Context) {
	_, actor, ok := c.actor(ctx)
	if !ok {
		return
	}
	list := c.catalogService.Owned(ctx.Request.Context(), actor)
	if list == nil {
		list = []model.Product{}
	}
	success(ctx, "ok", gin.H{"list": list, "total": len(list)})
}

// CreateProduct 上架，归属键为登录邮箱
// @Router /artisan/products [post]
func (c *ArtisanController) CreateProduct(ctx *gin.Context) {
	user, _, ok := c.actor(ctx)
	if !ok {
		return
	}
	var req dto.CreateProductRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, err)
		return
	}
	success(ctx, "已提交审核", c.catalogService.Create(ctx.Request.Context(), user.Email, &req))
}

// UpdateProduct 修改
// @Router /artisan/products/{id} [patch]
func (c *ArtisanController) UpdateProduct(ctx *gin.Context) {
	_, actor, ok := c.actor(ctx)
	if !ok {
		return
	}
	var patch model.ProductPatch
	if err := ctx.ShouldBindJSON(&patch); err != nil {
		badRequest(ctx, err)
		return
	}
	p, err := c.catalogService.Update(ctx.Request.Context(), &actor, ctx.Param("id"), patch)
	if err != nil {
		handleError(ctx, err)
		return
	}
	success(ctx, "更新成功", p)
}

// DeleteProduct 删除
// @Router /artisan/products/{id} [delete]
func (c *ArtisanController) DeleteProduct(ctx *gin.Context) {
	_, actor, ok := c.actor(ctx)
	if !ok {
		return
	}
	if err := c.catalogService.Delete(ctx.Request.Context(), &actor, ctx.Param("id")); err != nil {
		handleError(ctx, err)
		return
	}
	success(ctx, "删除成功", nil)
}

// Notifications 发给自己的通知
// @Router /artisan/notifications [get]
func (c *ArtisanController) Notifications(ctx *gin.Context) {
	_, actor, ok := c.actor(ctx)
	if !ok {
		return
	}
	success(ctx, "ok", c.notificationService.ForAudience(ctx.Request.Context(), actor.Keys...))
}

// MarkRead 通知已读
// @Router /artisan/notifications/{id}/read [post]
func (c *ArtisanController) MarkRead(ctx *gin.Context) {
	_, actor, ok := c.actor(ctx)
	if !ok {
		return
	}
	if err := c.notificationService.MarkRead(ctx.Request.Context(), ctx.Param("id"), actor.Keys...); err != nil {
		handleError(ctx, err)
		return
	}
	success(ctx, "ok", nil)
}
