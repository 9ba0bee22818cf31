package controller

import (
	"github.com/gin-gonic/gin"

	"handloom_market/internal/api/dto"
	"handloom_market/internal/model"
	"handloom_market/internal/service"
)

// MarketingController 营销后台
type MarketingController struct {
	campaignService     *service.CampaignService
	notificationService *service.NotificationService
}

func NewMarketingController(campaignService *service.CampaignService, notificationService *service.NotificationService) *MarketingController {
	return &MarketingController{
		campaignService:     campaignService,
		notificationService: notificationService,
	}
}

// Dashboard 活动看板
// @Router /marketing/dashboard [get]
func (c *MarketingController) Dashboard(ctx *gin.Context) {
	success(ctx, "ok", c.campaignService.Dashboard(ctx.Request.Context()))
}

// ==================== 活动 ====================

// List 活动列表
// @Router /marketing/campaigns [get]
func (c *MarketingController) List(ctx *gin.Context) {
	list := c.campaignService.List(ctx.Request.Context())
	success(ctx, "ok", gin.H{"list": list, "total": len(list)})
}

// Get 活动详情
// @Router /marketing/campaigns/{id} [get]
func (c *MarketingController) Get(ctx *gin.Context) {
	view, err := c.campaignService.Get(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		handleError(ctx, err)
		return
	}
	success(ctx, "ok", view)
}

// Create 新建活动
// @Router /marketing/campaigns [post]
func (c *MarketingController) Create(ctx *gin.Context) {
	var req dto.CreateCampaignRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, err)
		return
	}
	success(ctx, "创建成功", c.campaignService.Create(ctx.Request.Context(), &req))
}

// Update 修改活动
// @Router /marketing/campaigns/{id} [patch]
func (c *MarketingController) Update(ctx *gin.Context) {
	var patch model.CampaignPatch
	if err := ctx.ShouldBindJSON(&patch); err != nil {
		badRequest(ctx, err)
		return
	}
	cmp, err := c.campaignService.Update(ctx.Request.Context(), ctx.Param("id"), patch)
	if err != nil {
		handleError(ctx, err)
		return
	}
	success(ctx, "更新成功", cmp)
}

// Delete 删除活动
// @Router /marketing/campaigns/{id} [delete]
func (c *MarketingController) Delete(ctx *gin.Context) {
	if err := c.campaignService.Delete(ctx.Request.Context(), ctx.Param("id")); err != nil {
		handleError(ctx, err)
		return
	}
	success(ctx, "删除成功", nil)
}

// TogglePause 暂停/恢复
// @Router /marketing/campaigns/{id}/toggle-pause [post]
func (c *MarketingController) TogglePause(ctx *gin.Context) {
	cmp, err := c.campaignService.TogglePause(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		handleError(ctx, err)
		return
	}
	success(ctx, "ok", cmp)
}

// End 结束活动
// @Router /marketing/campaigns/{id}/end [post]
func (c *MarketingController) End(ctx *gin.Context) {
	cmp, err := c.campaignService.End(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		handleError(ctx, err)
		return
	}
	success(ctx, "活动已结束", cmp)
}

// Notifications 营销通知
// @Router /marketing/notifications [get]
func (c *MarketingController) Notifications(ctx *gin.Context) {
	success(ctx, "ok", c.notificationService.ForAudience(ctx.Request.Context(), model.RoleMarketing))
}
