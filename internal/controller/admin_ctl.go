package controller

import (
	"context"

	"github.com/gin-gonic/gin"

	"handloom_market/internal/api/dto"
	"handloom_market/internal/model"
	"handloom_market/internal/service"
)

// AdminServices 管理后台依赖的服务
type AdminServices struct {
	Admin         *service.AdminService
	Inventory     *service.InventoryService
	Orders        *service.OrderService
	Payments      *service.PaymentService
	Support       *service.SupportService
	Reports       *service.ReportService
	Notifications *service.NotificationService
}

// AdminController 管理后台
type AdminController struct {
	svc AdminServices
}

func NewAdminController(svc AdminServices) *AdminController {
	return &AdminController{svc: svc}
}

// Dashboard 首页概览
// @Router /admin/dashboard [get]
func (c *AdminController) Dashboard(ctx *gin.Context) {
	success(ctx, "ok", c.svc.Admin.Overview(ctx.Request.Context()))
}

// ==================== 用户 ====================

// Users 用户列表
// @Router /admin/users [get]
func (c *AdminController) Users(ctx *gin.Context) {
	var q dto.UserListQuery
	if err := ctx.ShouldBindQuery(&q); err != nil {
		badRequest(ctx, err)
		return
	}
	list := c.svc.Admin.Users(ctx.Request.Context(), &q)
	success(ctx, "ok", gin.H{"list": list, "total": len(list)})
}

// ToggleStatus 启用/停用
// @Router /admin/users/{id}/toggle-status [post]
func (c *AdminController) ToggleStatus(ctx *gin.Context) {
	acc, err := c.svc.Admin.ToggleStatus(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		handleError(ctx, err)
		return
	}
	success(ctx, "状态已更新", acc)
}

// ResetPassword 重置密码
// @Router /admin/users/{id}/reset-password [post]
func (c *AdminController) ResetPassword(ctx *gin.Context) {
	var req dto.ResetPasswordRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, err)
		return
	}
	if err := c.svc.Admin.ResetPassword(ctx.Request.Context(), ctx.Param("id"), req.Password); err != nil {
		handleError(ctx, err)
		return
	}
	success(ctx, "密码已重置", nil)
}

// ChangeRole 修改角色
// @Router /admin/users/{id}/role [patch]
func (c *AdminController) ChangeRole(ctx *gin.Context) {
	var req dto.ChangeRoleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, err)
		return
	}
	acc, err := c.svc.Admin.ChangeRole(ctx.Request.Context(), ctx.Param("id"), req.Role)
	if err != nil {
		handleError(ctx, err)
		return
	}
	success(ctx, "角色已更新", acc)
}

// ForceLogout 强制下线
// @Router /admin/users/{id}/force-logout [post]
func (c *AdminController) ForceLogout(ctx *gin.Context) {
	cleared, err := c.svc.Admin.ForceLogout(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		handleError(ctx, err)
		return
	}
	success(ctx, "ok", gin.H{"cleared": cleared})
}

// DeleteUser 删除用户
// @Router /admin/users/{id} [delete]
func (c *AdminController) DeleteUser(ctx *gin.Context) {
	if err := c.svc.Admin.DeleteUser(ctx.Request.Context(), ctx.Param("id")); err != nil {
		handleError(ctx, err)
		return
	}
	success(ctx, "删除成功", nil)
}

// BulkDelete 批量删除
// @Router /admin/users/bulk-delete [post]
func (c *AdminController) BulkDelete(ctx *gin.Context) {
	var req dto.BulkDeleteRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, err)
		return
	}
	n := c.svc.Admin.BulkDelete(ctx.Request.Context(), req.IDs)
	success(ctx, "删除成功", gin.H{"deleted": n})
}

// ==================== 手艺人审核 ====================

// Artisans 手艺人列表
// @Router /admin/artisans [get]
func (c *AdminController) Artisans(ctx *gin.Context) {
	var q dto.ArtisanListQuery
	if err := ctx.ShouldBindQuery(&q); err != nil {
		badRequest(ctx, err)
		return
	}
	list := c.svc.Admin.Artisans(ctx.Request.Context(), q.Status)
	success(ctx, "ok", gin.H{"list": list, "total": len(list)})
}

// ApproveArtisan 通过
// @Router /admin/artisans/{id}/approve [post]
func (c *AdminController) ApproveArtisan(ctx *gin.Context) {
	c.artisanAction(ctx, c.svc.Admin.ApproveArtisan, "已通过")
}

// RejectArtisan 驳回
// @Router /admin/artisans/{id}/reject [post]
func (c *AdminController) RejectArtisan(ctx *gin.Context) {
	c.artisanAction(ctx, c.svc.Admin.RejectArtisan, "已驳回")
}

// SuspendArtisan 暂停
// @Router /admin/artisans/{id}/suspend [post]
func (c *AdminController) SuspendArtisan(ctx *gin.Context) {
	c.artisanAction(ctx, c.svc.Admin.SuspendArtisan, "已暂停")
}

func (c *AdminController) artisanAction(ctx *gin.Context, fn func(context.Context, string) (*model.Account, error), message string) {
	acc, err := fn(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		handleError(ctx, err)
		return
	}
	success(ctx, message, acc)
}

// ==================== 工单 ====================

// Tickets 工单列表
// @Router /admin/tickets [get]
func (c *AdminController) Tickets(ctx *gin.Context) {
	list := c.svc.Support.List(ctx.Request.Context(), ctx.Query("status"))
	success(ctx, "ok", gin.H{"list": list, "total": len(list)})
}

// ResolveTicket 关闭工单
// @Router /admin/tickets/{id}/resolve [post]
func (c *AdminController) ResolveTicket(ctx *gin.Context) {
	t, err := c.svc.Support.Resolve(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		handleError(ctx, err)
		return
	}
	success(ctx, "已解决", t)
}

// ==================== 库存 ====================

// Inventory 库存
// @Router /admin/inventory [get]
func (c *AdminController) Inventory(ctx *gin.Context) {
	var q dto.InventoryQuery
	if err := ctx.ShouldBindQuery(&q); err != nil {
		badRequest(ctx, err)
		return
	}
	success(ctx, "ok", c.svc.Inventory.List(ctx.Request.Context(), &q))
}

// ApproveProduct 审核通过
// @Router /admin/inventory/{id}/approve [post]
func (c *AdminController) ApproveProduct(ctx *gin.Context) {
	p, err := c.svc.Inventory.Approve(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		handleError(ctx, err)
		return
	}
	success(ctx, "已上架", p)
}

// DisableProduct 下架
// @Router /admin/inventory/{id}/disable [post]
func (c *AdminController) DisableProduct(ctx *gin.Context) {
	p, err := c.svc.Inventory.Disable(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		handleError(ctx, err)
		return
	}
	success(ctx, "已下架", p)
}

// DeleteProduct 删除商品
// @Router /admin/inventory/{id} [delete]
func (c *AdminController) DeleteProduct(ctx *gin.Context) {
	if err := c.svc.Inventory.Delete(ctx.Request.Context(), ctx.Param("id")); err != nil {
		handleError(ctx, err)
		return
	}
	success(ctx, "删除成功", nil)
}

// ==================== 订单 / 支付 ====================

// Orders 订单列表
// @Router /admin/orders [get]
func (c *AdminController) Orders(ctx *gin.Context) {
	var q dto.OrderListQuery
	if err := ctx.ShouldBindQuery(&q); err != nil {
		badRequest(ctx, err)
		return
	}
	view, err := c.svc.Orders.List(ctx.Request.Context(), q.Status)
	if err != nil {
		handleError(ctx, err)
		return
	}
	success(ctx, "ok", view)
}

// ChangeOrderStatus 修改订单状态
// @Router /admin/orders/{id}/status [patch]
func (c *AdminController) ChangeOrderStatus(ctx *gin.Context) {
	var req dto.OrderStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, err)
		return
	}
	o, err := c.svc.Orders.ChangeStatus(ctx.Request.Context(), ctx.Param("id"), req.Status)
	if err != nil {
		handleError(ctx, err)
		return
	}
	success(ctx, "状态已更新", o)
}

// CancelOrder 取消订单
// @Router /admin/orders/{id}/cancel [post]
func (c *AdminController) CancelOrder(ctx *gin.Context) {
	o, err := c.svc.Orders.Cancel(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		handleError(ctx, err)
		return
	}
	success(ctx, "已取消", o)
}

// Payments 支付流水
// @Router /admin/payments [get]
func (c *AdminController) Payments(ctx *gin.Context) {
	success(ctx, "ok", c.svc.Payments.List(ctx.Request.Context()))
}

// VerifyPayment 确认收款
// @Router /admin/payments/{id}/verify [post]
func (c *AdminController) VerifyPayment(ctx *gin.Context) {
	tx, err := c.svc.Payments.Verify(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		handleError(ctx, err)
		return
	}
	success(ctx, "已确认", tx)
}

// RefundPayment 退款
// @Router /admin/payments/{id}/refund [post]
func (c *AdminController) RefundPayment(ctx *gin.Context) {
	tx, err := c.svc.Payments.Refund(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		handleError(ctx, err)
		return
	}
	success(ctx, "已退款", tx)
}

// ==================== 报表 / 通知 ====================

// Reports 运营报表
// @Router /admin/reports [get]
func (c *AdminController) Reports(ctx *gin.Context) {
	var q dto.ReportQuery
	if err := ctx.ShouldBindQuery(&q); err != nil {
		badRequest(ctx, err)
		return
	}
	success(ctx, "ok", c.svc.Reports.Build(ctx.Request.Context(), q.Days, q.Top))
}

// Notifications 管理员通知
// @Router /admin/notifications [get]
func (c *AdminController) Notifications(ctx *gin.Context) {
	success(ctx, "ok", c.svc.Notifications.ForAudience(ctx.Request.Context(), model.RoleAdmin))
}

// MarkRead 通知已读
// @Router /admin/notifications/{id}/read [post]
func (c *AdminController) MarkRead(ctx *gin.Context) {
	if err := c.svc.Notifications.MarkRead(ctx.Request.Context(), ctx.Param("id"), model.RoleAdmin); err != nil {
		handleError(ctx, err)
		return
	}
	success(ctx, "ok", nil)
}
