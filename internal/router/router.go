package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"handloom_market/internal/controller"
	"handloom_market/internal/middleware"
	"handloom_market/internal/model"
)

// Controllers 路由依赖的全部控制器
type Controllers struct {
	Auth      *controller.AuthController
	Store     *controller.StoreController
	Artisan   *controller.ArtisanController
	Admin     *controller.AdminController
	Marketing *controller.MarketingController
}

// Setup 创建 gin 引擎并注册中间件与路由
func Setup(resolver middleware.IdentityResolver, limiter *middleware.ActionLimiter, ctl Controllers) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestLogger(), middleware.Metrics(), gin.Recovery(), middleware.Identify(resolver))
	InitRoutes(r, resolver, limiter, ctl)
	return r
}

// InitRoutes 注册所有路由
func InitRoutes(r *gin.Engine, resolver middleware.IdentityResolver, limiter *middleware.ActionLimiter, ctl Controllers) {
	r.GET("/healthz", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"code": 0, "message": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	{
		// auth 登录注册
		auth := api.Group("/auth")
		{
			auth.POST("/signup", ctl.Auth.Signup)
			auth.POST("/login", ctl.Auth.Login)
			auth.POST("/logout", ctl.Auth.Logout)
			auth.GET("/session", ctl.Auth.Session)
		}

		// 前台商品
		products := api.Group("/products")
		{
			products.GET("", ctl.Store.ListProducts)
			products.GET("/categories", ctl.Store.Categories)
			products.GET("/:id", ctl.Store.GetProduct)
		}

		cart := api.Group("/cart")
		{
			cart.GET("", ctl.Store.GetCart)
			cart.DELETE("", ctl.Store.ClearCart)
			cart.POST("/items", ctl.Store.AddToCart)
			cart.DELETE("/items/:id", ctl.Store.RemoveFromCart)
			cart.POST("/checkout", middleware.Cooldown(limiter, middleware.ActionCheckout, 0), ctl.Store.Checkout)
		}

		api.GET("/feedback", ctl.Store.ListFeedback)
		api.POST("/feedback", ctl.Store.SubmitFeedback)
		api.POST("/tickets", ctl.Store.CreateTicket)

		campaigns := api.Group("/campaigns")
		{
			campaigns.POST("/:id/view", middleware.Cooldown(limiter, middleware.ActionCampaignView, 0), ctl.Store.TrackView)
			campaigns.POST("/:id/click", middleware.Cooldown(limiter, middleware.ActionCampaignClick, 0), ctl.Store.TrackClick)
		}

		// artisan 手艺人后台
		artisan := api.Group("/artisan", middleware.RequireRole(resolver, model.RoleArtisan))
		{
			artisan.GET("/dashboard", ctl.Artisan.Dashboard)
			artisan.GET("/orders", ctl.Artisan.Orders)
			artisan.GET("/reviews", ctl.Artisan.Reviews)
			artisan.GET("/products", ctl.Artisan.Products)
			artisan.POST("/products", ctl.Artisan.CreateProduct)
			artisan.PATCH("/products/:id", ctl.Artisan.UpdateProduct)
			artisan.DELETE("/products/:id", ctl.Artisan.DeleteProduct)
			artisan.GET("/notifications", ctl.Artisan.Notifications)
			artisan.POST("/notifications/:id/read", ctl.Artisan.MarkRead)
		}

		// admin 管理后台
		admin := api.Group("/admin", middleware.RequireRole(resolver, model.RoleAdmin))
		{
			admin.GET("/dashboard", ctl.Admin.Dashboard)

			admin.GET("/users", ctl.Admin.Users)
			admin.POST("/users/bulk-delete", ctl.Admin.BulkDelete)
			admin.POST("/users/:id/toggle-status", ctl.Admin.ToggleStatus)
			admin.POST("/users/:id/reset-password", ctl.Admin.ResetPassword)
			admin.PATCH("/users/:id/role", ctl.Admin.ChangeRole)
			admin.POST("/users/:id/force-logout", ctl.Admin.ForceLogout)
			admin.DELETE("/users/:id", ctl.Admin.DeleteUser)

			admin.GET("/artisans", ctl.Admin.Artisans)
			admin.POST("/artisans/:id/approve", ctl.Admin.ApproveArtisan)
			admin.POST("/artisans/:id/reject", ctl.Admin.RejectArtisan)
			admin.POST("/artisans/:id/suspend", ctl.Admin.SuspendArtisan)

			admin.GET("/tickets", ctl.Admin.Tickets)
			admin.POST("/tickets/:id/resolve", ctl.Admin.ResolveTicket)

			admin.GET("/inventory", ctl.Admin.Inventory)
			admin.POST("/inventory/:id/approve", ctl.Admin.ApproveProduct)
			admin.POST("/inventory/:id/disable", ctl.Admin.DisableProduct)
			admin.DELETE("/inventory/:id", ctl.Admin.DeleteProduct)

			admin.GET("/orders", ctl.Admin.Orders)
			admin.PATCH("/orders/:id/status", ctl.Admin.ChangeOrderStatus)
			admin.POST("/orders/:id/cancel", ctl.Admin.CancelOrder)

			admin.GET("/payments", ctl.Admin.Payments)
			admin.POST("/payments/:id/verify", ctl.Admin.VerifyPayment)
			admin.POST("/payments/:id/refund", ctl.Admin.RefundPayment)

			admin.GET("/reports", ctl.Admin.Reports)
			admin.GET("/notifications", ctl.Admin.Notifications)
			admin.POST("/notifications/:id/read", ctl.Admin.MarkRead)
		}

		// marketing 营销后台
		marketing := api.Group("/marketing", middleware.RequireRole(resolver, model.RoleMarketing))
		{
			marketing.GET("/dashboard", ctl.Marketing.Dashboard)
			marketing.GET("/campaigns", ctl.Marketing.List)
			marketing.POST("/campaigns", ctl.Marketing.Create)
			marketing.GET("/campaigns/:id", ctl.Marketing.Get)
			marketing.PATCH("/campaigns/:id", ctl.Marketing.Update)
			marketing.DELETE("/campaigns/:id", ctl.Marketing.Delete)
			marketing.POST("/campaigns/:id/toggle-pause", ctl.Marketing.TogglePause)
			marketing.POST("/campaigns/:id/end", ctl.Marketing.End)
			marketing.GET("/notifications", ctl.Marketing.Notifications)
		}
	}
}
