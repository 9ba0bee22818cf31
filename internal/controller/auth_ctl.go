package controller

import (
	"github.com/gin-gonic/gin"

	"handloom_market/internal/api/dto"
	"handloom_market/internal/service"
)

// AuthController 登录注册
type AuthController struct {
	sessionService *service.SessionService
}

func NewAuthController(sessionService *service.SessionService) *AuthController {
	return &AuthController{sessionService: sessionService}
}

// Signup 注册
// @Router /auth/signup [post]
func (c *AuthController) Signup(ctx *gin.Context) {
	var req dto.SignupRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, err)
		return
	}
	acc, err := c.sessionService.Signup(ctx.Request.Context(), &req)
	if err != nil {
		handleError(ctx, err)
		return
	}
	success(ctx, "注册成功", gin.H{
		"id":     acc.ID,
		"email":  acc.Email,
		"role":   acc.Role,
		"status": acc.Status,
	})
}

// Login 登录
// @Router /auth/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req dto.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, err)
		return
	}
	resp, err := c.sessionService.Login(ctx.Request.Context(), &req)
	if err != nil {
		handleError(ctx, err)
		return
	}
	success(ctx, "登录成功", resp)
}

// Logout 退出
// @Router /auth/logout [post]
func (c *AuthController) Logout(ctx *gin.Context) {
	c.sessionService.Logout(ctx.Request.Context())
	success(ctx, "已退出", gin.H{"redirect": service.LoginPath})
}

// Session 当前会话
// @Router /auth/session [get]
func (c *AuthController) Session(ctx *gin.Context) {
	user, ok := c.sessionService.ResolveIdentity(ctx.Request.Context())
	if !ok {
		success(ctx, "未登录", dto.SessionResponse{Home: service.LoginPath})
		return
	}
	success(ctx, "ok", dto.SessionResponse{
		Authenticated: true,
		Email:         user.Email,
		Role:          user.Role,
		Name:          user.Name,
		Home:          service.HomeFor(user.Role),
	})
}
