package middleware

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"handloom_market/internal/model"
	"handloom_market/internal/service"
)

// IdentityResolver 读取当前会话用户
type IdentityResolver interface {
	ResolveIdentity(ctx context.Context) (*model.SessionUser, bool)
}

// ContextKeyUser gin 上下文中的会话用户
const ContextKeyUser = "session_user"

// ==================== 请求上下文 ====================

type sessionContextKey struct{}

// WithSessionUser 注入会话用户到 context，供日志和服务层使用
func WithSessionUser(ctx context.Context, user *model.SessionUser) context.Context {
	return context.WithValue(ctx, sessionContextKey{}, user)
}

// SessionUserFrom 从 context 获取会话用户
func SessionUserFrom(ctx context.Context) *model.SessionUser {
	if user, ok := ctx.Value(sessionContextKey{}).(*model.SessionUser); ok {
		return user
	}
	return nil
}

// GetSessionUser 从 gin 上下文获取会话用户
func GetSessionUser(c *gin.Context) (*model.SessionUser, bool) {
	v, ok := c.Get(ContextKeyUser)
	if !ok {
		return nil, false
	}
	user, ok := v.(*model.SessionUser)
	return user, ok && user != nil
}

func attach(c *gin.Context, user *model.SessionUser) {
	c.Set(ContextKeyUser, user)
	c.Request = c.Request.WithContext(WithSessionUser(c.Request.Context(), user))
}

// ==================== Gin 中间件 ====================

// Identify 有会话时注入用户，不拦截匿名请求
func Identify(resolver IdentityResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		if user, ok := resolver.ResolveIdentity(c.Request.Context()); ok {
			attach(c, user)
		}
		c.Next()
	}
}

// RequireRole 角色守卫
// 匿名访问跳转登录页并带上来源路径，角色不符跳转到该角色的首页
func RequireRole(resolver IdentityResolver, role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := resolver.ResolveIdentity(c.Request.Context())
		if !ok {
			redirect(c, service.LoginRedirect(c.Request.URL.Path), "请先登录")
			return
		}
		if user.Role != role {
			redirect(c, service.HomeFor(user.Role), "无权访问该页面")
			return
		}
		attach(c, user)
		c.Next()
	}
}

func redirect(c *gin.Context, location, message string) {
	c.Header("Location", location)
	c.AbortWithStatusJSON(http.StatusFound, gin.H{
		"code":     http.StatusFound,
		"message":  message,
		"redirect": location,
	})
}
