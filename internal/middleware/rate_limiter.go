package middleware

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// ==================== ActionLimiter 操作冷却 ====================

// ActionLimiter 按 key 记录上次执行时间，冷却期内拒绝
// 用于结账和活动曝光/点击上报，防止重复提交刷数据
type ActionLimiter struct {
	locks sync.Map // key -> *lockEntry
	now   func() time.Time
}

type lockEntry struct {
	lastTime time.Time
	mu       sync.Mutex
}

func NewActionLimiter() *ActionLimiter {
	return &ActionLimiter{now: time.Now}
}

// CheckResult 检查结果
type CheckResult struct {
	Allowed    bool
	RetryAfter time.Duration
}

// Check 允许时同时记录执行时间
func (r *ActionLimiter) Check(key string, interval time.Duration) CheckResult {
	actual, _ := r.locks.LoadOrStore(key, &lockEntry{})
	entry := actual.(*lockEntry)

	entry.mu.Lock()
	defer entry.mu.Unlock()

	now := r.now()
	if !entry.lastTime.IsZero() {
		if elapsed := now.Sub(entry.lastTime); elapsed < interval {
			return CheckResult{Allowed: false, RetryAfter: interval - elapsed}
		}
	}
	entry.lastTime = now
	return CheckResult{Allowed: true}
}

// ==================== Key ====================

// ActionType 受限操作
type ActionType string

const (
	ActionCheckout      ActionType = "checkout"
	ActionCampaignView  ActionType = "campaign_view"
	ActionCampaignClick ActionType = "campaign_click"
)

// DefaultIntervals 默认冷却间隔
var DefaultIntervals = map[ActionType]time.Duration{
	ActionCheckout:      3 * time.Second,
	ActionCampaignView:  10 * time.Second,
	ActionCampaignClick: 10 * time.Second,
}

// GetInterval 操作的默认间隔
func GetInterval(action ActionType) time.Duration {
	if interval, ok := DefaultIntervals[action]; ok {
		return interval
	}
	return 5 * time.Second
}

// ActionKey 客户端 + 操作 + 目标
func ActionKey(client string, action ActionType, target string) string {
	if target == "" {
		return fmt.Sprintf("%s:%s", client, action)
	}
	return fmt.Sprintf("%s:%s:%s", client, action, target)
}

// ==================== Gin 中间件 ====================

// Cooldown 同一客户端对同一目标的操作冷却，interval 为 0 使用默认值
func Cooldown(limiter *ActionLimiter, action ActionType, interval time.Duration) gin.HandlerFunc {
	if interval == 0 {
		interval = GetInterval(action)
	}
	return func(c *gin.Context) {
		key := ActionKey(c.ClientIP(), action, c.Param("id"))
		result := limiter.Check(key, interval)
		if !result.Allowed {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"code":    http.StatusTooManyRequests,
				"message": formatRetryMessage(result.RetryAfter),
				"data": gin.H{
					"retry_after": int(result.RetryAfter.Seconds()),
					"action":      action,
				},
			})
			return
		}
		c.Next()
	}
}

// formatRetryMessage 格式化重试提示
func formatRetryMessage(d time.Duration) string {
	seconds := int(d.Seconds())
	if seconds < 1 {
		seconds = 1
	}
	if seconds < 60 {
		return fmt.Sprintf("操作过于频繁，请 %d 秒后重试", seconds)
	}
	return fmt.Sprintf("操作过于频繁，请 %d 分 %d 秒后重试", seconds/60, seconds%60)
}
