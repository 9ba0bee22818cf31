package repository

import (
	"context"
	"encoding/json"
	"errors"

	cmap "github.com/orcaman/concurrent-map/v2"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"handloom_market/pkg/database"
	"handloom_market/pkg/log"
)

// ==================== 存储键 ====================

const (
	KeyUser           = "user"
	KeyAccounts       = "accounts"
	KeyProducts       = "products"
	KeyOrders         = "orders"
	KeyTransactions   = "transactions"
	KeyCampaigns      = "campaigns"
	KeyNotifications  = "notifications"
	KeySupportTickets = "supportTickets"
	KeyCart           = "cart"
	KeyFeedback       = "feedback"
)

// ==================== 指标 ====================

var (
	readFallbackTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "record_store_read_fallback_total",
			Help: "Reads that substituted the fallback value because the record was absent or malformed",
		},
		[]string{"key", "reason"},
	)

	writeFailureTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "record_store_write_failures_total",
			Help: "Writes the backing store rejected",
		},
		[]string{"key"},
	)
)

func init() {
	prometheus.MustRegister(readFallbackTotal)
	prometheus.MustRegister(writeFailureTotal)
}

// ==================== Records 读写端口 ====================

// Records 记录存储的读写端口
// 读永不失败：缺失或无法解析时由调用方使用回退值
// 写为 fire-and-forget：后端写失败时记录日志，并把值保留在进程内覆盖层，
// 后续读取优先命中覆盖层，直到某次写入成功
type Records struct {
	store   database.Store
	overlay cmap.ConcurrentMap[string, []byte]
}

func NewRecords(store database.Store) *Records {
	return &Records{
		store:   store,
		overlay: cmap.New[[]byte](),
	}
}

// ReadRaw 读取原始 JSON，ok=false 表示不存在或后端不可用
func (r *Records) ReadRaw(ctx context.Context, key string) ([]byte, bool) {
	if val, ok := r.overlay.Get(key); ok {
		return val, true
	}

	val, err := r.store.Get(ctx, key)
	if errors.Is(err, database.ErrNotFound) {
		return nil, false
	}
	if err != nil {
		log.L.Warn("record store read failed", zap.String("key", key), zap.Error(err))
		readFallbackTotal.WithLabelValues(key, "backend").Inc()
		return nil, false
	}
	return val, true
}

// Malformed 记录一次解析失败
func (r *Records) Malformed(key string, err error) {
	log.L.Debug("record malformed, using fallback", zap.String("key", key), zap.Error(err))
	readFallbackTotal.WithLabelValues(key, "malformed").Inc()
}

// Write 整体替换 key 对应的值
func (r *Records) Write(ctx context.Context, key string, v any) {
	raw, err := json.Marshal(v)
	if err != nil {
		log.L.Error("record encode failed", zap.String("key", key), zap.Error(err))
		return
	}

	if err := r.store.Set(ctx, key, raw); err != nil {
		log.L.Warn("record store write failed, keeping value in memory",
			zap.String("key", key), zap.Error(err))
		writeFailureTotal.WithLabelValues(key).Inc()
		r.overlay.Set(key, raw)
		return
	}
	r.overlay.Remove(key)
}

// Remove 删除 key，后端失败时用 null 遮住旧值
func (r *Records) Remove(ctx context.Context, key string) {
	if err := r.store.Delete(ctx, key); err != nil {
		log.L.Warn("record store delete failed", zap.String("key", key), zap.Error(err))
		writeFailureTotal.WithLabelValues(key).Inc()
		r.overlay.Set(key, []byte("null"))
		return
	}
	r.overlay.Remove(key)
}

// Degraded 当前是否有未能落盘的 key
func (r *Records) Degraded() []string {
	return r.overlay.Keys()
}
