package task

import (
	"context"
	"time"

	"go.uber.org/zap"

	"handloom_market/pkg/log"
)

// DefaultLowStockSpec 每 30 分钟巡检一次
const DefaultLowStockSpec = "0 */30 * * * *"

// LowStockSweeper 低库存通知
type LowStockSweeper interface {
	SweepLowStock(ctx context.Context) int
}

// LowStockTask 低库存巡检任务
type LowStockTask struct {
	sweeper LowStockSweeper
	timeout time.Duration
}

func NewLowStockTask(sweeper LowStockSweeper) *LowStockTask {
	return &LowStockTask{sweeper: sweeper, timeout: time.Minute}
}

func (t *LowStockTask) Name() string { return "low_stock" }

// Execute 执行一次巡检，返回新增通知数
func (t *LowStockTask) Execute(ctx context.Context) int {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()

	start := time.Now()
	added := t.sweeper.SweepLowStock(ctx)
	log.L.Info("[LowStockTask] 巡检完成",
		zap.Int("added", added),
		zap.Duration("cost", time.Since(start)))
	return added
}
