package task

import (
	"context"
	"time"

	"go.uber.org/zap"

	"handloom_market/pkg/log"
)

// DefaultCampaignSpec 每 10 分钟检查一次
const DefaultCampaignSpec = "0 */10 * * * *"

// CampaignSweeper 过期活动通知
type CampaignSweeper interface {
	SweepExpiredCampaigns(ctx context.Context) int
}

// CampaignWatchTask 活动过期巡检
type CampaignWatchTask struct {
	sweeper CampaignSweeper
	timeout time.Duration
}

func NewCampaignWatchTask(sweeper CampaignSweeper) *CampaignWatchTask {
	return &CampaignWatchTask{sweeper: sweeper, timeout: time.Minute}
}

func (t *CampaignWatchTask) Name() string { return "campaign_watch" }

// Execute 执行一次检查，返回新增通知数
func (t *CampaignWatchTask) Execute(ctx context.Context) int {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()

	added := t.sweeper.SweepExpiredCampaigns(ctx)
	if added > 0 {
		log.L.Info("[CampaignWatchTask] 发现过期活动", zap.Int("added", added))
	}
	return added
}
