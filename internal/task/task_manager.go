package task

import (
	"context"
	"sync"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"handloom_market/pkg/log"
)

// ==================== TaskManager 定时任务管理器 ====================

// Job 可被调度的巡检任务
type Job interface {
	Name() string
	Execute(ctx context.Context) int
}

// Sweeper 任务依赖的通知巡检
type Sweeper interface {
	LowStockSweeper
	CampaignSweeper
}

// TaskManagerDeps 任务管理器依赖
type TaskManagerDeps struct {
	Sweeper Sweeper
}

// TaskManagerConfig 任务管理器配置
type TaskManagerConfig struct {
	Enabled      bool
	LowStockSpec string
	CampaignSpec string
	RunOnStartup bool
}

// DefaultConfig 默认配置
func DefaultConfig() *TaskManagerConfig {
	return &TaskManagerConfig{
		Enabled:      true,
		LowStockSpec: DefaultLowStockSpec,
		CampaignSpec: DefaultCampaignSpec,
	}
}

// TaskManager 单个 cron 调度器管理全部任务，任务之间串行执行
type TaskManager struct {
	cfg  *TaskManagerConfig
	cron *cron.Cron
	jobs []scheduled

	runMu   sync.Mutex
	started bool
}

type scheduled struct {
	spec string
	job  Job
}

// NewTaskManager 创建任务管理器
func NewTaskManager(deps *TaskManagerDeps, cfg *TaskManagerConfig) *TaskManager {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if cfg.LowStockSpec == "" {
		cfg.LowStockSpec = DefaultLowStockSpec
	}
	if cfg.CampaignSpec == "" {
		cfg.CampaignSpec = DefaultCampaignSpec
	}

	logger := cronLogger{l: log.L.Sugar()}
	tm := &TaskManager{
		cfg: cfg,
		cron: cron.New(
			cron.WithSeconds(),
			cron.WithLogger(logger),
			cron.WithChain(cron.Recover(logger), cron.SkipIfStillRunning(logger)),
		),
	}
	if deps != nil && deps.Sweeper != nil {
		tm.jobs = []scheduled{
			{spec: cfg.LowStockSpec, job: NewLowStockTask(deps.Sweeper)},
			{spec: cfg.CampaignSpec, job: NewCampaignWatchTask(deps.Sweeper)},
		}
	}
	return tm
}

// ==================== 生命周期管理 ====================

// Start 注册并启动所有任务
func (tm *TaskManager) Start() error {
	if !tm.cfg.Enabled {
		log.L.Info("[TaskManager] 定时任务未启用")
		return ErrTaskDisabled
	}
	for _, s := range tm.jobs {
		job := s.job
		if _, err := tm.cron.AddFunc(s.spec, func() { tm.run(context.Background(), job) }); err != nil {
			return &TaskError{Task: job.Name(), Err: err}
		}
		log.L.Info("[TaskManager] 任务已注册", zap.String("task", job.Name()), zap.String("spec", s.spec))
	}

	if tm.cfg.RunOnStartup {
		go tm.RunOnce(context.Background())
	}
	tm.cron.Start()
	tm.started = true
	log.L.Info("[TaskManager] 定时任务已全部启动", zap.Int("count", len(tm.jobs)))
	return nil
}

// Stop 停止调度并等待执行中的任务结束
func (tm *TaskManager) Stop() {
	if !tm.started {
		return
	}
	<-tm.cron.Stop().Done()
	tm.started = false
	log.L.Info("[TaskManager] 定时任务已全部停止")
}

// ==================== 手动触发接口 ====================

// RunOnce 依次执行所有任务一次，返回各任务新增通知数
func (tm *TaskManager) RunOnce(ctx context.Context) map[string]int {
	out := make(map[string]int, len(tm.jobs))
	for _, s := range tm.jobs {
		out[s.job.Name()] = tm.run(ctx, s.job)
	}
	return out
}

func (tm *TaskManager) run(ctx context.Context, job Job) int {
	tm.runMu.Lock()
	defer tm.runMu.Unlock()
	return job.Execute(ctx)
}

// ==================== 状态查询 ====================

// Status 获取任务状态
func (tm *TaskManager) Status() map[string]bool {
	out := make(map[string]bool, len(tm.jobs))
	for _, s := range tm.jobs {
		out[s.job.Name()] = tm.cfg.Enabled
	}
	return out
}

// ==================== cron 日志适配 ====================

type cronLogger struct {
	l *zap.SugaredLogger
}

func (c cronLogger) Info(msg string, keysAndValues ...interface{}) {
	c.l.Debugw("[cron] "+msg, keysAndValues...)
}

func (c cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	c.l.Errorw("[cron] "+msg, append(keysAndValues, "error", err)...)
}

// ==================== 错误定义 ====================

// TaskError 任务注册失败
type TaskError struct {
	Task string
	Err  error
}

func (e *TaskError) Error() string { return "task " + e.Task + ": " + e.Err.Error() }

func (e *TaskError) Unwrap() error { return e.Err }

type disabledError string

func (e disabledError) Error() string { return string(e) }

const ErrTaskDisabled disabledError = "task is disabled"
