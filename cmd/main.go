package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"handloom_market/internal/app"
	"handloom_market/internal/config"
	"handloom_market/internal/task"
	"handloom_market/pkg/log"
)

func main() {
	cliApp := &cli.App{
		Name:  "handloom",
		Usage: "handloom marketplace storefront and admin console",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Value:   "configs/config.yaml",
				Usage:   "path to yaml config",
				EnvVars: []string{"HANDLOOM_CONFIG"},
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "start http server and background tasks",
				Action: serve,
			},
			{
				Name:   "seed",
				Usage:  "write seed catalog and default admin account",
				Action: seed,
			},
			{
				Name:  "report",
				Usage: "print the reports page as json",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "days", Value: 14, Usage: "daily revenue window"},
					&cli.IntFlag{Name: "top", Value: 10, Usage: "ranking size"},
				},
				Action: report,
			},
		},
	}
	if err := cliApp.Run(os.Args); err != nil {
		log.L.Fatal("command failed", zap.Error(err))
	}
}

// ==================== 初始化 ====================

// bootstrap 加载配置、初始化日志、打开存储并组装依赖
func bootstrap(c *cli.Context) (*app.Dependencies, error) {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return nil, err
	}
	log.Init(log.Config{
		Level:       cfg.Log.Level,
		Environment: cfg.Server.Env,
		ServiceName: "handloom",
	})

	store, err := app.OpenStore(c.Context, cfg.Store)
	if err != nil {
		return nil, fmt.Errorf("open %s store: %w", cfg.Store.Driver, err)
	}
	return app.New(cfg, store, nil), nil
}

// ==================== 命令 ====================

func serve(c *cli.Context) error {
	deps, err := bootstrap(c)
	if err != nil {
		return err
	}
	defer deps.Close()

	cfg := deps.Config
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	if err := deps.Tasks.Start(); err != nil && !errors.Is(err, task.ErrTaskDisabled) {
		return err
	}
	defer deps.Tasks.Stop()

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: deps.Engine(),
	}

	ctx, stop := signal.NotifyContext(c.Context, syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	eg, groupCtx := errgroup.WithContext(ctx)

	// 启动 http 服务
	eg.Go(func() error {
		log.L.Info("server starting", zap.String("addr", srv.Addr), zap.String("store", cfg.Store.Driver))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	// 等待退出信号后优雅关闭
	eg.Go(func() error {
		<-groupCtx.Done()
		log.L.Info("server stopping")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := eg.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	log.L.Info("server stopped")
	return nil
}

func seed(c *cli.Context) error {
	deps, err := bootstrap(c)
	if err != nil {
		return err
	}
	defer deps.Close()

	res := deps.Seed(c.Context)
	log.L.Info("seed finished", zap.Bool("catalog", res.Catalog), zap.Bool("admin", res.Admin))
	return nil
}

func report(c *cli.Context) error {
	deps, err := bootstrap(c)
	if err != nil {
		return err
	}
	defer deps.Close()

	r := deps.Services.Reports.Build(c.Context, c.Int("days"), c.Int("top"))
	out, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(c.App.Writer, string(out))
	return err
}
