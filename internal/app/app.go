// Package app 依赖容器：存储、仓库、服务、控制器、定时任务的组装
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"handloom_market/internal/config"
	"handloom_market/internal/controller"
	"handloom_market/internal/middleware"
	"handloom_market/internal/model"
	"handloom_market/internal/repository"
	"handloom_market/internal/router"
	"handloom_market/internal/service"
	"handloom_market/internal/task"
	"handloom_market/pkg/database"
	"handloom_market/pkg/log"
	"handloom_market/pkg/net"
	"handloom_market/pkg/utils"
)

// ==================== 依赖容器 ====================

// Dependencies 依赖容器
type Dependencies struct {
	Config      *config.Config
	Store       database.Store
	Records     *repository.Records
	Repos       *service.Repositories
	Services    *Services
	Controllers router.Controllers
	Limiter     *middleware.ActionLimiter
	Tasks       *task.TaskManager
}

// Services 服务集合
type Services struct {
	Session       *service.SessionService
	Cart          *service.CartService
	Checkout      *service.CheckoutService
	Catalog       *service.CatalogService
	Inventory     *service.InventoryService
	Artisan       *service.ArtisanService
	Admin         *service.AdminService
	Orders        *service.OrderService
	Payments      *service.PaymentService
	Campaigns     *service.CampaignService
	Support       *service.SupportService
	Feedback      *service.FeedbackService
	Reports       *service.ReportService
	Notifications *service.NotificationService
}

// New 组装全部依赖，gateway 为 nil 时按配置创建
func New(cfg *config.Config, store database.Store, gateway net.CheckoutGateway) *Dependencies {
	if gateway == nil {
		gateway = NewGateway(cfg.Checkout)
	}

	// -------- Repo 层 --------
	records := repository.NewRecords(store)
	repos := service.NewRepositories(records)

	// -------- 业务服务 --------
	threshold := cfg.Catalog.LowStockThreshold
	recent := cfg.Catalog.RecentLimit
	catalog := service.NewCatalogService(repos, threshold)
	services := &Services{
		Session:       service.NewSessionService(repos),
		Cart:          service.NewCartService(repos),
		Checkout:      service.NewCheckoutService(repos, gateway),
		Catalog:       catalog,
		Inventory:     service.NewInventoryService(repos, catalog),
		Artisan:       service.NewArtisanService(repos, catalog, recent),
		Admin:         service.NewAdminService(repos, recent),
		Orders:        service.NewOrderService(repos),
		Payments:      service.NewPaymentService(repos),
		Campaigns:     service.NewCampaignService(repos),
		Support:       service.NewSupportService(repos),
		Feedback:      service.NewFeedbackService(repos),
		Reports:       service.NewReportService(repos),
		Notifications: service.NewNotificationService(repos, threshold),
	}

	// -------- 定时任务 --------
	tasks := task.NewTaskManager(&task.TaskManagerDeps{Sweeper: services.Notifications}, &task.TaskManagerConfig{
		Enabled:      cfg.Task.Enabled,
		LowStockSpec: cfg.Task.LowStockSpec,
		CampaignSpec: cfg.Task.CampaignSpec,
		RunOnStartup: cfg.Task.RunOnStartup,
	})

	return &Dependencies{
		Config:      cfg,
		Store:       store,
		Records:     records,
		Repos:       repos,
		Services:    services,
		Controllers: initControllers(services),
		Limiter:     middleware.NewActionLimiter(),
		Tasks:       tasks,
	}
}

// SetClock 替换所有服务的时钟
func (d *Dependencies) SetClock(now service.Clock) {
	s := d.Services
	s.Session.SetClock(now)
	s.Checkout.SetClock(now)
	s.Catalog.SetClock(now)
	s.Inventory.SetClock(now)
	s.Artisan.SetClock(now)
	s.Admin.SetClock(now)
	s.Payments.SetClock(now)
	s.Campaigns.SetClock(now)
	s.Support.SetClock(now)
	s.Feedback.SetClock(now)
	s.Reports.SetClock(now)
	s.Notifications.SetClock(now)
}

// Engine HTTP 路由
func (d *Dependencies) Engine() *gin.Engine {
	return router.Setup(d.Services.Session, d.Limiter, d.Controllers)
}

// Close 释放存储连接
func (d *Dependencies) Close() error {
	if d.Store == nil {
		return nil
	}
	return d.Store.Close()
}

// initControllers 初始化所有控制器
func initControllers(svc *Services) router.Controllers {
	return router.Controllers{
		Auth:    controller.NewAuthController(svc.Session),
		Store:   controller.NewStoreController(svc.Catalog, svc.Cart, svc.Checkout, svc.Feedback, svc.Support, svc.Campaigns),
		Artisan: controller.NewArtisanController(svc.Session, svc.Artisan, svc.Catalog, svc.Notifications),
		Admin: controller.NewAdminController(controller.AdminServices{
			Admin:         svc.Admin,
			Inventory:     svc.Inventory,
			Orders:        svc.Orders,
			Payments:      svc.Payments,
			Support:       svc.Support,
			Reports:       svc.Reports,
			Notifications: svc.Notifications,
		}),
		Marketing: controller.NewMarketingController(svc.Campaigns, svc.Notifications),
	}
}

// ==================== 存储 / 结账 ====================

// OpenStore 按驱动打开记录存储
func OpenStore(ctx context.Context, cfg config.StoreConfig) (database.Store, error) {
	switch cfg.Driver {
	case "sqlite", "postgres":
		db, err := database.InitDB(cfg.Driver, cfg.DSN, &database.Record{})
		if err != nil {
			return nil, err
		}
		return database.NewGormStore(db), nil
	case "redis":
		client, err := database.NewRedisClient(ctx, database.RedisOptions{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			Prefix:   cfg.Redis.Prefix,
		})
		if err != nil {
			return nil, err
		}
		return database.NewRedisStore(client, cfg.Redis.Prefix), nil
	case "mongo":
		return database.NewMongoStore(ctx, cfg.Mongo.URI, cfg.Mongo.Database, cfg.Mongo.Collection)
	case "memory":
		return database.NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unsupported store driver %q", cfg.Driver)
	}
}

// NewGateway 配置了 URL 时走外部结账服务，否则本地受理
func NewGateway(cfg config.CheckoutConfig) net.CheckoutGateway {
	if cfg.URL == "" {
		return net.LocalCheckoutGateway{}
	}
	client := utils.NewHTTPClient(utils.ClientOptions{Timeout: cfg.Timeout, Retries: 2})
	log.L.Info("checkout gateway", zap.String("url", cfg.URL))
	return net.NewHTTPCheckoutGateway(client, cfg.URL)
}

// ==================== 初始化数据 ====================

// SeedResult seed 命令的执行结果
type SeedResult struct {
	Catalog bool
	Admin   bool
}

// Seed 目录为空时写入种子商品，默认管理员不存在时创建
func (d *Dependencies) Seed(ctx context.Context) SeedResult {
	var res SeedResult
	if _, ok := d.Records.ReadRaw(ctx, repository.KeyProducts); !ok {
		d.Repos.Products.Save(ctx, repository.SeedCatalog())
		res.Catalog = true
	}

	admin := d.Config.Admin
	if admin.Email == "" || admin.Password == "" {
		return res
	}
	if _, ok := d.Repos.Accounts.FindByEmail(ctx, admin.Email); ok {
		return res
	}
	accounts := d.Repos.Accounts.List(ctx)
	accounts = append(accounts, model.Account{
		ID:               "u_" + uuid.NewString(),
		Email:            admin.Email,
		Password:         admin.Password,
		Name:             admin.Name,
		Role:             model.RoleAdmin,
		Status:           model.AccountActive,
		RegistrationDate: time.Now().UTC().Format(time.RFC3339),
	})
	d.Repos.Accounts.Save(ctx, accounts)
	res.Admin = true
	log.L.Info("seed admin created", zap.String("email", admin.Email))
	return res
}
