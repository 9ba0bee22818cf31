package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config 应用配置
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Store    StoreConfig    `yaml:"store"`
	Log      LogConfig      `yaml:"log"`
	Checkout CheckoutConfig `yaml:"checkout"`
	Admin    AdminConfig    `yaml:"admin"`
	Catalog  CatalogConfig  `yaml:"catalog"`
	Task     TaskConfig     `yaml:"task"`
}

// ServerConfig HTTP 服务配置
type ServerConfig struct {
	Port            string        `yaml:"port"`
	Env             string        `yaml:"env"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// StoreConfig 记录存储配置
// Driver: sqlite / postgres / redis / mongo / memory
type StoreConfig struct {
	Driver string      `yaml:"driver"`
	DSN    string      `yaml:"dsn"`
	Redis  RedisConfig `yaml:"redis"`
	Mongo  MongoConfig `yaml:"mongo"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	Prefix   string `yaml:"prefix"`
}

type MongoConfig struct {
	URI        string `yaml:"uri"`
	Database   string `yaml:"database"`
	Collection string `yaml:"collection"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

// CheckoutConfig 外部结账服务
// URL 为空时使用本地直接受理
type CheckoutConfig struct {
	URL     string        `yaml:"url"`
	Timeout time.Duration `yaml:"timeout"`
}

// AdminConfig seed 命令创建的默认管理员
type AdminConfig struct {
	Email    string `yaml:"email"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
}

type CatalogConfig struct {
	LowStockThreshold int `yaml:"low_stock_threshold"`
	RecentLimit       int `yaml:"recent_limit"`
}

// TaskConfig 定时任务配置，Spec 为带秒的 cron 表达式
type TaskConfig struct {
	Enabled      bool   `yaml:"enabled"`
	LowStockSpec string `yaml:"low_stock_spec"`
	CampaignSpec string `yaml:"campaign_spec"`
	RunOnStartup bool   `yaml:"run_on_startup"`
}

// Default 默认配置
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            "8080",
			Env:             "development",
			ShutdownTimeout: 30 * time.Second,
		},
		Store: StoreConfig{
			Driver: "sqlite",
			DSN:    "handloom.db",
			Redis: RedisConfig{
				Addr:   "localhost:6379",
				Prefix: "handloom:",
			},
			Mongo: MongoConfig{
				URI:        "mongodb://localhost:27017",
				Database:   "handloom",
				Collection: "records",
			},
		},
		Log: LogConfig{Level: "info"},
		Checkout: CheckoutConfig{
			Timeout: 15 * time.Second,
		},
		Admin: AdminConfig{
			Email:    "admin@handloom.local",
			Password: "admin123",
			Name:     "Administrator",
		},
		Catalog: CatalogConfig{
			LowStockThreshold: 5,
			RecentLimit:       5,
		},
		Task: TaskConfig{
			Enabled:      true,
			LowStockSpec: "0 */30 * * * *",
			CampaignSpec: "0 */10 * * * *",
			RunOnStartup: true,
		},
	}
}

// Load 加载配置
// 顺序：默认值 -> YAML 文件（不存在则跳过）-> .env -> 环境变量
func Load(filename string) (*Config, error) {
	cfg := Default()

	if filename != "" {
		content, err := os.ReadFile(filename)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(content, cfg); err != nil {
				return nil, fmt.Errorf("parse config %s: %w", filename, err)
			}
		case errors.Is(err, os.ErrNotExist):
		default:
			return nil, fmt.Errorf("read config %s: %w", filename, err)
		}
	}

	_ = godotenv.Load()
	applyEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate 校验配置
func (c *Config) Validate() error {
	switch c.Store.Driver {
	case "sqlite", "postgres", "redis", "mongo", "memory":
	default:
		return fmt.Errorf("unsupported store driver %q", c.Store.Driver)
	}
	if c.Catalog.LowStockThreshold < 0 {
		return errors.New("low_stock_threshold must not be negative")
	}
	if c.Catalog.RecentLimit <= 0 {
		c.Catalog.RecentLimit = 5
	}
	return nil
}

func applyEnv(cfg *Config) {
	cfg.Server.Port = getEnv("SERVER_PORT", cfg.Server.Port)
	cfg.Server.Env = getEnv("APP_ENV", cfg.Server.Env)
	cfg.Server.ShutdownTimeout = getEnvAsDuration("SHUTDOWN_TIMEOUT", cfg.Server.ShutdownTimeout)

	cfg.Store.Driver = getEnv("STORE_DRIVER", cfg.Store.Driver)
	cfg.Store.DSN = getEnv("STORE_DSN", cfg.Store.DSN)
	cfg.Store.Redis.Addr = getEnv("REDIS_ADDR", cfg.Store.Redis.Addr)
	cfg.Store.Redis.Password = getEnv("REDIS_PASSWORD", cfg.Store.Redis.Password)
	cfg.Store.Redis.DB = getEnvAsInt("REDIS_DB", cfg.Store.Redis.DB)
	cfg.Store.Mongo.URI = getEnv("MONGO_URI", cfg.Store.Mongo.URI)
	cfg.Store.Mongo.Database = getEnv("MONGO_DB", cfg.Store.Mongo.Database)

	cfg.Log.Level = getEnv("LOG_LEVEL", cfg.Log.Level)

	cfg.Checkout.URL = getEnv("CHECKOUT_URL", cfg.Checkout.URL)

	cfg.Admin.Email = getEnv("ADMIN_EMAIL", cfg.Admin.Email)
	cfg.Admin.Password = getEnv("ADMIN_PASSWORD", cfg.Admin.Password)

	cfg.Catalog.LowStockThreshold = getEnvAsInt("LOW_STOCK_THRESHOLD", cfg.Catalog.LowStockThreshold)
	cfg.Task.Enabled = getEnvAsBool("TASKS_ENABLED", cfg.Task.Enabled)
}

// ==================== 工具函数 ====================

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value, err := strconv.ParseBool(os.Getenv(key)); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value, err := time.ParseDuration(os.Getenv(key)); err == nil {
		return value
	}
	return defaultValue
}
