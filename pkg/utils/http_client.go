package utils

import (
	"time"

	"github.com/go-resty/resty/v2"
)

// ClientOptions HTTP 客户端选项
type ClientOptions struct {
	Timeout   time.Duration
	Retries   int
	Debug     bool
	ProxyURL  string
	UserAgent string
}

// NewHTTPClient 创建配置好超时、重试和代理的 Resty 客户端
// 它是全系统统一的出站请求入口
func NewHTTPClient(opts ClientOptions) *resty.Client {
	if opts.Timeout <= 0 {
		opts.Timeout = 15 * time.Second
	}
	if opts.UserAgent == "" {
		opts.UserAgent = "Handloom-Market/1.0"
	}

	client := resty.New().
		SetDebug(opts.Debug).
		SetTimeout(opts.Timeout).
		SetHeader("User-Agent", opts.UserAgent).
		SetHeader("Content-Type", "application/json")

	if opts.Retries > 0 {
		client.SetRetryCount(opts.Retries).
			SetRetryWaitTime(200 * time.Millisecond).
			AddRetryCondition(func(r *resty.Response, err error) bool {
				return err != nil || r.StatusCode() >= 500
			})
	}
	if opts.ProxyURL != "" {
		client.SetProxy(opts.ProxyURL)
	}
	return client
}
