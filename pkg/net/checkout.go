package net

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"handloom_market/pkg/log"
)

// ErrCheckoutRejected 结账服务拒绝了订单
var ErrCheckoutRejected = errors.New("checkout rejected")

// IdempotencyHeader 重试时结账服务据此去重
const IdempotencyHeader = "Idempotency-Key"

// CheckoutGateway 把订单交给结账服务，同一订单的 key 保持不变
type CheckoutGateway interface {
	Submit(ctx context.Context, key string, order any) error
}

// ==================== HTTP 网关 ====================

// HTTPCheckoutGateway POST 订单 JSON 到结账地址，2xx 视为受理
type HTTPCheckoutGateway struct {
	client *resty.Client
	url    string
}

func NewHTTPCheckoutGateway(client *resty.Client, url string) *HTTPCheckoutGateway {
	return &HTTPCheckoutGateway{client: client, url: url}
}

func (g *HTTPCheckoutGateway) Submit(ctx context.Context, key string, order any) error {
	resp, err := g.client.R().
		SetContext(ctx).
		SetHeader(IdempotencyHeader, key).
		SetBody(order).
		Post(g.url)
	if err != nil {
		return fmt.Errorf("submit order: %w", err)
	}
	if !resp.IsSuccess() {
		log.L.Warn("checkout rejected",
			zap.String("url", g.url),
			zap.Int("status", resp.StatusCode()),
			zap.ByteString("body", resp.Body()))
		return fmt.Errorf("%w: status %d", ErrCheckoutRejected, resp.StatusCode())
	}
	return nil
}

// ==================== 本地网关 ====================

// LocalCheckoutGateway 未配置结账地址时直接受理
type LocalCheckoutGateway struct{}

func (LocalCheckoutGateway) Submit(context.Context, string, any) error {
	return nil
}
