package merchant

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/xiebiao/autoparts/internal/domain/merchant"
	"github.com/xiebiao/autoparts/internal/infrastructure/config"
	"github.com/xiebiao/autoparts/pkg/circuitbreaker"
	apperrors "github.com/xiebiao/autoparts/pkg/errors"
	"github.com/xiebiao/autoparts/pkg/metrics"
)

// Client Google Merchant Content API客户端
// 设计说明:
// 1. 实现domain/merchant.CatalogAPI接口
// 2. 外部HTTP调用包在熔断器里——Merchant接口抖动时快速失败，
//    不把延迟传导给商品写路径
// 3. 同步失败转换为ErrMerchantError业务错误，由调用方决定重试策略
type Client struct {
	endpoint   string
	merchantID string
	httpClient *http.Client
	breaker    *circuitbreaker.CircuitBreaker
}

// NewClient 创建Merchant客户端
func NewClient(cfg *config.Config) merchant.CatalogAPI {
	timeout := cfg.Merchant.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &Client{
		endpoint:   cfg.Merchant.Endpoint,
		merchantID: cfg.Merchant.MerchantID,
		httpClient: &http.Client{Timeout: timeout},
		breaker: circuitbreaker.NewCircuitBreaker("merchant", circuitbreaker.Config{
			MaxRequests: 3,
			Interval:    60 * time.Second,
			Timeout:     30 * time.Second,
			ReadyToTrip: func(counts circuitbreaker.Counts) bool {
				// 连续5次失败后熔断
				return counts.ConsecutiveFailures >= 5
			},
		}),
	}
}

// Upsert 创建或更新目录条目
func (c *Client) Upsert(ctx context.Context, entry *merchant.Entry) error {
	body, err := json.Marshal(entry)
	if err != nil {
		return apperrors.Wrap(err, "序列化Merchant条目失败")
	}

	url := fmt.Sprintf("%s/content/v2.1/%s/products", c.endpoint, c.merchantID)

	err = c.breaker.Execute(func() error {
		return c.do(ctx, http.MethodPost, url, body)
	})
	if err != nil {
		metrics.MerchantSynced("failure")
		log.Printf("[error] Merchant同步失败 offer_id=%s: %v", entry.OfferID, err)
		return apperrors.ErrMerchantError
	}

	metrics.MerchantSynced("success")
	return nil
}

// Delete 删除目录条目
func (c *Client) Delete(ctx context.Context, offerID string) error {
	url := fmt.Sprintf("%s/content/v2.1/%s/products/%s", c.endpoint, c.merchantID, offerID)

	err := c.breaker.Execute(func() error {
		return c.do(ctx, http.MethodDelete, url, nil)
	})
	if err != nil {
		metrics.MerchantSynced("failure")
		log.Printf("[error] Merchant删除失败 offer_id=%s: %v", offerID, err)
		return apperrors.ErrMerchantError
	}

	metrics.MerchantSynced("success")
	return nil
}

// do 执行HTTP请求
func (c *Client) do(ctx context.Context, method, url string, body []byte) error {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return fmt.Errorf("构建请求失败: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("请求Merchant接口失败: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		// 读取响应体帮助排障（截断，避免日志爆炸）
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("Merchant接口返回%d: %s", resp.StatusCode, string(data))
	}

	return nil
}
