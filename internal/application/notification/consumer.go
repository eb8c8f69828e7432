package notification

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/xiebiao/autoparts/internal/application/events"
	"github.com/xiebiao/autoparts/internal/domain/notification"
)

// Consumer 通知消费者
// 消费价格/库存事件，落库成站内通知供运营后台轮询。
// 设计说明:
// 1. 每个路由键绑定独立队列，handler按类型反序列化（pkg/mq的handler不带路由键）
// 2. 反序列化失败返回error → mq层Nack不重入队，坏消息不无限重试
// 3. 落库失败返回error → Nack重入队，等待数据库恢复后重试
type Consumer struct {
	repo notification.Repository
}

// NewConsumer 创建通知消费者
func NewConsumer(repo notification.Repository) *Consumer {
	return &Consumer{repo: repo}
}

// HandlePriceChanged 处理价格变动事件
func (c *Consumer) HandlePriceChanged(body []byte) error {
	var ev events.PriceChanged
	if err := json.Unmarshal(body, &ev); err != nil {
		return fmt.Errorf("反序列化价格变动事件失败: %w", err)
	}

	title := fmt.Sprintf("商品 %s 价格变动", ev.SKU)
	var detail string
	if ev.OldPrice == "" {
		detail = fmt.Sprintf("首次定价: %s", ev.NewPrice)
	} else {
		detail = fmt.Sprintf("价格由 %s 调整为 %s", ev.OldPrice, ev.NewPrice)
	}

	n := notification.NewNotification(notification.KindPriceChanged, ev.ProductID, title, detail)
	return c.repo.Create(context.Background(), n)
}

// HandleStockAdjusted 处理库存变动事件
func (c *Consumer) HandleStockAdjusted(body []byte) error {
	var ev events.StockAdjusted
	if err := json.Unmarshal(body, &ev); err != nil {
		return fmt.Errorf("反序列化库存变动事件失败: %w", err)
	}

	title := fmt.Sprintf("商品 %d 库存变动(%s)", ev.ProductID, ev.Type)
	detail := fmt.Sprintf("门店 %d 库存 %d → %d", ev.AgencyID, ev.PreviousStock, ev.CurrentStock)

	n := notification.NewNotification(notification.KindStockAdjusted, ev.ProductID, title, detail)
	return c.repo.Create(context.Background(), n)
}

// HandleStockLow 处理低库存告警事件
func (c *Consumer) HandleStockLow(body []byte) error {
	var ev events.StockLow
	if err := json.Unmarshal(body, &ev); err != nil {
		return fmt.Errorf("反序列化低库存事件失败: %w", err)
	}

	title := fmt.Sprintf("商品 %d 低库存告警", ev.ProductID)
	detail := fmt.Sprintf("门店 %d 当前库存 %d，低于阈值 %d，请及时补货", ev.AgencyID, ev.Current, ev.Threshold)

	n := notification.NewNotification(notification.KindLowStock, ev.ProductID, title, detail)
	return c.repo.Create(context.Background(), n)
}
