package notification

import (
	"context"
	"time"
)

// Kind 通知类型
type Kind string

const (
	KindPriceChanged  Kind = "price_changed"  // 价格变动
	KindLowStock      Kind = "low_stock"      // 库存低于阈值
	KindStockAdjusted Kind = "stock_adjusted" // 库存变动
)

// Notification 站内通知实体
// 由MQ消费者根据价格/库存事件落库，运营后台轮询展示
type Notification struct {
	ID        uint
	Kind      Kind
	ProductID uint
	Title     string
	Body      string
	Read      bool
	CreatedAt time.Time
}

// NewNotification 创建通知(工厂方法)
func NewNotification(kind Kind, productID uint, title, body string) *Notification {
	return &Notification{
		Kind:      kind,
		ProductID: productID,
		Title:     title,
		Body:      body,
		Read:      false,
		CreatedAt: time.Now(),
	}
}

// Repository 通知仓储接口
type Repository interface {
	// Create 创建通知
	Create(ctx context.Context, n *Notification) error

	// ListUnread 查询未读通知（按时间倒序，最多limit条）
	ListUnread(ctx context.Context, limit int) ([]*Notification, error)

	// MarkRead 标记已读
	MarkRead(ctx context.Context, id uint) error
}
