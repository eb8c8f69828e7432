// Package events 定义发布到RabbitMQ的领域事件载荷
// 设计说明:
// 1. 发布方（用例层）和消费方（通知消费者）共用同一组结构体，避免字段漂移
// 2. 路由键按"实体.动作"命名，消费方按需绑定
package events

import "time"

// 路由键定义
const (
	RoutingPriceChanged  = "price.changed"
	RoutingStockAdjusted = "stock.adjusted"
	RoutingStockLow      = "stock.low"
)

// PriceChanged 价格变动事件
type PriceChanged struct {
	ProductID uint      `json:"product_id"`
	SKU       string    `json:"sku"`
	OldPrice  string    `json:"old_price"` // decimal字符串，无历史时为空串
	NewPrice  string    `json:"new_price"`
	ChangedAt time.Time `json:"changed_at"`
}

// StockAdjusted 库存变动事件
type StockAdjusted struct {
	ProductID     uint      `json:"product_id"`
	AgencyID      uint      `json:"agency_id"`
	Type          string    `json:"type"` // IN | OUT | ADJUST
	Quantity      int       `json:"quantity"`
	PreviousStock int       `json:"previous_stock"`
	CurrentStock  int       `json:"current_stock"`
	AdjustedAt    time.Time `json:"adjusted_at"`
}

// StockLow 低库存告警事件
type StockLow struct {
	ProductID uint      `json:"product_id"`
	AgencyID  uint      `json:"agency_id"`
	Current   int       `json:"current"`
	Threshold int       `json:"threshold"`
	RaisedAt  time.Time `json:"raised_at"`
}
