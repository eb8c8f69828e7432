package pricing

import (
	"context"
)

// Repository 价格历史仓储接口(依赖倒置原则)
// 设计说明:
// 1. 由domain层定义接口,infrastructure层实现
// 2. 价格历史只有Create和查询——没有Update/Delete（只增不改的台账）
type Repository interface {
	// Create 插入一条价格记录
	Create(ctx context.Context, rec *PriceRecord) error

	// FindLatestByProductID 查询某商品created_at最新的一条价格记录
	// 没有任何记录时返回ErrNoPriceHistory
	FindLatestByProductID(ctx context.Context, productID uint) (*PriceRecord, error)

	// ListByProductID 按时间倒序查询某商品的价格历史
	ListByProductID(ctx context.Context, productID uint, limit int) ([]*PriceRecord, error)
}
