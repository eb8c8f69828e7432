package catalog

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrCacheMiss 缓存未命中
// 设计说明：未命中不是故障，调用方据此回源查询数据库
var ErrCacheMiss = errors.New("缓存未命中")

// Cache 缓存存储接口（依赖倒置）
// 设计说明:
// 1. 由domain层定义接口，infrastructure层用Redis实现
// 2. 缓存只保存派生副本，永远不是数据源——未命中或失效后必须回源重算
// 3. 便于单元测试（内存map即可实现）
type Cache interface {
	// Get 读取缓存值，不存在时返回ErrCacheMiss
	Get(ctx context.Context, key string) (string, error)

	// Set 写入缓存值并设置过期时间
	Set(ctx context.Context, key, value string, ttl time.Duration) error

	// Del 删除一个或多个key（删除不存在的key不是错误）
	Del(ctx context.Context, keys ...string) error

	// DelPattern 按glob模式批量删除（如 product-line:*:filters）
	DelPattern(ctx context.Context, pattern string) error
}

// =========================================
// Key设计规范
// =========================================
// - product:{id}          商品基础缓存
// - product:{id}:price    当前价格（派生自价格历史）
// - product:{id}:stock    当前库存（派生自门店库存汇总）
// - product:{id}:info     商品聚合信息（价格+库存+关联查询）
// - product-line:{id}:filters 产品线筛选项缓存
// 使用冒号分隔命名空间（Redis规范），便于按前缀管理和监控

// ProductKey 商品基础缓存key
func ProductKey(productID uint) string {
	return fmt.Sprintf("product:%d", productID)
}

// PriceKey 当前价格缓存key
func PriceKey(productID uint) string {
	return fmt.Sprintf("product:%d:price", productID)
}

// StockKey 当前库存缓存key
func StockKey(productID uint) string {
	return fmt.Sprintf("product:%d:stock", productID)
}

// InfoKey 商品聚合信息缓存key
func InfoKey(productID uint) string {
	return fmt.Sprintf("product:%d:info", productID)
}

// LineFiltersKey 产品线筛选项缓存key
func LineFiltersKey(lineID uint) string {
	return fmt.Sprintf("product-line:%d:filters", lineID)
}

// LineFiltersPattern 产品线筛选项的通配模式
// 用于无法精确枚举受影响id的批量写操作（宁可多删，不可脏读）
const LineFiltersPattern = "product-line:*:filters"

// ProductKeys 一个商品关联的全部派生缓存key
// 任何价格/库存写入都必须删除这一组key
func ProductKeys(productID uint) []string {
	return []string{
		ProductKey(productID),
		InfoKey(productID),
		PriceKey(productID),
		StockKey(productID),
	}
}
