package catalog

import (
	"context"
	"errors"
	"log"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/xiebiao/autoparts/internal/domain/pricing"
	"github.com/xiebiao/autoparts/pkg/metrics"
)

// PriceSource 价格回源接口（Resolver的最小依赖）
// 由pricing.Repository满足
type PriceSource interface {
	FindLatestByProductID(ctx context.Context, productID uint) (*pricing.PriceRecord, error)
}

// StockSource 库存回源接口（Resolver的最小依赖）
// 由stock.Repository满足
type StockSource interface {
	SumActiveByProductID(ctx context.Context, productID uint) (int, error)
}

// Resolver 派生值解析器
//
// 回答"商品X当前的价格/库存是多少"——旁路缓存（Cache-Aside）：
// 1. 先查缓存，命中直接返回
// 2. 未命中回源数据库（价格=最新历史记录，库存=Active门店聚合求和）
// 3. 回填缓存后返回
//
// 错误策略（统一，不区分价格/库存）:
// - 数据库错误一律向上抛，绝不静默降级为0——0是"尚未定价/无库存"的合法值，
//   不能和"查询失败"混为一谈
// - 缓存读错误降级为回源（缓存永远不是权威数据），写错误只记warn日志
//
// 并发说明：两个请求同时未命中会各自回源并写入相同的值，
// 幂等覆盖无害，不做per-key锁
type Resolver struct {
	cache    Cache
	prices   PriceSource
	stocks   StockSource
	priceTTL time.Duration
	stockTTL time.Duration
}

// NewResolver 创建解析器
// TTL设计：价格变动少TTL长（1小时），库存变动频繁TTL短（5分钟）
func NewResolver(cache Cache, prices PriceSource, stocks StockSource, priceTTL, stockTTL time.Duration) *Resolver {
	return &Resolver{
		cache:    cache,
		prices:   prices,
		stocks:   stocks,
		priceTTL: priceTTL,
		stockTTL: stockTTL,
	}
}

// CurrentPrice 查询商品当前价格
// 返回值已做两位小数展示取整；没有价格记录返回0（合法状态，不是错误）
func (r *Resolver) CurrentPrice(ctx context.Context, productID uint) (decimal.Decimal, error) {
	key := PriceKey(productID)

	// 1. 查缓存
	if val, err := r.cache.Get(ctx, key); err == nil {
		if d, perr := decimal.NewFromString(val); perr == nil {
			metrics.CacheHit("price")
			return pricing.RoundDisplay(d), nil
		}
		// 缓存值损坏：当作未命中回源，顺手删掉脏数据
		log.Printf("[warn] 价格缓存值损坏 product_id=%d value=%q", productID, val)
		_ = r.cache.Del(ctx, key)
	} else if !errors.Is(err, ErrCacheMiss) {
		// 缓存故障不阻断读路径，回源兜底
		log.Printf("[warn] 读取价格缓存失败 product_id=%d: %v", productID, err)
	}
	metrics.CacheMiss("price")

	// 2. 回源：created_at最新的一条价格记录
	rec, err := r.prices.FindLatestByProductID(ctx, productID)
	if err != nil {
		if errors.Is(err, pricing.ErrNoPriceHistory) {
			// 尚未定价是合法状态
			return decimal.Zero, nil
		}
		log.Printf("[error] 查询价格历史失败 product_id=%d: %v", productID, err)
		return decimal.Zero, err
	}

	price := pricing.RoundDisplay(rec.Price)

	// 3. 回填缓存（只缓存正价格；写失败不影响返回）
	if price.IsPositive() {
		if err := r.cache.Set(ctx, key, price.String(), r.priceTTL); err != nil {
			log.Printf("[warn] 写入价格缓存失败 product_id=%d: %v", productID, err)
		}
	}

	return price, nil
}

// CurrentStock 查询商品当前总库存
// 总库存 = 所有Active门店聚合的Current之和；没有任何门店记录返回0
func (r *Resolver) CurrentStock(ctx context.Context, productID uint) (int, error) {
	key := StockKey(productID)

	// 1. 查缓存
	if val, err := r.cache.Get(ctx, key); err == nil {
		if n, perr := strconv.Atoi(val); perr == nil {
			metrics.CacheHit("stock")
			return n, nil
		}
		log.Printf("[warn] 库存缓存值损坏 product_id=%d value=%q", productID, val)
		_ = r.cache.Del(ctx, key)
	} else if !errors.Is(err, ErrCacheMiss) {
		log.Printf("[warn] 读取库存缓存失败 product_id=%d: %v", productID, err)
	}
	metrics.CacheMiss("stock")

	// 2. 回源：Active门店聚合求和
	total, err := r.stocks.SumActiveByProductID(ctx, productID)
	if err != nil {
		log.Printf("[error] 汇总门店库存失败 product_id=%d: %v", productID, err)
		return 0, err
	}

	// 3. 回填缓存
	if err := r.cache.Set(ctx, key, strconv.Itoa(total), r.stockTTL); err != nil {
		log.Printf("[warn] 写入库存缓存失败 product_id=%d: %v", productID, err)
	}

	return total, nil
}
