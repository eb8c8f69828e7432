package catalog

import (
	"context"
	"log"

	"github.com/xiebiao/autoparts/pkg/metrics"
)

// Invalidator 缓存失效协调器
//
// 职责：数据源写入成功后，删除相关的派生缓存，保证后续读取回源重算。
//
// 契约:
// 1. 失效由写路径在提交成功后显式触发（消费WriteEvent），与写同步执行
// 2. 删除不存在的key是no-op，重复失效幂等
// 3. 删除失败只记warn日志，绝不让失效失败中断触发它的写操作
//    ——代价是陈旧窗口延长到TTL，属于可接受的有界陈旧
// 4. DB提交与缓存删除之间进程崩溃同样留下有界陈旧窗口（TTL兜底），
//    这是设计取舍，不是正确性缺陷
type Invalidator struct {
	cache Cache
}

// NewInvalidator 创建失效协调器
func NewInvalidator(cache Cache) *Invalidator {
	return &Invalidator{cache: cache}
}

// Invalidate 失效单个商品的全部派生缓存
// 删除 product:{id}、product:{id}:info、product:{id}:price、product:{id}:stock
// 暴露给批量操作和外部同步任务手动调用
func (i *Invalidator) Invalidate(ctx context.Context, productID uint) {
	keys := ProductKeys(productID)
	if err := i.cache.Del(ctx, keys...); err != nil {
		// 只告警不中断：失效失败意味着陈旧窗口延长到TTL
		log.Printf("[warn] 缓存失效失败 product_id=%d keys=%v: %v", productID, keys, err)
		return
	}
	metrics.CacheInvalidation(len(keys))
}

// InvalidateMany 失效一组商品的派生缓存
func (i *Invalidator) InvalidateMany(ctx context.Context, productIDs []uint) {
	for _, id := range productIDs {
		i.Invalidate(ctx, id)
	}
}

// InvalidateLineFilters 失效产品线筛选项缓存
// lineIDs为空时退化为模式删除（无法枚举受影响范围时宁可多删）
func (i *Invalidator) InvalidateLineFilters(ctx context.Context, lineIDs []uint) {
	if len(lineIDs) == 0 {
		if err := i.cache.DelPattern(ctx, LineFiltersPattern); err != nil {
			log.Printf("[warn] 模式失效失败 pattern=%s: %v", LineFiltersPattern, err)
		}
		return
	}

	for _, lineID := range lineIDs {
		if err := i.cache.Del(ctx, LineFiltersKey(lineID)); err != nil {
			log.Printf("[warn] 缓存失效失败 line_id=%d: %v", lineID, err)
		}
	}
}

// OnWrite 消费写事件
// 写路径（用例层）在事务提交成功后调用，替代隐藏在ORM钩子里的隐式失效
func (i *Invalidator) OnWrite(ctx context.Context, ev WriteEvent) {
	switch ev.Kind {
	case PriceInserted, StockAdjusted:
		i.InvalidateMany(ctx, ev.ProductIDs)

	case BulkUpdated:
		if len(ev.ProductIDs) > 0 {
			// 能精确枚举就精确失效
			i.InvalidateMany(ctx, ev.ProductIDs)
		}
		// 批量操作总是连带失效产品线筛选项
		// （ProductIDs为空时InvalidateLineFilters退化为模式删除）
		i.InvalidateLineFilters(ctx, ev.LineIDs)

	default:
		log.Printf("[warn] 未知写事件类型: %s", ev.Kind)
	}
}
