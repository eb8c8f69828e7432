package catalog

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/autoparts/internal/domain/pricing"
)

func newTestResolver(cache Cache, prices *fakePriceSource, stocks *fakeStockSource) *Resolver {
	return NewResolver(cache, prices, stocks, time.Hour, 5*time.Minute)
}

// TestCurrentPrice_MissThenHit 未命中回源，再次查询命中缓存
func TestCurrentPrice_MissThenHit(t *testing.T) {
	cache := newFakeCache()
	prices := &fakePriceSource{records: map[uint]*pricing.PriceRecord{
		42: {ProductID: 42, Price: decimal.NewFromInt(12000)},
	}}
	stocks := &fakeStockSource{}
	r := newTestResolver(cache, prices, stocks)

	// 第一次：未命中，回源并回填
	got, err := r.CurrentPrice(context.Background(), 42)
	require.NoError(t, err)
	assert.True(t, got.Equal(decimal.NewFromInt(12000)), "应返回最新价格，got=%s", got)
	assert.Equal(t, 1, prices.calls, "应该回源一次")
	assert.True(t, cache.has(PriceKey(42)), "应回填缓存")

	// 第二次：命中缓存，不再回源
	got2, err := r.CurrentPrice(context.Background(), 42)
	require.NoError(t, err)
	assert.True(t, got2.Equal(got), "两次结果应一致")
	assert.Equal(t, 1, prices.calls, "命中后不应再回源")
}

// TestCurrentPrice_LatestRecordWins 价格历史只增不改，当前价=最新一条
func TestCurrentPrice_LatestRecordWins(t *testing.T) {
	cache := newFakeCache()
	prices := &fakePriceSource{records: map[uint]*pricing.PriceRecord{
		42: {ProductID: 42, Price: decimal.NewFromInt(10000)},
	}}
	r := newTestResolver(cache, prices, &fakeStockSource{})

	got, err := r.CurrentPrice(context.Background(), 42)
	require.NoError(t, err)
	assert.True(t, got.Equal(decimal.NewFromInt(10000)))

	// 模拟调价：回源数据变成12000，失效后应读到新值
	prices.records[42] = &pricing.PriceRecord{ProductID: 42, Price: decimal.NewFromInt(12000)}
	require.NoError(t, cache.Del(context.Background(), PriceKey(42)))

	got2, err := r.CurrentPrice(context.Background(), 42)
	require.NoError(t, err)
	assert.True(t, got2.Equal(decimal.NewFromInt(12000)), "失效后应返回最新价格")
}

// TestCurrentPrice_NoHistory 尚未定价返回0，不是错误
func TestCurrentPrice_NoHistory(t *testing.T) {
	cache := newFakeCache()
	r := newTestResolver(cache, &fakePriceSource{records: map[uint]*pricing.PriceRecord{}}, &fakeStockSource{})

	got, err := r.CurrentPrice(context.Background(), 99)
	require.NoError(t, err)
	assert.True(t, got.IsZero(), "无价格记录应返回0")
	assert.False(t, cache.has(PriceKey(99)), "0价格不应回填缓存")
}

// TestCurrentPrice_StoreError 数据库错误必须向上抛，不能降级为0
func TestCurrentPrice_StoreError(t *testing.T) {
	dbErr := errors.New("connection refused")
	r := newTestResolver(newFakeCache(), &fakePriceSource{err: dbErr}, &fakeStockSource{})

	_, err := r.CurrentPrice(context.Background(), 42)
	assert.ErrorIs(t, err, dbErr, "回源失败必须暴露错误")
}

// TestCurrentPrice_CorruptCacheValue 缓存值损坏时回源并清理脏数据
func TestCurrentPrice_CorruptCacheValue(t *testing.T) {
	cache := newFakeCache()
	cache.data[PriceKey(42)] = "not-a-number"
	prices := &fakePriceSource{records: map[uint]*pricing.PriceRecord{
		42: {ProductID: 42, Price: decimal.NewFromInt(9000)},
	}}
	r := newTestResolver(cache, prices, &fakeStockSource{})

	got, err := r.CurrentPrice(context.Background(), 42)
	require.NoError(t, err)
	assert.True(t, got.Equal(decimal.NewFromInt(9000)), "损坏值应当作未命中回源")
	assert.Contains(t, cache.deleted, PriceKey(42), "脏数据应被删除")
}

// TestCurrentPrice_CacheGetFailure 缓存故障降级为回源，不阻断读路径
func TestCurrentPrice_CacheGetFailure(t *testing.T) {
	cache := newFakeCache()
	cache.getErr = errors.New("redis: connection pool timeout")
	prices := &fakePriceSource{records: map[uint]*pricing.PriceRecord{
		42: {ProductID: 42, Price: decimal.NewFromInt(9000)},
	}}
	r := newTestResolver(cache, prices, &fakeStockSource{})

	got, err := r.CurrentPrice(context.Background(), 42)
	require.NoError(t, err, "缓存故障不应导致读失败")
	assert.True(t, got.Equal(decimal.NewFromInt(9000)))
}

// TestCurrentStock_SumActiveOnly 总库存=Active门店之和（由回源SQL保证，
// 这里验证Resolver透传聚合值并回填缓存）
func TestCurrentStock_SumActiveOnly(t *testing.T) {
	cache := newFakeCache()
	stocks := &fakeStockSource{totals: map[uint]int{7: 8}} // 门店A=5 + 门店B=3，Inactive门店的100不计入
	r := newTestResolver(cache, &fakePriceSource{}, stocks)

	got, err := r.CurrentStock(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, 8, got)
	assert.Equal(t, "8", cache.data[StockKey(7)], "应回填聚合值")

	// 第二次命中缓存
	_, err = r.CurrentStock(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, 1, stocks.calls, "命中后不应再回源")
}

// TestCurrentStock_ZeroIsCached 零库存是合法值，照常缓存
// （与价格不同：0价格代表"尚未定价"不缓存，0库存代表"缺货"要缓存，
// 否则缺货商品会反复穿透回源）
func TestCurrentStock_ZeroIsCached(t *testing.T) {
	cache := newFakeCache()
	stocks := &fakeStockSource{totals: map[uint]int{}}
	r := newTestResolver(cache, &fakePriceSource{}, stocks)

	got, err := r.CurrentStock(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, 0, got)
	assert.True(t, cache.has(StockKey(7)), "零库存应回填缓存")
}

// TestCurrentStock_StoreError 数据库错误向上抛
func TestCurrentStock_StoreError(t *testing.T) {
	dbErr := errors.New("lock wait timeout")
	r := newTestResolver(newFakeCache(), &fakePriceSource{}, &fakeStockSource{err: dbErr})

	_, err := r.CurrentStock(context.Background(), 7)
	assert.ErrorIs(t, err, dbErr)
}

// TestCurrentStock_SetFailureDoesNotBlock 回填失败不影响返回值
func TestCurrentStock_SetFailureDoesNotBlock(t *testing.T) {
	cache := newFakeCache()
	cache.setErr = errors.New("redis: OOM")
	stocks := &fakeStockSource{totals: map[uint]int{7: 8}}
	r := newTestResolver(cache, &fakePriceSource{}, stocks)

	got, err := r.CurrentStock(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, 8, got)
}
