package catalog

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/autoparts/internal/domain/pricing"
	"github.com/xiebiao/autoparts/internal/domain/product"
)

func newTestAssembler(cache *fakeCache, prices *fakePriceSource, stocks *fakeStockSource, products *fakeProductSource) *Assembler {
	resolver := NewResolver(cache, prices, stocks, time.Hour, 5*time.Minute)
	return NewAssembler(cache, products, resolver, time.Hour)
}

func testProductSource() *fakeProductSource {
	return &fakeProductSource{
		products: map[uint]*product.Product{
			42: {
				ID: 42, SKU: "BRK-PAD-042", Name: "前刹车片",
				Description: "陶瓷刹车片", OEMCode: "45022-S5A-010",
				BrandID: 1, LineID: 5, Active: true,
			},
		},
		lookups: map[uint]*product.Lookups{
			42: {Brand: "博世", Line: "刹车系统", PrincipalImage: "http://cdn/brk-42.jpg"},
		},
	}
}

// TestInfo_MissAssemblesAndCaches 未命中时组装完整视图并回填缓存
func TestInfo_MissAssemblesAndCaches(t *testing.T) {
	cache := newFakeCache()
	prices := &fakePriceSource{records: map[uint]*pricing.PriceRecord{
		42: {ProductID: 42, Price: decimal.NewFromInt(85000)},
	}}
	stocks := &fakeStockSource{totals: map[uint]int{42: 12}}
	a := newTestAssembler(cache, prices, stocks, testProductSource())

	info, err := a.Info(context.Background(), 42)
	require.NoError(t, err)

	assert.Equal(t, uint(42), info.ID)
	assert.Equal(t, "BRK-PAD-042", info.SKU)
	assert.Equal(t, "博世", info.Brand)
	assert.Equal(t, "刹车系统", info.Line)
	assert.Equal(t, "http://cdn/brk-42.jpg", info.PrincipalImage)
	assert.True(t, info.Price.Equal(decimal.NewFromInt(85000)))
	assert.Equal(t, 12, info.Stock)
	assert.True(t, info.Active)
	assert.False(t, info.AssembledAt.IsZero(), "应记录组装时刻")

	assert.True(t, cache.has(InfoKey(42)), "聚合信息应回填缓存")
}

// TestInfo_HitReturnsVerbatim 命中时原样返回，不回头校验内嵌快照
func TestInfo_HitReturnsVerbatim(t *testing.T) {
	cache := newFakeCache()
	prices := &fakePriceSource{records: map[uint]*pricing.PriceRecord{
		42: {ProductID: 42, Price: decimal.NewFromInt(85000)},
	}}
	stocks := &fakeStockSource{totals: map[uint]int{42: 12}}
	products := testProductSource()
	a := newTestAssembler(cache, prices, stocks, products)

	first, err := a.Info(context.Background(), 42)
	require.NoError(t, err)

	// 回源数据变化，但info缓存未失效——命中必须返回旧快照
	prices.records[42] = &pricing.PriceRecord{ProductID: 42, Price: decimal.NewFromInt(99000)}
	stocks.totals[42] = 0

	second, err := a.Info(context.Background(), 42)
	require.NoError(t, err)
	assert.True(t, second.Price.Equal(first.Price), "命中时应返回缓存快照")
	assert.Equal(t, first.Stock, second.Stock)
	assert.Equal(t, 1, prices.calls, "命中时不应回源")
}

// TestInfo_InvalidateThenReassemble 失效后重新组装出最新视图
func TestInfo_InvalidateThenReassemble(t *testing.T) {
	cache := newFakeCache()
	prices := &fakePriceSource{records: map[uint]*pricing.PriceRecord{
		42: {ProductID: 42, Price: decimal.NewFromInt(85000)},
	}}
	stocks := &fakeStockSource{totals: map[uint]int{42: 12}}
	a := newTestAssembler(cache, prices, stocks, testProductSource())

	_, err := a.Info(context.Background(), 42)
	require.NoError(t, err)

	// 调价并发出写事件（价格key组整体失效，包含info）
	prices.records[42] = &pricing.PriceRecord{ProductID: 42, Price: decimal.NewFromInt(99000)}
	NewInvalidator(cache).OnWrite(context.Background(), NewPriceInserted(42))

	info, err := a.Info(context.Background(), 42)
	require.NoError(t, err)
	assert.True(t, info.Price.Equal(decimal.NewFromInt(99000)), "失效后应组装最新价格")
}

// TestInfo_ProductNotFound 身份行不存在直接返回领域错误
func TestInfo_ProductNotFound(t *testing.T) {
	a := newTestAssembler(newFakeCache(), &fakePriceSource{}, &fakeStockSource{}, testProductSource())

	_, err := a.Info(context.Background(), 404)
	assert.ErrorIs(t, err, product.ErrProductNotFound)
}

// TestInfo_UnpricedProduct 尚未定价的商品聚合信息价格为0
func TestInfo_UnpricedProduct(t *testing.T) {
	cache := newFakeCache()
	a := newTestAssembler(cache, &fakePriceSource{records: map[uint]*pricing.PriceRecord{}},
		&fakeStockSource{totals: map[uint]int{42: 3}}, testProductSource())

	info, err := a.Info(context.Background(), 42)
	require.NoError(t, err)
	assert.True(t, info.Price.IsZero())
	assert.Equal(t, 3, info.Stock)
}

// TestInfo_CorruptCacheReassembles 缓存里不是合法JSON时回源重组装
func TestInfo_CorruptCacheReassembles(t *testing.T) {
	cache := newFakeCache()
	cache.data[InfoKey(42)] = "{broken json"
	prices := &fakePriceSource{records: map[uint]*pricing.PriceRecord{
		42: {ProductID: 42, Price: decimal.NewFromInt(85000)},
	}}
	a := newTestAssembler(cache, prices, &fakeStockSource{totals: map[uint]int{42: 1}}, testProductSource())

	info, err := a.Info(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, "BRK-PAD-042", info.SKU)
	assert.Contains(t, cache.deleted, InfoKey(42), "损坏的缓存值应被清理")
}
