package catalog

import (
	"context"
	"errors"
	"path"
	"sync"
	"time"

	"github.com/xiebiao/autoparts/internal/domain/pricing"
	"github.com/xiebiao/autoparts/internal/domain/product"
)

// 测试辅助：内存实现的缓存与回源，单元测试不依赖Redis/MySQL

// fakeCache 内存缓存实现
// 记录调用轨迹，便于断言"删了哪些key"、"写了几次"
type fakeCache struct {
	mu      sync.Mutex
	data    map[string]string
	deleted []string
	sets    int
	getErr  error // 注入Get故障
	setErr  error // 注入Set故障
	delErr  error // 注入Del故障
}

func newFakeCache() *fakeCache {
	return &fakeCache{data: make(map[string]string)}
}

func (f *fakeCache) Get(_ context.Context, key string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return "", f.getErr
	}
	val, ok := f.data[key]
	if !ok {
		return "", ErrCacheMiss
	}
	return val, nil
}

func (f *fakeCache) Set(_ context.Context, key, value string, _ time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.setErr != nil {
		return f.setErr
	}
	f.data[key] = value
	f.sets++
	return nil
}

func (f *fakeCache) Del(_ context.Context, keys ...string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.delErr != nil {
		return f.delErr
	}
	for _, k := range keys {
		delete(f.data, k)
		f.deleted = append(f.deleted, k)
	}
	return nil
}

func (f *fakeCache) DelPattern(_ context.Context, pattern string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.delErr != nil {
		return f.delErr
	}
	for k := range f.data {
		if ok, _ := path.Match(pattern, k); ok {
			delete(f.data, k)
			f.deleted = append(f.deleted, k)
		}
	}
	return nil
}

func (f *fakeCache) has(key string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.data[key]
	return ok
}

// fakePriceSource 内存价格回源
type fakePriceSource struct {
	records map[uint]*pricing.PriceRecord
	err     error
	calls   int
}

func (f *fakePriceSource) FindLatestByProductID(_ context.Context, productID uint) (*pricing.PriceRecord, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	rec, ok := f.records[productID]
	if !ok {
		return nil, pricing.ErrNoPriceHistory
	}
	return rec, nil
}

// fakeStockSource 内存库存回源
type fakeStockSource struct {
	totals map[uint]int
	err    error
	calls  int
}

func (f *fakeStockSource) SumActiveByProductID(_ context.Context, productID uint) (int, error) {
	f.calls++
	if f.err != nil {
		return 0, f.err
	}
	return f.totals[productID], nil
}

// fakeProductSource 内存商品回源
type fakeProductSource struct {
	products map[uint]*product.Product
	lookups  map[uint]*product.Lookups
}

func (f *fakeProductSource) FindByID(_ context.Context, id uint) (*product.Product, error) {
	p, ok := f.products[id]
	if !ok {
		return nil, product.ErrProductNotFound
	}
	return p, nil
}

func (f *fakeProductSource) FindLookups(_ context.Context, id uint) (*product.Lookups, error) {
	l, ok := f.lookups[id]
	if !ok {
		return nil, errors.New("lookup查询失败")
	}
	return l, nil
}
