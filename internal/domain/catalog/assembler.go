package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/xiebiao/autoparts/internal/domain/product"
	"github.com/xiebiao/autoparts/pkg/metrics"
)

// ProductSource 商品身份与关联查询接口（Assembler的最小依赖）
// 由product.Repository满足
type ProductSource interface {
	FindByID(ctx context.Context, id uint) (*product.Product, error)
	FindLookups(ctx context.Context, id uint) (*product.Lookups, error)
}

// Info 商品聚合信息
// API/展示层消费的反范式视图：身份字段 + 解析后的价格/库存 + 关联查询
// 整体以JSON缓存在 product:{id}:info
type Info struct {
	ID             uint            `json:"id"`
	SKU            string          `json:"sku"`
	Name           string          `json:"name"`
	Description    string          `json:"description"`
	OEMCode        string          `json:"oem_code,omitempty"`
	Brand          string          `json:"brand"`
	Line           string          `json:"line"`
	PrincipalImage string          `json:"principal_image,omitempty"`
	Price          decimal.Decimal `json:"price"`
	Stock          int             `json:"stock"`
	Active         bool            `json:"active"`
	AssembledAt    time.Time       `json:"assembled_at"` // 组装时刻（嵌入值的快照时间）
}

// Assembler 聚合信息组装器
//
// 缓存策略:
// - TTL与价格一致（1小时）——info嵌入了组装时刻的价格/库存快照
// - 命中时原样返回，不回头校验内嵌的价格/库存是否仍然最新：
//   陈旧由TTL和写失效双重兜底，这是显式的取舍
// - 未命中时：身份行 + 并发解析价格/库存/关联查询 → 组装 → 回填缓存
//
// 状态机（每个商品）:
// 未缓存 → 已缓存(新鲜) → 已缓存(过期,惰性淘汰) → 未缓存
// 写失效可随时强制 已缓存 → 未缓存
type Assembler struct {
	cache    Cache
	products ProductSource
	resolver *Resolver
	infoTTL  time.Duration
}

// NewAssembler 创建组装器
func NewAssembler(cache Cache, products ProductSource, resolver *Resolver, infoTTL time.Duration) *Assembler {
	return &Assembler{
		cache:    cache,
		products: products,
		resolver: resolver,
		infoTTL:  infoTTL,
	}
}

// Info 查询商品聚合信息
func (a *Assembler) Info(ctx context.Context, productID uint) (*Info, error) {
	key := InfoKey(productID)

	// 1. 查缓存，命中原样返回
	if val, err := a.cache.Get(ctx, key); err == nil {
		var info Info
		if uerr := json.Unmarshal([]byte(val), &info); uerr == nil {
			metrics.CacheHit("info")
			return &info, nil
		}
		log.Printf("[warn] 聚合信息缓存值损坏 product_id=%d", productID)
		_ = a.cache.Del(ctx, key)
	} else if !errors.Is(err, ErrCacheMiss) {
		log.Printf("[warn] 读取聚合信息缓存失败 product_id=%d: %v", productID, err)
	}
	metrics.CacheMiss("info")

	// 2. 身份行（不存在直接返回ErrProductNotFound）
	p, err := a.products.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	// 3. 并发解析价格、库存、关联查询
	// 三路互不依赖，各自是独立的异步I/O
	var (
		wg        sync.WaitGroup
		price     decimal.Decimal
		stockQty  int
		lookups   *product.Lookups
		priceErr  error
		stockErr  error
		lookupErr error
	)

	wg.Add(3)
	go func() {
		defer wg.Done()
		price, priceErr = a.resolver.CurrentPrice(ctx, productID)
	}()
	go func() {
		defer wg.Done()
		stockQty, stockErr = a.resolver.CurrentStock(ctx, productID)
	}()
	go func() {
		defer wg.Done()
		lookups, lookupErr = a.products.FindLookups(ctx, productID)
	}()
	wg.Wait()

	if priceErr != nil {
		return nil, priceErr
	}
	if stockErr != nil {
		return nil, stockErr
	}
	if lookupErr != nil {
		return nil, lookupErr
	}

	// 4. 组装
	info := &Info{
		ID:             p.ID,
		SKU:            p.SKU,
		Name:           p.Name,
		Description:    p.Description,
		OEMCode:        p.OEMCode,
		Brand:          lookups.Brand,
		Line:           lookups.Line,
		PrincipalImage: lookups.PrincipalImage,
		Price:          price,
		Stock:          stockQty,
		Active:         p.Active,
		AssembledAt:    time.Now(),
	}

	// 5. 回填缓存（写失败不影响返回）
	if data, merr := json.Marshal(info); merr == nil {
		if serr := a.cache.Set(ctx, key, string(data), a.infoTTL); serr != nil {
			log.Printf("[warn] 写入聚合信息缓存失败 product_id=%d: %v", productID, serr)
		}
	}

	return info, nil
}
