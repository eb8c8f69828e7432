package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/xiebiao/autoparts/internal/domain/catalog"
)

// CacheStore Redis缓存存储，实现catalog.Cache接口
//
// 设计说明：
// 1. 采用Cache-Aside（旁路缓存）策略：先查缓存，未命中再查数据库回填
// 2. 缓存一致性：写操作后删除缓存（而非更新缓存）——
//    更新操作可能并发执行导致缓存数据不一致，删除简单可靠，
//    下次查询时重新加载最新数据
// 3. 缓存永远只是派生副本，价格历史/库存台账才是数据源
type CacheStore struct {
	client *redis.Client
}

// NewCacheStore 创建缓存存储实例
func NewCacheStore(client *redis.Client) catalog.Cache {
	return &CacheStore{client: client}
}

// Get 读取缓存值
// redis.Nil转换为catalog.ErrCacheMiss——未命中是正常路径，不是故障
func (c *CacheStore) Get(ctx context.Context, key string) (string, error) {
	val, err := c.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", catalog.ErrCacheMiss
		}
		return "", fmt.Errorf("获取缓存失败: %w", err)
	}
	return val, nil
}

// Set 写入缓存值并设置过期时间
func (c *CacheStore) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	if err := c.client.Set(ctx, key, value, ttl).Err(); err != nil {
		return fmt.Errorf("设置缓存失败: %w", err)
	}
	return nil
}

// Del 删除一个或多个key
// 删除不存在的key不是错误（Redis DEL天然幂等）
func (c *CacheStore) Del(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("删除缓存失败: %w", err)
	}
	return nil
}

// DelPattern 按glob模式批量删除（如 product-line:*:filters）
// 设计说明:
// 1. 使用SCAN命令遍历匹配的key（KEYS会阻塞Redis，生产禁用）
// 2. 批量删除使用UNLINK（异步释放内存，不阻塞主线程）
func (c *CacheStore) DelPattern(ctx context.Context, pattern string) error {
	iter := c.client.Scan(ctx, 0, pattern, 0).Iterator()

	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}

	if err := iter.Err(); err != nil {
		return fmt.Errorf("扫描缓存key失败: %w", err)
	}

	// 批量删除
	if len(keys) > 0 {
		if err := c.client.Unlink(ctx, keys...).Err(); err != nil {
			return fmt.Errorf("删除缓存失败: %w", err)
		}
	}

	return nil
}
