package product

import (
	"context"
)

// Repository 商品仓储接口(依赖倒置原则)
// 设计说明:
// 1. 由domain层定义接口,infrastructure层实现
// 2. 便于Mock测试,不依赖具体数据库实现
type Repository interface {
	// Create 创建商品
	Create(ctx context.Context, p *Product) error

	// FindByID 根据ID查找商品
	FindByID(ctx context.Context, id uint) (*Product, error)

	// FindBySKU 根据SKU查找商品
	FindBySKU(ctx context.Context, sku string) (*Product, error)

	// Update 更新商品信息
	Update(ctx context.Context, p *Product) error

	// Delete 删除商品(软删除)
	Delete(ctx context.Context, id uint) error

	// List 分页查询商品列表
	List(ctx context.Context, params ListParams) ([]*Product, int64, error)

	// FindLookups 一次join查出商品的品牌、产品线、主图
	// 供catalog.Assembler组装聚合信息
	FindLookups(ctx context.Context, id uint) (*Lookups, error)

	// ListStatusByIDs 查询一组商品当前的上架状态
	// 批量更新前记录原状态，用于失败补偿
	ListStatusByIDs(ctx context.Context, ids []uint) (map[uint]bool, error)

	// UpdateStatusByIDs 批量更新上架状态，返回受影响行数
	UpdateStatusByIDs(ctx context.Context, ids []uint, active bool) (int64, error)
}

// ListParams 列表查询参数
type ListParams struct {
	Page     int    // 页码(从1开始)
	PageSize int    // 每页数量
	Keyword  string // 搜索关键词(搜索名称、SKU、原厂件号)
	BrandID  uint   // 按品牌过滤(0表示不过滤)
	LineID   uint   // 按产品线过滤(0表示不过滤)
	SortBy   string // 排序字段(created_at_desc, name_asc)
}
