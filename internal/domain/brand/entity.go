package brand

import "time"

// Brand 品牌实体
// 配件品牌（如博世、电装），商品通过BrandID关联
type Brand struct {
	ID        uint
	Name      string
	Country   string // 品牌所属国家（可为空）
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ProductLine 产品线实体
// 品牌下的分类线（如"刹车系统"、"滤清器"），商品通过LineID关联
// 产品线的筛选项会被缓存（product-line:{id}:filters），
// 批量写操作发生时由catalog.Invalidator失效
type ProductLine struct {
	ID        uint
	BrandID   uint
	Name      string
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewBrand 创建品牌(工厂方法)
func NewBrand(name, country string) *Brand {
	now := time.Now()
	return &Brand{
		Name:      name,
		Country:   country,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// NewProductLine 创建产品线(工厂方法)
func NewProductLine(brandID uint, name string) *ProductLine {
	now := time.Now()
	return &ProductLine{
		BrandID:   brandID,
		Name:      name,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
