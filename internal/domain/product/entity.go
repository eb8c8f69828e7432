package product

import (
	"regexp"
	"time"
)

// Product 商品实体(聚合根)
// DDD设计说明:
// 1. Product是商品聚合的根实体，只承载身份属性和分类关联
// 2. 不变式：商品行上永远不落价格/库存字段——当前价格和当前库存是派生值，
//    分别来自价格历史和门店库存聚合，由catalog包计算并缓存
// 3. SKU作为业务唯一标识(数据库层保证唯一性)
type Product struct {
	ID          uint
	SKU         string // 配件编码（业务唯一标识）
	Name        string // 商品名称
	Description string // 商品描述
	BrandID     uint   // 品牌ID
	LineID      uint   // 产品线ID
	OEMCode     string // 原厂件号（可为空）
	Active      bool   // 上架状态
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewProduct 创建新商品(工厂方法)
func NewProduct(sku, name, description, oemCode string, brandID, lineID uint) *Product {
	now := time.Now()
	return &Product{
		SKU:         sku,
		Name:        name,
		Description: description,
		OEMCode:     oemCode,
		BrandID:     brandID,
		LineID:      lineID,
		Active:      true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// UpdateInfo 更新商品基本信息(领域行为)
func (p *Product) UpdateInfo(name, description, oemCode string) {
	if name != "" {
		p.Name = name
	}
	if description != "" {
		p.Description = description
	}
	if oemCode != "" {
		p.OEMCode = oemCode
	}
	p.UpdatedAt = time.Now()
}

// Deactivate 下架
func (p *Product) Deactivate() {
	p.Active = false
	p.UpdatedAt = time.Now()
}

// Activate 上架
func (p *Product) Activate() {
	p.Active = true
	p.UpdatedAt = time.Now()
}

// Lookups 商品的关联查询结果（品牌、产品线、主图）
// 由Repository一次join查出，供catalog.Assembler组装聚合信息
type Lookups struct {
	Brand          string // 品牌名称
	Line           string // 产品线名称
	PrincipalImage string // 主图URL（无主图时为空串）
}

// skuPattern SKU格式：3-30位大写字母、数字、连字符
var skuPattern = regexp.MustCompile(`^[A-Z0-9-]{3,30}$`)

// IsValidSKU 校验SKU格式
func IsValidSKU(sku string) bool {
	return skuPattern.MatchString(sku)
}
