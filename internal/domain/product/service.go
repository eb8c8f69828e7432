package product

import (
	"context"
	"errors"
)

// Service 商品领域服务接口
// 设计说明:
// 1. 领域服务封装业务规则校验（SKU格式、重复检查）
// 2. 不依赖具体的Repository实现(依赖倒置)
type Service interface {
	// CreateProduct 创建商品
	// 业务规则:
	// - SKU格式必须合法且不能重复
	// - 品牌、产品线必填
	CreateProduct(ctx context.Context, sku, name, description, oemCode string, brandID, lineID uint) (*Product, error)

	// GetProduct 根据ID获取商品
	GetProduct(ctx context.Context, id uint) (*Product, error)

	// UpdateProduct 更新商品基本信息
	UpdateProduct(ctx context.Context, id uint, name, description, oemCode string) (*Product, error)

	// ListProducts 分页查询商品列表
	ListProducts(ctx context.Context, params ListParams) ([]*Product, int64, error)
}

// service 领域服务实现
type service struct {
	repo Repository
}

// NewService 创建商品领域服务
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// CreateProduct 创建商品
func (s *service) CreateProduct(ctx context.Context, sku, name, description, oemCode string, brandID, lineID uint) (*Product, error) {
	// 1. 业务规则校验
	if !IsValidSKU(sku) {
		return nil, ErrInvalidSKU
	}
	if name == "" {
		return nil, ErrInvalidName
	}
	if brandID == 0 {
		return nil, ErrInvalidBrand
	}
	if lineID == 0 {
		return nil, ErrInvalidLine
	}

	// 2. SKU重复检查(Repository的唯一索引兜底)
	existing, err := s.repo.FindBySKU(ctx, sku)
	if err == nil && existing != nil {
		return nil, ErrSKUDuplicate
	}
	if err != nil && !errors.Is(err, ErrProductNotFound) {
		return nil, err
	}

	// 3. 创建实体并持久化
	p := NewProduct(sku, name, description, oemCode, brandID, lineID)
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}

	return p, nil
}

// GetProduct 根据ID获取商品
func (s *service) GetProduct(ctx context.Context, id uint) (*Product, error) {
	return s.repo.FindByID(ctx, id)
}

// UpdateProduct 更新商品基本信息
func (s *service) UpdateProduct(ctx context.Context, id uint, name, description, oemCode string) (*Product, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	p.UpdateInfo(name, description, oemCode)

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// ListProducts 分页查询商品列表
func (s *service) ListProducts(ctx context.Context, params ListParams) ([]*Product, int64, error) {
	return s.repo.List(ctx, params)
}
