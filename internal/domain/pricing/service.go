package pricing

import (
	"context"

	"github.com/shopspring/decimal"
)

// CreatePriceRecord 调价输入（显式类型，边界校验）
// 设计说明：不使用松散的option bag——必填字段缺失在Validate()就报错，
// 而不是等到SQL层报NOT NULL
type CreatePriceRecord struct {
	ProductID     uint
	Price         decimal.Decimal
	MinFinalPrice decimal.Decimal
	UnitCost      decimal.Decimal
}

// Validate 业务规则校验
func (in CreatePriceRecord) Validate() error {
	if in.ProductID == 0 {
		return ErrInvalidProductID
	}
	if !in.Price.IsPositive() {
		return ErrInvalidPrice
	}
	if !in.MinFinalPrice.IsPositive() || in.MinFinalPrice.GreaterThan(in.Price) {
		return ErrInvalidMinFinalPrice
	}
	if in.UnitCost.IsNegative() {
		return ErrInvalidUnitCost
	}
	return nil
}

// Service 价格领域服务接口
type Service interface {
	// RecordPrice 记录一次调价
	// 业务规则:
	// - 输入通过CreatePriceRecord.Validate()校验
	// - 售价/最低成交价写入前按千位取整
	// - 只插入，不修改历史记录
	RecordPrice(ctx context.Context, in CreatePriceRecord) (*PriceRecord, error)

	// LatestPrice 查询最新价格记录（无记录返回ErrNoPriceHistory）
	LatestPrice(ctx context.Context, productID uint) (*PriceRecord, error)

	// PriceHistory 查询价格历史
	PriceHistory(ctx context.Context, productID uint, limit int) ([]*PriceRecord, error)
}

// service 领域服务实现
type service struct {
	repo Repository
}

// NewService 创建价格领域服务
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// RecordPrice 记录一次调价
func (s *service) RecordPrice(ctx context.Context, in CreatePriceRecord) (*PriceRecord, error) {
	// 1. 边界校验
	if err := in.Validate(); err != nil {
		return nil, err
	}

	// 2. 创建记录（工厂方法内部做写入取整）
	rec := NewPriceRecord(in.ProductID, in.Price, in.MinFinalPrice, in.UnitCost)

	// 3. 持久化
	if err := s.repo.Create(ctx, rec); err != nil {
		return nil, err
	}

	return rec, nil
}

// LatestPrice 查询最新价格记录
func (s *service) LatestPrice(ctx context.Context, productID uint) (*PriceRecord, error) {
	if productID == 0 {
		return nil, ErrInvalidProductID
	}
	return s.repo.FindLatestByProductID(ctx, productID)
}

// PriceHistory 查询价格历史
func (s *service) PriceHistory(ctx context.Context, productID uint, limit int) ([]*PriceRecord, error) {
	if productID == 0 {
		return nil, ErrInvalidProductID
	}
	if limit <= 0 || limit > 200 {
		limit = 50 // 默认50条
	}
	return s.repo.ListByProductID(ctx, productID, limit)
}
