package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/xiebiao/autoparts/internal/domain/pricing"
	apperrors "github.com/xiebiao/autoparts/pkg/errors"
)

// priceRepository 价格历史仓储实现(MySQL)
// 设计说明:
// 1. 价格历史是只追加的台账——没有Update/Delete
// 2. "当前价"不在这里定义：catalog.Resolver取最新一条并做缓存
type priceRepository struct {
	db *gorm.DB
}

// NewPriceRepository 创建价格历史仓储
func NewPriceRepository(db *gorm.DB) pricing.Repository {
	return &priceRepository{db: db}
}

// Create 插入一条价格记录
func (r *priceRepository) Create(ctx context.Context, rec *pricing.PriceRecord) error {
	model := &PriceHistoryModel{
		ProductID:     rec.ProductID,
		Price:         rec.Price,
		MinFinalPrice: rec.MinFinalPrice,
		UnitCost:      rec.UnitCost,
	}

	// 注意:必须使用getDB(ctx)参与事务
	db := r.getDB(ctx)
	if err := db.Create(model).Error; err != nil {
		return apperrors.Wrap(err, "插入价格记录失败")
	}

	rec.ID = model.ID
	rec.CreatedAt = model.CreatedAt
	return nil
}

// FindLatestByProductID 查询某商品created_at最新的一条价格记录
// 没有任何记录时返回ErrNoPriceHistory（由调用方决定如何兜底）
func (r *priceRepository) FindLatestByProductID(ctx context.Context, productID uint) (*pricing.PriceRecord, error) {
	var model PriceHistoryModel
	err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("created_at DESC, id DESC"). // id兜底：同一秒内多条记录时保证确定性
		First(&model).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pricing.ErrNoPriceHistory
		}
		return nil, apperrors.Wrap(err, "查询最新价格失败")
	}

	return toPriceEntity(&model), nil
}

// ListByProductID 按时间倒序查询某商品的价格历史
func (r *priceRepository) ListByProductID(ctx context.Context, productID uint, limit int) ([]*pricing.PriceRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	var models []PriceHistoryModel
	err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&models).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "查询价格历史失败")
	}

	records := make([]*pricing.PriceRecord, len(models))
	for i := range models {
		records[i] = toPriceEntity(&models[i])
	}
	return records, nil
}

// toPriceEntity GORM模型 → 领域实体
func toPriceEntity(model *PriceHistoryModel) *pricing.PriceRecord {
	return &pricing.PriceRecord{
		ID:            model.ID,
		ProductID:     model.ProductID,
		Price:         model.Price,
		MinFinalPrice: model.MinFinalPrice,
		UnitCost:      model.UnitCost,
		CreatedAt:     model.CreatedAt,
	}
}

// getDB 从context获取事务DB,如果没有则使用默认DB
func (r *priceRepository) getDB(ctx context.Context) *gorm.DB {
	if tx, ok := ctx.Value("tx").(*gorm.DB); ok {
		return tx
	}
	return r.db.WithContext(ctx)
}
