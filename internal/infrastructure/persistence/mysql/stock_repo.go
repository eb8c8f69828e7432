package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/xiebiao/autoparts/internal/domain/stock"
	apperrors "github.com/xiebiao/autoparts/pkg/errors"
)

// stockRepository 库存仓储实现(MySQL)
// 设计说明:
// 1. stock_movements是只追加的台账，agency_stocks是按(商品,门店)的聚合
// 2. 变动流程必须在事务内执行:LockAgencyStock → Apply → CreateMovement → UpsertAgencyStock
// 3. "当前可售库存"由SumActiveByProductID汇总，catalog.Resolver负责缓存
type stockRepository struct {
	db *gorm.DB
}

// NewStockRepository 创建库存仓储
func NewStockRepository(db *gorm.DB) stock.Repository {
	return &stockRepository{db: db}
}

// SumActiveByProductID 汇总某商品所有Active门店的当前库存
// 没有任何门店记录时返回0（不是错误）
func (r *stockRepository) SumActiveByProductID(ctx context.Context, productID uint) (int, error) {
	var total int64
	// COALESCE兜底:没有行时SUM返回NULL
	err := r.db.WithContext(ctx).
		Model(&AgencyStockModel{}).
		Select("COALESCE(SUM(current), 0)").
		Where("product_id = ? AND active = ?", productID, true).
		Scan(&total).Error
	if err != nil {
		return 0, apperrors.Wrap(err, "汇总库存失败")
	}

	return int(total), nil
}

// FindAgencyStock 查询某商品在某门店的库存聚合
// 不存在时返回一个Current=0、Active=true的新聚合（首次入库场景）
func (r *stockRepository) FindAgencyStock(ctx context.Context, productID, agencyID uint) (*stock.AgencyStock, error) {
	var model AgencyStockModel
	err := r.db.WithContext(ctx).
		Where("product_id = ? AND agency_id = ?", productID, agencyID).
		First(&model).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &stock.AgencyStock{
				ProductID: productID,
				AgencyID:  agencyID,
				Current:   0,
				Active:    true,
			}, nil
		}
		return nil, apperrors.Wrap(err, "查询门店库存失败")
	}

	return toAgencyStockEntity(&model), nil
}

// LockAgencyStock 悲观锁查询门店库存聚合(SELECT FOR UPDATE)
// 注意:必须使用getDB(ctx)从context获取事务DB
func (r *stockRepository) LockAgencyStock(ctx context.Context, productID, agencyID uint) (*stock.AgencyStock, error) {
	var model AgencyStockModel
	db := r.getDB(ctx)
	err := db.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("product_id = ? AND agency_id = ?", productID, agencyID).
		First(&model).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// 首次入库:该门店还没有聚合行，从0开始
			return &stock.AgencyStock{
				ProductID: productID,
				AgencyID:  agencyID,
				Current:   0,
				Active:    true,
			}, nil
		}
		return nil, apperrors.Wrap(err, "锁定门店库存失败")
	}

	return toAgencyStockEntity(&model), nil
}

// UpsertAgencyStock 插入或更新门店库存聚合
// (product_id, agency_id)联合主键冲突时更新current/active
func (r *stockRepository) UpsertAgencyStock(ctx context.Context, as *stock.AgencyStock) error {
	model := &AgencyStockModel{
		ProductID: as.ProductID,
		AgencyID:  as.AgencyID,
		Current:   as.Current,
		Active:    as.Active,
	}

	db := r.getDB(ctx)
	err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "product_id"}, {Name: "agency_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"current", "active", "updated_at"}),
	}).Create(model).Error
	if err != nil {
		return apperrors.Wrap(err, "更新门店库存失败")
	}

	as.UpdatedAt = model.UpdatedAt
	return nil
}

// CreateMovement 插入一条台账记录
func (r *stockRepository) CreateMovement(ctx context.Context, m *stock.Movement) error {
	model := &StockMovementModel{
		ProductID:     m.ProductID,
		AgencyID:      m.AgencyID,
		Quantity:      m.Quantity,
		PreviousStock: m.PreviousStock,
		CurrentStock:  m.CurrentStock,
		Type:          string(m.Type),
		Reference:     m.Reference,
	}

	db := r.getDB(ctx)
	if err := db.Create(model).Error; err != nil {
		return apperrors.Wrap(err, "插入库存台账失败")
	}

	m.ID = model.ID
	m.CreatedAt = model.CreatedAt
	return nil
}

// ListMovements 按时间倒序查询某商品的变动台账
func (r *stockRepository) ListMovements(ctx context.Context, productID uint, limit int) ([]*stock.Movement, error) {
	if limit <= 0 {
		limit = 20
	}

	var models []StockMovementModel
	err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&models).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "查询库存台账失败")
	}

	movements := make([]*stock.Movement, len(models))
	for i := range models {
		movements[i] = toMovementEntity(&models[i])
	}
	return movements, nil
}

// =========================================
// 辅助函数:模型转换
// =========================================

// toAgencyStockEntity GORM模型 → 领域实体
func toAgencyStockEntity(model *AgencyStockModel) *stock.AgencyStock {
	return &stock.AgencyStock{
		ProductID: model.ProductID,
		AgencyID:  model.AgencyID,
		Current:   model.Current,
		Active:    model.Active,
		UpdatedAt: model.UpdatedAt,
	}
}

// toMovementEntity GORM模型 → 领域实体
func toMovementEntity(model *StockMovementModel) *stock.Movement {
	return &stock.Movement{
		ID:            model.ID,
		ProductID:     model.ProductID,
		AgencyID:      model.AgencyID,
		Quantity:      model.Quantity,
		PreviousStock: model.PreviousStock,
		CurrentStock:  model.CurrentStock,
		Type:          stock.MovementType(model.Type),
		Reference:     model.Reference,
		CreatedAt:     model.CreatedAt,
	}
}

// getDB 从context获取事务DB,如果没有则使用默认DB
func (r *stockRepository) getDB(ctx context.Context) *gorm.DB {
	if tx, ok := ctx.Value("tx").(*gorm.DB); ok {
		return tx
	}
	return r.db.WithContext(ctx)
}
