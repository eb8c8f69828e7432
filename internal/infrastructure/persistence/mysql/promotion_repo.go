package mysql

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/xiebiao/autoparts/internal/domain/promotion"
	apperrors "github.com/xiebiao/autoparts/pkg/errors"
)

// promotionRepository 促销仓储实现(MySQL)
type promotionRepository struct {
	db *gorm.DB
}

// NewPromotionRepository 创建促销仓储
func NewPromotionRepository(db *gorm.DB) promotion.Repository {
	return &promotionRepository{db: db}
}

// Create 创建促销
func (r *promotionRepository) Create(ctx context.Context, p *promotion.Promotion) error {
	model := &PromotionModel{
		LineID:      p.LineID,
		Name:        p.Name,
		DiscountPct: p.DiscountPct,
		StartsAt:    p.StartsAt,
		EndsAt:      p.EndsAt,
		Active:      p.Active,
	}

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return apperrors.Wrap(err, "创建促销失败")
	}

	p.ID = model.ID
	p.CreatedAt = model.CreatedAt
	p.UpdatedAt = model.UpdatedAt
	return nil
}

// FindByID 根据ID查找促销
func (r *promotionRepository) FindByID(ctx context.Context, id uint) (*promotion.Promotion, error) {
	var model PromotionModel
	err := r.db.WithContext(ctx).First(&model, id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, promotion.ErrPromotionNotFound
		}
		return nil, apperrors.Wrap(err, "查询促销失败")
	}

	return toPromotionEntity(&model), nil
}

// ListCurrentByLineID 查询某产品线当前生效的促销
func (r *promotionRepository) ListCurrentByLineID(ctx context.Context, lineID uint) ([]*promotion.Promotion, error) {
	now := time.Now()

	var models []PromotionModel
	err := r.db.WithContext(ctx).
		Where("line_id = ? AND active = ? AND starts_at <= ? AND ends_at > ?", lineID, true, now, now).
		Order("starts_at DESC").
		Find(&models).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "查询生效促销失败")
	}

	promotions := make([]*promotion.Promotion, len(models))
	for i := range models {
		promotions[i] = toPromotionEntity(&models[i])
	}
	return promotions, nil
}

// Deactivate 停用促销
func (r *promotionRepository) Deactivate(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).
		Model(&PromotionModel{}).
		Where("id = ?", id).
		Update("active", false)

	if result.Error != nil {
		return apperrors.Wrap(result.Error, "停用促销失败")
	}

	if result.RowsAffected == 0 {
		return promotion.ErrPromotionNotFound
	}

	return nil
}

// toPromotionEntity GORM模型 → 领域实体
func toPromotionEntity(model *PromotionModel) *promotion.Promotion {
	return &promotion.Promotion{
		ID:          model.ID,
		LineID:      model.LineID,
		Name:        model.Name,
		DiscountPct: model.DiscountPct,
		StartsAt:    model.StartsAt,
		EndsAt:      model.EndsAt,
		Active:      model.Active,
		CreatedAt:   model.CreatedAt,
		UpdatedAt:   model.UpdatedAt,
	}
}
