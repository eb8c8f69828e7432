package promotion

import (
	"context"

	"github.com/xiebiao/autoparts/internal/domain/catalog"
	"github.com/xiebiao/autoparts/internal/domain/promotion"
)

// DeactivatePromotionUseCase 停用促销用例
type DeactivatePromotionUseCase struct {
	promotionRepo promotion.Repository
	invalidator   *catalog.Invalidator
}

// NewDeactivatePromotionUseCase 创建停用促销用例
func NewDeactivatePromotionUseCase(promotionRepo promotion.Repository, invalidator *catalog.Invalidator) *DeactivatePromotionUseCase {
	return &DeactivatePromotionUseCase{
		promotionRepo: promotionRepo,
		invalidator:   invalidator,
	}
}

// Execute 执行停用
func (uc *DeactivatePromotionUseCase) Execute(ctx context.Context, id uint) error {
	// 先查出促销拿到产品线ID（失效要用）
	p, err := uc.promotionRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if err := uc.promotionRepo.Deactivate(ctx, id); err != nil {
		return err
	}

	// 停用后失效该产品线的筛选项缓存
	uc.invalidator.InvalidateLineFilters(ctx, []uint{p.LineID})
	return nil
}
