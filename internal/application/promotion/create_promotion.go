package promotion

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/xiebiao/autoparts/internal/domain/brand"
	"github.com/xiebiao/autoparts/internal/domain/catalog"
	"github.com/xiebiao/autoparts/internal/domain/promotion"
)

// CreatePromotionUseCase 创建促销用例
// 促销按产品线生效，创建后连带失效该产品线的筛选项缓存
// （筛选项里带促销标记，不失效会展示过期的活动状态）
type CreatePromotionUseCase struct {
	promotionRepo promotion.Repository
	brandRepo     brand.Repository
	invalidator   *catalog.Invalidator
}

// NewCreatePromotionUseCase 创建促销用例
func NewCreatePromotionUseCase(
	promotionRepo promotion.Repository,
	brandRepo brand.Repository,
	invalidator *catalog.Invalidator,
) *CreatePromotionUseCase {
	return &CreatePromotionUseCase{
		promotionRepo: promotionRepo,
		brandRepo:     brandRepo,
		invalidator:   invalidator,
	}
}

// CreatePromotionRequest 创建促销请求DTO
type CreatePromotionRequest struct {
	LineID      uint
	Name        string
	DiscountPct decimal.Decimal
	StartsAt    time.Time
	EndsAt      time.Time
}

// CreatePromotionResponse 创建促销响应DTO
type CreatePromotionResponse struct {
	ID          uint   `json:"id"`
	LineID      uint   `json:"line_id"`
	Name        string `json:"name"`
	DiscountPct string `json:"discount_pct"`
	StartsAt    string `json:"starts_at"`
	EndsAt      string `json:"ends_at"`
}

// Execute 执行创建促销
func (uc *CreatePromotionUseCase) Execute(ctx context.Context, req CreatePromotionRequest) (*CreatePromotionResponse, error) {
	// 1. 确认产品线存在
	if _, err := uc.brandRepo.FindLineByID(ctx, req.LineID); err != nil {
		return nil, err
	}

	// 2. 工厂方法校验折扣范围/时间窗口
	p, err := promotion.NewPromotion(req.LineID, req.Name, req.DiscountPct, req.StartsAt, req.EndsAt)
	if err != nil {
		return nil, err
	}

	// 3. 落库
	if err := uc.promotionRepo.Create(ctx, p); err != nil {
		return nil, err
	}

	// 4. 失效产品线筛选项缓存
	uc.invalidator.InvalidateLineFilters(ctx, []uint{req.LineID})

	return &CreatePromotionResponse{
		ID:          p.ID,
		LineID:      p.LineID,
		Name:        p.Name,
		DiscountPct: p.DiscountPct.String(),
		StartsAt:    p.StartsAt.Format("2006-01-02 15:04:05"),
		EndsAt:      p.EndsAt.Format("2006-01-02 15:04:05"),
	}, nil
}
