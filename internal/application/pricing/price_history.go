package pricing

import (
	"context"

	"github.com/xiebiao/autoparts/internal/domain/pricing"
)

// PriceHistoryUseCase 价格历史查询用例
// 审计/排障场景的只读查询，不走缓存（低频访问，直接读库）
type PriceHistoryUseCase struct {
	priceSvc pricing.Service
}

// NewPriceHistoryUseCase 创建价格历史查询用例
func NewPriceHistoryUseCase(priceSvc pricing.Service) *PriceHistoryUseCase {
	return &PriceHistoryUseCase{priceSvc: priceSvc}
}

// PriceHistoryItem 价格历史条目DTO
type PriceHistoryItem struct {
	ID            uint   `json:"id"`
	Price         string `json:"price"`
	MinFinalPrice string `json:"min_final_price"`
	UnitCost      string `json:"unit_cost"`
	Margin        string `json:"margin"` // 售价-成本
	CreatedAt     string `json:"created_at"`
}

// Execute 查询价格历史（按时间倒序）
func (uc *PriceHistoryUseCase) Execute(ctx context.Context, productID uint, limit int) ([]*PriceHistoryItem, error) {
	records, err := uc.priceSvc.PriceHistory(ctx, productID, limit)
	if err != nil {
		return nil, err
	}

	items := make([]*PriceHistoryItem, len(records))
	for i, rec := range records {
		items[i] = &PriceHistoryItem{
			ID:            rec.ID,
			Price:         rec.Price.String(),
			MinFinalPrice: rec.MinFinalPrice.String(),
			UnitCost:      rec.UnitCost.String(),
			Margin:        rec.Margin().String(),
			CreatedAt:     rec.CreatedAt.Format("2006-01-02 15:04:05"),
		}
	}
	return items, nil
}
