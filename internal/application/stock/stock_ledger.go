package stock

import (
	"context"

	"github.com/xiebiao/autoparts/internal/domain/stock"
)

// StockLedgerUseCase 库存台账查询用例
// 对账/排障场景的只读查询，直接读库
type StockLedgerUseCase struct {
	stockRepo stock.Repository
}

// NewStockLedgerUseCase 创建台账查询用例
func NewStockLedgerUseCase(stockRepo stock.Repository) *StockLedgerUseCase {
	return &StockLedgerUseCase{stockRepo: stockRepo}
}

// LedgerItem 台账条目DTO
type LedgerItem struct {
	ID            uint   `json:"id"`
	AgencyID      uint   `json:"agency_id"`
	Type          string `json:"type"`
	Quantity      int    `json:"quantity"`
	PreviousStock int    `json:"previous_stock"`
	CurrentStock  int    `json:"current_stock"`
	Reference     string `json:"reference,omitempty"`
	CreatedAt     string `json:"created_at"`
}

// Execute 查询某商品的变动台账（按时间倒序）
func (uc *StockLedgerUseCase) Execute(ctx context.Context, productID uint, limit int) ([]*LedgerItem, error) {
	movements, err := uc.stockRepo.ListMovements(ctx, productID, limit)
	if err != nil {
		return nil, err
	}

	items := make([]*LedgerItem, len(movements))
	for i, m := range movements {
		items[i] = &LedgerItem{
			ID:            m.ID,
			AgencyID:      m.AgencyID,
			Type:          string(m.Type),
			Quantity:      m.Quantity,
			PreviousStock: m.PreviousStock,
			CurrentStock:  m.CurrentStock,
			Reference:     m.Reference,
			CreatedAt:     m.CreatedAt.Format("2006-01-02 15:04:05"),
		}
	}
	return items, nil
}
