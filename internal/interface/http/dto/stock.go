package dto

// AdjustStockRequest 库存变动请求
type AdjustStockRequest struct {
	AgencyID  uint   `json:"agency_id" binding:"required"`
	Type      string `json:"type" binding:"required,oneof=IN OUT ADJUST"`
	Quantity  int    `json:"quantity" binding:"min=0"`
	Reference string `json:"reference" binding:"max=100"`
}

// AdjustStockResponse 库存变动响应
type AdjustStockResponse struct {
	MovementID    uint   `json:"movement_id"`
	ProductID     uint   `json:"product_id"`
	AgencyID      uint   `json:"agency_id"`
	Type          string `json:"type"`
	PreviousStock int    `json:"previous_stock"`
	CurrentStock  int    `json:"current_stock"`
	CreatedAt     string `json:"created_at"`
}
