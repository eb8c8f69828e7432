package dto

// RecordPriceRequest 调价请求
// 金额用字符串承载decimal（避免JSON number的浮点精度损失）
type RecordPriceRequest struct {
	Price         string `json:"price" binding:"required"`
	MinFinalPrice string `json:"min_final_price" binding:"required"`
	UnitCost      string `json:"unit_cost" binding:"required"`
}

// PriceRecordResponse 价格记录响应
type PriceRecordResponse struct {
	ID            uint   `json:"id"`
	ProductID     uint   `json:"product_id"`
	Price         string `json:"price"`
	MinFinalPrice string `json:"min_final_price"`
	UnitCost      string `json:"unit_cost"`
	CreatedAt     string `json:"created_at"`
}
