package dto

// CreatePromotionRequest 创建促销请求
type CreatePromotionRequest struct {
	LineID      uint   `json:"line_id" binding:"required"`
	Name        string `json:"name" binding:"required,min=2,max=100"`
	DiscountPct string `json:"discount_pct" binding:"required"` // decimal字符串(0-100)
	StartsAt    string `json:"starts_at" binding:"required"`    // RFC3339
	EndsAt      string `json:"ends_at" binding:"required"`
}

// PromotionResponse 促销响应
type PromotionResponse struct {
	ID          uint   `json:"id"`
	LineID      uint   `json:"line_id"`
	Name        string `json:"name"`
	DiscountPct string `json:"discount_pct"`
	StartsAt    string `json:"starts_at"`
	EndsAt      string `json:"ends_at"`
}
