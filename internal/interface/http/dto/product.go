package dto

// CreateProductRequest 商品建档请求
// 注意：没有价格和库存字段——价格走调价接口，库存走库存变动接口
type CreateProductRequest struct {
	SKU         string `json:"sku" binding:"required,min=3,max=30"`
	Name        string `json:"name" binding:"required,min=2,max=200"`
	Description string `json:"description" binding:"max=5000"`
	OEMCode     string `json:"oem_code" binding:"max=50"`
	BrandID     uint   `json:"brand_id" binding:"required"`
	LineID      uint   `json:"line_id" binding:"required"`
}

// UpdateProductRequest 商品更新请求（空字段不更新）
type UpdateProductRequest struct {
	Name        string `json:"name" binding:"omitempty,min=2,max=200"`
	Description string `json:"description" binding:"max=5000"`
	OEMCode     string `json:"oem_code" binding:"max=50"`
}

// BulkUpdateStatusRequest 批量上下架请求
type BulkUpdateStatusRequest struct {
	ProductIDs []uint `json:"product_ids" binding:"required,min=1,max=500"`
	LineIDs    []uint `json:"line_ids"` // 受影响的产品线，可为空
	Active     *bool  `json:"active" binding:"required"`
}

// ProductResponse 商品建档响应
type ProductResponse struct {
	ID        uint   `json:"id"`
	SKU       string `json:"sku"`
	Name      string `json:"name"`
	Active    bool   `json:"active"`
	CreatedAt string `json:"created_at"`
}

// ProductInfoResponse 商品聚合信息响应
// 嵌入解析时刻的价格/库存快照
type ProductInfoResponse struct {
	ID             uint   `json:"id"`
	SKU            string `json:"sku"`
	Name           string `json:"name"`
	Description    string `json:"description"`
	OEMCode        string `json:"oem_code,omitempty"`
	Brand          string `json:"brand"`
	Line           string `json:"line"`
	PrincipalImage string `json:"principal_image,omitempty"`
	Price          string `json:"price"` // 两位小数展示
	Stock          int    `json:"stock"`
	Active         bool   `json:"active"`
}

// ListProductsQuery 列表查询参数（query string绑定）
type ListProductsQuery struct {
	Page     int    `form:"page,default=1" binding:"min=0"`
	PageSize int    `form:"page_size,default=20" binding:"min=0,max=100"`
	Keyword  string `form:"keyword"`
	BrandID  uint   `form:"brand_id"`
	LineID   uint   `form:"line_id"`
	SortBy   string `form:"sort_by"`
}
