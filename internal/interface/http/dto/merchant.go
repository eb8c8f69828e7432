package dto

// SyncProductsRequest Merchant同步请求
type SyncProductsRequest struct {
	ProductIDs []uint `json:"product_ids" binding:"required,min=1,max=500"`
}
