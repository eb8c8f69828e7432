package dto

// CreateBrandRequest 创建品牌请求
type CreateBrandRequest struct {
	Name    string `json:"name" binding:"required,min=2,max=50"`
	Country string `json:"country" binding:"max=50"`
}

// CreateLineRequest 创建产品线请求
type CreateLineRequest struct {
	Name string `json:"name" binding:"required,min=2,max=50"`
}
