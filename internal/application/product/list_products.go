package product

import (
	"context"

	"github.com/xiebiao/autoparts/internal/domain/product"
)

// ListProductsUseCase 商品列表查询用例
type ListProductsUseCase struct {
	productSvc product.Service
}

// NewListProductsUseCase 创建列表查询用例
func NewListProductsUseCase(productSvc product.Service) *ListProductsUseCase {
	return &ListProductsUseCase{productSvc: productSvc}
}

// ProductListItem 列表条目DTO
// 列表只返回身份字段——价格/库存是派生值，按商品走聚合信息接口获取，
// 避免列表页一次触发几十个商品的价格解析
type ProductListItem struct {
	ID        uint   `json:"id"`
	SKU       string `json:"sku"`
	Name      string `json:"name"`
	BrandID   uint   `json:"brand_id"`
	LineID    uint   `json:"line_id"`
	OEMCode   string `json:"oem_code,omitempty"`
	Active    bool   `json:"active"`
	CreatedAt string `json:"created_at"`
}

// ListProductsResponse 列表响应DTO
type ListProductsResponse struct {
	Items []*ProductListItem `json:"items"`
	Total int64              `json:"total"`
}

// Execute 分页查询商品列表
func (uc *ListProductsUseCase) Execute(ctx context.Context, params product.ListParams) (*ListProductsResponse, error) {
	// 分页参数兜底
	if params.Page <= 0 {
		params.Page = 1
	}
	if params.PageSize <= 0 || params.PageSize > 100 {
		params.PageSize = 20
	}

	products, total, err := uc.productSvc.ListProducts(ctx, params)
	if err != nil {
		return nil, err
	}

	items := make([]*ProductListItem, len(products))
	for i, p := range products {
		items[i] = &ProductListItem{
			ID:        p.ID,
			SKU:       p.SKU,
			Name:      p.Name,
			BrandID:   p.BrandID,
			LineID:    p.LineID,
			OEMCode:   p.OEMCode,
			Active:    p.Active,
			CreatedAt: p.CreatedAt.Format("2006-01-02 15:04:05"),
		}
	}

	return &ListProductsResponse{Items: items, Total: total}, nil
}
