package product

import (
	"context"

	"github.com/xiebiao/autoparts/internal/domain/brand"
	"github.com/xiebiao/autoparts/internal/domain/product"
)

// CreateProductUseCase 创建商品用例
// 商品建档只落身份行——价格和库存分别通过调价接口、库存变动接口录入，
// 商品行上永远没有价格/库存字段
type CreateProductUseCase struct {
	productSvc product.Service
	brandRepo  brand.Repository
}

// NewCreateProductUseCase 创建商品用例
func NewCreateProductUseCase(productSvc product.Service, brandRepo brand.Repository) *CreateProductUseCase {
	return &CreateProductUseCase{
		productSvc: productSvc,
		brandRepo:  brandRepo,
	}
}

// CreateProductRequest 建档请求DTO
type CreateProductRequest struct {
	SKU         string
	Name        string
	Description string
	OEMCode     string
	BrandID     uint
	LineID      uint
}

// CreateProductResponse 建档响应DTO
type CreateProductResponse struct {
	ID        uint   `json:"id"`
	SKU       string `json:"sku"`
	Name      string `json:"name"`
	Active    bool   `json:"active"`
	CreatedAt string `json:"created_at"`
}

// Execute 执行建档
func (uc *CreateProductUseCase) Execute(ctx context.Context, req CreateProductRequest) (*CreateProductResponse, error) {
	// 1. 校验品牌与产品线存在，且产品线归属该品牌
	if _, err := uc.brandRepo.FindBrandByID(ctx, req.BrandID); err != nil {
		return nil, err
	}
	line, err := uc.brandRepo.FindLineByID(ctx, req.LineID)
	if err != nil {
		return nil, err
	}
	if line.BrandID != req.BrandID {
		return nil, brand.ErrLineNotFound
	}

	// 2. 领域服务创建（SKU格式+重复检查在服务内）
	p, err := uc.productSvc.CreateProduct(ctx, req.SKU, req.Name, req.Description, req.OEMCode, req.BrandID, req.LineID)
	if err != nil {
		return nil, err
	}

	return &CreateProductResponse{
		ID:        p.ID,
		SKU:       p.SKU,
		Name:      p.Name,
		Active:    p.Active,
		CreatedAt: p.CreatedAt.Format("2006-01-02 15:04:05"),
	}, nil
}
