package product

import (
	"context"

	"github.com/xiebiao/autoparts/internal/domain/catalog"
	"github.com/xiebiao/autoparts/internal/domain/product"
)

// UpdateProductUseCase 更新商品基本信息用例
// 身份字段变更也要失效派生缓存——product:{id}:info嵌入了名称/描述快照
type UpdateProductUseCase struct {
	productSvc  product.Service
	invalidator *catalog.Invalidator
}

// NewUpdateProductUseCase 创建更新商品用例
func NewUpdateProductUseCase(productSvc product.Service, invalidator *catalog.Invalidator) *UpdateProductUseCase {
	return &UpdateProductUseCase{
		productSvc:  productSvc,
		invalidator: invalidator,
	}
}

// UpdateProductRequest 更新请求DTO（空字段不更新）
type UpdateProductRequest struct {
	ID          uint
	Name        string
	Description string
	OEMCode     string
}

// Execute 执行更新
func (uc *UpdateProductUseCase) Execute(ctx context.Context, req UpdateProductRequest) error {
	if _, err := uc.productSvc.UpdateProduct(ctx, req.ID, req.Name, req.Description, req.OEMCode); err != nil {
		return err
	}

	// 更新成功后失效该商品的派生缓存
	uc.invalidator.Invalidate(ctx, req.ID)
	return nil
}
