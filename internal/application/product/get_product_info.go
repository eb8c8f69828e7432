package product

import (
	"context"

	"github.com/xiebiao/autoparts/internal/domain/catalog"
)

// GetProductInfoUseCase 商品聚合信息查询用例
// 读路径的核心入口：身份字段+当前价格+当前库存+关联查询，一次返回。
// 全部缓存/回源逻辑在catalog.Assembler内，用例层只做编排
type GetProductInfoUseCase struct {
	assembler *catalog.Assembler
}

// NewGetProductInfoUseCase 创建聚合信息查询用例
func NewGetProductInfoUseCase(assembler *catalog.Assembler) *GetProductInfoUseCase {
	return &GetProductInfoUseCase{assembler: assembler}
}

// Execute 查询商品聚合信息
func (uc *GetProductInfoUseCase) Execute(ctx context.Context, productID uint) (*catalog.Info, error) {
	return uc.assembler.Info(ctx, productID)
}
