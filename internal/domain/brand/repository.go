package brand

import (
	"context"

	apperrors "github.com/xiebiao/autoparts/pkg/errors"
)

// 品牌领域错误定义
var (
	ErrBrandNotFound = apperrors.New(apperrors.ErrCodeBrandNotFound, "品牌不存在")
	ErrLineNotFound  = apperrors.New(apperrors.ErrCodeLineNotFound, "产品线不存在")
	ErrInvalidName   = apperrors.New(apperrors.ErrCodeInvalidParams, "名称不能为空")
)

// Repository 品牌/产品线仓储接口
type Repository interface {
	// CreateBrand 创建品牌
	CreateBrand(ctx context.Context, b *Brand) error

	// FindBrandByID 根据ID查找品牌
	FindBrandByID(ctx context.Context, id uint) (*Brand, error)

	// ListBrands 查询全部品牌
	ListBrands(ctx context.Context, onlyActive bool) ([]*Brand, error)

	// CreateLine 创建产品线
	CreateLine(ctx context.Context, l *ProductLine) error

	// FindLineByID 根据ID查找产品线
	FindLineByID(ctx context.Context, id uint) (*ProductLine, error)

	// ListLinesByBrandID 查询某品牌下的产品线
	ListLinesByBrandID(ctx context.Context, brandID uint) ([]*ProductLine, error)
}
