package product

import (
	apperrors "github.com/xiebiao/autoparts/pkg/errors"
)

// 商品领域错误定义
var (
	// ErrProductNotFound 商品不存在
	ErrProductNotFound = apperrors.New(apperrors.ErrCodeProductNotFound, "商品不存在")

	// ErrSKUDuplicate SKU已存在
	ErrSKUDuplicate = apperrors.New(apperrors.ErrCodeSKUDuplicate, "SKU编码已存在")

	// ErrInvalidSKU SKU格式不正确
	ErrInvalidSKU = apperrors.New(apperrors.ErrCodeInvalidParams, "SKU格式不正确（3-30位大写字母、数字、连字符）")

	// ErrInvalidName 商品名称不能为空
	ErrInvalidName = apperrors.New(apperrors.ErrCodeInvalidParams, "商品名称不能为空")

	// ErrInvalidBrand 品牌不能为空
	ErrInvalidBrand = apperrors.New(apperrors.ErrCodeInvalidParams, "品牌ID不能为空")

	// ErrInvalidLine 产品线不能为空
	ErrInvalidLine = apperrors.New(apperrors.ErrCodeInvalidParams, "产品线ID不能为空")

	// ErrEmptyIDSet 批量操作的ID列表不能为空
	ErrEmptyIDSet = apperrors.New(apperrors.ErrCodeInvalidParams, "商品ID列表不能为空")
)
