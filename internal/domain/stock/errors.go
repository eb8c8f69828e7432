package stock

import (
	apperrors "github.com/xiebiao/autoparts/pkg/errors"
)

// 库存领域错误定义
var (
	// ErrInsufficientStock 库存不足
	ErrInsufficientStock = apperrors.New(apperrors.ErrCodeInsufficientStock, "库存不足")

	// ErrInvalidMovementType 非法的库存变动类型
	ErrInvalidMovementType = apperrors.New(apperrors.ErrCodeInvalidMovement, "非法的库存变动类型")

	// ErrInvalidProductID 无效的商品ID
	ErrInvalidProductID = apperrors.New(apperrors.ErrCodeInvalidParams, "商品ID不能为空")

	// ErrInvalidAgencyID 无效的门店ID
	ErrInvalidAgencyID = apperrors.New(apperrors.ErrCodeInvalidParams, "门店ID不能为空")

	// ErrInvalidQuantity 无效的数量
	ErrInvalidQuantity = apperrors.New(apperrors.ErrCodeInvalidParams, "变动数量必须大于0")

	// ErrInactiveAgency 门店已停用
	ErrInactiveAgency = apperrors.New(apperrors.ErrCodeInactiveAgency, "门店已停用，不能变动库存")
)
