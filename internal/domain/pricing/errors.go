package pricing

import (
	apperrors "github.com/xiebiao/autoparts/pkg/errors"
)

// 价格领域错误定义
var (
	// ErrNoPriceHistory 商品没有任何价格记录
	// 注意："尚未定价"是合法状态，Resolver会把它映射为0而不是错误
	ErrNoPriceHistory = apperrors.New(apperrors.ErrCodeNotFound, "商品没有价格记录")

	// ErrInvalidProductID 无效的商品ID
	ErrInvalidProductID = apperrors.New(apperrors.ErrCodeInvalidParams, "商品ID不能为空")

	// ErrInvalidPrice 无效的价格
	ErrInvalidPrice = apperrors.New(apperrors.ErrCodeInvalidParams, "售价必须大于0")

	// ErrInvalidMinFinalPrice 无效的最低成交价
	ErrInvalidMinFinalPrice = apperrors.New(apperrors.ErrCodeInvalidParams, "最低成交价必须大于0且不高于售价")

	// ErrInvalidUnitCost 无效的成本
	ErrInvalidUnitCost = apperrors.New(apperrors.ErrCodeInvalidParams, "单位成本不能为负数")
)
