package promotion

import (
	"time"

	"github.com/shopspring/decimal"

	apperrors "github.com/xiebiao/autoparts/pkg/errors"
)

// 促销领域错误定义
var (
	ErrPromotionNotFound = apperrors.New(apperrors.ErrCodePromotionMissing, "促销不存在")
	ErrInvalidDiscount   = apperrors.New(apperrors.ErrCodeInvalidParams, "折扣比例必须在0-100之间")
	ErrInvalidPeriod     = apperrors.New(apperrors.ErrCodeInvalidParams, "促销结束时间必须晚于开始时间")
	ErrInvalidLine       = apperrors.New(apperrors.ErrCodeInvalidParams, "产品线ID不能为空")
)

// Promotion 促销实体
// 设计说明:
// 1. 促销按产品线生效（整条线打折）
// 2. 折扣后的成交价不能低于价格记录的MinFinalPrice（下限在售卖时校验）
// 3. 促销创建/停用会连带失效产品线筛选项缓存
type Promotion struct {
	ID          uint
	LineID      uint            // 生效的产品线
	Name        string          // 活动名称
	DiscountPct decimal.Decimal // 折扣比例（0-100）
	StartsAt    time.Time
	EndsAt      time.Time
	Active      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewPromotion 创建促销(工厂方法)
func NewPromotion(lineID uint, name string, discountPct decimal.Decimal, startsAt, endsAt time.Time) (*Promotion, error) {
	if lineID == 0 {
		return nil, ErrInvalidLine
	}
	if discountPct.IsNegative() || discountPct.GreaterThan(decimal.NewFromInt(100)) {
		return nil, ErrInvalidDiscount
	}
	if !endsAt.After(startsAt) {
		return nil, ErrInvalidPeriod
	}

	now := time.Now()
	return &Promotion{
		LineID:      lineID,
		Name:        name,
		DiscountPct: discountPct,
		StartsAt:    startsAt,
		EndsAt:      endsAt,
		Active:      true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// IsCurrent 判断促销当前是否生效
func (p *Promotion) IsCurrent(at time.Time) bool {
	return p.Active && !at.Before(p.StartsAt) && at.Before(p.EndsAt)
}

// Apply 计算折扣后的价格（不低于floor）
// floor是价格记录的MinFinalPrice——促销不能把成交价打到最低价以下
func (p *Promotion) Apply(price, floor decimal.Decimal) decimal.Decimal {
	discounted := price.Mul(decimal.NewFromInt(100).Sub(p.DiscountPct)).Div(decimal.NewFromInt(100)).Round(2)
	if discounted.LessThan(floor) {
		return floor
	}
	return discounted
}
