package promotion

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustPromotion(t *testing.T, pct string) *Promotion {
	t.Helper()
	now := time.Now()
	p, err := NewPromotion(5, "月末促销", decimal.RequireFromString(pct), now, now.Add(72*time.Hour))
	require.NoError(t, err)
	return p
}

// TestNewPromotion_Validation 工厂方法校验
func TestNewPromotion_Validation(t *testing.T) {
	now := time.Now()

	t.Run("产品线为空", func(t *testing.T) {
		_, err := NewPromotion(0, "x", decimal.NewFromInt(10), now, now.Add(time.Hour))
		assert.ErrorIs(t, err, ErrInvalidLine)
	})

	t.Run("折扣超过100", func(t *testing.T) {
		_, err := NewPromotion(5, "x", decimal.NewFromInt(101), now, now.Add(time.Hour))
		assert.ErrorIs(t, err, ErrInvalidDiscount)
	})

	t.Run("负折扣", func(t *testing.T) {
		_, err := NewPromotion(5, "x", decimal.NewFromInt(-1), now, now.Add(time.Hour))
		assert.ErrorIs(t, err, ErrInvalidDiscount)
	})

	t.Run("结束时间不晚于开始", func(t *testing.T) {
		_, err := NewPromotion(5, "x", decimal.NewFromInt(10), now, now)
		assert.ErrorIs(t, err, ErrInvalidPeriod)
	})
}

// TestIsCurrent 生效窗口判断（左闭右开）
func TestIsCurrent(t *testing.T) {
	start := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	end := start.Add(72 * time.Hour)
	p, err := NewPromotion(5, "x", decimal.NewFromInt(10), start, end)
	require.NoError(t, err)

	assert.True(t, p.IsCurrent(start), "开始时刻生效")
	assert.True(t, p.IsCurrent(end.Add(-time.Second)))
	assert.False(t, p.IsCurrent(start.Add(-time.Second)), "开始前不生效")
	assert.False(t, p.IsCurrent(end), "结束时刻不再生效")

	p.Active = false
	assert.False(t, p.IsCurrent(start), "停用后窗口内也不生效")
}

// TestApply 折扣计算
func TestApply(t *testing.T) {
	p := mustPromotion(t, "20")

	got := p.Apply(decimal.NewFromInt(100000), decimal.NewFromInt(50000))
	assert.Equal(t, "80000", got.String(), "八折")
}

// TestApply_FlooredByMinFinalPrice 成交价不能低于最低成交价
func TestApply_FlooredByMinFinalPrice(t *testing.T) {
	p := mustPromotion(t, "90") // 一折

	got := p.Apply(decimal.NewFromInt(100000), decimal.NewFromInt(50000))
	assert.Equal(t, "50000", got.String(), "折后10000低于下限，应钉在50000")
}

// TestApply_ZeroDiscount 零折扣原价返回
func TestApply_ZeroDiscount(t *testing.T) {
	p := mustPromotion(t, "0")

	got := p.Apply(decimal.NewFromInt(100000), decimal.Zero)
	assert.Equal(t, "100000", got.String())
}
