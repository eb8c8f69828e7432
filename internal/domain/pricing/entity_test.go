package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestRoundToThousand 写入时按千位取整
func TestRoundToThousand(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"向下取整", "12380", "12000"},
		{"四舍五入向上", "12500", "13000"},
		{"向上取整", "12800", "13000"},
		{"整千不变", "12000", "12000"},
		{"小额归零", "499", "0"},
		{"小额进千", "500", "1000"},
		{"零", "0", "0"},
		{"带小数", "85499.99", "85000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input, err := decimal.NewFromString(tt.input)
			require.NoError(t, err)
			got := RoundToThousand(input)
			assert.True(t, got.Equal(decimal.RequireFromString(tt.want)),
				"RoundToThousand(%s) = %s, want %s", tt.input, got, tt.want)
		})
	}
}

// TestRoundDisplay 读取时只做两位小数展示取整
func TestRoundDisplay(t *testing.T) {
	got := RoundDisplay(decimal.RequireFromString("12380.567"))
	assert.Equal(t, "12380.57", got.StringFixed(2))

	// 关键：读取取整绝不做千位取整
	assert.False(t, got.Equal(decimal.NewFromInt(12000)), "读取时不能做千位取整")
}

// TestNewPriceRecord_RoundsOnWrite 工厂方法在写入前做千位取整
func TestNewPriceRecord_RoundsOnWrite(t *testing.T) {
	rec := NewPriceRecord(42,
		decimal.RequireFromString("12380"),
		decimal.RequireFromString("9800"),
		decimal.RequireFromString("7512.345"))

	assert.True(t, rec.Price.Equal(decimal.NewFromInt(12000)), "售价按千位取整")
	assert.True(t, rec.MinFinalPrice.Equal(decimal.NewFromInt(10000)), "最低成交价按千位取整")
	assert.Equal(t, "7512.35", rec.UnitCost.StringFixed(2), "成本只做两位小数取整")
	assert.False(t, rec.CreatedAt.IsZero())
}

// TestMargin 毛利率计算
func TestMargin(t *testing.T) {
	rec := &PriceRecord{
		Price:    decimal.NewFromInt(12000),
		UnitCost: decimal.NewFromInt(8000),
	}
	assert.Equal(t, "0.5", rec.Margin().String(), "(12000-8000)/8000 = 0.5")

	// 成本为0不除零
	zero := &PriceRecord{Price: decimal.NewFromInt(12000)}
	assert.True(t, zero.Margin().IsZero())
}

// TestCreatePriceRecord_Validate 输入校验
func TestCreatePriceRecord_Validate(t *testing.T) {
	valid := CreatePriceRecord{
		ProductID:     42,
		Price:         decimal.NewFromInt(12000),
		MinFinalPrice: decimal.NewFromInt(10000),
		UnitCost:      decimal.NewFromInt(8000),
	}
	assert.NoError(t, valid.Validate())

	t.Run("商品ID为空", func(t *testing.T) {
		in := valid
		in.ProductID = 0
		assert.ErrorIs(t, in.Validate(), ErrInvalidProductID)
	})

	t.Run("售价非正", func(t *testing.T) {
		in := valid
		in.Price = decimal.Zero
		assert.ErrorIs(t, in.Validate(), ErrInvalidPrice)
	})

	t.Run("最低成交价高于售价", func(t *testing.T) {
		in := valid
		in.MinFinalPrice = decimal.NewFromInt(13000)
		assert.ErrorIs(t, in.Validate(), ErrInvalidMinFinalPrice)
	})
}
