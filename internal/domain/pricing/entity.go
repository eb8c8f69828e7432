package pricing

import (
	"time"

	"github.com/shopspring/decimal"
)

// PriceRecord 价格历史记录（聚合根）
// 设计说明:
// 1. 只增不改（Append-Only）：调价是插入新记录，永远不更新或删除旧记录
// 2. 某商品created_at最新的一条记录定义"当前价格"
// 3. 商品行上不落价格字段——当前价格是派生值，由catalog.Resolver计算
// 4. 金额使用decimal.Decimal，避免浮点精度问题
type PriceRecord struct {
	ID            uint
	ProductID     uint
	Price         decimal.Decimal // 售价（持久化前已按千位取整）
	MinFinalPrice decimal.Decimal // 最低成交价（促销折扣的下限）
	UnitCost      decimal.Decimal // 单位成本
	CreatedAt     time.Time
}

// NewPriceRecord 创建价格记录（工厂方法）
// 调用方必须先通过CreatePriceRecord.Validate()校验输入
func NewPriceRecord(productID uint, price, minFinalPrice, unitCost decimal.Decimal) *PriceRecord {
	return &PriceRecord{
		ProductID:     productID,
		Price:         RoundToThousand(price),
		MinFinalPrice: RoundToThousand(minFinalPrice),
		UnitCost:      unitCost.Round(2),
		CreatedAt:     time.Now(),
	}
}

// Margin 毛利率（(售价-成本)/成本）
// 成本为0时返回0，避免除零
func (r *PriceRecord) Margin() decimal.Decimal {
	if r.UnitCost.IsZero() {
		return decimal.Zero
	}
	return r.Price.Sub(r.UnitCost).Div(r.UnitCost).Round(4)
}

// =========================================
// 取整策略
// =========================================
// 两套策略作用于不同阶段，不能混用：
// - 写入时：售价按千位取整（本地货币习惯，如 12380 → 12000）
// - 读取时：只做两位小数的展示取整，绝不对已存储的值再做千位取整

// RoundToThousand 按千位取整（写入时使用）
// 示例：12380 → 12000，12500 → 13000
func RoundToThousand(d decimal.Decimal) decimal.Decimal {
	thousand := decimal.NewFromInt(1000)
	return d.Div(thousand).Round(0).Mul(thousand)
}

// RoundDisplay 两位小数展示取整（读取时使用）
func RoundDisplay(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}
