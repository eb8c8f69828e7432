package stock

import "time"

// MovementType 库存变动类型
type MovementType string

const (
	MovementIn     MovementType = "IN"     // 入库（采购、调拨入）
	MovementOut    MovementType = "OUT"    // 出库（销售、调拨出）
	MovementAdjust MovementType = "ADJUST" // 盘点调整（直接设定为目标值）
)

// Valid 校验变动类型
func (t MovementType) Valid() bool {
	switch t {
	case MovementIn, MovementOut, MovementAdjust:
		return true
	}
	return false
}

// Movement 库存变动台账（领域模型）
// 设计说明:
// 1. 只增不改（Append-Only）：所有库存变更必须可追溯、可对账
// 2. 记录变更前后快照（PreviousStock/CurrentStock），排查异常时无需回放台账
// 3. 当前库存不是对台账求和——那会随记录数线性变慢，
//    而是维护在门店聚合表（AgencyStock），每次变动时upsert
type Movement struct {
	ID            uint
	ProductID     uint
	AgencyID      uint
	Quantity      int          // 变动数量（始终为正，方向由Type表达）
	PreviousStock int          // 变更前该门店库存
	CurrentStock  int          // 变更后该门店库存
	Type          MovementType // IN | OUT | ADJUST
	Reference     string       // 关联业务单号（订单号、盘点单号），可为空
	CreatedAt     time.Time
}

// NewMovement 创建台账记录（工厂方法）
func NewMovement(productID, agencyID uint, t MovementType, quantity, before, after int, reference string) *Movement {
	return &Movement{
		ProductID:     productID,
		AgencyID:      agencyID,
		Quantity:      quantity,
		PreviousStock: before,
		CurrentStock:  after,
		Type:          t,
		Reference:     reference,
		CreatedAt:     time.Now(),
	}
}

// AgencyStock 门店库存聚合（领域模型）
// 当前库存的source of truth：商品总库存 = 所有Active门店的Current之和
type AgencyStock struct {
	ProductID uint
	AgencyID  uint
	Current   int  // 该门店当前库存快照
	Active    bool // 门店停用后不计入总库存
	UpdatedAt time.Time
}

// Apply 计算一次变动后的库存
// 返回变更前/变更后的值；OUT导致负库存时返回ErrInsufficientStock
func (a *AgencyStock) Apply(t MovementType, quantity int) (before, after int, err error) {
	before = a.Current

	switch t {
	case MovementIn:
		after = before + quantity
	case MovementOut:
		if before < quantity {
			return before, before, ErrInsufficientStock
		}
		after = before - quantity
	case MovementAdjust:
		// 盘点：quantity是目标库存值，不是增量
		after = quantity
	default:
		return before, before, ErrInvalidMovementType
	}

	a.Current = after
	a.UpdatedAt = time.Now()
	return before, after, nil
}

// IsLowStock 判断是否低库存（需要告警）
func (a *AgencyStock) IsLowStock(threshold int) bool {
	return a.Current <= threshold && a.Current >= 0
}
