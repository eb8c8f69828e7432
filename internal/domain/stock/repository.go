package stock

import (
	"context"
)

// Repository 库存仓储接口(依赖倒置原则)
// 设计说明:
// 1. 台账只有Create和查询（只增不改）
// 2. 门店聚合通过Lock+Upsert维护，调整流程必须在事务内执行:
//    LockAgencyStock → Apply → CreateMovement → UpsertAgencyStock
type Repository interface {
	// SumActiveByProductID 汇总某商品所有Active门店的当前库存
	// 没有任何门店记录时返回0（不是错误）
	SumActiveByProductID(ctx context.Context, productID uint) (int, error)

	// FindAgencyStock 查询某商品在某门店的库存聚合
	// 不存在时返回一个Current=0、Active=true的新聚合（首次入库场景）
	FindAgencyStock(ctx context.Context, productID, agencyID uint) (*AgencyStock, error)

	// LockAgencyStock 悲观锁查询门店库存聚合(SELECT FOR UPDATE)
	// 用于变动流程，防止并发变动互相覆盖快照
	LockAgencyStock(ctx context.Context, productID, agencyID uint) (*AgencyStock, error)

	// UpsertAgencyStock 插入或更新门店库存聚合
	UpsertAgencyStock(ctx context.Context, as *AgencyStock) error

	// CreateMovement 插入一条台账记录
	CreateMovement(ctx context.Context, m *Movement) error

	// ListMovements 按时间倒序查询某商品的变动台账
	ListMovements(ctx context.Context, productID uint, limit int) ([]*Movement, error)
}

// AdjustStock 库存变动输入（显式类型，边界校验）
type AdjustStock struct {
	ProductID uint
	AgencyID  uint
	Quantity  int          // IN/OUT为变动量，ADJUST为目标值
	Type      MovementType // IN | OUT | ADJUST
	Reference string       // 关联业务单号，可为空
}

// Validate 业务规则校验
func (in AdjustStock) Validate() error {
	if in.ProductID == 0 {
		return ErrInvalidProductID
	}
	if in.AgencyID == 0 {
		return ErrInvalidAgencyID
	}
	if !in.Type.Valid() {
		return ErrInvalidMovementType
	}
	// ADJUST允许设为0（清空库存），IN/OUT必须为正数
	if in.Type != MovementAdjust && in.Quantity <= 0 {
		return ErrInvalidQuantity
	}
	if in.Type == MovementAdjust && in.Quantity < 0 {
		return ErrInvalidQuantity
	}
	return nil
}
