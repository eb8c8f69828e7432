package stock

import (
	"context"
	"log"
	"time"

	"github.com/xiebiao/autoparts/internal/application/events"
	"github.com/xiebiao/autoparts/internal/domain/catalog"
	"github.com/xiebiao/autoparts/internal/domain/product"
	"github.com/xiebiao/autoparts/internal/domain/stock"
	"github.com/xiebiao/autoparts/internal/infrastructure/persistence/mysql"
	"github.com/xiebiao/autoparts/pkg/metrics"
	"github.com/xiebiao/autoparts/pkg/mq"
)

// lowStockThreshold 低库存告警阈值
// TODO: 按产品线做成可配置阈值（需要产品线表加字段）
const lowStockThreshold = 5

// AdjustStockUseCase 库存变动用例
// 核心问题:并发变动导致台账快照错乱
// 场景:同一(商品,门店)两个变动并发执行
// 错误实现:
//  1. 读当前库存 → 10
//  2. 计算变动后 → 两个请求都基于10计算
//  3. 写台账+更新聚合 → 其中一次变动"丢失"，台账前后快照对不上
//
// 正确实现:悲观锁
//  1. SELECT FOR UPDATE锁定门店聚合行
//  2. Apply计算前后快照
//  3. 插入台账+upsert聚合
//  4. COMMIT释放锁
//
// 事务提交成功后才失效缓存、发布事件——失败的变动不触发任何失效
type AdjustStockUseCase struct {
	stockRepo   stock.Repository
	productRepo product.Repository
	txManager   *mysql.TxManager
	invalidator *catalog.Invalidator
	publisher   *mq.Publisher
}

// NewAdjustStockUseCase 创建库存变动用例
func NewAdjustStockUseCase(
	stockRepo stock.Repository,
	productRepo product.Repository,
	txManager *mysql.TxManager,
	invalidator *catalog.Invalidator,
	publisher *mq.Publisher,
) *AdjustStockUseCase {
	return &AdjustStockUseCase{
		stockRepo:   stockRepo,
		productRepo: productRepo,
		txManager:   txManager,
		invalidator: invalidator,
		publisher:   publisher,
	}
}

// AdjustStockResponse 库存变动响应DTO
type AdjustStockResponse struct {
	MovementID    uint   `json:"movement_id"`
	ProductID     uint   `json:"product_id"`
	AgencyID      uint   `json:"agency_id"`
	Type          string `json:"type"`
	PreviousStock int    `json:"previous_stock"`
	CurrentStock  int    `json:"current_stock"`
	CreatedAt     string `json:"created_at"`
}

// Execute 执行库存变动
func (uc *AdjustStockUseCase) Execute(ctx context.Context, in stock.AdjustStock) (*AdjustStockResponse, error) {
	// 1. 边界校验
	if err := in.Validate(); err != nil {
		return nil, err
	}

	// 2. 确认商品存在
	if _, err := uc.productRepo.FindByID(ctx, in.ProductID); err != nil {
		return nil, err
	}

	// 3. 事务内执行:锁定 → 计算 → 落台账 → 更新聚合
	var movement *stock.Movement
	var agencyStock *stock.AgencyStock
	err := uc.txManager.Transaction(ctx, func(txCtx context.Context) error {
		// 锁定门店聚合行（SELECT FOR UPDATE）
		as, err := uc.stockRepo.LockAgencyStock(txCtx, in.ProductID, in.AgencyID)
		if err != nil {
			return err
		}

		// 停用门店不接受变动
		if !as.Active {
			return stock.ErrInactiveAgency
		}

		// 计算变动前后快照（OUT不足时返回ErrInsufficientStock）
		before, after, err := as.Apply(in.Type, in.Quantity)
		if err != nil {
			return err
		}

		// 插入台账
		m := stock.NewMovement(in.ProductID, in.AgencyID, in.Type, in.Quantity, before, after, in.Reference)
		if err := uc.stockRepo.CreateMovement(txCtx, m); err != nil {
			return err
		}

		// 更新门店聚合
		if err := uc.stockRepo.UpsertAgencyStock(txCtx, as); err != nil {
			return err
		}

		movement = m
		agencyStock = as
		return nil
	})
	if err != nil {
		return nil, err
	}
	metrics.StockMoved(string(in.Type))

	// 4. 失效派生缓存（提交成功后，与写同步）
	uc.invalidator.OnWrite(ctx, catalog.NewStockAdjusted(in.ProductID))

	// 5. 发布事件（尽力而为）
	uc.publishEvents(movement, agencyStock)

	return &AdjustStockResponse{
		MovementID:    movement.ID,
		ProductID:     movement.ProductID,
		AgencyID:      movement.AgencyID,
		Type:          string(movement.Type),
		PreviousStock: movement.PreviousStock,
		CurrentStock:  movement.CurrentStock,
		CreatedAt:     movement.CreatedAt.Format("2006-01-02 15:04:05"),
	}, nil
}

// publishEvents 发布库存变动/低库存事件
func (uc *AdjustStockUseCase) publishEvents(m *stock.Movement, as *stock.AgencyStock) {
	if uc.publisher == nil {
		return
	}

	ev := events.StockAdjusted{
		ProductID:     m.ProductID,
		AgencyID:      m.AgencyID,
		Type:          string(m.Type),
		Quantity:      m.Quantity,
		PreviousStock: m.PreviousStock,
		CurrentStock:  m.CurrentStock,
		AdjustedAt:    time.Now(),
	}
	if err := uc.publisher.Publish(events.RoutingStockAdjusted, ev); err != nil {
		log.Printf("[warn] 发布库存变动事件失败 product_id=%d: %v", m.ProductID, err)
	}

	// 变动后跌破阈值则追加低库存告警
	if as.IsLowStock(lowStockThreshold) {
		low := events.StockLow{
			ProductID: m.ProductID,
			AgencyID:  m.AgencyID,
			Current:   as.Current,
			Threshold: lowStockThreshold,
			RaisedAt:  time.Now(),
		}
		if err := uc.publisher.Publish(events.RoutingStockLow, low); err != nil {
			log.Printf("[warn] 发布低库存事件失败 product_id=%d: %v", m.ProductID, err)
		}
	}
}
