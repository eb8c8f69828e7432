package product

import (
	"context"
	"log"
	"time"

	"github.com/xiebiao/autoparts/internal/domain/catalog"
	"github.com/xiebiao/autoparts/internal/domain/merchant"
	"github.com/xiebiao/autoparts/internal/domain/product"
	"github.com/xiebiao/autoparts/pkg/saga"
)

// BulkUpdateStatusUseCase 批量上下架用例
//
// 设计说明:
// 1. 涉及三个系统:MySQL（状态行）、Redis（派生缓存）、Google Merchant（外部目录），
//    无法用单一本地事务覆盖，采用Saga编排
// 2. 失效精确到ID集合:调用方已知道受影响的商品，删除每个商品的派生key组，
//    另外连带失效产品线筛选项缓存
// 3. Merchant同步失败触发补偿:DB状态回滚到更新前的快照，缓存再失效一次
//    （缓存删除本身幂等，重复失效无害）
type BulkUpdateStatusUseCase struct {
	productRepo product.Repository
	invalidator *catalog.Invalidator
	merchantAPI merchant.CatalogAPI
}

// NewBulkUpdateStatusUseCase 创建批量上下架用例
func NewBulkUpdateStatusUseCase(
	productRepo product.Repository,
	invalidator *catalog.Invalidator,
	merchantAPI merchant.CatalogAPI,
) *BulkUpdateStatusUseCase {
	return &BulkUpdateStatusUseCase{
		productRepo: productRepo,
		invalidator: invalidator,
		merchantAPI: merchantAPI,
	}
}

// BulkUpdateStatusRequest 批量上下架请求DTO
type BulkUpdateStatusRequest struct {
	ProductIDs []uint
	LineIDs    []uint // 受影响的产品线（可为空，空则模式失效筛选项）
	Active     bool
}

// BulkUpdateStatusResponse 批量上下架响应DTO
type BulkUpdateStatusResponse struct {
	Affected int64 `json:"affected"`
}

// Execute 执行批量上下架
func (uc *BulkUpdateStatusUseCase) Execute(ctx context.Context, req BulkUpdateStatusRequest) (*BulkUpdateStatusResponse, error) {
	if len(req.ProductIDs) == 0 {
		return nil, product.ErrEmptyIDSet
	}

	// 补偿需要的快照:更新前每个商品的状态
	var prevStatus map[uint]bool
	var affected int64

	s := saga.NewSaga(30 * time.Second)

	// 步骤1:更新数据库状态
	// 补偿:按快照逐组恢复原状态
	s.AddStep("update_status",
		func(ctx context.Context) error {
			snapshot, err := uc.productRepo.ListStatusByIDs(ctx, req.ProductIDs)
			if err != nil {
				return err
			}
			prevStatus = snapshot

			n, err := uc.productRepo.UpdateStatusByIDs(ctx, req.ProductIDs, req.Active)
			if err != nil {
				return err
			}
			affected = n
			return nil
		},
		func(ctx context.Context) error {
			// 按原状态分组恢复（快照里只有active/inactive两组）
			var wasActive, wasInactive []uint
			for id, active := range prevStatus {
				if active {
					wasActive = append(wasActive, id)
				} else {
					wasInactive = append(wasInactive, id)
				}
			}
			if _, err := uc.productRepo.UpdateStatusByIDs(ctx, wasActive, true); err != nil {
				return err
			}
			_, err := uc.productRepo.UpdateStatusByIDs(ctx, wasInactive, false)
			return err
		},
	)

	// 步骤2:失效派生缓存（精确到ID集合+产品线筛选项）
	// 补偿:再失效一次——删除幂等，保证补偿后的DB状态也不被旧缓存掩盖
	invalidate := func(ctx context.Context) error {
		uc.invalidator.OnWrite(ctx, catalog.NewBulkUpdated(req.ProductIDs, req.LineIDs))
		return nil
	}
	s.AddStep("invalidate_cache", invalidate, invalidate)

	// 步骤3:同步Google Merchant可售状态
	// 补偿:无需回滚——步骤1的补偿恢复DB后，下一次全量同步会纠正Merchant侧
	s.AddStep("sync_merchant",
		func(ctx context.Context) error {
			return uc.syncMerchant(ctx, req.ProductIDs)
		},
		func(ctx context.Context) error {
			log.Printf("[warn] Merchant同步进入补偿，等待下次全量同步纠正 product_ids=%v", req.ProductIDs)
			return nil
		},
	)

	if err := s.Execute(ctx); err != nil {
		return nil, err
	}

	return &BulkUpdateStatusResponse{Affected: affected}, nil
}

// syncMerchant 按商品逐个更新Merchant可售状态
func (uc *BulkUpdateStatusUseCase) syncMerchant(ctx context.Context, productIDs []uint) error {
	for _, id := range productIDs {
		p, err := uc.productRepo.FindByID(ctx, id)
		if err != nil {
			return err
		}

		availability := merchant.AvailabilityOutOfStock
		if p.Active {
			availability = merchant.AvailabilityInStock
		}

		entry := &merchant.Entry{
			OfferID:      p.SKU,
			Title:        p.Name,
			Description:  p.Description,
			Availability: availability,
			MPN:          p.OEMCode,
		}
		if err := uc.merchantAPI.Upsert(ctx, entry); err != nil {
			return err
		}
	}
	return nil
}
