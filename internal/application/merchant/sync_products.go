package merchant

import (
	"context"
	"fmt"
	"log"

	"github.com/xiebiao/autoparts/internal/domain/catalog"
	"github.com/xiebiao/autoparts/internal/domain/merchant"
	"github.com/xiebiao/autoparts/internal/domain/product"
)

// SyncProductsUseCase Google Merchant全量同步用例
// 设计说明:
// 1. 按商品组装完整目录条目:身份字段+解析后的价格/库存+关联查询
// 2. 价格/库存走catalog.Assembler，同步任务天然复用缓存
// 3. 单个商品失败不中断整批——记错误计数，最后统一返回摘要
//    （外部目录同步是最终一致任务，由定时任务反复驱动收敛）
type SyncProductsUseCase struct {
	productRepo product.Repository
	assembler   *catalog.Assembler
	merchantAPI merchant.CatalogAPI
	currency    string
	siteURL     string
}

// NewSyncProductsUseCase 创建全量同步用例
func NewSyncProductsUseCase(
	productRepo product.Repository,
	assembler *catalog.Assembler,
	merchantAPI merchant.CatalogAPI,
	currency string,
	siteURL string,
) *SyncProductsUseCase {
	return &SyncProductsUseCase{
		productRepo: productRepo,
		assembler:   assembler,
		merchantAPI: merchantAPI,
		currency:    currency,
		siteURL:     siteURL,
	}
}

// SyncResult 同步结果摘要
type SyncResult struct {
	Synced int `json:"synced"`
	Failed int `json:"failed"`
}

// Execute 同步一组商品到Merchant目录
func (uc *SyncProductsUseCase) Execute(ctx context.Context, productIDs []uint) (*SyncResult, error) {
	if len(productIDs) == 0 {
		return nil, product.ErrEmptyIDSet
	}

	result := &SyncResult{}
	for _, id := range productIDs {
		if err := uc.syncOne(ctx, id); err != nil {
			log.Printf("[warn] Merchant同步单品失败 product_id=%d: %v", id, err)
			result.Failed++
			continue
		}
		result.Synced++
	}

	return result, nil
}

// syncOne 同步单个商品
func (uc *SyncProductsUseCase) syncOne(ctx context.Context, productID uint) error {
	// 聚合信息一次拿全:身份+价格+库存+品牌+主图
	info, err := uc.assembler.Info(ctx, productID)
	if err != nil {
		return err
	}

	availability := merchant.AvailabilityOutOfStock
	if info.Active && info.Stock > 0 {
		availability = merchant.AvailabilityInStock
	}

	entry := &merchant.Entry{
		OfferID:      info.SKU,
		Title:        info.Name,
		Description:  info.Description,
		Link:         fmt.Sprintf("%s/products/%d", uc.siteURL, info.ID),
		ImageLink:    info.PrincipalImage,
		Price:        info.Price,
		Currency:     uc.currency,
		Availability: availability,
		Brand:        info.Brand,
		MPN:          info.OEMCode,
	}

	return uc.merchantAPI.Upsert(ctx, entry)
}
