package pricing

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/xiebiao/autoparts/internal/application/events"
	"github.com/xiebiao/autoparts/internal/domain/catalog"
	"github.com/xiebiao/autoparts/internal/domain/pricing"
	"github.com/xiebiao/autoparts/internal/domain/product"
	"github.com/xiebiao/autoparts/pkg/metrics"
	"github.com/xiebiao/autoparts/pkg/mq"
)

// RecordPriceUseCase 调价用例
// 这是写路径的核心用例之一，完整展示"写入→失效→通知"的顺序:
// 1. 价格历史只追加insert（当前价=最新一条）
// 2. 写入成功后显式发出WriteEvent，由Invalidator删除派生缓存
// 3. 失效之后发布MQ事件，供通知消费者落库
// 失效必须与写同步执行，MQ只承载事后通知——顺序不能颠倒
type RecordPriceUseCase struct {
	priceSvc    pricing.Service
	productRepo product.Repository
	invalidator *catalog.Invalidator
	publisher   *mq.Publisher
}

// NewRecordPriceUseCase 创建调价用例
func NewRecordPriceUseCase(
	priceSvc pricing.Service,
	productRepo product.Repository,
	invalidator *catalog.Invalidator,
	publisher *mq.Publisher,
) *RecordPriceUseCase {
	return &RecordPriceUseCase{
		priceSvc:    priceSvc,
		productRepo: productRepo,
		invalidator: invalidator,
		publisher:   publisher,
	}
}

// RecordPriceResponse 调价响应DTO
type RecordPriceResponse struct {
	ID            uint   `json:"id"`
	ProductID     uint   `json:"product_id"`
	Price         string `json:"price"`
	MinFinalPrice string `json:"min_final_price"`
	UnitCost      string `json:"unit_cost"`
	CreatedAt     string `json:"created_at"`
}

// Execute 执行调价
func (uc *RecordPriceUseCase) Execute(ctx context.Context, in pricing.CreatePriceRecord) (*RecordPriceResponse, error) {
	// 1. 确认商品存在（调价对象必须是已建档商品）
	p, err := uc.productRepo.FindByID(ctx, in.ProductID)
	if err != nil {
		return nil, err
	}

	// 2. 记录调价前的最新价格（用于事件载荷）
	// 首次调价时没有历史，不是错误
	var oldPrice string
	if prev, err := uc.priceSvc.LatestPrice(ctx, in.ProductID); err == nil {
		oldPrice = prev.Price.String()
	} else if !errors.Is(err, pricing.ErrNoPriceHistory) {
		return nil, err
	}

	// 3. 领域服务落库（校验+取整+insert）
	rec, err := uc.priceSvc.RecordPrice(ctx, in)
	if err != nil {
		return nil, err
	}
	metrics.PriceRecorded()

	// 4. 失效派生缓存（与写同步；失效失败只告警，不回滚写入）
	uc.invalidator.OnWrite(ctx, catalog.NewPriceInserted(in.ProductID))

	// 5. 发布价格变动事件（尽力而为）
	if uc.publisher != nil {
		ev := events.PriceChanged{
			ProductID: in.ProductID,
			SKU:       p.SKU,
			OldPrice:  oldPrice,
			NewPrice:  rec.Price.String(),
			ChangedAt: time.Now(),
		}
		if err := uc.publisher.Publish(events.RoutingPriceChanged, ev); err != nil {
			log.Printf("[warn] 发布价格变动事件失败 product_id=%d: %v", in.ProductID, err)
		}
	}

	return &RecordPriceResponse{
		ID:            rec.ID,
		ProductID:     rec.ProductID,
		Price:         rec.Price.String(),
		MinFinalPrice: rec.MinFinalPrice.String(),
		UnitCost:      rec.UnitCost.String(),
		CreatedAt:     rec.CreatedAt.Format("2006-01-02 15:04:05"),
	}, nil
}
