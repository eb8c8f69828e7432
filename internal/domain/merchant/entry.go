package merchant

import (
	"context"

	"github.com/shopspring/decimal"
)

// Availability 商品可售状态（Google Merchant取值）
const (
	AvailabilityInStock    = "in stock"
	AvailabilityOutOfStock = "out of stock"
)

// Entry 外部商品目录条目
// 推送到Google Merchant Center的商品快照
type Entry struct {
	OfferID      string          // 商家侧商品唯一标识（SKU）
	Title        string          // 商品标题
	Description  string          // 商品描述
	Link         string          // 商品详情页地址
	ImageLink    string          // 主图地址
	Price        decimal.Decimal // 展示价（两位小数）
	Currency     string          // 币种（配置项）
	Availability string          // in stock / out of stock
	Brand        string          // 品牌名
	MPN          string          // 制造商零件号（OEM编码）
}

// CatalogAPI 外部商品目录接口
// 由infrastructure/merchant实现（HTTP客户端+熔断器）
type CatalogAPI interface {
	// Upsert 创建或更新目录条目
	Upsert(ctx context.Context, entry *Entry) error

	// Delete 删除目录条目
	Delete(ctx context.Context, offerID string) error
}
