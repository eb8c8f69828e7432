package catalog

// EventKind 写事件类型
type EventKind string

const (
	// PriceInserted 新增价格记录（价格历史只增不改）
	PriceInserted EventKind = "PRICE_INSERTED"

	// StockAdjusted 库存变动（台账插入+门店聚合upsert）
	StockAdjusted EventKind = "STOCK_ADJUSTED"

	// BulkUpdated 批量更新（如批量上下架、批量改价导入）
	BulkUpdated EventKind = "BULK_UPDATED"
)

// WriteEvent 写事件
// 设计说明:
// 1. 写路径在事务提交成功后显式发出事件，由Invalidator消费
// 2. 不使用ORM生命周期钩子——写→失效的依赖关系必须显式可见、可测试
// 3. ProductIDs为空的批量事件表示无法精确枚举受影响的商品，
//    Invalidator会退化为模式删除（过度失效换正确性）
type WriteEvent struct {
	Kind       EventKind
	ProductIDs []uint
	LineIDs    []uint
}

// NewPriceInserted 价格写入事件
func NewPriceInserted(productID uint) WriteEvent {
	return WriteEvent{Kind: PriceInserted, ProductIDs: []uint{productID}}
}

// NewStockAdjusted 库存变动事件
func NewStockAdjusted(productID uint) WriteEvent {
	return WriteEvent{Kind: StockAdjusted, ProductIDs: []uint{productID}}
}

// NewBulkUpdated 批量更新事件
// productIDs可为空（无法枚举时传nil，触发模式删除）
func NewBulkUpdated(productIDs []uint, lineIDs []uint) WriteEvent {
	return WriteEvent{Kind: BulkUpdated, ProductIDs: productIDs, LineIDs: lineIDs}
}
