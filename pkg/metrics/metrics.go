// Package metrics 提供基于Prometheus的指标收集框架
//
// # 核心概念
//
// **1. Counter（计数器）**：只增不减的累计值
//   - 示例：缓存命中总数、HTTP请求总数、错误总数
//
// **2. Gauge（仪表盘）**：可增可减的瞬时值
//   - 示例：正在处理的HTTP请求数、熔断器状态
//
// **3. Histogram（直方图）**：观测值的分布
//   - 示例：HTTP请求耗时、消息处理耗时
//   - 特点：自动计算分位数（P50、P90、P99）
//
// # 本项目的关键指标
//
// 缓存子系统是读路径的核心，命中率直接决定数据库压力：
//
//	缓存命中率 = cache_hits_total / (cache_hits_total + cache_misses_total)
//
// PromQL示例（按kind分维度查价格缓存命中率）：
//
//	sum(rate(cache_hits_total{kind="price"}[5m]))
//	/ sum(rate(cache_hits_total{kind="price"}[5m]) + rate(cache_misses_total{kind="price"}[5m]))
//
// # 使用示例
//
//	// 1. 初始化Metrics
//	metrics.InitMetrics()
//
//	// 2. 在HTTP服务中暴露/metrics端点
//	http.Handle("/metrics", promhttp.Handler())
//	go http.ListenAndServe(":9090", nil)
//
//	// 3. 在业务代码中记录指标
//	metrics.CacheHit("price")
//	metrics.CacheMiss("stock")
//	metrics.CacheInvalidation(4)
//
// # 最佳实践
//
//  1. **使用标签（Label）区分不同维度**：kind=price/stock/info
//  2. **避免高基数标签**：不要用product_id作为标签（百万级别），
//     用kind、result这类有限取值的标签
//  3. **合理设置Histogram桶**：HTTP耗时0.001~10秒，消息处理0.001~5秒
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// initialized 标记是否已初始化（防止重复注册）
	initialized bool

	// HTTP请求相关指标

	// HTTPRequestsTotal HTTP请求总数（Counter）
	// 标签：method（GET/POST）、path（/api/products）、status（200/500）
	HTTPRequestsTotal *prometheus.CounterVec

	// HTTPRequestDuration HTTP请求耗时（Histogram）
	HTTPRequestDuration *prometheus.HistogramVec

	// HTTPRequestsInProgress 正在处理的HTTP请求数（Gauge）
	HTTPRequestsInProgress prometheus.Gauge

	// 缓存指标

	// CacheHitsTotal 缓存命中总数（Counter）
	// 标签：kind（price/stock/info/filters）
	CacheHitsTotal *prometheus.CounterVec

	// CacheMissesTotal 缓存未命中总数（Counter）
	// 标签：kind（price/stock/info/filters）
	CacheMissesTotal *prometheus.CounterVec

	// CacheInvalidationsTotal 缓存失效键总数（Counter）
	// 写操作后被删除的缓存键数量
	CacheInvalidationsTotal prometheus.Counter

	// 业务指标

	// PriceRecordsTotal 价格记录写入总数（Counter）
	PriceRecordsTotal prometheus.Counter

	// StockMovementsTotal 库存变动总数（Counter）
	// 标签：type（IN/OUT/ADJUST）
	StockMovementsTotal *prometheus.CounterVec

	// 熔断器指标

	// CircuitBreakerState 熔断器状态（Gauge）
	// 0=CLOSED, 1=OPEN, 2=HALF_OPEN
	CircuitBreakerState *prometheus.GaugeVec

	// CircuitBreakerRequests 熔断器请求总数（Counter）
	// 标签：name（熔断器名称）、result（success/failure/rejected）
	CircuitBreakerRequests *prometheus.CounterVec

	// Saga指标

	// SagaExecutionsTotal Saga执行总数（Counter）
	// 标签：result（success/failure）
	SagaExecutionsTotal *prometheus.CounterVec

	// SagaCompensationsTotal Saga补偿执行总数（Counter）
	SagaCompensationsTotal prometheus.Counter

	// 消息队列指标

	// MessagesPublishedTotal 消息发布总数（Counter）
	// 标签：exchange（交换机）、routing_key（路由键）
	MessagesPublishedTotal *prometheus.CounterVec

	// MessagesConsumedTotal 消息消费总数（Counter）
	// 标签：queue（队列名称）、result（success/failure）
	MessagesConsumedTotal *prometheus.CounterVec

	// MessageProcessingDuration 消息处理耗时（Histogram）
	MessageProcessingDuration prometheus.Histogram

	// 外部服务指标

	// MerchantSyncTotal Google Merchant同步总数（Counter）
	// 标签：result（success/failure）
	MerchantSyncTotal *prometheus.CounterVec
)

// InitMetrics 初始化所有Prometheus指标
//
// 必须在程序启动时调用一次，用于注册所有指标到全局Registry
//
// 设计要点：
// 1. 使用promauto.New*自动注册到默认Registry
// 2. Counter使用*Vec支持标签（多维度统计）
// 3. 单元测试不调用本函数，便捷函数对nil指标直接跳过
func InitMetrics() {
	// 防止重复初始化
	if initialized {
		return
	}
	initialized = true

	// HTTP请求指标
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "HTTP请求总数",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "http_request_duration_seconds",
			Help: "HTTP请求耗时（秒）",
			// 桶设置：1ms、10ms、100ms、500ms、1s、5s、10s
			Buckets: []float64{0.001, 0.01, 0.1, 0.5, 1, 5, 10},
		},
		[]string{"method", "path"},
	)

	HTTPRequestsInProgress = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_requests_in_progress",
			Help: "正在处理的HTTP请求数",
		},
	)

	// 缓存指标
	CacheHitsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_hits_total",
			Help: "缓存命中总数",
		},
		[]string{"kind"}, // 标签：缓存类别（price/stock/info/filters）
	)

	CacheMissesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_misses_total",
			Help: "缓存未命中总数",
		},
		[]string{"kind"},
	)

	CacheInvalidationsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "cache_invalidations_total",
			Help: "缓存失效键总数",
		},
	)

	// 业务指标
	PriceRecordsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "price_records_total",
			Help: "价格记录写入总数",
		},
	)

	StockMovementsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stock_movements_total",
			Help: "库存变动总数",
		},
		[]string{"type"}, // 标签：变动类型（IN/OUT/ADJUST）
	)

	// 熔断器指标
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "熔断器状态（0=CLOSED, 1=OPEN, 2=HALF_OPEN）",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "熔断器请求总数",
		},
		[]string{"name", "result"}, // 标签：熔断器名称、结果（success/failure/rejected）
	)

	// Saga指标
	SagaExecutionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "saga_executions_total",
			Help: "Saga执行总数",
		},
		[]string{"result"},
	)

	SagaCompensationsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "saga_compensations_total",
			Help: "Saga补偿执行总数",
		},
	)

	// 消息队列指标
	MessagesPublishedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "messages_published_total",
			Help: "消息发布总数",
		},
		[]string{"exchange", "routing_key"},
	)

	MessagesConsumedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "messages_consumed_total",
			Help: "消息消费总数",
		},
		[]string{"queue", "result"},
	)

	MessageProcessingDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "message_processing_duration_seconds",
			Help:    "消息处理耗时（秒）",
			Buckets: []float64{0.001, 0.01, 0.1, 0.5, 1, 5},
		},
	)

	// 外部服务指标
	MerchantSyncTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "merchant_sync_total",
			Help: "Google Merchant同步总数",
		},
		[]string{"result"},
	)
}

// =========================================
// 便捷函数
// =========================================
// 业务代码统一走便捷函数，未初始化时（单元测试）对nil指标直接跳过

// CacheHit 记录一次缓存命中
func CacheHit(kind string) {
	if CacheHitsTotal == nil {
		return
	}
	CacheHitsTotal.WithLabelValues(kind).Inc()
}

// CacheMiss 记录一次缓存未命中
func CacheMiss(kind string) {
	if CacheMissesTotal == nil {
		return
	}
	CacheMissesTotal.WithLabelValues(kind).Inc()
}

// CacheInvalidation 记录n个缓存键被失效
func CacheInvalidation(n int) {
	if CacheInvalidationsTotal == nil || n <= 0 {
		return
	}
	CacheInvalidationsTotal.Add(float64(n))
}

// PriceRecorded 记录一次价格写入
func PriceRecorded() {
	if PriceRecordsTotal == nil {
		return
	}
	PriceRecordsTotal.Inc()
}

// StockMoved 记录一次库存变动
func StockMoved(movementType string) {
	if StockMovementsTotal == nil {
		return
	}
	StockMovementsTotal.WithLabelValues(movementType).Inc()
}

// MerchantSynced 记录一次Merchant同步结果
func MerchantSynced(result string) {
	if MerchantSyncTotal == nil {
		return
	}
	MerchantSyncTotal.WithLabelValues(result).Inc()
}
