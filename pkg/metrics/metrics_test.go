package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

// TestNilSafety 未初始化时便捷函数不应panic
// 必须排在InitMetrics之前执行（Go按源文件顺序运行测试）
func TestNilSafety(t *testing.T) {
	if initialized {
		t.Skip("指标已被其他测试初始化，跳过nil安全检查")
	}

	// 所有便捷函数在指标为nil时直接返回
	CacheHit("price")
	CacheMiss("stock")
	CacheInvalidation(4)
	PriceRecorded()
	StockMoved("IN")
	MerchantSynced("success")

	t.Log("✅ 未初始化时便捷函数安全跳过")
}

// TestInitMetrics 测试指标初始化
func TestInitMetrics(t *testing.T) {
	// 初始化指标（重复调用应幂等）
	InitMetrics()
	InitMetrics()

	// 验证所有指标已创建
	if HTTPRequestsTotal == nil {
		t.Error("HTTPRequestsTotal未初始化")
	}
	if HTTPRequestDuration == nil {
		t.Error("HTTPRequestDuration未初始化")
	}
	if HTTPRequestsInProgress == nil {
		t.Error("HTTPRequestsInProgress未初始化")
	}
	if CacheHitsTotal == nil {
		t.Error("CacheHitsTotal未初始化")
	}
	if StockMovementsTotal == nil {
		t.Error("StockMovementsTotal未初始化")
	}
	if MerchantSyncTotal == nil {
		t.Error("MerchantSyncTotal未初始化")
	}

	t.Log("✅ 所有指标初始化成功")
}

// TestCacheCounters 测试缓存命中/未命中计数
func TestCacheCounters(t *testing.T) {
	InitMetrics()

	base := getCounterVecValue(t, CacheHitsTotal, map[string]string{"kind": "price"})

	// 命中2次price，1次info
	CacheHit("price")
	CacheHit("price")
	CacheHit("info")

	value := getCounterVecValue(t, CacheHitsTotal, map[string]string{"kind": "price"})
	if value != base+2 {
		t.Errorf("price命中计数错误: expected=%f, got=%f", base+2, value)
	}

	// 未命中走独立Counter，不影响命中计数
	missBase := getCounterVecValue(t, CacheMissesTotal, map[string]string{"kind": "price"})
	CacheMiss("price")
	missValue := getCounterVecValue(t, CacheMissesTotal, map[string]string{"kind": "price"})
	if missValue != missBase+1 {
		t.Errorf("price未命中计数错误: expected=%f, got=%f", missBase+1, missValue)
	}

	t.Log("✅ 缓存计数测试通过")
}

// TestCacheInvalidation 测试失效键计数
func TestCacheInvalidation(t *testing.T) {
	InitMetrics()

	base := getCounterValue(t, CacheInvalidationsTotal)

	// 一次写失效4个派生键
	CacheInvalidation(4)

	// n<=0直接跳过
	CacheInvalidation(0)
	CacheInvalidation(-1)

	value := getCounterValue(t, CacheInvalidationsTotal)
	if value != base+4 {
		t.Errorf("失效键计数错误: expected=%f, got=%f", base+4, value)
	}

	t.Log("✅ 失效键计数测试通过")
}

// TestStockMovements 测试按变动类型分维度的库存计数
func TestStockMovements(t *testing.T) {
	InitMetrics()

	inBase := getCounterVecValue(t, StockMovementsTotal, map[string]string{"type": "IN"})
	outBase := getCounterVecValue(t, StockMovementsTotal, map[string]string{"type": "OUT"})

	StockMoved("IN")
	StockMoved("IN")
	StockMoved("OUT")

	inValue := getCounterVecValue(t, StockMovementsTotal, map[string]string{"type": "IN"})
	if inValue != inBase+2 {
		t.Errorf("IN计数错误: expected=%f, got=%f", inBase+2, inValue)
	}

	outValue := getCounterVecValue(t, StockMovementsTotal, map[string]string{"type": "OUT"})
	if outValue != outBase+1 {
		t.Errorf("OUT计数错误: expected=%f, got=%f", outBase+1, outValue)
	}

	t.Log("✅ 库存变动计数测试通过")
}

// TestMerchantSync 测试Merchant同步结果计数
func TestMerchantSync(t *testing.T) {
	InitMetrics()

	okBase := getCounterVecValue(t, MerchantSyncTotal, map[string]string{"result": "success"})
	failBase := getCounterVecValue(t, MerchantSyncTotal, map[string]string{"result": "failure"})

	MerchantSynced("success")
	MerchantSynced("failure")
	MerchantSynced("failure")

	okValue := getCounterVecValue(t, MerchantSyncTotal, map[string]string{"result": "success"})
	if okValue != okBase+1 {
		t.Errorf("success计数错误: expected=%f, got=%f", okBase+1, okValue)
	}

	failValue := getCounterVecValue(t, MerchantSyncTotal, map[string]string{"result": "failure"})
	if failValue != failBase+2 {
		t.Errorf("failure计数错误: expected=%f, got=%f", failBase+2, failValue)
	}

	t.Log("✅ Merchant同步计数测试通过")
}

// TestHTTPMetrics 测试HTTP请求指标
func TestHTTPMetrics(t *testing.T) {
	InitMetrics()

	// Gauge：请求进入递增，完成递减
	gaugeBase := getGaugeValue(t, HTTPRequestsInProgress)
	HTTPRequestsInProgress.Inc()
	HTTPRequestsInProgress.Inc()
	HTTPRequestsInProgress.Dec()

	gaugeValue := getGaugeValue(t, HTTPRequestsInProgress)
	if gaugeValue != gaugeBase+1 {
		t.Errorf("in_progress值错误: expected=%f, got=%f", gaugeBase+1, gaugeValue)
	}
	HTTPRequestsInProgress.Dec() // 归位

	// CounterVec：按method/path/status分维度
	labels := map[string]string{"method": "GET", "path": "/api/v1/products/:id/info", "status": "200"}
	counterBase := getCounterVecValue(t, HTTPRequestsTotal, labels)

	HTTPRequestsTotal.WithLabelValues("GET", "/api/v1/products/:id/info", "200").Inc()
	HTTPRequestsTotal.WithLabelValues("GET", "/api/v1/products/:id/info", "200").Inc()

	counterValue := getCounterVecValue(t, HTTPRequestsTotal, labels)
	if counterValue != counterBase+2 {
		t.Errorf("请求总数错误: expected=%f, got=%f", counterBase+2, counterValue)
	}

	// HistogramVec：记录耗时
	histLabels := map[string]string{"method": "GET", "path": "/api/v1/products/:id/info"}
	histBase := getHistogramVecCount(t, HTTPRequestDuration, histLabels)

	HTTPRequestDuration.WithLabelValues("GET", "/api/v1/products/:id/info").Observe(0.05)
	HTTPRequestDuration.WithLabelValues("GET", "/api/v1/products/:id/info").Observe(0.2)

	histCount := getHistogramVecCount(t, HTTPRequestDuration, histLabels)
	if histCount != histBase+2 {
		t.Errorf("耗时观测次数错误: expected=%d, got=%d", histBase+2, histCount)
	}

	t.Log("✅ HTTP指标测试通过")
}

// TestCircuitBreakerGauge 测试熔断器状态Gauge
func TestCircuitBreakerGauge(t *testing.T) {
	InitMetrics()

	// 设置不同熔断器的状态
	CircuitBreakerState.WithLabelValues("merchant").Set(0) // CLOSED
	CircuitBreakerState.WithLabelValues("backup").Set(1)   // OPEN

	value1 := getGaugeVecValue(t, CircuitBreakerState, map[string]string{"name": "merchant"})
	if value1 != 0 {
		t.Errorf("merchant状态错误: expected=0, got=%f", value1)
	}

	value2 := getGaugeVecValue(t, CircuitBreakerState, map[string]string{"name": "backup"})
	if value2 != 1 {
		t.Errorf("backup状态错误: expected=1, got=%f", value2)
	}

	t.Log("✅ 熔断器状态测试通过")
}

// 辅助函数：获取Counter值
func getCounterValue(t *testing.T, counter prometheus.Counter) float64 {
	t.Helper()
	var metric dto.Metric
	if err := counter.Write(&metric); err != nil {
		t.Fatalf("读取Counter值失败: %v", err)
	}
	return metric.Counter.GetValue()
}

// 辅助函数：获取CounterVec值
func getCounterVecValue(t *testing.T, counterVec *prometheus.CounterVec, labels map[string]string) float64 {
	t.Helper()
	var metric dto.Metric
	counter := counterVec.With(labels)
	if err := counter.(prometheus.Counter).Write(&metric); err != nil {
		t.Fatalf("读取CounterVec值失败: %v", err)
	}
	return metric.Counter.GetValue()
}

// 辅助函数：获取Gauge值
func getGaugeValue(t *testing.T, gauge prometheus.Gauge) float64 {
	t.Helper()
	var metric dto.Metric
	if err := gauge.Write(&metric); err != nil {
		t.Fatalf("读取Gauge值失败: %v", err)
	}
	return metric.Gauge.GetValue()
}

// 辅助函数：获取GaugeVec值
func getGaugeVecValue(t *testing.T, gaugeVec *prometheus.GaugeVec, labels map[string]string) float64 {
	t.Helper()
	var metric dto.Metric
	gauge := gaugeVec.With(labels)
	if err := gauge.(prometheus.Gauge).Write(&metric); err != nil {
		t.Fatalf("读取GaugeVec值失败: %v", err)
	}
	return metric.Gauge.GetValue()
}

// 辅助函数：获取HistogramVec观测次数
func getHistogramVecCount(t *testing.T, histogramVec *prometheus.HistogramVec, labels map[string]string) uint64 {
	t.Helper()
	var metric dto.Metric
	histogram := histogramVec.With(labels)
	if err := histogram.(prometheus.Histogram).Write(&metric); err != nil {
		t.Fatalf("读取HistogramVec值失败: %v", err)
	}
	return metric.Histogram.GetSampleCount()
}
