// Package tracing 提供基于OpenTelemetry的分布式追踪
//
// # 核心概念
//
// 1. **Trace（追踪）**：一个完整的请求链路
//   - 示例：聚合商品信息从请求到响应的全过程
//   - 包含多个Span
//
// 2. **Span（跨度）**：一个操作单元
//   - 示例：回源查询最新价格记录
//   - 包含：操作名称、开始时间、结束时间、耗时、状态
//
// 3. **SpanContext（上下文）**：跨服务传递的元数据
//   - TraceID：标识整个请求链路（所有服务共享同一个TraceID）
//   - SpanID：标识当前操作
//   - ParentSpanID：标识父操作（构建调用树）
//
// # 追踪示例
//
//	Trace: 聚合商品信息（TraceID=abc123）
//	├─ Span1: HTTP处理请求（耗时8ms）
//	│  ├─ Span2: 缓存未命中，组装快照（耗时45ms）
//	│  │  ├─ Span3: 查询最新价格（耗时30ms）← 慢！
//	│  │  └─ Span4: 汇总门店库存（耗时10ms）
//	│  └─ Span5: 写回缓存（耗时2ms）
//	总耗时：55ms，瓶颈在Span3
//
// OpenTelemetry厂商中立（不绑定Jaeger、Zipkin、Datadog），
// 并自动在HTTP Header中注入traceparent字段完成上下文传播。
//
// # 使用示例
//
//	shutdown, err := tracing.InitTracer(
//	    "autoparts-api",                    // 服务名称
//	    "localhost:4317",                   // OTLP Collector地址
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer shutdown(context.Background())
//
//	func GetProductInfo(ctx context.Context, id uint) error {
//	    ctx, span := tracing.StartSpan(ctx, "autoparts-api", "GetProductInfo")
//	    defer span.End()
//
//	    span.SetAttributes(attribute.Int("product_id", int(id)))
//
//	    if err := assembler.Assemble(ctx, id); err != nil {
//	        span.RecordError(err)
//	        span.SetStatus(codes.Error, err.Error())
//	        return err
//	    }
//	    return nil
//	}
package tracing

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
	"go.opentelemetry.io/otel/trace"
)

// InitTracer 初始化全局Tracer Provider
//
// 参数：
//   - serviceName: 服务名称（在Jaeger UI中显示）
//   - collectorURL: OTLP gRPC端点（如 localhost:4317）
//
// 返回：
//   - shutdown: 关闭函数（程序退出时调用，确保数据刷新）
//   - error: 初始化失败时返回错误
//
// 设计要点：
// 1. 使用OTLP协议（OpenTelemetry Protocol）而非Jaeger原生协议
//   - 优点：厂商中立，未来可无缝切换到Zipkin、Datadog
//   - 缺点：需要Jaeger 1.35+支持OTLP
//
// 2. 采样策略：
//   - AlwaysSample（100%采样）：适合开发/测试环境
//   - 生产环境建议使用TraceIDRatioBased（如1%采样）
//
// 3. 资源属性：
//   - service.name: 服务名称（必需，用于在Jaeger UI中分组）
//   - service.version: 服务版本（可选，便于区分不同版本的性能）
func InitTracer(serviceName, collectorURL string) (func(context.Context) error, error) {
	// 1. 创建OTLP gRPC Exporter
	// OTLP支持两种传输方式：
	// - gRPC（默认端口4317）：高性能，适合高吞吐场景
	// - HTTP（默认端口4318）：兼容性好，适合有防火墙限制的场景
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	exporter, err := otlptracegrpc.New(
		ctx,
		otlptracegrpc.WithEndpoint(collectorURL), // OTLP gRPC端点
		otlptracegrpc.WithInsecure(),             // 禁用TLS（生产环境应启用）
	)
	if err != nil {
		return nil, fmt.Errorf("创建OTLP exporter失败: %w", err)
	}

	// 2. 创建Resource（资源属性）
	// Resource描述产生遥测数据的实体（服务、主机、容器等）
	// 这些属性会附加到所有Span上，便于在Jaeger UI中筛选和分组
	res, err := resource.New(
		ctx,
		resource.WithAttributes(
			// service.name是必需属性，用于在Jaeger UI中标识服务
			semconv.ServiceName(serviceName),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("创建资源属性失败: %w", err)
	}

	// 3. 创建Tracer Provider
	// TracerProvider负责：创建Tracer、管理Span生命周期、
	// 应用采样策略、将Span批量发送到Exporter
	tp := sdktrace.NewTracerProvider(
		// 采样策略：AlwaysSample表示100%采样
		// 生产环境建议使用：
		// sdktrace.WithSampler(sdktrace.TraceIDRatioBased(0.01)) // 1%采样
		sdktrace.WithSampler(sdktrace.AlwaysSample()),

		// Span处理器：BatchSpanProcessor批量发送Span（性能优于SimpleSpanProcessor）
		// - 默认每2秒或512个Span发送一次
		// - 程序退出时调用shutdown()强制刷新剩余Span
		sdktrace.WithBatcher(exporter),

		// 资源属性
		sdktrace.WithResource(res),
	)

	// 4. 设置全局TracerProvider
	// 业务代码无需传递TracerProvider，直接使用otel.Tracer()获取，
	// 第三方库（HTTP、gRPC）也自动使用全局Provider
	otel.SetTracerProvider(tp)

	// 5. 设置全局TextMapPropagator（上下文传播器）
	// Propagator负责在跨服务调用时传递TraceID/SpanID
	// - W3C Trace Context：标准的HTTP Header格式（traceparent、tracestate）
	// - Baggage：传递自定义键值对（如user_id）
	otel.SetTextMapPropagator(
		propagation.NewCompositeTextMapPropagator(
			propagation.TraceContext{}, // W3C Trace Context
			propagation.Baggage{},      // Baggage
		),
	)

	// 6. 返回关闭函数
	// shutdown确保所有Span被发送到Collector
	// 必须在程序退出前调用，否则可能丢失最后一批Span
	shutdown := func(ctx context.Context) error {
		// 设置5秒超时，防止shutdown阻塞过久
		ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		return tp.Shutdown(ctx)
	}

	return shutdown, nil
}

// StartSpan 创建一个新的Span（便捷函数）
//
// 参数：
//   - ctx: 父Context（包含父Span信息）
//   - tracerName: Tracer名称（通常是服务名或模块名）
//   - spanName: Span名称（操作名称，如"GetProductInfo"）
//
// 返回：
//   - context.Context: 包含新Span的Context（传递给下游调用）
//   - trace.Span: Span对象（用于添加属性、记录错误、设置状态）
//
// 设计要点：
// 1. Span命名规范：
//   - 使用操作名：GetProductInfo、RecordPrice、AdjustStock
//   - 避免动态值：GetProduct-123（❌），应使用属性：
//     span.SetAttributes(attribute.Int("product_id", 123))
//
// 2. Span层级：
//   - 根Span：第一个Span，没有父Span（如HTTP请求处理）
//   - 子Span：嵌套在根Span下（如数据库查询、外部API调用）
//
// 3. Context传递：
//   - 必须使用返回的ctx调用下游函数，否则无法构建调用树
func StartSpan(ctx context.Context, tracerName, spanName string) (context.Context, trace.Span) {
	// 从全局Provider获取Tracer
	// tracerName用于在Jaeger UI中标识Span的来源（服务或模块）
	tracer := otel.Tracer(tracerName)

	// 创建Span
	// - 如果ctx包含父Span，新Span会自动成为子Span
	// - 如果ctx不包含父Span，新Span成为根Span
	return tracer.Start(ctx, spanName)
}

// ExtractTraceID 从Context提取TraceID（用于关联日志）
//
// 返回TraceID的十六进制字符串（32位，如"4bf92f3577b34da6a3ce929d0e0e4736"）。
// 在日志中记录TraceID，便于从日志快速定位到Jaeger追踪：
//
//	traceID := tracing.ExtractTraceID(ctx)
//	log.Printf("TraceID=%s, 价格记录已创建, ProductID=%d", traceID, productID)
func ExtractTraceID(ctx context.Context) string {
	span := trace.SpanFromContext(ctx)
	if span == nil || !span.SpanContext().IsValid() {
		return ""
	}
	return span.SpanContext().TraceID().String()
}

// ExtractSpanID 从Context提取SpanID
//
// 返回SpanID的十六进制字符串（16位，如"00f067aa0ba902b7"），
// 用于在分布式日志系统中关联Span。
func ExtractSpanID(ctx context.Context) string {
	span := trace.SpanFromContext(ctx)
	if span == nil || !span.SpanContext().IsValid() {
		return ""
	}
	return span.SpanContext().SpanID().String()
}
