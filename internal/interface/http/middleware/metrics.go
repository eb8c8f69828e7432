package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/xiebiao/autoparts/pkg/metrics"
)

// Metrics HTTP指标采集中间件
// 按 method + 路由模板 + 状态码 维度统计请求数与耗时
// 注意：使用c.FullPath()而非c.Request.URL.Path，
// 否则/api/v1/products/123和/api/v1/products/456会炸开成两个时间序列（标签基数爆炸）
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		metrics.HTTPRequestsInProgress.Inc()
		defer metrics.HTTPRequestsInProgress.Dec()

		c.Next()

		path := c.FullPath()
		if path == "" {
			// 未匹配任何路由（404），统一归到一个桶
			path = "unmatched"
		}

		status := strconv.Itoa(c.Writer.Status())
		metrics.HTTPRequestsTotal.WithLabelValues(c.Request.Method, path, status).Inc()
		metrics.HTTPRequestDuration.WithLabelValues(c.Request.Method, path).Observe(time.Since(start).Seconds())
	}
}
