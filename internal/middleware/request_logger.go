package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/weiwangfds/studyhub/internal/logger"
	"github.com/weiwangfds/studyhub/internal/response"
)

// 不写入日志的请求头
var sensitiveHeaders = map[string]bool{
	"Authorization": true,
	"Cookie":        true,
	"Set-Cookie":    true,
}

// responseWriter 捕获响应体
type responseWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
	max  int
}

func (w *responseWriter) Write(b []byte) (int, error) {
	if remain := w.max - w.body.Len(); remain > 0 {
		if len(b) > remain {
			w.body.Write(b[:remain])
		} else {
			w.body.Write(b)
		}
	}
	return w.ResponseWriter.Write(b)
}

// RequestLoggerConfig 请求详情日志配置
type RequestLoggerConfig struct {
	Enabled         bool     // 是否启用
	SkipPaths       []string // 跳过记录的路径
	MaxBodySize     int      // 记录的最大请求体和响应体字节数
	IncludeHeaders  bool     // 是否包含请求头
	IncludeBody     bool     // 是否包含请求体
	IncludeResponse bool     // 是否包含响应体
}

// DefaultRequestLoggerConfig 默认配置，仅 gin debug 模式下启用
func DefaultRequestLoggerConfig() *RequestLoggerConfig {
	return &RequestLoggerConfig{
		Enabled:         gin.IsDebugging(),
		SkipPaths:       []string{"/api/health-test", "/api/health/db", "/favicon.ico"},
		MaxBodySize:     64 * 1024,
		IncludeHeaders:  true,
		IncludeBody:     true,
		IncludeResponse: true,
	}
}

// RequestLogger 以 debug 级别记录完整的请求和响应，用于本地排查
// 上传请求的 multipart 请求体不记录
func RequestLogger(cfg *RequestLoggerConfig) gin.HandlerFunc {
	if cfg == nil {
		cfg = DefaultRequestLoggerConfig()
	}
	if !cfg.Enabled {
		return func(c *gin.Context) { c.Next() }
	}

	skip := make(map[string]bool, len(cfg.SkipPaths))
	for _, p := range cfg.SkipPaths {
		skip[p] = true
	}

	return func(c *gin.Context) {
		if skip[c.Request.URL.Path] {
			c.Next()
			return
		}

		start := time.Now()
		var requestBody interface{}
		if cfg.IncludeBody && !isMultipart(c) {
			requestBody = readRequestBody(c, cfg.MaxBodySize)
		}

		writer := &responseWriter{ResponseWriter: c.Writer, body: &bytes.Buffer{}, max: cfg.MaxBodySize}
		if cfg.IncludeResponse {
			c.Writer = writer
		}

		c.Next()

		fields := map[string]interface{}{
			"type":        "request_log",
			"request_id":  c.GetString(response.RequestIDKey),
			"method":      c.Request.Method,
			"path":        c.Request.URL.Path,
			"query":       c.Request.URL.Query(),
			"status_code": c.Writer.Status(),
			"duration_ms": time.Since(start).Milliseconds(),
		}
		if cfg.IncludeHeaders {
			fields["headers"] = extractHeaders(c.Request.Header)
		}
		if requestBody != nil {
			fields["body"] = requestBody
		}
		if cfg.IncludeResponse && writer.body.Len() > 0 {
			fields["response_body"] = parseBody(writer.body.Bytes())
		}
		logger.WithFields(fields).Debug("[REQUEST_LOG]")
	}
}

func isMultipart(c *gin.Context) bool {
	return strings.HasPrefix(c.GetHeader("Content-Type"), "multipart/")
}

// readRequestBody 读取请求体后放回，后续处理器仍可读取
func readRequestBody(c *gin.Context, maxSize int) interface{} {
	if c.Request.Body == nil {
		return nil
	}
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		return map[string]string{"error": "failed to read request body"}
	}
	c.Request.Body = io.NopCloser(bytes.NewReader(body))

	if len(body) == 0 {
		return nil
	}
	if len(body) > maxSize {
		return string(body[:maxSize]) + "...(truncated)"
	}
	return parseBody(body)
}

func extractHeaders(headers map[string][]string) map[string]string {
	out := make(map[string]string, len(headers))
	for key, values := range headers {
		if sensitiveHeaders[key] {
			out[key] = "[REDACTED]"
			continue
		}
		if len(values) > 0 {
			out[key] = values[0]
		}
	}
	return out
}

// parseBody JSON 按结构记录，其余按字符串记录
func parseBody(body []byte) interface{} {
	var v interface{}
	if err := json.Unmarshal(body, &v); err == nil {
		return v
	}
	return string(body)
}
