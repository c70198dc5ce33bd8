package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/wms-platform/outbound-config-service/pkg/metrics"
)

// MetricsMiddleware creates middleware that records HTTP metrics
func MetricsMiddleware(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Skip metrics endpoint to avoid recursion
		if c.Request.URL.Path == "/metrics" {
			c.Next()
			return
		}

		m.IncrementHTTPRequestsInFlight()
		defer m.DecrementHTTPRequestsInFlight()

		start := time.Now()

		c.Next()

		duration := time.Since(start)
		status := c.Writer.Status()
		method := c.Request.Method
		path := c.FullPath() // Use route pattern, not actual path

		if path == "" {
			path = c.Request.URL.Path
		}

		m.RecordHTTPRequest(method, path, status, duration)
	}
}

// MetricsEndpoint returns a handler for the /metrics endpoint
func MetricsEndpoint(m *metrics.Metrics) gin.HandlerFunc {
	handler := m.Handler()
	return func(c *gin.Context) {
		handler.ServeHTTP(c.Writer, c.Request)
	}
}

// BusinessMetrics provides helpers for recording business-specific metrics
type BusinessMetrics struct {
	metrics *metrics.Metrics
}

// NewBusinessMetrics creates a new BusinessMetrics helper
func NewBusinessMetrics(m *metrics.Metrics) *BusinessMetrics {
	return &BusinessMetrics{metrics: m}
}

// RecordConfigCreated records a configuration record creation
func (b *BusinessMetrics) RecordConfigCreated(entityType string) {
	b.metrics.RecordConfigCreated(entityType)
}

// RecordConfigUpdated records a configuration record update
func (b *BusinessMetrics) RecordConfigUpdated(entityType string) {
	b.metrics.RecordConfigUpdated(entityType)
}

// RecordConfigDeleted records a configuration record deletion
func (b *BusinessMetrics) RecordConfigDeleted(entityType string) {
	b.metrics.RecordConfigDeleted(entityType)
}

// RecordWizardTransition records a wizard step transition attempt
func (b *BusinessMetrics) RecordWizardTransition(transition string, allowed bool) {
	b.metrics.RecordWizardTransition(transition, allowed)
}

// RecordTemplateApplied records a template application
func (b *BusinessMetrics) RecordTemplateApplied(template string, success bool) {
	b.metrics.RecordTemplateApplied(template, success)
}

// RequestMetrics extracts metrics from a gin context for custom recording
type RequestMetrics struct {
	Method    string
	Path      string
	Status    int
	Duration  time.Duration
	ClientIP  string
	UserAgent string
	RequestID string
}

// ExtractRequestMetrics extracts metrics from the current request
func ExtractRequestMetrics(c *gin.Context, duration time.Duration) *RequestMetrics {
	path := c.FullPath()
	if path == "" {
		path = c.Request.URL.Path
	}

	requestID, _ := c.Get(ContextKeyRequestID)
	reqID, _ := requestID.(string)

	return &RequestMetrics{
		Method:    c.Request.Method,
		Path:      path,
		Status:    c.Writer.Status(),
		Duration:  duration,
		ClientIP:  c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
		RequestID: reqID,
	}
}
