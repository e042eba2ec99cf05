package router

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/yuk-nabung/backend/internal/models"
)

var requestCount = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "requests_total",
		Help: "How many HTTP requests processed, partitioned by status code and HTTP method.",
	},
	[]string{"code", "method", "url"},
)

var requestDuration = prometheus.NewHistogramVec(
	prometheus.HistogramOpts{
		Name: "request_duration_seconds",
		Help: "The HTTP request latencies in seconds.",
	},
	[]string{"code", "method", "url"},
)

// registerPrometheusMetrics registers all Prometheus metrics with the
// default registry. Re-registration happens when the router is
// configured more than once in the same process (tests) and is not an
// error.
func registerPrometheusMetrics() error {
	for _, collector := range []prometheus.Collector{requestCount, requestDuration} {
		if err := prometheus.Register(collector); err != nil {
			var are prometheus.AlreadyRegisteredError
			if !errors.As(err, &are) {
				return fmt.Errorf("could not register %s with Prometheus", collector)
			}
		}
	}

	return nil
}

// MetricsMiddleware updates Prometheus metrics.
func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		status := strconv.Itoa(c.Writer.Status())
		elapsed := float64(time.Since(start)) / float64(time.Second)

		// Replace all URL parameters with their name to reduce cardinality
		// https://prometheus.io/docs/practices/naming/#labels
		url := c.Request.URL.Path
		for _, p := range c.Params {
			url = strings.Replace(url, p.Value, fmt.Sprintf(":%s", p.Key), 1)
		}

		requestDuration.WithLabelValues(status, c.Request.Method, url).Observe(elapsed)
		requestCount.WithLabelValues(status, c.Request.Method, url).Inc()
	}
}

// Authenticate resolves the user identity set by the external auth
// collaborator in the X-User-ID header. Requests without a resolvable
// user are rejected, the user row is provisioned on first sight.
func Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("X-User-ID")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "no authenticated user for this request"})
			return
		}

		id, err := uuid.Parse(header)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "the authenticated user ID is not a valid UUID"})
			return
		}

		user, err := models.EnsureUser(models.DB, id)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": models.ErrGeneral.Error()})
			return
		}

		c.Set(string(models.ContextUser), user)
		c.Next()
	}
}

// RequireCronSecret guards the batch job endpoints. They are only for
// the trusted external scheduler, authenticated by a shared secret.
// With no CRON_SECRET configured the endpoints stay closed.
func RequireCronSecret() gin.HandlerFunc {
	return func(c *gin.Context) {
		secret, ok := os.LookupEnv("CRON_SECRET")
		if !ok || secret == "" || c.GetHeader("X-Cron-Secret") != secret {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "the cron secret for this request is missing or wrong"})
			return
		}

		c.Next()
	}
}
