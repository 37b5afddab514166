package endpoint

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/seqkit/observability"
)

// HealthChecker reports the aggregated health of the service.
type HealthChecker func(ctx context.Context) *observability.ServiceHealth

// Health returns a handler that reports service health including component
// statuses. A down service answers 503; degraded still answers 200.
func Health(checker HealthChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		sh := checker(c.Request.Context())

		status := http.StatusOK
		if sh.Status == observability.HealthStatusDown {
			status = http.StatusServiceUnavailable
		}
		c.JSON(status, sh)
	}
}
