package endpoint

import "github.com/gin-gonic/gin"

// Register mounts the probe endpoints on r.
func Register(r gin.IRouter, serviceName string, checker HealthChecker) {
	r.GET("/health", Health(checker))
	r.GET("/alive", Liveness(serviceName))
	r.GET("/info", Info(serviceName))
}
