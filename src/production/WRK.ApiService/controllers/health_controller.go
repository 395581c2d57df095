package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gitlab.com/maplesense1/wrk.registration_server/src/production/WRK.ApiService/health"
	logger "gitlab.com/maplesense1/wrk.registration_server/src/production/WRK.Logger"
)

const BannerText = "Workshop Registration API is running!"

// TimestampFormat is RFC 3339 in UTC with millisecond precision
const TimestampFormat = "2006-01-02T15:04:05.000Z07:00"

// HealthController handles liveness and readiness requests
type HealthController struct {
	checker *health.HealthChecker
	logger  *logger.Logger
	now     func() time.Time
}

// NewHealthController creates a new health controller
func NewHealthController(checker *health.HealthChecker, logger *logger.Logger) *HealthController {
	return &HealthController{
		checker: checker,
		logger:  logger.WithComponent("health"),
		now:     time.Now,
	}
}

// RegisterRoutes registers the health routes with Gin
func (c *HealthController) RegisterRoutes(router *gin.Engine) {
	router.GET("/", c.Banner)
	router.GET("/health", c.Health)
	router.GET("/health/live", c.HealthLive)
	router.GET("/health/ready", c.HealthReady)
}

func (c *HealthController) Banner(ctx *gin.Context) {
	ctx.String(http.StatusOK, BannerText)
}

func (c *HealthController) Health(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{
		"status":    "UP",
		"timestamp": c.now().UTC().Format(TimestampFormat),
	})
}

func (c *HealthController) HealthLive(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{
		"status": "ok",
	})
}

func (c *HealthController) HealthReady(ctx *gin.Context) {
	if err := c.checker.CheckDatabaseHealth(ctx.Request.Context()); err != nil {
		c.logger.WarnWithError(err, "Readiness check failed")
		ctx.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "unavailable",
			"db":     false,
		})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"status": "ready",
		"db":     true,
	})
}
