package httpapi

import (
	"github.com/gin-gonic/gin"

	"github.com/boilerplan/boilerplan/logger"
)

type RouterConfig struct {
	Log            *logger.Logger
	AdvisorHandler *AdvisorHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(AttachRequestId())
	r.Use(CORS())
	if cfg.Log != nil {
		r.Use(RequestLogger(cfg.Log))
	}

	r.GET("/healthcheck", cfg.AdvisorHandler.HealthCheck)

	api := r.Group("/api")
	{
		api.POST("/ask", cfg.AdvisorHandler.Ask)
		api.POST("/validate", cfg.AdvisorHandler.Validate)
		api.POST("/reload", cfg.AdvisorHandler.Reload)
	}

	return r
}
