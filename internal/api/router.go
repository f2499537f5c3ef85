package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"ZhihuClipper/internal/usecase"
)

// NewRouter builds the panel HTTP server.
func NewRouter(panel *usecase.Panel, streamer *usecase.Streamer, log *slog.Logger) *gin.Engine {
	handler := NewHandler(panel, streamer, log)

	router := gin.New()
	router.Use(gin.Recovery(), requestLogger(log), localOrigin())

	router.GET("/health", handler.Health)

	api := router.Group("/api", requireJSON())
	{
		api.POST("/extract", handler.Extract)
		api.GET("/content", handler.Content)
		api.DELETE("/content", handler.Clear)
		api.POST("/copy", handler.Copy)
		api.POST("/disguise", handler.Disguise)
	}

	router.GET("/ws/panel", handler.PanelSocket)

	router.NoRoute(func(c *gin.Context) {
		respondError(c, http.StatusNotFound, ErrorNotFound, "route not found")
	})

	return router
}

func requestLogger(log *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		if log == nil {
			return
		}
		log.Debug("request served",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}
