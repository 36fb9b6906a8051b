// internal/api/api.go
package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gustavoamaro/rocagem-ops/backend-go/internal/api/handlers"
	"github.com/gustavoamaro/rocagem-ops/backend-go/internal/api/middleware"
	"github.com/gustavoamaro/rocagem-ops/backend-go/internal/service"
)

type Services struct {
	AreaService     *service.AreaService
	ScheduleService *service.ScheduleService
}

func NewRouter(services *Services, allowedOrigins []string) *gin.Engine {
	router := gin.New()

	// Add middleware
	router.Use(middleware.Logger())
	router.Use(middleware.Recovery())
	defaultOrigins := []string{"http://localhost:3000", "http://127.0.0.1:3000"}
	corsConfig := cors.Config{
		AllowOrigins:     defaultOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(allowedOrigins) > 0 {
		normalizedOrigins, allowAll := normalizeAllowedOrigins(allowedOrigins)
		if allowAll {
			corsConfig.AllowOrigins = nil
			corsConfig.AllowOriginFunc = func(origin string) bool { return true }
		} else if len(normalizedOrigins) > 0 {
			corsConfig.AllowOrigins = normalizedOrigins
		}
	}
	router.Use(cors.New(corsConfig))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	apiGroup := router.Group("/api/v1")

	if services != nil {
		if services.AreaService != nil {
			areaHandler := handlers.NewAreaHandler(services.AreaService)
			areaGroup := apiGroup.Group("/areas")
			{
				areaGroup.GET("", areaHandler.List)
				areaGroup.POST("", areaHandler.Create)
				areaGroup.GET("/:id", areaHandler.Get)
				areaGroup.PUT("/:id", areaHandler.Update)
				areaGroup.DELETE("/:id", areaHandler.Delete)
			}

			apiGroup.GET("/dashboard", areaHandler.Dashboard)
		}

		if services.ScheduleService != nil {
			scheduleHandler := handlers.NewScheduleHandler(services.ScheduleService)
			scheduleGroup := apiGroup.Group("/schedule")
			{
				scheduleGroup.POST("/recalculate", scheduleHandler.Recalculate)
				scheduleGroup.POST("/completions", scheduleHandler.CompleteBatch)
				scheduleGroup.GET("/config", scheduleHandler.GetConfig)
				scheduleGroup.PUT("/config", scheduleHandler.UpdateConfig)
			}

			apiGroup.POST("/areas/:id/complete", scheduleHandler.Complete)
		}
	}

	return router
}

func normalizeAllowedOrigins(origins []string) ([]string, bool) {
	var (
		parsed   []string
		allowAll bool
	)
	for _, origin := range origins {
		parts := strings.Split(origin, ",")
		for _, part := range parts {
			trimmed := strings.TrimSpace(part)
			if trimmed == "" {
				continue
			}
			if trimmed == "*" {
				allowAll = true
				continue
			}
			parsed = append(parsed, trimmed)
		}
	}

	return parsed, allowAll
}
