package transport

import (
	"time"

	"github.com/citasalud/notifier/internal/service"
	"github.com/citasalud/notifier/internal/transport/middleware"
	"github.com/gin-gonic/gin"
)

func InitRoutes(usecase service.NotificationUseCase) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), middleware.Logger())

	handler := NewNotificationHandler(usecase)

	api := router.Group("/api/v1")
	{
		api.POST("/appointments", handler.UploadAppointments)
		api.GET("/appointments", handler.ListAppointments)
		api.GET("/appointments/export", handler.ExportAppointments)
		api.POST("/notifications/run", handler.TriggerRun)
		api.GET("/notifications/run/:id", handler.GetRun)
		api.GET("/logs", handler.GetLogs)
	}

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":    "healthy",
			"service":   "appointment-notifier",
			"timestamp": time.Now().Format(time.RFC3339),
		})
	})

	return router
}
