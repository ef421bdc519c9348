package http

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func NewRouter(handler *Handler, authMiddleware gin.HandlerFunc, env string) *gin.Engine {
	if env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:    []string{"*"},
		ExposeHeaders:   []string{"Content-Type"},
		MaxAge:          12 * time.Hour,
	}))

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	protected := router.Group("/api/v1")
	protected.Use(authMiddleware)
	{
		protected.GET("/plants", handler.listPlants)
		protected.POST("/plants", handler.createPlant)
		protected.GET("/plants/:id", handler.getPlant)
		protected.DELETE("/plants/:id", handler.deletePlant)

		protected.GET("/tms", handler.listTMs)
		protected.GET("/tms/average-capacity", handler.averageCapacity)
		protected.POST("/tms", handler.createTM)
		protected.GET("/tms/:id", handler.getTM)
		protected.PUT("/tms/:id", handler.updateTM)
		protected.DELETE("/tms/:id", handler.deleteTM)
		protected.GET("/tms/:id/availability", handler.tmAvailability)

		protected.GET("/pumps", handler.listPumps)
		protected.POST("/pumps", handler.createPump)
		protected.GET("/pumps/:id", handler.getPump)
		protected.PUT("/pumps/:id", handler.updatePump)
		protected.DELETE("/pumps/:id", handler.deletePump)

		protected.GET("/schedules", handler.listSchedules)
		protected.GET("/schedules/:id", handler.getSchedule)
		protected.POST("/schedules/calculate-tm", handler.calculateTM)
		protected.PUT("/schedules/:id", handler.updateSchedule)
		protected.DELETE("/schedules/:id", handler.deleteSchedule)
		protected.POST("/schedules/:id/generate", handler.generateSchedule)

		protected.POST("/calendar", handler.calendarRange)
		protected.GET("/calendar/availability", handler.checkAvailability)
		protected.POST("/calendar/gantt", handler.gantt)
		protected.POST("/calendar/gantt/plants", handler.plantGantt)
	}

	return router
}
