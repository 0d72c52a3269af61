package handlers

import (
	portssvc "github.com/iamramakanthreddyk/fuelsync-new-sub005/internal/core/ports/services"
	"github.com/gin-gonic/gin"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(r *gin.Engine, services *portssvc.ServiceContainer) {
	// Add health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	setupAPIV1Routes(r, services)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(r *gin.Engine, services *portssvc.ServiceContainer) {
	v1 := r.Group("/api/v1")

	registerNozzleRoutes(v1, services.Nozzle)
	registerFuelPriceRoutes(v1, services.Price)
	registerReadingRoutes(v1, services.Reading)
	registerDailyTransactionRoutes(v1, services.DailyTransaction)
	registerCreditRoutes(v1, services.Credit)
}
