package staff

import (
	"smartslot/internal/shared/config"
	"smartslot/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

// Router handles staff dashboard routes
type Router struct {
	controller *Controller
	config     *config.Config
}

// NewRouter creates a new staff router
func NewRouter(controller *Controller, cfg *config.Config) *Router {
	return &Router{controller: controller, config: cfg}
}

// SetupRoutes registers all staff routes behind the role gate
func (r *Router) SetupRoutes(rg *gin.RouterGroup) {
	staff := rg.Group("/staff")
	staff.Use(middleware.SessionAuth(r.config))
	staff.Use(middleware.RequireRoles("STAFF", "ADMIN"))
	{
		staff.GET("/bookings/pending", r.controller.Pending)
		staff.POST("/bookings/:id/approve", r.controller.Approve)
		staff.POST("/bookings/:id/reject", r.controller.Reject)
	}
}
