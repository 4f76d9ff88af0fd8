package calendar

import (
	"github.com/gin-gonic/gin"
)

// Router handles calendar routes
type Router struct {
	controller *Controller
}

// NewRouter creates a new calendar router
func NewRouter(controller *Controller) *Router {
	return &Router{controller: controller}
}

// SetupRoutes registers all calendar routes. The calendar is public like the
// venue catalog.
func (r *Router) SetupRoutes(rg *gin.RouterGroup) {
	cal := rg.Group("/calendar")
	{
		cal.GET("", r.controller.Month)
		cal.GET("/day", r.controller.Day)
	}
}
