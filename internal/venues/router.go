package venues

import (
	"github.com/gin-gonic/gin"
)

// Router handles venue routes
type Router struct {
	controller *Controller
}

// NewRouter creates a new venues router
func NewRouter(controller *Controller) *Router {
	return &Router{controller: controller}
}

// SetupRoutes registers all venue routes. The catalog is public: it renders
// for signed-out visitors too.
func (r *Router) SetupRoutes(rg *gin.RouterGroup) {
	venues := rg.Group("/venues")
	{
		venues.GET("", r.controller.List)
	}
}
