package chatbot

import (
	"smartslot/internal/shared/config"
	"smartslot/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

// Router handles assistant routes
type Router struct {
	controller *Controller
	config     *config.Config
}

// NewRouter creates a new chatbot router
func NewRouter(controller *Controller, cfg *config.Config) *Router {
	return &Router{controller: controller, config: cfg}
}

// SetupRoutes registers all assistant routes. The widget works signed out;
// a session, when present, lets answers include the caller's bookings.
func (r *Router) SetupRoutes(rg *gin.RouterGroup) {
	chat := rg.Group("/chatbot")
	chat.Use(middleware.OptionalAuth(r.config))
	{
		chat.POST("", r.controller.Chat)
		chat.GET("/suggestions", r.controller.Suggestions)
	}
}
