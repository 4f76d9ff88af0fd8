package identity

import (
	"smartslot/internal/shared/config"
	"smartslot/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

// Router handles identity routes
type Router struct {
	controller *Controller
	config     *config.Config
}

// NewRouter creates a new identity router
func NewRouter(controller *Controller, cfg *config.Config) *Router {
	return &Router{
		controller: controller,
		config:     cfg,
	}
}

// SetupRoutes registers all identity routes
func (r *Router) SetupRoutes(rg *gin.RouterGroup) {
	auth := rg.Group("/auth")
	{
		auth.POST("/login", r.controller.Login)
		auth.POST("/register", r.controller.Register)
		auth.POST("/provider", r.controller.ProviderSignIn)
		auth.POST("/password-strength", r.controller.PasswordStrength)

		// Logout tolerates a missing session: the middleware is optional so
		// a signed-out browser still gets its cookie cleared.
		withSession := auth.Group("")
		withSession.Use(middleware.OptionalAuth(r.config))
		{
			withSession.POST("/logout", r.controller.Logout)
		}
	}
}
