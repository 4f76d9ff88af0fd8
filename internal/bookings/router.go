package bookings

import (
	"smartslot/internal/shared/config"
	"smartslot/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

// Router handles booking routes
type Router struct {
	controller *Controller
	config     *config.Config
}

// NewRouter creates a new bookings router
func NewRouter(controller *Controller, cfg *config.Config) *Router {
	return &Router{
		controller: controller,
		config:     cfg,
	}
}

// SetupRoutes registers all booking routes. Everything here requires a
// signed-in session: the workflow is keyed by session ID and every upstream
// call needs the session's bearer token.
func (r *Router) SetupRoutes(rg *gin.RouterGroup) {
	bookings := rg.Group("/bookings")
	bookings.Use(middleware.SessionAuth(r.config))
	{
		// Workflow steps
		bookings.GET("/workflow", r.controller.GetWorkflow)
		bookings.POST("/workflow/reset", r.controller.ResetWorkflow)
		bookings.POST("/workflow/venue", r.controller.SelectVenue)
		bookings.POST("/workflow/availability", r.controller.FetchAvailability)
		bookings.POST("/workflow/slot", r.controller.SelectSlot)
		bookings.POST("/workflow/submit", r.controller.Submit)
		bookings.POST("/workflow/verify-otp", r.controller.VerifyOTP)
		bookings.POST("/workflow/resend-otp", r.controller.ResendOTP)

		// Booking list and actions
		bookings.GET("/my-bookings", r.controller.MyBookings)
		bookings.DELETE("/:id/cancel", r.controller.Cancel)
	}
}
