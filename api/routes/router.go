package routes

import (
	"net/http"
	"time"

	"smartslot/internal/bookings"
	"smartslot/internal/calendar"
	"smartslot/internal/chatbot"
	"smartslot/internal/identity"
	"smartslot/internal/session"
	"smartslot/internal/shared/config"
	"smartslot/internal/staff"
	"smartslot/internal/upstream"
	"smartslot/internal/venues"
	"smartslot/pkg/cache"
	"smartslot/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// Router holds all route dependencies
type Router struct {
	config   *config.Config
	redis    *redis.Client
	cache    cache.Service
	sessions *session.Store
	upstream *upstream.Client
	logger   *logger.Logger
}

// NewRouter creates a new router instance
func NewRouter(cfg *config.Config, redisClient *redis.Client) *Router {
	cacheSvc := cache.NewService(redisClient)
	log := logger.GetDefault()

	return &Router{
		config:   cfg,
		redis:    redisClient,
		cache:    cacheSvc,
		sessions: session.NewStore(cacheSvc, cfg.Redis.SessionTTL),
		upstream: upstream.NewClient(cfg.Upstream.BaseURL, cfg.Upstream.Timeout, upstream.WithLogger(log)),
		logger:   log,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes(engine *gin.Engine) {
	r.setupHealthRoutes(engine)

	api := engine.Group(r.config.GetAPIBasePath())
	{
		r.setupIdentityRoutes(api)
		r.setupVenueRoutes(api)
		r.setupCalendarRoutes(api)
		r.setupBookingRoutes(api)
		r.setupStaffRoutes(api)
		r.setupChatbotRoutes(api)
	}
}

// setupHealthRoutes sets up health check and system status routes
func (r *Router) setupHealthRoutes(engine *gin.Engine) {
	engine.GET("/health", func(c *gin.Context) {
		if err := r.cache.Ping(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":    "unhealthy",
				"error":     err.Error(),
				"timestamp": time.Now(),
				"service":   "smartslot-portal",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now(),
			"service":   "smartslot-portal",
		})
	})

	engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
			"version": r.config.APIVersion,
		})
	})

	engine.GET("/status", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":      "operational",
			"api_version": r.config.APIVersion,
			"timestamp":   time.Now(),
		})
	})
}

// setupIdentityRoutes configures sign-in, registration and logout
func (r *Router) setupIdentityRoutes(rg *gin.RouterGroup) {
	provider := identity.NewRESTProvider(r.config.Identity)
	service := identity.NewService(provider, r.upstream, r.sessions, r.config, r.logger)
	controller := identity.NewController(service, r.logger)

	identity.NewRouter(controller, r.config).SetupRoutes(rg)
}

// setupVenueRoutes configures the public venue catalog
func (r *Router) setupVenueRoutes(rg *gin.RouterGroup) {
	service := venues.NewService(r.upstream, r.cache, r.logger)
	controller := venues.NewController(service, r.logger)

	venues.NewRouter(controller).SetupRoutes(rg)
}

// setupCalendarRoutes configures the availability calendar
func (r *Router) setupCalendarRoutes(rg *gin.RouterGroup) {
	service := calendar.NewService(r.upstream, r.logger)
	controller := calendar.NewController(service, r.logger)

	calendar.NewRouter(controller).SetupRoutes(rg)
}

// setupBookingRoutes configures the booking workflow and bookings list
func (r *Router) setupBookingRoutes(rg *gin.RouterGroup) {
	service := bookings.NewService(r.upstream, r.sessions, r.cache, r.config, r.logger)
	controller := bookings.NewController(service, r.logger)

	bookings.NewRouter(controller, r.config).SetupRoutes(rg)
}

// setupStaffRoutes configures the staff review queue
func (r *Router) setupStaffRoutes(rg *gin.RouterGroup) {
	service := staff.NewService(r.upstream, r.sessions, r.logger)
	controller := staff.NewController(service, r.logger)

	staff.NewRouter(controller, r.config).SetupRoutes(rg)
}

// setupChatbotRoutes configures the assistant widget
func (r *Router) setupChatbotRoutes(rg *gin.RouterGroup) {
	engine := chatbot.NewEngine(chatbot.NewUpstreamSource(r.upstream, r.sessions))
	controller := chatbot.NewController(engine, r.upstream, r.sessions, r.logger)

	chatbot.NewRouter(controller, r.config).SetupRoutes(rg)
}
