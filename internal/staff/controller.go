package staff

import (
	"errors"
	"net/http"

	"smartslot/internal/shared/utils/response"
	"smartslot/internal/upstream"
	"smartslot/pkg/logger"

	"github.com/gin-gonic/gin"
)

type Controller struct {
	service Service
	logger  *logger.Logger
}

func NewController(service Service, log *logger.Logger) *Controller {
	return &Controller{service: service, logger: log}
}

func sessionID(ctx *gin.Context) string {
	if sid, ok := ctx.Get("session_id"); ok {
		if s, ok := sid.(string); ok {
			return s
		}
	}
	return ""
}

func (c *Controller) Pending(ctx *gin.Context) {
	views, err := c.service.Pending(ctx.Request.Context(), sessionID(ctx))
	if err != nil {
		c.respondError(ctx, err)
		return
	}
	response.OK(ctx, http.StatusOK, "Pending bookings retrieved", gin.H{"bookings": views})
}

func (c *Controller) Approve(ctx *gin.Context) {
	bookingID := ctx.Param("id")
	if err := c.service.Approve(ctx.Request.Context(), sessionID(ctx), bookingID); err != nil {
		c.respondError(ctx, err)
		return
	}
	response.OK(ctx, http.StatusOK, "Booking approved", nil)
}

func (c *Controller) Reject(ctx *gin.Context) {
	bookingID := ctx.Param("id")
	if err := c.service.Reject(ctx.Request.Context(), sessionID(ctx), bookingID); err != nil {
		c.respondError(ctx, err)
		return
	}
	response.OK(ctx, http.StatusOK, "Booking rejected", nil)
}

func (c *Controller) respondError(ctx *gin.Context, err error) {
	var apiErr *upstream.APIError
	switch {
	case errors.Is(err, ErrNotSignedIn), errors.Is(err, upstream.ErrAuthExpired):
		response.Fail(ctx, http.StatusUnauthorized, "Session expired. Please sign in again.")
	case errors.Is(err, upstream.ErrAccessDenied):
		// The role gate passed but the upstream disagreed; the session stays.
		response.Fail(ctx, http.StatusForbidden, "You do not have access to the review queue.")
	case errors.As(err, &apiErr):
		response.Fail(ctx, http.StatusBadRequest, apiErr.Message)
	case errors.Is(err, upstream.ErrUpstream):
		response.Fail(ctx, http.StatusBadGateway, "The booking service is unavailable. Please try again.")
	default:
		c.logger.WithError(err).Error("staff request failed")
		response.Fail(ctx, http.StatusInternalServerError, "Something went wrong. Please try again.")
	}
}
