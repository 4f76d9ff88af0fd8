package venues

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

func (c *Controller) List(ctx *gin.Context) {
	venues, err := c.service.List(ctx.Request.Context())
	if err != nil {
		if errors.Is(err, upstream.ErrUpstream) {
			response.Fail(ctx, http.StatusBadGateway, "The booking service is unavailable. Please try again.")
			return
		}
		c.logger.WithError(err).Error("venue listing failed")
		response.Fail(ctx, http.StatusInternalServerError, "Failed to load venues")
		return
	}

	response.OK(ctx, http.StatusOK, "Venues retrieved", gin.H{"venues": venues})
}
