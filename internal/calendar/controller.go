package calendar

import (
	"errors"
	"net/http"
	"strconv"
	"time"

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

func (c *Controller) Month(ctx *gin.Context) {
	venueID := ctx.Query("venue_id")
	if venueID == "" {
		response.Fail(ctx, http.StatusBadRequest, "venue_id is required")
		return
	}

	now := time.Now()
	month := queryInt(ctx, "month", int(now.Month()))
	year := queryInt(ctx, "year", now.Year())
	if month < 1 || month > 12 {
		response.Fail(ctx, http.StatusBadRequest, "month must be between 1 and 12")
		return
	}

	view, err := c.service.Month(ctx.Request.Context(), venueID, month, year)
	if err != nil {
		c.respondError(ctx, err)
		return
	}
	response.OK(ctx, http.StatusOK, "Calendar retrieved", view)
}

func (c *Controller) Day(ctx *gin.Context) {
	venueID := ctx.Query("venue_id")
	date := ctx.Query("date")
	if venueID == "" || date == "" {
		response.Fail(ctx, http.StatusBadRequest, "venue_id and date are required")
		return
	}

	parsed, err := time.Parse("2006-01-02", date)
	if err != nil {
		response.Fail(ctx, http.StatusBadRequest, "date must be YYYY-MM-DD")
		return
	}

	view, err := c.service.Day(ctx.Request.Context(), venueID, date, int(parsed.Month()), parsed.Year())
	if err != nil {
		c.respondError(ctx, err)
		return
	}
	response.OK(ctx, http.StatusOK, "Day details retrieved", view)
}

func (c *Controller) respondError(ctx *gin.Context, err error) {
	var apiErr *upstream.APIError
	switch {
	case errors.As(err, &apiErr):
		response.Fail(ctx, http.StatusBadRequest, apiErr.Message)
	case errors.Is(err, upstream.ErrUpstream):
		response.Fail(ctx, http.StatusBadGateway, "The booking service is unavailable. Please try again.")
	default:
		c.logger.WithError(err).Error("calendar request failed")
		response.Fail(ctx, http.StatusInternalServerError, "Failed to load calendar")
	}
}

func queryInt(ctx *gin.Context, key string, fallback int) int {
	if raw := ctx.Query(key); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil {
			return v
		}
	}
	return fallback
}
