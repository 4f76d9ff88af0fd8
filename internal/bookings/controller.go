package bookings

import (
	"errors"
	"net/http"
	"time"

	"smartslot/internal/shared/utils/response"
	"smartslot/internal/upstream"
	"smartslot/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type Controller struct {
	service   Service
	validator *validator.Validate
	logger    *logger.Logger
}

func NewController(service Service, log *logger.Logger) *Controller {
	return &Controller{
		service:   service,
		validator: validator.New(),
		logger:    log,
	}
}

// sessionID pulls the portal session ID set by the auth middleware.
func sessionID(ctx *gin.Context) string {
	if sid, ok := ctx.Get("session_id"); ok {
		if s, ok := sid.(string); ok {
			return s
		}
	}
	return ""
}

// workflowView shapes the workflow for rendering, computing the countdown
// from the challenge deadline.
func workflowView(w *Workflow) WorkflowView {
	view := WorkflowView{
		State:          w.State,
		VenueID:        w.VenueID,
		VenueName:      w.VenueName,
		Date:           w.Date,
		StartTime:      w.StartTime,
		EndTime:        w.EndTime,
		Title:          w.Title,
		Availability:   w.Availability,
		ConflictType:   w.ConflictType,
		SuggestedSlots: w.SuggestedSlots,
		FailureReason:  w.FailureReason,
	}
	if w.Challenge != nil {
		view.BookingID = w.Challenge.BookingID
		view.OTPRemaining = w.Challenge.Remaining(time.Now())
	}
	return view
}

func (c *Controller) GetWorkflow(ctx *gin.Context) {
	w, err := c.service.Workflow(ctx.Request.Context(), sessionID(ctx))
	if err != nil {
		c.respondError(ctx, err, nil)
		return
	}
	response.OK(ctx, http.StatusOK, "Workflow state", workflowView(w))
}

func (c *Controller) ResetWorkflow(ctx *gin.Context) {
	w, err := c.service.ResetWorkflow(ctx.Request.Context(), sessionID(ctx))
	if err != nil {
		c.respondError(ctx, err, nil)
		return
	}
	response.OK(ctx, http.StatusOK, "Workflow reset", workflowView(w))
}

func (c *Controller) SelectVenue(ctx *gin.Context) {
	var req SelectVenueRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.Fail(ctx, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := c.validator.Struct(&req); err != nil {
		response.Fail(ctx, http.StatusBadRequest, "venue_id is required")
		return
	}

	w, err := c.service.SelectVenue(ctx.Request.Context(), sessionID(ctx), req.VenueID, req.VenueName)
	if err != nil {
		c.respondError(ctx, err, w)
		return
	}
	response.OK(ctx, http.StatusOK, "Venue selected", workflowView(w))
}

func (c *Controller) FetchAvailability(ctx *gin.Context) {
	var req AvailabilityRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.Fail(ctx, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := c.validator.Struct(&req); err != nil {
		response.Fail(ctx, http.StatusBadRequest, "date is required")
		return
	}

	w, err := c.service.FetchAvailability(ctx.Request.Context(), sessionID(ctx), req.Date)
	if err != nil {
		c.respondError(ctx, err, w)
		return
	}
	response.OK(ctx, http.StatusOK, "Availability loaded", workflowView(w))
}

func (c *Controller) SelectSlot(ctx *gin.Context) {
	var req SelectSlotRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.Fail(ctx, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := c.validator.Struct(&req); err != nil {
		response.Fail(ctx, http.StatusBadRequest, "date, start_time and end_time are required")
		return
	}

	w, err := c.service.SelectSlot(ctx.Request.Context(), sessionID(ctx), req.Date, req.StartTime, req.EndTime)
	if err != nil {
		c.respondError(ctx, err, w)
		return
	}
	response.OK(ctx, http.StatusOK, "Slot selected", workflowView(w))
}

func (c *Controller) Submit(ctx *gin.Context) {
	var req SubmitBookingRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.Fail(ctx, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := c.validator.Struct(&req); err != nil {
		response.Fail(ctx, http.StatusBadRequest, "title is required")
		return
	}

	w, err := c.service.Submit(ctx.Request.Context(), sessionID(ctx), SubmitRequest{
		Title:               req.Title,
		Purpose:             req.Purpose,
		ContactNumber:       req.ContactNumber,
		ExpectedAttendees:   req.ExpectedAttendees,
		SpecialRequirements: req.SpecialRequirements,
		Recurring:           req.Recurring,
	})
	if err != nil {
		c.respondError(ctx, err, w)
		return
	}
	response.OK(ctx, http.StatusCreated, "Booking submitted. Enter the code to confirm.", workflowView(w))
}

func (c *Controller) VerifyOTP(ctx *gin.Context) {
	var req VerifyOTPRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.Fail(ctx, http.StatusBadRequest, "Invalid request body")
		return
	}

	w, err := c.service.VerifyOTP(ctx.Request.Context(), sessionID(ctx), req.OTP)
	if err != nil {
		c.respondError(ctx, err, w)
		return
	}
	response.OK(ctx, http.StatusOK, "Booking confirmed", workflowView(w))
}

func (c *Controller) ResendOTP(ctx *gin.Context) {
	w, err := c.service.ResendOTP(ctx.Request.Context(), sessionID(ctx))
	if err != nil {
		c.respondError(ctx, err, w)
		return
	}
	response.OK(ctx, http.StatusOK, "A new code has been sent", workflowView(w))
}

func (c *Controller) MyBookings(ctx *gin.Context) {
	status := Status(ctx.Query("status"))
	if status != "" && !status.IsValid() {
		response.Fail(ctx, http.StatusBadRequest, "Unknown status filter")
		return
	}

	views, err := c.service.MyBookings(ctx.Request.Context(), sessionID(ctx), status)
	if err != nil {
		c.respondError(ctx, err, nil)
		return
	}
	response.OK(ctx, http.StatusOK, "Bookings retrieved", gin.H{"bookings": views})
}

func (c *Controller) Cancel(ctx *gin.Context) {
	bookingID := ctx.Param("id")
	if bookingID == "" {
		response.Fail(ctx, http.StatusBadRequest, "Booking ID is required")
		return
	}

	if err := c.service.Cancel(ctx.Request.Context(), sessionID(ctx), bookingID); err != nil {
		c.respondError(ctx, err, nil)
		return
	}
	response.OK(ctx, http.StatusOK, "Booking cancelled", nil)
}

// respondError maps service and upstream failures onto HTTP statuses. When a
// workflow is available it rides along so the page can re-render the current
// step, notably after a conflict.
func (c *Controller) respondError(ctx *gin.Context, err error, w *Workflow) {
	if ce, ok := upstream.IsConflict(err); ok {
		var data interface{}
		if w != nil {
			data = workflowView(w)
		}
		response.Conflict(ctx, http.StatusConflict, ce.Message, ce.Type, data)
		return
	}

	var apiErr *upstream.APIError
	switch {
	case errors.Is(err, ErrNotSignedIn), errors.Is(err, upstream.ErrAuthExpired):
		response.Fail(ctx, http.StatusUnauthorized, "Session expired. Please sign in again.")
	case errors.Is(err, upstream.ErrAccessDenied):
		response.Fail(ctx, http.StatusForbidden, "You do not have access to this resource.")
	case errors.Is(err, ErrIncompleteSelection):
		response.Fail(ctx, http.StatusBadRequest, "Please choose a venue, date, time and title first.")
	case errors.Is(err, ErrInvalidOTP):
		response.Fail(ctx, http.StatusBadRequest, "Enter the 6-digit code.")
	case errors.Is(err, ErrVerifyInFlight):
		response.Fail(ctx, http.StatusConflict, "Verification already in progress.")
	case errors.Is(err, ErrChallengeExpired):
		response.Fail(ctx, http.StatusGone, "The code has expired. Please start a new booking.")
	case errors.Is(err, ErrInvalidTransition):
		response.Fail(ctx, http.StatusConflict, err.Error())
	case errors.As(err, &apiErr):
		response.Fail(ctx, http.StatusBadRequest, apiErr.Message)
	case errors.Is(err, upstream.ErrUpstream):
		response.Fail(ctx, http.StatusBadGateway, "The booking service is unavailable. Please try again.")
	default:
		c.logger.WithError(err).Error("booking request failed")
		response.Fail(ctx, http.StatusInternalServerError, "Something went wrong. Please try again.")
	}
}
