package bookings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"smartslot/internal/session"
	"smartslot/internal/shared/config"
	"smartslot/internal/upstream"
	"smartslot/pkg/cache"
	"smartslot/pkg/logger"
)

const workflowKeyPrefix = "smartslot:workflow:"

// ErrNotSignedIn is returned when an operation needs a signed-in session and
// the session record is missing or incomplete.
var ErrNotSignedIn = errors.New("not signed in")

// Service drives the booking workflow for each browser session and proxies
// booking reads. The workflow record lives in Redis keyed by session ID so a
// page reload resumes the flow.
type Service interface {
	Workflow(ctx context.Context, sessionID string) (*Workflow, error)
	ResetWorkflow(ctx context.Context, sessionID string) (*Workflow, error)
	SelectVenue(ctx context.Context, sessionID, venueID, venueName string) (*Workflow, error)
	FetchAvailability(ctx context.Context, sessionID, date string) (*Workflow, error)
	SelectSlot(ctx context.Context, sessionID, date, startTime, endTime string) (*Workflow, error)
	Submit(ctx context.Context, sessionID string, req SubmitRequest) (*Workflow, error)
	VerifyOTP(ctx context.Context, sessionID, otp string) (*Workflow, error)
	ResendOTP(ctx context.Context, sessionID string) (*Workflow, error)
	MyBookings(ctx context.Context, sessionID string, status Status) ([]BookingView, error)
	Cancel(ctx context.Context, sessionID, bookingID string) error
}

// SubmitRequest carries the booking form fields into submission.
type SubmitRequest struct {
	Title               string
	Purpose             string
	ContactNumber       string
	ExpectedAttendees   *int
	SpecialRequirements string
	Recurring           *upstream.RecurringInfo
}

type service struct {
	upstream *upstream.Client
	sessions *session.Store
	cache    cache.Service
	cfg      *config.Config
	logger   *logger.Logger
	now      func() time.Time
}

// NewService creates a booking service
func NewService(up *upstream.Client, sessions *session.Store, c cache.Service, cfg *config.Config, log *logger.Logger) Service {
	return &service{
		upstream: up,
		sessions: sessions,
		cache:    c,
		cfg:      cfg,
		logger:   log,
		now:      time.Now,
	}
}

// loadWorkflow reads the session's workflow, creating a fresh one on a miss.
// An overdue OTP challenge is expired here, on read, so every caller observes
// the same terminal state no matter which request arrives first.
func (s *service) loadWorkflow(ctx context.Context, sessionID string) (*Workflow, error) {
	var w Workflow
	err := s.cache.Get(ctx, workflowKeyPrefix+sessionID, &w)
	if err != nil {
		if errors.Is(err, cache.ErrCacheMiss) {
			return NewWorkflow(), nil
		}
		return nil, fmt.Errorf("load workflow: %w", err)
	}

	bookingID := ""
	if w.Challenge != nil {
		bookingID = w.Challenge.BookingID
	}
	if w.ExpireChallenge(s.now()) {
		s.logger.LogChallengeExpired(ctx, bookingID, sessionID)
		if err := s.saveWorkflow(ctx, sessionID, &w); err != nil {
			return nil, err
		}
	}
	return &w, nil
}

func (s *service) saveWorkflow(ctx context.Context, sessionID string, w *Workflow) error {
	if err := s.cache.Set(ctx, workflowKeyPrefix+sessionID, w, s.cfg.Redis.SessionTTL); err != nil {
		return fmt.Errorf("save workflow: %w", err)
	}
	return nil
}

// requireToken returns the upstream bearer token for the session
func (s *service) requireToken(ctx context.Context, sessionID string) (string, error) {
	sess := s.sessions.Get(ctx, sessionID)
	if !sess.SignedIn() {
		return "", ErrNotSignedIn
	}
	return sess.Token, nil
}

// handleAuthExpired clears the session record after an upstream 401 so the
// next page load renders signed-out instead of retrying a dead token.
func (s *service) handleAuthExpired(ctx context.Context, sessionID string, err error) {
	if errors.Is(err, upstream.ErrAuthExpired) {
		_ = s.sessions.Clear(ctx, sessionID)
		s.logger.LogSessionExpired(ctx, sessionID)
	}
}

func (s *service) Workflow(ctx context.Context, sessionID string) (*Workflow, error) {
	return s.loadWorkflow(ctx, sessionID)
}

func (s *service) ResetWorkflow(ctx context.Context, sessionID string) (*Workflow, error) {
	w := NewWorkflow()
	if err := s.saveWorkflow(ctx, sessionID, w); err != nil {
		return nil, err
	}
	return w, nil
}

func (s *service) SelectVenue(ctx context.Context, sessionID, venueID, venueName string) (*Workflow, error) {
	w, err := s.loadWorkflow(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if err := w.SelectVenue(venueID, venueName); err != nil {
		return nil, err
	}
	if err := s.saveWorkflow(ctx, sessionID, w); err != nil {
		return nil, err
	}
	return w, nil
}

// FetchAvailability pulls the slot grid for the workflow's venue on a date.
// The generation token is taken before the upstream call and checked after:
// if another fetch started in between, this response is stale and dropped.
func (s *service) FetchAvailability(ctx context.Context, sessionID, date string) (*Workflow, error) {
	w, err := s.loadWorkflow(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if w.VenueID == "" {
		return nil, ErrIncompleteSelection
	}

	gen := w.BeginAvailabilityFetch()
	if err := s.saveWorkflow(ctx, sessionID, w); err != nil {
		return nil, err
	}

	avail, err := s.upstream.Availability(ctx, w.VenueID, date)
	if err != nil {
		return nil, err
	}

	// Reload: another request may have advanced the workflow meanwhile.
	w, err = s.loadWorkflow(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if w.ApplyAvailability(gen, avail.Slots) {
		if err := s.saveWorkflow(ctx, sessionID, w); err != nil {
			return nil, err
		}
	}
	return w, nil
}

func (s *service) SelectSlot(ctx context.Context, sessionID, date, startTime, endTime string) (*Workflow, error) {
	w, err := s.loadWorkflow(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if err := w.SelectSlot(date, startTime, endTime); err != nil {
		return nil, err
	}
	if err := s.saveWorkflow(ctx, sessionID, w); err != nil {
		return nil, err
	}
	return w, nil
}

func (s *service) Submit(ctx context.Context, sessionID string, req SubmitRequest) (*Workflow, error) {
	token, err := s.requireToken(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	w, err := s.loadWorkflow(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if err := w.BeginSubmit(req.Title); err != nil {
		return nil, err
	}
	if err := s.saveWorkflow(ctx, sessionID, w); err != nil {
		return nil, err
	}

	result, err := s.upstream.CreateBooking(ctx, token, upstream.CreateBookingRequest{
		VenueID:             w.VenueID,
		Title:               req.Title,
		BookingDate:         w.Date,
		StartTime:           w.StartTime,
		EndTime:             w.EndTime,
		Purpose:             req.Purpose,
		ContactNumber:       req.ContactNumber,
		ExpectedAttendees:   req.ExpectedAttendees,
		SpecialRequirements: req.SpecialRequirements,
		RecurringInfo:       req.Recurring,
	})
	if err != nil {
		return s.submitFailed(ctx, sessionID, w, err)
	}

	deadline := s.now().Add(s.cfg.Redis.ChallengeTTL)
	if err := w.SubmitSucceeded(result.BookingID, deadline); err != nil {
		return nil, err
	}
	if err := s.saveWorkflow(ctx, sessionID, w); err != nil {
		return nil, err
	}

	s.logger.LogBookingSubmitted(ctx, result.BookingID, w.VenueID, sessionID)
	return w, nil
}

// submitFailed resolves a rejected submission: conflicts return to slot
// selection with alternates, auth expiry clears the session, everything else
// ends the flow.
func (s *service) submitFailed(ctx context.Context, sessionID string, w *Workflow, cause error) (*Workflow, error) {
	if ce, ok := upstream.IsConflict(cause); ok {
		suggested, err := s.upstream.SuggestSlots(ctx, w.VenueID, w.Date)
		if err != nil {
			// The conflict notice still renders without alternates.
			suggested = nil
		}
		if err := w.SubmitConflicted(ce.Type, suggested); err != nil {
			return nil, err
		}
		if err := s.saveWorkflow(ctx, sessionID, w); err != nil {
			return nil, err
		}
		return w, cause
	}

	s.handleAuthExpired(ctx, sessionID, cause)

	var apiErr *upstream.APIError
	reason := "upstream-unavailable"
	if errors.As(cause, &apiErr) {
		reason = apiErr.Message
	} else if errors.Is(cause, upstream.ErrAuthExpired) {
		reason = "session-expired"
	}

	if err := w.SubmitFailed(reason); err != nil {
		return nil, err
	}
	if err := s.saveWorkflow(ctx, sessionID, w); err != nil {
		return nil, err
	}
	return w, cause
}

func (s *service) VerifyOTP(ctx context.Context, sessionID, otp string) (*Workflow, error) {
	token, err := s.requireToken(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	w, err := s.loadWorkflow(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if err := w.BeginVerify(otp, s.now()); err != nil {
		return w, err
	}
	bookingID := w.Challenge.BookingID
	if err := s.saveWorkflow(ctx, sessionID, w); err != nil {
		return nil, err
	}

	if err := s.upstream.VerifyOTP(ctx, token, bookingID, otp); err != nil {
		s.handleAuthExpired(ctx, sessionID, err)
		w.VerifyFailed()
		if saveErr := s.saveWorkflow(ctx, sessionID, w); saveErr != nil {
			return nil, saveErr
		}
		return w, err
	}

	if err := w.VerifySucceeded(); err != nil {
		return nil, err
	}
	if err := s.saveWorkflow(ctx, sessionID, w); err != nil {
		return nil, err
	}

	s.logger.LogBookingConfirmed(ctx, bookingID, sessionID)
	return w, nil
}

// ResendOTP asks the upstream for a fresh code. The deadline is deliberately
// not extended: the countdown the user sees keeps running.
func (s *service) ResendOTP(ctx context.Context, sessionID string) (*Workflow, error) {
	token, err := s.requireToken(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	w, err := s.loadWorkflow(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if w.State != StateAwaitingOTP || w.Challenge == nil {
		return w, fmt.Errorf("%w: resend from %s", ErrInvalidTransition, w.State)
	}

	if err := s.upstream.ResendOTP(ctx, token, w.Challenge.BookingID); err != nil {
		s.handleAuthExpired(ctx, sessionID, err)
		return w, err
	}
	return w, nil
}

// MyBookings fetches the caller's bookings and filters by status locally.
// The unfiltered upstream list is the single source; every tab of the
// bookings page is a view over it.
func (s *service) MyBookings(ctx context.Context, sessionID string, status Status) ([]BookingView, error) {
	token, err := s.requireToken(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	bookings, err := s.upstream.MyBookings(ctx, token)
	if err != nil {
		s.handleAuthExpired(ctx, sessionID, err)
		return nil, err
	}

	views := make([]BookingView, 0, len(bookings))
	for _, b := range bookings {
		if status != "" && Status(b.Status) != status {
			continue
		}
		views = append(views, NewBookingView(b))
	}
	return views, nil
}

func (s *service) Cancel(ctx context.Context, sessionID, bookingID string) error {
	token, err := s.requireToken(ctx, sessionID)
	if err != nil {
		return err
	}

	if err := s.upstream.CancelBooking(ctx, token, bookingID); err != nil {
		s.handleAuthExpired(ctx, sessionID, err)
		return err
	}
	return nil
}
