package bookings

import (
	"errors"
	"fmt"
	"time"

	"smartslot/internal/upstream"

	"github.com/google/uuid"
)

// State is one step of the booking workflow.
type State string

const (
	StateSelectingVenue State = "SELECTING_VENUE"
	StateSelectingSlot  State = "SELECTING_SLOT"
	StateSubmitting     State = "SUBMITTING"
	StateAwaitingOTP    State = "AWAITING_OTP"
	StateConfirmed      State = "CONFIRMED"
	StateFailed         State = "FAILED"
)

// Workflow transition and input-gate errors.
var (
	ErrInvalidTransition   = errors.New("invalid workflow transition")
	ErrIncompleteSelection = errors.New("venue, date, time and title are required")
	ErrInvalidOTP          = errors.New("otp must be exactly 6 digits")
	ErrVerifyInFlight      = errors.New("verification already in progress")
	ErrChallengeExpired    = errors.New("otp challenge has expired")
)

// Challenge is the OTP confirmation window opened by a successful submission.
type Challenge struct {
	BookingID string    `json:"booking_id"`
	Deadline  time.Time `json:"deadline"`
}

// Remaining returns the whole seconds left before the deadline, clamped at 0.
func (c *Challenge) Remaining(now time.Time) int {
	left := int(c.Deadline.Sub(now).Seconds())
	if left < 0 {
		return 0
	}
	return left
}

// Expired reports whether the deadline has passed.
func (c *Challenge) Expired(now time.Time) bool {
	return !now.Before(c.Deadline)
}

// Workflow is one browser session's booking-in-progress. It is persisted as a
// single JSON record so a page reload resumes where the user left off.
type Workflow struct {
	State State `json:"state"`

	// Slot selection
	VenueID   string `json:"venue_id"`
	VenueName string `json:"venue_name"`
	Date      string `json:"date"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`

	// Form details carried into submission
	Title string `json:"title"`

	Challenge      *Challenge `json:"challenge,omitempty"`
	VerifyInFlight bool       `json:"verify_in_flight"`

	// Conflict aftermath
	ConflictType   string          `json:"conflict_type,omitempty"`
	SuggestedSlots []upstream.Slot `json:"suggested_slots,omitempty"`

	FailureReason string `json:"failure_reason,omitempty"`

	// AvailabilityGen identifies the newest availability fetch. Responses
	// carrying an older token are discarded so a slow fetch for a previously
	// selected date can never overwrite the current slot grid.
	AvailabilityGen string          `json:"availability_gen,omitempty"`
	Availability    []upstream.Slot `json:"availability,omitempty"`
}

// NewWorkflow starts a fresh booking flow
func NewWorkflow() *Workflow {
	return &Workflow{State: StateSelectingVenue}
}

// SelectVenue picks a venue and moves to slot selection. Choosing a different
// venue resets the slot and any stale conflict notice.
func (w *Workflow) SelectVenue(venueID, venueName string) error {
	switch w.State {
	case StateSelectingVenue, StateSelectingSlot, StateConfirmed, StateFailed:
	default:
		return fmt.Errorf("%w: select venue from %s", ErrInvalidTransition, w.State)
	}

	w.State = StateSelectingSlot
	w.VenueID = venueID
	w.VenueName = venueName
	w.Date = ""
	w.StartTime = ""
	w.EndTime = ""
	w.clearConflict()
	w.Challenge = nil
	w.FailureReason = ""
	w.Availability = nil
	w.AvailabilityGen = ""
	return nil
}

// SelectSlot records the chosen date and time range
func (w *Workflow) SelectSlot(date, startTime, endTime string) error {
	if w.State != StateSelectingSlot {
		return fmt.Errorf("%w: select slot from %s", ErrInvalidTransition, w.State)
	}
	w.Date = date
	w.StartTime = startTime
	w.EndTime = endTime
	w.clearConflict()
	return nil
}

// BeginSubmit validates the selection and moves to Submitting. The upstream
// re-validates everything; this gate only catches an incomplete form.
func (w *Workflow) BeginSubmit(title string) error {
	if w.State != StateSelectingSlot {
		return fmt.Errorf("%w: submit from %s", ErrInvalidTransition, w.State)
	}
	if w.VenueID == "" || w.Date == "" || w.StartTime == "" || w.EndTime == "" || title == "" {
		return ErrIncompleteSelection
	}
	w.Title = title
	w.State = StateSubmitting
	return nil
}

// SubmitSucceeded opens the OTP challenge window
func (w *Workflow) SubmitSucceeded(bookingID string, deadline time.Time) error {
	if w.State != StateSubmitting {
		return fmt.Errorf("%w: submit success from %s", ErrInvalidTransition, w.State)
	}
	w.State = StateAwaitingOTP
	w.Challenge = &Challenge{BookingID: bookingID, Deadline: deadline}
	w.VerifyInFlight = false
	return nil
}

// SubmitConflicted returns to slot selection with the conflict notice and any
// suggested alternates. The venue and date survive so the user can pick a
// different time without starting over.
func (w *Workflow) SubmitConflicted(conflictType string, suggested []upstream.Slot) error {
	if w.State != StateSubmitting {
		return fmt.Errorf("%w: conflict from %s", ErrInvalidTransition, w.State)
	}
	w.State = StateSelectingSlot
	w.ConflictType = conflictType
	w.SuggestedSlots = suggested
	return nil
}

// SubmitFailed ends the flow with a failure reason
func (w *Workflow) SubmitFailed(reason string) error {
	if w.State != StateSubmitting {
		return fmt.Errorf("%w: submit failure from %s", ErrInvalidTransition, w.State)
	}
	w.State = StateFailed
	w.FailureReason = reason
	return nil
}

// BeginVerify gates one OTP submission: the code must be exactly 6 digits,
// the challenge must still be open, and only one verification may be in
// flight at a time.
func (w *Workflow) BeginVerify(otp string, now time.Time) error {
	if w.State != StateAwaitingOTP || w.Challenge == nil {
		return fmt.Errorf("%w: verify from %s", ErrInvalidTransition, w.State)
	}
	if w.Challenge.Expired(now) {
		return ErrChallengeExpired
	}
	if w.VerifyInFlight {
		return ErrVerifyInFlight
	}
	if !validOTP(otp) {
		return ErrInvalidOTP
	}
	w.VerifyInFlight = true
	return nil
}

// VerifySucceeded confirms the booking and closes the challenge
func (w *Workflow) VerifySucceeded() error {
	if w.State != StateAwaitingOTP {
		return fmt.Errorf("%w: verify success from %s", ErrInvalidTransition, w.State)
	}
	w.State = StateConfirmed
	w.Challenge = nil
	w.VerifyInFlight = false
	return nil
}

// VerifyFailed keeps the challenge open so the user can retry until the
// deadline passes.
func (w *Workflow) VerifyFailed() {
	w.VerifyInFlight = false
}

// ExpireChallenge moves an overdue challenge to Failed. It is idempotent:
// the first overdue call returns true, every later call returns false, and a
// challenge that already resolved is never expired.
func (w *Workflow) ExpireChallenge(now time.Time) bool {
	if w.State != StateAwaitingOTP || w.Challenge == nil {
		return false
	}
	if !w.Challenge.Expired(now) {
		return false
	}
	w.State = StateFailed
	w.FailureReason = "otp-expired"
	w.Challenge = nil
	w.VerifyInFlight = false
	return true
}

// BeginAvailabilityFetch issues a fresh generation token, superseding any
// fetch still in flight.
func (w *Workflow) BeginAvailabilityFetch() string {
	w.AvailabilityGen = uuid.New().String()
	return w.AvailabilityGen
}

// ApplyAvailability installs a fetched slot grid if the generation token is
// still current. A stale response is discarded and reported false.
func (w *Workflow) ApplyAvailability(gen string, slots []upstream.Slot) bool {
	if gen == "" || gen != w.AvailabilityGen {
		return false
	}
	w.Availability = slots
	return true
}

func (w *Workflow) clearConflict() {
	w.ConflictType = ""
	w.SuggestedSlots = nil
}

// validOTP requires exactly 6 ASCII digits
func validOTP(otp string) bool {
	if len(otp) != 6 {
		return false
	}
	for _, r := range otp {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
