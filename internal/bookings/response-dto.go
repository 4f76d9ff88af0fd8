package bookings

import (
	"html"

	"smartslot/internal/upstream"
)

// BookingView is one booking shaped for rendering. All free text coming from
// the upstream or originally typed by a user is HTML-escaped here, at the
// view-model boundary, so no template has to remember to do it.
type BookingView struct {
	ID          string            `json:"id"`
	VenueID     string            `json:"venue_id"`
	VenueName   string            `json:"venue_name"`
	Title       string            `json:"title"`
	BookingDate string            `json:"booking_date"`
	StartTime   string            `json:"start_time"`
	EndTime     string            `json:"end_time"`
	Status      Status            `json:"status"`
	Display     DisplayAttributes `json:"display"`
	CanCancel   bool              `json:"can_cancel"`
	Purpose     string            `json:"purpose,omitempty"`
	UserName    string            `json:"user_name,omitempty"`
	CreatedAt   string            `json:"created_at,omitempty"`
}

// NewBookingView shapes an upstream booking for rendering
func NewBookingView(b upstream.Booking) BookingView {
	status := Status(b.Status)

	venueName := ""
	if b.Venue != nil {
		venueName = html.EscapeString(b.Venue.Name)
	}

	return BookingView{
		ID:          b.ID,
		VenueID:     b.VenueID,
		VenueName:   venueName,
		Title:       html.EscapeString(b.Title),
		BookingDate: b.BookingDate,
		StartTime:   b.StartTime,
		EndTime:     b.EndTime,
		Status:      status,
		Display:     status.Display(),
		CanCancel:   status.CanBeCancelled(),
		Purpose:     html.EscapeString(b.Purpose),
		UserName:    html.EscapeString(b.UserName),
		CreatedAt:   b.CreatedAt,
	}
}

// WorkflowView is the workflow shaped for rendering, with the countdown
// already computed.
type WorkflowView struct {
	State          State           `json:"state"`
	VenueID        string          `json:"venue_id,omitempty"`
	VenueName      string          `json:"venue_name,omitempty"`
	Date           string          `json:"date,omitempty"`
	StartTime      string          `json:"start_time,omitempty"`
	EndTime        string          `json:"end_time,omitempty"`
	Title          string          `json:"title,omitempty"`
	Availability   []upstream.Slot `json:"availability,omitempty"`
	BookingID      string          `json:"booking_id,omitempty"`
	OTPRemaining   int             `json:"otp_remaining_seconds,omitempty"`
	ConflictType   string          `json:"conflict_type,omitempty"`
	SuggestedSlots []upstream.Slot `json:"suggested_slots,omitempty"`
	FailureReason  string          `json:"failure_reason,omitempty"`
}
