package bookings

import "smartslot/internal/upstream"

// venue selection payload
type SelectVenueRequest struct {
	VenueID   string `json:"venue_id" validate:"required"`
	VenueName string `json:"venue_name"`
}

// availability fetch payload
type AvailabilityRequest struct {
	Date string `json:"date" validate:"required"`
}

// slot selection payload
type SelectSlotRequest struct {
	Date      string `json:"date" validate:"required"`
	StartTime string `json:"start_time" validate:"required"`
	EndTime   string `json:"end_time" validate:"required"`
}

// booking submission payload
type SubmitBookingRequest struct {
	Title               string                  `json:"title" validate:"required,max=200"`
	Purpose             string                  `json:"purpose,omitempty"`
	ContactNumber       string                  `json:"contact_number,omitempty"`
	ExpectedAttendees   *int                    `json:"expected_attendees,omitempty"`
	SpecialRequirements string                  `json:"special_requirements,omitempty"`
	Recurring           *upstream.RecurringInfo `json:"recurring,omitempty"`
}

// OTP verification payload
type VerifyOTPRequest struct {
	OTP string `json:"otp" validate:"required"`
}
