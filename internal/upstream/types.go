package upstream

// Venue is a read-only venue snapshot, refreshed per page load.
type Venue struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Capacity    int      `json:"capacity"`
	Location    string   `json:"location"`
	HourlyRate  float64  `json:"hourly_rate"`
	Amenities   []string `json:"amenities"`
	ImageURL    string   `json:"image_url,omitempty"`
}

// Slot is one availability interval on the upstream hourly grid.
type Slot struct {
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Available bool   `json:"available"`
}

// Availability is the slot list for one venue on one date.
type Availability struct {
	Venue Venue  `json:"venue"`
	Date  string `json:"date"`
	Slots []Slot `json:"slots"`
}

// Booking is the upstream booking record as the portal sees it.
type Booking struct {
	ID                string         `json:"id"`
	VenueID           string         `json:"venue_id"`
	Venue             *Venue         `json:"venue,omitempty"`
	Title             string         `json:"title"`
	BookingDate       string         `json:"booking_date"`
	StartTime         string         `json:"start_time"`
	EndTime           string         `json:"end_time"`
	Status            string         `json:"status"`
	Purpose           string         `json:"purpose,omitempty"`
	UserName          string         `json:"user_name,omitempty"`
	ExpectedAttendees *int           `json:"expected_attendees,omitempty"`
	RecurringInfo     *RecurringInfo `json:"recurring_info,omitempty"`
	CreatedAt         string         `json:"created_at,omitempty"`
}

// RecurringInfo describes a repetition request. How repetitions materialize
// is entirely the upstream's decision.
type RecurringInfo struct {
	Type  string `json:"type"`
	Count int    `json:"count"`
}

// CreateBookingRequest is the submission payload.
type CreateBookingRequest struct {
	VenueID             string         `json:"venue_id"`
	Title               string         `json:"title"`
	BookingDate         string         `json:"booking_date"`
	StartTime           string         `json:"start_time"`
	EndTime             string         `json:"end_time"`
	Purpose             string         `json:"purpose,omitempty"`
	ContactNumber       string         `json:"contact_number,omitempty"`
	ExpectedAttendees   *int           `json:"expected_attendees,omitempty"`
	SpecialRequirements string         `json:"special_requirements,omitempty"`
	RecurringInfo       *RecurringInfo `json:"recurring_info,omitempty"`
}

// CreateBookingResult is a successful submission: the booking entered the
// OTP confirmation step.
type CreateBookingResult struct {
	BookingID string `json:"booking_id"`
	OTP       string `json:"otp"`
}

// CalendarDay is the upstream per-day aggregate. Availability is one of
// "full", "partial", "none" and is never recomputed portal-side.
type CalendarDay struct {
	Availability string    `json:"availability"`
	Bookings     []Booking `json:"bookings"`
	BookingCount int       `json:"booking_count"`
}

// CalendarView is the per-day aggregate map for one venue and month.
type CalendarView struct {
	Venue    Venue                  `json:"venue"`
	Month    int                    `json:"month"`
	Year     int                    `json:"year"`
	Calendar map[string]CalendarDay `json:"calendar"`
}

// UserInfo is the profile returned by the session-establishment endpoint.
type UserInfo struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
	Role        string `json:"role"`
}
