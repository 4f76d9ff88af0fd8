package calendar

import (
	"context"
	"html"

	"smartslot/internal/bookings"
	"smartslot/internal/upstream"
	"smartslot/pkg/logger"
)

// MonthView is the calendar page payload: the venue header, the laid-out
// grid, and the per-day details for the detail panel.
type MonthView struct {
	VenueID   string `json:"venue_id"`
	VenueName string `json:"venue_name"`
	Grid      Grid   `json:"grid"`
}

// DayView is the detail panel for one day: every booking on it, plus the
// prefill shortcut into the booking form.
type DayView struct {
	Date     string                 `json:"date"`
	Bookings []bookings.BookingView `json:"bookings"`
	Prefill  Prefill                `json:"prefill"`
}

// Prefill carries the calendar's context into the booking form so "book this
// day" lands with venue and date already chosen.
type Prefill struct {
	VenueID string `json:"venue_id"`
	Date    string `json:"date"`
}

// Service renders the availability calendar for a venue.
type Service interface {
	Month(ctx context.Context, venueID string, month, year int) (*MonthView, error)
	Day(ctx context.Context, venueID, date string, month, year int) (*DayView, error)
}

type service struct {
	upstream *upstream.Client
	logger   *logger.Logger
}

// NewService creates a calendar service
func NewService(up *upstream.Client, log *logger.Logger) Service {
	return &service{upstream: up, logger: log}
}

func (s *service) Month(ctx context.Context, venueID string, month, year int) (*MonthView, error) {
	view, err := s.upstream.CalendarView(ctx, venueID, month, year)
	if err != nil {
		return nil, err
	}

	return &MonthView{
		VenueID:   view.Venue.ID,
		VenueName: html.EscapeString(view.Venue.Name),
		Grid:      BuildGrid(month, year, view.Calendar),
	}, nil
}

func (s *service) Day(ctx context.Context, venueID, date string, month, year int) (*DayView, error) {
	view, err := s.upstream.CalendarView(ctx, venueID, month, year)
	if err != nil {
		return nil, err
	}

	// A date absent from the aggregate is simply a free day.
	info := view.Calendar[date]

	day := &DayView{
		Date:     date,
		Bookings: make([]bookings.BookingView, 0, len(info.Bookings)),
		Prefill:  Prefill{VenueID: venueID, Date: date},
	}
	for _, b := range info.Bookings {
		day.Bookings = append(day.Bookings, bookings.NewBookingView(b))
	}
	return day, nil
}
