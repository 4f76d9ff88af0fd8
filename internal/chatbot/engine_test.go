package chatbot

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// stubSource is a canned DataSource for engine tests.
type stubSource struct {
	venues      []string
	venuesErr   error
	bookings    []string
	bookingsErr error
}

func (s *stubSource) VenueNames(ctx context.Context) ([]string, error) {
	return s.venues, s.venuesErr
}

func (s *stubSource) BookingSummaries(ctx context.Context, sessionID string) ([]string, error) {
	return s.bookings, s.bookingsErr
}

func TestCategoryMatching(t *testing.T) {
	e := NewEngine(&stubSource{
		venues:   []string{"Auditorium"},
		bookings: []string{"Team Sync on 2025-03-10 (Confirmed)"},
	})
	ctx := context.Background()

	tests := []struct {
		name     string
		message  string
		contains string
	}{
		{"booking question", "How do I book a venue?", "6-digit code"},
		{"reserve keyword", "I want to RESERVE something", "6-digit code"},
		{"venue listing", "what rooms do you have", "Auditorium"},
		{"book keyword wins first", "what are my bookings?", "6-digit code"},
		{"cancel routes to my bookings", "how do I cancel?", "Team Sync"},
		{"status question", "why is it still pending", "Pending Approval"},
		{"help", "help me please", "I can help with"},
		{"unmatched falls through", "tell me a joke", "I'm not sure"},
		{"empty message", "", "I'm not sure"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reply := e.Reply(ctx, "sess-1", tt.message)
			assert.Contains(t, reply, tt.contains)
		})
	}
}

func TestVenueAnswerFallsBackWhenUnreachable(t *testing.T) {
	e := NewEngine(&stubSource{venuesErr: errors.New("down")})

	reply := e.Reply(context.Background(), "sess-1", "show venues")
	assert.Contains(t, reply, "Venues page")
	assert.NotContains(t, reply, "Here are our venues")
}

func TestMyBookingsFallsBackWhenSignedOut(t *testing.T) {
	e := NewEngine(&stubSource{bookingsErr: errors.New("not signed in")})

	reply := e.Reply(context.Background(), "", "can I cancel?")
	assert.Contains(t, reply, "My Bookings page")
}

func TestMyBookingsEmptyList(t *testing.T) {
	e := NewEngine(&stubSource{bookings: []string{}})

	reply := e.Reply(context.Background(), "sess-1", "cancel one?")
	assert.Contains(t, reply, "no bookings yet")
}

func TestLiveDataIsEscaped(t *testing.T) {
	e := NewEngine(&stubSource{
		venues:   []string{"<b>Hall</b>"},
		bookings: []string{"<script>x</script> on 2025-03-10 (Pending Approval)"},
	})
	ctx := context.Background()

	venueReply := e.Reply(ctx, "sess-1", "venues?")
	assert.Contains(t, venueReply, "&lt;b&gt;Hall&lt;/b&gt;")
	assert.NotContains(t, venueReply, "<b>")

	bookingReply := e.Reply(ctx, "sess-1", "cancel something")
	assert.NotContains(t, bookingReply, "<script>")
}

func TestSuggestionsAreStable(t *testing.T) {
	e := NewEngine(&stubSource{})
	suggestions := e.Suggestions()

	assert.Len(t, suggestions, 4)
	for _, s := range suggestions {
		assert.NotEmpty(t, strings.TrimSpace(s))
	}
}
