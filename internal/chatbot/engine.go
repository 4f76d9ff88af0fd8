package chatbot

import (
	"context"
	"html"
	"strings"
)

// DataSource supplies live data for the answers that can carry it. Both
// methods degrade gracefully: an error means the static fallback text is
// used instead.
type DataSource interface {
	VenueNames(ctx context.Context) ([]string, error)
	BookingSummaries(ctx context.Context, sessionID string) ([]string, error)
}

// category is one keyword bucket. Categories are matched in declaration
// order; the first hit wins.
type category struct {
	name     string
	keywords []string
	reply    func(e *Engine, ctx context.Context, sessionID string) string
}

// Engine is the rule-based fallback assistant. It answers from a fixed set
// of keyword categories, enriching two of them with live data when it can.
type Engine struct {
	source     DataSource
	categories []category
}

// NewEngine creates the assistant with its category table
func NewEngine(source DataSource) *Engine {
	e := &Engine{source: source}
	e.categories = []category{
		{
			name:     "booking",
			keywords: []string{"book", "reserve", "reservation"},
			reply: func(e *Engine, ctx context.Context, sessionID string) string {
				return "To book a venue, pick one from the Venues page, choose a date and an available time slot, then fill in the booking form. You'll confirm with a 6-digit code."
			},
		},
		{
			name:     "venue",
			keywords: []string{"venue", "room", "hall", "space"},
			reply:    (*Engine).venuesReply,
		},
		{
			name:     "my-bookings",
			keywords: []string{"cancel"},
			reply:    (*Engine).myBookingsReply,
		},
		{
			name:     "status",
			keywords: []string{"status", "pending", "approved", "rejected"},
			reply: func(e *Engine, ctx context.Context, sessionID string) string {
				return "New bookings start as Pending Approval. Staff review them and mark them Confirmed or Rejected. You can follow yours on the My Bookings page."
			},
		},
		{
			name:     "help",
			keywords: []string{"help", "how", "what can you"},
			reply: func(e *Engine, ctx context.Context, sessionID string) string {
				return "I can help with booking a venue, listing venues, checking your bookings, and explaining booking statuses. Try asking \"how do I book?\" or \"show venues\"."
			},
		},
	}
	return e
}

// Reply answers one message. Matching is case-insensitive substring search
// over the category keywords, first category to match wins, and an
// unmatched message gets the default answer.
func (e *Engine) Reply(ctx context.Context, sessionID, message string) string {
	lowered := strings.ToLower(message)

	for _, cat := range e.categories {
		for _, kw := range cat.keywords {
			if strings.Contains(lowered, kw) {
				return cat.reply(e, ctx, sessionID)
			}
		}
	}

	return "I'm not sure about that. I can help with booking venues, checking availability, or your existing bookings. Type \"help\" to see what I can do."
}

// Suggestions returns the quick-reply chips rendered under the input.
func (e *Engine) Suggestions() []string {
	return []string{
		"How do I book a venue?",
		"Show me the venues",
		"How do I cancel?",
		"What does pending mean?",
	}
}

// venuesReply lists live venue names when the catalog is reachable.
func (e *Engine) venuesReply(ctx context.Context, sessionID string) string {
	names, err := e.source.VenueNames(ctx)
	if err != nil || len(names) == 0 {
		return "You can browse all venues on the Venues page, with capacity and amenities for each."
	}

	escaped := make([]string, 0, len(names))
	for _, n := range names {
		escaped = append(escaped, html.EscapeString(n))
	}
	return "Here are our venues: " + strings.Join(escaped, ", ") + ". Open the Venues page to see details and book."
}

// myBookingsReply summarizes the caller's bookings when signed in.
func (e *Engine) myBookingsReply(ctx context.Context, sessionID string) string {
	summaries, err := e.source.BookingSummaries(ctx, sessionID)
	if err != nil {
		return "You can see and cancel your bookings on the My Bookings page."
	}
	if len(summaries) == 0 {
		return "You have no bookings yet. Head to the Venues page to make your first one."
	}

	escaped := make([]string, 0, len(summaries))
	for _, s := range summaries {
		escaped = append(escaped, html.EscapeString(s))
	}
	return "Your bookings: " + strings.Join(escaped, "; ") + ". Manage them on the My Bookings page."
}
