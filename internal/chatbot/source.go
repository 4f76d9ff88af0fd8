package chatbot

import (
	"context"
	"errors"
	"fmt"

	"smartslot/internal/bookings"
	"smartslot/internal/session"
	"smartslot/internal/upstream"
)

// upstreamSource answers the engine's live-data queries from the booking API.
type upstreamSource struct {
	upstream *upstream.Client
	sessions *session.Store
}

// NewUpstreamSource creates the live DataSource
func NewUpstreamSource(up *upstream.Client, sessions *session.Store) DataSource {
	return &upstreamSource{upstream: up, sessions: sessions}
}

func (s *upstreamSource) VenueNames(ctx context.Context) ([]string, error) {
	venues, err := s.upstream.ListVenues(ctx)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(venues))
	for _, v := range venues {
		names = append(names, v.Name)
	}
	return names, nil
}

func (s *upstreamSource) BookingSummaries(ctx context.Context, sessionID string) ([]string, error) {
	sess := s.sessions.Get(ctx, sessionID)
	if !sess.SignedIn() {
		return nil, errors.New("not signed in")
	}

	list, err := s.upstream.MyBookings(ctx, sess.Token)
	if err != nil {
		return nil, err
	}

	summaries := make([]string, 0, len(list))
	for _, b := range list {
		label := bookings.Status(b.Status).Display().Label
		summaries = append(summaries, fmt.Sprintf("%s on %s (%s)", b.Title, b.BookingDate, label))
	}
	return summaries, nil
}
