package staff

import (
	"context"
	"errors"

	"smartslot/internal/bookings"
	"smartslot/internal/session"
	"smartslot/internal/upstream"
	"smartslot/pkg/logger"
)

// ErrNotSignedIn mirrors the bookings service: staff operations need the
// session's bearer token.
var ErrNotSignedIn = errors.New("not signed in")

// Service is the review queue behind the staff dashboard. Approvals and
// rejections are proxied straight to the upstream; the role gate here only
// controls navigation, the upstream makes the real authorization call.
type Service interface {
	Pending(ctx context.Context, sessionID string) ([]bookings.BookingView, error)
	Approve(ctx context.Context, sessionID, bookingID string) error
	Reject(ctx context.Context, sessionID, bookingID string) error
}

type service struct {
	upstream *upstream.Client
	sessions *session.Store
	logger   *logger.Logger
}

// NewService creates a staff service
func NewService(up *upstream.Client, sessions *session.Store, log *logger.Logger) Service {
	return &service{upstream: up, sessions: sessions, logger: log}
}

func (s *service) token(ctx context.Context, sessionID string) (string, error) {
	sess := s.sessions.Get(ctx, sessionID)
	if !sess.SignedIn() {
		return "", ErrNotSignedIn
	}
	return sess.Token, nil
}

func (s *service) handleAuthExpired(ctx context.Context, sessionID string, err error) {
	if errors.Is(err, upstream.ErrAuthExpired) {
		_ = s.sessions.Clear(ctx, sessionID)
		s.logger.LogSessionExpired(ctx, sessionID)
	}
}

func (s *service) Pending(ctx context.Context, sessionID string) ([]bookings.BookingView, error) {
	token, err := s.token(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	list, err := s.upstream.PendingBookings(ctx, token)
	if err != nil {
		s.handleAuthExpired(ctx, sessionID, err)
		return nil, err
	}

	views := make([]bookings.BookingView, 0, len(list))
	for _, b := range list {
		views = append(views, bookings.NewBookingView(b))
	}
	return views, nil
}

func (s *service) Approve(ctx context.Context, sessionID, bookingID string) error {
	token, err := s.token(ctx, sessionID)
	if err != nil {
		return err
	}

	if err := s.upstream.ApproveBooking(ctx, token, bookingID); err != nil {
		s.handleAuthExpired(ctx, sessionID, err)
		return err
	}
	return nil
}

func (s *service) Reject(ctx context.Context, sessionID, bookingID string) error {
	token, err := s.token(ctx, sessionID)
	if err != nil {
		return err
	}

	if err := s.upstream.RejectBooking(ctx, token, bookingID); err != nil {
		s.handleAuthExpired(ctx, sessionID, err)
		return err
	}
	return nil
}
