package upstream

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(handler http.Handler) (*Client, *httptest.Server) {
	srv := httptest.NewServer(handler)
	return NewClient(srv.URL, 5*time.Second), srv
}

func TestListVenues(t *testing.T) {
	client, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/venues", r.URL.Path)
		assert.Empty(t, r.Header.Get("Authorization"))
		w.Write([]byte(`{"success":true,"venues":[{"id":"V1","name":"Auditorium","capacity":200}]}`))
	}))
	defer srv.Close()

	venues, err := client.ListVenues(context.Background())
	require.NoError(t, err)
	require.Len(t, venues, 1)
	assert.Equal(t, "Auditorium", venues[0].Name)
}

func TestBearerTokenAttached(t *testing.T) {
	client, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok-123", r.Header.Get("Authorization"))
		w.Write([]byte(`{"success":true,"bookings":[]}`))
	}))
	defer srv.Close()

	_, err := client.MyBookings(context.Background(), "tok-123")
	require.NoError(t, err)
}

func TestAuthExpiredOn401(t *testing.T) {
	client, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	_, err := client.MyBookings(context.Background(), "stale")
	assert.ErrorIs(t, err, ErrAuthExpired)
}

func TestAccessDeniedOn403(t *testing.T) {
	client, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	err := client.ApproveBooking(context.Background(), "tok", "B1")
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestConflictClassification(t *testing.T) {
	client, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"success":false,"error":"Slot already booked","conflictType":"overlap"}`))
	}))
	defer srv.Close()

	_, err := client.CreateBooking(context.Background(), "tok", CreateBookingRequest{})
	ce, ok := IsConflict(err)
	require.True(t, ok)
	assert.Equal(t, "overlap", ce.Type)
	assert.Equal(t, "Slot already booked", ce.Message)
}

func TestEnvelopeFailureBecomesAPIError(t *testing.T) {
	client, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"success":false,"error":"Venue not found"}`))
	}))
	defer srv.Close()

	_, err := client.Availability(context.Background(), "nope", "2025-03-10")
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "Venue not found", apiErr.Message)
}

func TestSuccessEnvelopeOnErrorStatusRejected(t *testing.T) {
	client, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"success":true,"venues":[{"id":"V1","name":"Auditorium"}]}`))
	}))
	defer srv.Close()

	venues, err := client.ListVenues(context.Background())
	assert.ErrorIs(t, err, ErrUpstream)
	assert.Nil(t, venues)
}

func TestEnvelopeFailureOnErrorStatusStillClassified(t *testing.T) {
	// The conflict and message classification must survive the status gate:
	// those envelopes arrive on 4xx responses.
	client, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte(`{"success":false,"error":"Slot already booked","conflictType":"overlap"}`))
	}))
	defer srv.Close()

	_, err := client.CreateBooking(context.Background(), "tok", CreateBookingRequest{})
	ce, ok := IsConflict(err)
	require.True(t, ok)
	assert.Equal(t, "overlap", ce.Type)
}

func TestNonJSONIsTransportError(t *testing.T) {
	client, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("<html>gateway error</html>"))
	}))
	defer srv.Close()

	_, err := client.ListVenues(context.Background())
	assert.ErrorIs(t, err, ErrUpstream)
}

func TestNetworkFailureIsTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	client := NewClient(srv.URL, time.Second)
	srv.Close() // connection refused from here on

	_, err := client.ListVenues(context.Background())
	assert.ErrorIs(t, err, ErrUpstream)
}

func TestAvailabilityQueryShape(t *testing.T) {
	client, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/bookings/availability", r.URL.Path)
		assert.Equal(t, "V1", r.URL.Query().Get("venue_id"))
		assert.Equal(t, "2025-03-10", r.URL.Query().Get("date"))
		w.Write([]byte(`{"success":true,"date":"2025-03-10","venue":{"id":"V1","name":"Hall"},"slots":[
			{"start_time":"09:00","end_time":"10:00","available":true},
			{"start_time":"10:00","end_time":"11:00","available":false}]}`))
	}))
	defer srv.Close()

	avail, err := client.Availability(context.Background(), "V1", "2025-03-10")
	require.NoError(t, err)
	require.Len(t, avail.Slots, 2)
	assert.True(t, avail.Slots[0].Available)
	assert.False(t, avail.Slots[1].Available)
}

func TestEstablishSession(t *testing.T) {
	client, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/session", r.URL.Path)
		w.Write([]byte(`{"user":{"id":"u1","email":"a@b.test","display_name":"Ada","role":"USER"}}`))
	}))
	defer srv.Close()

	user, err := client.EstablishSession(context.Background(), "id-token")
	require.NoError(t, err)
	assert.Equal(t, "u1", user.ID)
	assert.Equal(t, "USER", user.Role)
}

func TestEstablishSessionRejected(t *testing.T) {
	client, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	_, err := client.EstablishSession(context.Background(), "bad")
	assert.ErrorIs(t, err, ErrAuthExpired)
}
