// Package upstream is the portal's client for the booking API. Everything
// authoritative (availability checks, conflict detection, persistence, OTP
// validation) happens behind this client; the portal only renders what it
// returns.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"smartslot/pkg/logger"
)

// Client issues JSON requests against the upstream API base path.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *logger.Logger
}

// Option is a functional option for configuring the Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithLogger sets a custom logger.
func WithLogger(l *logger.Logger) Option {
	return func(c *Client) {
		c.logger = l
	}
}

// NewClient creates a client for the given base URL, e.g. "http://host/api".
func NewClient(baseURL string, timeout time.Duration, opts ...Option) *Client {
	c := &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger.GetDefault(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// envelope is the {success, ...} wrapper every upstream endpoint returns.
type envelope struct {
	Success      bool   `json:"success"`
	Error        string `json:"error"`
	ConflictType string `json:"conflictType"`
}

// do performs one request and decodes the envelope into out. token is
// attached as a bearer when non-empty. Failures are classified per the error
// taxonomy in errors.go; the call is never retried.
func (c *Client) do(ctx context.Context, method, path, token string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	c.logger.LogUpstreamCall(ctx, method, path, time.Since(start), err)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusUnauthorized:
		return ErrAuthExpired
	case http.StatusForbidden:
		return ErrAccessDenied
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: read body: %v", ErrUpstream, err)
	}

	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return fmt.Errorf("%w: non-JSON response (status %d)", ErrUpstream, resp.StatusCode)
	}

	if !env.Success {
		if env.ConflictType != "" {
			return &ConflictError{Message: env.Error, Type: env.ConflictType}
		}
		if env.Error != "" {
			return &APIError{Message: env.Error}
		}
		return fmt.Errorf("%w: status %d", ErrUpstream, resp.StatusCode)
	}

	// A success envelope on a non-2xx status is not trustworthy.
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: status %d with success envelope", ErrUpstream, resp.StatusCode)
	}

	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("%w: decode response: %v", ErrUpstream, err)
		}
	}
	return nil
}

// ListVenues fetches the venue catalog.
func (c *Client) ListVenues(ctx context.Context) ([]Venue, error) {
	var out struct {
		Venues []Venue `json:"venues"`
	}
	if err := c.do(ctx, http.MethodGet, "/venues", "", nil, &out); err != nil {
		return nil, err
	}
	return out.Venues, nil
}

// Availability fetches the slot list for a venue on a date.
func (c *Client) Availability(ctx context.Context, venueID, date string) (*Availability, error) {
	path := "/bookings/availability?" + url.Values{
		"venue_id": {venueID},
		"date":     {date},
	}.Encode()

	var out Availability
	if err := c.do(ctx, http.MethodGet, path, "", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CalendarView fetches the per-day aggregate map for a venue and month.
func (c *Client) CalendarView(ctx context.Context, venueID string, month, year int) (*CalendarView, error) {
	path := "/bookings/calendar-view?" + url.Values{
		"venue_id": {venueID},
		"month":    {strconv.Itoa(month)},
		"year":     {strconv.Itoa(year)},
	}.Encode()

	var out CalendarView
	if err := c.do(ctx, http.MethodGet, path, "", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateBooking submits a booking. On success the upstream returns the new
// booking id plus the one-time code that starts the OTP challenge.
func (c *Client) CreateBooking(ctx context.Context, token string, req CreateBookingRequest) (*CreateBookingResult, error) {
	var out CreateBookingResult
	if err := c.do(ctx, http.MethodPost, "/bookings", token, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// VerifyOTP confirms a pending booking with its one-time code.
func (c *Client) VerifyOTP(ctx context.Context, token, bookingID, otp string) error {
	body := map[string]string{"booking_id": bookingID, "otp": otp}
	return c.do(ctx, http.MethodPost, "/bookings/verify-otp", token, body, nil)
}

// ResendOTP asks the upstream to issue a fresh code for a pending booking.
func (c *Client) ResendOTP(ctx context.Context, token, bookingID string) error {
	body := map[string]string{"booking_id": bookingID}
	return c.do(ctx, http.MethodPost, "/bookings/resend-otp", token, body, nil)
}

// MyBookings fetches the caller's bookings.
func (c *Client) MyBookings(ctx context.Context, token string) ([]Booking, error) {
	var out struct {
		Bookings []Booking `json:"bookings"`
	}
	if err := c.do(ctx, http.MethodGet, "/bookings/my-bookings", token, nil, &out); err != nil {
		return nil, err
	}
	return out.Bookings, nil
}

// CancelBooking cancels one booking owned by the caller.
func (c *Client) CancelBooking(ctx context.Context, token, bookingID string) error {
	return c.do(ctx, http.MethodDelete, "/bookings/"+bookingID+"/cancel", token, nil, nil)
}

// PendingBookings fetches bookings awaiting staff review.
func (c *Client) PendingBookings(ctx context.Context, token string) ([]Booking, error) {
	var out struct {
		Bookings []Booking `json:"bookings"`
	}
	if err := c.do(ctx, http.MethodGet, "/bookings/pending", token, nil, &out); err != nil {
		return nil, err
	}
	return out.Bookings, nil
}

// ApproveBooking approves a pending booking (staff only).
func (c *Client) ApproveBooking(ctx context.Context, token, bookingID string) error {
	return c.do(ctx, http.MethodPost, "/bookings/"+bookingID+"/approve", token, nil, nil)
}

// RejectBooking rejects a pending booking (staff only).
func (c *Client) RejectBooking(ctx context.Context, token, bookingID string) error {
	return c.do(ctx, http.MethodPost, "/bookings/"+bookingID+"/reject", token, nil, nil)
}

// SuggestSlots fetches alternate free slots for a venue and date. Used to
// enrich the conflict notice after a rejected submission.
func (c *Client) SuggestSlots(ctx context.Context, venueID, date string) ([]Slot, error) {
	path := "/bookings/suggest-slots?" + url.Values{
		"venue_id": {venueID},
		"date":     {date},
	}.Encode()

	var out struct {
		Slots []Slot `json:"slots"`
	}
	if err := c.do(ctx, http.MethodGet, path, "", nil, &out); err != nil {
		return nil, err
	}
	return out.Slots, nil
}

// Chat sends a message to the upstream chat endpoint. Any error here makes
// the caller fall back to the local engine.
func (c *Client) Chat(ctx context.Context, token, message string) (string, error) {
	var out struct {
		Response string `json:"response"`
	}
	body := map[string]string{"message": message}
	if err := c.do(ctx, http.MethodPost, "/chatbot", token, body, &out); err != nil {
		return "", err
	}
	return out.Response, nil
}

// EstablishSession exchanges a provider ID token for an application session.
// The endpoint returns {user} rather than the standard envelope, so it is
// decoded directly.
func (c *Client) EstablishSession(ctx context.Context, idToken string) (*UserInfo, error) {
	data, err := json.Marshal(map[string]string{"idToken": idToken})
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/auth/session", bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	c.logger.LogUpstreamCall(ctx, http.MethodPost, "/auth/session", time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusUnauthorized:
		return nil, ErrAuthExpired
	case http.StatusForbidden:
		return nil, ErrAccessDenied
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: session exchange status %d", ErrUpstream, resp.StatusCode)
	}

	var out struct {
		User UserInfo `json:"user"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("%w: decode session exchange: %v", ErrUpstream, err)
	}
	return &out.User, nil
}
