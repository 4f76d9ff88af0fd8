package bookings

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusDisplayMapping(t *testing.T) {
	tests := []struct {
		status   Status
		label    string
		cssClass string
	}{
		{StatusPending, "Pending Approval", "status-pending"},
		{StatusConfirmed, "Confirmed", "status-confirmed"},
		{StatusRejected, "Rejected", "status-rejected"},
		{StatusCancelled, "Cancelled", "status-cancelled"},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			attrs := tt.status.Display()
			assert.Equal(t, tt.label, attrs.Label)
			assert.Equal(t, tt.cssClass, attrs.CSSClass)
			assert.NotEmpty(t, attrs.Icon)
		})
	}
}

func TestStatusDisplayIsTotal(t *testing.T) {
	// A status the portal has never seen still renders a usable badge.
	attrs := Status("ARCHIVED").Display()
	assert.Equal(t, "ARCHIVED", attrs.Label)
	assert.Equal(t, "status-unknown", attrs.CSSClass)

	attrs = Status("").Display()
	assert.Equal(t, "Unknown", attrs.Label)
	assert.Equal(t, "status-unknown", attrs.CSSClass)
}

func TestStatusValidity(t *testing.T) {
	assert.True(t, StatusPending.IsValid())
	assert.True(t, StatusConfirmed.IsValid())
	assert.True(t, StatusRejected.IsValid())
	assert.True(t, StatusCancelled.IsValid())
	assert.False(t, Status("ARCHIVED").IsValid())
	assert.False(t, Status("pending").IsValid())
}

func TestCanBeCancelled(t *testing.T) {
	assert.True(t, StatusPending.CanBeCancelled())
	assert.True(t, StatusConfirmed.CanBeCancelled())
	assert.False(t, StatusRejected.CanBeCancelled())
	assert.False(t, StatusCancelled.CanBeCancelled())
}
