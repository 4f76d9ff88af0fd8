package calendar

import (
	"testing"

	"smartslot/internal/upstream"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFebruary2024Layout(t *testing.T) {
	// February 2024 starts on a Thursday and has 29 days.
	grid := BuildGrid(2, 2024, nil)

	assert.Equal(t, "February 2024", grid.MonthLabel)
	assert.Equal(t, 4, grid.LeadingBlanks)
	require.Len(t, grid.Cells, 29)

	for i, cell := range grid.Cells {
		assert.Equal(t, i+1, cell.Day)
	}
	assert.Equal(t, "2024-02-01", grid.Cells[0].Date)
	assert.Equal(t, "2024-02-29", grid.Cells[28].Date)
}

func TestSundayStartHasNoBlanks(t *testing.T) {
	// June 2025 starts on a Sunday.
	grid := BuildGrid(6, 2025, nil)
	assert.Equal(t, 0, grid.LeadingBlanks)
	assert.Len(t, grid.Cells, 30)
}

func TestDensityClasses(t *testing.T) {
	days := map[string]upstream.CalendarDay{
		"2025-03-01": {Availability: "full"},
		"2025-03-02": {Availability: "partial", BookingCount: 3},
		"2025-03-03": {Availability: "none", BookingCount: 9},
		"2025-03-04": {Availability: "surprise", BookingCount: 1},
		"2025-03-05": {Availability: ""},
	}

	grid := BuildGrid(3, 2025, days)

	assert.Equal(t, "", grid.Cells[0].CSSClass)
	assert.Equal(t, "has-bookings", grid.Cells[1].CSSClass)
	assert.Equal(t, "fully-booked", grid.Cells[2].CSSClass)

	// Anything other than "full" or "partial" renders booked out, regardless
	// of the booking count.
	assert.Equal(t, "fully-booked", grid.Cells[3].CSSClass)
	assert.Equal(t, "fully-booked", grid.Cells[4].CSSClass)

	// A day the upstream never mentioned renders neutral.
	assert.Equal(t, "", grid.Cells[5].CSSClass)
	assert.Equal(t, 0, grid.Cells[5].BookingCount)
}

func TestCellPreviewTruncation(t *testing.T) {
	days := map[string]upstream.CalendarDay{
		"2025-03-10": {
			Availability: "partial",
			BookingCount: 4,
			Bookings: []upstream.Booking{
				{Title: "Standup"},
				{Title: "Design <review>"},
				{Title: "Retro"},
				{Title: "1:1"},
			},
		},
		"2025-03-11": {
			Availability: "partial",
			BookingCount: 2,
			Bookings: []upstream.Booking{
				{Title: "Standup"},
				{Title: "Retro"},
			},
		},
	}

	grid := BuildGrid(3, 2025, days)

	full := grid.Cells[9]
	require.Len(t, full.Preview, 2)
	assert.Equal(t, "Standup", full.Preview[0])
	assert.Equal(t, "Design &lt;review&gt;", full.Preview[1])
	assert.Equal(t, 2, full.MoreCount)

	exact := grid.Cells[10]
	assert.Len(t, exact.Preview, 2)
	assert.Equal(t, 0, exact.MoreCount)
}
