package calendar

import (
	"fmt"
	"html"
	"time"

	"smartslot/internal/upstream"
)

// maxPreview is how many booking titles fit in a day cell before the
// remainder collapses into a "+N more" line.
const maxPreview = 2

// Cell is one day of the month grid.
type Cell struct {
	Day          int      `json:"day"`
	Date         string   `json:"date"`
	CSSClass     string   `json:"css_class"`
	BookingCount int      `json:"booking_count"`
	Preview      []string `json:"preview,omitempty"`
	MoreCount    int      `json:"more_count,omitempty"`
}

// Grid is a month laid out for rendering: leading blanks to align the first
// day under its weekday column, then one cell per day.
type Grid struct {
	Month         int    `json:"month"`
	Year          int    `json:"year"`
	MonthLabel    string `json:"month_label"`
	LeadingBlanks int    `json:"leading_blanks"`
	Cells         []Cell `json:"cells"`
}

// BuildGrid lays out one month. days is the upstream per-day aggregate keyed
// by ISO date; a date missing from the map renders as a free day.
func BuildGrid(month, year int, days map[string]upstream.CalendarDay) Grid {
	first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	daysInMonth := first.AddDate(0, 1, -1).Day()

	grid := Grid{
		Month:         month,
		Year:          year,
		MonthLabel:    first.Format("January 2006"),
		LeadingBlanks: int(first.Weekday()),
		Cells:         make([]Cell, 0, daysInMonth),
	}

	for day := 1; day <= daysInMonth; day++ {
		date := fmt.Sprintf("%04d-%02d-%02d", year, month, day)
		info, present := days[date]

		cell := Cell{
			Day:          day,
			Date:         date,
			BookingCount: info.BookingCount,
		}
		// A day the aggregate never mentions is a free day; a day it does
		// mention gets the server-driven class, never one recomputed from
		// the bookings.
		if present {
			cell.CSSClass = densityClass(info.Availability)
		}

		for i, b := range info.Bookings {
			if i == maxPreview {
				cell.MoreCount = len(info.Bookings) - maxPreview
				break
			}
			cell.Preview = append(cell.Preview, html.EscapeString(b.Title))
		}

		grid.Cells = append(grid.Cells, cell)
	}

	return grid
}

// densityClass maps the upstream availability value onto the cell's CSS
// class. "full" availability is the neutral look; everything that is not
// fully available and not partial renders as booked out.
func densityClass(availability string) string {
	switch availability {
	case "full":
		return ""
	case "partial":
		return "has-bookings"
	default:
		return "fully-booked"
	}
}
