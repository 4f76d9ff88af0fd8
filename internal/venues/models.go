package venues

import (
	"html"

	"smartslot/internal/upstream"
)

// VenueView is one venue shaped for rendering. Name, description and
// location are free text owned by venue administrators; they are HTML-escaped
// here so the catalog can be rendered verbatim.
type VenueView struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Capacity    int      `json:"capacity"`
	Location    string   `json:"location"`
	HourlyRate  float64  `json:"hourly_rate"`
	Amenities   []string `json:"amenities"`
	ImageURL    string   `json:"image_url,omitempty"`
}

// NewVenueView shapes an upstream venue for rendering
func NewVenueView(v upstream.Venue) VenueView {
	amenities := make([]string, 0, len(v.Amenities))
	for _, a := range v.Amenities {
		amenities = append(amenities, html.EscapeString(a))
	}

	return VenueView{
		ID:          v.ID,
		Name:        html.EscapeString(v.Name),
		Description: html.EscapeString(v.Description),
		Capacity:    v.Capacity,
		Location:    html.EscapeString(v.Location),
		HourlyRate:  v.HourlyRate,
		Amenities:   amenities,
		ImageURL:    v.ImageURL,
	}
}
