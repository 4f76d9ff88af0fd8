package bookings

// Status is a booking's lifecycle state as reported by the upstream API.
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusConfirmed Status = "CONFIRMED"
	StatusRejected  Status = "REJECTED"
	StatusCancelled Status = "CANCELLED"
)

// IsValid checks if the status is one the portal knows
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusRejected, StatusCancelled:
		return true
	}
	return false
}

// CanBeCancelled reports whether the user may still cancel the booking
func (s Status) CanBeCancelled() bool {
	return s == StatusPending || s == StatusConfirmed
}

// DisplayAttributes is everything a view needs to render a status badge.
type DisplayAttributes struct {
	Label    string `json:"label"`
	CSSClass string `json:"css_class"`
	Icon     string `json:"icon"`
}

var statusDisplay = map[Status]DisplayAttributes{
	StatusPending:   {Label: "Pending Approval", CSSClass: "status-pending", Icon: "hourglass"},
	StatusConfirmed: {Label: "Confirmed", CSSClass: "status-confirmed", Icon: "check"},
	StatusRejected:  {Label: "Rejected", CSSClass: "status-rejected", Icon: "cross"},
	StatusCancelled: {Label: "Cancelled", CSSClass: "status-cancelled", Icon: "ban"},
}

// Display returns the badge attributes for the status. The mapping is total:
// a status the portal has never seen renders as a neutral badge with the raw
// value as its label rather than an empty or broken one.
func (s Status) Display() DisplayAttributes {
	if attrs, ok := statusDisplay[s]; ok {
		return attrs
	}
	label := string(s)
	if label == "" {
		label = "Unknown"
	}
	return DisplayAttributes{Label: label, CSSClass: "status-unknown", Icon: "question"}
}
