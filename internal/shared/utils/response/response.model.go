package response

// Envelope is the JSON wrapper returned by every portal endpoint. It mirrors
// the upstream API's {success, ...} shape so the thin browser shell can treat
// portal and upstream responses uniformly.
type Envelope struct {
	Success      bool        `json:"success"`
	Message      string      `json:"message,omitempty"`
	Data         interface{} `json:"data,omitempty"`
	Error        string      `json:"error,omitempty"`
	ConflictType string      `json:"conflict_type,omitempty"`
}
