package upstream

import (
	"errors"
	"fmt"
)

// Sentinel errors for the failure classes every caller switches on. The
// client never retries: each failure is reported once and the caller decides
// what to render or fall back to.
var (
	// ErrAuthExpired maps HTTP 401. The caller must clear the session.
	ErrAuthExpired = errors.New("session expired")

	// ErrAccessDenied maps HTTP 403. The session is kept.
	ErrAccessDenied = errors.New("access denied")

	// ErrUpstream covers network failures and non-JSON or otherwise
	// unusable responses.
	ErrUpstream = errors.New("upstream request failed")
)

// APIError is a well-formed {success:false} envelope carrying an upstream
// error message.
type APIError struct {
	Message string
}

func (e *APIError) Error() string {
	return e.Message
}

// ConflictError is an upstream-reported scheduling overlap. It is surfaced
// distinctly from generic failures so the booking form can show the
// conflict-specific notice.
type ConflictError struct {
	Message string
	Type    string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("booking conflict (%s): %s", e.Type, e.Message)
}

// IsConflict extracts a ConflictError from an error chain
func IsConflict(err error) (*ConflictError, bool) {
	var ce *ConflictError
	if errors.As(err, &ce) {
		return ce, true
	}
	return nil, false
}
