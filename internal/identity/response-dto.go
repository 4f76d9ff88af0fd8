package identity

import "smartslot/internal/session"

// SessionResponse is returned by every successful sign-in flow.
type SessionResponse struct {
	SessionToken string        `json:"session_token"`
	User         *session.User `json:"user"`
}
