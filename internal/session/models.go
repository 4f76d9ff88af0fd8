package session

// Role is the portal-visible user role. It gates navigation only; the
// upstream API enforces authorization on every call.
type Role string

const (
	RoleUser  Role = "USER"
	RoleStaff Role = "STAFF"
	RoleAdmin Role = "ADMIN"
)

// IsValid checks if the role is one the portal knows
func (r Role) IsValid() bool {
	switch r {
	case RoleUser, RoleStaff, RoleAdmin:
		return true
	}
	return false
}

// CanModerate reports whether the role may reach the staff dashboard
func (r Role) CanModerate() bool {
	return r == RoleStaff || r == RoleAdmin
}

func (r Role) String() string {
	return string(r)
}

// User is the cached profile snapshot returned by the upstream
// session-establishment endpoint.
type User struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
	Role        Role   `json:"role"`
}

// Name returns the best display string for the user
func (u *User) Name() string {
	if u.DisplayName != "" {
		return u.DisplayName
	}
	return u.Email
}

// Session is a browser session as seen by every other component. Either both
// fields are set or neither is: the store never yields a partial pair.
type Session struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}

// SignedIn reports whether the session carries a complete token+profile pair
func (s Session) SignedIn() bool {
	return s.Token != "" && s.User != nil
}
