package model

// SessionState represents whether the current page session is logged in.
// It lives only in memory; a new page session always starts LoggedOut.
type SessionState int

const (
	// LoggedOut is the initial state and the state after a successful logout.
	// The signup and login forms are visible in this state.
	LoggedOut SessionState = iota

	// LoggedIn is entered only after a successful login.
	// The flashcard form, the logout control and the saved list are visible.
	LoggedIn
)

// String returns a human-readable representation of the session state.
func (s SessionState) String() string {
	switch s {
	case LoggedOut:
		return "logged out"
	case LoggedIn:
		return "logged in"
	default:
		return "unknown"
	}
}

// IsLoggedIn reports whether the state is LoggedIn.
func (s SessionState) IsLoggedIn() bool {
	return s == LoggedIn
}

// Login returns the state after a successful login.
func (s SessionState) Login() SessionState {
	return LoggedIn
}

// Logout returns the state after a successful logout.
func (s SessionState) Logout() SessionState {
	return LoggedOut
}

// MarshalText implements encoding.TextMarshaler so JSON snapshots carry
// "logged_in"/"logged_out" instead of an integer.
func (s SessionState) MarshalText() ([]byte, error) {
	switch s {
	case LoggedIn:
		return []byte("logged_in"), nil
	default:
		return []byte("logged_out"), nil
	}
}

// UnmarshalText implements encoding.TextUnmarshaler.
// Anything other than "logged_in" decodes to LoggedOut.
func (s *SessionState) UnmarshalText(text []byte) error {
	if string(text) == "logged_in" {
		*s = LoggedIn
		return nil
	}
	*s = LoggedOut
	return nil
}
