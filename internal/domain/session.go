package domain

type SessionState string

const (
	// SessionUnauthenticated means no credential is held.
	SessionUnauthenticated SessionState = "unauthenticated"
	// SessionAuthenticating means a login or a bootstrap probe is in flight.
	SessionAuthenticating SessionState = "authenticating"
	// SessionAuthenticated means a verified credential is installed.
	SessionAuthenticated SessionState = "authenticated"
	// SessionInvalid means a persisted credential was rejected by the server
	// and has been cleared.
	SessionInvalid SessionState = "invalid"
)

// Session is a snapshot of the authentication state. Invariant: Token is
// non-empty if and only if State is SessionAuthenticated.
type Session struct {
	State SessionState
	User  *User
	Token string
}
