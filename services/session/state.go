// Package session defines the contracts of the session/authorization
// subsystem: the session manager, the durable session store, and the
// identity-issuer gateway.
package session

// State is the session manager's lifecycle state. It starts at StateUnknown
// until the restore attempt completes; route decisions must not be made
// while it is unknown.
type State int

const (
	// StateUnknown means the restore attempt has not completed yet
	StateUnknown State = iota
	// StateAnonymous means no session is active
	StateAnonymous
	// StateAuthenticated means a session is active
	StateAuthenticated
)

func (s State) String() string {
	switch s {
	case StateAnonymous:
		return "anonymous"
	case StateAuthenticated:
		return "authenticated"
	default:
		return "unknown"
	}
}
