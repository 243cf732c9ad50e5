package session

import (
	"context"

	"github.com/zonagamer/console/internal/pkg/models"
)

// SessionUC is the authentication contract exposed to the rest of the
// application. The session manager is the root of trust: the route guard and
// the notification channel both read its state, and nothing else writes
// session state.
type SessionUC interface {
	// Restore loads the stored session on startup. It must complete before
	// any route is evaluated.
	Restore(ctx context.Context) error
	// Login authenticates against the identity issuer
	Login(ctx context.Context, email, password string) (*models.Session, error)
	// Register creates an account with the requested role and logs in
	Register(ctx context.Context, name, email, password, role string) (*models.Session, error)
	// Logout destroys the session; it cannot fail
	Logout()

	// IsAuthenticated reports whether a session is active
	IsAuthenticated() bool
	// HasRole reports whether the current user satisfies the role
	HasRole(role string) bool
	// Current returns a copy of the active session, or nil
	Current() *models.Session
	// State returns the manager's lifecycle state
	State() State
}
