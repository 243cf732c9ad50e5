package usecase

import (
	"context"
	"errors"
	"sync"

	httpclient "github.com/zonagamer/console/internal/pkg/http"
	jwtpkg "github.com/zonagamer/console/internal/pkg/jwt"
	"github.com/zonagamer/console/internal/pkg/logger"
	"github.com/zonagamer/console/internal/pkg/models"
	"github.com/zonagamer/console/internal/pkg/roles"
	"github.com/zonagamer/console/internal/utils"
	"github.com/zonagamer/console/services/session"
)

// ErrSuperseded indicates a login or registration response arrived after a
// logout and was discarded instead of resurrecting the session.
var ErrSuperseded = errors.New("authentication attempt superseded")

// SessionManager orchestrates login, registration, logout and the session
// queries. It exclusively owns the in-memory session; the repository owns
// the durable copy.
type SessionManager struct {
	repo   session.SessionRepo
	authGW session.AuthGW

	mu         sync.Mutex
	state      session.State
	current    *models.Session
	generation uint64
}

// NewSessionManager creates a session manager in the unknown state. Restore
// must run before any route is evaluated.
func NewSessionManager(repo session.SessionRepo, authGW session.AuthGW) *SessionManager {
	return &SessionManager{
		repo:   repo,
		authGW: authGW,
		state:  session.StateUnknown,
	}
}

// Restore loads the stored session. A missing or unreadable record means
// anonymous; it is never a hard failure.
func (m *SessionManager) Restore(ctx context.Context) error {
	stored, err := m.repo.Load()

	m.mu.Lock()
	defer m.mu.Unlock()

	if err != nil || stored == nil || stored.Token == "" {
		if err != nil {
			logger.Warn("stored session unreadable, starting anonymous", logger.Err(err))
		}
		m.state = session.StateAnonymous
		m.current = nil
		m.repo.ClearOutboundCredential()
		return nil
	}

	// The restore path configures the credential exactly like a fresh
	// login, so restored sessions never make unauthenticated requests.
	m.repo.SetOutboundCredential(stored.Token)
	m.state = session.StateAuthenticated
	m.current = stored

	logger.Debug("session restored",
		logger.Int64("user_id", stored.User.ID),
		logger.String("role", stored.User.Role))
	return nil
}

// Login authenticates against the identity issuer and activates the session
func (m *SessionManager) Login(ctx context.Context, email, password string) (*models.Session, error) {
	if !utils.IsValidEmail(email) {
		return nil, &session.AuthenticationError{Message: "invalid email address"}
	}

	gen := m.beginAttempt()

	resp, err := m.authGW.Login(ctx, models.LoginRequest{Email: email, Password: password})
	if err != nil {
		return nil, &session.AuthenticationError{Message: issuerMessage(err), Err: err}
	}

	claims, err := jwtpkg.DecodeToken(resp.AccessToken)
	if err != nil {
		return nil, &session.AuthenticationError{Message: "issuer returned an unreadable token", Err: err}
	}

	role := claims.Role
	if role == "" {
		role = roles.RoleUser
	}
	name := claims.Name
	if name == "" {
		name = utils.EmailLocalPart(email)
	}

	sess := &models.Session{
		Token: resp.AccessToken,
		User: models.AuthUser{
			ID:    claims.Subject,
			Email: email,
			Name:  name,
			Role:  role,
		},
	}

	if err := m.commit(gen, sess); err != nil {
		return nil, &session.AuthenticationError{Err: err}
	}

	logger.Info("login succeeded",
		logger.Int64("user_id", sess.User.ID),
		logger.String("email", utils.MaskEmail(email)),
		logger.String("role", sess.User.Role))
	return sess, nil
}

// Register creates an account and activates the session. The session is
// built with the requested role, trusting that the issuer accepted it; the
// token is decoded only for the subject identifier.
func (m *SessionManager) Register(ctx context.Context, name, email, password, role string) (*models.Session, error) {
	if !utils.IsValidEmail(email) {
		return nil, &session.RegistrationError{Message: "invalid email address"}
	}

	gen := m.beginAttempt()

	if role == "" {
		role = roles.RoleUser
	}

	resp, err := m.authGW.Register(ctx, models.RegisterRequest{
		Email:    email,
		Password: password,
		Name:     name,
		Role:     role,
	})
	if err != nil {
		return nil, &session.RegistrationError{Message: issuerMessage(err), Err: err}
	}

	claims, err := jwtpkg.DecodeToken(resp.AccessToken)
	if err != nil {
		return nil, &session.RegistrationError{Message: "issuer returned an unreadable token", Err: err}
	}

	sess := &models.Session{
		Token: resp.AccessToken,
		User: models.AuthUser{
			ID:    claims.Subject,
			Email: email,
			Name:  name,
			Role:  role,
		},
	}

	if err := m.commit(gen, sess); err != nil {
		return nil, &session.RegistrationError{Err: err}
	}

	logger.Info("registration succeeded",
		logger.Int64("user_id", sess.User.ID),
		logger.String("role", sess.User.Role))
	return sess, nil
}

// Logout destroys the session. It is synchronous and cannot fail: storage
// errors are logged and the in-memory state is torn down regardless.
func (m *SessionManager) Logout() {
	m.mu.Lock()
	defer m.mu.Unlock()

	// Any login or registration still in flight must not resurrect the
	// session when its response eventually lands.
	m.generation++

	if err := m.repo.Clear(); err != nil {
		logger.Warn("failed to clear stored session", logger.Err(err))
	}
	m.repo.ClearOutboundCredential()

	m.state = session.StateAnonymous
	m.current = nil

	logger.Info("logged out")
}

// IsAuthenticated reports whether a session is active
func (m *SessionManager) IsAuthenticated() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state == session.StateAuthenticated
}

// HasRole reports whether the current user satisfies the role. Anonymous and
// unknown states never satisfy any role.
func (m *SessionManager) HasRole(role string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state != session.StateAuthenticated || m.current == nil {
		return false
	}
	return roles.Has(m.current.User.Role, role)
}

// Current returns a copy of the active session, or nil
func (m *SessionManager) Current() *models.Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.current == nil {
		return nil
	}
	copied := *m.current
	return &copied
}

// State returns the manager's lifecycle state
func (m *SessionManager) State() session.State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// beginAttempt snapshots the generation an authentication attempt belongs to
func (m *SessionManager) beginAttempt() uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.generation
}

// commit activates the session unless a logout superseded this attempt.
// Responses that land in order are applied in order: last writer wins on the
// terminal state.
func (m *SessionManager) commit(gen uint64, sess *models.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.generation != gen {
		logger.Debug("discarding superseded authentication result",
			logger.Int64("user_id", sess.User.ID))
		return ErrSuperseded
	}

	if err := m.repo.Save(sess); err != nil {
		return err
	}
	m.repo.SetOutboundCredential(sess.Token)

	m.state = session.StateAuthenticated
	m.current = sess
	return nil
}

// issuerMessage extracts the issuer's error message when the response body
// carried one
func issuerMessage(err error) string {
	var statusErr *httpclient.StatusError
	if errors.As(err, &statusErr) {
		return statusErr.Message
	}
	return ""
}

