package guard

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/zonagamer/console/internal/pkg/models"
	"github.com/zonagamer/console/internal/pkg/roles"
	"github.com/zonagamer/console/services/session"
)

// stubSession implements session.SessionUC with a fixed state and role
type stubSession struct {
	state session.State
	role  string
}

func (s *stubSession) Restore(ctx context.Context) error { return nil }
func (s *stubSession) Login(ctx context.Context, email, password string) (*models.Session, error) {
	return nil, nil
}
func (s *stubSession) Register(ctx context.Context, name, email, password, role string) (*models.Session, error) {
	return nil, nil
}
func (s *stubSession) Logout()               {}
func (s *stubSession) IsAuthenticated() bool { return s.state == session.StateAuthenticated }
func (s *stubSession) HasRole(role string) bool {
	if s.state != session.StateAuthenticated {
		return false
	}
	return roles.Has(s.role, role)
}
func (s *stubSession) Current() *models.Session { return nil }
func (s *stubSession) State() session.State     { return s.state }

func TestGuard_Evaluate(t *testing.T) {
	tests := []struct {
		name         string
		state        session.State
		userRole     string
		requiredRole string
		from         string
		want         Verdict
	}{
		{
			name:  "Restore pending defers",
			state: session.StateUnknown,
			want:  VerdictDefer,
		},
		{
			name:  "Restore pending defers even without role requirement",
			state: session.StateUnknown,
			from:  "watch",
			want:  VerdictDefer,
		},
		{
			name:  "Anonymous redirects to login",
			state: session.StateAnonymous,
			from:  "games",
			want:  VerdictLogin,
		},
		{
			name:         "Anonymous with role requirement still redirects to login",
			state:        session.StateAnonymous,
			requiredRole: "ROLE_ADMIN",
			from:         "watch",
			want:         VerdictLogin,
		},
		{
			name:     "Authenticated without role requirement allows",
			state:    session.StateAuthenticated,
			userRole: "ROLE_USER",
			want:     VerdictAllow,
		},
		{
			name:         "Authenticated lacking role is unauthorized",
			state:        session.StateAuthenticated,
			userRole:     "ROLE_USER",
			requiredRole: "ROLE_ADMIN",
			want:         VerdictUnauthorized,
		},
		{
			name:         "Admin satisfies any role requirement",
			state:        session.StateAuthenticated,
			userRole:     "ROLE_ADMIN",
			requiredRole: "ROLE_USER",
			want:         VerdictAllow,
		},
		{
			name:         "Prefix mismatch still matches",
			state:        session.StateAuthenticated,
			userRole:     "ROLE_USER",
			requiredRole: "USER",
			want:         VerdictAllow,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewGuard(&stubSession{state: tt.state, role: tt.userRole})

			decision := g.Evaluate(tt.from, tt.requiredRole)

			assert.Equal(t, tt.want, decision.Verdict)
			if tt.want == VerdictLogin {
				assert.Equal(t, tt.from, decision.From)
			} else {
				assert.Empty(t, decision.From)
			}
		})
	}
}

func TestVerdict_String(t *testing.T) {
	assert.Equal(t, "defer", VerdictDefer.String())
	assert.Equal(t, "login", VerdictLogin.String())
	assert.Equal(t, "unauthorized", VerdictUnauthorized.String())
	assert.Equal(t, "allow", VerdictAllow.String())
	assert.Equal(t, "unknown", Verdict(99).String())
}
