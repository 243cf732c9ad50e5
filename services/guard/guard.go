// Package guard decides whether a command that requires authentication or a
// role may run. It is a pure decision layer over the session manager: it
// holds no state of its own and every evaluation reads the manager fresh.
package guard

import (
	"github.com/zonagamer/console/services/session"
)

// Verdict is the outcome of evaluating an access rule.
type Verdict int

const (
	// VerdictDefer means the session state is not yet known (restore still
	// pending); the caller must wait rather than redirect.
	VerdictDefer Verdict = iota
	// VerdictLogin means the caller must authenticate first.
	VerdictLogin
	// VerdictUnauthorized means the caller is authenticated but lacks the
	// required role.
	VerdictUnauthorized
	// VerdictAllow grants access.
	VerdictAllow
)

func (v Verdict) String() string {
	switch v {
	case VerdictDefer:
		return "defer"
	case VerdictLogin:
		return "login"
	case VerdictUnauthorized:
		return "unauthorized"
	case VerdictAllow:
		return "allow"
	default:
		return "unknown"
	}
}

// Decision carries the verdict plus the destination the caller originally
// asked for, so a successful login can return there.
type Decision struct {
	Verdict Verdict
	// From is the command or route the caller wanted when the verdict is
	// VerdictLogin; empty otherwise.
	From string
}

// Guard evaluates access rules against the session manager.
type Guard struct {
	sessions session.SessionUC
}

// NewGuard creates a route guard backed by the given session manager.
func NewGuard(sessions session.SessionUC) *Guard {
	return &Guard{sessions: sessions}
}

// Evaluate decides access for a destination that requires requiredRole.
// An empty requiredRole means authentication alone is enough.
//
// Authentication is always checked before the role, so an unauthenticated
// caller never learns whether their role would have matched.
func (g *Guard) Evaluate(from, requiredRole string) Decision {
	if g.sessions.State() == session.StateUnknown {
		return Decision{Verdict: VerdictDefer}
	}
	if !g.sessions.IsAuthenticated() {
		return Decision{Verdict: VerdictLogin, From: from}
	}
	if requiredRole != "" && !g.sessions.HasRole(requiredRole) {
		return Decision{Verdict: VerdictUnauthorized}
	}
	return Decision{Verdict: VerdictAllow}
}
