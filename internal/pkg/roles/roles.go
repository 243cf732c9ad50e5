// Package roles resolves role checks against the platform's role tags.
//
// Roles are case-insensitive strings, conventionally prefixed ROLE_, and the
// administrator role satisfies every check. The set is open: unknown tags are
// legal input and simply fail the check.
package roles

import "strings"

const (
	// RoleAdmin is the privileged super-role
	RoleAdmin = "ROLE_ADMIN"
	// RoleUser is the default role assigned when a token carries none
	RoleUser = "ROLE_USER"

	rolePrefix = "ROLE_"
)

// Has reports whether userRole satisfies requiredRole. Administrators satisfy
// every check; otherwise the comparison tolerates either side omitting the
// ROLE_ prefix, because users are stored both ways and callers ask both ways.
func Has(userRole, requiredRole string) bool {
	if userRole == "" {
		return false
	}

	user := strings.ToUpper(userRole)
	required := strings.ToUpper(requiredRole)

	if user == RoleAdmin || user == "ADMIN" {
		return true
	}

	return user == required ||
		user == rolePrefix+required ||
		rolePrefix+user == required
}

// IsAdmin reports whether the given role is the administrator super-role
func IsAdmin(userRole string) bool {
	return Has(userRole, RoleAdmin)
}
