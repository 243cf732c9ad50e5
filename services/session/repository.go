package session

import "github.com/zonagamer/console/internal/pkg/models"

// SessionRepo persists the current session in durable client storage and
// owns the outbound-credential hookup. The whole session is written as one
// record; there are no partial writes.
type SessionRepo interface {
	// Save overwrites the stored session atomically
	Save(session *models.Session) error
	// Load returns the stored session, or nil when none is stored
	Load() (*models.Session, error)
	// Clear deletes the stored session; clearing an empty store is not an error
	Clear() error

	// SetOutboundCredential configures the shared request pipeline so every
	// subsequent call carries the bearer token
	SetOutboundCredential(token string)
	// ClearOutboundCredential removes the bearer token from the pipeline
	ClearOutboundCredential()

	// Close releases the underlying storage
	Close() error
}
