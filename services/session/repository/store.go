package repository

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/zonagamer/console/internal/pkg/database"
	httpclient "github.com/zonagamer/console/internal/pkg/http"
	"github.com/zonagamer/console/internal/pkg/models"
)

// schema holds a single session row; id is pinned to 1 so a save is always
// a whole-record overwrite.
const schema = `
CREATE TABLE IF NOT EXISTS session (
	id      INTEGER PRIMARY KEY CHECK (id = 1),
	token   TEXT NOT NULL,
	user_id INTEGER NOT NULL,
	email   TEXT NOT NULL,
	name    TEXT NOT NULL,
	role    TEXT NOT NULL
);`

// SessionStore persists the session in a local SQLite database and
// configures the outbound request pipeline's bearer credential.
type SessionStore struct {
	client *database.SQLiteClient
	creds  *httpclient.Credentials
}

// DefaultPath returns the per-user location of the session database
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve user config dir: %w", err)
	}
	return filepath.Join(dir, "zonagamer", "session.db"), nil
}

// NewSessionStore opens (or creates) the session database at path and wires
// the store to the pipeline's shared credentials. An empty path selects the
// per-user default location.
func NewSessionStore(path string, creds *httpclient.Credentials) (*SessionStore, error) {
	if path == "" {
		var err error
		path, err = DefaultPath()
		if err != nil {
			return nil, err
		}
	}

	client, err := database.NewSQLiteClient(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open session store: %w", err)
	}

	if _, err := client.GetDB().Exec(schema); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to migrate session store: %w", err)
	}

	return &SessionStore{client: client, creds: creds}, nil
}

// sessionRow is the flat database shape of a session
type sessionRow struct {
	Token  string `db:"token"`
	UserID int64  `db:"user_id"`
	Email  string `db:"email"`
	Name   string `db:"name"`
	Role   string `db:"role"`
}

// Save overwrites the stored session atomically
func (s *SessionStore) Save(session *models.Session) error {
	if session == nil {
		return fmt.Errorf("cannot save a nil session")
	}

	query := `
		INSERT INTO session (id, token, user_id, email, name, role)
		VALUES (1, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			token = excluded.token,
			user_id = excluded.user_id,
			email = excluded.email,
			name = excluded.name,
			role = excluded.role`

	if _, err := s.client.GetDB().Exec(query,
		session.Token,
		session.User.ID,
		session.User.Email,
		session.User.Name,
		session.User.Role,
	); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}

	return nil
}

// Load returns the stored session, or nil when none is stored
func (s *SessionStore) Load() (*models.Session, error) {
	var row sessionRow
	err := s.client.GetDB().Get(&row, `SELECT token, user_id, email, name, role FROM session WHERE id = 1`)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	return &models.Session{
		Token: row.Token,
		User: models.AuthUser{
			ID:    row.UserID,
			Email: row.Email,
			Name:  row.Name,
			Role:  row.Role,
		},
	}, nil
}

// Clear deletes the stored session
func (s *SessionStore) Clear() error {
	if _, err := s.client.GetDB().Exec(`DELETE FROM session WHERE id = 1`); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}

// SetOutboundCredential configures the shared pipeline's bearer token
func (s *SessionStore) SetOutboundCredential(token string) {
	s.creds.SetBearerToken(token)
}

// ClearOutboundCredential removes the pipeline's bearer token
func (s *SessionStore) ClearOutboundCredential() {
	s.creds.ClearBearerToken()
}

// Close closes the underlying database
func (s *SessionStore) Close() error {
	return s.client.Close()
}
