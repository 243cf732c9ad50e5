package database

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// SQLiteClient represents a local SQLite database client
type SQLiteClient struct {
	db *sqlx.DB
}

// NewSQLiteClient opens (or creates) the database file at path, creating
// its parent directory when needed
func NewSQLiteClient(path string) (*SQLiteClient, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sqlx.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}

	// Verify the file is actually usable before handing it out
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping sqlite database: %w", err)
	}

	return &SQLiteClient{db: db}, nil
}

// GetDB returns the underlying sqlx DB instance
func (c *SQLiteClient) GetDB() *sqlx.DB {
	return c.db
}

// Close closes the database
func (c *SQLiteClient) Close() error {
	return c.db.Close()
}
