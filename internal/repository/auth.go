// Package repository provides credential-table backends for the
// authentication gate.
package repository

import (
	"context"
	"database/sql"
	"fmt"
)

// PostgresCredentialRepository checks and registers credentials against a
// PostgreSQL users table.
type PostgresCredentialRepository struct {
	// DB is the database handle for executing queries.
	DB *sql.DB
}

// NewPostgresCredentialRepository creates a repository over the given
// database connection. db must be a valid *sql.DB connected to PostgreSQL.
func NewPostgresCredentialRepository(db *sql.DB) *PostgresCredentialRepository {
	return &PostgresCredentialRepository{DB: db}
}

// Verify reports whether a user row exists with the given login and secret.
func (r *PostgresCredentialRepository) Verify(ctx context.Context, username, secret string) (bool, error) {
	var ok bool
	err := r.DB.QueryRowContext(
		ctx,
		`SELECT EXISTS(SELECT 1 FROM users WHERE login = $1 AND secret = $2)`,
		username, secret,
	).Scan(&ok)
	if err != nil {
		return false, fmt.Errorf("verify credentials: %w", err)
	}
	return ok, nil
}

// Register inserts a credential row. An existing login is left untouched;
// ON CONFLICT DO NOTHING keeps re-registration from failing.
func (r *PostgresCredentialRepository) Register(ctx context.Context, username, secret string) error {
	_, err := r.DB.ExecContext(
		ctx,
		`INSERT INTO users (login, secret) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
		username, secret,
	)
	return err
}
