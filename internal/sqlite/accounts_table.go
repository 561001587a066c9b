// This file implements the users and profiles table accessor, the
// concrete form of the Accounts interface consumed by the identity
// service. Password hashing happens in the identity service; this layer
// only stores and returns the hash.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/kc95kc/music-map/pkg/types"
)

// Compile-time interface check: accountsTable must implement Accounts.
var _ types.Accounts = (*accountsTable)(nil)

// accountsTable implements the Accounts interface over the users and
// profiles tables.
type accountsTable struct {
	backend *Backend
}

// CreateUser stores a credential record and returns the new user ID.
// Returns ErrEmailTaken if the email is already registered.
func (at *accountsTable) CreateUser(ctx context.Context, email, passwordHash string) (string, error) {
	if err := at.backend.checkAttached(); err != nil {
		return "", err
	}
	if email == "" || passwordHash == "" {
		return "", types.ErrInvalidData
	}

	var exists int
	err := at.backend.db.QueryRowContext(ctx,
		"SELECT 1 FROM users WHERE email = ?", email,
	).Scan(&exists)
	if err == nil {
		return "", types.ErrEmailTaken
	}
	if err != sql.ErrNoRows {
		return "", fmt.Errorf("checking email: %w", err)
	}

	id, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("generating UUID v7: %w", err)
	}

	_, err = at.backend.db.ExecContext(ctx,
		"INSERT INTO users (id, email, password_hash, created_at) VALUES (?, ?, ?, ?)",
		id.String(), email, passwordHash, time.Now().UTC().Format(timeFormat),
	)
	if err != nil {
		return "", fmt.Errorf("inserting user: %w", err)
	}
	return id.String(), nil
}

// UserByEmail returns the user ID and stored password hash.
// Returns ErrNotFound for an unknown email.
func (at *accountsTable) UserByEmail(ctx context.Context, email string) (string, string, error) {
	if err := at.backend.checkAttached(); err != nil {
		return "", "", err
	}

	var id, hash string
	err := at.backend.db.QueryRowContext(ctx,
		"SELECT id, password_hash FROM users WHERE email = ?", email,
	).Scan(&id, &hash)
	if err == sql.ErrNoRows {
		return "", "", types.ErrNotFound
	}
	if err != nil {
		return "", "", fmt.Errorf("getting user by email: %w", err)
	}
	return id, hash, nil
}

// CreateProfile stores the public profile row for a user. The row is
// keyed by the user ID, matching the credential record.
func (at *accountsTable) CreateProfile(ctx context.Context, userID, username string) error {
	if err := at.backend.checkAttached(); err != nil {
		return err
	}
	if userID == "" || username == "" {
		return types.ErrInvalidData
	}

	_, err := at.backend.db.ExecContext(ctx,
		"INSERT INTO profiles (id, username, created_at) VALUES (?, ?, ?)",
		userID, username, time.Now().UTC().Format(timeFormat),
	)
	if err != nil {
		return fmt.Errorf("inserting profile: %w", err)
	}
	return nil
}

// ProfileName resolves the display name for a user ID.
// Returns ErrNotFound if no profile row exists.
func (at *accountsTable) ProfileName(ctx context.Context, userID string) (string, error) {
	if err := at.backend.checkAttached(); err != nil {
		return "", err
	}

	var username string
	err := at.backend.db.QueryRowContext(ctx,
		"SELECT username FROM profiles WHERE id = ?", userID,
	).Scan(&username)
	if err == sql.ErrNoRows {
		return "", types.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("getting profile name: %w", err)
	}
	return username, nil
}
