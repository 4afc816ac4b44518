package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"spendtrack/internal/core"
	"spendtrack/internal/credential"
)

// Users is the repository for user rows. It borrows the store's session
// per call and holds no state beyond the injected codec.
type Users struct {
	store *Store
	codec credential.Codec
}

func NewUsers(store *Store, codec credential.Codec) *Users {
	return &Users{store: store, codec: codec}
}

// Register creates a new user and returns its identifier. The insert is
// a single atomic statement; duplicates are rejected both by the exists
// checks here and by the UNIQUE constraints, so the two-step
// check-then-insert flow cannot commit a duplicate.
func (r *Users) Register(ctx context.Context, username, email, secret string) (int64, error) {
	if err := core.ValidateRegistration(username, email, secret); err != nil {
		return 0, err
	}

	if taken, err := r.UsernameExists(ctx, username); err != nil {
		return 0, err
	} else if taken {
		return 0, ErrDuplicateUsername
	}
	if taken, err := r.EmailExists(ctx, email); err != nil {
		return 0, err
	} else if taken {
		return 0, ErrDuplicateEmail
	}

	hash, err := r.codec.Hash(secret)
	if err != nil {
		return 0, fmt.Errorf("hash secret: %w", err)
	}

	res, err := r.store.db.ExecContext(ctx,
		"INSERT INTO users (username, email, password_hash) VALUES (?, ?, ?)",
		username, email, hash)
	if err != nil {
		return 0, mapUserConstraint(err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("read new user id: %w", err)
	}

	slog.InfoContext(ctx, "user registered", "user_id", id, "username", username)
	return id, nil
}

// UsernameExists reports whether a user with this exact username exists.
func (r *Users) UsernameExists(ctx context.Context, username string) (bool, error) {
	var n int
	err := r.store.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM users WHERE username = ?", username).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("check username: %w", err)
	}
	return n > 0, nil
}

// EmailExists reports whether a user with this exact email exists.
func (r *Users) EmailExists(ctx context.Context, email string) (bool, error) {
	var n int
	err := r.store.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM users WHERE email = ?", email).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("check email: %w", err)
	}
	return n > 0, nil
}

// Login verifies the secret for a username. Unknown usernames and wrong
// secrets both return ErrInvalidCredentials; callers cannot tell them
// apart. The credential representation stays inside this package.
func (r *Users) Login(ctx context.Context, username, secret string) (core.User, error) {
	var (
		u    core.User
		hash string
	)
	err := r.store.db.QueryRowContext(ctx,
		"SELECT user_id, username, email, password_hash FROM users WHERE username = ?",
		username).Scan(&u.ID, &u.Username, &u.Email, &hash)
	if errors.Is(err, sql.ErrNoRows) {
		return core.User{}, ErrInvalidCredentials
	}
	if err != nil {
		return core.User{}, fmt.Errorf("look up user: %w", err)
	}

	if !r.codec.Verify(secret, hash) {
		return core.User{}, ErrInvalidCredentials
	}

	slog.InfoContext(ctx, "user logged in", "user_id", u.ID, "username", u.Username)
	return u, nil
}

// mapUserConstraint converts UNIQUE violations on the users table into
// their typed errors. The driver reports the failing column in the
// message; there is no structured code for it.
func mapUserConstraint(err error) error {
	msg := err.Error()
	switch {
	case strings.Contains(msg, "users.username"):
		return ErrDuplicateUsername
	case strings.Contains(msg, "users.email"):
		return ErrDuplicateEmail
	}
	return fmt.Errorf("insert user: %w", err)
}
