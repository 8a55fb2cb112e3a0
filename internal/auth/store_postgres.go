package auth

import (
	"context"
	"database/sql"
	"errors"
	"strings"
)

// PostgresUserStore persists users in the users table.
type PostgresUserStore struct {
	db *sql.DB
}

// NewPostgresUserStore constructs a store.
func NewPostgresUserStore(db *sql.DB) *PostgresUserStore {
	return &PostgresUserStore{db: db}
}

// Create inserts a user row.
func (s *PostgresUserStore) Create(ctx context.Context, user User) error {
	if s == nil || s.db == nil {
		return errors.New("user store: nil db")
	}
	_, err := s.db.ExecContext(ctx, `
INSERT INTO users (username, email, password_hash, created_at)
VALUES ($1,$2,$3,$4)`,
		user.Username, user.Email, user.PasswordHash, user.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrUsernameTaken
		}
		return err
	}
	return nil
}

// Get loads a user by username.
func (s *PostgresUserStore) Get(ctx context.Context, username string) (*User, error) {
	if s == nil || s.db == nil {
		return nil, errors.New("user store: nil db")
	}
	row := s.db.QueryRowContext(ctx, `
SELECT username, email, password_hash, created_at
FROM users
WHERE username = $1
LIMIT 1`, username)
	var user User
	err := row.Scan(&user.Username, &user.Email, &user.PasswordHash, &user.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// isUniqueViolation matches the postgres unique_violation SQLSTATE
// without binding to a driver error type.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "23505")
}
