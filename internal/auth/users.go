package auth

import (
	"context"
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// User is a registered account. The username doubles as the opaque
// owner identity attached to datasets.
type User struct {
	Username     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// UserStore persists accounts.
type UserStore interface {
	// Create stores a new user, failing with ErrUsernameTaken when the
	// username is already registered.
	Create(ctx context.Context, user User) error
	// Get loads a user, failing with ErrUserNotFound when absent.
	Get(ctx context.Context, username string) (*User, error)
}

// Service implements registration and login on top of a UserStore,
// issuing signed tokens on success.
type Service struct {
	store    UserStore
	secret   []byte
	tokenTTL time.Duration
}

// NewService constructs an auth service.
func NewService(store UserStore, secret []byte, tokenTTL time.Duration) (*Service, error) {
	if store == nil {
		return nil, errors.New("auth service: nil store")
	}
	if len(secret) == 0 {
		return nil, errors.New("auth service: empty secret")
	}
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &Service{store: store, secret: secret, tokenTTL: tokenTTL}, nil
}

// Register creates an account and returns a signed token.
func (s *Service) Register(ctx context.Context, username, password, email string) (string, error) {
	if username == "" || password == "" {
		return "", ErrEmptyCredentials
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	user := User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.store.Create(ctx, user); err != nil {
		return "", err
	}
	return IssueToken(username, s.secret, s.tokenTTL)
}

// Login verifies credentials and returns a signed token.
func (s *Service) Login(ctx context.Context, username, password string) (string, error) {
	if username == "" || password == "" {
		return "", ErrEmptyCredentials
	}
	user, err := s.store.Get(ctx, username)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}
	return IssueToken(username, s.secret, s.tokenTTL)
}
