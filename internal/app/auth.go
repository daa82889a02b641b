package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"dealerhub/internal/domain"
)

// AuthService owns credential checks, registration, and session
// issuance/teardown. Passwords are stored as bcrypt hashes; sessions
// live in the session store under opaque tokens.
type AuthService struct {
	users    domain.UserRepository
	sessions domain.SessionStore
}

func NewAuthService(u domain.UserRepository, s domain.SessionStore) *AuthService {
	return &AuthService{users: u, sessions: s}
}

// Login verifies credentials and issues a session token. Unknown users
// and wrong passwords are both ErrUnauthorized; callers cannot tell
// them apart.
func (a *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	u, err := a.users.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", domain.ErrUnauthorized
		}
		return "", fmt.Errorf("lookup user: %w", err)
	}
	if err := bcrypt.CompareHashAndPassword(u.PasswordHash, []byte(password)); err != nil {
		log.Warn().Str("user", username).Msg("authentication failed")
		return "", domain.ErrUnauthorized
	}
	token, err := a.sessions.Create(ctx, username)
	if err != nil {
		return "", fmt.Errorf("create session: %w", err)
	}
	log.Info().Str("user", username).Msg("user authenticated")
	return token, nil
}

func (a *AuthService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return a.sessions.Revoke(ctx, token)
}

// Register creates the user and logs them straight in.
func (a *AuthService) Register(ctx context.Context, u domain.User, password string) (string, error) {
	exists, err := a.users.UsernameExists(ctx, u.Username)
	if err != nil {
		return "", fmt.Errorf("check username: %w", err)
	}
	if exists {
		return "", domain.ErrAlreadyRegistered
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	u.PasswordHash = hash
	if _, err := a.users.CreateUser(ctx, u); err != nil {
		return "", fmt.Errorf("create user: %w", err)
	}

	token, err := a.sessions.Create(ctx, u.Username)
	if err != nil {
		return "", fmt.Errorf("create session: %w", err)
	}
	log.Info().Str("user", u.Username).Msg("user registered")
	return token, nil
}

// Authenticate resolves a session token to its session, or
// ErrUnauthorized.
func (a *AuthService) Authenticate(ctx context.Context, token string) (domain.Session, error) {
	if token == "" {
		return domain.Session{}, domain.ErrUnauthorized
	}
	return a.sessions.Lookup(ctx, token)
}
