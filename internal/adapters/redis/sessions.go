package redisad

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"dealerhub/internal/adapters/observability"
	"dealerhub/internal/domain"
)

// Sessions keeps login sessions in Redis under an opaque random token,
// expiring after ttl. Redis holds nothing else: dealer and review
// responses are never cached across requests.
type Sessions struct {
	c   *redis.Client
	ttl time.Duration
}

func New(addr, pass string, db int, ttl time.Duration) *Sessions {
	return &Sessions{
		c:   redis.NewClient(&redis.Options{Addr: addr, Password: pass, DB: db}),
		ttl: ttl,
	}
}

// NewWithClient is used by tests to point at a miniredis instance.
func NewWithClient(c *redis.Client, ttl time.Duration) *Sessions {
	return &Sessions{c: c, ttl: ttl}
}

func key(token string) string { return "session:" + token }

func (s *Sessions) Create(ctx context.Context, username string) (string, error) {
	var b [32]byte
	if _, err := rand.Read(b[:]); err != nil {
		return "", fmt.Errorf("session token: %w", err)
	}
	token := hex.EncodeToString(b[:])
	if err := s.c.Set(ctx, key(token), username, s.ttl).Err(); err != nil {
		return "", err
	}
	observability.ObserveSession("create")
	return token, nil
}

func (s *Sessions) Lookup(ctx context.Context, token string) (domain.Session, error) {
	username, err := s.c.Get(ctx, key(token)).Result()
	if err == redis.Nil {
		observability.ObserveSession("miss")
		return domain.Session{}, domain.ErrUnauthorized
	}
	if err != nil {
		return domain.Session{}, err
	}
	observability.ObserveSession("hit")
	return domain.Session{Token: token, Username: username}, nil
}

func (s *Sessions) Revoke(ctx context.Context, token string) error {
	observability.ObserveSession("revoke")
	return s.c.Del(ctx, key(token)).Err()
}
