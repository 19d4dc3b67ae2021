package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/deppfellow/invoice-dashboard/internal/model"
)

// ErrSessionNotFound is returned for unknown or expired session tokens.
var ErrSessionNotFound = errors.New("session not found")

const sessionKeyPrefix = "session:"

// Session is an authenticated sign-in. Token is the cookie value and is
// not part of the stored document.
type Session struct {
	Token     string    `json:"-"`
	UserID    string    `json:"user_id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	ExpiresAt time.Time `json:"expires_at"`
}

type sessionRedis interface {
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
	Get(ctx context.Context, key string) *redis.StringCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// RedisSessionStore keeps sessions in Redis under session:<token>, expiring
// with the session.
type RedisSessionStore struct {
	client sessionRedis
	ttl    time.Duration
	now    func() time.Time
}

func NewRedisSessionStore(client *redis.Client, ttl time.Duration) *RedisSessionStore {
	return &RedisSessionStore{client: client, ttl: ttl, now: time.Now}
}

func sessionKey(token string) string {
	return sessionKeyPrefix + token
}

// Create opens a session for user with a fresh random token.
func (s *RedisSessionStore) Create(ctx context.Context, user *model.User) (*Session, error) {
	session := &Session{
		Token:     uuid.NewString(),
		UserID:    user.ID,
		Email:     user.Email,
		Name:      user.Name,
		ExpiresAt: s.now().Add(s.ttl).UTC(),
	}

	data, err := json.Marshal(session)
	if err != nil {
		return nil, fmt.Errorf("encoding session: %w", err)
	}

	if err := s.client.Set(ctx, sessionKey(session.Token), data, s.ttl).Err(); err != nil {
		return nil, fmt.Errorf("storing session: %w", err)
	}
	return session, nil
}

// Get loads the session for token.
func (s *RedisSessionStore) Get(ctx context.Context, token string) (*Session, error) {
	data, err := s.client.Get(ctx, sessionKey(token)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("loading session: %w", err)
	}

	var session Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("decoding session: %w", err)
	}
	session.Token = token

	return &session, nil
}

// Delete ends the session. Deleting an unknown token is not an error.
func (s *RedisSessionStore) Delete(ctx context.Context, token string) error {
	if err := s.client.Del(ctx, sessionKey(token)).Err(); err != nil {
		return fmt.Errorf("deleting session: %w", err)
	}
	return nil
}
