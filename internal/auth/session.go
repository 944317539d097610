package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	dom "Lucky/internal/domain"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	sessionKeyPrefix = "session:"
	sessionTTL       = 24 * time.Hour
)

// Store manages session state in Redis.
type Store struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewStore returns a new session store.
func NewStore(rdb *redis.Client, ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = sessionTTL
	}
	return &Store{rdb: rdb, ttl: ttl}
}

// Create stores a new session and returns its ID.
func (s *Store) Create(ctx context.Context, sess dom.Session) (string, error) {
	id := uuid.NewString()
	if err := s.Save(ctx, id, sess); err != nil {
		return "", err
	}
	return id, nil
}

// Save overwrites the session and restarts its TTL.
func (s *Store) Save(ctx context.Context, id string, sess dom.Session) error {
	b, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	return s.rdb.Set(ctx, sessionKeyPrefix+id, b, s.ttl).Err()
}

// Get returns the session by ID. ok is false if it does not exist or has expired.
func (s *Store) Get(ctx context.Context, id string) (sess dom.Session, ok bool, err error) {
	b, err := s.rdb.Get(ctx, sessionKeyPrefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return dom.Session{}, false, nil
	}
	if err != nil {
		return dom.Session{}, false, err
	}
	if err := json.Unmarshal(b, &sess); err != nil {
		return dom.Session{}, false, fmt.Errorf("decode session: %w", err)
	}
	return sess, true, nil
}

// Delete removes a session by ID.
func (s *Store) Delete(ctx context.Context, id string) error {
	return s.rdb.Del(ctx, sessionKeyPrefix+id).Err()
}

// TTL is how long an untouched session lives.
func (s *Store) TTL() time.Duration {
	return s.ttl
}
