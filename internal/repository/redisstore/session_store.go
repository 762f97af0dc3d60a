// Package redisstore keeps intake sessions in Redis so any instance behind
// the load balancer can serve a turn.
package redisstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"greenwatch-be/internal/repository/contract"
	"greenwatch-be/pkg/store"

	"github.com/redis/go-redis/v9"
)

const KeyPrefix = "greenwatch:session:"

type SessionStore struct {
	rdb *redis.Client
	ttl time.Duration
}

var _ contract.SessionStore = (*SessionStore)(nil)

func NewSessionStore(rdb *redis.Client, ttl time.Duration) *SessionStore {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &SessionStore{rdb: rdb, ttl: ttl}
}

func key(id string) string {
	return KeyPrefix + id
}

// Save writes the session and refreshes its TTL.
func (s *SessionStore) Save(ctx context.Context, session *store.Session) error {
	data, err := session.Marshal()
	if err != nil {
		return fmt.Errorf("encode session %s: %w", session.ID, err)
	}
	if err := s.rdb.Set(ctx, key(session.ID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis set session %s: %w", session.ID, err)
	}
	return nil
}

func (s *SessionStore) Get(ctx context.Context, id string) (*store.Session, error) {
	data, err := s.rdb.Get(ctx, key(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("redis get session %s: %w", id, err)
	}
	session, err := store.Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("decode session %s: %w", id, err)
	}
	return session, nil
}

func (s *SessionStore) Delete(ctx context.Context, id string) error {
	if err := s.rdb.Del(ctx, key(id)).Err(); err != nil {
		return fmt.Errorf("redis delete session %s: %w", id, err)
	}
	return nil
}
