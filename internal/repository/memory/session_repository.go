package memory

import (
	"context"
	"fmt"
	"time"

	"greenwatch-be/internal/repository/contract"
	"greenwatch-be/pkg/store"

	"github.com/patrickmn/go-cache"
)

const (
	defaultTTL    = 1 * time.Hour
	purgeInterval = 10 * time.Minute
)

// SessionRepository keeps sessions in process memory. Entries are stored in
// their JSON form so callers never share a live *store.Session.
type SessionRepository struct {
	cache *cache.Cache
}

var _ contract.SessionStore = (*SessionRepository)(nil)

func NewSessionRepository(ttl time.Duration) *SessionRepository {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &SessionRepository{
		cache: cache.New(ttl, purgeInterval),
	}
}

func (r *SessionRepository) Save(_ context.Context, session *store.Session) error {
	data, err := session.Marshal()
	if err != nil {
		return fmt.Errorf("encode session %s: %w", session.ID, err)
	}
	r.cache.Set(session.ID, data, cache.DefaultExpiration)
	return nil
}

func (r *SessionRepository) Get(_ context.Context, sessionID string) (*store.Session, error) {
	x, found := r.cache.Get(sessionID)
	if !found {
		return nil, nil
	}
	session, err := store.Unmarshal(x.([]byte))
	if err != nil {
		return nil, fmt.Errorf("decode session %s: %w", sessionID, err)
	}
	return session, nil
}

func (r *SessionRepository) Delete(_ context.Context, sessionID string) error {
	r.cache.Delete(sessionID)
	return nil
}

// Count reports live entries, expired ones included until the next purge.
func (r *SessionRepository) Count() int {
	return r.cache.ItemCount()
}
