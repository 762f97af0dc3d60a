package contract

import (
	"context"

	"greenwatch-be/pkg/store"
)

// SessionStore holds live intake sessions. Get returns nil, nil for an
// unknown or expired id.
type SessionStore interface {
	Save(ctx context.Context, session *store.Session) error
	Get(ctx context.Context, id string) (*store.Session, error)
	Delete(ctx context.Context, id string) error
}

// SessionLocker serialises turns of one session. The returned unlock func
// must be called exactly once.
type SessionLocker interface {
	Lock(ctx context.Context, id string) (unlock func(), err error)
	Forget(id string)
}
