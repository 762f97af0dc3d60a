package store

import (
	"context"
	"sync"
)

// Locker hands out one mutex per session id so turns of a session run one
// at a time while distinct sessions proceed in parallel. It only serialises
// turns within one process.
type Locker struct {
	locks sync.Map // id -> *sync.Mutex
}

func NewLocker() *Locker {
	return &Locker{}
}

// Lock blocks until the session is free and returns the unlock func. The
// wait itself is not cancellable; ctx is checked before waiting.
func (l *Locker) Lock(ctx context.Context, id string) (func(), error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	v, _ := l.locks.LoadOrStore(id, &sync.Mutex{})
	mu := v.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock, nil
}

// Forget drops the mutex of a deleted session.
func (l *Locker) Forget(id string) {
	l.locks.Delete(id)
}
