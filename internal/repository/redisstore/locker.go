package redisstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"greenwatch-be/internal/repository/contract"
	"greenwatch-be/pkg/store"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const LockPrefix = "greenwatch:lock:"

const retryInterval = 50 * time.Millisecond

// ErrLockTimeout is returned when another instance holds the session past
// the wait bound.
var ErrLockTimeout = errors.New("session is locked by another instance")

// releaseScript deletes the lease only when it still carries our token, so
// an expired lease taken over by another instance is left alone.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// Locker serialises turns of a session across instances sharing one redis.
// Turns on the same instance queue on a local mutex first so they do not
// poll redis against each other.
type Locker struct {
	rdb   *redis.Client
	local *store.Locker
	lease time.Duration
	wait  time.Duration
}

var _ contract.SessionLocker = (*Locker)(nil)

// NewLocker takes a lease that must outlive a turn, runner call included.
// Lock gives up after waiting one lease.
func NewLocker(rdb *redis.Client, lease time.Duration) *Locker {
	if lease <= 0 {
		lease = 45 * time.Second
	}
	return &Locker{
		rdb:   rdb,
		local: store.NewLocker(),
		lease: lease,
		wait:  lease,
	}
}

func lockKey(id string) string {
	return LockPrefix + id
}

func (l *Locker) Lock(ctx context.Context, id string) (func(), error) {
	unlockLocal, err := l.local.Lock(ctx, id)
	if err != nil {
		return nil, err
	}

	token := uuid.NewString()
	waitCtx, cancel := context.WithTimeout(ctx, l.wait)
	defer cancel()

	for {
		ok, err := l.rdb.SetNX(waitCtx, lockKey(id), token, l.lease).Result()
		if err != nil && !errors.Is(err, context.DeadlineExceeded) {
			unlockLocal()
			return nil, fmt.Errorf("redis lock session %s: %w", id, err)
		}
		if ok {
			break
		}

		select {
		case <-waitCtx.Done():
			unlockLocal()
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			return nil, fmt.Errorf("%w: %s", ErrLockTimeout, id)
		case <-time.After(retryInterval):
		}
	}

	return func() {
		// The request context may already be done when the turn returns.
		releaseScript.Run(context.Background(), l.rdb, []string{lockKey(id)}, token)
		unlockLocal()
	}, nil
}

func (l *Locker) Forget(id string) {
	l.local.Forget(id)
}
