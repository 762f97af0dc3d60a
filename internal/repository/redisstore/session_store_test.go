package redisstore

import (
	"context"
	"os"
	"testing"
	"time"

	"greenwatch-be/pkg/intake"
	"greenwatch-be/pkg/store"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newClient(t *testing.T) *redis.Client {
	t.Helper()
	url := os.Getenv("REDIS_URL")
	if url == "" {
		t.Skip("Skipping redis test: REDIS_URL not set")
	}
	opt, err := redis.ParseURL(url)
	require.NoError(t, err)
	rdb := redis.NewClient(opt)
	t.Cleanup(func() { rdb.Close() })
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		t.Skipf("Skipping redis test: %v", err)
	}
	return rdb
}

func TestSessionStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	rdb := newClient(t)
	s := NewSessionStore(rdb, time.Minute)

	session := store.NewSession(uuid.NewString(), "owner")
	session.Append(intake.UserMessage("MV Horizon"))
	require.NoError(t, s.Save(ctx, session))
	t.Cleanup(func() { s.Delete(ctx, session.ID) })

	got, err := s.Get(ctx, session.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "MV Horizon", got.Messages[0].Text)

	ttl, err := rdb.TTL(ctx, KeyPrefix+session.ID).Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))

	require.NoError(t, s.Delete(ctx, session.ID))
	missing, err := s.Get(ctx, session.ID)
	assert.NoError(t, err)
	assert.Nil(t, missing)
}
