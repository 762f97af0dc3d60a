package memory

import (
	"context"
	"testing"
	"time"

	"greenwatch-be/pkg/intake"
	"greenwatch-be/pkg/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionRepositoryRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := NewSessionRepository(0)

	s := store.NewSession("s1", "owner")
	s.Append(intake.AssistantMessage("hi"))
	require.NoError(t, repo.Save(ctx, s))

	got, err := repo.Get(ctx, "s1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "owner", got.OwnerID)
	assert.Len(t, got.Messages, 1)

	// Mutating the returned copy does not touch the stored one.
	got.Messages = nil
	again, err := repo.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Len(t, again.Messages, 1)
	assert.Equal(t, 1, repo.Count())

	require.NoError(t, repo.Delete(ctx, "s1"))
	missing, err := repo.Get(ctx, "s1")
	assert.NoError(t, err)
	assert.Nil(t, missing)
}

func TestSessionRepositoryExpires(t *testing.T) {
	ctx := context.Background()
	repo := NewSessionRepository(20 * time.Millisecond)
	require.NoError(t, repo.Save(ctx, store.NewSession("s1", "")))

	assert.Eventually(t, func() bool {
		got, err := repo.Get(ctx, "s1")
		return err == nil && got == nil
	}, time.Second, 10*time.Millisecond)
}
