package badger

import (
	"context"
	"testing"
	"time"

	"github.com/poiesic/glassmatch/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventRepository(t *testing.T) {
	_, _, repo, backend, err := NewMemoryRepositories()
	require.NoError(t, err)
	defer func() {
		repo.Close()
		backend.Close()
	}()

	ctx := context.Background()
	base := time.Now().UTC().Truncate(time.Microsecond)

	_, err = repo.AddEvents(ctx,
		&core.BotEvent{UserId: 1, Type: core.EventStart, CreatedAt: base.Add(1 * time.Second)},
		&core.BotEvent{UserId: 1, Type: core.EventSearch, Payload: map[string]string{"query": "a13"}, CreatedAt: base.Add(2 * time.Second)},
		&core.BotEvent{UserId: 2, Type: core.EventSearch, CreatedAt: base.Add(3 * time.Second)},
	)
	require.NoError(t, err)

	t.Run("recent events newest first", func(t *testing.T) {
		events, err := repo.GetRecentEvents(ctx, 2)
		require.NoError(t, err)
		require.Len(t, events, 2)
		assert.Equal(t, int64(2), events[0].UserId)
		assert.Equal(t, core.EventSearch, events[1].Type)
		assert.Equal(t, "a13", events[1].Payload["query"])
	})

	t.Run("per-user events", func(t *testing.T) {
		events, err := repo.GetUserEvents(ctx, 1, 10)
		require.NoError(t, err)
		require.Len(t, events, 2)
		assert.Equal(t, core.EventSearch, events[0].Type)
		assert.Equal(t, core.EventStart, events[1].Type)
	})

	t.Run("ids assigned from sequence", func(t *testing.T) {
		events, err := repo.AddEvents(ctx, &core.BotEvent{UserId: 3, Type: core.EventHelp})
		require.NoError(t, err)
		assert.NotZero(t, events[0].Id)
		assert.False(t, events[0].CreatedAt.IsZero())
	})
}
