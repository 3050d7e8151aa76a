package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/gridfill-backend/internal/entity"
)

func TestMemoryGameRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("Save and get", func(t *testing.T) {
		// Given: an empty store
		gameRepo := NewMemoryGameRepository(time.Minute)
		game := sampleGame()

		// When: saving a game
		require.NoError(t, gameRepo.Save(ctx, "session-1", game))

		// Then: the same snapshot comes back
		retrieved, err := gameRepo.GetBySessionID(ctx, "session-1")
		require.NoError(t, err)
		assert.Equal(t, game, retrieved)
	})

	t.Run("Stored snapshot is a copy", func(t *testing.T) {
		gameRepo := NewMemoryGameRepository(time.Minute)
		game := sampleGame()
		require.NoError(t, gameRepo.Save(ctx, "session-1", game))

		game.Board[3][3] = entity.Filled

		retrieved, err := gameRepo.GetBySessionID(ctx, "session-1")
		require.NoError(t, err)
		assert.Equal(t, entity.Blank, retrieved.Cell(3, 3))
	})

	t.Run("Missing session", func(t *testing.T) {
		gameRepo := NewMemoryGameRepository(time.Minute)

		_, err := gameRepo.GetBySessionID(ctx, "missing")

		require.ErrorIs(t, err, ErrGameNotFound)
	})

	t.Run("Entries expire", func(t *testing.T) {
		// Given: a store whose clock can be moved
		now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
		gameRepo := &memoryGame{
			games: make(map[string]memoryEntry),
			ttl:   time.Minute,
			now:   func() time.Time { return now },
		}
		require.NoError(t, gameRepo.Save(ctx, "session-1", sampleGame()))

		// When: the TTL passes
		now = now.Add(time.Minute)

		// Then: the game is gone
		_, err := gameRepo.GetBySessionID(ctx, "session-1")
		require.ErrorIs(t, err, ErrGameNotFound)
		assert.Empty(t, gameRepo.games)
	})

	t.Run("Zero TTL never expires", func(t *testing.T) {
		now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
		gameRepo := &memoryGame{
			games: make(map[string]memoryEntry),
			now:   func() time.Time { return now },
		}
		require.NoError(t, gameRepo.Save(ctx, "session-1", sampleGame()))

		now = now.Add(365 * 24 * time.Hour)

		_, err := gameRepo.GetBySessionID(ctx, "session-1")
		require.NoError(t, err)
	})

	t.Run("Delete", func(t *testing.T) {
		gameRepo := NewMemoryGameRepository(time.Minute)
		require.NoError(t, gameRepo.Save(ctx, "session-1", sampleGame()))

		require.NoError(t, gameRepo.DeleteBySessionID(ctx, "session-1"))
		require.ErrorIs(t, gameRepo.DeleteBySessionID(ctx, "session-1"), ErrGameNotFound)
	})
}
