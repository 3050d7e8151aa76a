package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/gridfill-backend/internal/entity"
	"github.com/rocketscienceinc/gridfill-backend/testing/suite"
)

func sampleGame() entity.Game {
	game := entity.NewGame()
	game.Board[0][0] = entity.Filled
	game.Board[2][3] = entity.Selected
	game.SelectedCount = 1
	game.Turn = entity.ComputerPending
	return game
}

func TestGameRepository_Save(t *testing.T) {
	ctx, st := suite.New(t)

	gameRepo := NewGameRepository(st.Storage, time.Minute)

	// When: Save is called
	err := gameRepo.Save(ctx, "session-1", sampleGame())

	// Then: no error should be returned and the key carries a TTL
	require.NoError(t, err)

	ttl, err := st.Storage.TTL(ctx, gameKeyPrefix+"session-1").Result()
	require.NoError(t, err)
	assert.Positive(t, ttl)
}

func TestGameRepository_GetBySessionID(t *testing.T) {
	t.Run("GetBySessionID_Success", func(t *testing.T) {
		ctx, st := suite.New(t)

		gameRepo := NewGameRepository(st.Storage, time.Minute)

		// Given: a saved game
		game := sampleGame()
		require.NoError(t, gameRepo.Save(ctx, "session-1", game))

		// When: GetBySessionID is called
		retrieved, err := gameRepo.GetBySessionID(ctx, "session-1")

		// Then: the snapshot round-trips unchanged
		require.NoError(t, err)
		assert.Equal(t, game, retrieved)
	})

	t.Run("GetBySessionID_NotFound", func(t *testing.T) {
		ctx, st := suite.New(t)

		gameRepo := NewGameRepository(st.Storage, time.Minute)

		// When: GetBySessionID is called with an unknown session
		retrieved, err := gameRepo.GetBySessionID(ctx, "missing")

		// Then: an ErrGameNotFound error should be returned
		require.ErrorIs(t, err, ErrGameNotFound)
		assert.Equal(t, entity.Game{}, retrieved)
	})

	t.Run("GetBySessionID_Corrupted", func(t *testing.T) {
		ctx, st := suite.New(t)

		gameRepo := NewGameRepository(st.Storage, time.Minute)

		// Given: a value that is not a snapshot
		require.NoError(t, st.Storage.Set(ctx, gameKeyPrefix+"broken", "not json", 0).Err())

		// When: GetBySessionID is called
		_, err := gameRepo.GetBySessionID(ctx, "broken")

		// Then: a decoding error is returned
		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrGameNotFound)
	})

	t.Run("GetBySessionID_InconsistentSnapshot", func(t *testing.T) {
		ctx, st := suite.New(t)

		gameRepo := NewGameRepository(st.Storage, time.Minute)

		// Given: a snapshot whose counter disagrees with its board
		value := `{"board":[["selected","blank","blank","blank"],["blank","blank","blank","blank"],` +
			`["blank","blank","blank","blank"],["blank","blank","blank","blank"]],"selected_count":3,"turn":"computer"}`
		require.NoError(t, st.Storage.Set(ctx, gameKeyPrefix+"skewed", value, 0).Err())

		// When: GetBySessionID is called
		_, err := gameRepo.GetBySessionID(ctx, "skewed")

		// Then: the snapshot is refused
		require.ErrorIs(t, err, entity.ErrInvalidSnapshot)
	})
}

func TestGameRepository_DeleteBySessionID(t *testing.T) {
	t.Run("DeleteBySessionID_Success", func(t *testing.T) {
		ctx, st := suite.New(t)

		gameRepo := NewGameRepository(st.Storage, time.Minute)

		require.NoError(t, gameRepo.Save(ctx, "session-1", sampleGame()))

		// When: DeleteBySessionID is called
		err := gameRepo.DeleteBySessionID(ctx, "session-1")

		// Then: the game is gone
		require.NoError(t, err)

		_, err = gameRepo.GetBySessionID(ctx, "session-1")
		require.ErrorIs(t, err, ErrGameNotFound)
	})

	t.Run("DeleteBySessionID_NotFound", func(t *testing.T) {
		ctx, st := suite.New(t)

		gameRepo := NewGameRepository(st.Storage, time.Minute)

		err := gameRepo.DeleteBySessionID(ctx, "missing")

		require.ErrorIs(t, err, ErrGameNotFound)
	})
}
