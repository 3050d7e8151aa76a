package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/rocketscienceinc/gridfill-backend/internal/apperror"
	"github.com/rocketscienceinc/gridfill-backend/internal/entity"
)

type gameRepo interface {
	Save(ctx context.Context, sessionID string, game entity.Game) error
	GetBySessionID(ctx context.Context, sessionID string) (entity.Game, error)
	DeleteBySessionID(ctx context.Context, sessionID string) error
}

type gameController interface {
	SelectCell(game entity.Game, row, col int) (entity.Game, error)
	FinishMove(game entity.Game) entity.Game
	ComputerMove(game entity.Game) entity.Game
	RestartGame() entity.Game
}

// GameManager binds one game snapshot to each browser session.
type GameManager struct {
	logger   *slog.Logger
	gameRepo gameRepo
	game     gameController

	locks *sessionLocks
}

func NewGameManager(logger *slog.Logger, gameRepo gameRepo, game gameController) *GameManager {
	return &GameManager{
		logger: logger.With("component", "game_manager"),

		gameRepo: gameRepo,
		game:     game,

		locks: newSessionLocks(),
	}
}

// GetOrCreateGame - returns the session's game, starting a fresh one if none is stored.
func (that *GameManager) GetOrCreateGame(ctx context.Context, sessionID string) (entity.Game, error) {
	return that.apply(ctx, sessionID, "GetOrCreateGame", func(game entity.Game) (entity.Game, error) {
		return game, nil
	})
}

func (that *GameManager) SelectCell(ctx context.Context, sessionID string, row, col int) (entity.Game, error) {
	return that.apply(ctx, sessionID, "SelectCell", func(game entity.Game) (entity.Game, error) {
		next, err := that.game.SelectCell(game, row, col)
		if err != nil {
			return game, fmt.Errorf("failed select cell: %w", err)
		}
		return next, nil
	})
}

// FinishMove - commits the selection. Below the minimum selection it is a no-op.
func (that *GameManager) FinishMove(ctx context.Context, sessionID string) (entity.Game, error) {
	return that.apply(ctx, sessionID, "FinishMove", func(game entity.Game) (entity.Game, error) {
		if !game.CanFinishMove() {
			that.logger.Debug("finish move ignored", "session_id", sessionID, "selected", game.SelectedCount)
			return game, nil
		}
		return that.game.FinishMove(game), nil
	})
}

func (that *GameManager) ComputerMove(ctx context.Context, sessionID string) (entity.Game, error) {
	return that.apply(ctx, sessionID, "ComputerMove", func(game entity.Game) (entity.Game, error) {
		return that.game.ComputerMove(game), nil
	})
}

func (that *GameManager) RestartGame(ctx context.Context, sessionID string) (entity.Game, error) {
	return that.apply(ctx, sessionID, "RestartGame", func(entity.Game) (entity.Game, error) {
		return that.game.RestartGame(), nil
	})
}

// EndSession - drops the session's game. Ending a session that has no game is not an error.
func (that *GameManager) EndSession(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return apperror.ErrSessionRequired
	}

	unlock := that.locks.lock(sessionID)
	defer unlock()

	err := that.gameRepo.DeleteBySessionID(ctx, sessionID)
	if errors.Is(err, apperror.ErrGameNotFound) {
		return nil
	}

	if err != nil {
		return fmt.Errorf("failed to delete game: %w", err)
	}

	that.logger.Info("session ended", "session_id", sessionID)

	return nil
}

// apply - loads the snapshot, runs one transition and stores its replacement while holding the session lock.
func (that *GameManager) apply(
	ctx context.Context,
	sessionID, method string,
	transition func(entity.Game) (entity.Game, error),
) (entity.Game, error) {
	if sessionID == "" {
		return entity.Game{}, apperror.ErrSessionRequired
	}

	log := that.logger.With("method", method, "session_id", sessionID)

	unlock := that.locks.lock(sessionID)
	defer unlock()

	game, created, err := that.load(ctx, sessionID)
	if err != nil {
		return entity.Game{}, err
	}

	next, err := transition(game)
	if err != nil {
		return game, err
	}

	if next == game && !created {
		return next, nil
	}

	if err = that.gameRepo.Save(ctx, sessionID, next); err != nil {
		return entity.Game{}, fmt.Errorf("failed to save game: %w", err)
	}

	log.Debug("game updated",
		"filled", next.Board.CountCells(entity.Filled),
		"selected", next.SelectedCount,
		"turn", next.Turn.String())

	if next.IsGameFinished() && !game.IsGameFinished() {
		log.Info("game finished", "result", next.Result())
	}

	return next, nil
}

func (that *GameManager) load(ctx context.Context, sessionID string) (entity.Game, bool, error) {
	game, err := that.gameRepo.GetBySessionID(ctx, sessionID)
	if errors.Is(err, apperror.ErrGameNotFound) {
		that.logger.Info("starting new game", "session_id", sessionID)
		return that.game.RestartGame(), true, nil
	}

	if err != nil {
		return entity.Game{}, false, fmt.Errorf("failed to get game: %w", err)
	}

	return game, false, nil
}
