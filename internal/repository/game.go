package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/rocketscienceinc/gridfill-backend/internal/apperror"
	"github.com/rocketscienceinc/gridfill-backend/internal/entity"
)

var ErrGameNotFound = apperror.ErrGameNotFound

const gameKeyPrefix = "gridfill:game:"

// GameRepository keeps the current snapshot of every session.
type GameRepository interface {
	Save(ctx context.Context, sessionID string, game entity.Game) error
	GetBySessionID(ctx context.Context, sessionID string) (entity.Game, error)
	DeleteBySessionID(ctx context.Context, sessionID string) error
}

type dbGame struct {
	client *redis.Client
	ttl    time.Duration
}

// NewGameRepository - snapshots live in Redis and expire after ttl; zero ttl keeps them forever.
func NewGameRepository(client *redis.Client, ttl time.Duration) GameRepository {
	return &dbGame{
		client: client,
		ttl:    ttl,
	}
}

func (that *dbGame) Save(ctx context.Context, sessionID string, game entity.Game) error {
	if err := that.client.Set(ctx, gameKeyPrefix+sessionID, game, that.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set game: %w", err)
	}

	return nil
}

func (that *dbGame) GetBySessionID(ctx context.Context, sessionID string) (entity.Game, error) {
	var game entity.Game

	err := that.client.Get(ctx, gameKeyPrefix+sessionID).Scan(&game)
	if errors.Is(err, redis.Nil) {
		return entity.Game{}, ErrGameNotFound
	}

	if err != nil {
		return entity.Game{}, fmt.Errorf("failed to get game by session id: %w", err)
	}

	return game, nil
}

func (that *dbGame) DeleteBySessionID(ctx context.Context, sessionID string) error {
	deleted, err := that.client.Del(ctx, gameKeyPrefix+sessionID).Result()
	if err != nil {
		return fmt.Errorf("failed to delete game by session id: %w", err)
	}

	if deleted == 0 {
		return ErrGameNotFound
	}

	return nil
}
