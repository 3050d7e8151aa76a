package repository

import (
	"context"
	"sync"
	"time"

	"github.com/rocketscienceinc/gridfill-backend/internal/entity"
)

type memoryEntry struct {
	game    entity.Game
	expires time.Time
}

type memoryGame struct {
	mu    sync.Mutex
	games map[string]memoryEntry
	ttl   time.Duration
	now   func() time.Time
}

// NewMemoryGameRepository - process-local store with the same expiry rules as the Redis one.
func NewMemoryGameRepository(ttl time.Duration) GameRepository {
	return &memoryGame{
		games: make(map[string]memoryEntry),
		ttl:   ttl,
		now:   time.Now,
	}
}

func (that *memoryGame) Save(_ context.Context, sessionID string, game entity.Game) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	entry := memoryEntry{game: game}
	if that.ttl > 0 {
		entry.expires = that.now().Add(that.ttl)
	}
	that.games[sessionID] = entry

	return nil
}

func (that *memoryGame) GetBySessionID(_ context.Context, sessionID string) (entity.Game, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	entry, ok := that.lookupLocked(sessionID)
	if !ok {
		return entity.Game{}, ErrGameNotFound
	}

	return entry.game, nil
}

func (that *memoryGame) DeleteBySessionID(_ context.Context, sessionID string) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	if _, ok := that.lookupLocked(sessionID); !ok {
		return ErrGameNotFound
	}
	delete(that.games, sessionID)

	return nil
}

// lookupLocked drops the entry if it has expired.
func (that *memoryGame) lookupLocked(sessionID string) (memoryEntry, bool) {
	entry, ok := that.games[sessionID]
	if !ok {
		return memoryEntry{}, false
	}

	if !entry.expires.IsZero() && !that.now().Before(entry.expires) {
		delete(that.games, sessionID)
		return memoryEntry{}, false
	}

	return entry, true
}
