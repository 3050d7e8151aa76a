package service

import (
	"math/rand"
	"sync"
	"time"

	"github.com/rocketscienceinc/gridfill-backend/internal/entity"
)

type BotService interface {
	PickCount() int
}

type botService struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

// NewBotService - creates the computer opponent. A zero seed seeds from the clock.
func NewBotService(seed int64) BotService {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	return &botService{
		rnd: rand.New(rand.NewSource(seed)), //nolint: gosec // game randomness, not security
	}
}

// PickCount - how many cells the computer fills this turn, uniform in [MinSelection, MaxSelection].
func (that *botService) PickCount() int {
	that.mu.Lock()
	defer that.mu.Unlock()

	return entity.MinSelection + that.rnd.Intn(entity.MaxSelection-entity.MinSelection+1)
}

// FixedBot always picks the same count. Useful for deterministic play.
type FixedBot int

func (that FixedBot) PickCount() int {
	return int(that)
}
