package toast

import (
	"context"
	"sync"
	"time"

	"github.com/osse101/RecipeCraft_Go/internal/domain"
	"github.com/osse101/RecipeCraft_Go/internal/event"
	"github.com/osse101/RecipeCraft_Go/internal/logger"
)

const (
	// DefaultCapacity bounds the number of undrained toasts
	DefaultCapacity = 32

	LogMsgToastQueued   = "Learn toast queued"
	LogMsgToastDropped  = "Toast queue full, dropping oldest toast"
	LogMsgPublishFailed = "Failed to publish recipe learned event"
)

// Toast is a pending "recipe learned" popup
type Toast struct {
	Recipe    string          `json:"recipe"`
	Text      string          `json:"text"`
	Cue       domain.AudioCue `json:"cue"`
	CreatedAt time.Time       `json:"created_at"`
}

// Config controls learn toasts
type Config struct {
	Enabled  bool
	Prefix   string
	Capacity int
}

// Queue collects learn toasts for the presentation layer and publishes
// recipe.learned for every discovery, shown or not.
type Queue struct {
	mu      sync.Mutex
	cfg     Config
	pending []Toast
	bus     event.Bus
}

// NewQueue creates a toast queue. bus may be nil.
func NewQueue(cfg Config, bus event.Bus) *Queue {
	if cfg.Capacity <= 0 {
		cfg.Capacity = DefaultCapacity
	}
	return &Queue{cfg: cfg, bus: bus}
}

// Notify records that recipeName was learned
func (q *Queue) Notify(ctx context.Context, recipeName string, cue domain.AudioCue) {
	log := logger.FromContext(ctx)
	text := q.cfg.Prefix + recipeName

	if q.cfg.Enabled {
		q.mu.Lock()
		if len(q.pending) >= q.cfg.Capacity {
			log.Warn(LogMsgToastDropped, "dropped", q.pending[0].Recipe)
			q.pending = q.pending[1:]
		}
		q.pending = append(q.pending, Toast{
			Recipe:    recipeName,
			Text:      text,
			Cue:       cue,
			CreatedAt: time.Now(),
		})
		q.mu.Unlock()
		log.Info(LogMsgToastQueued, "recipe", recipeName)
	}

	if q.bus != nil {
		if err := q.bus.Publish(ctx, event.NewRecipeLearnedEvent(recipeName, text, cue)); err != nil {
			log.Error(LogMsgPublishFailed, "recipe", recipeName, "error", err)
		}
	}
}

// Drain returns and clears the pending toasts, oldest first
func (q *Queue) Drain() []Toast {
	q.mu.Lock()
	defer q.mu.Unlock()

	out := q.pending
	q.pending = nil
	if out == nil {
		return []Toast{}
	}
	return out
}

// Len returns the number of pending toasts
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}
