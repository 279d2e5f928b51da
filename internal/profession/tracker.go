package profession

import (
	"context"
	"math"
	"sort"
	"sync"

	"github.com/osse101/RecipeCraft_Go/internal/domain"
	"github.com/osse101/RecipeCraft_Go/internal/event"
	"github.com/osse101/RecipeCraft_Go/internal/logger"
)

// Tracker keeps the party's experience per crafting profession.
// Recipes with an empty category are not level gated.
type Tracker struct {
	mu  sync.RWMutex
	xp  map[string]int64
	bus event.Bus
}

// NewTracker creates a tracker knowing the given professions at StartingLevel. bus may be nil.
func NewTracker(bus event.Bus, professions ...string) *Tracker {
	t := &Tracker{
		xp:  make(map[string]int64),
		bus: bus,
	}
	for _, p := range professions {
		t.Register(p)
	}
	return t
}

// Register adds a profession with no experience. Known professions are untouched.
func (t *Tracker) Register(profession string) {
	if profession == "" {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.xp[profession]; !ok {
		t.xp[profession] = 0
	}
}

// LevelOf returns the current level of profession
func (t *Tracker) LevelOf(profession string) (int, bool) {
	if profession == "" {
		return math.MaxInt32, true
	}
	t.mu.RLock()
	defer t.mu.RUnlock()

	xp, ok := t.xp[profession]
	if !ok {
		return 0, false
	}
	return CalculateLevel(xp), true
}

// AwardExperience adds amount to profession, registering it if needed
func (t *Tracker) AwardExperience(ctx context.Context, profession string, amount int) {
	if profession == "" || amount <= 0 {
		return
	}
	log := logger.FromContext(ctx)

	t.mu.Lock()
	before, known := t.xp[profession]
	after := before + int64(amount)
	t.xp[profession] = after
	t.mu.Unlock()

	if !known {
		log.Warn(LogMsgUnknownProfession, "profession", profession)
	}

	oldLevel := CalculateLevel(before)
	newLevel := CalculateLevel(after)
	log.Info(LogMsgExperienceAwarded, "profession", profession, "amount", amount, "total", after)
	t.publish(ctx, event.NewExperienceAwardedEvent(profession, amount))

	if newLevel > oldLevel {
		log.Info(LogMsgLevelUp, "profession", profession, "old_level", oldLevel, "new_level", newLevel)
		t.publish(ctx, event.NewProfessionLevelUpEvent(profession, oldLevel, newLevel))
	}
}

// Get returns the standing in one profession
func (t *Tracker) Get(profession string) (domain.ProfessionInfo, error) {
	t.mu.RLock()
	xp, ok := t.xp[profession]
	t.mu.RUnlock()
	if !ok {
		return domain.ProfessionInfo{}, domain.ErrProfessionNotFound
	}
	return info(profession, xp), nil
}

// List returns every known profession sorted by name
func (t *Tracker) List() []domain.ProfessionInfo {
	t.mu.RLock()
	out := make([]domain.ProfessionInfo, 0, len(t.xp))
	for name, xp := range t.xp {
		out = append(out, info(name, xp))
	}
	t.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func info(name string, xp int64) domain.ProfessionInfo {
	level, toNext := XPProgress(xp)
	return domain.ProfessionInfo{
		Name:       name,
		Level:      level,
		Experience: xp,
		XPToNext:   toNext,
	}
}

func (t *Tracker) publish(ctx context.Context, evt event.Event) {
	if t.bus == nil {
		return
	}
	if err := t.bus.Publish(ctx, evt); err != nil {
		logger.FromContext(ctx).Error(LogMsgPublishFailed, "type", evt.Type, "error", err)
	}
}
