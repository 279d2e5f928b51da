package crafting

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/osse101/RecipeCraft_Go/internal/domain"
	"github.com/osse101/RecipeCraft_Go/internal/event"
	"github.com/osse101/RecipeCraft_Go/internal/logger"
)

// Session drives one craft at a time through idle, crafting and finished.
// The outcome of a craft is decided when it starts; the session only
// withholds it until enough ticks have elapsed. Session is not safe for
// concurrent use.
type Session struct {
	bus event.Bus

	phase    domain.CraftPhase
	craftID  string
	recipe   *Recipe
	result   *domain.CraftAttemptResult
	elapsed  int
	lingered int
}

// NewSession creates an idle session publishing lifecycle events to bus (which may be nil)
func NewSession(bus event.Bus) *Session {
	if bus == nil {
		bus = noBus{}
	}
	return &Session{bus: bus, phase: domain.CraftPhaseIdle}
}

// Phase returns the current phase
func (s *Session) Phase() domain.CraftPhase {
	return s.phase
}

// Start resolves a craft of recipe and begins its timer. It fails with
// domain.ErrCraftInProgress while another craft is running, and with
// domain.ErrNotEligible when the recipe cannot be crafted; neither changes
// any state. Starting from the finished phase cuts the display window short.
func (s *Session) Start(ctx context.Context, recipe *Recipe) (domain.CraftStatus, error) {
	if s.phase == domain.CraftPhaseCrafting {
		return s.Status(), fmt.Errorf("%s is still crafting | %w", s.recipe.Name(), domain.ErrCraftInProgress)
	}

	craftID := uuid.New().String()
	ctx = logger.WithCraft(ctx, craftID, recipe.Name())

	result, err := recipe.ResolveCraft(ctx)
	if err != nil {
		return s.Status(), err
	}

	s.phase = domain.CraftPhaseCrafting
	s.craftID = craftID
	s.recipe = recipe
	s.result = result
	s.elapsed = 0
	s.lingered = 0

	def := recipe.Definition()
	logger.FromContext(ctx).Info(LogMsgCraftStarted, "resolution_ticks", result.ActualResolutionTime)
	publish(ctx, s.bus, event.NewCraftStartedEvent(s.craftID, def.Name, result.ActualResolutionTime, def.Cues.Craft))

	return s.Status(), nil
}

// Tick advances the session by n ticks and returns the resulting status
func (s *Session) Tick(ctx context.Context, n int) domain.CraftStatus {
	for i := 0; i < n; i++ {
		switch s.phase {
		case domain.CraftPhaseCrafting:
			s.elapsed++
			if float64(s.elapsed) >= s.result.ActualResolutionTime {
				s.reveal(ctx)
			}
		case domain.CraftPhaseFinished:
			s.lingered++
			if s.lingered >= FinishedDisplayTicks {
				s.reset(ctx)
			}
		default:
			return s.Status()
		}
	}
	return s.Status()
}

func (s *Session) reveal(ctx context.Context) {
	s.phase = domain.CraftPhaseFinished
	s.lingered = 0

	def := s.recipe.Definition()
	cue := def.Cues.Failure
	if s.result.Succeeded {
		cue = def.Cues.Success
	}

	ctx = logger.WithCraft(ctx, s.craftID, def.Name)
	logger.FromContext(ctx).Info(LogMsgCraftRevealed, "succeeded", s.result.Succeeded, "elapsed", s.elapsed)
	publish(ctx, s.bus, event.NewCraftCompletedEvent(s.craftID, def.Name, def.Category, s.result, cue))
}

func (s *Session) reset(ctx context.Context) {
	logger.FromContext(ctx).Debug(LogMsgCraftIdle, "craft_id", s.craftID)
	s.phase = domain.CraftPhaseIdle
	s.craftID = ""
	s.recipe = nil
	s.result = nil
	s.elapsed = 0
	s.lingered = 0
}

// Status returns a snapshot of the session. The result is only included once revealed.
func (s *Session) Status() domain.CraftStatus {
	status := domain.CraftStatus{
		CraftID: s.craftID,
		Phase:   s.phase,
		Elapsed: s.elapsed,
	}
	if s.recipe == nil {
		return status
	}
	status.Recipe = s.recipe.Name()
	status.Progress = s.recipe.Progress(s.elapsed)
	if s.phase == domain.CraftPhaseFinished {
		result := *s.result
		status.Result = &result
	}
	return status
}
