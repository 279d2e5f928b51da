package domain

// CraftAttemptResult is produced when a craft is resolved. The outcome is
// decided immediately; ActualResolutionTime tells the caller how long to
// wait before revealing it.
type CraftAttemptResult struct {
	Succeeded            bool              `json:"succeeded"`
	Rewards              []ItemRequirement `json:"rewards"`
	ExpectedDuration     float64           `json:"expected_duration"`
	ActualResolutionTime float64           `json:"actual_resolution_time"`
}

// CraftPhase is the phase of the per-session craft state machine
type CraftPhase string

const (
	CraftPhaseIdle     CraftPhase = "idle"
	CraftPhaseCrafting CraftPhase = "crafting"
	CraftPhaseFinished CraftPhase = "finished"
)

// CraftStatus is a snapshot of the craft state machine
type CraftStatus struct {
	CraftID  string              `json:"craft_id,omitempty"`
	Phase    CraftPhase          `json:"phase"`
	Recipe   string              `json:"recipe,omitempty"`
	Elapsed  int                 `json:"elapsed"`
	Progress float64             `json:"progress"`
	Result   *CraftAttemptResult `json:"result,omitempty"` // set once the outcome is revealed
}
