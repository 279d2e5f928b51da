package domain

// Recipe configuration defaults applied when a field is omitted
const (
	DefaultSuccessRate     = 100
	DefaultCraftDuration   = 120
	DefaultExperienceAward = 1
	DefaultRequiredLevel   = 1
	DefaultIcon            = 0
)

// Audio cue defaults
const (
	DefaultCueVolume = 100
	DefaultCuePitch  = 100
	DefaultCuePan    = 0
)

// AudioCue references a sound effect the presentation layer plays for a recipe event.
// An empty Name means no sound.
type AudioCue struct {
	Name   string `json:"name,omitempty"`
	Volume int    `json:"volume"`
	Pitch  int    `json:"pitch"`
	Pan    int    `json:"pan"`
}

// IsZero reports whether the cue has no sound attached
func (c AudioCue) IsZero() bool {
	return c.Name == ""
}

// NewAudioCue builds a cue with the default volume, pitch and pan
func NewAudioCue(name string) AudioCue {
	return AudioCue{Name: name, Volume: DefaultCueVolume, Pitch: DefaultCuePitch, Pan: DefaultCuePan}
}

// RecipeCues groups the cues played over a recipe's lifecycle
type RecipeCues struct {
	Craft   AudioCue `json:"craft"`
	Success AudioCue `json:"success"`
	Failure AudioCue `json:"failure"`
	Learn   AudioCue `json:"learn"`
}

// RecipeDefinition is the static, load-time configuration of a recipe
type RecipeDefinition struct {
	Name                string            `json:"name" validate:"required,max=100"`
	Category            string            `json:"category"`
	Icon                int               `json:"icon"`
	Description         string            `json:"description"`
	SuccessRate         int               `json:"success_rate" validate:"min=1,max=100"`
	CraftDuration       int               `json:"craft_duration" validate:"min=1"`
	RequiredLevel       int               `json:"required_level" validate:"min=0"`
	ExperienceAward     int               `json:"experience_award" validate:"min=0"`
	InitiallyDiscovered bool              `json:"initially_discovered"`
	Products            []ItemRequirement `json:"products" validate:"dive"`
	FailProducts        []ItemRequirement `json:"fail_products" validate:"dive"`
	Tools               []ItemRequirement `json:"tools" validate:"dive"`
	Ingredients         []ItemRequirement `json:"ingredients" validate:"dive"`
	Cues                RecipeCues        `json:"cues"`
}

// HasIcon reports whether the recipe has an icon to draw
func (d RecipeDefinition) HasIcon() bool {
	return d.Icon >= 0
}

// RecipeState is the mutable part of a recipe that survives save/load
type RecipeState struct {
	Discovered   bool `json:"discovered"`
	TimesCrafted int  `json:"times_crafted"`
}

// RecipeView is a read-only projection of a recipe for callers outside the core
type RecipeView struct {
	RecipeDefinition
	RecipeState
	Eligible bool `json:"eligible"`
}
