package crafting

// ==================== Craft Progression ====================

const (
	// FinishedDisplayTicks is how long a revealed craft stays in the finished phase before returning to idle
	FinishedDisplayTicks = 60
)

// ==================== Configuration Files ====================

// Recipe file extensions understood by the loader
const (
	ExtJSON = ".json"
	ExtYAML = ".yaml"
	ExtYML  = ".yml"
)

// ==================== Error Messages ====================

// Environment error messages
const (
	ErrMsgInventoryRequired = "inventory collaborator is required"
)

// Recipe loader error messages
const (
	ErrMsgReadRecipeFileFailed    = "failed to read recipe file: %w"
	ErrMsgParseRecipeFileFailed   = "failed to parse recipe file %s: %w"
	ErrMsgUnsupportedFileFmt      = "unsupported recipe file extension %q"
	ErrMsgEmptyRecipeNameFmt      = "recipe at index %d has an empty name"
	ErrMsgRecipeDecodeFmt         = "recipe at index %d: %v"
	ErrMsgDuplicateRecipeFmt      = "'%s' appears more than once"
	ErrMsgRecipeValidationFmt     = "recipe '%s': %s"
	ErrMsgUnknownItemFmt          = "recipe '%s' %s[%d] references unknown item %s"
	ErrMsgReloadDefinitionsFailed = "failed to reload recipe definitions: %w"
)

// Save error messages
const (
	ErrMsgSaveFailed = "failed to save crafting state: %w"
	ErrMsgLoadFailed = "failed to load crafting state: %w"
)

// ==================== Log Messages ====================

// Recipe log messages
const (
	LogMsgUnresolvableItem    = "Skipping item the catalog cannot resolve"
	LogMsgCraftResolved       = "Craft resolved"
	LogMsgRecipeLearned       = "Recipe learned"
	LogMsgDiscoveryOverridden = "Recipe discovery overridden"
	LogMsgExperienceAwarded   = "Crafting experience awarded"
)

// Registry log messages
const (
	LogMsgRegistryInitialized = "Recipe registry initialized"
	LogMsgRegistryForcedReset = "Forced recipe reinitialization discards all discovery and craft progress"
	LogMsgRecipeNotFound      = "Recipe not found"
	LogMsgUnknownRecipeInSave = "Ignoring saved state for unknown recipe"
	LogMsgItemTeachesNothing  = "Used item does not teach a recipe"
	LogMsgStateRestored       = "Recipe state restored"
)

// Session log messages
const (
	LogMsgCraftStarted  = "Craft started"
	LogMsgCraftRevealed = "Craft outcome revealed"
	LogMsgCraftIdle     = "Craft display window closed"
	LogMsgPublishFailed = "Failed to publish crafting event"
)

// Service log messages
const (
	LogMsgStartCraftCalled     = "StartCraft called"
	LogMsgListRecipesCalled    = "ListRecipes called"
	LogMsgReinitializeCalled   = "Reinitialize called"
	LogMsgStateSaved           = "Crafting state saved"
	LogMsgStateLoaded          = "Crafting state loaded"
	LogMsgNoSaveFound          = "No crafting save found, keeping current state"
	LogMsgDecodeItemUsedFailed = "Failed to decode item used payload"
)

// Recipe loader log messages
const (
	LogMsgRecipeSkipped = "Skipping invalid recipe"
	LogMsgRecipesLoaded = "Recipe definitions loaded"
)
