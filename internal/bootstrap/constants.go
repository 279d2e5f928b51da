package bootstrap

// =============================================================================
// Content Loading
// =============================================================================

const (
	LogMsgLoadingContent   = "Loading game content"
	LogMsgContentLoaded    = "Game content loaded"
	LogMsgReloadingRecipes = "Reloading recipe definitions"

	ErrMsgFailedLoadItems   = "failed to load items config"
	ErrMsgFailedLoadRecipes = "failed to load recipe config"
)

// =============================================================================
// Event System
// =============================================================================

const (
	LogMsgEventSystemInitialized     = "Event system initialized"
	LogMsgMetricsCollectorRegistered = "Metrics collector registered"
	LogMsgItemUseHandlerRegistered   = "Item use handler registered"
	ErrMsgFailedRegisterMetrics      = "failed to register metrics collector"
)

// =============================================================================
// Persistence
// =============================================================================

const (
	LogMsgUsingMemorySaves   = "Using in-memory save store, progress is lost on restart"
	LogMsgUsingPostgresSaves = "Using PostgreSQL save store"

	ErrMsgFailedConnectDB = "failed to connect to database"
	ErrMsgFailedMigrateDB = "failed to migrate database"
	ErrMsgUnknownBackend  = "unknown save backend %q"
)

// =============================================================================
// Game Assembly
// =============================================================================

const (
	LogMsgGameAssembled      = "Crafting game assembled"
	LogMsgProfessionsTracked = "Tracking crafting professions"
	LogMsgProfessionsOff     = "Professions disabled, level gates always pass"
	LogMsgSeededRNG          = "Using seeded random source"

	ErrMsgFailedCreateRegistry = "failed to create recipe registry"
)

// =============================================================================
// Shutdown Messages
// =============================================================================

const (
	LogMsgShuttingDownServer   = "Shutting down server..."
	LogMsgServerStopped        = "Server stopped"
	LogMsgServerForcedShutdown = "Server forced to shutdown"
	LogMsgStoppingScheduler    = "Stopping scheduled jobs..."
	LogMsgFinalSaveFailed      = "Final save failed, recent discoveries may be lost"
	LogMsgClosingDatabase      = "Closing database pool"
)
