package database

// Pool sizing
const (
	// DefaultMinConnections keeps a couple of warm connections for save/load bursts
	DefaultMinConnections = 2
)

// Migration settings
const (
	MigrationsDir     = "migrations"
	MigrationsDialect = "postgres"
)

// Error Messages
const (
	ErrMsgFailedToParseConnString = "failed to parse connection string"
	ErrMsgFailedToCreatePool      = "failed to create connection pool"
	ErrMsgFailedToPingDatabase    = "failed to ping database"
	ErrMsgFailedToSetDialect      = "failed to set migration dialect"
	ErrMsgFailedToMigrate         = "failed to apply migrations"
)

// Log Messages
const (
	LogMsgSuccessfullyConnectedToDatabase = "Successfully connected to the database"
	LogMsgMigrationsApplied               = "Database migrations applied"
)
