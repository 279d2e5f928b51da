package config

import "time"

const (
	// Configuration file paths
	ConfigPathRecipes = "configs/recipes.yaml"
	ConfigPathItems   = "configs/items.yaml"
)

// Save backends
const (
	SaveBackendPostgres = "postgres"
	SaveBackendMemory   = "memory"
)

// Defaults
const (
	DefaultAutosaveInterval = 5 * time.Minute
	DefaultPort             = 8080
	DefaultTickRate         = 60 // ticks per second, one per display frame
	DefaultToastText        = "Learned Recipe: "
	DefaultSaveSlot         = "default"
	DefaultDBMaxConns       = 20
	DefaultServiceName      = "recipe-craft"
)

// Discord front-end defaults
const (
	DefaultAPIURL         = "http://localhost:8080"
	DefaultBotHealthPort  = "8082"
	DefaultRecipeCacheTTL = 30 * time.Second
)
