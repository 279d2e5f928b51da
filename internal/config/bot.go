package config

import (
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// BotConfig is what the Discord front-end needs. It talks to the API over
// HTTP and never touches content files or the save store.
type BotConfig struct {
	Token              string        `env:"DISCORD_TOKEN" validate:"required"`
	AppID              string        `env:"DISCORD_APP_ID" validate:"required"`
	APIURL             string        `env:"API_URL" validate:"required,url"`
	// An empty key is allowed; the API answers 401
	APIKey             string
	HealthPort         string        `env:"DISCORD_HEALTH_PORT" validate:"required,numeric"`
	ForceCommandUpdate bool
	RecipeCacheTTL     time.Duration `env:"DISCORD_RECIPE_CACHE_TTL" validate:"gt=0s"`

	LogLevel    string `env:"LOG_LEVEL" validate:"oneof=debug info warn warning error"`
	LogFormat   string `env:"LOG_FORMAT" validate:"oneof=text json"`
	Environment string
	Version     string
}

// LoadBot reads the Discord front-end settings from the environment
func LoadBot() (*BotConfig, error) {
	_ = godotenv.Load()

	cfg := &BotConfig{
		Token:              getEnv("DISCORD_TOKEN", ""),
		AppID:              getEnv("DISCORD_APP_ID", ""),
		APIURL:             strings.TrimRight(getEnv("API_URL", DefaultAPIURL), "/"),
		APIKey:             getEnv("API_KEY", ""),
		HealthPort:         getEnv("DISCORD_HEALTH_PORT", DefaultBotHealthPort),
		ForceCommandUpdate: getEnvAsBool("DISCORD_FORCE_COMMAND_UPDATE", false),
		RecipeCacheTTL:     getEnvAsDuration("DISCORD_RECIPE_CACHE_TTL", DefaultRecipeCacheTTL),

		LogLevel:    strings.ToLower(getEnv("LOG_LEVEL", "info")),
		LogFormat:   strings.ToLower(getEnv("LOG_FORMAT", "text")),
		Environment: getEnv("ENVIRONMENT", "dev"),
		Version:     getEnv("VERSION", "dev"),
	}

	if err := validateStruct(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
