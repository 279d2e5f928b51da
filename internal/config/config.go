package config

import (
	"fmt"
	"net"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the application configuration. Fields with a validate tag
// are checked by Validate and reported under their env name.
type Config struct {
	Port           int      `env:"PORT" validate:"min=1,max=65535"`
	APIKey         string   `env:"API_KEY" validate:"required"`
	TrustedProxies []string `env:"TRUSTED_PROXIES" validate:"dive,ip"`
	LogLevel       string   `env:"LOG_LEVEL" validate:"oneof=debug info warn warning error"`
	LogFormat      string   `env:"LOG_FORMAT" validate:"oneof=text json"`
	Environment    string
	ServiceName    string
	Version        string

	// Content
	RecipesPath string `env:"RECIPES_PATH" validate:"required"`
	ItemsPath   string `env:"ITEMS_PATH" validate:"required"`

	// Crafting rules
	ShowLearnToast     bool
	ToastText          string
	AlwaysAwardExp     bool
	ProfessionsEnabled bool
	TickRate           int    `env:"TICK_RATE" validate:"gt=0,max=1000"`
	RNGSeed            uint64 // 0 means nondeterministic

	// Persistence
	SaveBackend       string        `env:"SAVE_BACKEND" validate:"oneof=postgres memory"`
	SaveSlot          string        `env:"SAVE_SLOT" validate:"required"`
	AutosaveInterval  time.Duration `env:"AUTOSAVE_INTERVAL" validate:"gte=0s"` // 0 disables autosave
	DBUser            string        `env:"DB_USER" validate:"required_if=SaveBackend postgres"`
	DBPassword        string
	DBHost            string `env:"DB_HOST" validate:"required_if=SaveBackend postgres"`
	DBPort            string `env:"DB_PORT" validate:"required_if=SaveBackend postgres"`
	DBName            string `env:"DB_NAME" validate:"required_if=SaveBackend postgres"`
	DBMaxConns        int    `env:"DB_MAX_CONNS" validate:"gte=0"`
	DBMaxConnIdleTime time.Duration
	DBMaxConnLifetime time.Duration
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists, but don't fail if it doesn't (could be real env vars)
	_ = godotenv.Load()

	cfg := &Config{
		APIKey:      getEnv("API_KEY", ""),
		LogLevel:    strings.ToLower(getEnv("LOG_LEVEL", "info")),
		LogFormat:   strings.ToLower(getEnv("LOG_FORMAT", "text")),
		Environment: getEnv("ENVIRONMENT", "dev"),
		ServiceName: getEnv("SERVICE_NAME", DefaultServiceName),
		Version:     getEnv("VERSION", "dev"),

		RecipesPath: getEnv("RECIPES_PATH", ConfigPathRecipes),
		ItemsPath:   getEnv("ITEMS_PATH", ConfigPathItems),

		ShowLearnToast:     getEnvAsBool("SHOW_LEARN_TOAST", true),
		ToastText:          getEnv("TOAST_TEXT", DefaultToastText),
		AlwaysAwardExp:     getEnvAsBool("ALWAYS_AWARD_EXP", true),
		ProfessionsEnabled: getEnvAsBool("PROFESSIONS_ENABLED", true),
		TickRate:           getEnvAsInt("TICK_RATE", DefaultTickRate),

		SaveBackend:       strings.ToLower(getEnv("SAVE_BACKEND", SaveBackendPostgres)),
		SaveSlot:          getEnv("SAVE_SLOT", DefaultSaveSlot),
		AutosaveInterval:  getEnvAsDuration("AUTOSAVE_INTERVAL", DefaultAutosaveInterval),
		DBUser:            getEnv("DB_USER", "postgres"),
		DBPassword:        getEnv("DB_PASSWORD", "postgres"),
		DBHost:            getEnv("DB_HOST", "localhost"),
		DBPort:            getEnv("DB_PORT", "5432"),
		DBName:            getEnv("DB_NAME", "recipecraft"),
		DBMaxConns:        getEnvAsInt("DB_MAX_CONNS", DefaultDBMaxConns),
		DBMaxConnIdleTime: getEnvAsDuration("DB_MAX_CONN_IDLE_TIME", 5*time.Minute),
		DBMaxConnLifetime: getEnvAsDuration("DB_MAX_CONN_LIFETIME", 30*time.Minute),
	}

	portStr := getEnv("PORT", strconv.Itoa(DefaultPort))
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("invalid PORT value: %w", err)
	}
	cfg.Port = port

	cfg.TrustedProxies = getEnvAsList("TRUSTED_PROXIES")

	seedStr := getEnv("RNG_SEED", "0")
	seed, err := strconv.ParseUint(seedStr, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid RNG_SEED value: %w", err)
	}
	cfg.RNGSeed = seed

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// TickInterval returns the wall-clock interval between two ticks
func (c *Config) TickInterval() time.Duration {
	return time.Second / time.Duration(c.TickRate)
}

// GetDBConnString returns the PostgreSQL connection string
func (c *Config) GetDBConnString() string {
	dsn := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.DBUser, c.DBPassword),
		Host:     net.JoinHostPort(c.DBHost, c.DBPort),
		Path:     "/" + c.DBName,
		RawQuery: "sslmode=disable",
	}
	return dsn.String()
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

// getEnvAsList splits a comma separated variable, dropping empty entries
func getEnvAsList(key string) []string {
	var out []string
	for _, part := range strings.Split(getEnv(key, ""), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	return defaultValue
}
