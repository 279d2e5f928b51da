package config

import (
	"net/url"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var configEnvVars = []string{
	"PORT", "API_KEY", "LOG_LEVEL", "LOG_FORMAT",
	"SERVICE_NAME", "VERSION", "ENVIRONMENT",
	"RECIPES_PATH", "ITEMS_PATH",
	"SHOW_LEARN_TOAST", "TOAST_TEXT", "ALWAYS_AWARD_EXP", "PROFESSIONS_ENABLED",
	"TICK_RATE", "RNG_SEED", "SAVE_BACKEND", "SAVE_SLOT", "AUTOSAVE_INTERVAL", "TRUSTED_PROXIES",
	"DB_USER", "DB_PASSWORD", "DB_HOST", "DB_PORT", "DB_NAME",
	"DB_MAX_CONNS", "DB_MAX_CONN_IDLE_TIME", "DB_MAX_CONN_LIFETIME",
	"DISCORD_TOKEN", "DISCORD_APP_ID", "API_URL",
}

// loadWith runs Load with only env set (plus an API key unless env overrides it)
func loadWith(t *testing.T, env map[string]string) (*Config, error) {
	t.Helper()
	for _, key := range configEnvVars {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
	t.Setenv("API_KEY", "test-key")
	for k, v := range env {
		if v == "<unset>" {
			os.Unsetenv(k)
			continue
		}
		t.Setenv(k, v)
	}
	return Load()
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := loadWith(t, nil)
	require.NoError(t, err)

	assert.Equal(t, DefaultPort, cfg.Port)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, "dev", cfg.Environment)
	assert.Equal(t, DefaultServiceName, cfg.ServiceName)

	assert.Equal(t, ConfigPathRecipes, cfg.RecipesPath)
	assert.Equal(t, ConfigPathItems, cfg.ItemsPath)

	assert.True(t, cfg.ShowLearnToast)
	assert.Equal(t, "Learned Recipe: ", cfg.ToastText)
	assert.True(t, cfg.AlwaysAwardExp)
	assert.True(t, cfg.ProfessionsEnabled)
	assert.Equal(t, 60, cfg.TickRate)
	assert.Zero(t, cfg.RNGSeed)

	assert.Equal(t, SaveBackendPostgres, cfg.SaveBackend)
	assert.Equal(t, DefaultSaveSlot, cfg.SaveSlot)
	assert.Equal(t, DefaultAutosaveInterval, cfg.AutosaveInterval)
	assert.Equal(t, "localhost", cfg.DBHost)
	assert.Empty(t, cfg.TrustedProxies)
}

func TestLoad_Overrides(t *testing.T) {
	cfg, err := loadWith(t, map[string]string{
		"PORT":                "3000",
		"LOG_LEVEL":           "DEBUG",
		"LOG_FORMAT":          "json",
		"ENVIRONMENT":         "prod",
		"SHOW_LEARN_TOAST":    "false",
		"TOAST_TEXT":          "New recipe: ",
		"ALWAYS_AWARD_EXP":    "false",
		"PROFESSIONS_ENABLED": "0",
		"TICK_RATE":           "30",
		"RNG_SEED":            "42",
		"SAVE_BACKEND":        "Memory",
		"SAVE_SLOT":           "slot-2",
		"AUTOSAVE_INTERVAL":   "0s",
		"TRUSTED_PROXIES":     " 10.0.0.1, ,127.0.0.1 ",
	})
	require.NoError(t, err)

	assert.Equal(t, 3000, cfg.Port)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.False(t, cfg.ShowLearnToast)
	assert.Equal(t, "New recipe: ", cfg.ToastText)
	assert.False(t, cfg.AlwaysAwardExp)
	assert.False(t, cfg.ProfessionsEnabled)
	assert.Equal(t, 30, cfg.TickRate)
	assert.Equal(t, uint64(42), cfg.RNGSeed)
	assert.Equal(t, SaveBackendMemory, cfg.SaveBackend)
	assert.Equal(t, "slot-2", cfg.SaveSlot)
	assert.Zero(t, cfg.AutosaveInterval)
	assert.Equal(t, []string{"10.0.0.1", "127.0.0.1"}, cfg.TrustedProxies)
}

func TestLoad_InvalidBooleanKeepsDefault(t *testing.T) {
	cfg, err := loadWith(t, map[string]string{"SHOW_LEARN_TOAST": "sometimes"})
	require.NoError(t, err)
	assert.True(t, cfg.ShowLearnToast)
}

func TestLoad_Rejects(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr string
	}{
		{"missing api key", map[string]string{"API_KEY": "<unset>"}, "API_KEY must be set"},
		{"port not a number", map[string]string{"PORT": "8080.5"}, "invalid PORT"},
		{"empty port", map[string]string{"PORT": ""}, "invalid PORT"},
		{"zero port", map[string]string{"PORT": "0"}, "PORT must be at least 1"},
		{"negative port", map[string]string{"PORT": "-1"}, "PORT must be at least 1"},
		{"port above range", map[string]string{"PORT": "65536"}, "PORT must be at most 65535"},
		{"zero tick rate", map[string]string{"TICK_RATE": "0"}, "TICK_RATE must be greater than 0"},
		{"tick rate above a millisecond", map[string]string{"TICK_RATE": "1001"}, "TICK_RATE must be at most 1000"},
		{"negative seed", map[string]string{"RNG_SEED": "-3"}, "invalid RNG_SEED"},
		{"negative autosave", map[string]string{"AUTOSAVE_INTERVAL": "-1m"}, "AUTOSAVE_INTERVAL"},
		{"unknown backend", map[string]string{"SAVE_BACKEND": "redis"}, "SAVE_BACKEND must be one of"},
		{"proxy hostname", map[string]string{"TRUSTED_PROXIES": "lb.internal"}, "TRUSTED_PROXIES[0] is not an IP address"},
		{"postgres without host", map[string]string{"DB_HOST": ""}, "DB_HOST must be set"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := loadWith(t, tt.env)
			require.Error(t, err)
			assert.Nil(t, cfg)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoad_MemoryBackendNeedsNoDatabase(t *testing.T) {
	cfg, err := loadWith(t, map[string]string{"SAVE_BACKEND": "memory", "DB_HOST": "", "DB_USER": ""})
	require.NoError(t, err)
	assert.Equal(t, SaveBackendMemory, cfg.SaveBackend)
}

func TestTickInterval(t *testing.T) {
	cfg := &Config{TickRate: 60}
	assert.Equal(t, time.Second/60, cfg.TickInterval())

	cfg.TickRate = 1
	assert.Equal(t, time.Second, cfg.TickInterval())

	cfg.TickRate = 1000
	assert.Equal(t, time.Millisecond, cfg.TickInterval())
	assert.NoError(t, validConfigWith(func(c *Config) { c.TickRate = 1000 }).Validate())
}

func validConfigWith(mutate func(c *Config)) *Config {
	cfg := validConfig()
	mutate(cfg)
	return cfg
}

func TestGetDBConnString(t *testing.T) {
	t.Run("plain credentials", func(t *testing.T) {
		cfg := &Config{DBUser: "crafter", DBPassword: "secret", DBHost: "db", DBPort: "5432", DBName: "recipecraft"}
		assert.Equal(t, "postgres://crafter:secret@db:5432/recipecraft?sslmode=disable", cfg.GetDBConnString())
	})

	t.Run("password with URL delimiters round-trips", func(t *testing.T) {
		cfg := &Config{DBUser: "crafter", DBPassword: "p@ss:word/with?#", DBHost: "db.example.com", DBPort: "5433", DBName: "recipecraft"}

		u, err := url.Parse(cfg.GetDBConnString())
		require.NoError(t, err)
		password, ok := u.User.Password()
		require.True(t, ok)
		assert.Equal(t, "p@ss:word/with?#", password)
		assert.Equal(t, "db.example.com:5433", u.Host)
		assert.Equal(t, "/recipecraft", u.Path)
		assert.Equal(t, "disable", u.Query().Get("sslmode"))
	})

	t.Run("IPv6 host is bracketed", func(t *testing.T) {
		cfg := &Config{DBUser: "u", DBPassword: "p", DBHost: "::1", DBPort: "5432", DBName: "db"}
		assert.Contains(t, cfg.GetDBConnString(), "@[::1]:5432/")
	})
}
