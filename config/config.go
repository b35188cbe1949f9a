package config

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"

	"brew/paths"
)

// Config holds the process bootstrap configuration. User preferences live in
// the settings file, not here.
type Config struct {
	// Environment selects the logger mode: "production" or anything else.
	Environment string
	// AppID is the desktop application identifier.
	AppID string
	// Home overrides the per-user application directory.
	Home string
	// Resources is the root of the bundled, read-only resources.
	Resources string
	// DetectLanguage enables picking a pack from the OS locale on first run.
	DetectLanguage bool
}

// Load reads configuration from the environment, after loading a .env file
// from the working directory if there is one.
func Load() *Config {
	// Load .env file if it exists
	_ = godotenv.Load()

	return &Config{
		Environment:    getEnv("BREW_ENV", "development"),
		AppID:          getEnv("BREW_APP_ID", "app.brew.desktop"),
		Home:           getEnv("BREW_HOME", ""),
		Resources:      getEnv("BREW_RESOURCES", defaultResources()),
		DetectLanguage: getEnvAsBool("BREW_DETECT_LANGUAGE", true),
	}
}

// Resolver returns the path resolver for this configuration.
func (c *Config) Resolver() paths.OSResolver {
	return paths.OSResolver{Home: c.Home, Resources: c.Resources}
}

// defaultResources is the resources directory next to the executable.
func defaultResources() string {
	exe, err := os.Executable()
	if err != nil {
		return ""
	}
	return filepath.Join(filepath.Dir(exe), "resources")
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
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
