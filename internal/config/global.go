package config

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// GlobalConfig represents configuration stored in
// ~/.config/paperforge/config.yml, with environment variable overrides.
type GlobalConfig struct {
	APIKey   string `yaml:"api_key,omitempty"`  // Key for the text-generation API
	BaseURL  string `yaml:"base_url,omitempty"` // OpenAI-compatible API base URL
	Model    string `yaml:"model,omitempty"`    // Model name for generation requests
	APIHost  string `yaml:"api_host,omitempty"` // Bind host for the HTTP server
	APIPort  int    `yaml:"api_port,omitempty"` // Bind port for the HTTP server
}

const (
	// GlobalConfigDir is the directory name under XDG_CONFIG_HOME.
	GlobalConfigDir = "paperforge"
	// GlobalConfigFile is the config file name.
	GlobalConfigFile = "config.yml"

	DefaultModel   = "gpt-4o-mini"
	DefaultBaseURL = "https://api.openai.com/v1"
	DefaultAPIHost = "0.0.0.0"
	DefaultAPIPort = 8000
)

// globalConfigCache caches the loaded global config.
var globalConfigCache *GlobalConfig

// GlobalConfigPath returns the path to the global config file.
// Respects XDG_CONFIG_HOME, defaults to ~/.config/paperforge/config.yml.
func GlobalConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, GlobalConfigDir, GlobalConfigFile)
}

// LoadGlobalConfig loads the global configuration. A .env file in the
// working directory is read first, then the YAML file, then environment
// variables override individual fields. Returns a default config (not an
// error) when the file doesn't exist.
func LoadGlobalConfig() (*GlobalConfig, error) {
	if globalConfigCache != nil {
		return globalConfigCache, nil
	}

	// Best effort: absence of a .env file is not an error.
	_ = godotenv.Load()

	cfg := &GlobalConfig{
		BaseURL: DefaultBaseURL,
		Model:   DefaultModel,
		APIHost: DefaultAPIHost,
		APIPort: DefaultAPIPort,
	}

	if path := GlobalConfigPath(); path != "" {
		data, err := os.ReadFile(path)
		if err == nil {
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, err
			}
		} else if !os.IsNotExist(err) {
			return nil, err
		}
	}

	applyEnvOverrides(cfg)

	globalConfigCache = cfg
	return cfg, nil
}

func applyEnvOverrides(cfg *GlobalConfig) {
	if v := os.Getenv("PAPERFORGE_API_KEY"); v != "" {
		cfg.APIKey = v
	} else if v := os.Getenv("OPENAI_API_KEY"); v != "" && cfg.APIKey == "" {
		cfg.APIKey = v
	}
	if v := os.Getenv("PAPERFORGE_BASE_URL"); v != "" {
		cfg.BaseURL = v
	}
	if v := os.Getenv("PAPERFORGE_MODEL"); v != "" {
		cfg.Model = v
	}
	if v := os.Getenv("PAPERFORGE_API_HOST"); v != "" {
		cfg.APIHost = v
	}
	if v := os.Getenv("PAPERFORGE_API_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.APIPort = port
		}
	}
}

// ResetGlobalConfigCache clears the cached global config.
// Useful for testing.
func ResetGlobalConfigCache() {
	globalConfigCache = nil
}
