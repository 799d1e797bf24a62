// Package config handles clickup-mcp configuration loading.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Environment variables that override file-based configuration.
// CLICKUP_API_TOKEN is the usual way to supply the token so it never
// has to live in a config file.
const (
	EnvAPIToken = "CLICKUP_API_TOKEN"
	EnvAPIURL   = "CLICKUP_API_URL"
)

// DefaultSearchPaths returns the config file search order.
// An explicit path (from --config flag) is checked first.
// Then: ./clickup-mcp.yaml, ~/.config/clickup-mcp/config.yaml,
// /etc/clickup-mcp/config.yaml.
func DefaultSearchPaths() []string {
	paths := []string{"clickup-mcp.yaml"}

	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "clickup-mcp", "config.yaml"))
	}

	paths = append(paths, "/etc/clickup-mcp/config.yaml")
	return paths
}

// FindConfig locates a config file. If explicit is non-empty, it must exist.
// Otherwise, searches DefaultSearchPaths and returns the first that exists.
// Returns the path found, or an error if nothing was found.
func FindConfig(explicit string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return "", fmt.Errorf("config file not found: %s", explicit)
		}
		return explicit, nil
	}

	for _, p := range DefaultSearchPaths() {
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}

	return "", fmt.Errorf("no config file found (searched: %v)", DefaultSearchPaths())
}

// Config holds all clickup-mcp configuration.
type Config struct {
	ClickUp  ClickUpConfig `yaml:"clickup"`
	Serve    ServeConfig   `yaml:"serve"`
	LLM      LLMConfig     `yaml:"llm"`
	LogLevel string        `yaml:"log_level"`
}

// ClickUpConfig defines ClickUp API connection settings.
type ClickUpConfig struct {
	// Token is the personal API token sent in the Authorization header.
	// Prefer setting it via CLICKUP_API_TOKEN instead of the config file.
	Token string `yaml:"token"`
	// BaseURL overrides the default API endpoint. Useful for tests and
	// self-hosted proxies.
	BaseURL string `yaml:"base_url"`
	// ReadOnly disables all tools that mutate remote state.
	ReadOnly bool `yaml:"read_only"`
}

// ServeConfig defines the MCP server settings.
type ServeConfig struct {
	// Transport selects the MCP transport: "stdio" or "streamable-http".
	Transport string `yaml:"transport"`
	Address   string `yaml:"address"` // Bind address (default: "" = all interfaces)
	Port      int    `yaml:"port"`    // Streamable HTTP port (default: 8080)
	// MetricsPort is the dedicated Prometheus metrics port (default: 9090).
	// Set to 0 to disable the metrics server.
	MetricsPort int `yaml:"metrics_port"`
}

// LLMConfig defines settings for the optional task agent.
type LLMConfig struct {
	// Provider selects the LLM backend: "ollama" or "openai".
	Provider string `yaml:"provider"`
	BaseURL  string `yaml:"base_url"`
	Model    string `yaml:"model"`
	// APIKey authenticates against OpenAI-compatible endpoints.
	// Ignored by the ollama provider.
	APIKey string `yaml:"api_key"`
}

// Load reads configuration from a YAML file.
// Environment variable references like ${CLICKUP_API_TOKEN} in the file
// are expanded, and the CLICKUP_API_TOKEN / CLICKUP_API_URL variables
// override the corresponding file values when set.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	expanded := os.ExpandEnv(string(data))

	cfg := Default()
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, err
	}

	cfg.applyEnv()
	return cfg, nil
}

// LoadOrDefault loads configuration from the first file found in the
// search paths, or returns defaults when no config file exists. An
// explicit path that does not exist is still an error.
func LoadOrDefault(explicit string) (*Config, error) {
	path, err := FindConfig(explicit)
	if err != nil {
		if explicit != "" {
			return nil, err
		}
		cfg := Default()
		cfg.applyEnv()
		return cfg, nil
	}
	return Load(path)
}

// Default returns a default configuration.
func Default() *Config {
	return &Config{
		Serve: ServeConfig{
			Transport:   "stdio",
			Port:        8080,
			MetricsPort: 9090,
		},
		LLM: LLMConfig{
			Provider: "ollama",
			BaseURL:  "http://localhost:11434",
			Model:    "qwen3:4b",
		},
	}
}

// applyEnv overrides file values with well-known environment variables.
func (c *Config) applyEnv() {
	if token := os.Getenv(EnvAPIToken); token != "" {
		c.ClickUp.Token = token
	}
	if url := os.Getenv(EnvAPIURL); url != "" {
		c.ClickUp.BaseURL = url
	}
}
