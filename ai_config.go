package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

const (
	providerConfigFile = "config.json"

	defaultOpenAIEndpoint = "https://api.openai.com/v1/chat/completions"
	defaultOpenAIModel    = "gpt-4o-mini"

	// Anthropic's OpenAI-compatible endpoint; same wire format.
	defaultAnthropicEndpoint = "https://api.anthropic.com/v1/chat/completions"
	defaultAnthropicModel    = "claude-3-5-haiku-latest"

	defaultAITimeout    = 30 * time.Second
	defaultAIMaxRetries = 2
)

// ProviderConfig selects and configures the external move provider. An empty
// Provider means the local engine plays without asking anyone.
type ProviderConfig struct {
	Provider   string        `json:"provider"`
	APIKey     string        `json:"api_key,omitempty"`
	Model      string        `json:"model,omitempty"`
	Endpoint   string        `json:"endpoint,omitempty"`
	Timeout    time.Duration `json:"timeout,omitempty"`
	MaxRetries int           `json:"max_retries"`
}

type providerOverrides struct {
	Provider string
	APIKey   string
	Model    string
	Endpoint string
}

// ResolveProviderConfig builds the effective provider configuration. Sources
// are merged field by field, command-line flags over environment variables
// over ~/.gomoku/config.json over built-in defaults.
func ResolveProviderConfig(flags providerOverrides) (ProviderConfig, error) {
	cfg := ProviderConfig{
		Timeout:    defaultAITimeout,
		MaxRetries: defaultAIMaxRetries,
	}

	if stored, retries, err := loadProviderConfigFile(); err == nil {
		mergeProviderConfig(&cfg, stored)
		if retries != nil && *retries >= 0 {
			cfg.MaxRetries = *retries
		}
	}

	env := ProviderConfig{
		Provider: os.Getenv("AI_PROVIDER"),
		APIKey:   os.Getenv("AI_API_KEY"),
		Model:    os.Getenv("AI_MODEL"),
		Endpoint: os.Getenv("AI_ENDPOINT"),
	}
	if raw := os.Getenv("AI_TIMEOUT"); raw != "" {
		if secs, err := strconv.Atoi(raw); err == nil && secs > 0 {
			env.Timeout = time.Duration(secs) * time.Second
		}
	}
	if raw := os.Getenv("AI_MAX_RETRIES"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n >= 0 {
			cfg.MaxRetries = n
		}
	}
	mergeProviderConfig(&cfg, env)

	mergeProviderConfig(&cfg, ProviderConfig{
		Provider: flags.Provider,
		APIKey:   flags.APIKey,
		Model:    flags.Model,
		Endpoint: flags.Endpoint,
	})

	return normalizeProviderConfig(cfg)
}

func mergeProviderConfig(dst *ProviderConfig, src ProviderConfig) {
	if src.Provider != "" {
		dst.Provider = src.Provider
	}
	if src.APIKey != "" {
		dst.APIKey = src.APIKey
	}
	if src.Model != "" {
		dst.Model = src.Model
	}
	if src.Endpoint != "" {
		dst.Endpoint = src.Endpoint
	}
	if src.Timeout > 0 {
		dst.Timeout = src.Timeout
	}
}

func normalizeProviderConfig(cfg ProviderConfig) (ProviderConfig, error) {
	cfg.Provider = strings.ToLower(strings.TrimSpace(cfg.Provider))
	switch cfg.Provider {
	case "", "none", "traditional":
		cfg.Provider = ""
		return cfg, nil
	case "openai":
		if cfg.Endpoint == "" {
			cfg.Endpoint = defaultOpenAIEndpoint
		}
		if cfg.Model == "" {
			cfg.Model = defaultOpenAIModel
		}
	case "anthropic":
		if cfg.Endpoint == "" {
			cfg.Endpoint = defaultAnthropicEndpoint
		}
		if cfg.Model == "" {
			cfg.Model = defaultAnthropicModel
		}
	default:
		return cfg, fmt.Errorf("provider %q (valid: openai, anthropic, traditional): %w", cfg.Provider, ErrInvalidProvider)
	}
	if cfg.APIKey == "" {
		return cfg, fmt.Errorf("provider %q: %w", cfg.Provider, ErrMissingAPIKey)
	}
	return cfg, nil
}

func providerConfigPath() (string, error) {
	dir, err := gomokuHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, providerConfigFile), nil
}

// loadProviderConfigFile reads ~/.gomoku/config.json. The max-retries value
// comes back as a pointer so an explicit zero in the file is distinguishable
// from the key being absent.
func loadProviderConfigFile() (ProviderConfig, *int, error) {
	path, err := providerConfigPath()
	if err != nil {
		return ProviderConfig{}, nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return ProviderConfig{}, nil, err
	}
	var stored storedProviderConfig
	if err := json.Unmarshal(data, &stored); err != nil {
		return ProviderConfig{}, nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	cfg := ProviderConfig{
		Provider: stored.Provider,
		APIKey:   stored.APIKey,
		Model:    stored.Model,
		Endpoint: stored.Endpoint,
	}
	if stored.TimeoutSeconds > 0 {
		cfg.Timeout = time.Duration(stored.TimeoutSeconds) * time.Second
	}
	return cfg, stored.MaxRetries, nil
}

// storedProviderConfig is the on-disk shape; timeouts are stored as plain
// seconds so the file stays hand-editable.
type storedProviderConfig struct {
	Provider       string `json:"provider"`
	APIKey         string `json:"api_key,omitempty"`
	Model          string `json:"model,omitempty"`
	Endpoint       string `json:"endpoint,omitempty"`
	TimeoutSeconds int    `json:"timeout_seconds,omitempty"`
	MaxRetries     *int   `json:"max_retries,omitempty"`
}

func SaveProviderConfig(cfg ProviderConfig) error {
	path, err := providerConfigPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	retries := cfg.MaxRetries
	stored := storedProviderConfig{
		Provider:       cfg.Provider,
		APIKey:         cfg.APIKey,
		Model:          cfg.Model,
		Endpoint:       cfg.Endpoint,
		TimeoutSeconds: int(cfg.Timeout / time.Second),
		MaxRetries:     &retries,
	}
	data, err := json.MarshalIndent(stored, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

func ResetProviderConfig() error {
	path, err := providerConfigPath()
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// DescribeProviderConfig renders the effective configuration with the key
// masked, for the -show-config flag.
func DescribeProviderConfig(cfg ProviderConfig) string {
	if cfg.Provider == "" {
		return "provider: none (local engine only)"
	}
	return fmt.Sprintf("provider: %s\nmodel: %s\nendpoint: %s\napi key: %s\ntimeout: %s\nmax retries: %d",
		cfg.Provider, cfg.Model, cfg.Endpoint, maskKey(cfg.APIKey), cfg.Timeout, cfg.MaxRetries)
}

func maskKey(key string) string {
	if key == "" {
		return "(unset)"
	}
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}
