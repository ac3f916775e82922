package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isolateHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	for _, v := range []string{"AI_PROVIDER", "AI_API_KEY", "AI_MODEL", "AI_ENDPOINT", "AI_TIMEOUT", "AI_MAX_RETRIES"} {
		t.Setenv(v, "")
	}
	return home
}

func TestResolveProviderConfigDefaultsToTraditional(t *testing.T) {
	isolateHome(t)

	cfg, err := ResolveProviderConfig(providerOverrides{})
	require.NoError(t, err)
	assert.Empty(t, cfg.Provider)
}

func TestResolveProviderConfigFromEnvironment(t *testing.T) {
	isolateHome(t)
	t.Setenv("AI_PROVIDER", "openai")
	t.Setenv("AI_API_KEY", "env-key")
	t.Setenv("AI_TIMEOUT", "7")

	cfg, err := ResolveProviderConfig(providerOverrides{})
	require.NoError(t, err)
	assert.Equal(t, "openai", cfg.Provider)
	assert.Equal(t, "env-key", cfg.APIKey)
	assert.Equal(t, defaultOpenAIEndpoint, cfg.Endpoint)
	assert.Equal(t, defaultOpenAIModel, cfg.Model)
	assert.Equal(t, 7*time.Second, cfg.Timeout)
}

func TestResolveProviderConfigFlagsBeatEnvironment(t *testing.T) {
	isolateHome(t)
	t.Setenv("AI_PROVIDER", "openai")
	t.Setenv("AI_API_KEY", "env-key")
	t.Setenv("AI_MODEL", "env-model")

	cfg, err := ResolveProviderConfig(providerOverrides{APIKey: "flag-key", Model: "flag-model"})
	require.NoError(t, err)
	assert.Equal(t, "flag-key", cfg.APIKey)
	assert.Equal(t, "flag-model", cfg.Model)
}

func TestResolveProviderConfigEnvironmentBeatsFile(t *testing.T) {
	home := isolateHome(t)
	dir := filepath.Join(home, ".gomoku")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.json"),
		[]byte(`{"provider":"openai","api_key":"file-key","model":"file-model"}`), 0o600))

	t.Setenv("AI_API_KEY", "env-key")

	cfg, err := ResolveProviderConfig(providerOverrides{})
	require.NoError(t, err)
	assert.Equal(t, "openai", cfg.Provider, "provider should come from the file")
	assert.Equal(t, "env-key", cfg.APIKey, "env key should shadow the file key")
	assert.Equal(t, "file-model", cfg.Model)
}

func TestResolveProviderConfigUnknownProviderIsFatal(t *testing.T) {
	isolateHome(t)
	t.Setenv("AI_PROVIDER", "skynet")

	_, err := ResolveProviderConfig(providerOverrides{})
	require.ErrorIs(t, err, ErrInvalidProvider)
}

func TestResolveProviderConfigMissingKeyIsFatal(t *testing.T) {
	isolateHome(t)
	t.Setenv("AI_PROVIDER", "anthropic")

	_, err := ResolveProviderConfig(providerOverrides{})
	require.ErrorIs(t, err, ErrMissingAPIKey)
}

func TestAnthropicDefaults(t *testing.T) {
	isolateHome(t)

	cfg, err := ResolveProviderConfig(providerOverrides{Provider: "anthropic", APIKey: "k"})
	require.NoError(t, err)
	assert.Equal(t, defaultAnthropicEndpoint, cfg.Endpoint)
	assert.Equal(t, defaultAnthropicModel, cfg.Model)
}

func TestSaveAndResetProviderConfig(t *testing.T) {
	isolateHome(t)

	saved := ProviderConfig{
		Provider:   "openai",
		APIKey:     "persisted-key",
		Model:      "gpt-4o-mini",
		Endpoint:   defaultOpenAIEndpoint,
		Timeout:    12 * time.Second,
		MaxRetries: 3,
	}
	require.NoError(t, SaveProviderConfig(saved))

	cfg, err := ResolveProviderConfig(providerOverrides{})
	require.NoError(t, err)
	assert.Equal(t, "persisted-key", cfg.APIKey)
	assert.Equal(t, 12*time.Second, cfg.Timeout)
	assert.Equal(t, 3, cfg.MaxRetries)

	require.NoError(t, ResetProviderConfig())
	cfg, err = ResolveProviderConfig(providerOverrides{})
	require.NoError(t, err)
	assert.Empty(t, cfg.Provider)
}

func TestFileMaxRetriesZeroIsHonored(t *testing.T) {
	home := isolateHome(t)
	dir := filepath.Join(home, ".gomoku")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.json"),
		[]byte(`{"provider":"openai","api_key":"file-key","max_retries":0}`), 0o600))

	cfg, err := ResolveProviderConfig(providerOverrides{})
	require.NoError(t, err)
	assert.Equal(t, 0, cfg.MaxRetries, "an explicit zero in the file must not revert to the default")
}

func TestFileWithoutMaxRetriesKeepsDefault(t *testing.T) {
	home := isolateHome(t)
	dir := filepath.Join(home, ".gomoku")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.json"),
		[]byte(`{"provider":"openai","api_key":"file-key"}`), 0o600))

	cfg, err := ResolveProviderConfig(providerOverrides{})
	require.NoError(t, err)
	assert.Equal(t, defaultAIMaxRetries, cfg.MaxRetries)
}

func TestDescribeProviderConfigMasksTheKey(t *testing.T) {
	desc := DescribeProviderConfig(ProviderConfig{
		Provider: "openai",
		APIKey:   "sk-secret-value-1234",
		Model:    "gpt-4o-mini",
		Endpoint: defaultOpenAIEndpoint,
		Timeout:  30 * time.Second,
	})
	assert.NotContains(t, desc, "sk-secret-value-1234")
	assert.Contains(t, desc, "sk-s...1234")
}
