package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoadDefaultsAndRequired(t *testing.T) {
	unsetEnv(t, KeyAppEnv)
	unsetEnv(t, KeyHTTPPort)
	unsetEnv(t, KeyLogLevel)
	unsetEnv(t, KeyBotOwner)
	unsetEnv(t, KeyPlatformTimeout)

	t.Setenv(KeyTelegramToken, "token")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected config to load, got error: %v", err)
	}

	if cfg.AppEnv != DefaultAppEnv {
		t.Fatalf("expected app env %s, got %s", DefaultAppEnv, cfg.AppEnv)
	}

	if cfg.BotOwnerID != DefaultBotOwnerID {
		t.Fatalf("expected seed bot owner %d, got %d", DefaultBotOwnerID, cfg.BotOwnerID)
	}

	if cfg.HTTPPort != DefaultHTTPPort {
		t.Fatalf("expected default http port %d, got %d", DefaultHTTPPort, cfg.HTTPPort)
	}
	if cfg.HealthEnabled() {
		t.Fatalf("expected health listener to be disabled by default")
	}

	if cfg.LogLevel != DefaultLogLevel {
		t.Fatalf("expected default log level %s, got %s", DefaultLogLevel, cfg.LogLevel)
	}

	if cfg.PlatformTimeout != DefaultPlatformTimeout {
		t.Fatalf("expected default platform timeout %s, got %s", DefaultPlatformTimeout, cfg.PlatformTimeout)
	}
}

func TestLoadFailsOnMissingToken(t *testing.T) {
	unsetEnv(t, KeyAppEnv)
	unsetEnv(t, KeyTelegramToken)
	t.Setenv(KeyBotOwner, "999")

	_, err := Load()
	if err == nil {
		t.Fatalf("expected missing token to error")
	}

	if !strings.Contains(err.Error(), KeyTelegramToken) {
		t.Fatalf("expected error to mention missing %s, got %v", KeyTelegramToken, err)
	}
}

func TestLoadTreatsBlankTokenAsMissing(t *testing.T) {
	unsetEnv(t, KeyAppEnv)
	t.Setenv(KeyTelegramToken, "   ")

	if _, err := Load(); err == nil {
		t.Fatalf("expected whitespace-only token to be rejected")
	}
}

func TestLoadValidatesOwnerID(t *testing.T) {
	tests := []struct {
		name  string
		value string
	}{
		{name: "not a number", value: "abc"},
		{name: "zero", value: "0"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			unsetEnv(t, KeyAppEnv)
			t.Setenv(KeyTelegramToken, "token")
			t.Setenv(KeyBotOwner, tt.value)

			_, err := Load()
			if err == nil {
				t.Fatalf("expected error for invalid %s", KeyBotOwner)
			}

			if !strings.Contains(err.Error(), KeyBotOwner) {
				t.Fatalf("expected error to mention %s, got %v", KeyBotOwner, err)
			}
		})
	}
}

func TestLoadOverridesOwnerID(t *testing.T) {
	unsetEnv(t, KeyAppEnv)
	t.Setenv(KeyTelegramToken, "token")
	t.Setenv(KeyBotOwner, " 4242 ")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected config to load, got error: %v", err)
	}

	if cfg.BotOwnerID != 4242 {
		t.Fatalf("expected bot owner 4242, got %d", cfg.BotOwnerID)
	}
}

func TestLoadValidatesHTTPPort(t *testing.T) {
	unsetEnv(t, KeyAppEnv)

	t.Setenv(KeyTelegramToken, "token")
	t.Setenv(KeyHTTPPort, "-1")

	_, err := Load()
	if err == nil {
		t.Fatalf("expected error for invalid %s", KeyHTTPPort)
	}

	if !strings.Contains(err.Error(), KeyHTTPPort) {
		t.Fatalf("expected error to mention %s, got %v", KeyHTTPPort, err)
	}
}

func TestLoadValidatesPlatformTimeout(t *testing.T) {
	for _, value := range []string{"soon", "0s", "-3s"} {
		value := value
		t.Run(value, func(t *testing.T) {
			unsetEnv(t, KeyAppEnv)
			t.Setenv(KeyTelegramToken, "token")
			t.Setenv(KeyPlatformTimeout, value)

			_, err := Load()
			if err == nil {
				t.Fatalf("expected error for %s=%q", KeyPlatformTimeout, value)
			}
			if !strings.Contains(err.Error(), KeyPlatformTimeout) {
				t.Fatalf("expected error to mention %s, got %v", KeyPlatformTimeout, err)
			}
		})
	}
}

func TestLoadRejectsUnknownAppEnv(t *testing.T) {
	t.Setenv(KeyAppEnv, "staging")
	t.Setenv(KeyTelegramToken, "token")

	_, err := Load()
	if err == nil {
		t.Fatalf("expected error for unknown %s", KeyAppEnv)
	}
	if !strings.Contains(err.Error(), KeyAppEnv) {
		t.Fatalf("expected error to mention %s, got %v", KeyAppEnv, err)
	}
}

func TestLoadUsesDotEnvInDevelopment(t *testing.T) {
	tmpDir := t.TempDir()
	dotenvContent := []byte(`
APP_ENV=development
TELEGRAM_TOKEN=dotenv-token
BOT_OWNER=77
HTTP_PORT=9091
LOG_LEVEL=debug
PLATFORM_TIMEOUT=3s
`)

	if err := os.WriteFile(filepath.Join(tmpDir, ".env"), dotenvContent, 0o644); err != nil {
		t.Fatalf("failed to write dotenv: %v", err)
	}

	cwd, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd failed: %v", err)
	}

	if err := os.Chdir(tmpDir); err != nil {
		t.Fatalf("chdir failed: %v", err)
	}

	t.Cleanup(func() {
		_ = os.Chdir(cwd)
	})

	unsetEnv(t, KeyAppEnv)
	unsetEnv(t, KeyTelegramToken)
	unsetEnv(t, KeyBotOwner)
	unsetEnv(t, KeyHTTPPort)
	unsetEnv(t, KeyLogLevel)
	unsetEnv(t, KeyPlatformTimeout)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected dotenv-backed config to load, got error: %v", err)
	}

	if cfg.AppEnv != EnvDevelopment {
		t.Fatalf("expected development env from dotenv, got %s", cfg.AppEnv)
	}

	if cfg.TelegramToken != "dotenv-token" {
		t.Fatalf("expected token from dotenv, got %s", cfg.TelegramToken)
	}

	if cfg.BotOwnerID != 77 {
		t.Fatalf("expected owner id 77 from dotenv, got %d", cfg.BotOwnerID)
	}

	if cfg.HTTPPort != 9091 {
		t.Fatalf("expected http port from dotenv, got %d", cfg.HTTPPort)
	}

	if cfg.LogLevel != "debug" {
		t.Fatalf("expected log level from dotenv, got %s", cfg.LogLevel)
	}

	if cfg.PlatformTimeout != 3*time.Second {
		t.Fatalf("expected platform timeout from dotenv, got %s", cfg.PlatformTimeout)
	}
}

func TestFormatRedactedMasksToken(t *testing.T) {
	cfg := Config{
		TelegramToken:   "abcd1234secret",
		BotOwnerID:      42,
		AppEnv:          EnvDevelopment,
		LogLevel:        "debug",
		HTTPPort:        9000,
		PlatformTimeout: 5 * time.Second,
	}

	summary := FormatRedacted(cfg)

	if strings.Contains(summary, "1234secret") {
		t.Fatalf("expected telegram token to be redacted, got %s", summary)
	}

	if !strings.Contains(summary, "telegram_token: abcd...redacted") {
		t.Fatalf("expected telegram token to show masked prefix, got %s", summary)
	}

	if !strings.Contains(summary, "bot_owner: 42") || !strings.Contains(summary, "platform_timeout: 5s") {
		t.Fatalf("expected non-secret fields to be shown, got %s", summary)
	}
}

func TestContractCoversEveryKey(t *testing.T) {
	want := map[string]bool{
		KeyTelegramToken:   true,
		KeyBotOwner:        false,
		KeyAppEnv:          false,
		KeyLogLevel:        false,
		KeyHTTPPort:        false,
		KeyPlatformTimeout: false,
	}

	if len(Contract) != len(want) {
		t.Fatalf("expected %d contract entries, got %d", len(want), len(Contract))
	}

	for _, spec := range Contract {
		required, ok := want[spec.Key]
		if !ok {
			t.Fatalf("unexpected contract key %s", spec.Key)
		}
		if spec.Required != required {
			t.Fatalf("%s: required = %v, want %v", spec.Key, spec.Required, required)
		}
		if spec.Required && spec.Default != "" {
			t.Fatalf("%s: required keys must not carry a default", spec.Key)
		}
		if !spec.Required && spec.Default == "" {
			t.Fatalf("%s: optional keys must document a default", spec.Key)
		}
		if spec.Description == "" {
			t.Fatalf("%s: missing description", spec.Key)
		}
	}
}

func unsetEnv(t *testing.T, key string) {
	t.Helper()
	t.Setenv(key, "")
	_ = os.Unsetenv(key)
}
