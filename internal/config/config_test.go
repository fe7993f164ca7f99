// ABOUTME: Tests for configuration loading and validation
// ABOUTME: Covers defaults, env overrides, YAML files, and bound checks

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.ChatModel != "gpt-4o-mini" {
		t.Errorf("ChatModel = %q, want gpt-4o-mini", cfg.ChatModel)
	}
	if cfg.AudioModel != "whisper-1" {
		t.Errorf("AudioModel = %q, want whisper-1", cfg.AudioModel)
	}
	if cfg.HTTPAddr != ":8080" {
		t.Errorf("HTTPAddr = %q, want :8080", cfg.HTTPAddr)
	}
	if cfg.MaxRetries != 3 {
		t.Errorf("MaxRetries = %d, want 3", cfg.MaxRetries)
	}
	if cfg.RetrievalTopK != 5 {
		t.Errorf("RetrievalTopK = %d, want 5", cfg.RetrievalTopK)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("VOICERELAY_CHAT_MODEL", "gpt-4o")
	t.Setenv("VOICERELAY_HTTP_ADDR", ":9999")
	t.Setenv("OPENAI_RETRY_DELAY", "5s")
	t.Setenv("OPENAI_MAX_RETRIES", "1")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.ChatModel != "gpt-4o" {
		t.Errorf("ChatModel = %q, want gpt-4o", cfg.ChatModel)
	}
	if cfg.HTTPAddr != ":9999" {
		t.Errorf("HTTPAddr = %q, want :9999", cfg.HTTPAddr)
	}
	if cfg.RetryDelay != 5*time.Second {
		t.Errorf("RetryDelay = %v, want 5s", cfg.RetryDelay)
	}
	if cfg.MaxRetries != 1 {
		t.Errorf("MaxRetries = %d, want 1", cfg.MaxRetries)
	}
}

func TestLoadWithFile_YAMLThenEnv(t *testing.T) {
	clearEnv(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := "chat_model: gpt-4.1\nhttp_addr: \":7070\"\nretrieval_top_k: 10\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	// Env wins over file.
	t.Setenv("VOICERELAY_HTTP_ADDR", ":7071")

	cfg, err := LoadWithFile(path)
	if err != nil {
		t.Fatalf("LoadWithFile() error = %v", err)
	}

	if cfg.ChatModel != "gpt-4.1" {
		t.Errorf("ChatModel = %q, want gpt-4.1", cfg.ChatModel)
	}
	if cfg.HTTPAddr != ":7071" {
		t.Errorf("HTTPAddr = %q, want :7071 (env override)", cfg.HTTPAddr)
	}
	if cfg.RetrievalTopK != 10 {
		t.Errorf("RetrievalTopK = %d, want 10", cfg.RetrievalTopK)
	}
}

func TestLoadWithFile_MissingFile(t *testing.T) {
	clearEnv(t)

	if _, err := LoadWithFile(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing config file")
	}
}

func TestValidate_Bounds(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid", func(c *Config) {}, false},
		{"negative retries", func(c *Config) { c.MaxRetries = -1 }, true},
		{"too many retries", func(c *Config) { c.MaxRetries = 11 }, true},
		{"zero top-k", func(c *Config) { c.RetrievalTopK = 0 }, true},
		{"huge top-k", func(c *Config) { c.RetrievalTopK = 51 }, true},
		{"empty data dir", func(c *Config) { c.DataDir = "" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			cfg, err := Load()
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			tt.mutate(cfg)
			if err := cfg.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

// clearEnv unsets every env var the loader reads so tests are hermetic.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"OPENAI_API_KEY", "OPENAI_BASE_URL", "OPENAI_TIMEOUT",
		"OPENAI_MAX_RETRIES", "OPENAI_RETRY_DELAY",
		"VOICERELAY_CHAT_MODEL", "VOICERELAY_ROUTING_MODEL",
		"VOICERELAY_AUDIO_MODEL", "VOICERELAY_EMBED_MODEL",
		"VOICERELAY_HTTP_ADDR", "VOICERELAY_DATA_DIR",
		"VOICERELAY_RETRIEVAL_TOP_K",
	} {
		t.Setenv(key, "")
	}
}
