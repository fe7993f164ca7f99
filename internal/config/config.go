// ABOUTME: Centralized configuration for the voicerelay gateway
// ABOUTME: Loads from an optional YAML file overridden by environment variables
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/goccy/go-yaml"
)

// Config holds all configuration for the gateway.
type Config struct {
	// OpenAI settings
	OpenAIKey     string        `yaml:"openai_key"`
	OpenAIBaseURL string        `yaml:"openai_base_url"`
	ChatModel     string        `yaml:"chat_model"`
	RoutingModel  string        `yaml:"routing_model"`
	AudioModel    string        `yaml:"audio_model"`
	EmbedModel    string        `yaml:"embed_model"`
	Timeout       time.Duration `yaml:"timeout"`
	MaxRetries    int           `yaml:"max_retries"`
	RetryDelay    time.Duration `yaml:"retry_delay"`

	// Gateway settings
	HTTPAddr      string `yaml:"http_addr"`
	DataDir       string `yaml:"data_dir"`
	RetrievalTopK int    `yaml:"retrieval_top_k"`
}

// Load reads configuration from environment variables over defaults.
func Load() (*Config, error) {
	return LoadWithFile("")
}

// LoadWithFile reads an optional YAML config file, then applies environment
// variables on top. A missing file is an error only when a path was given.
func LoadWithFile(path string) (*Config, error) {
	cfg := &Config{
		ChatModel:     "gpt-4o-mini",
		RoutingModel:  "gpt-4o-mini",
		AudioModel:    "whisper-1",
		EmbedModel:    "text-embedding-3-small",
		Timeout:       60 * time.Second,
		MaxRetries:    3,
		RetryDelay:    2 * time.Second,
		HTTPAddr:      ":8080",
		DataDir:       "data",
		RetrievalTopK: 5,
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config file: %w", err)
		}
	}

	cfg.applyEnv()
	return cfg, cfg.Validate()
}

func (c *Config) applyEnv() {
	c.OpenAIKey = getEnv("OPENAI_API_KEY", c.OpenAIKey)
	c.OpenAIBaseURL = getEnv("OPENAI_BASE_URL", c.OpenAIBaseURL)
	c.ChatModel = getEnv("VOICERELAY_CHAT_MODEL", c.ChatModel)
	c.RoutingModel = getEnv("VOICERELAY_ROUTING_MODEL", c.RoutingModel)
	c.AudioModel = getEnv("VOICERELAY_AUDIO_MODEL", c.AudioModel)
	c.EmbedModel = getEnv("VOICERELAY_EMBED_MODEL", c.EmbedModel)
	c.Timeout = getEnvDuration("OPENAI_TIMEOUT", c.Timeout)
	c.MaxRetries = getEnvInt("OPENAI_MAX_RETRIES", c.MaxRetries)
	c.RetryDelay = getEnvDuration("OPENAI_RETRY_DELAY", c.RetryDelay)
	c.HTTPAddr = getEnv("VOICERELAY_HTTP_ADDR", c.HTTPAddr)
	c.DataDir = getEnv("VOICERELAY_DATA_DIR", c.DataDir)
	c.RetrievalTopK = getEnvInt("VOICERELAY_RETRIEVAL_TOP_K", c.RetrievalTopK)
}

// Validate checks configuration bounds.
func (c *Config) Validate() error {
	if c.MaxRetries < 0 || c.MaxRetries > 10 {
		return fmt.Errorf("OPENAI_MAX_RETRIES must be 0-10, got %d", c.MaxRetries)
	}
	if c.RetrievalTopK <= 0 || c.RetrievalTopK > 50 {
		return fmt.Errorf("VOICERELAY_RETRIEVAL_TOP_K must be 1-50, got %d", c.RetrievalTopK)
	}
	if c.DataDir == "" {
		return fmt.Errorf("VOICERELAY_DATA_DIR must not be empty")
	}
	return nil
}

// Helper functions
func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return defaultVal
}
