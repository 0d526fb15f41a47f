// ABOUTME: Centralized configuration for the PrajGPT services
// ABOUTME: Optional config.yaml, overridden by environment variables
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Provider names for the embedding/generation backend.
const (
	ProviderOllama = "ollama"
	ProviderOpenAI = "openai"
)

// Config holds all configuration shared by the API server, the
// ingestion job, and the CLI.
type Config struct {
	// Backend settings
	Provider       string        `yaml:"provider"`
	OllamaHost     string        `yaml:"ollama_host"`
	ChatModel      string        `yaml:"chat_model"`
	EmbeddingModel string        `yaml:"embedding_model"`
	OpenAIKey      string        `yaml:"-"`
	OpenAIBaseURL  string        `yaml:"openai_base_url"`
	Timeout        time.Duration `yaml:"timeout"`
	MaxRetries     int           `yaml:"max_retries"`
	RetryDelay     time.Duration `yaml:"retry_delay"`

	// Index settings
	VectorStorePath string `yaml:"vector_store_path"`
	ChunkSize       int    `yaml:"chunk_size"`
	ChunkOverlap    int    `yaml:"chunk_overlap"`

	// Retrieval settings
	TopK             int `yaml:"top_k"`
	MaxContextLength int `yaml:"max_context_length"`

	// API server settings
	APIHost     string `yaml:"api_host"`
	APIPort     int    `yaml:"api_port"`
	CORSEnabled bool   `yaml:"cors_enabled"`
}

// Load reads configuration from the optional config file and the
// environment. Environment variables always win over file values.
func Load() (*Config, error) {
	return LoadWithFile(getEnv("PRAJGPT_CONFIG", "config.yaml"))
}

// LoadWithFile is Load with an explicit config file path. A missing
// file is not an error; a malformed one is.
func LoadWithFile(path string) (*Config, error) {
	cfg := defaults()

	if err := applyFile(cfg, path); err != nil {
		return nil, err
	}
	applyEnv(cfg)

	return cfg, cfg.Validate()
}

func defaults() *Config {
	return &Config{
		Provider:         ProviderOllama,
		OllamaHost:       "http://localhost:11434",
		ChatModel:        "llama3.2",
		EmbeddingModel:   "nomic-embed-text",
		OpenAIBaseURL:    "",
		Timeout:          120 * time.Second,
		MaxRetries:       3,
		RetryDelay:       2 * time.Second,
		VectorStorePath:  "./vector_store",
		ChunkSize:        800,
		ChunkOverlap:     120,
		TopK:             5,
		MaxContextLength: 2000,
		APIHost:          "0.0.0.0",
		APIPort:          8000,
		CORSEnabled:      true,
	}
}

func applyFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config file %s: %w", path, err)
	}
	return nil
}

func applyEnv(cfg *Config) {
	cfg.Provider = getEnv("PRAJGPT_PROVIDER", cfg.Provider)
	cfg.OllamaHost = getEnv("OLLAMA_HOST", cfg.OllamaHost)
	cfg.ChatModel = getEnv("OLLAMA_MODEL", cfg.ChatModel)
	cfg.EmbeddingModel = getEnv("EMBEDDING_MODEL", cfg.EmbeddingModel)
	cfg.OpenAIKey = os.Getenv("OPENAI_API_KEY")
	cfg.OpenAIBaseURL = getEnv("OPENAI_BASE_URL", cfg.OpenAIBaseURL)
	cfg.Timeout = getEnvDuration("PRAJGPT_TIMEOUT", cfg.Timeout)
	cfg.MaxRetries = getEnvInt("PRAJGPT_MAX_RETRIES", cfg.MaxRetries)
	cfg.RetryDelay = getEnvDuration("PRAJGPT_RETRY_DELAY", cfg.RetryDelay)
	cfg.VectorStorePath = getEnv("VECTOR_STORE_PATH", cfg.VectorStorePath)
	cfg.ChunkSize = getEnvInt("CHUNK_SIZE", cfg.ChunkSize)
	cfg.ChunkOverlap = getEnvInt("CHUNK_OVERLAP", cfg.ChunkOverlap)
	cfg.TopK = getEnvInt("TOP_K", cfg.TopK)
	cfg.MaxContextLength = getEnvInt("MAX_CONTEXT_LENGTH", cfg.MaxContextLength)
	cfg.APIHost = getEnv("API_HOST", cfg.APIHost)
	cfg.APIPort = getEnvInt("API_PORT", cfg.APIPort)
	cfg.CORSEnabled = getEnvBool("CORS_ENABLED", cfg.CORSEnabled)
}

// Validate checks cross-field constraints.
func (c *Config) Validate() error {
	if c.Provider != ProviderOllama && c.Provider != ProviderOpenAI {
		return fmt.Errorf("PRAJGPT_PROVIDER must be %q or %q, got %q", ProviderOllama, ProviderOpenAI, c.Provider)
	}
	if c.ChunkSize <= 0 {
		return fmt.Errorf("CHUNK_SIZE must be positive, got %d", c.ChunkSize)
	}
	if c.ChunkOverlap < 0 || c.ChunkOverlap >= c.ChunkSize {
		return fmt.Errorf("CHUNK_OVERLAP must be in [0, CHUNK_SIZE), got %d with CHUNK_SIZE=%d", c.ChunkOverlap, c.ChunkSize)
	}
	if c.TopK <= 0 {
		return fmt.Errorf("TOP_K must be positive, got %d", c.TopK)
	}
	if c.MaxContextLength <= 0 {
		return fmt.Errorf("MAX_CONTEXT_LENGTH must be positive, got %d", c.MaxContextLength)
	}
	if c.APIPort <= 0 || c.APIPort > 65535 {
		return fmt.Errorf("API_PORT must be in (0, 65535], got %d", c.APIPort)
	}
	if c.MaxRetries < 0 || c.MaxRetries > 10 {
		return fmt.Errorf("PRAJGPT_MAX_RETRIES must be 0-10, got %d", c.MaxRetries)
	}
	if c.Provider == ProviderOpenAI && c.OpenAIKey == "" {
		return fmt.Errorf("OPENAI_API_KEY is required when PRAJGPT_PROVIDER=openai")
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

func getEnvBool(key string, defaultVal bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	return v == "true" || v == "1"
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
