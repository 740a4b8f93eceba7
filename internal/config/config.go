// Package config provides application configuration management.
// It loads settings from environment variables and provides defaults for
// server mode, graph-store access, LLM providers, and auth settings.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Default values applied when the corresponding env var is unset.
const (
	DefaultPort            = "8000"
	DefaultLogLevel        = "info"
	DefaultShutdownTimeout = 10 * time.Second
	DefaultCORSOrigin      = "http://localhost:5173"

	DefaultNeo4jURI      = "bolt://localhost:7687"
	DefaultNeo4jUsername = "neo4j"

	DefaultTokenExpiry   = 24 * time.Hour
	DefaultLLMTimeout    = 30 * time.Second
	DefaultOpenAIModel   = "gpt-4o-mini"
	DefaultGeminiModel   = "gemini-2.5-flash-lite"
	DefaultOpenAIBaseURL = "" // empty = api.openai.com

	DefaultMetricsUsername = "prometheus"

	// One burst of questions, then roughly one every five seconds.
	DefaultChatRateBurst  = 6.0
	DefaultChatRateRefill = 0.2
)

// ExtractorStrategy selects how the entity extractor resolves names.
type ExtractorStrategy string

const (
	// StrategyFuzzy strips stopwords and ranks program names with BM25.
	StrategyFuzzy ExtractorStrategy = "fuzzy"
	// StrategyLLM asks the language model for a JSON triple of names.
	StrategyLLM ExtractorStrategy = "llm"
)

// Config holds all application configuration
type Config struct {
	// Server
	Port            string
	LogLevel        string
	ShutdownTimeout time.Duration
	CORSOrigin      string

	// Graph store
	Neo4jURI      string
	Neo4jUsername string
	Neo4jPassword string

	// Relational user store
	PostgresDSN string

	// Auth
	JWTSecret   string
	TokenExpiry time.Duration

	// LLM
	LLMProviders  []string // ordered, e.g. ["openai", "gemini"]
	OpenAIAPIKey  string
	OpenAIBaseURL string
	OpenAIModel   string
	GeminiAPIKey  string
	GeminiModel   string
	LLMTimeout    time.Duration

	// NLU
	ExtractorStrategy ExtractorStrategy

	// Per-user chat throttling (token bucket)
	ChatRateBurst  float64
	ChatRateRefill float64

	// Metrics endpoint Basic Auth (empty password = no auth)
	MetricsUsername string
	MetricsPassword string

	// Sentry
	SentryEnabled     bool
	SentryDSN         string
	SentryEnvironment string
	SentrySampleRate  float64
}

// Load reads configuration from environment variables.
// It attempts to load .env file first, then reads from env vars.
func Load() (*Config, error) {
	// Try to load .env file (ignore error if file doesn't exist)
	_ = godotenv.Load()

	cfg := &Config{
		Port:            getEnv(EnvPort, DefaultPort),
		LogLevel:        getEnv(EnvLogLevel, DefaultLogLevel),
		ShutdownTimeout: getEnvDuration(EnvShutdownTimeout, DefaultShutdownTimeout),
		CORSOrigin:      getEnv(EnvCORSOrigin, DefaultCORSOrigin),

		Neo4jURI:      getEnv(EnvNeo4jURI, DefaultNeo4jURI),
		Neo4jUsername: getEnv(EnvNeo4jUsername, DefaultNeo4jUsername),
		Neo4jPassword: getEnv(EnvNeo4jPassword, ""),

		PostgresDSN: getEnv(EnvPostgresDSN, ""),

		JWTSecret:   getEnv(EnvJWTSecret, ""),
		TokenExpiry: getEnvDuration(EnvTokenExpiry, DefaultTokenExpiry),

		LLMProviders:  getEnvList(EnvLLMProviders, []string{"openai", "gemini"}),
		OpenAIAPIKey:  getEnv(EnvOpenAIAPIKey, ""),
		OpenAIBaseURL: getEnv(EnvOpenAIBaseURL, DefaultOpenAIBaseURL),
		OpenAIModel:   getEnv(EnvOpenAIModel, DefaultOpenAIModel),
		GeminiAPIKey:  getEnv(EnvGeminiAPIKey, ""),
		GeminiModel:   getEnv(EnvGeminiModel, DefaultGeminiModel),
		LLMTimeout:    getEnvDuration(EnvLLMCallTimeout, DefaultLLMTimeout),

		ExtractorStrategy: ExtractorStrategy(getEnv(EnvExtractorStrategy, string(StrategyLLM))),

		ChatRateBurst:  getEnvFloat(EnvChatRateBurst, DefaultChatRateBurst),
		ChatRateRefill: getEnvFloat(EnvChatRateRefill, DefaultChatRateRefill),

		MetricsUsername: getEnv(EnvMetricsUsername, DefaultMetricsUsername),
		MetricsPassword: getEnv(EnvMetricsPassword, ""),

		SentryEnabled:     getEnvBool(EnvSentryEnabled, false),
		SentryDSN:         getEnv(EnvSentryDSN, ""),
		SentryEnvironment: getEnv(EnvSentryEnvironment, "production"),
		SentrySampleRate:  getEnvFloat(EnvSentrySampleRate, 1.0),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks required settings and value domains.
func (c *Config) Validate() error {
	if c.JWTSecret == "" {
		return fmt.Errorf("%s is required", EnvJWTSecret)
	}
	if c.PostgresDSN == "" {
		return fmt.Errorf("%s is required", EnvPostgresDSN)
	}
	switch c.ExtractorStrategy {
	case StrategyFuzzy, StrategyLLM:
	default:
		return fmt.Errorf("%s must be %q or %q, got %q",
			EnvExtractorStrategy, StrategyFuzzy, StrategyLLM, c.ExtractorStrategy)
	}
	for _, p := range c.LLMProviders {
		if p != "openai" && p != "gemini" {
			return fmt.Errorf("%s contains unknown provider %q", EnvLLMProviders, p)
		}
	}
	return nil
}

// HasLLM returns true if at least one LLM provider has an API key.
func (c *Config) HasLLM() bool {
	return c.OpenAIAPIKey != "" || c.GeminiAPIKey != ""
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func getEnvList(key string, fallback []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
