// Package config defines environment variable keys for configuration.
package config

//nolint:gosec // Environment variable keys are not credentials.
const (
	// Server
	EnvPort            = "ADVISOR_PORT"
	EnvLogLevel        = "ADVISOR_LOG_LEVEL"
	EnvShutdownTimeout = "ADVISOR_SHUTDOWN_TIMEOUT"
	EnvCORSOrigin      = "ADVISOR_CORS_ORIGIN"

	// Graph store (Neo4j)
	EnvNeo4jURI      = "ADVISOR_NEO4J_URI"
	EnvNeo4jUsername = "ADVISOR_NEO4J_USERNAME"
	EnvNeo4jPassword = "ADVISOR_NEO4J_PASSWORD"

	// Relational user store (Postgres)
	EnvPostgresDSN = "ADVISOR_POSTGRES_DSN"

	// Auth
	EnvJWTSecret   = "ADVISOR_JWT_SECRET"
	EnvTokenExpiry = "ADVISOR_TOKEN_EXPIRY"

	// LLM
	EnvLLMProviders   = "ADVISOR_LLM_PROVIDERS"
	EnvOpenAIAPIKey   = "ADVISOR_OPENAI_API_KEY"
	EnvOpenAIBaseURL  = "ADVISOR_OPENAI_BASE_URL"
	EnvOpenAIModel    = "ADVISOR_OPENAI_MODEL"
	EnvGeminiAPIKey   = "ADVISOR_GEMINI_API_KEY"
	EnvGeminiModel    = "ADVISOR_GEMINI_MODEL"
	EnvLLMCallTimeout = "ADVISOR_LLM_TIMEOUT"

	// NLU
	EnvExtractorStrategy = "ADVISOR_EXTRACTOR_STRATEGY"

	// Chat rate limiting
	EnvChatRateBurst  = "ADVISOR_CHAT_RATE_BURST"
	EnvChatRateRefill = "ADVISOR_CHAT_RATE_REFILL"

	// Metrics
	EnvMetricsUsername = "ADVISOR_METRICS_USERNAME"
	EnvMetricsPassword = "ADVISOR_METRICS_PASSWORD"

	// Sentry
	EnvSentryEnabled     = "ADVISOR_SENTRY_ENABLED"
	EnvSentryDSN         = "ADVISOR_SENTRY_DSN"
	EnvSentryEnvironment = "ADVISOR_SENTRY_ENVIRONMENT"
	EnvSentrySampleRate  = "ADVISOR_SENTRY_SAMPLE_RATE"
)
