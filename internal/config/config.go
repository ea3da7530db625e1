package config

import (
	"fmt"
	"time"

	"docchat-backend/internal/document"
	"docchat-backend/internal/llm"
	"docchat-backend/internal/summarize"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	APIPort string `env:"API_PORT" envDefault:"3000"`

	LLMProvider  string `env:"LLM_PROVIDER" envDefault:"gemini"`
	LLMModel     string `env:"LLM_MODEL"`
	LLMBaseURL   string `env:"LLM_BASE_URL"`
	GoogleAPIKey string `env:"GOOGLE_API_KEY"`
	OpenAIAPIKey string `env:"OPENAI_API_KEY"`

	ChunkSize      int    `env:"CHUNK_SIZE" envDefault:"1000"`
	ChunkOverlap   int    `env:"CHUNK_OVERLAP" envDefault:"200"`
	SummaryMode    string `env:"SUMMARY_MODE" envDefault:"first"`
	SummaryWorkers int    `env:"SUMMARY_WORKERS" envDefault:"4"`
	PromptsFile    string `env:"PROMPTS_FILE"`
	PDFFormat      string `env:"PDF_FORMAT" envDefault:"text"`

	MaxUploadBytes         int64         `env:"MAX_UPLOAD_BYTES" envDefault:"33554432"`
	RejectUnsupportedTypes bool          `env:"REJECT_UNSUPPORTED_TYPES" envDefault:"false"`
	ExposeErrorDetails     bool          `env:"EXPOSE_ERROR_DETAILS" envDefault:"true"`
	RequestTimeout         time.Duration `env:"REQUEST_TIMEOUT" envDefault:"60s"`
	CORSAllowedOrigins     []string      `env:"CORS_ALLOWED_ORIGINS" envDefault:"*" envSeparator:","`
}

// Load parses the environment and validates the result. Callers that accept
// an env file should load it before calling Load.
func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate is the single readiness check for the process: it rejects a
// config whose provider has no credential.
func (c *Config) Validate() error {
	switch llm.Provider(c.LLMProvider) {
	case llm.ProviderGemini:
		if c.GoogleAPIKey == "" {
			return fmt.Errorf("GOOGLE_API_KEY is required for provider %q", c.LLMProvider)
		}
	case llm.ProviderOpenAI, llm.ProviderOpenAICompatible:
		if c.OpenAIAPIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY is required for provider %q", c.LLMProvider)
		}
	default:
		return fmt.Errorf("invalid LLM_PROVIDER %q", c.LLMProvider)
	}

	if c.ChunkSize <= 0 {
		return fmt.Errorf("CHUNK_SIZE must be positive, got %d", c.ChunkSize)
	}
	if c.ChunkOverlap < 0 || c.ChunkOverlap >= c.ChunkSize {
		return fmt.Errorf("CHUNK_OVERLAP must be in [0, CHUNK_SIZE), got %d", c.ChunkOverlap)
	}
	if _, err := summarize.ParseMode(c.SummaryMode); err != nil {
		return fmt.Errorf("invalid SUMMARY_MODE: %w", err)
	}
	if _, err := document.ParsePDFFormat(c.PDFFormat); err != nil {
		return fmt.Errorf("invalid PDF_FORMAT: %w", err)
	}
	if c.MaxUploadBytes <= 0 {
		return fmt.Errorf("MAX_UPLOAD_BYTES must be positive, got %d", c.MaxUploadBytes)
	}

	return nil
}

// LLM returns the client config. An unset LLM_MODEL falls back to the
// provider's default model; openai-compatible servers keep the client default.
func (c *Config) LLM() llm.Config {
	cfg := llm.Config{
		Provider: llm.Provider(c.LLMProvider),
		Model:    c.LLMModel,
		BaseURL:  c.LLMBaseURL,
	}

	switch cfg.Provider {
	case llm.ProviderGemini:
		cfg.APIKey = c.GoogleAPIKey
		if cfg.Model == "" {
			cfg.Model = llm.DefaultGeminiModel
		}
	case llm.ProviderOpenAI:
		cfg.APIKey = c.OpenAIAPIKey
		if cfg.Model == "" {
			cfg.Model = llm.DefaultOpenAIModel
		}
	default:
		cfg.APIKey = c.OpenAIAPIKey
	}
	return cfg
}
