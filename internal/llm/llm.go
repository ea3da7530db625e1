package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/googleai"
	"github.com/tmc/langchaingo/llms/openai"
)

// Model is the part of a language model client the service depends on. Every
// langchaingo llms.Model satisfies it.
type Model interface {
	GenerateContent(ctx context.Context, messages []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error)
}

type Provider string

const (
	ProviderGemini           Provider = "gemini"
	ProviderOpenAI           Provider = "openai"
	ProviderOpenAICompatible Provider = "openai-compatible"
)

const (
	DefaultGeminiModel = "gemini-pro"
	DefaultOpenAIModel = "gpt-4o-mini"
)

var ErrEmptyResponse = errors.New("empty response from model")

type Config struct {
	Provider Provider
	Model    string
	BaseURL  string
	APIKey   string
}

// New builds the process wide model client. It fails when the credential for
// the provider is missing so the service never starts without one.
func New(ctx context.Context, cfg Config) (Model, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("missing api key for provider %q", cfg.Provider)
	}

	switch cfg.Provider {
	case ProviderGemini:
		opts := []googleai.Option{googleai.WithAPIKey(cfg.APIKey)}
		if cfg.Model != "" {
			opts = append(opts, googleai.WithDefaultModel(cfg.Model))
		}
		client, err := googleai.New(ctx, opts...)
		if err != nil {
			return nil, fmt.Errorf("could not create gemini client: %w", err)
		}
		return client, nil

	case ProviderOpenAI:
		return NewOpenAISDK(cfg.BaseURL, cfg.APIKey, cfg.Model), nil

	case ProviderOpenAICompatible:
		opts := []openai.Option{openai.WithToken(cfg.APIKey)}
		if cfg.BaseURL != "" {
			opts = append(opts, openai.WithBaseURL(cfg.BaseURL))
		}
		if cfg.Model != "" {
			opts = append(opts, openai.WithModel(cfg.Model))
		}
		client, err := openai.New(opts...)
		if err != nil {
			return nil, fmt.Errorf("could not create openai compatible client: %w", err)
		}
		return client, nil

	default:
		return nil, fmt.Errorf("unknown llm provider: %q", cfg.Provider)
	}
}

// Generate sends a single user turn, without history.
func Generate(ctx context.Context, model Model, prompt string, options ...llms.CallOption) (string, error) {
	resp, err := model.GenerateContent(ctx, []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeHuman, prompt),
	}, options...)
	if err != nil {
		return "", err
	}
	return ResponseText(resp)
}

func ResponseText(resp *llms.ContentResponse) (string, error) {
	if resp == nil || len(resp.Choices) == 0 || resp.Choices[0] == nil {
		return "", ErrEmptyResponse
	}
	return resp.Choices[0].Content, nil
}

// MessageText concatenates the text parts of a message, ignoring other part kinds.
func MessageText(msg llms.MessageContent) string {
	var b strings.Builder
	for _, part := range msg.Parts {
		if text, ok := part.(llms.TextContent); ok {
			b.WriteString(text.Text)
		}
	}
	return b.String()
}
