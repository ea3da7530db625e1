package llm

import (
	"context"
	"fmt"

	openai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/tmc/langchaingo/llms"
)


// OpenAISDK talks to the OpenAI chat completions API through the official SDK.
type OpenAISDK struct {
	client openai.Client
	model  string
}

func NewOpenAISDK(baseURL, apiKey, model string) *OpenAISDK {
	opts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	if model == "" {
		model = DefaultOpenAIModel
	}
	return &OpenAISDK{client: openai.NewClient(opts...), model: model}
}

func (o *OpenAISDK) GenerateContent(ctx context.Context, messages []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error) {
	callOpts := llms.CallOptions{}
	for _, opt := range options {
		opt(&callOpts)
	}

	params := openai.ChatCompletionNewParams{
		Model:    o.model,
		Messages: ConvertToOpenAIMessages(messages),
	}
	if callOpts.Model != "" {
		params.Model = callOpts.Model
	}
	if callOpts.Temperature != 0 {
		params.Temperature = openai.Float(callOpts.Temperature)
	}

	res, err := o.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("openai generation failed: %w", err)
	}
	if len(res.Choices) == 0 {
		return nil, ErrEmptyResponse
	}

	return &llms.ContentResponse{
		Choices: []*llms.ContentChoice{{
			Content:    res.Choices[0].Message.Content,
			StopReason: string(res.Choices[0].FinishReason),
		}},
	}, nil
}

func ConvertToOpenAIMessages(messages []llms.MessageContent) []openai.ChatCompletionMessageParamUnion {
	out := make([]openai.ChatCompletionMessageParamUnion, 0, len(messages))
	for _, msg := range messages {
		text := MessageText(msg)
		switch msg.Role {
		case llms.ChatMessageTypeSystem:
			out = append(out, openai.SystemMessage(text))
		case llms.ChatMessageTypeAI:
			out = append(out, openai.AssistantMessage(text))
		default:
			out = append(out, openai.UserMessage(text))
		}
	}
	return out
}
