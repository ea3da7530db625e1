package llm_test

import (
	"context"
	"testing"

	"docchat-backend/internal/llm"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tmc/langchaingo/llms"
)

type staticModel struct {
	resp *llms.ContentResponse
	got  []llms.MessageContent
}

func (m *staticModel) GenerateContent(ctx context.Context, messages []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error) {
	m.got = messages
	return m.resp, nil
}

func TestGenerateSendsSingleHumanTurn(t *testing.T) {
	model := &staticModel{resp: &llms.ContentResponse{Choices: []*llms.ContentChoice{{Content: "hi there"}}}}

	text, err := llm.Generate(context.Background(), model, "hello")
	require.NoError(t, err)
	assert.Equal(t, "hi there", text)

	require.Len(t, model.got, 1)
	assert.Equal(t, llms.ChatMessageTypeHuman, model.got[0].Role)
	assert.Equal(t, "hello", llm.MessageText(model.got[0]))
}

func TestGenerateNoChoices(t *testing.T) {
	model := &staticModel{resp: &llms.ContentResponse{}}

	_, err := llm.Generate(context.Background(), model, "hello")
	assert.ErrorIs(t, err, llm.ErrEmptyResponse)
}

func TestMessageTextSkipsNonTextParts(t *testing.T) {
	msg := llms.MessageContent{
		Role: llms.ChatMessageTypeHuman,
		Parts: []llms.ContentPart{
			llms.TextPart("a"),
			llms.ImageURLPart("http://example.com/x.png"),
			llms.TextPart("b"),
		},
	}
	assert.Equal(t, "ab", llm.MessageText(msg))
}

func TestNewRequiresAPIKey(t *testing.T) {
	_, err := llm.New(context.Background(), llm.Config{Provider: llm.ProviderGemini})
	assert.Error(t, err)

	_, err = llm.New(context.Background(), llm.Config{Provider: "bogus", APIKey: "key"})
	assert.Error(t, err)
}

func TestNewOpenAIProvider(t *testing.T) {
	model, err := llm.New(context.Background(), llm.Config{Provider: llm.ProviderOpenAI, APIKey: "key"})
	require.NoError(t, err)
	assert.IsType(t, &llm.OpenAISDK{}, model)
}

func TestConvertToOpenAIMessages(t *testing.T) {
	out := llm.ConvertToOpenAIMessages([]llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeSystem, "be brief"),
		llms.TextParts(llms.ChatMessageTypeHuman, "hi"),
		llms.TextParts(llms.ChatMessageTypeAI, "hello"),
	})

	require.Len(t, out, 3)
	assert.NotNil(t, out[0].OfSystem)
	assert.NotNil(t, out[1].OfUser)
	assert.NotNil(t, out[2].OfAssistant)
}
