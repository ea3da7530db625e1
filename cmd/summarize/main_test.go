package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"docchat-backend/cmd"
	"docchat-backend/internal/document"
	"docchat-backend/internal/summarize"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tmc/langchaingo/llms"
	"go.uber.org/zap"
)

type fixedModel struct {
	calls int
}

func (m *fixedModel) GenerateContent(ctx context.Context, messages []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error) {
	m.calls++
	return &llms.ContentResponse{Choices: []*llms.ContentChoice{{Content: "- summary"}}}, nil
}

type textExtractor string

func (e textExtractor) Extract(data []byte) (string, error) {
	return string(e), nil
}

func newPipeline(t *testing.T, text string) (*cmd.Pipeline, *fixedModel) {
	prompts, err := summarize.DefaultPrompts()
	require.NoError(t, err)
	splitter, err := document.NewSplitter(document.DefaultChunkSize, document.DefaultChunkOverlap)
	require.NoError(t, err)

	model := &fixedModel{}
	return &cmd.Pipeline{
		Model:      model,
		Loader:     &document.Loader{PDF: textExtractor(text)},
		Splitter:   splitter,
		Summarizer: summarize.NewSummarizer(model, prompts, 1, zap.NewNop()),
	}, model
}

func writeFile(t *testing.T, name string) string {
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte("%PDF-1.4"), 0644))
	return path
}

func TestRun(t *testing.T) {
	pipeline, model := newPipeline(t, "A.\n\nB.")

	summary, err := run(context.Background(), pipeline, writeFile(t, "doc.pdf"), summarize.ModeFirst)
	require.NoError(t, err)
	assert.Equal(t, "- summary", summary)
	assert.Equal(t, 1, model.calls)
}

func TestRunEmptyDocument(t *testing.T) {
	pipeline, model := newPipeline(t, "  \n\n ")

	_, err := run(context.Background(), pipeline, writeFile(t, "doc.pdf"), summarize.ModeAll)
	assert.ErrorIs(t, err, summarize.ErrNoChunks)
	assert.Equal(t, 0, model.calls)
}

func TestRunUnsupportedType(t *testing.T) {
	pipeline, _ := newPipeline(t, "unused")

	path := filepath.Join(t.TempDir(), "notes.png")
	require.NoError(t, os.WriteFile(path, []byte("\x89PNG\r\n\x1a\n"), 0644))

	_, err := run(context.Background(), pipeline, path, summarize.ModeFirst)
	assert.ErrorIs(t, err, document.ErrUnsupportedType)
}
