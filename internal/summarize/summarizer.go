package summarize

import (
	"context"
	"errors"
	"fmt"

	"docchat-backend/internal/llm"
	"docchat-backend/internal/utils"

	"go.uber.org/zap"
)

type Mode string

const (
	// ModeFirst summarizes only the first chunk of a document.
	ModeFirst Mode = "first"
	// ModeAll summarizes every chunk and merges the partial summaries.
	ModeAll Mode = "all"
)

const DefaultWorkers = 4

var ErrNoChunks = errors.New("no content to summarize")

func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeFirst, ModeAll:
		return Mode(s), nil
	default:
		return "", fmt.Errorf("invalid summary mode %q, expected %q or %q", s, ModeFirst, ModeAll)
	}
}

type Summarizer struct {
	model   llm.Model
	prompts *Prompts
	workers int
	logger  *zap.Logger
}

func NewSummarizer(model llm.Model, prompts *Prompts, workers int, logger *zap.Logger) *Summarizer {
	if workers <= 0 {
		workers = DefaultWorkers
	}
	return &Summarizer{model: model, prompts: prompts, workers: workers, logger: logger}
}

// Summarize produces one summary for the chunks of a document. onChunk, when
// not nil, is called each time a chunk summary completes.
func (s *Summarizer) Summarize(ctx context.Context, chunks []string, mode Mode, onChunk func()) (string, error) {
	if len(chunks) == 0 {
		return "", ErrNoChunks
	}

	switch mode {
	case ModeFirst, "":
		summary, err := s.summarizeChunk(ctx, chunks[0])
		if err == nil && onChunk != nil {
			onChunk()
		}
		return summary, err
	case ModeAll:
		return s.mapReduce(ctx, chunks, onChunk)
	default:
		return "", fmt.Errorf("invalid summary mode %q", mode)
	}
}

func (s *Summarizer) summarizeChunk(ctx context.Context, chunk string) (string, error) {
	prompt, err := s.prompts.Summary(chunk)
	if err != nil {
		return "", err
	}

	summary, err := llm.Generate(ctx, s.model, prompt)
	if err != nil {
		return "", fmt.Errorf("error summarizing chunk: %w", err)
	}
	return summary, nil
}

func (s *Summarizer) mapReduce(ctx context.Context, chunks []string, onChunk func()) (string, error) {
	if len(chunks) == 1 {
		summary, err := s.summarizeChunk(ctx, chunks[0])
		if err == nil && onChunk != nil {
			onChunk()
		}
		return summary, err
	}

	s.logger.Debug("summarizing all chunks", zap.Int("chunks", len(chunks)), zap.Int("workers", s.workers))

	completed := utils.RunInPool(ctx, s.summarizeChunk, chunks, s.workers)
	partials, err := utils.CollectOrdered(completed, len(chunks), onChunk)
	if err != nil {
		return "", err
	}

	prompt, err := s.prompts.Combine(partials)
	if err != nil {
		return "", err
	}

	summary, err := llm.Generate(ctx, s.model, prompt)
	if err != nil {
		return "", fmt.Errorf("error combining %d chunk summaries: %w", len(partials), err)
	}
	return summary, nil
}
