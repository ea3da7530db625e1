package cmd

import (
	"context"
	"flag"
	"fmt"

	"docchat-backend/internal/config"
	"docchat-backend/internal/document"
	"docchat-backend/internal/llm"
	"docchat-backend/internal/summarize"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// LoadEnvFile parses the command line and loads the file passed with -env.
// Binaries must register their own flags before calling it.
func LoadEnvFile() {
	var configPath string

	flag.StringVar(&configPath, "env", "", "path to load env from")
	flag.Parse()

	if configPath == "" {
		zap.L().Info("no env file specified, using os.Environ only")
		return
	}

	zap.L().Info("loading env from file", zap.String("path", configPath))
	if err := godotenv.Load(configPath); err != nil {
		zap.L().Fatal("error loading .env file", zap.String("path", configPath), zap.Error(err))
	}
}

func NewLogger() *zap.Logger {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(fmt.Sprintf("unable to create logger: %v", err))
	}
	zap.ReplaceGlobals(logger)
	return logger
}

// Pipeline bundles the components shared by every entry point that turns a
// document into a summary.
type Pipeline struct {
	Model      llm.Model
	Loader     *document.Loader
	Splitter   *document.Splitter
	Summarizer *summarize.Summarizer
}

func InitializePipeline(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Pipeline, error) {
	model, err := llm.New(ctx, cfg.LLM())
	if err != nil {
		return nil, fmt.Errorf("error creating model client: %w", err)
	}

	prompts, err := summarize.LoadPrompts(cfg.PromptsFile)
	if err != nil {
		return nil, fmt.Errorf("error loading prompts: %w", err)
	}

	splitter, err := document.NewSplitter(cfg.ChunkSize, cfg.ChunkOverlap)
	if err != nil {
		return nil, fmt.Errorf("error creating splitter: %w", err)
	}

	pdfFormat, err := document.ParsePDFFormat(cfg.PDFFormat)
	if err != nil {
		return nil, err
	}

	return &Pipeline{
		Model:      model,
		Loader:     document.NewLoader(pdfFormat),
		Splitter:   splitter,
		Summarizer: summarize.NewSummarizer(model, prompts, cfg.SummaryWorkers, logger),
	}, nil
}
