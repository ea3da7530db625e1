package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"mime"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"docchat-backend/cmd"
	"docchat-backend/internal/config"
	"docchat-backend/internal/document"
	"docchat-backend/internal/summarize"

	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"
)

func main() {
	logger := cmd.NewLogger()
	defer logger.Sync() //nolint:errcheck

	modeFlag := flag.String("mode", "", "summary mode: first or all (defaults to SUMMARY_MODE)")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [-env file] [-mode first|all] <document>\n", filepath.Base(os.Args[0]))
		flag.PrintDefaults()
	}

	cmd.LoadEnvFile()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}
	path := flag.Arg(0)

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("invalid configuration", zap.Error(err))
	}
	if *modeFlag != "" {
		cfg.SummaryMode = *modeFlag
	}
	mode, err := summarize.ParseMode(cfg.SummaryMode)
	if err != nil {
		logger.Fatal("invalid summary mode", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pipeline, err := cmd.InitializePipeline(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("failed to initialize document pipeline", zap.Error(err))
	}

	summary, err := run(ctx, pipeline, path, mode)
	if err != nil {
		logger.Fatal("failed to summarize document", zap.String("path", path), zap.Error(err))
	}

	fmt.Println(summary)
}

func run(ctx context.Context, pipeline *cmd.Pipeline, path string, mode summarize.Mode) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("error reading document: %w", err)
	}

	mimeType := document.DetectMIMEType(mime.TypeByExtension(filepath.Ext(path)), data)

	text, err := pipeline.Loader.Load(mimeType, data)
	if err != nil {
		if errors.Is(err, document.ErrUnsupportedType) {
			return "", fmt.Errorf("%s: %w", mimeType, err)
		}
		return "", err
	}

	chunks, err := pipeline.Splitter.Split(text)
	if err != nil {
		return "", err
	}

	var onChunk func()
	if mode == summarize.ModeAll && len(chunks) > 1 {
		bar := progressbar.NewOptions(len(chunks),
			progressbar.OptionSetDescription("summarizing chunks"),
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionShowCount(),
			progressbar.OptionClearOnFinish(),
		)
		defer bar.Finish()              //nolint:errcheck
		onChunk = func() { bar.Add(1) } //nolint:errcheck
	}

	return pipeline.Summarizer.Summarize(ctx, chunks, mode, onChunk)
}
