package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"docchat-backend/cmd"
	"docchat-backend/internal/api"
	"docchat-backend/internal/config"
	"docchat-backend/internal/summarize"

	"go.uber.org/zap"
)

func main() {
	logger := cmd.NewLogger()
	defer logger.Sync() //nolint:errcheck

	logger.Info("starting API server")

	cmd.LoadEnvFile()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("invalid configuration", zap.Error(err))
	}

	pipeline, err := cmd.InitializePipeline(context.Background(), cfg, logger)
	if err != nil {
		logger.Fatal("failed to initialize document pipeline", zap.Error(err))
	}

	mode, err := summarize.ParseMode(cfg.SummaryMode)
	if err != nil {
		logger.Fatal("invalid summary mode", zap.Error(err))
	}

	policy := api.ErrorPolicy{ExposeDetails: cfg.ExposeErrorDetails}

	chatService := api.NewChatService(pipeline.Model, policy, logger.Named("chat"))
	documentService := api.NewDocumentService(pipeline.Loader, pipeline.Splitter, pipeline.Summarizer, api.DocumentServiceOptions{
		Mode:                   mode,
		MaxUploadBytes:         cfg.MaxUploadBytes,
		RejectUnsupportedTypes: cfg.RejectUnsupportedTypes,
		Policy:                 policy,
	}, logger.Named("documents"))

	r := api.NewRouter(api.RouterOptions{
		AllowedOrigins: cfg.CORSAllowedOrigins,
		RequestTimeout: cfg.RequestTimeout,
	}, chatService, documentService)

	server := &http.Server{
		Addr:    ":" + cfg.APIPort,
		Handler: r,
	}

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		logger.Info("shutting down server")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			logger.Fatal("server forced to shutdown", zap.Error(err))
		}
	}()

	logger.Info("API server listening",
		zap.String("port", cfg.APIPort),
		zap.String("provider", cfg.LLMProvider),
		zap.String("model", cfg.LLM().Model))
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal("could not listen", zap.String("port", cfg.APIPort), zap.Error(err))
	}

	logger.Info("server stopped")
}
