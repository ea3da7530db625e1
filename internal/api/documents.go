package api

import (
	"errors"
	"io"
	"net/http"

	"docchat-backend/internal/document"
	"docchat-backend/internal/summarize"
	"docchat-backend/pkg/api"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

const processingFailedMessage = "Failed to process document"

type DocumentServiceOptions struct {
	Mode                   summarize.Mode
	MaxUploadBytes         int64
	RejectUnsupportedTypes bool
	Policy                 ErrorPolicy
}

type DocumentService struct {
	loader     *document.Loader
	splitter   *document.Splitter
	summarizer *summarize.Summarizer
	opts       DocumentServiceOptions
	logger     *zap.Logger
}

func NewDocumentService(loader *document.Loader, splitter *document.Splitter, summarizer *summarize.Summarizer, opts DocumentServiceOptions, logger *zap.Logger) *DocumentService {
	if opts.Mode == "" {
		opts.Mode = summarize.ModeFirst
	}
	return &DocumentService{
		loader:     loader,
		splitter:   splitter,
		summarizer: summarizer,
		opts:       opts,
		logger:     logger,
	}
}

func (s *DocumentService) AddRoutes(r chi.Router) {
	r.Post("/process-document", RestHandler(s.opts.Policy, s.ProcessDocument))
}

func processingFailed(err error) error {
	return CodedErrorMessage(http.StatusInternalServerError, processingFailedMessage, err)
}

func (s *DocumentService) ProcessDocument(r *http.Request) (any, error) {
	params, err := ParseRequestQueryParams[api.DocumentParams](r)
	if err != nil {
		return nil, err
	}

	mode := s.opts.Mode
	if params.Mode != "" {
		if mode, err = summarize.ParseMode(params.Mode); err != nil {
			return nil, CodedError(http.StatusBadRequest, err)
		}
	}

	if s.opts.MaxUploadBytes > 0 {
		r.Body = http.MaxBytesReader(nil, r.Body, s.opts.MaxUploadBytes)
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		if !errors.Is(err, http.ErrMissingFile) {
			s.logger.Warn("unable to read uploaded file", zap.Error(err))
		}
		return nil, CodedErrorf(http.StatusBadRequest, "No file provided")
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, processingFailed(err)
	}

	mimeType := document.DetectMIMEType(header.Header.Get("Content-Type"), data)
	logger := s.logger.With(zap.String("filename", header.Filename), zap.String("mime_type", mimeType))

	text, err := s.loader.Load(mimeType, data)
	if errors.Is(err, document.ErrUnsupportedType) {
		if s.opts.RejectUnsupportedTypes {
			return nil, CodedErrorMessage(http.StatusUnsupportedMediaType, "Unsupported file type", err)
		}
		logger.Warn("unsupported document type, continuing with empty text")
	} else if err != nil {
		return nil, processingFailed(err)
	}

	chunks, err := s.splitter.Split(text)
	if err != nil {
		return nil, processingFailed(err)
	}

	if len(chunks) == 0 {
		return nil, CodedErrorf(http.StatusBadRequest, "No content to summarize")
	}

	summary, err := s.summarizer.Summarize(r.Context(), chunks, mode, nil)
	if err != nil {
		return nil, processingFailed(err)
	}

	logger.Info("summarized document",
		zap.Int("chunks", len(chunks)),
		zap.String("mode", string(mode)),
		zap.Int("text_length", len(text)))

	return api.DocumentResponse{Text: text, Summary: summary, Chunks: len(chunks)}, nil
}
