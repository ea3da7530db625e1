package document

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

const (
	MIMETypePDF         = "application/pdf"
	mimeTypeOctetStream = "application/octet-stream"
)

var ErrUnsupportedType = errors.New("unsupported document type")

// Extractor converts a binary document into plain text.
type Extractor interface {
	Extract(data []byte) (string, error)
}

type Loader struct {
	PDF  Extractor
	Word Extractor
}

func NewLoader(pdfFormat PDFFormat) *Loader {
	return &Loader{PDF: PDFExtractor{Format: pdfFormat}, Word: DocxExtractor{}}
}

// ExtractorFor dispatches on the MIME type: "application/pdf" is a PDF, any
// type mentioning "word" is a Word document.
func (l *Loader) ExtractorFor(mimeType string) (Extractor, bool) {
	switch {
	case mimeType == MIMETypePDF:
		return l.PDF, l.PDF != nil
	case strings.Contains(mimeType, "word"):
		return l.Word, l.Word != nil
	default:
		return nil, false
	}
}

// Load extracts the text of a document. For unsupported types it returns an
// empty text together with ErrUnsupportedType, callers decide whether that is
// fatal.
func (l *Loader) Load(mimeType string, data []byte) (string, error) {
	extractor, ok := l.ExtractorFor(mimeType)
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedType, mimeType)
	}

	text, err := extractor.Extract(data)
	if err != nil {
		return "", fmt.Errorf("error extracting %s document: %w", mimeType, err)
	}
	return text, nil
}

// DetectMIMEType returns the declared type unless it is missing or generic, in
// which case the type is sniffed from the content.
func DetectMIMEType(declared string, data []byte) string {
	declared = strings.TrimSpace(strings.ToLower(declared))
	if idx := strings.Index(declared, ";"); idx >= 0 {
		declared = strings.TrimSpace(declared[:idx])
	}

	if declared != "" && declared != mimeTypeOctetStream {
		return declared
	}
	if len(data) == 0 {
		return declared
	}

	return mimetype.Detect(data).String()
}
