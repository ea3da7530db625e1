package document

import (
	"fmt"
	"regexp"
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/gen2brain/go-fitz"
)

type PDFFormat string

const (
	PDFFormatText     PDFFormat = "text"
	PDFFormatMarkdown PDFFormat = "markdown"
)

func ParsePDFFormat(s string) (PDFFormat, error) {
	switch format := PDFFormat(strings.ToLower(strings.TrimSpace(s))); format {
	case PDFFormatText, PDFFormatMarkdown:
		return format, nil
	case "":
		return PDFFormatText, nil
	default:
		return "", fmt.Errorf("invalid pdf format %q, expected %q or %q", s, PDFFormatText, PDFFormatMarkdown)
	}
}

type PDFExtractor struct {
	Format PDFFormat
}

var inlineImages = regexp.MustCompile(`!\[[^\]]*\]\(data:image/[^)]+\)`)

// Extract returns the text of every page. Plain text pages are joined by a
// newline, markdown pages by a blank line.
func (e PDFExtractor) Extract(data []byte) (string, error) {
	pdf, err := fitz.NewFromMemory(data)
	if err != nil {
		return "", fmt.Errorf("error opening pdf: %w", err)
	}
	defer pdf.Close()

	if e.Format == PDFFormatMarkdown {
		return pdfToMarkdown(pdf)
	}

	pages := make([]string, 0, pdf.NumPage())
	for i := 0; i < pdf.NumPage(); i++ {
		pageText, err := pdf.Text(i)
		if err != nil {
			return "", fmt.Errorf("error extracting text from page %d: %w", i, err)
		}
		pages = append(pages, pageText)
	}

	return strings.Join(pages, "\n"), nil
}

func pdfToMarkdown(pdf *fitz.Document) (string, error) {
	converter := md.NewConverter("", true, nil)

	pages := make([]string, 0, pdf.NumPage())
	for i := 0; i < pdf.NumPage(); i++ {
		html, err := pdf.HTML(i, true)
		if err != nil {
			return "", fmt.Errorf("error rendering page %d: %w", i, err)
		}

		page, err := converter.ConvertString(html)
		if err != nil {
			return "", fmt.Errorf("error converting page %d to markdown: %w", i, err)
		}

		// Embedded images are base64 blobs that only inflate the prompt.
		pages = append(pages, strings.TrimSpace(inlineImages.ReplaceAllString(page, "")))
	}

	return strings.Join(pages, "\n\n"), nil
}
