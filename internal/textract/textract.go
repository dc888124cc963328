// Package textract converts uploaded PDF and DOCX bytes into plain text.
package textract

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html"
	"io"
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"

	"pollbuilder/internal/model"
)

var (
	ErrUnsupportedType = errors.New("unsupported file type")
	ErrEmptyDocument   = errors.New("document is empty")
)

// Extractor produces the plain text of a document.
type Extractor interface {
	Extract(ctx context.Context, data []byte, ft model.FileType) (string, error)
}

type extractor struct{}

// New returns the default Extractor backed by ledongthuc/pdf and nguyenthenguyen/docx.
func New() Extractor {
	return extractor{}
}

func (extractor) Extract(ctx context.Context, data []byte, ft model.FileType) (string, error) {
	if len(data) == 0 {
		return "", ErrEmptyDocument
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	switch ft {
	case model.FileTypePDF:
		return PDFText(data)
	case model.FileTypeDOCX:
		return DOCXText(data)
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedType, ft)
	}
}

// PDFText returns the text of every page in order.
func PDFText(data []byte) (text string, err error) {
	// The pdf reader panics on some malformed inputs.
	defer func() {
		if r := recover(); r != nil {
			text, err = "", fmt.Errorf("parse pdf: %v", r)
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("parse pdf: %w", err)
	}
	plain, err := r.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("read pdf text: %w", err)
	}
	b, err := io.ReadAll(plain)
	if err != nil {
		return "", fmt.Errorf("read pdf text: %w", err)
	}
	return string(b), nil
}

var (
	paragraphEnd = regexp.MustCompile(`</w:p>|<w:br[^>]*/>|<w:cr[^>]*/>`)
	tabTag       = regexp.MustCompile(`<w:tab[^>]*/>`)
	anyTag       = regexp.MustCompile(`<[^>]*>`)
)

// DOCXText returns the body text of a DOCX file, one paragraph per line.
func DOCXText(data []byte) (string, error) {
	r, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("parse docx: %w", err)
	}
	defer r.Close()

	return WordXMLText(r.Editable().GetContent()), nil
}

// WordXMLText flattens WordprocessingML into plain text.
func WordXMLText(content string) string {
	s := paragraphEnd.ReplaceAllString(content, "\n")
	s = tabTag.ReplaceAllString(s, "\t")
	s = anyTag.ReplaceAllString(s, "")
	s = html.UnescapeString(s)
	return strings.TrimSpace(s)
}
