// Package export renders an assembled poll instrument to a downloadable file.
package export

import (
	"bytes"
	"errors"
	"fmt"
	"html"
	"io"
	"strings"

	"github.com/yuin/goldmark"

	"pollbuilder/internal/model"
)

// Formats.
const (
	FormatMarkdown = "markdown"
	FormatHTML     = "html"
)

const defaultTitle = "Poll Instrument"

var ErrUnknownFormat = errors.New("unknown export format")

// Instrument is a fully resolved questionnaire, questions already numbered.
type Instrument struct {
	Title     string
	Subtitle  string
	Questions []model.TemplateQuestion
}

// Renderer writes an Instrument in one file format.
type Renderer interface {
	Render(w io.Writer, in Instrument) error
	Extension() string
	ContentType() string
}

// ForFormat returns the renderer for format; empty selects markdown.
func ForFormat(format string) (Renderer, error) {
	switch strings.ToLower(format) {
	case "", FormatMarkdown, "md":
		return Markdown{}, nil
	case FormatHTML:
		return HTML{md: goldmark.New()}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// Markdown renders the instrument as CommonMark.
type Markdown struct{}

func (Markdown) Extension() string   { return "md" }
func (Markdown) ContentType() string { return "text/markdown; charset=utf-8" }

func (Markdown) Render(w io.Writer, in Instrument) error {
	var b strings.Builder
	title := in.Title
	if title == "" {
		title = defaultTitle
	}
	fmt.Fprintf(&b, "# %s\n\n", escape(title))
	if in.Subtitle != "" {
		fmt.Fprintf(&b, "*%s*\n\n", escape(in.Subtitle))
	}
	b.WriteString("---\n\n")
	for _, q := range in.Questions {
		fmt.Fprintf(&b, "**Q%d:** %s\n\n", q.Number, escape(q.DisplayText))
		fmt.Fprintf(&b, "*\\[%s\\]*\n\n", strings.ToUpper(string(q.Category)))
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// HTML renders the markdown form through goldmark into a standalone page.
type HTML struct {
	md goldmark.Markdown
}

func (HTML) Extension() string   { return "html" }
func (HTML) ContentType() string { return "text/html; charset=utf-8" }

func (h HTML) Render(w io.Writer, in Instrument) error {
	var src bytes.Buffer
	if err := (Markdown{}).Render(&src, in); err != nil {
		return err
	}
	title := in.Title
	if title == "" {
		title = defaultTitle
	}
	if _, err := fmt.Fprintf(w, "<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n<title>%s</title>\n</head>\n<body>\n",
		html.EscapeString(title)); err != nil {
		return err
	}
	md := h.md
	if md == nil {
		md = goldmark.New()
	}
	if err := md.Convert(src.Bytes(), w); err != nil {
		return fmt.Errorf("render html: %w", err)
	}
	_, err := io.WriteString(w, "</body>\n</html>\n")
	return err
}

var mdEscaper = strings.NewReplacer(
	`\`, `\\`,
	"*", `\*`,
	"_", `\_`,
	"`", "\\`",
	"[", `\[`,
	"]", `\]`,
	"<", `\<`,
	"#", `\#`,
)

func escape(s string) string {
	return mdEscaper.Replace(s)
}
