package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
)

// ErrPreviewRender indicates Markdown preview rendering failed.
var ErrPreviewRender = errors.New("preview rendering failed")

// previewTemplate wraps goldmark's fragment output in a complete HTML5
// document for in-browser review.
const previewTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Preview</title>
</head>
<body>
%s
</body>
</html>`

// PreviewRenderer converts Markdown to browser-viewable HTML using goldmark.
// This is a review aid only; it plays no part in the conversion pipeline.
type PreviewRenderer struct {
	md goldmark.Markdown
}

// NewPreviewRenderer creates a PreviewRenderer with GFM extensions and
// syntax highlighting.
func NewPreviewRenderer() *PreviewRenderer {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			extension.Footnote,
			highlighting.NewHighlighting(
				highlighting.WithFormatOptions(
					chromahtml.WithClasses(true),
				),
			),
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			html.WithXHTML(),
			// WithUnsafe intentionally not enabled: previews render
			// user-uploaded content.
		),
	)
	return &PreviewRenderer{md: md}
}

// Render converts Markdown content to a standalone HTML5 document.
// Goldmark has no native context support, so cancellation uses the
// goroutine + select pattern.
func (r *PreviewRenderer) Render(ctx context.Context, content string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	type result struct {
		html string
		err  error
	}

	done := make(chan result, 1)

	go func() {
		var buf bytes.Buffer
		if err := r.md.Convert([]byte(content), &buf); err != nil {
			done <- result{err: fmt.Errorf("%w: %v", ErrPreviewRender, err)}
			return
		}
		done <- result{html: fmt.Sprintf(previewTemplate, buf.String())}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res := <-done:
		return res.html, res.err
	}
}
