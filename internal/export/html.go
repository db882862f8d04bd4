package export

import (
	"bytes"
	"fmt"
	"html"
	"io"
	"sync"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"mentor-ai/backend/internal/model"
)

var (
	markdownOnce     sync.Once
	markdownRenderer goldmark.Markdown
)

func getMarkdown() goldmark.Markdown {
	markdownOnce.Do(func() {
		markdownRenderer = goldmark.New(goldmark.WithExtensions(extension.GFM))
	})
	return markdownRenderer
}

// HTMLExporter renders the markdown transcript into a standalone page.
// Raw HTML inside message content is not passed through.
type HTMLExporter struct{}

func (e *HTMLExporter) Export(conv *model.Conversation, w io.Writer) error {
	var md bytes.Buffer
	if err := (&MarkdownExporter{}).Export(conv, &md); err != nil {
		return err
	}

	var body bytes.Buffer
	if err := getMarkdown().Convert(md.Bytes(), &body); err != nil {
		return fmt.Errorf("could not render markdown: %w", err)
	}

	_, err := fmt.Fprintf(w, "<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n<title>%s</title>\n</head>\n<body>\n%s</body>\n</html>\n",
		html.EscapeString(conv.Title), body.String())
	return err
}

func (e *HTMLExporter) Extension() string {
	return "html"
}

func (e *HTMLExporter) ContentType() string {
	return "text/html; charset=utf-8"
}
