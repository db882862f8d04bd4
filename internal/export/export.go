// Package export renders conversations in the formats offered for download.
package export

import (
	"fmt"
	"io"

	apperrors "mentor-ai/backend/internal/errors"
	"mentor-ai/backend/internal/model"
)

// Exporter writes a conversation in one format.
type Exporter interface {
	Export(conv *model.Conversation, w io.Writer) error
	Extension() string
	ContentType() string
}

// NewExporter returns the exporter for format.
func NewExporter(format string) (Exporter, error) {
	switch format {
	case "md", "markdown":
		return &MarkdownExporter{}, nil
	case "json", "":
		return &JSONExporter{}, nil
	case "yaml", "yml":
		return &YAMLExporter{}, nil
	case "html":
		return &HTMLExporter{}, nil
	default:
		return nil, fmt.Errorf("%w: unsupported export format %q (supported: md, json, yaml, html)", apperrors.ErrValidation, format)
	}
}
