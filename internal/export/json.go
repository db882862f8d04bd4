package export

import (
	"encoding/json"
	"io"

	"mentor-ai/backend/internal/model"
)

// JSONExporter writes the full snapshot, pretty-printed. Its output is what
// import accepts.
type JSONExporter struct{}

func (e *JSONExporter) Export(conv *model.Conversation, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(conv)
}

func (e *JSONExporter) Extension() string {
	return "json"
}

func (e *JSONExporter) ContentType() string {
	return "application/json"
}
