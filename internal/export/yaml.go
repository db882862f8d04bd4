package export

import (
	"io"

	"gopkg.in/yaml.v3"

	"mentor-ai/backend/internal/model"
)

type YAMLExporter struct{}

func (e *YAMLExporter) Export(conv *model.Conversation, w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	defer func() { _ = enc.Close() }()

	return enc.Encode(conv)
}

func (e *YAMLExporter) Extension() string {
	return "yaml"
}

func (e *YAMLExporter) ContentType() string {
	return "application/yaml"
}
