package export

import "encoding/json"

type JSONExporter struct{}

func (e *JSONExporter) Name() string {
	return "json"
}

func (e *JSONExporter) Export(vars []Variable) ([]byte, error) {
	return json.MarshalIndent(vars, "", "  ")
}

func NewJSONExporter() Exporter {
	return &JSONExporter{}
}
