package export

import "gopkg.in/yaml.v3"

type YAMLExporter struct{}

func (e *YAMLExporter) Name() string {
	return "yaml"
}

func (e *YAMLExporter) Export(vars []Variable) ([]byte, error) {
	return yaml.Marshal(vars)
}

func NewYAMLExporter() Exporter {
	return &YAMLExporter{}
}
