package export

import "fmt"

// Variable is the export form of one resolved variable, carrying the
// full semantic type tag.
type Variable struct {
	Name   string `json:"name" yaml:"name" toml:"name"`
	Value  string `json:"value" yaml:"value" toml:"value"`
	Type   string `json:"type" yaml:"type" toml:"type"`
	Source string `json:"source" yaml:"source" toml:"source"`
}

// Exporter serializes a variable list into one output format.
type Exporter interface {
	Name() string
	Export(vars []Variable) ([]byte, error)
}

// ByFormat returns the exporter for a format name.
func ByFormat(format string) (Exporter, error) {
	switch format {
	case "json":
		return NewJSONExporter(), nil
	case "yaml":
		return NewYAMLExporter(), nil
	case "toml":
		return NewTOMLExporter(), nil
	case "dotenv":
		return NewDotEnvExporter(), nil
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}
