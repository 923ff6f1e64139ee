package export

import (
	"bytes"

	"github.com/BurntSushi/toml"
)

type TOMLExporter struct{}

func (e *TOMLExporter) Name() string {
	return "toml"
}

func (e *TOMLExporter) Export(vars []Variable) ([]byte, error) {
	// TOML needs a table at the top level.
	doc := struct {
		Variables []Variable `toml:"variables"`
	}{Variables: vars}

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(doc); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func NewTOMLExporter() Exporter {
	return &TOMLExporter{}
}
