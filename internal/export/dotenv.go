package export

import "github.com/joho/godotenv"

// DotEnvExporter writes variables back out as KEY=VALUE lines, e.g.
// for piping into another shell.
type DotEnvExporter struct{}

func (e *DotEnvExporter) Name() string {
	return "dotenv"
}

func (e *DotEnvExporter) Export(vars []Variable) ([]byte, error) {
	env := make(map[string]string, len(vars))
	for _, v := range vars {
		env[v.Name] = v.Value
	}
	out, err := godotenv.Marshal(env)
	if err != nil {
		return nil, err
	}
	return []byte(out + "\n"), nil
}

func NewDotEnvExporter() Exporter {
	return &DotEnvExporter{}
}
