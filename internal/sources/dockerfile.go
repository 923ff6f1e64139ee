package sources

import (
	"bytes"
	"context"
	"strings"

	"github.com/moby/buildkit/frontend/dockerfile/parser"
)

// DockerfileSource reads ENV instructions out of a Dockerfile.
type DockerfileSource struct{}

func NewDockerfileSource() *DockerfileSource {
	return &DockerfileSource{}
}

func (d *DockerfileSource) Name() string {
	return "dockerfile"
}

func (d *DockerfileSource) CanHandle(filename string) bool {
	name := strings.ToLower(filename)
	return name == "dockerfile" || strings.HasSuffix(name, ".dockerfile") || strings.HasPrefix(name, "dockerfile.")
}

func (d *DockerfileSource) Extract(ctx context.Context, filename string, content []byte) ([]Var, error) {
	ast, err := parser.Parse(bytes.NewReader(content))
	if err != nil {
		return nil, err
	}

	var vars []Var
	for _, child := range ast.AST.Children {
		if strings.ToUpper(child.Value) == "ENV" {
			vars = append(vars, parseEnvNode(child)...)
		}
	}
	return vars, nil
}

func parseEnvNode(node *parser.Node) []Var {
	var args []string
	for n := node.Next; n != nil; n = n.Next {
		args = append(args, n.Value)
	}

	// The parser emits alternating key/value tokens for both the
	// ENV k=v and the legacy ENV k v forms. A token that still carries
	// its own k=v stands alone.
	var vars []Var
	for i := 0; i < len(args); {
		if strings.Contains(args[i], "=") {
			parts := strings.SplitN(args[i], "=", 2)
			vars = append(vars, Var{Name: parts[0], Value: parts[1]})
			i++
			continue
		}
		if i+1 < len(args) {
			vars = append(vars, Var{Name: args[i], Value: args[i+1]})
		}
		i += 2
	}
	return vars
}
