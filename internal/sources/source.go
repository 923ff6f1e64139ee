package sources

import "context"

// Var is one variable contributed by a secondary source.
type Var struct {
	Name  string
	Value string
}

// Source extracts environment variables from files outside the .env
// naming convention. Sources contribute at the lowest priority: a
// variable already present in the store is never overwritten.
type Source interface {
	// Name identifies the source in an entry's Source field.
	Name() string

	// CanHandle returns true if this source can process the given file
	CanHandle(filename string) bool

	// Extract environment variables from file content
	Extract(ctx context.Context, filename string, content []byte) ([]Var, error)
}
