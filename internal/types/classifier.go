package types

import (
	"regexp"
	"strings"
)

// inlinePattern recognizes a still-joined KEY=value fragment, as seen
// when a whole dotenv line (rather than a split value) is handed to the
// classifier.
var inlinePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*=(.*)$`)

// Classifier maps a raw string to a semantic type tag using the
// registry's current state. It is pure: no I/O, no state of its own.
type Classifier struct {
	registry *Registry
}

func NewClassifier(registry *Registry) *Classifier {
	return &Classifier{registry: registry}
}

// Detect returns the type tag and the normalized value. Built-ins are
// tried in canonical order, then custom types in registration order;
// the first full match (pattern plus validator) wins. Values that
// match nothing classify as "string".
func (c *Classifier) Detect(raw string) (string, string) {
	// Inline KEY=value fragments resolve booleans without running the
	// full pipeline.
	if m := inlinePattern.FindStringSubmatch(raw); m != nil && c.registry.Enabled(TypeBoolean) {
		remainder := strings.TrimSpace(m[1])
		if IsBooleanLiteral(remainder) {
			return TypeBoolean, NormalizeBoolean(remainder)
		}
	}

	value := strings.TrimSpace(raw)

	for _, name := range BuiltinOrder {
		def, ok := c.registry.Builtin(name)
		if !ok {
			continue
		}
		if normalized, ok := def.Match(value); ok {
			return name, normalized
		}
	}

	for _, def := range c.registry.Customs() {
		if normalized, ok := def.Match(value); ok {
			return def.Name, normalized
		}
	}

	return TypeString, value
}
