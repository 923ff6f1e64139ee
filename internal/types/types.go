package types

import "regexp"

// Validator runs after a structural pattern match. Returning false
// demotes the candidate to a non-match and evaluation moves on to the
// next type, so a value always classifies eventually.
type Validator interface {
	Validate(value string) bool
}

// Transformer normalizes a value once its type is confirmed.
type Transformer interface {
	Transform(value string) string
}

// ValidatorFunc adapts a plain function to the Validator interface.
type ValidatorFunc func(string) bool

func (f ValidatorFunc) Validate(value string) bool { return f(value) }

// TransformerFunc adapts a plain function to the Transformer interface.
type TransformerFunc func(string) string

func (f TransformerFunc) Transform(value string) string { return f(value) }

// RegexpValidator accepts values matching a secondary pattern.
type RegexpValidator struct {
	Pattern *regexp.Regexp
}

func (v RegexpValidator) Validate(value string) bool {
	return v.Pattern.MatchString(value)
}

// ExpandTransformer rewrites the whole value through a capture-group
// template ($1, ${name}) of the owning definition's pattern.
type ExpandTransformer struct {
	Pattern  *regexp.Regexp
	Template string
}

func (t ExpandTransformer) Transform(value string) string {
	match := t.Pattern.FindStringSubmatchIndex(value)
	if match == nil {
		return value
	}
	return string(t.Pattern.ExpandString(nil, t.Template, value, match))
}

// TypeDefinition describes one semantic value type: a structural
// pattern, an optional validator, and an optional transform. Immutable
// once registered for a configuration session.
type TypeDefinition struct {
	Name      string
	Pattern   *regexp.Regexp
	Validate  Validator
	Transform Transformer
}

// Match applies pattern, then validator, then transform. The returned
// string is the normalized value; ok reports a full match.
func (d TypeDefinition) Match(value string) (string, bool) {
	if d.Pattern == nil || !d.Pattern.MatchString(value) {
		return "", false
	}
	if d.Validate != nil && !d.Validate.Validate(value) {
		return "", false
	}
	if d.Transform != nil {
		value = d.Transform.Transform(value)
	}
	return value, true
}
