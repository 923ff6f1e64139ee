package types

import (
	"fmt"
	"regexp"

	"github.com/sirupsen/logrus"
)

// CustomSpec is the configuration-file form of a custom type: a
// required structural pattern plus optional secondary-pattern validator
// and capture-group transform template.
type CustomSpec struct {
	Pattern   string `mapstructure:"pattern" yaml:"pattern"`
	Validate  string `mapstructure:"validate" yaml:"validate"`
	Transform string `mapstructure:"transform" yaml:"transform"`
}

// Registry owns the built-in definitions plus whatever custom types the
// current configuration supplied. Configure is a full reset; there is
// no incremental merge.
type Registry struct {
	builtins map[string]TypeDefinition
	enabled  map[string]bool

	// customs keeps registration order alongside the name lookup so
	// classification priority among custom types is deterministic.
	customs     map[string]TypeDefinition
	customOrder []string
	customsOff  bool

	log logrus.FieldLogger
}

// NewRegistry returns a registry with every built-in enabled and no
// custom types.
func NewRegistry(log logrus.FieldLogger) *Registry {
	if log == nil {
		log = logrus.StandardLogger()
	}
	r := &Registry{log: log}
	r.reset()
	return r
}

func (r *Registry) reset() {
	r.builtins = Builtins()
	r.enabled = make(map[string]bool, len(BuiltinOrder))
	for _, name := range BuiltinOrder {
		r.enabled[name] = true
	}
	r.customs = make(map[string]TypeDefinition)
	r.customOrder = nil
	r.customsOff = false
}

// Configure replaces the registry state wholesale. types may be nil
// (keep everything enabled), a bool, or a map of per-type flags;
// unknown names in the map are ignored. false disables built-ins and
// custom classification both, leaving only bare number/string
// detection. Invalid custom specs are logged and skipped, never fatal.
func (r *Registry) Configure(types any, customs map[string]CustomSpec) {
	r.reset()

	switch t := types.(type) {
	case nil:
	case bool:
		if !t {
			for _, name := range BuiltinOrder {
				r.enabled[name] = name == TypeNumber
			}
			r.customsOff = true
		}
	case map[string]bool:
		for name, on := range t {
			if _, known := r.enabled[name]; known {
				r.enabled[name] = on
			}
		}
	case map[string]any:
		for name, v := range t {
			on, ok := v.(bool)
			if !ok {
				r.log.Warnf("type toggle %q: expected a boolean, got %T", name, v)
				continue
			}
			if _, known := r.enabled[name]; known {
				r.enabled[name] = on
			}
		}
	default:
		r.log.Warnf("types option: expected bool or map, got %T", types)
	}

	for name, spec := range customs {
		def, err := compileCustom(name, spec)
		if err != nil {
			r.log.Warnf("custom type %q skipped: %v", name, err)
			continue
		}
		r.install(def)
	}
}

// Register installs a custom type built in code, e.g. with closure
// validators. Last registration wins on a name collision.
func (r *Registry) Register(def TypeDefinition) error {
	if def.Name == "" {
		return fmt.Errorf("custom type has no name")
	}
	if def.Pattern == nil {
		return fmt.Errorf("custom type %q has no pattern", def.Name)
	}
	r.install(def)
	return nil
}

func (r *Registry) install(def TypeDefinition) {
	if _, exists := r.customs[def.Name]; exists {
		for i, name := range r.customOrder {
			if name == def.Name {
				r.customOrder = append(r.customOrder[:i], r.customOrder[i+1:]...)
				break
			}
		}
	}
	r.customs[def.Name] = def
	r.customOrder = append(r.customOrder, def.Name)
}

func compileCustom(name string, spec CustomSpec) (TypeDefinition, error) {
	if spec.Pattern == "" {
		return TypeDefinition{}, fmt.Errorf("missing pattern")
	}
	pattern, err := regexp.Compile(spec.Pattern)
	if err != nil {
		return TypeDefinition{}, fmt.Errorf("invalid pattern: %w", err)
	}
	def := TypeDefinition{Name: name, Pattern: pattern}
	if spec.Validate != "" {
		validate, err := regexp.Compile(spec.Validate)
		if err != nil {
			return TypeDefinition{}, fmt.Errorf("invalid validate pattern: %w", err)
		}
		def.Validate = RegexpValidator{Pattern: validate}
	}
	if spec.Transform != "" {
		def.Transform = ExpandTransformer{Pattern: pattern, Template: spec.Transform}
	}
	return def, nil
}

// Enabled reports whether the named built-in participates in
// classification.
func (r *Registry) Enabled(name string) bool {
	return r.enabled[name]
}

// Builtin returns the definition for an enabled built-in type.
func (r *Registry) Builtin(name string) (TypeDefinition, bool) {
	if !r.enabled[name] {
		return TypeDefinition{}, false
	}
	def, ok := r.builtins[name]
	return def, ok
}

// Customs returns the custom definitions in registration order. Empty
// when classification is disabled outright.
func (r *Registry) Customs() []TypeDefinition {
	if r.customsOff {
		return nil
	}
	defs := make([]TypeDefinition, 0, len(r.customOrder))
	for _, name := range r.customOrder {
		defs = append(defs, r.customs[name])
	}
	return defs
}
