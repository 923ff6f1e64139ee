package config

import (
	"fmt"
	"os"

	"github.com/spf13/viper"

	"github.com/ecolog-dev/ecolog/internal/types"
)

const defaultShelterKeep = 2

// Sources toggles the secondary variable sources that supplement the
// .env files.
type Sources struct {
	Dockerfile bool `mapstructure:"dockerfile"`
}

// Options is the full setup surface. A fresh Options is applied
// wholesale on every setup: there is no incremental merge with the
// previous configuration.
type Options struct {
	// Types is nil, a bool, or a per-name map of bools. false disables
	// classification entirely, leaving bare number/string detection.
	Types any

	// CustomTypes maps a type name to its definition. Entries without
	// a pattern are skipped with a warning.
	CustomTypes map[string]types.CustomSpec

	// Path is the directory scanned for env files.
	Path string

	// PreferredEnvironment elevates .env.<suffix> to top priority.
	PreferredEnvironment string

	// Interpolation resolves ${VAR} references in values against
	// already-loaded entries and the process environment.
	Interpolation bool

	// ShelterKeep is how many leading characters stay visible when a
	// sensitive value is masked.
	ShelterKeep int

	Sources Sources
}

// Default returns the zero configuration: everything enabled, scan the
// working directory.
func Default() Options {
	wd, err := os.Getwd()
	if err != nil {
		wd = "."
	}
	return Options{Path: wd, ShelterKeep: defaultShelterKeep}
}

// FromViper reads the setup surface out of a loaded viper instance.
func FromViper(v *viper.Viper) (Options, error) {
	opts := Default()

	if v.IsSet("types") {
		opts.Types = v.Get("types")
	}
	if v.IsSet("custom_types") {
		if err := v.UnmarshalKey("custom_types", &opts.CustomTypes); err != nil {
			return opts, fmt.Errorf("custom_types: %w", err)
		}
	}
	if path := v.GetString("path"); path != "" {
		opts.Path = path
	}
	opts.PreferredEnvironment = v.GetString("preferred_environment")
	opts.Interpolation = v.GetBool("interpolation")
	if v.IsSet("shelter_keep") {
		opts.ShelterKeep = v.GetInt("shelter_keep")
	}
	if err := v.UnmarshalKey("sources", &opts.Sources); err != nil {
		return opts, fmt.Errorf("sources: %w", err)
	}

	return opts, nil
}
