package types

import (
	"regexp"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_DefaultsAllEnabled(t *testing.T) {
	r := NewRegistry(nil)
	for _, name := range BuiltinOrder {
		assert.True(t, r.Enabled(name), "built-in %q should start enabled", name)
	}
}

func TestRegistry_ConfigureIsFullReset(t *testing.T) {
	r := NewRegistry(nil)

	r.Configure(map[string]bool{"url": false}, map[string]CustomSpec{
		"semver": {Pattern: `^v\d+\.\d+\.\d+$`},
	})
	assert.False(t, r.Enabled(TypeURL))
	assert.Len(t, r.Customs(), 1)

	// Reconfiguring without the earlier settings restores the
	// defaults: no merge with prior state.
	r.Configure(nil, nil)
	assert.True(t, r.Enabled(TypeURL))
	assert.Empty(t, r.Customs())
}

func TestRegistry_UnknownToggleIgnored(t *testing.T) {
	r := NewRegistry(nil)
	r.Configure(map[string]bool{"no_such_type": false, "number": false}, nil)

	assert.False(t, r.Enabled(TypeNumber))
	for _, name := range BuiltinOrder {
		if name != TypeNumber {
			assert.True(t, r.Enabled(name))
		}
	}
}

func TestRegistry_ViperShapedToggles(t *testing.T) {
	// Config files surface per-type maps as map[string]any.
	r := NewRegistry(nil)
	r.Configure(map[string]any{"json": false, "ipv4": true}, nil)

	assert.False(t, r.Enabled(TypeJSON))
	assert.True(t, r.Enabled(TypeIPv4))
}

func TestRegistry_InvalidCustomSkippedWithWarning(t *testing.T) {
	logger, hook := test.NewNullLogger()
	r := NewRegistry(logger)

	r.Configure(nil, map[string]CustomSpec{
		"no_pattern": {Validate: `^x$`},
		"bad_regexp": {Pattern: `([`},
		"good":       {Pattern: `^ok$`},
	})

	customs := r.Customs()
	require.Len(t, customs, 1)
	assert.Equal(t, "good", customs[0].Name)

	warnings := 0
	for _, entry := range hook.AllEntries() {
		if entry.Level == logrus.WarnLevel {
			warnings++
		}
	}
	assert.Equal(t, 2, warnings)
}

func TestRegistry_LastRegisteredWins(t *testing.T) {
	r := NewRegistry(nil)

	require.NoError(t, r.Register(TypeDefinition{
		Name:    "tag",
		Pattern: regexp.MustCompile(`^a$`),
	}))
	require.NoError(t, r.Register(TypeDefinition{
		Name:    "other",
		Pattern: regexp.MustCompile(`^b$`),
	}))
	require.NoError(t, r.Register(TypeDefinition{
		Name:    "tag",
		Pattern: regexp.MustCompile(`^c$`),
	}))

	customs := r.Customs()
	require.Len(t, customs, 2)
	// The re-registration moved "tag" to the back with its new pattern.
	assert.Equal(t, "other", customs[0].Name)
	assert.Equal(t, "tag", customs[1].Name)
	_, ok := customs[1].Match("c")
	assert.True(t, ok)
	_, ok = customs[1].Match("a")
	assert.False(t, ok)
}

func TestRegistry_RegisterRejectsIncompleteDefinitions(t *testing.T) {
	r := NewRegistry(nil)
	assert.Error(t, r.Register(TypeDefinition{Pattern: regexp.MustCompile(`^x$`)}))
	assert.Error(t, r.Register(TypeDefinition{Name: "x"}))
}
