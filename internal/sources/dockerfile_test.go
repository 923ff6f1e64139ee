package sources

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDockerfileSource_CanHandle(t *testing.T) {
	src := NewDockerfileSource()

	assert.True(t, src.CanHandle("Dockerfile"))
	assert.True(t, src.CanHandle("dockerfile"))
	assert.True(t, src.CanHandle("Dockerfile.dev"))
	assert.True(t, src.CanHandle("api.dockerfile"))
	assert.False(t, src.CanHandle(".env"))
	assert.False(t, src.CanHandle("docker-compose.yml"))
}

func TestDockerfileSource_ExtractEnv(t *testing.T) {
	src := NewDockerfileSource()

	content := []byte(`FROM golang:1.25
ENV PORT=8080 GIN_MODE=release
ENV LEGACY_NAME legacy value
RUN echo hi
`)

	vars, err := src.Extract(context.Background(), "Dockerfile", content)
	require.NoError(t, err)

	byName := make(map[string]string, len(vars))
	for _, v := range vars {
		byName[v.Name] = v.Value
	}
	assert.Equal(t, "8080", byName["PORT"])
	assert.Equal(t, "release", byName["GIN_MODE"])
	assert.Equal(t, "legacy value", byName["LEGACY_NAME"])
}

func TestDockerfileSource_ExtractBadContent(t *testing.T) {
	src := NewDockerfileSource()

	vars, err := src.Extract(context.Background(), "Dockerfile", []byte("FROM alpine\nRUN true\n"))
	require.NoError(t, err)
	assert.Empty(t, vars)
}
