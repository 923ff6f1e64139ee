package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecolog-dev/ecolog/internal/config"
	"github.com/ecolog-dev/ecolog/internal/filesystems"
)

func testOptions() config.Options {
	return config.Options{Path: "workspace"}
}

func newTestStore(files map[string]string) (*Store, *filesystems.MemoryFS) {
	fs := filesystems.NewMemoryFS()
	fs.AddDir("workspace")
	for name, content := range files {
		fs.AddFile("workspace/"+name, []byte(content))
	}
	return New(fs, nil), fs
}

func TestLoad_ParsesLines(t *testing.T) {
	s, _ := newTestStore(map[string]string{
		".env": "# comment\n" +
			"\n" +
			"PORT=3000\n" +
			"  NAME  =plain value\n" +
			"EMPTY=\n" +
			"no_equals_line\n" +
			"QUOTED=\"abc\"\n" +
			"SINGLE='xyz'\n" +
			"UNBALANCED=\"abc\n",
	})

	require.NoError(t, s.Load(context.Background(), testOptions(), false))

	entry, ok := s.Get("PORT")
	require.True(t, ok)
	assert.Equal(t, "3000", entry.Value)
	assert.Equal(t, "number", entry.Type)
	assert.Equal(t, "workspace/.env", entry.Source)

	entry, ok = s.Get("NAME")
	require.True(t, ok, "keys are trimmed of surrounding whitespace")
	assert.Equal(t, "plain value", entry.Value)
	assert.Equal(t, "string", entry.Type)

	entry, ok = s.Get("EMPTY")
	require.True(t, ok)
	assert.Equal(t, "", entry.Value)

	_, ok = s.Get("no_equals_line")
	assert.False(t, ok)

	entry, _ = s.Get("QUOTED")
	assert.Equal(t, "abc", entry.Value, "one layer of double quotes is stripped")

	entry, _ = s.Get("SINGLE")
	assert.Equal(t, "xyz", entry.Value, "one layer of single quotes is stripped")

	entry, _ = s.Get("UNBALANCED")
	assert.Equal(t, `"abc`, entry.Value, "unbalanced quotes are left as-is")
}

func TestLoad_HighestPriorityFileWins(t *testing.T) {
	s, _ := newTestStore(map[string]string{
		".env":            "FOO=1\nONLY_BASE=here\n",
		".env.production": "FOO=2\n",
	})

	opts := testOptions()
	opts.PreferredEnvironment = "production"
	require.NoError(t, s.Load(context.Background(), opts, false))

	// .env.production resolves first and its assignment sticks.
	entry, ok := s.Get("FOO")
	require.True(t, ok)
	assert.Equal(t, "2", entry.Value)
	assert.Equal(t, "workspace/.env.production", entry.Source)

	entry, ok = s.Get("ONLY_BASE")
	require.True(t, ok)
	assert.Equal(t, "workspace/.env", entry.Source)
}

func TestLoad_BareEnvWinsWithoutPreference(t *testing.T) {
	s, _ := newTestStore(map[string]string{
		".env":       "FOO=base\n",
		".env.local": "FOO=local\n",
	})

	require.NoError(t, s.Load(context.Background(), testOptions(), false))

	entry, _ := s.Get("FOO")
	assert.Equal(t, "base", entry.Value)
}

func TestLoad_IsParseOnceCache(t *testing.T) {
	s, fs := newTestStore(map[string]string{".env": "FOO=1\n"})
	require.NoError(t, s.Load(context.Background(), testOptions(), false))

	fs.AddFile("workspace/.env", []byte("FOO=2\n"))

	// Non-forced load with a populated mapping is a no-op, even though
	// disk has changed.
	require.NoError(t, s.Load(context.Background(), testOptions(), false))
	entry, _ := s.Get("FOO")
	assert.Equal(t, "1", entry.Value)

	// A forced load reparses.
	require.NoError(t, s.Load(context.Background(), testOptions(), true))
	entry, _ = s.Get("FOO")
	assert.Equal(t, "2", entry.Value)
}

func TestRefresh_InvalidatesResolverAndMapping(t *testing.T) {
	s, fs := newTestStore(map[string]string{".env": "FOO=1\n"})
	require.NoError(t, s.Load(context.Background(), testOptions(), false))
	require.Equal(t, 1, s.Len())

	fs.AddFile("workspace/.env.staging", []byte("BAR=2\n"))

	// A plain forced load still uses the cached file list.
	require.NoError(t, s.Load(context.Background(), testOptions(), true))
	_, ok := s.Get("BAR")
	assert.False(t, ok)

	require.NoError(t, s.Refresh(context.Background(), testOptions()))
	_, ok = s.Get("BAR")
	assert.True(t, ok)
}

func TestLoad_SkipsUnreadableFiles(t *testing.T) {
	s, fs := newTestStore(map[string]string{
		".env":       "FOO=1\n",
		".env.local": "BAR=2\n",
	})

	// Resolve the file list, then delete a file before parsing.
	require.NoError(t, s.Load(context.Background(), testOptions(), false))
	fs.RemoveFile("workspace/.env.local")

	require.NoError(t, s.Load(context.Background(), testOptions(), true))
	_, ok := s.Get("FOO")
	assert.True(t, ok)
	_, ok = s.Get("BAR")
	assert.False(t, ok, "vanished file contributes no entries and raises no error")
}

func TestLoad_Interpolation(t *testing.T) {
	s, _ := newTestStore(map[string]string{
		".env": "DB_HOST=db.internal\n" +
			"DB_URL=postgres://${DB_HOST}:5432/app\n" +
			"HOME_DIR=$HOME\n",
	})

	t.Setenv("HOME", "/home/tester")

	opts := testOptions()
	opts.Interpolation = true
	require.NoError(t, s.Load(context.Background(), opts, false))

	entry, _ := s.Get("DB_URL")
	assert.Equal(t, "postgres://db.internal:5432/app", entry.Value)

	entry, _ = s.Get("HOME_DIR")
	assert.Equal(t, "/home/tester", entry.Value)
}

func TestLoad_InterpolationOffByDefault(t *testing.T) {
	s, _ := newTestStore(map[string]string{
		".env": "DB_HOST=db.internal\nDB_URL=postgres://${DB_HOST}/app\n",
	})

	require.NoError(t, s.Load(context.Background(), testOptions(), false))

	entry, _ := s.Get("DB_URL")
	assert.Equal(t, "postgres://${DB_HOST}/app", entry.Value)
}

func TestLoad_DockerfileSource(t *testing.T) {
	s, fs := newTestStore(map[string]string{
		".env": "PORT=3000\n",
	})
	fs.AddFile("workspace/Dockerfile", []byte("FROM alpine\nENV PORT=9999 NODE_ENV=production\n"))

	opts := testOptions()
	opts.Sources.Dockerfile = true
	require.NoError(t, s.Load(context.Background(), opts, false))

	// Dockerfile entries rank below every env file.
	entry, _ := s.Get("PORT")
	assert.Equal(t, "3000", entry.Value)

	entry, ok := s.Get("NODE_ENV")
	require.True(t, ok)
	assert.Equal(t, "production", entry.Value)
	assert.Equal(t, "dockerfile:workspace/Dockerfile", entry.Source)
}

func TestSnapshot_IsACopy(t *testing.T) {
	s, _ := newTestStore(map[string]string{".env": "FOO=1\n"})
	require.NoError(t, s.Load(context.Background(), testOptions(), false))

	snapshot := s.Snapshot()
	snapshot["FOO"] = Entry{Value: "tampered"}

	entry, _ := s.Get("FOO")
	assert.Equal(t, "1", entry.Value)
}
