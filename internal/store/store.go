package store

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/compose-spec/compose-go/v2/template"
	"github.com/sirupsen/logrus"

	"github.com/ecolog-dev/ecolog/internal/config"
	"github.com/ecolog-dev/ecolog/internal/filesystems"
	"github.com/ecolog-dev/ecolog/internal/resolver"
	"github.com/ecolog-dev/ecolog/internal/sources"
	"github.com/ecolog-dev/ecolog/internal/types"
)

// Entry is one resolved variable. Type here is the cheap provisional
// classification (number or string); consumers wanting the full
// semantic tag run the Classifier on Value.
type Entry struct {
	Value  string
	Type   string
	Source string
}

// Store parses the resolver's ordered file list into a variable
// mapping and caches it until invalidated. There is one logical
// writer: Load and Refresh are expected to run serially.
type Store struct {
	fs       filesystems.FileSystem
	resolver *resolver.Resolver
	vars     map[string]Entry
	log      logrus.FieldLogger
}

func New(fs filesystems.FileSystem, log logrus.FieldLogger) *Store {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Store{
		fs:       fs,
		resolver: resolver.New(fs),
		vars:     make(map[string]Entry),
		log:      log,
	}
}

// Resolver exposes the store's file resolver, mainly so a host can
// invalidate it together with the mapping.
func (s *Store) Resolver() *resolver.Resolver {
	return s.resolver
}

// Load fills the mapping from the resolved file list. When force is
// false and the mapping is already populated this is a no-op: the
// store is a parse-once cache, not a freshness guarantee.
//
// Files are processed in resolver priority order and the first
// assignment for a name wins, so the highest-priority file always
// supplies the value.
func (s *Store) Load(ctx context.Context, opts config.Options, force bool) error {
	if !force && len(s.vars) > 0 {
		return nil
	}

	s.vars = make(map[string]Entry)

	files, err := s.resolver.Find(opts.Path, opts.PreferredEnvironment)
	if err != nil {
		return fmt.Errorf("resolve env files: %w", err)
	}

	for _, file := range files {
		content, err := s.fs.ReadFile(file)
		if err != nil {
			// Vanished or unreadable files contribute nothing.
			s.log.Debugf("skipping %s: %v", file, err)
			continue
		}
		s.parseFile(file, string(content), opts)
	}

	if opts.Sources.Dockerfile {
		s.loadExtraSources(ctx, opts, sources.NewDockerfileSource())
	}

	return nil
}

// Refresh drops the resolver cache and the mapping, then reloads.
func (s *Store) Refresh(ctx context.Context, opts config.Options) error {
	s.resolver.Invalidate()
	s.vars = make(map[string]Entry)
	return s.Load(ctx, opts, true)
}

// Snapshot returns a copy of the current mapping.
func (s *Store) Snapshot() map[string]Entry {
	snapshot := make(map[string]Entry, len(s.vars))
	for name, entry := range s.vars {
		snapshot[name] = entry
	}
	return snapshot
}

// Get looks up one variable.
func (s *Store) Get(name string) (Entry, bool) {
	entry, ok := s.vars[name]
	return entry, ok
}

// Len reports how many variables are loaded.
func (s *Store) Len() int {
	return len(s.vars)
}

func (s *Store) parseFile(file, content string, opts config.Options) {
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSuffix(line, "\r")
		if line == "" || line[0] == '#' {
			continue
		}
		eq := strings.IndexByte(line, '=')
		if eq < 0 {
			continue
		}
		key := strings.TrimSpace(line[:eq])
		if key == "" {
			continue
		}
		if _, exists := s.vars[key]; exists {
			continue
		}

		value := unquote(strings.TrimSpace(line[eq+1:]))
		if opts.Interpolation {
			value = s.interpolate(value)
		}
		s.vars[key] = Entry{
			Value:  value,
			Type:   provisionalType(value),
			Source: file,
		}
	}
}

func (s *Store) loadExtraSources(ctx context.Context, opts config.Options, srcs ...sources.Source) {
	for entry, err := range s.fs.ReadDir(opts.Path) {
		if err != nil {
			s.log.Debugf("scanning %s for extra sources: %v", opts.Path, err)
			return
		}
		if entry.IsDir() {
			continue
		}
		for _, src := range srcs {
			if !src.CanHandle(entry.Name()) {
				continue
			}
			path := s.fs.Join(opts.Path, entry.Name())
			content, err := s.fs.ReadFile(path)
			if err != nil {
				continue
			}
			vars, err := src.Extract(ctx, path, content)
			if err != nil {
				s.log.Debugf("%s source on %s: %v", src.Name(), path, err)
				continue
			}
			for _, v := range vars {
				if _, exists := s.vars[v.Name]; exists {
					continue
				}
				s.vars[v.Name] = Entry{
					Value:  v.Value,
					Type:   provisionalType(v.Value),
					Source: fmt.Sprintf("%s:%s", src.Name(), path),
				}
			}
		}
	}
}

// interpolate resolves ${VAR} and $VAR references against entries
// loaded so far, falling back to the process environment. Failed
// substitutions keep the raw value.
func (s *Store) interpolate(value string) string {
	substituted, err := template.Substitute(value, func(name string) (string, bool) {
		if entry, ok := s.vars[name]; ok {
			return entry.Value, true
		}
		return os.LookupEnv(name)
	})
	if err != nil {
		s.log.Warnf("interpolation failed for %q: %v", value, err)
		return value
	}
	return substituted
}

// unquote strips one layer of matching surrounding double or single
// quotes. Unbalanced or absent quotes are left as-is.
func unquote(value string) string {
	if len(value) < 2 {
		return value
	}
	first, last := value[0], value[len(value)-1]
	if first == last && (first == '"' || first == '\'') {
		return value[1 : len(value)-1]
	}
	return value
}

func provisionalType(value string) string {
	if types.IsNumber(value) {
		return types.TypeNumber
	}
	return types.TypeString
}
