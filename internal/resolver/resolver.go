package resolver

import (
	"fmt"
	"regexp"
	"sort"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/ecolog-dev/ecolog/internal/filesystems"
)

// envFilePattern recognizes the dotenv naming convention: the bare
// .env file or .env.<suffix> where the suffix has no further dots.
var envFilePattern = regexp.MustCompile(`^\.env(\.[^.]+)?$`)

// Resolver discovers env files in a workspace directory and orders
// them by priority. Results are memoized per (path, preferred
// environment); any change in either key forces a rescan.
type Resolver struct {
	fs    filesystems.FileSystem
	group singleflight.Group

	mu     sync.Mutex
	key    cacheKey
	files  []string
	cached bool
}

type cacheKey struct {
	path      string
	preferred string
}

func New(fs filesystems.FileSystem) *Resolver {
	return &Resolver{fs: fs}
}

// Find returns the env files under path in priority order. Identical
// successive calls return the memoized list without rescanning;
// concurrent first fills collapse into a single scan.
func (r *Resolver) Find(path, preferred string) ([]string, error) {
	key := cacheKey{path: path, preferred: preferred}

	r.mu.Lock()
	if r.cached && r.key == key {
		files := r.files
		r.mu.Unlock()
		return files, nil
	}
	r.mu.Unlock()

	result, err, _ := r.group.Do(fmt.Sprintf("%s\x00%s", path, preferred), func() (interface{}, error) {
		files, err := r.scan(path, preferred)
		if err != nil {
			return nil, err
		}
		r.mu.Lock()
		r.key = key
		r.files = files
		r.cached = true
		r.mu.Unlock()
		return files, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]string), nil
}

// Invalidate drops the memoized list so the next Find rescans.
func (r *Resolver) Invalidate() {
	r.mu.Lock()
	r.cached = false
	r.files = nil
	r.mu.Unlock()
}

func (r *Resolver) scan(path, preferred string) ([]string, error) {
	var names []string
	for entry, err := range r.fs.ReadDir(path) {
		if err != nil {
			return nil, fmt.Errorf("scan %s: %w", path, err)
		}
		if entry.IsDir() {
			continue
		}
		if envFilePattern.MatchString(entry.Name()) {
			names = append(names, entry.Name())
		}
	}

	sort.Slice(names, func(i, j int) bool {
		return less(names[i], names[j], preferred)
	})

	files := make([]string, len(names))
	for i, name := range names {
		files[i] = r.fs.Join(path, name)
	}
	return files, nil
}

// less is the priority comparator: the preferred environment's file
// first, then the bare .env, then ascending lexicographic order.
func less(a, b, preferred string) bool {
	if preferred != "" {
		want := ".env." + preferred
		if (a == want) != (b == want) {
			return a == want
		}
	}
	if (a == ".env") != (b == ".env") {
		return a == ".env"
	}
	return a < b
}
