package filesystems

import (
	"fmt"
	"io/fs"
	"iter"
	"path"
	"sort"
	"strings"
	"time"
)

// MemoryFS implements FileSystem in memory for tests. It counts
// ReadDir calls so cache behavior can be asserted without touching the
// host filesystem.
type MemoryFS struct {
	files map[string][]byte
	dirs  map[string]bool

	readDirCalls int
}

// NewMemoryFS creates a new MemoryFS instance
func NewMemoryFS() *MemoryFS {
	return &MemoryFS{
		files: make(map[string][]byte),
		dirs:  make(map[string]bool),
	}
}

// AddFile adds a file to the memory filesystem
func (mfs *MemoryFS) AddFile(name string, content []byte) {
	mfs.files[path.Clean(name)] = content
	// Ensure parent directories exist
	dir := path.Dir(name)
	for dir != "." && dir != "/" {
		mfs.dirs[dir] = true
		dir = path.Dir(dir)
	}
}

// AddDir adds a directory to the memory filesystem
func (mfs *MemoryFS) AddDir(name string) {
	mfs.dirs[path.Clean(name)] = true
	dir := path.Dir(name)
	for dir != "." && dir != "/" {
		mfs.dirs[dir] = true
		dir = path.Dir(dir)
	}
}

// RemoveFile drops a file, simulating deletion between scans.
func (mfs *MemoryFS) RemoveFile(name string) {
	delete(mfs.files, path.Clean(name))
}

// ReadDirCalls reports how many directory scans have run.
func (mfs *MemoryFS) ReadDirCalls() int {
	return mfs.readDirCalls
}

func (mfs *MemoryFS) ReadFile(name string) ([]byte, error) {
	cleanName := path.Clean(name)
	content, exists := mfs.files[cleanName]
	if !exists {
		return nil, fmt.Errorf("file not found: %s", name)
	}
	return content, nil
}

func (mfs *MemoryFS) ReadDir(name string) iter.Seq2[DirEntry, error] {
	return func(yield func(DirEntry, error) bool) {
		mfs.readDirCalls++
		cleanName := path.Clean(name)

		if cleanName != "." && cleanName != "/" && !mfs.dirs[cleanName] {
			yield(nil, fmt.Errorf("directory not found: %s", name))
			return
		}

		prefix := cleanName
		if prefix != "." {
			prefix += "/"
		}

		// Collect direct children of the directory.
		entries := make([]string, 0)
		seen := make(map[string]bool)

		collect := func(p string) {
			if strings.HasPrefix(p, prefix) || (cleanName == "." && !strings.Contains(p, "/")) {
				remainder := p
				if cleanName != "." {
					remainder = strings.TrimPrefix(p, prefix)
				}
				if remainder != "" {
					childName := strings.Split(remainder, "/")[0]
					if !seen[childName] {
						entries = append(entries, childName)
						seen[childName] = true
					}
				}
			}
		}

		for filePath := range mfs.files {
			collect(filePath)
		}
		for dirPath := range mfs.dirs {
			collect(dirPath)
		}

		sort.Strings(entries)

		for _, entry := range entries {
			fullPath := entry
			if cleanName != "." {
				fullPath = path.Join(cleanName, entry)
			}

			isDir := mfs.dirs[fullPath]
			if !isDir {
				if _, isFile := mfs.files[fullPath]; !isFile {
					isDir = true
				}
			}

			dirEntry := &memoryDirEntry{
				name:     entry,
				isDir:    isDir,
				mfs:      mfs,
				fullPath: fullPath,
			}

			if !yield(dirEntry, nil) {
				return
			}
		}
	}
}

func (mfs *MemoryFS) Join(elem ...string) string {
	return path.Join(elem...)
}

func (mfs *MemoryFS) Base(p string) string {
	return path.Base(p)
}

func (mfs *MemoryFS) Dir(p string) string {
	return path.Dir(p)
}

type memoryDirEntry struct {
	name     string
	isDir    bool
	mfs      *MemoryFS
	fullPath string
}

func (e *memoryDirEntry) Name() string { return e.name }

func (e *memoryDirEntry) IsDir() bool { return e.isDir }

func (e *memoryDirEntry) Type() fs.FileMode {
	if e.isDir {
		return fs.ModeDir
	}
	return 0
}

func (e *memoryDirEntry) Info() (FileInfo, error) {
	if e.isDir {
		return &memoryFileInfo{
			name:    e.name,
			mode:    fs.ModeDir | 0755,
			modTime: time.Now(),
			isDir:   true,
		}, nil
	}
	content, exists := e.mfs.files[e.fullPath]
	if !exists {
		return nil, fmt.Errorf("file not found: %s", e.fullPath)
	}
	return &memoryFileInfo{
		name:    e.name,
		size:    int64(len(content)),
		mode:    0644,
		modTime: time.Now(),
	}, nil
}

type memoryFileInfo struct {
	name    string
	size    int64
	mode    fs.FileMode
	modTime time.Time
	isDir   bool
}

func (i *memoryFileInfo) Name() string       { return i.name }
func (i *memoryFileInfo) Size() int64        { return i.size }
func (i *memoryFileInfo) Mode() fs.FileMode  { return i.mode }
func (i *memoryFileInfo) ModTime() time.Time { return i.modTime }
func (i *memoryFileInfo) IsDir() bool        { return i.isDir }
func (i *memoryFileInfo) Sys() interface{}   { return nil }
