// Package assets handles geometry data loading and caching.
package assets

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/Faultbox/orbitview/internal/logger"
)

// ErrNotFound is returned when no source holds the requested file.
var ErrNotFound = errors.New("asset not found")

//go:embed meshes
var embedded embed.FS

// Embedded returns the geometry bundled into the binary.
func Embedded() fs.FS {
	return embedded
}

type source struct {
	name string
	fsys fs.FS
}

// Manager resolves asset paths against a stack of file systems.
// Sources are searched in reverse order (last added = highest priority);
// the embedded meshes are always the lowest.
type Manager struct {
	sources []source
	cache   *Cache
	mu      sync.RWMutex
}

// NewManager creates a manager holding only the embedded meshes.
func NewManager() *Manager {
	m := &Manager{
		cache: NewCache(),
	}
	m.AddFS("embedded", embedded)
	return m
}

// AddFS adds a file system to the manager.
func (m *Manager) AddFS(name string, fsys fs.FS) {
	m.mu.Lock()
	m.sources = append(m.sources, source{name: name, fsys: fsys})
	m.mu.Unlock()
}

// AddDir adds a data directory. Missing directories are an error.
func (m *Manager) AddDir(dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("opening data dir %s: %w", dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("data path %s is not a directory", dir)
	}
	m.AddFS(dir, os.DirFS(dir))
	return nil
}

// AddDirs adds each existing directory and skips the rest with a warning.
// Later directories take priority over earlier ones.
func (m *Manager) AddDirs(dirs []string) {
	for _, dir := range dirs {
		if err := m.AddDir(dir); err != nil {
			logger.Warn("skipping data dir", zap.String("dir", dir), zap.Error(err))
			continue
		}
		logger.Debug("data dir added", zap.String("dir", dir))
	}
}

// Load returns the contents of name from the highest-priority source that
// has it. Names use forward slashes and are relative to each source root.
func (m *Manager) Load(name string) ([]byte, error) {
	name = path.Clean(filepath.ToSlash(name))
	name = strings.TrimPrefix(name, "./")

	// Check cache first
	if data, ok := m.cache.Get(name); ok {
		return data, nil
	}
	if !fs.ValidPath(name) {
		return nil, fmt.Errorf("invalid asset path %q: %w", name, ErrNotFound)
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	// Search sources in reverse order
	for i := len(m.sources) - 1; i >= 0; i-- {
		data, err := fs.ReadFile(m.sources[i].fsys, name)
		if err == nil {
			logger.Debug("asset loaded",
				zap.String("name", name),
				zap.String("source", m.sources[i].name),
				zap.Int("bytes", len(data)),
			)
			m.cache.Set(name, data)
			return data, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("reading %s from %s: %w", name, m.sources[i].name, err)
		}
	}

	return nil, fmt.Errorf("%s: %w", name, ErrNotFound)
}

// LoadFile reads a file from the OS file system, sharing the cache.
func (m *Manager) LoadFile(filename string) ([]byte, error) {
	key := "file:" + filename
	if data, ok := m.cache.Get(key); ok {
		return data, nil
	}

	data, err := os.ReadFile(filename)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%s: %w", filename, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", filename, err)
	}
	m.cache.Set(key, data)
	return data, nil
}

// Close drops all sources except the embedded meshes and clears the cache.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.sources = m.sources[:1]
	m.cache.Clear()
}

// Cache is a simple in-memory cache for loaded assets.
type Cache struct {
	data map[string][]byte
	mu   sync.Mutex

	// Stats
	hits   int
	misses int
}

// NewCache creates a new cache.
func NewCache() *Cache {
	return &Cache{
		data: make(map[string][]byte),
	}
}

// Get retrieves an item from cache.
func (c *Cache) Get(key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	data, ok := c.data[key]
	if ok {
		c.hits++
	} else {
		c.misses++
	}
	return data, ok
}

// Set stores an item in cache.
func (c *Cache) Set(key string, data []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = data
}

// Clear clears the cache.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data = make(map[string][]byte)
	c.hits = 0
	c.misses = 0
}

// Stats returns cache statistics.
func (c *Cache) Stats() (hits, misses int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits, c.misses
}
