package driver

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"chirp/internal/project"
)

// Bump when ExportsPayload changes shape.
const exportCacheSchema uint16 = 1

// ExportCache keeps the pub-template exports of parsed files on disk,
// keyed by content digest, so repeated 'exports' queries over unchanged
// files skip the parse. Thread-safe.
type ExportCache struct {
	mu  sync.RWMutex
	dir string
}

// ExportEntry describes one pub template of a file.
type ExportEntry struct {
	Name   string
	Params []string
}

// ExportsPayload is the cached record for one file version.
type ExportsPayload struct {
	Schema  uint16
	Path    string
	Exports []ExportEntry
}

// OpenExportCache initializes the disk cache at the standard location.
func OpenExportCache(app string) (*ExportCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	dir := filepath.Join(base, app)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &ExportCache{dir: dir}, nil
}

func (c *ExportCache) pathFor(key project.Digest) string {
	return filepath.Join(c.dir, "exports", key.Hex()+".mp")
}

// Put serializes and writes a payload, replacing atomically.
func (c *ExportCache) Put(key project.Digest, payload *ExportsPayload) error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	defer os.Remove(f.Name())

	if err := msgpack.NewEncoder(f).Encode(payload); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(f.Name(), p)
}

// Get reads a payload back; a schema mismatch counts as a miss.
func (c *ExportCache) Get(key project.Digest, out *ExportsPayload) (bool, error) {
	if c == nil {
		return false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	defer f.Close()

	if err := msgpack.NewDecoder(f).Decode(out); err != nil {
		return false, fmt.Errorf("decode export cache: %w", err)
	}
	if out.Schema != exportCacheSchema {
		return false, nil
	}
	return true, nil
}

// DropAll invalidates the cache, useful after format changes.
func (c *ExportCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	old := c.dir + ".old-" + time.Now().Format("20060102150405")
	if err := os.Rename(c.dir, old); err != nil {
		return err
	}
	return os.RemoveAll(old)
}
