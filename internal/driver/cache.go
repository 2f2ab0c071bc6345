package driver

import (
	"errors"
	"os"
	"path/filepath"
	"sync"

	"github.com/vmihailenco/msgpack/v5"

	"fstump/internal/project"
)

// Current schema version - increment when CacheEntry format changes
const cacheSchemaVersion uint16 = 1

// Cache хранит отпечатки собранных единиц, чтобы batch build мог пропустить
// неизменившиеся. Thread-safe for concurrent access.
type Cache struct {
	mu  sync.RWMutex
	dir string
}

// CacheEntry records what produced an output file.
type CacheEntry struct {
	Schema      uint16
	Output      string
	Fingerprint project.Digest
	Words       int
	Capacity    int
}

// OpenCache creates dir when needed.
func OpenCache(dir string) (*Cache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Cache{dir: dir}, nil
}

func (c *Cache) pathFor(output string) string {
	key := project.DigestOf([]byte(output))
	return filepath.Join(c.dir, key.String()+".mp")
}

// Put serializes and writes an entry, replacing the file atomically.
func (c *Cache) Put(entry *CacheEntry) error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	entry.Schema = cacheSchemaVersion
	p := c.pathFor(entry.Output)
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	tmp := f.Name()
	if err := msgpack.NewEncoder(f).Encode(entry); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	// Атомарная замена
	return os.Rename(tmp, p)
}

// Get reads the entry for output. A missing entry or one from another
// schema reports ok=false.
func (c *Cache) Get(output string) (entry CacheEntry, ok bool, err error) {
	if c == nil {
		return CacheEntry{}, false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(output))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return CacheEntry{}, false, nil
		}
		return CacheEntry{}, false, err
	}
	defer f.Close()
	if err := msgpack.NewDecoder(f).Decode(&entry); err != nil {
		return CacheEntry{}, false, err
	}
	if entry.Schema != cacheSchemaVersion || entry.Output != output {
		return CacheEntry{}, false, nil
	}
	return entry, true, nil
}

// Fresh reports whether output is up to date for fingerprint.
func (c *Cache) Fresh(output string, fingerprint project.Digest) (CacheEntry, bool) {
	entry, ok, err := c.Get(output)
	if err != nil || !ok || entry.Fingerprint != fingerprint {
		return CacheEntry{}, false
	}
	if _, err := os.Stat(output); err != nil {
		return CacheEntry{}, false
	}
	return entry, true
}
