package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
)

const (
	defaultFileMode = 0644
	defaultDirMode  = 0755
)

// WriteAtomic persists the report at path in one rename, so a reader
// polling the file never observes a half-written report. The parent
// directory is created if needed.
func WriteAtomic(path string, r *Report) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("report: marshal: %w", err)
	}
	data = append(data, '\n')

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, defaultDirMode); err != nil {
		return fmt.Errorf("report: mkdir %s: %w", dir, err)
	}

	tmp := fmt.Sprintf("%s.tmp-%s", path, uuid.NewString())
	f, err := os.OpenFile(tmp, os.O_CREATE|os.O_EXCL|os.O_WRONLY, defaultFileMode)
	if err != nil {
		return fmt.Errorf("report: create temp: %w", err)
	}

	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("report: write temp: %w", err)
	}
	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("report: sync temp: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("report: close temp: %w", err)
	}

	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("report: replace %s: %w", path, err)
	}
	return nil
}

// Load reads a report file written by WriteAtomic.
func Load(path string) (*Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("report: read %s: %w", path, err)
	}
	var r Report
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("report: decode %s: %w", path, err)
	}
	return &r, nil
}

// Cache hands out the current report, reloading it whenever the file's
// modification time advances. Readers poll; the writer only ever replaces
// the whole file, so no locking protocol is needed with the producer.
type Cache struct {
	mu     sync.Mutex
	path   string
	mtime  time.Time
	loaded *Report
}

// NewCache creates a cache for the report at path. Nothing is read until
// the first Get.
func NewCache(path string) *Cache {
	return &Cache{path: path}
}

// Path returns the watched report path.
func (c *Cache) Path() string { return c.path }

// Get returns the current report, reloading if the file changed since the
// last call.
func (c *Cache) Get() (*Report, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	info, err := os.Stat(c.path)
	if err != nil {
		return nil, fmt.Errorf("report: stat %s: %w", c.path, err)
	}

	if c.loaded != nil && !info.ModTime().After(c.mtime) {
		return c.loaded, nil
	}

	r, err := Load(c.path)
	if err != nil {
		return nil, err
	}
	c.loaded = r
	c.mtime = info.ModTime()
	return r, nil
}
