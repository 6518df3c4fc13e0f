package logsource

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DefaultMaxLineSize is the maximum size (in bytes) of a single log line.
const DefaultMaxLineSize = 1024 * 1024 // 1MB

// File is a finite, line-oriented log source backed by one file. Unlike a
// streaming network source it is driven by the caller: EachLine scans on
// the calling goroutine and returns at EOF or context cancellation.
type File struct {
	path        string
	maxLineSize int
}

// NewFile creates a file source for path. The file is not opened until
// EachLine runs.
func NewFile(path string) *File {
	return &File{path: path, maxLineSize: DefaultMaxLineSize}
}

// Path returns the underlying file path.
func (f *File) Path() string { return f.path }

// Name returns the source name used as the report key: the base name
// without its extension (logs/server1.log -> server1).
func (f *File) Name() string { return SourceName(f.path) }

// EachLine calls fn for every line in the file. A missing or unreadable
// file is an error; the caller treats it as fatal for the whole run.
func (f *File) EachLine(ctx context.Context, fn func(line string)) error {
	handle, err := os.Open(f.path)
	if err != nil {
		return fmt.Errorf("logsource: open %s: %w", f.path, err)
	}
	defer handle.Close()

	scanner := bufio.NewScanner(handle)
	scanner.Buffer(make([]byte, f.maxLineSize), f.maxLineSize)

	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		fn(scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("logsource: read %s: %w", f.path, err)
	}
	return nil
}

// SourceName derives the report key for a log path: the base name without
// its extension.
func SourceName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
