package registry

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/UberPyro/ChannelSorter2/types"
)

// File is a category registry backed by a flat text file.
//
// The file holds one integer category identifier per line, in registration
// order. This format is shared with external tooling and must not change.
// Reads and writes are serialized by an internal mutex; the file is re-read
// on every IDs call so out-of-band edits by an administrator take effect
// without a restart.
type File struct {
	mu   sync.Mutex
	path string
}

var _ types.Registry = (*File)(nil)

// NewFile creates a registry over the given file path.
//
// The file does not have to exist yet; IDs on a missing file returns an
// empty list, and the first SetIDs creates it.
//
// Parameters:
//   - path: Location of the registry file (e.g. "categories.txt")
//
// Returns:
//   - *File: Initialized registry
func NewFile(path string) *File {
	return &File{path: path}
}

// Path returns the registry file location.
func (f *File) Path() string { return f.path }

// IDs reads the registered category ids from the file.
//
// Returns:
//   - []int64: Category ids in file order
//   - error: types.ErrMalformedRegistry when a line is not a bare integer
func (f *File) IDs(_ context.Context) ([]int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	file, err := os.Open(f.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}

		return nil, fmt.Errorf("open category registry: %w", err)
	}
	defer file.Close()

	var ids []int64
	scanner := bufio.NewScanner(file)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		id, err := strconv.ParseInt(text, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %q", types.ErrMalformedRegistry, line, text)
		}
		ids = append(ids, id)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read category registry: %w", err)
	}

	return ids, nil
}

// SetIDs replaces the registry file contents with the given ids.
//
// The write goes through a temporary file renamed into place so a crash
// mid-write cannot leave a truncated registry behind.
func (f *File) SetIDs(_ context.Context, ids []int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	var b strings.Builder
	for _, id := range ids {
		b.WriteString(strconv.FormatInt(id, 10))
		b.WriteByte('\n')
	}

	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("write category registry: %w", err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		return fmt.Errorf("replace category registry: %w", err)
	}

	return nil
}
