package address

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	clog "github.com/charmbracelet/log"
	"github.com/natefinch/atomic"
)

// File is a History whose current entry is saved to a state file on every
// move, so the last address is restored on the next start.
type File struct {
	*History

	path   string
	logger *clog.Logger
}

// OpenFile loads the address saved at path and returns a File seeded with it.
// A missing file yields an empty address. The parent directory is created.
func OpenFile(path string, logger *clog.Logger) (*File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create address directory: %w", err)
	}

	initial, err := ReadFile(path)
	if err != nil {
		return nil, err
	}

	f := &File{
		History: NewHistory(initial),
		path:    path,
		logger:  logger,
	}
	f.History.onMove = f.save

	return f, nil
}

// ReadFile returns the address saved at path without creating anything.
// A missing file or directory yields an empty address.
func ReadFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		return Normalize(string(data)), nil
	case errors.Is(err, fs.ErrNotExist):
		return "", nil
	default:
		return "", fmt.Errorf("failed to read address file: %w", err)
	}
}

// Path returns the state file location.
func (f *File) Path() string {
	return f.path
}

// save writes current to the state file. Failures are logged and otherwise
// ignored so navigation keeps working on a read-only disk.
func (f *File) save(current string) {
	if err := atomic.WriteFile(f.path, strings.NewReader(current+"\n")); err != nil {
		if f.logger != nil {
			f.logger.Warn("failed to save address", "path", f.path, "err", err)
		}
		return
	}
	if f.logger != nil {
		f.logger.Debug("saved address", "path", f.path, "address", current)
	}
}
