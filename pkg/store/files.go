package store

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/niels/tinyhttp/pkg/httperr"
)

// Files loads files by name from a public directory
type Files struct {
	dir string
}

// NewFiles creates a file lookup rooted at dir
func NewFiles(dir string) *Files {
	return &Files{dir: dir}
}

// LoadFile returns the contents of the named file. Names that would escape
// the public directory, directories and missing files all yield an error of
// kind httperr.FileNotFound.
func (f *Files) LoadFile(name string) (string, error) {
	if name == "" || strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return "", httperr.New(httperr.FileNotFound, fmt.Errorf("invalid file name %q", name))
	}

	fullPath := filepath.Join(f.dir, name)
	info, err := os.Stat(fullPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", httperr.New(httperr.FileNotFound, err)
		}
		return "", fmt.Errorf("failed to stat %s: %w", fullPath, err)
	}
	if !info.Mode().IsRegular() {
		return "", httperr.New(httperr.FileNotFound, fmt.Errorf("%s is not a regular file", fullPath))
	}

	data, err := os.ReadFile(fullPath)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", fullPath, err)
	}
	return string(data), nil
}
