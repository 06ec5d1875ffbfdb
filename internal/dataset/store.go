// Package dataset stores uploaded dataset files and parses them into tables.
package dataset

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
)

// ErrInvalidFilename is returned for names that do not reduce to a plain file name.
var ErrInvalidFilename = errors.New("invalid dataset filename")

// Store keeps uploaded files in one flat directory keyed by their base name.
// Saving a name that already exists replaces the earlier file.
type Store struct {
	dir string
}

// NewStore creates the upload directory if needed.
func NewStore(dir string) (*Store, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve upload directory: %w", err)
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &Store{dir: abs}, nil
}

// Dir returns the absolute upload directory.
func (s *Store) Dir() string {
	return s.dir
}

// SanitizeFilename reduces name to its base name. Client paths in either
// separator style are stripped; names that stay empty or point at a directory are rejected.
func SanitizeFilename(name string) (string, error) {
	name = strings.ReplaceAll(strings.TrimSpace(name), "\\", "/")
	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}
	if name == "" || name == "." || name == ".." {
		return "", ErrInvalidFilename
	}
	return name, nil
}

// Path returns the on-disk location of filename.
func (s *Store) Path(filename string) (string, error) {
	base, err := SanitizeFilename(filename)
	if err != nil {
		return "", err
	}
	return filepath.Join(s.dir, base), nil
}

// Exists reports whether filename is present as a regular file.
func (s *Store) Exists(filename string) bool {
	path, err := s.Path(filename)
	if err != nil {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// Save copies r verbatim to the store under the base name of filename and
// returns the stored name and byte count. The content is written to a temporary
// file first and renamed into place, so readers never observe a partial file.
func (s *Store) Save(filename string, r io.Reader) (string, int64, error) {
	base, err := SanitizeFilename(filename)
	if err != nil {
		return "", 0, err
	}

	tmp, err := os.CreateTemp(s.dir, ".upload-*")
	if err != nil {
		return "", 0, fmt.Errorf("failed to create temporary file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() {
		// no-op after a successful rename
		_ = os.Remove(tmpName)
	}()

	written, err := io.Copy(tmp, r)
	if err != nil {
		tmp.Close()
		return "", 0, fmt.Errorf("failed to write dataset file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", 0, fmt.Errorf("failed to close dataset file: %w", err)
	}

	target := filepath.Join(s.dir, base)
	replaced := s.Exists(base)
	if err := os.Rename(tmpName, target); err != nil {
		return "", 0, fmt.Errorf("failed to store dataset file: %w", err)
	}

	log.Info().
		Str("filename", base).
		Int64("bytes", written).
		Bool("replaced", replaced).
		Msg("Dataset file stored")

	return base, written, nil
}
