package document

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

var (
	// ErrNotAllowed is returned when a file is not a pdf or docx document.
	ErrNotAllowed = errors.New("document type not allowed")

	// ErrNotFound is returned for names that are not stored documents.
	ErrNotFound = errors.New("document not found")
)

// Store keeps uploaded documents flat in one directory.
type Store struct {
	dir string
}

// NewStore creates dir if needed and returns a Store rooted at it.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return nil, fmt.Errorf("unable to create directory: %s: %w", dir, err)
	}
	return &Store{dir: dir}, nil
}

// Dir returns the directory documents are stored in.
func (s *Store) Dir() string {
	return s.dir
}

// Save writes r under the secure form of name, replacing any document with
// the same name, and returns the stored name.
func (s *Store) Save(name string, r io.Reader) (string, error) {
	stored := SecureFilename(name)
	if stored == "" || !Allowed(stored) {
		return "", fmt.Errorf("%w: %s", ErrNotAllowed, name)
	}

	// Write to a temporary file first so a failed upload never leaves a
	// truncated document behind.
	tmp, err := os.CreateTemp(s.dir, ".upload-*")
	if err != nil {
		return "", fmt.Errorf("unable to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, r); err != nil {
		tmp.Close()
		return "", fmt.Errorf("writing %s: %w", stored, err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("writing %s: %w", stored, err)
	}

	if err := os.Rename(tmp.Name(), filepath.Join(s.dir, stored)); err != nil {
		return "", fmt.Errorf("storing %s: %w", stored, err)
	}
	return stored, nil
}

// List returns the names of stored documents in lexical order.
func (s *Store) List() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("unable to read %s: %w", s.dir, err)
	}

	var names []string
	for _, e := range entries {
		// Skip hidden files, including in-flight uploads.
		if strings.HasPrefix(e.Name(), ".") {
			continue
		}
		if e.Type().IsRegular() && Allowed(e.Name()) {
			names = append(names, e.Name())
		}
	}
	return names, nil
}

// Path returns the on-disk path of the stored document name.
func (s *Store) Path(name string) (string, error) {
	if _, err := s.Stat(name); err != nil {
		return "", err
	}
	return filepath.Join(s.dir, name), nil
}

// Stat returns file information for the stored document name.
func (s *Store) Stat(name string) (fs.FileInfo, error) {
	if name == "" || name != filepath.Base(name) || strings.HasPrefix(name, ".") || !Allowed(name) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}

	info, err := os.Stat(filepath.Join(s.dir, name))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
		}
		return nil, err
	}
	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return info, nil
}
