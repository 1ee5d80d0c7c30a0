package storage

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/acr-platform/api-go/models"
)

// Store is the evidence file store: a single directory plus an
// extension allow-list. Stored names get a random hex suffix so
// concurrent uploads never collide.
type Store struct {
	dir     string
	allowed map[string]bool
}

func New(dir string, allowedExtensions []string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	allowed := make(map[string]bool, len(allowedExtensions))
	for _, ext := range allowedExtensions {
		allowed[strings.ToLower(strings.TrimPrefix(ext, "."))] = true
	}
	return &Store{dir: dir, allowed: allowed}, nil
}

// Allowed reports whether the filename has an extension on the allow-list.
// Files without a name or extension are rejected.
func (s *Store) Allowed(filename string) bool {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(filename)), ".")
	if ext == "" {
		return false
	}
	return s.allowed[ext]
}

// Save persists an uploaded file under a sanitized, suffixed name and
// returns the evidence record for it (without ReportID set).
func (s *Store) Save(fh *multipart.FileHeader) (*models.Evidence, error) {
	original := SanitizeFilename(fh.Filename)
	ext := filepath.Ext(original)
	name := strings.TrimSuffix(original, ext)

	suffix := make([]byte, 8)
	if _, err := rand.Read(suffix); err != nil {
		return nil, fmt.Errorf("failed to generate filename suffix: %w", err)
	}
	stored := fmt.Sprintf("%s_%s%s", name, hex.EncodeToString(suffix), ext)

	src, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open upload: %w", err)
	}
	defer src.Close()

	dst, err := os.Create(filepath.Join(s.dir, stored))
	if err != nil {
		return nil, fmt.Errorf("failed to create file: %w", err)
	}
	defer dst.Close()

	size, err := io.Copy(dst, src)
	if err != nil {
		os.Remove(dst.Name())
		return nil, fmt.Errorf("failed to write file: %w", err)
	}

	return &models.Evidence{
		Filename:         stored,
		OriginalFilename: original,
		FileType:         strings.TrimPrefix(strings.ToLower(ext), "."),
		FileSize:         size,
	}, nil
}

// Remove deletes a stored file. A missing file is not an error; the row
// may outlive the file after a partial failure.
func (s *Store) Remove(filename string) error {
	path := s.Path(filename)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}
	return os.Remove(path)
}

// Path returns the on-disk location for a stored filename. The name is
// reduced to its base so a crafted value cannot escape the directory.
func (s *Store) Path(filename string) string {
	return filepath.Join(s.dir, filepath.Base(filename))
}

// Exists reports whether a stored file is present on disk.
func (s *Store) Exists(filename string) bool {
	_, err := os.Stat(s.Path(filename))
	return err == nil
}

// SanitizeFilename strips path components and unsafe characters from a
// client-supplied filename, keeping letters, digits, dot, dash and
// underscore. An empty result becomes "file".
func SanitizeFilename(name string) string {
	name = strings.ReplaceAll(name, "\\", "/")
	name = filepath.Base(name)

	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.' || r == '-' || r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}

	cleaned := strings.Trim(b.String(), "._")
	if cleaned == "" {
		return "file"
	}
	return cleaned
}
