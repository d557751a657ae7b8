package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Store writes uploaded and annotated panel images under a single
// directory, named by analysis id so files and records stay linked.
type Store struct {
	uploadDir string
	mu        sync.Mutex
}

func NewStore(uploadDir string) *Store {
	return &Store{uploadDir: uploadDir}
}

// SaveUpload persists the original uploaded image and returns its path.
func (s *Store) SaveUpload(analysisID, filename string, data []byte) (string, error) {
	return s.save(fmt.Sprintf("%s_original%s", analysisID, safeExt(filename)), data)
}

// SaveAnnotated persists the annotated copy of an analysed image.
func (s *Store) SaveAnnotated(analysisID string, data []byte) (string, error) {
	return s.save(fmt.Sprintf("%s_annotated.jpg", analysisID), data)
}

// Remove deletes the given files, ignoring ones already gone.
func (s *Store) Remove(paths ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, p := range paths {
		if p == "" {
			continue
		}
		if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to remove %s: %w", p, err)
		}
	}
	return nil
}

func (s *Store) save(filename string, data []byte) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(s.uploadDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create upload directory: %w", err)
	}

	fullpath := filepath.Join(s.uploadDir, filename)
	if err := os.WriteFile(fullpath, data, 0644); err != nil {
		return "", fmt.Errorf("failed to save image %s: %w", filename, err)
	}
	return fullpath, nil
}

// safeExt keeps the original extension when it looks like an image
// extension, otherwise falls back to .jpg.
func safeExt(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".jpg", ".jpeg", ".png", ".webp":
		return ext
	default:
		return ".jpg"
	}
}
