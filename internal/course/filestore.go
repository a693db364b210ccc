package course

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

const fileSuffix = "_history.json"

// FileStore keeps one JSON file per course under a base directory, named
// {sanitized_course_name}_history.json.
type FileStore struct {
	basePath string
	mu       sync.RWMutex
}

func NewFileStore(basePath string) (*FileStore, error) {
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("course: create store dir: %w", err)
	}
	return &FileStore{basePath: basePath}, nil
}

func (s *FileStore) Save(ctx context.Context, rec Record) error {
	path, err := s.coursePath(rec.CourseName)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Errorf("course: encode record: %w", err)
	}

	// Write to a temp file and rename so a crashed save never leaves a
	// half-written course file behind.
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("course: write record: %w", err)
	}
	return os.Rename(tmp, path)
}

func (s *FileStore) Load(ctx context.Context, name string) (*Record, error) {
	path, err := s.coursePath(name)
	if err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("course: read record: %w", err)
	}

	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("course: decode record: %w", err)
	}
	return &rec, nil
}

func (s *FileStore) ListNames(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries, err := os.ReadDir(s.basePath)
	if err != nil {
		return nil, fmt.Errorf("course: scan store dir: %w", err)
	}

	seen := make(map[string]bool)
	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), fileSuffix) {
			continue
		}
		data, err := os.ReadFile(filepath.Join(s.basePath, e.Name()))
		if err != nil {
			continue
		}
		var rec Record
		if err := json.Unmarshal(data, &rec); err != nil {
			continue
		}
		if rec.CourseName == "" || seen[rec.CourseName] {
			continue
		}
		seen[rec.CourseName] = true
		names = append(names, rec.CourseName)
	}

	sort.Strings(names)
	return names, nil
}

func (s *FileStore) Delete(ctx context.Context, name string) error {
	path, err := s.coursePath(name)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("course: delete record: %w", err)
	}
	return nil
}

func (s *FileStore) coursePath(name string) (string, error) {
	sanitized := SanitizeName(name)
	if sanitized == "" {
		return "", ErrEmptyName
	}
	return filepath.Join(s.basePath, sanitized+fileSuffix), nil
}

var _ Store = (*FileStore)(nil)
