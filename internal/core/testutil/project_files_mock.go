package testutil

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"sync"
)

// MockProjectFiles is an in-memory implementation of ports.ProjectFiles.
// Paths in Files and Dirs are project-relative with forward slashes.
type MockProjectFiles struct {
	Root  string
	Files map[string][]byte
	Dirs  map[string]bool

	WriteFileFunc func(path string, data []byte) error
	RemoveFunc    func(path string) error

	mu      sync.Mutex
	Writes  []string
	Removes []string
}

// NewMockProjectFiles creates an empty in-memory project rooted at root.
func NewMockProjectFiles(root string) *MockProjectFiles {
	return &MockProjectFiles{Root: root, Files: map[string][]byte{}, Dirs: map[string]bool{}}
}

func (m *MockProjectFiles) rel(path string) string {
	if filepath.IsAbs(path) {
		if r, err := filepath.Rel(m.Root, path); err == nil {
			return filepath.ToSlash(r)
		}
	}
	return filepath.ToSlash(filepath.Clean(path))
}

func (m *MockProjectFiles) Abs(path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(m.Root, path)
}

func (m *MockProjectFiles) Exists(path string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	p := m.rel(path)
	_, isFile := m.Files[p]
	return isFile || m.Dirs[p]
}

func (m *MockProjectFiles) ReadFile(path string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.Files[m.rel(path)]
	if !ok {
		return nil, fmt.Errorf("failed to read %s: %w", path, fs.ErrNotExist)
	}
	return data, nil
}

func (m *MockProjectFiles) WriteFile(path string, data []byte) error {
	if m.WriteFileFunc != nil {
		if err := m.WriteFileFunc(path, data); err != nil {
			return err
		}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	p := m.rel(path)
	m.Files[p] = data
	m.Writes = append(m.Writes, p)
	return nil
}

func (m *MockProjectFiles) Remove(path string) error {
	if m.RemoveFunc != nil {
		if err := m.RemoveFunc(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	p := m.rel(path)
	delete(m.Files, p)
	m.Removes = append(m.Removes, p)
	return nil
}
