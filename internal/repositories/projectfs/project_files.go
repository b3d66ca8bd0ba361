package projectfs

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pixijs/extension-scripts/internal/core/ports"
)

// ProjectFiles provides access to the files of a host project via the file system.
type ProjectFiles struct {
	root string
}

// NewProjectFiles creates a ProjectFiles rooted at projectDir.
func NewProjectFiles(projectDir string) (ports.ProjectFiles, error) {
	root, err := filepath.Abs(projectDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve project directory %s: %w", projectDir, err)
	}
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("failed to open project directory %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("project directory %s is not a directory", root)
	}
	return &ProjectFiles{root: root}, nil
}

// Abs implements the ports.ProjectFiles interface.
func (p *ProjectFiles) Abs(path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(p.root, path)
}

// Exists implements the ports.ProjectFiles interface.
func (p *ProjectFiles) Exists(path string) bool {
	_, err := os.Stat(p.Abs(path))
	return err == nil
}

// ReadFile implements the ports.ProjectFiles interface.
func (p *ProjectFiles) ReadFile(path string) ([]byte, error) {
	data, err := os.ReadFile(p.Abs(path))
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return data, nil
}

// WriteFile implements the ports.ProjectFiles interface.
func (p *ProjectFiles) WriteFile(path string, data []byte) error {
	full := p.Abs(path)
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", path, err)
	}
	if err := os.WriteFile(full, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// Remove implements the ports.ProjectFiles interface.
func (p *ProjectFiles) Remove(path string) error {
	err := os.Remove(p.Abs(path))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove %s: %w", path, err)
	}
	return nil
}
