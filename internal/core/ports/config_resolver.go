package ports

import "github.com/pixijs/extension-scripts/internal/core/domain/config"

// ConfigResolver produces the merged Configuration for a project directory.
type ConfigResolver interface {
	Resolve(projectDir string) (config.Configuration, error)
}
