package ports

import "github.com/pixijs/extension-scripts/internal/core/domain/alias"

// PredefinedAliasProvider defines the interface for sourcing the built-in
// workflow aliases, like an embedded configuration file.
type PredefinedAliasProvider interface {
	// GetPredefinedAliases loads aliases from a predefined source.
	GetPredefinedAliases() ([]alias.Alias, error)
}
