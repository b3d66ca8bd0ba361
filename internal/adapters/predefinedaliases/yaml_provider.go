package predefinedaliases

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"

	"github.com/pixijs/extension-scripts/internal/core/domain/alias"
	"github.com/pixijs/extension-scripts/internal/core/ports"
	"gopkg.in/yaml.v3"
)

//go:embed aliases.yaml
var embeddedPredefinedAliases []byte

// YAMLProvider implements the PredefinedAliasProvider interface
// by reading the built-in workflow aliases from an embedded YAML document.
type YAMLProvider struct{}

// NewYAMLProvider creates a new YAMLProvider.
func NewYAMLProvider() (ports.PredefinedAliasProvider, error) {
	return &YAMLProvider{}, nil
}

// GetPredefinedAliases parses the embedded aliases.
// Empty content yields an empty list and no error.
func (p *YAMLProvider) GetPredefinedAliases() ([]alias.Alias, error) {
	predefined := []alias.Alias{}

	if len(embeddedPredefinedAliases) == 0 {
		return predefined, nil
	}

	decoder := yaml.NewDecoder(bytes.NewReader(embeddedPredefinedAliases))
	decoder.KnownFields(true)

	if err := decoder.Decode(&predefined); err != nil {
		// A document holding only comments decodes to EOF.
		if errors.Is(err, io.EOF) {
			return []alias.Alias{}, nil
		}
		return nil, fmt.Errorf("failed to unmarshal embedded predefined aliases: %w", err)
	}

	for _, a := range predefined {
		if a.Name == "" || a.Command == "" {
			return nil, fmt.Errorf("failed to unmarshal embedded predefined aliases: entry %+v needs both alias and command", a)
		}
	}
	return predefined, nil
}
