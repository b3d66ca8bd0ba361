/*
Package templates holds the built-in tool configuration files and the ${key}
substitution used to render them.
*/
package templates

import (
	"embed"
	"fmt"
	"regexp"

	"github.com/pixijs/extension-scripts/internal/core/ports"
)

//go:embed files/*
var files embed.FS

// Embedded implements the ports.TemplateRenderer interface over the files
// compiled into the binary.
type Embedded struct{}

// NewEmbedded creates a new Embedded renderer.
func NewEmbedded() ports.TemplateRenderer {
	return &Embedded{}
}

// Load implements the ports.TemplateRenderer interface.
func (Embedded) Load(name string) ([]byte, error) { return Load(name) }

// LoadRendered implements the ports.TemplateRenderer interface.
func (Embedded) LoadRendered(name string, values map[string]string) ([]byte, error) {
	return LoadRendered(name, values)
}

// Load returns the raw contents of a built-in template.
func Load(name string) ([]byte, error) {
	data, err := files.ReadFile("files/" + name)
	if err != nil {
		return nil, fmt.Errorf("built-in template %s: %w", name, err)
	}
	return data, nil
}

var placeholder = regexp.MustCompile(`\$\{([^}]+)\}`)

// Render replaces every ${key} in str with values[key].
// Placeholders without a value are left as written.
func Render(str string, values map[string]string) string {
	return placeholder.ReplaceAllStringFunc(str, func(m string) string {
		key := placeholder.FindStringSubmatch(m)[1]
		if v, ok := values[key]; ok {
			return v
		}
		return m
	})
}

// LoadRendered loads a built-in template and renders it with values.
func LoadRendered(name string, values map[string]string) ([]byte, error) {
	data, err := Load(name)
	if err != nil {
		return nil, err
	}
	return []byte(Render(string(data), values)), nil
}
