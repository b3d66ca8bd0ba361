package manifest

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/pixijs/extension-scripts/internal/core/domain/config"
	"github.com/pixijs/extension-scripts/internal/core/domain/failure"
	"github.com/pixijs/extension-scripts/internal/core/ports"
	"github.com/pkg/errors"
	"sigs.k8s.io/yaml"
)

// FileName is the manifest read from the project root.
const FileName = "package.json"

// packageJSON is the subset of package.json the scripts care about.
type packageJSON struct {
	Name             string            `json:"name"`
	Version          string            `json:"version"`
	Description      string            `json:"description"`
	Main             string            `json:"main"`
	Module           string            `json:"module"`
	Author           json.RawMessage   `json:"author"`
	Repository       json.RawMessage   `json:"repository"`
	Keywords         []string          `json:"keywords"`
	Dependencies     map[string]string `json:"dependencies"`
	PeerDependencies map[string]string `json:"peerDependencies"`
	ESLintConfig     json.RawMessage   `json:"eslintConfig"`
	ExtensionConfig  json.RawMessage   `json:"extensionConfig"`
}

// PackageJSONResolver resolves a Configuration from the project's package.json.
type PackageJSONResolver struct {
	now func() time.Time
}

// NewPackageJSONResolver creates a resolver. now feeds the copyright year;
// nil means time.Now.
func NewPackageJSONResolver(now func() time.Time) ports.ConfigResolver {
	if now == nil {
		now = time.Now
	}
	return &PackageJSONResolver{now: now}
}

// Resolve reads the manifest under projectDir, derives the defaults and overlays
// the "extensionConfig" object key by key.
func (r *PackageJSONResolver) Resolve(projectDir string) (config.Configuration, error) {
	manifestPath := filepath.Join(projectDir, FileName)

	data, err := os.ReadFile(manifestPath)
	if err != nil {
		return config.Configuration{}, &failure.ConfigurationError{
			Path: manifestPath,
			Err:  errors.Wrap(err, "read manifest"),
		}
	}

	var pkg packageJSON
	if err := decode(data, &pkg); err != nil {
		return config.Configuration{}, &failure.ConfigurationError{
			Path: manifestPath,
			Err:  errors.Wrap(err, "parse manifest"),
		}
	}
	if pkg.Name == "" {
		return config.Configuration{}, &failure.ConfigurationError{
			Path: manifestPath,
			Err:  errors.New(`manifest has no "name"`),
		}
	}

	cfg := config.Defaults(projectDir, pkg.toPackage(), r.now().Year())
	if isPresent(pkg.ExtensionConfig) {
		if err := decode(pkg.ExtensionConfig, &cfg); err != nil {
			return config.Configuration{}, &failure.ConfigurationError{
				Path: manifestPath,
				Err:  errors.Wrap(err, `decode "extensionConfig"`),
			}
		}
	}
	return cfg.Finalize(), nil
}

// decode reads well-formed JSON with encoding/json, since the YAML parser
// rejects some legal JSON escapes such as "\/". Anything else goes through
// sigs.k8s.io/yaml, which applies the same json tags and reports the parse error.
func decode(data []byte, v any) error {
	if json.Valid(data) {
		return json.Unmarshal(data, v)
	}
	return yaml.Unmarshal(data, v)
}

func (p packageJSON) toPackage() config.Package {
	return config.Package{
		Name:             p.Name,
		Version:          p.Version,
		Description:      p.Description,
		Author:           personName(p.Author),
		Repository:       repositoryURL(p.Repository),
		Keywords:         p.Keywords,
		Main:             p.Main,
		Module:           p.Module,
		Dependencies:     sortedKeys(p.Dependencies),
		PeerDependencies: sortedKeys(p.PeerDependencies),
		HasESLintConfig:  isPresent(p.ESLintConfig),
	}
}

func isPresent(raw json.RawMessage) bool {
	trimmed := strings.TrimSpace(string(raw))
	return trimmed != "" && trimmed != "null"
}

// personName accepts both "Jane <jane@x.dev>" and {"name": "Jane"}.
func personName(raw json.RawMessage) string {
	if !isPresent(raw) {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var obj struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(raw, &obj); err == nil {
		return obj.Name
	}
	return ""
}

// repositoryURL accepts both "github:org/repo" and {"url": "..."}.
func repositoryURL(raw json.RawMessage) string {
	if !isPresent(raw) {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var obj struct {
		URL string `json:"url"`
	}
	if err := json.Unmarshal(raw, &obj); err == nil {
		return obj.URL
	}
	return ""
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
