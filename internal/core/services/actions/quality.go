package actions

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/pixijs/extension-scripts/internal/core/domain/config"
	"github.com/pixijs/extension-scripts/internal/core/ports"
	"github.com/pixijs/extension-scripts/internal/handlers/ui"
)

const (
	scopedESLintConfig = ".eslintrc.json"
	scopedWebdocConfig = ".webdoc.json"
	testDir            = "test"
)

// eslintConfigFiles are the project files that make the built-in lint config unnecessary.
var eslintConfigFiles = []string{".eslintrc.json", ".eslintrc.js", ".eslintrc"}

// Lint runs eslint over the configured paths. args are appended, so "--fix" works.
func (s *Service) Lint(ctx context.Context, cfg config.Configuration, args []string) error {
	eslintArgs := [][]string{
		{"--ext", ".ts", "--ext", ".js", "--ext", ".mjs", "--no-error-on-unmatched-pattern"},
		cfg.Lint,
		args,
	}

	if s.hasESLintConfig(cfg) {
		return s.run(ctx, cfg, "eslint", eslintArgs...)
	}

	// eslint's -c flag disables .eslintrc lookup, so the built-in config is
	// dropped into the project root instead.
	contents, err := s.templates.Load(ports.TemplateESLint)
	if err != nil {
		return err
	}
	return s.withScopedFile(scopedESLintConfig, contents, func() error {
		return s.run(ctx, cfg, "eslint", eslintArgs...)
	})
}

func (s *Service) hasESLintConfig(cfg config.Configuration) bool {
	if cfg.Package.HasESLintConfig {
		return true
	}
	for _, f := range eslintConfigFiles {
		if s.files.Exists(f) {
			return true
		}
	}
	return false
}

// Test runs jest when the project has a test folder.
func (s *Service) Test(ctx context.Context, cfg config.Configuration, args []string) error {
	if !s.files.Exists(testDir) {
		fmt.Fprintln(s.out, ui.Warning(fmt.Sprintf("Warning: No %q folder found, skipping tests.", testDir)))
		return nil
	}

	var jestConfig string
	if cfg.JestConfig != "" {
		if !s.files.Exists(cfg.JestConfig) {
			fmt.Fprintln(s.out, ui.Error(fmt.Sprintf("Jest config file %q not found, skipping tests.", cfg.JestConfig)))
			return nil
		}
		jestConfig = s.files.Abs(cfg.JestConfig)
	} else {
		builtIn, err := s.inlineJestConfig()
		if err != nil {
			return err
		}
		jestConfig = builtIn
	}

	return s.run(ctx, cfg, "jest", []string{"--config", jestConfig, "--rootDir", cfg.ProjectDir}, args)
}

// inlineJestConfig returns the built-in jest config as a single-line JSON
// string, which jest accepts in place of a path.
func (s *Service) inlineJestConfig() (string, error) {
	raw, err := s.templates.Load(ports.TemplateJest)
	if err != nil {
		return "", err
	}
	var compact bytes.Buffer
	if err := json.Compact(&compact, raw); err != nil {
		return "", fmt.Errorf("built-in jest config: %w", err)
	}
	return compact.String(), nil
}

// Docs regenerates the API documentation with webdoc.
func (s *Service) Docs(ctx context.Context, cfg config.Configuration, _ []string) error {
	if err := s.run(ctx, cfg, "rimraf", []string{cfg.DocsDestination + "/*"}); err != nil {
		return err
	}

	contents, err := s.templates.LoadRendered(ports.TemplateWebdoc, jsonStringValues(cfg.TemplateValues()))
	if err != nil {
		return err
	}
	return s.withScopedFile(scopedWebdocConfig, contents, func() error {
		return s.run(ctx, cfg, "webdoc", []string{"-c", s.files.Abs(scopedWebdocConfig)})
	})
}

// jsonStringValues escapes each value for use inside a JSON string literal.
func jsonStringValues(values map[string]string) map[string]string {
	out := make(map[string]string, len(values))
	for k, v := range values {
		quoted, err := json.Marshal(v)
		if err != nil {
			out[k] = v
			continue
		}
		out[k] = string(quoted[1 : len(quoted)-1])
	}
	return out
}
