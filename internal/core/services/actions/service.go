/*
Package actions implements the terminal commands. Each handler builds the
argument vectors of external tools and the configuration files they need;
the tools themselves are launched through ports.ToolRunner.
*/
package actions

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/pixijs/extension-scripts/internal/core/domain/command"
	"github.com/pixijs/extension-scripts/internal/core/domain/config"
	"github.com/pixijs/extension-scripts/internal/core/domain/tool"
	"github.com/pixijs/extension-scripts/internal/core/ports"
	"go.uber.org/zap"
)

// DefaultTag is the npm dist-tag used by publish when none is configured.
const DefaultTag = "latest"

// Service holds what the terminal commands share.
type Service struct {
	runner    ports.ToolRunner
	files     ports.ProjectFiles
	templates ports.TemplateRenderer
	versions  ports.VersionCalculator
	prompter  ports.VersionPrompter
	out       io.Writer
	logger    *zap.Logger
	version   string
	tag       string
	now       func() time.Time
}

// Option customizes a Service.
type Option func(*Service)

// WithOutput sets where operator notices are printed.
func WithOutput(out io.Writer) Option {
	return func(s *Service) { s.out = out }
}

// WithLogger sets the diagnostic logger.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

// WithScriptsVersion sets the version printed by the version command.
func WithScriptsVersion(v string) Option {
	return func(s *Service) { s.version = v }
}

// WithTag sets the npm dist-tag for publish.
func WithTag(tag string) Option {
	return func(s *Service) { s.tag = tag }
}

// WithClock replaces time.Now for the bundle banner.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithVersionPrompter enables the interactive bump picker.
func WithVersionPrompter(p ports.VersionPrompter) Option {
	return func(s *Service) { s.prompter = p }
}

// NewService creates the action catalog.
func NewService(
	runner ports.ToolRunner,
	files ports.ProjectFiles,
	templates ports.TemplateRenderer,
	versions ports.VersionCalculator,
	opts ...Option,
) *Service {
	s := &Service{
		runner:    runner,
		files:     files,
		templates: templates,
		versions:  versions,
		out:       os.Stdout,
		logger:    zap.NewNop(),
		version:   "dev",
		tag:       DefaultTag,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.tag == "" {
		s.tag = DefaultTag
	}
	return s
}

// Handlers maps every terminal command to its implementation.
func (s *Service) Handlers() map[command.Name]ports.ActionHandler {
	return map[command.Name]ports.ActionHandler{
		command.Bump:    s.Bump,
		command.Bundle:  s.Bundle,
		command.Clean:   s.Clean,
		command.Docs:    s.Docs,
		command.GitPush: s.GitPush,
		command.Lint:    s.Lint,
		command.Pack:    s.Pack,
		command.Publish: s.Publish,
		command.Serve:   s.Serve,
		command.Test:    s.Test,
		command.Types:   s.Types,
		command.Upload:  s.Upload,
		command.Version: s.Version,
		command.Watch:   s.Watch,
	}
}

func (s *Service) run(ctx context.Context, cfg config.Configuration, name string, args ...[]string) error {
	return s.runner.Run(ctx, tool.New(cfg.ProjectDir, name, args...))
}

// withScopedFile writes path, runs fn and removes path again, whatever fn returns.
func (s *Service) withScopedFile(path string, contents []byte, fn func() error) (err error) {
	if err := s.files.WriteFile(path, contents); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	s.logger.Debug("wrote scoped file", zap.String("path", path))

	defer func() {
		if rmErr := s.files.Remove(path); rmErr != nil {
			s.logger.Warn("could not remove scoped file", zap.String("path", path), zap.Error(rmErr))
			if err == nil {
				err = fmt.Errorf("failed to remove %s: %w", path, rmErr)
			}
			return
		}
		s.logger.Debug("removed scoped file", zap.String("path", path))
	}()

	return fn()
}

// Version prints the scripts version.
func (s *Service) Version(_ context.Context, _ config.Configuration, _ []string) error {
	_, err := fmt.Fprintf(s.out, "v%s\n", s.version)
	return err
}
