package actions

import (
	"context"

	"github.com/pixijs/extension-scripts/internal/core/domain/config"
	"github.com/pixijs/extension-scripts/internal/core/domain/failure"
	"github.com/pixijs/extension-scripts/internal/core/domain/tool"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Serve opens the examples folder in a local web server and keeps the bundles
// rebuilding. It returns once both the server and the watcher have ended.
func (s *Service) Serve(ctx context.Context, cfg config.Configuration, _ []string) error {
	if !s.files.Exists(cfg.Serve) {
		return &failure.MissingDirectoryError{Dir: cfg.Serve}
	}

	server, err := s.runner.Start(ctx, tool.New(cfg.ProjectDir, "http-server", []string{
		".",
		"-a", "localhost",
		"-o", cfg.Serve,
	}))
	if err != nil {
		return err
	}
	s.logger.Debug("started example server", zap.String("dir", cfg.Serve))

	g, gctx := errgroup.WithContext(ctx)
	g.Go(server.Wait)
	g.Go(func() error {
		return s.Watch(gctx, cfg, nil)
	})
	return g.Wait()
}
