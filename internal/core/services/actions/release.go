package actions

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pixijs/extension-scripts/internal/core/domain/config"
	"github.com/pixijs/extension-scripts/internal/core/ports"
	"go.uber.org/zap"
)

const scopedCleanPackageConfig = ".clean-package.json"

// ErrNoReleaseType is returned by bump when no version was given and no
// interactive picker is available.
var ErrNoReleaseType = errors.New("bump needs a release type or version when not run from a terminal")

// cleanTargets are always removed by clean.
var cleanTargets = []string{"{dist,lib}/*"}

// Clean removes the build output and any extra configured paths. rimraf
// ignores absent paths, so running it twice is the same as once.
func (s *Service) Clean(ctx context.Context, cfg config.Configuration, _ []string) error {
	return s.run(ctx, cfg, "rimraf", cleanTargets, cfg.Clean)
}

// Pack writes the npm tarball from a cleaned manifest.
func (s *Service) Pack(ctx context.Context, cfg config.Configuration, _ []string) error {
	return s.withCleanPackage(ctx, cfg, func() error {
		return s.run(ctx, cfg, "npm", []string{"pack"})
	})
}

// Publish publishes the package under the configured dist-tag from a cleaned manifest.
func (s *Service) Publish(ctx context.Context, cfg config.Configuration, _ []string) error {
	return s.withCleanPackage(ctx, cfg, func() error {
		return s.run(ctx, cfg, "npm", []string{"publish", "--tag", s.tag})
	})
}

// withCleanPackage strips development fields from package.json, runs fn and
// restores the manifest. The restore runs even when fn fails or ctx is done.
// The clean-package config lives in a temporary directory so npm never packs it.
func (s *Service) withCleanPackage(ctx context.Context, cfg config.Configuration, fn func() error) error {
	contents, err := s.templates.Load(ports.TemplateCleanPackage)
	if err != nil {
		return err
	}
	tmpDir, err := os.MkdirTemp("", "extension-scripts-")
	if err != nil {
		return fmt.Errorf("failed to create a directory for %s: %w", scopedCleanPackageConfig, err)
	}
	defer func() {
		if rmErr := os.RemoveAll(tmpDir); rmErr != nil {
			s.logger.Warn("could not remove temporary directory", zap.String("path", tmpDir), zap.Error(rmErr))
		}
	}()
	configPath := filepath.Join(tmpDir, scopedCleanPackageConfig)

	return s.withScopedFile(configPath, contents, func() error {
		if err := s.run(ctx, cfg, "clean-package", []string{"--config", configPath}); err != nil {
			return err
		}
		runErr := fn()
		restoreErr := s.run(context.WithoutCancel(ctx), cfg, "clean-package", []string{"restore", "--config", configPath})
		if runErr != nil {
			if restoreErr != nil {
				s.logger.Warn("restoring package.json failed", zap.Error(restoreErr))
			}
			return runErr
		}
		return restoreErr
	})
}

// Bump sets the next package version with npm. args[0] may be a release
// keyword or an explicit version; without it the operator is asked.
func (s *Service) Bump(ctx context.Context, cfg config.Configuration, args []string) error {
	current := cfg.Package.Version
	var next string
	var err error

	switch {
	case len(args) > 0 && strings.TrimSpace(args[0]) != "":
		next, err = s.versions.Next(current, strings.TrimSpace(args[0]))
	case s.prompter == nil:
		return ErrNoReleaseType
	default:
		next, err = s.promptVersion(current)
	}
	if err != nil {
		return err
	}

	s.logger.Debug("bumping version", zap.String("from", current), zap.String("to", next))
	return s.run(ctx, cfg, "npm", []string{"version", next})
}

func (s *Service) promptVersion(current string) (string, error) {
	choices, err := s.versions.Choices(current)
	if err != nil {
		return "", err
	}
	next, err := s.prompter.PromptVersion(current, choices)
	if err != nil {
		return "", fmt.Errorf("failed to choose the next version: %w", err)
	}
	return next, nil
}

// GitPush pushes the current branch and then the tags.
func (s *Service) GitPush(ctx context.Context, cfg config.Configuration, _ []string) error {
	if err := s.run(ctx, cfg, "git", []string{"push"}); err != nil {
		return err
	}
	return s.run(ctx, cfg, "git", []string{"push", "--tags"})
}

// Upload publishes the deploy files to the deploy branch.
func (s *Service) Upload(ctx context.Context, cfg config.Configuration, _ []string) error {
	return s.run(ctx, cfg, "gh-pages", []string{
		"-d", ".",
		"-b", cfg.DeployBranch,
		"-s", cfg.DeployFiles,
		"-f",
	})
}
