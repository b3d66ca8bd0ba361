package dispatch

import (
	"context"
	"fmt"
	"sort"

	"github.com/pixijs/extension-scripts/internal/core/domain/alias"
	"github.com/pixijs/extension-scripts/internal/core/domain/command"
	"github.com/pixijs/extension-scripts/internal/core/domain/config"
	"github.com/pixijs/extension-scripts/internal/core/domain/failure"
	"github.com/pixijs/extension-scripts/internal/core/ports"
	"go.uber.org/zap"
)

// Service implements the ports.CommandDispatcher interface.
type Service struct {
	cfg      config.Configuration
	aliases  alias.Table
	handlers map[command.Name]ports.ActionHandler
	logger   *zap.Logger
}

// NewService creates a dispatcher over handlers. The alias table is the
// provider's built-in set overlaid with cfg.Aliases; provider may be nil.
func NewService(
	cfg config.Configuration,
	provider ports.PredefinedAliasProvider,
	handlers map[command.Name]ports.ActionHandler,
	logger *zap.Logger,
) (ports.CommandDispatcher, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	var builtIn []alias.Alias
	if provider != nil {
		var err error
		builtIn, err = provider.GetPredefinedAliases()
		if err != nil {
			return nil, fmt.Errorf("failed to load predefined aliases: %w", err)
		}
	}
	return &Service{
		cfg:      cfg,
		aliases:  alias.NewTable(builtIn).Merge(cfg.Aliases),
		handlers: handlers,
		logger:   logger,
	}, nil
}

// Dispatch resolves token into terminal commands and runs them in order with
// the same args. The first failure stops the rest.
func (s *Service) Dispatch(ctx context.Context, token string, args []string) error {
	steps, err := s.Plan(token)
	if err != nil {
		return err
	}
	for i, step := range steps {
		if err := ctx.Err(); err != nil {
			return err
		}
		s.logger.Debug("running command",
			zap.String("command", step),
			zap.Int("step", i+1),
			zap.Int("of", len(steps)),
			zap.Strings("args", args))
		if err := s.handlers[command.Name(step)](ctx, s.cfg, args); err != nil {
			return fmt.Errorf("%s: %w", step, err)
		}
	}
	return nil
}

// Plan expands aliases and chains without running anything.
func (s *Service) Plan(token string) ([]string, error) {
	var steps []string
	if err := s.expand(token, nil, &steps); err != nil {
		return nil, err
	}
	return steps, nil
}

// expand appends the terminal commands of token to steps. path holds the
// aliases currently being expanded.
func (s *Service) expand(token string, path []string, steps *[]string) error {
	if expansion, ok := s.aliases.Lookup(token); ok {
		for _, seen := range path {
			if seen == token {
				cycle := append(append([]string{}, path...), token)
				return &failure.CyclicAliasError{Path: cycle}
			}
		}
		s.logger.Debug("expanding alias", zap.String("alias", token), zap.String("expansion", expansion))
		next := append(append(make([]string, 0, len(path)+1), path...), token)
		return s.expand(expansion, next, steps)
	}

	if command.IsChain(token) {
		parts := command.SplitChain(token)
		if len(parts) == 0 {
			return &failure.UnknownCommandError{Command: token, Valid: s.Commands()}
		}
		for _, part := range parts {
			if err := s.expand(part, path, steps); err != nil {
				return err
			}
		}
		return nil
	}

	if _, ok := s.handlers[command.Name(token)]; !ok {
		return &failure.UnknownCommandError{Command: token, Valid: s.Commands()}
	}
	*steps = append(*steps, token)
	return nil
}

// Commands lists every command followed by the aliases that are not commands.
func (s *Service) Commands() []string {
	names := make([]string, 0, len(command.All())+len(s.aliases))
	for _, n := range command.All() {
		names = append(names, string(n))
	}
	var extra []string
	for name := range s.aliases {
		if !command.IsKnown(name) {
			extra = append(extra, name)
		}
	}
	sort.Strings(extra)
	return append(names, extra...)
}

// Aliases lists the alias table in effect.
func (s *Service) Aliases() []alias.Alias {
	return s.aliases.List()
}
