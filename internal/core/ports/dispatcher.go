package ports

import (
	"context"

	"github.com/pixijs/extension-scripts/internal/core/domain/alias"
	"github.com/pixijs/extension-scripts/internal/core/domain/config"
)

// CommandDispatcher resolves a command token (a command, an alias or a chain)
// and executes the resulting terminal actions in order.
type CommandDispatcher interface {
	Dispatch(ctx context.Context, command string, args []string) error
	// Plan returns the terminal commands Dispatch would run, in order.
	Plan(command string) ([]string, error)
	// Commands lists the dispatchable names: every command plus every alias.
	Commands() []string
	// Aliases lists the alias table in effect.
	Aliases() []alias.Alias
}

// ActionHandler runs one terminal command with the resolved configuration.
type ActionHandler func(ctx context.Context, cfg config.Configuration, args []string) error
