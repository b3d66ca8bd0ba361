package ports

import (
	"context"

	"github.com/pixijs/extension-scripts/internal/core/domain/tool"
)

/*
ToolRunner is the injected "external tool runner": it spawns a process with
inherited standard I/O and reports its outcome. A non-zero exit or a spawn
failure is returned as a *failure.ToolInvocationError.
*/
type ToolRunner interface {
	// Run launches the tool and waits until it exits.
	Run(ctx context.Context, inv tool.Invocation) error
	// Start launches the tool and returns without waiting.
	Start(ctx context.Context, inv tool.Invocation) (RunningTool, error)
}

// RunningTool is a tool started by ToolRunner.Start.
type RunningTool interface {
	Wait() error
}
