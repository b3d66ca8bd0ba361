package oscommand

import (
	"context"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/pixijs/extension-scripts/internal/core/domain/failure"
	"github.com/pixijs/extension-scripts/internal/core/domain/tool"
	"github.com/pixijs/extension-scripts/internal/core/ports"
	"github.com/pixijs/extension-scripts/internal/handlers/ui"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"mvdan.cc/sh/v3/syntax"
)

// localBinDir is where npm installs the project's tool executables.
var localBinDir = filepath.Join("node_modules", ".bin")

// OSCommandExecutor implements the ToolRunner interface by spawning processes
// that share this process's standard streams.
type OSCommandExecutor struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
	silent bool
	logger *zap.Logger
}

// Option customizes an OSCommandExecutor.
type Option func(*OSCommandExecutor)

// WithStreams replaces the inherited standard streams, mostly for tests.
func WithStreams(stdin io.Reader, stdout, stderr io.Writer) Option {
	return func(e *OSCommandExecutor) {
		e.stdin, e.stdout, e.stderr = stdin, stdout, stderr
	}
}

// WithSilent suppresses the echoed command line.
func WithSilent(silent bool) Option {
	return func(e *OSCommandExecutor) { e.silent = silent }
}

// NewOSCommandExecutor creates a new OSCommandExecutor.
func NewOSCommandExecutor(logger *zap.Logger, opts ...Option) ports.ToolRunner {
	if logger == nil {
		logger = zap.NewNop()
	}
	e := &OSCommandExecutor{
		stdin:  os.Stdin,
		stdout: os.Stdout,
		stderr: os.Stderr,
		logger: logger,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Run launches the tool and waits for it to exit.
func (e *OSCommandExecutor) Run(ctx context.Context, inv tool.Invocation) error {
	running, err := e.Start(ctx, inv)
	if err != nil {
		return err
	}
	return running.Wait()
}

// Start launches the tool without waiting. The context is only checked before
// spawning; a tool already running is left to receive the terminal's signals.
func (e *OSCommandExecutor) Start(ctx context.Context, inv tool.Invocation) (ports.RunningTool, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path, err := resolveBinary(inv.Dir, inv.Name)
	if err != nil {
		return nil, &failure.ToolInvocationError{Tool: inv.Name, Spawn: true, Err: err}
	}
	e.logger.Debug("resolved tool", zap.String("tool", inv.Name), zap.String("path", path))

	if !e.silent {
		if _, err := io.WriteString(e.stdout, ui.Echo(quoteCommandLine(inv))+"\n"); err != nil {
			e.logger.Debug("echo failed", zap.Error(err))
		}
	}

	cmd := exec.Command(path, inv.Args...)
	cmd.Dir = inv.Dir
	cmd.Stdin = e.stdin
	cmd.Stdout = e.stdout
	cmd.Stderr = e.stderr

	if err := cmd.Start(); err != nil {
		return nil, &failure.ToolInvocationError{
			Tool:  inv.Name,
			Spawn: true,
			Err:   errors.Wrapf(err, "start %s", path),
		}
	}
	e.logger.Debug("started tool", zap.String("tool", inv.Name), zap.Int("pid", cmd.Process.Pid))
	return &runningTool{cmd: cmd, name: inv.Name, logger: e.logger}, nil
}

type runningTool struct {
	cmd    *exec.Cmd
	name   string
	logger *zap.Logger
}

// Wait blocks until the tool exits and maps a non-zero exit to a ToolInvocationError.
func (r *runningTool) Wait() error {
	err := r.cmd.Wait()
	if err == nil {
		r.logger.Debug("tool finished", zap.String("tool", r.name))
		return nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return &failure.ToolInvocationError{Tool: r.name, ExitCode: exitErr.ExitCode(), Err: err}
	}
	return &failure.ToolInvocationError{Tool: r.name, Spawn: true, Err: errors.Wrap(err, "wait")}
}

// resolveBinary prefers the project's node_modules/.bin over PATH.
func resolveBinary(projectDir, name string) (string, error) {
	if strings.ContainsRune(name, filepath.Separator) {
		return name, nil
	}
	if projectDir != "" {
		local := filepath.Join(projectDir, localBinDir, name)
		if info, err := os.Stat(local); err == nil && !info.IsDir() {
			return local, nil
		}
	}
	path, err := exec.LookPath(name)
	if err != nil {
		return "", errors.Wrapf(err, "%s not found in %s or PATH", name, localBinDir)
	}
	return path, nil
}

// quoteCommandLine renders inv the way a shell would need it typed.
func quoteCommandLine(inv tool.Invocation) string {
	words := make([]string, 0, len(inv.Args)+1)
	for _, w := range append([]string{inv.Name}, inv.Args...) {
		quoted, err := syntax.Quote(w, syntax.LangBash)
		if err != nil {
			quoted = w
		}
		words = append(words, quoted)
	}
	return strings.Join(words, " ")
}
