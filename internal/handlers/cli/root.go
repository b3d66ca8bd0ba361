package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/pixijs/extension-scripts/internal/adapters/manifest"
	"github.com/pixijs/extension-scripts/internal/adapters/oscommand"
	"github.com/pixijs/extension-scripts/internal/adapters/predefinedaliases"
	"github.com/pixijs/extension-scripts/internal/adapters/semverbump"
	"github.com/pixijs/extension-scripts/internal/adapters/templates"
	"github.com/pixijs/extension-scripts/internal/core/ports"
	"github.com/pixijs/extension-scripts/internal/core/services/actions"
	"github.com/pixijs/extension-scripts/internal/core/services/dispatch"
	"github.com/pixijs/extension-scripts/internal/handlers/tui"
	"github.com/pixijs/extension-scripts/internal/handlers/ui"
	"github.com/pixijs/extension-scripts/internal/logging"
	"github.com/pixijs/extension-scripts/internal/repositories/projectfs"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// Process exit codes.
const (
	ExitSuccess = 0
	ExitFailure = 1
)

// Deps are the adapters the root command wires together once the project
// directory is known.
type Deps struct {
	Resolver ports.ConfigResolver
	// Aliases may be nil, leaving only the project's own aliases.
	Aliases ports.PredefinedAliasProvider
	Runner  func(logger *zap.Logger, silent bool) ports.ToolRunner
	Files   func(projectDir string) (ports.ProjectFiles, error)
	// Prompter is nil when stdin is not a terminal.
	Prompter ports.VersionPrompter
	Out      io.Writer
}

// DefaultDeps returns the adapters used by the extension-scripts binary.
func DefaultDeps() Deps {
	deps := Deps{
		Resolver: manifest.NewPackageJSONResolver(time.Now),
		Runner: func(logger *zap.Logger, silent bool) ports.ToolRunner {
			return oscommand.NewOSCommandExecutor(logger, oscommand.WithSilent(silent))
		},
		Files: projectfs.NewProjectFiles,
		Out:   os.Stdout,
	}
	if provider, err := predefinedaliases.NewYAMLProvider(); err == nil {
		deps.Aliases = provider
	} else {
		fmt.Fprintln(os.Stderr, ui.Warning(fmt.Sprintf("Could not load the built-in aliases: %v", err)))
	}
	if tui.IsInteractive() {
		deps.Prompter = tui.NewBumpPicker(os.Stdin, os.Stdout)
	}
	return deps
}

// NewRootCommand creates the extension-scripts command. The first positional
// argument is the command token; everything after it is passed through.
func NewRootCommand(version string, deps Deps) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "extension-scripts <command> [args...]",
		Short: "Build, test and release PixiJS extensions.",
		Long: `extension-scripts runs the build, lint, test, docs and release tooling of a
PixiJS extension with shared defaults read from the project's package.json.

A command may be a single command, an alias such as "build", or a
comma-separated chain such as "build,docs". Extra arguments are handed to
every command in the chain.`,
		Version:       version,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRoot(cmd, args, version, deps)
		},
	}

	flags := cmd.Flags()
	flags.SetInterspersed(false)
	flags.String(keyLogLevel, "warn", "Diagnostic log level (debug, info, warn or error)")
	flags.String(keyCwd, "", "Project directory (default is the working directory)")
	flags.String(keyTag, actions.DefaultTag, "npm dist-tag used by publish")
	flags.Bool(keyList, false, "List the commands and aliases, then exit")

	return cmd
}

func runRoot(cmd *cobra.Command, args []string, version string, deps Deps) error {
	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	logger, err := logging.New(s.LogLevel)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	projectDir := s.Cwd
	if projectDir == "" {
		projectDir = "."
	}
	if projectDir, err = filepath.Abs(projectDir); err != nil {
		return fmt.Errorf("could not resolve the project directory: %w", err)
	}

	cfg, err := deps.Resolver.Resolve(projectDir)
	if err != nil {
		return err
	}
	logger.Debug("resolved configuration", zap.String("project", cfg.ProjectDir), zap.String("package", cfg.Package.Name))

	files, err := deps.Files(cfg.ProjectDir)
	if err != nil {
		return err
	}

	opts := []actions.Option{
		actions.WithOutput(deps.Out),
		actions.WithLogger(logger),
		actions.WithScriptsVersion(version),
		actions.WithTag(s.Tag),
	}
	if deps.Prompter != nil {
		opts = append(opts, actions.WithVersionPrompter(deps.Prompter))
	}
	runner := deps.Runner(logger, cfg.Silent)
	acts := actions.NewService(runner, files, templates.NewEmbedded(), semverbump.NewCalculator(), opts...)

	dispatcher, err := dispatch.NewService(cfg, deps.Aliases, acts.Handlers(), logger)
	if err != nil {
		return err
	}

	if s.List {
		renderList(deps.Out, dispatcher)
		return nil
	}

	token := ""
	var rest []string
	if len(args) > 0 {
		token, rest = args[0], args[1:]
	}
	return dispatcher.Dispatch(cmd.Context(), token, rest)
}

// Execute runs cmd and reports a failure on stderr. It returns the exit code.
func Execute(ctx context.Context, cmd *cobra.Command, stderr io.Writer) int {
	if err := cmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(stderr, ui.Error(err.Error()))
		return ExitFailure
	}
	return ExitSuccess
}
