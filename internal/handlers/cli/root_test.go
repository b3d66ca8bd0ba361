package cli

import (
	"bytes"
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/pixijs/extension-scripts/internal/core/domain/alias"
	"github.com/pixijs/extension-scripts/internal/core/domain/config"
	"github.com/pixijs/extension-scripts/internal/core/domain/failure"
	"github.com/pixijs/extension-scripts/internal/core/domain/tool"
	"github.com/pixijs/extension-scripts/internal/core/ports"
	"github.com/pixijs/extension-scripts/internal/core/testutil"
	"github.com/pixijs/extension-scripts/internal/handlers/ui"
	"go.uber.org/zap"
)

type testCLI struct {
	deps     Deps
	runner   *testutil.MockToolRunner
	files    *testutil.MockProjectFiles
	out      *bytes.Buffer
	stderr   *bytes.Buffer
	resolved string
	aliases  map[string]string
	silent   bool
}

func newTestCLI(t *testing.T) *testCLI {
	t.Helper()
	prev := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = prev })

	c := &testCLI{
		runner: &testutil.MockToolRunner{},
		out:    &bytes.Buffer{},
		stderr: &bytes.Buffer{},
	}
	c.deps = Deps{
		Resolver: &testutil.MockConfigResolver{
			ResolveFunc: func(projectDir string) (config.Configuration, error) {
				c.resolved = projectDir
				cfg := config.Defaults(projectDir, config.Package{Name: "@pixi/my-plugin", Version: "1.2.3"}, 2026)
				cfg.Aliases = c.aliases
				cfg.Silent = c.silent
				return cfg.Finalize(), nil
			},
		},
		Aliases: &testutil.MockPredefinedAliasProvider{
			GetPredefinedAliasesFunc: func() ([]alias.Alias, error) {
				return []alias.Alias{
					{Name: "build", Command: "clean,lint,types,bundle"},
					{Name: "deploy", Command: "build,docs,upload"},
					{Name: "release", Command: "bump,test,deploy,publish,git-push"},
				}, nil
			},
		},
		Runner: func(_ *zap.Logger, silent bool) ports.ToolRunner {
			if silent != c.silent {
				t.Errorf("runner built with silent = %v, want %v", silent, c.silent)
			}
			return c.runner
		},
		Files: func(projectDir string) (ports.ProjectFiles, error) {
			c.files = testutil.NewMockProjectFiles(projectDir)
			return c.files, nil
		},
		Out: c.out,
	}
	return c
}

func (c *testCLI) run(args ...string) int {
	cmd := NewRootCommand("3.1.0", c.deps)
	cmd.SetArgs(args)
	cmd.SetOut(c.out)
	cmd.SetErr(c.stderr)
	return Execute(context.Background(), cmd, c.stderr)
}

func TestRoot_DispatchesCommand(t *testing.T) {
	c := newTestCLI(t)
	dir := t.TempDir()

	if code := c.run("--cwd", dir, "git-push"); code != ExitSuccess {
		t.Fatalf("exit code = %d, stderr = %q", code, c.stderr.String())
	}
	if c.resolved != dir {
		t.Errorf("resolved project %q, want %q", c.resolved, dir)
	}
	want := []string{"git push", "git push --tags"}
	if got := c.runner.CommandLines(); !reflect.DeepEqual(got, want) {
		t.Errorf("ran %v, want %v", got, want)
	}
	for _, inv := range c.runner.Invocations() {
		if inv.Dir != dir {
			t.Errorf("%s ran in %q, want %q", inv.Name, inv.Dir, dir)
		}
	}
}

func TestRoot_PassesArgsThrough(t *testing.T) {
	c := newTestCLI(t)

	if code := c.run("--cwd", t.TempDir(), "lint", "--fix", "--cwd", "ignored"); code != ExitSuccess {
		t.Fatalf("exit code = %d, stderr = %q", code, c.stderr.String())
	}
	invs := c.runner.Invocations()
	if len(invs) != 1 || invs[0].Name != "eslint" {
		t.Fatalf("ran %v, want a single eslint run", c.runner.CommandLines())
	}
	args := invs[0].Args
	if tail := args[len(args)-3:]; !reflect.DeepEqual(tail, []string{"--fix", "--cwd", "ignored"}) {
		t.Errorf("eslint args end with %q, want the pass-through args", tail)
	}
}

func TestRoot_Failures(t *testing.T) {
	tests := []struct {
		name       string
		args       []string
		setup      func(c *testCLI)
		wantStderr string
	}{
		{
			name:       "unknown command",
			args:       []string{"frobnicate"},
			wantStderr: `[extension-scripts] Error: Unknown command "frobnicate". Only the following commands are supported: "build", "bump"`,
		},
		{
			name:       "no command",
			args:       []string{},
			wantStderr: `Error: Unknown command ""`,
		},
		{
			name:       "invalid log level",
			args:       []string{"--log-level", "loud", "clean"},
			wantStderr: `unknown log level "loud"`,
		},
		{
			name: "configuration failure",
			args: []string{"clean"},
			setup: func(c *testCLI) {
				c.deps.Resolver = &testutil.MockConfigResolver{
					ResolveFunc: func(string) (config.Configuration, error) {
						return config.Configuration{}, errors.New("no package.json")
					},
				}
			},
			wantStderr: "Error: no package.json",
		},
		{
			name: "tool failure",
			args: []string{"clean"},
			setup: func(c *testCLI) {
				c.runner.RunFunc = func(context.Context, tool.Invocation) error {
					return &failure.ToolInvocationError{Tool: "rimraf", ExitCode: 2}
				}
			},
			wantStderr: `Error: clean: "rimraf" exited with code 2`,
		},
		{
			name: "alias cycle",
			args: []string{"ci"},
			setup: func(c *testCLI) {
				c.aliases = map[string]string{"ci": "lint,ci"}
			},
			wantStderr: "alias cycle detected",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestCLI(t)
			if tt.setup != nil {
				tt.setup(c)
			}
			args := append([]string{"--cwd", t.TempDir()}, tt.args...)

			if code := c.run(args...); code != ExitFailure {
				t.Fatalf("exit code = %d, want %d", code, ExitFailure)
			}
			if !strings.Contains(c.stderr.String(), tt.wantStderr) {
				t.Errorf("stderr = %q, want it to contain %q", c.stderr.String(), tt.wantStderr)
			}
		})
	}
}

func TestRoot_AliasCycleRunsNothing(t *testing.T) {
	c := newTestCLI(t)
	c.aliases = map[string]string{"ci": "lint,ci"}

	c.run("--cwd", t.TempDir(), "ci")
	if len(c.runner.Invocations()) != 0 {
		t.Errorf("ran %v, want nothing", c.runner.CommandLines())
	}
}

func TestRoot_TagFromEnvironment(t *testing.T) {
	tests := []struct {
		name string
		env  string
		args []string
		want string
	}{
		{name: "default", want: "npm publish --tag latest"},
		{name: "environment", env: "next", want: "npm publish --tag next"},
		{name: "flag wins over environment", env: "next", args: []string{"--tag", "beta"}, want: "npm publish --tag beta"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("EXTENSION_SCRIPTS_TAG", tt.env)
			c := newTestCLI(t)
			args := append([]string{"--cwd", t.TempDir()}, tt.args...)
			args = append(args, "publish")

			if code := c.run(args...); code != ExitSuccess {
				t.Fatalf("exit code = %d, stderr = %q", code, c.stderr.String())
			}
			got := c.runner.CommandLines()
			if len(got) != 3 || got[1] != tt.want {
				t.Errorf("ran %v, want %q between clean-package runs", got, tt.want)
			}
		})
	}
}

func TestRoot_SilentRunner(t *testing.T) {
	c := newTestCLI(t)
	c.silent = true

	if code := c.run("--cwd", t.TempDir(), "types"); code != ExitSuccess {
		t.Fatalf("exit code = %d, stderr = %q", code, c.stderr.String())
	}
}

func TestRoot_Version(t *testing.T) {
	c := newTestCLI(t)

	if code := c.run("--cwd", t.TempDir(), "version"); code != ExitSuccess {
		t.Fatalf("exit code = %d, stderr = %q", code, c.stderr.String())
	}
	if got := c.out.String(); got != "v3.1.0\n" {
		t.Errorf("version printed %q", got)
	}
}

func TestRoot_List(t *testing.T) {
	c := newTestCLI(t)
	c.aliases = map[string]string{"ci": "build,test"}

	if code := c.run("--cwd", t.TempDir(), "--list"); code != ExitSuccess {
		t.Fatalf("exit code = %d, stderr = %q", code, c.stderr.String())
	}
	out := c.out.String()
	for _, want := range []string{
		"Available commands:",
		"git-push",
		"clean,lint,types,bundle",
		"build,test (clean,lint,types,bundle,test)",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("list output does not contain %q:\n%s", want, out)
		}
	}
	if len(c.runner.Invocations()) != 0 {
		t.Errorf("--list ran %v", c.runner.CommandLines())
	}
}

func TestRoot_ListColorsCells(t *testing.T) {
	c := newTestCLI(t)
	color.NoColor = false

	if code := c.run("--cwd", t.TempDir(), "--list"); code != ExitSuccess {
		t.Fatalf("exit code = %d, stderr = %q", code, c.stderr.String())
	}
	out := c.out.String()
	for _, want := range []string{
		ui.CommandColor("git-push"),
		ui.AliasCmdColor("clean,lint,types,bundle"),
	} {
		if !strings.Contains(out, want) {
			t.Errorf("list output does not contain %q:\n%s", want, out)
		}
	}
}
