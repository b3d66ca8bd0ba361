package dispatch

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/pixijs/extension-scripts/internal/core/domain/alias"
	"github.com/pixijs/extension-scripts/internal/core/domain/command"
	"github.com/pixijs/extension-scripts/internal/core/domain/config"
	"github.com/pixijs/extension-scripts/internal/core/domain/failure"
	"github.com/pixijs/extension-scripts/internal/core/ports"
	"github.com/pixijs/extension-scripts/internal/core/testutil"
)

var builtInAliases = []alias.Alias{
	{Name: "build", Command: "clean,lint,types,bundle"},
	{Name: "deploy", Command: "build,docs,upload"},
	{Name: "release", Command: "bump,test,deploy,publish,git-push"},
}

// recorder builds a handler for every terminal command that appends its name
// and args to calls. Commands listed in failing return errBoom.
type recorder struct {
	calls   []string
	args    [][]string
	failing map[string]bool
}

var errBoom = errors.New("boom")

func (r *recorder) handlers() map[command.Name]ports.ActionHandler {
	out := map[command.Name]ports.ActionHandler{}
	for _, n := range command.All() {
		if n == command.Build || n == command.Deploy || n == command.Release {
			continue
		}
		name := string(n)
		out[n] = func(_ context.Context, _ config.Configuration, args []string) error {
			r.calls = append(r.calls, name)
			r.args = append(r.args, args)
			if r.failing[name] {
				return errBoom
			}
			return nil
		}
	}
	return out
}

func newTestService(t *testing.T, cfg config.Configuration, r *recorder) ports.CommandDispatcher {
	t.Helper()
	provider := &testutil.MockPredefinedAliasProvider{
		GetPredefinedAliasesFunc: func() ([]alias.Alias, error) { return builtInAliases, nil },
	}
	svc, err := NewService(cfg, provider, r.handlers(), nil)
	if err != nil {
		t.Fatalf("NewService() unexpected error = %v", err)
	}
	return svc
}

func TestNewService_ProviderError(t *testing.T) {
	provider := &testutil.MockPredefinedAliasProvider{
		GetPredefinedAliasesFunc: func() ([]alias.Alias, error) { return nil, errors.New("bad yaml") },
	}
	if _, err := NewService(config.Configuration{}, provider, nil, nil); err == nil {
		t.Fatal("NewService() expected error when the provider fails")
	}
}

func TestNewService_NilProvider(t *testing.T) {
	svc, err := NewService(config.Configuration{}, nil, (&recorder{}).handlers(), nil)
	if err != nil {
		t.Fatalf("NewService() unexpected error = %v", err)
	}
	if len(svc.Aliases()) != 0 {
		t.Errorf("Aliases() = %v, want none without a provider", svc.Aliases())
	}
}

func TestDispatch_AliasMatchesManualSequence(t *testing.T) {
	for _, a := range builtInAliases {
		t.Run(a.Name, func(t *testing.T) {
			viaAlias := &recorder{}
			if err := newTestService(t, config.Configuration{}, viaAlias).Dispatch(context.Background(), a.Name, []string{"--x"}); err != nil {
				t.Fatalf("Dispatch(%s) unexpected error = %v", a.Name, err)
			}

			manual := &recorder{}
			svc := newTestService(t, config.Configuration{}, manual)
			for _, part := range strings.Split(a.Command, ",") {
				if err := svc.Dispatch(context.Background(), part, []string{"--x"}); err != nil {
					t.Fatalf("Dispatch(%s) unexpected error = %v", part, err)
				}
			}

			if !reflect.DeepEqual(viaAlias.calls, manual.calls) {
				t.Errorf("alias ran %v, manual sequence ran %v", viaAlias.calls, manual.calls)
			}
			for _, args := range viaAlias.args {
				if !reflect.DeepEqual(args, []string{"--x"}) {
					t.Errorf("sub-command got args %v, want the original args", args)
				}
			}
		})
	}
}

func TestPlan(t *testing.T) {
	tests := []struct {
		name    string
		aliases map[string]string
		token   string
		want    []string
	}{
		{name: "terminal", token: "lint", want: []string{"lint"}},
		{name: "build", token: "build", want: []string{"clean", "lint", "types", "bundle"}},
		{
			name:  "release nests deploy and build",
			token: "release",
			want: []string{
				"bump", "test",
				"clean", "lint", "types", "bundle", "docs", "upload",
				"publish", "git-push",
			},
		},
		{name: "chain", token: "types,docs", want: []string{"types", "docs"}},
		{name: "blank chain parts are skipped", token: "lint,, test,", want: []string{"lint", "test"}},
		{name: "same alias twice is not a cycle", token: "build,build", want: []string{"clean", "lint", "types", "bundle", "clean", "lint", "types", "bundle"}},
		{name: "project override", aliases: map[string]string{"build": "lint,bundle"}, token: "build", want: []string{"lint", "bundle"}},
		{name: "project alias", aliases: map[string]string{"check": "lint,types"}, token: "check", want: []string{"lint", "types"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestService(t, config.Configuration{Aliases: tt.aliases}, &recorder{})
			got, err := svc.Plan(tt.token)
			if err != nil {
				t.Fatalf("Plan(%q) unexpected error = %v", tt.token, err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Plan(%q) = %v, want %v", tt.token, got, tt.want)
			}
		})
	}
}

func TestDispatch_FailFast(t *testing.T) {
	r := &recorder{failing: map[string]bool{"types": true}}
	svc := newTestService(t, config.Configuration{}, r)

	err := svc.Dispatch(context.Background(), "lint,types,bundle", nil)
	if !errors.Is(err, errBoom) {
		t.Fatalf("Dispatch() error = %v, want errBoom", err)
	}
	if !reflect.DeepEqual(r.calls, []string{"lint", "types"}) {
		t.Errorf("ran %v, want bundle never to run", r.calls)
	}
}

func TestDispatch_UnknownCommand(t *testing.T) {
	tests := []string{"frobnicate", "lint,frobnicate", "", ",", " , "}

	for _, token := range tests {
		t.Run(token, func(t *testing.T) {
			r := &recorder{}
			err := newTestService(t, config.Configuration{}, r).Dispatch(context.Background(), token, nil)

			var unknown *failure.UnknownCommandError
			if !errors.As(err, &unknown) {
				t.Fatalf("Dispatch(%q) error = %v, want *failure.UnknownCommandError", token, err)
			}
			for _, n := range command.All() {
				found := false
				for _, v := range unknown.Valid {
					if v == string(n) {
						found = true
						break
					}
				}
				if !found {
					t.Errorf("valid set %v is missing %q", unknown.Valid, n)
				}
			}
			if len(r.calls) != 0 {
				t.Errorf("ran %v, want nothing", r.calls)
			}
		})
	}
}

func TestDispatch_CyclicAlias(t *testing.T) {
	tests := []struct {
		name     string
		aliases  map[string]string
		token    string
		wantPath []string
	}{
		{name: "self", aliases: map[string]string{"loop": "lint,loop"}, token: "loop", wantPath: []string{"loop", "loop"}},
		{name: "mutual", aliases: map[string]string{"a": "b", "b": "lint,a"}, token: "a", wantPath: []string{"a", "b", "a"}},
		{name: "through a built-in", aliases: map[string]string{"build": "clean,deploy"}, token: "deploy", wantPath: []string{"deploy", "build", "deploy"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &recorder{}
			err := newTestService(t, config.Configuration{Aliases: tt.aliases}, r).Dispatch(context.Background(), tt.token, nil)

			var cyclic *failure.CyclicAliasError
			if !errors.As(err, &cyclic) {
				t.Fatalf("Dispatch() error = %v, want *failure.CyclicAliasError", err)
			}
			if !reflect.DeepEqual(cyclic.Path, tt.wantPath) {
				t.Errorf("cycle path = %v, want %v", cyclic.Path, tt.wantPath)
			}
			if len(r.calls) != 0 {
				t.Errorf("ran %v before detecting the cycle, want nothing", r.calls)
			}
		})
	}
}

func TestDispatch_StopsWhenCancelled(t *testing.T) {
	r := &recorder{}
	svc := newTestService(t, config.Configuration{}, r)
	ctx, cancel := context.WithCancel(context.Background())

	handlers := r.handlers()
	handlers[command.Lint] = func(context.Context, config.Configuration, []string) error {
		r.calls = append(r.calls, "lint")
		cancel()
		return nil
	}
	svc.(*Service).handlers = handlers

	err := svc.Dispatch(ctx, "lint,test", nil)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Dispatch() error = %v, want context.Canceled", err)
	}
	if !reflect.DeepEqual(r.calls, []string{"lint"}) {
		t.Errorf("ran %v, want only lint", r.calls)
	}
}

func TestDispatch_PassesConfiguration(t *testing.T) {
	cfg := config.Configuration{Namespace: "PIXI.thing"}
	var seen string
	handlers := map[command.Name]ports.ActionHandler{
		command.Docs: func(_ context.Context, c config.Configuration, _ []string) error {
			seen = c.Namespace
			return nil
		},
	}
	svc, err := NewService(cfg, nil, handlers, nil)
	if err != nil {
		t.Fatalf("NewService() unexpected error = %v", err)
	}
	if err := svc.Dispatch(context.Background(), "docs", nil); err != nil {
		t.Fatalf("Dispatch() unexpected error = %v", err)
	}
	if seen != "PIXI.thing" {
		t.Errorf("handler saw namespace %q", seen)
	}
}

func TestCommands(t *testing.T) {
	svc := newTestService(t, config.Configuration{Aliases: map[string]string{"zz": "lint", "check": "test"}}, &recorder{})
	got := svc.Commands()

	want := make([]string, 0, len(command.All())+2)
	for _, n := range command.All() {
		want = append(want, string(n))
	}
	want = append(want, "check", "zz")
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Commands() = %v, want %v", got, want)
	}
}
