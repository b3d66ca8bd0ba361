/*
Package command defines the fixed set of command names understood by extension-scripts.
*/
package command

import "strings"

// Name is a single command token, e.g. "build" or "git-push".
type Name string

// Supported commands.
const (
	Build   Name = "build"
	Bump    Name = "bump"
	Bundle  Name = "bundle"
	Clean   Name = "clean"
	Deploy  Name = "deploy"
	Docs    Name = "docs"
	GitPush Name = "git-push"
	Lint    Name = "lint"
	Pack    Name = "pack"
	Publish Name = "publish"
	Release Name = "release"
	Serve   Name = "serve"
	Test    Name = "test"
	Types   Name = "types"
	Upload  Name = "upload"
	Version Name = "version"
	Watch   Name = "watch"
)

// Separator joins command names into a chain, e.g. "build,docs,test".
const Separator = ","

var all = []Name{
	Build, Bump, Bundle, Clean, Deploy, Docs, GitPush, Lint, Pack,
	Publish, Release, Serve, Test, Types, Upload, Version, Watch,
}

// All returns every supported command name in declaration order.
func All() []Name {
	out := make([]Name, len(all))
	copy(out, all)
	return out
}

// IsKnown reports whether name is one of the supported commands.
func IsKnown(name string) bool {
	for _, n := range all {
		if string(n) == name {
			return true
		}
	}
	return false
}

// IsChain reports whether the token holds more than one command.
func IsChain(token string) bool {
	return strings.Contains(token, Separator)
}

// SplitChain breaks a chain into its ordered parts. Blank parts are dropped.
func SplitChain(token string) []string {
	parts := strings.Split(token, Separator)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
