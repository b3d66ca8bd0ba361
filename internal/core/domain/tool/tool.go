// Package tool describes a single external tool invocation.
package tool

import "strings"

// Invocation is one external process to launch: a tool name resolved against the
// project's node_modules/.bin and PATH, its arguments, and the working directory.
type Invocation struct {
	Name string
	Args []string
	Dir  string
}

// New builds an Invocation with its args flattened in order.
func New(dir, name string, args ...[]string) Invocation {
	var flat []string
	for _, group := range args {
		flat = append(flat, group...)
	}
	return Invocation{Name: name, Args: flat, Dir: dir}
}

// String renders the invocation unquoted, mostly for logs and tests.
func (i Invocation) String() string {
	if len(i.Args) == 0 {
		return i.Name
	}
	return i.Name + " " + strings.Join(i.Args, " ")
}
