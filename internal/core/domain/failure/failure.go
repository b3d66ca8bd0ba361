// Package failure holds the error kinds surfaced to the operator.
package failure

import (
	"fmt"
	"strings"
)

// ConfigurationError reports a missing, unreadable or malformed project manifest.
type ConfigurationError struct {
	Path string
	Err  error
}

func (e *ConfigurationError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("invalid project configuration in %s", e.Path)
	}
	return fmt.Sprintf("invalid project configuration in %s: %v", e.Path, e.Err)
}

func (e *ConfigurationError) Unwrap() error { return e.Err }

// UnknownCommandError reports a token that is neither a command nor an alias.
type UnknownCommandError struct {
	Command string
	Valid   []string
}

func (e *UnknownCommandError) Error() string {
	return fmt.Sprintf(`Unknown command %q. Only the following commands are supported: "%s"`,
		e.Command, strings.Join(e.Valid, `", "`))
}

// MissingDirectoryError reports a required project folder that does not exist.
type MissingDirectoryError struct {
	Dir string
}

func (e *MissingDirectoryError) Error() string {
	return fmt.Sprintf("No %q folder found, stopping.", e.Dir)
}

// ToolInvocationError reports an external tool that could not be started
// (Spawn is true) or that exited with a non-zero code.
type ToolInvocationError struct {
	Tool     string
	ExitCode int
	Spawn    bool
	Err      error
}

func (e *ToolInvocationError) Error() string {
	if e.Spawn {
		return fmt.Sprintf("could not start %q: %v", e.Tool, e.Err)
	}
	return fmt.Sprintf("%q exited with code %d", e.Tool, e.ExitCode)
}

func (e *ToolInvocationError) Unwrap() error { return e.Err }

// CyclicAliasError reports an alias that expands back into itself.
// Path lists the aliases in expansion order, ending with the repeated one.
type CyclicAliasError struct {
	Path []string
}

func (e *CyclicAliasError) Error() string {
	return fmt.Sprintf("alias cycle detected: %s", strings.Join(e.Path, " -> "))
}
