package ui

import (
	"fmt"

	"github.com/fatih/color"
)

// Name is the tag every operator message starts with.
const Name = "[extension-scripts]"

// General Purpose Colors
var (
	WarningColor = color.New(color.FgYellow).SprintFunc()
	ErrorColor   = color.New(color.FgRed).SprintFunc()
	DetailColor  = color.New(color.FgHiBlack).SprintFunc() // For the prefix and echoed commands
)

// Listing Colors
var (
	HeaderColor   = color.New(color.FgGreen, color.Bold).SprintFunc()
	CommandColor  = color.New(color.FgBlue, color.Bold).SprintFunc()
	AliasCmdColor = color.New(color.FgWhite).SprintFunc()
)

// Prefix returns the gray message tag.
func Prefix() string {
	return DetailColor(Name)
}

// Echo formats an executed command line, e.g. "[extension-scripts] > rollup -c".
func Echo(commandLine string) string {
	return DetailColor(fmt.Sprintf("%s > %s", Name, commandLine))
}

// Error formats a fatal message for stderr.
func Error(msg string) string {
	return fmt.Sprintf("%s %s", Prefix(), ErrorColor("Error: "+msg))
}

// Warning formats a non-fatal notice.
func Warning(msg string) string {
	return fmt.Sprintf("%s %s", Prefix(), WarningColor(msg))
}
