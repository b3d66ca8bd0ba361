package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/pixijs/extension-scripts/internal/core/domain/command"
	"github.com/pixijs/extension-scripts/internal/core/ports"
	"github.com/pixijs/extension-scripts/internal/handlers/ui"
)

// renderList prints every dispatchable name with what it runs. Aliases show
// their expansion and, when it differs, the terminal commands it reaches.
func renderList(out io.Writer, dispatcher ports.CommandDispatcher) {
	expansions := make(map[string]string)
	for _, a := range dispatcher.Aliases() {
		expansions[a.Name] = a.Command
	}

	fmt.Fprintln(out, ui.HeaderColor("Available commands:"))

	table := tablewriter.NewWriter(out)
	table.SetHeader([]string{"Command", "Runs"})
	table.SetBorder(true)
	table.SetAutoWrapText(false)
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT})

	for _, name := range dispatcher.Commands() {
		runs := "-"
		if expansion, ok := expansions[name]; ok {
			runs = expansion
			steps, err := dispatcher.Plan(name)
			switch {
			case err != nil:
				runs = fmt.Sprintf("%s (%v)", expansion, err)
			case strings.Join(steps, command.Separator) != expansion:
				runs = fmt.Sprintf("%s (%s)", expansion, strings.Join(steps, command.Separator))
			}
		}
		table.Append([]string{ui.CommandColor(name), ui.AliasCmdColor(runs)})
	}
	table.Render()
}
