package dispatchers

import (
	"fmt"
	"strings"

	"github.com/footprint-tools/clikit/internal/signature"
	"github.com/footprint-tools/clikit/internal/ui/style"
)

const (
	helpColumnGap   = 4
	helpDescription = "Show help for this command"
)

// helpRow is one label/description line of a help block.
type helpRow struct {
	label       string
	description string
}

// UsageLine renders "[prefix ]name <req> [opt] [args...] [options]".
func UsageLine(c *Command) string {
	sig := c.Signature
	parts := []string{c.QualifiedName()}

	for _, arg := range sig.Arguments {
		if arg.Required {
			parts = append(parts, "<"+arg.Name+">")
		} else {
			parts = append(parts, "["+arg.Name+"]")
		}
	}
	if sig.AcceptsRest {
		parts = append(parts, "[args...]")
	}
	if len(sig.Options) > 0 {
		parts = append(parts, "[options]")
	}

	return strings.Join(parts, " ")
}

// RenderGlobalHelp lists every command of the registry, one section per
// namespace followed by the default namespace.
func RenderGlobalHelp(r *Registry) string {
	type section struct {
		title string
		rows  []helpRow
	}

	var sections []section
	for _, ns := range r.Namespaces() {
		cmds := ns.Commands()
		if len(cmds) == 0 {
			continue
		}
		sections = append(sections, section{title: ns.Title(), rows: commandRows(cmds)})
	}
	if cmds := r.Commands(); len(cmds) > 0 {
		sections = append(sections, section{title: "Commands", rows: commandRows(cmds)})
	}

	width := 0
	for _, s := range sections {
		width = max(width, labelWidth(s.rows))
	}

	var out strings.Builder
	fmt.Fprintf(&out, "Usage: %s <command> [arguments] [options]\n", style.Info(r.Program))

	for _, s := range sections {
		out.WriteString("\n")
		out.WriteString(style.Header(s.title))
		out.WriteString("\n")
		writeRows(&out, s.rows, width)
	}

	fmt.Fprintf(&out, "\nRun '%s <command> --help' for more information on a command.\n", r.Program)
	return out.String()
}

// RenderCommandHelp renders the usage line, description, arguments and
// options of c.
func RenderCommandHelp(c *Command) string {
	sig := c.Signature

	var out strings.Builder
	fmt.Fprintf(&out, "Usage: %s\n", style.Info(UsageLine(c)))

	if c.Description != "" {
		out.WriteString("\n")
		out.WriteString(c.Description)
		out.WriteString("\n")
	}

	if len(sig.Arguments) > 0 {
		rows := make([]helpRow, 0, len(sig.Arguments))
		for _, arg := range sig.Arguments {
			desc := arg.Description
			if arg.Required {
				desc = strings.TrimSpace(desc + " (required)")
			}
			rows = append(rows, helpRow{label: arg.Name, description: desc})
		}
		out.WriteString("\n")
		out.WriteString(style.Header("Arguments:"))
		out.WriteString("\n")
		writeRows(&out, rows, labelWidth(rows))
	}

	rows := make([]helpRow, 0, len(sig.Options)+1)
	for _, opt := range sig.Options {
		rows = append(rows, helpRow{label: optionLabel(opt), description: opt.Description})
	}
	rows = append(rows, helpRow{label: "--help, -h", description: helpDescription})

	out.WriteString("\n")
	out.WriteString(style.Header("Options:"))
	out.WriteString("\n")
	writeRows(&out, rows, labelWidth(rows))

	return out.String()
}

func commandRows(cmds []*Command) []helpRow {
	rows := make([]helpRow, 0, len(cmds))
	for _, c := range cmds {
		label := c.QualifiedName()
		if c.Signature.AcceptsRest {
			label += " ..."
		}
		rows = append(rows, helpRow{label: label, description: c.Description})
	}
	return rows
}

func optionLabel(opt signature.OptionSpec) string {
	label := opt.Flag()
	if opt.AcceptsValue {
		label += " <value>"
	}
	if opt.Short != "" {
		label += ", " + opt.Short
	}
	return label
}

func labelWidth(rows []helpRow) int {
	width := 0
	for _, r := range rows {
		width = max(width, len(r.label))
	}
	return width + helpColumnGap
}

// writeRows pads labels before styling so escape codes do not shift columns.
func writeRows(out *strings.Builder, rows []helpRow, width int) {
	for _, r := range rows {
		if r.description == "" {
			fmt.Fprintf(out, "  %s\n", style.Info(r.label))
			continue
		}
		fmt.Fprintf(out, "  %s%s\n", style.Info(fmt.Sprintf("%-*s", width, r.label)), r.description)
	}
}
