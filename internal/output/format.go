// Package output provides terminal output formatting and CI step outputs for
// the tagsmith CLI. This package is designed to have minimal dependencies to
// avoid import cycles.
package output

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// GetTerminalWidth returns the terminal width, defaulting to 80 if unavailable.
func GetTerminalWidth() int {
	if width, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && width > 0 {
		return width
	}
	return 80
}

// IsTerminal reports whether w is an interactive terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// PrintRule prints a dim separator carrying label, sized to the terminal.
// Nothing is printed when out is not a terminal so piped output stays clean.
func PrintRule(out io.Writer, label string) {
	if !IsTerminal(out) {
		return
	}
	magenta := color.New(color.FgMagenta, color.Faint).SprintFunc()

	label = " " + label + " "
	lineLen := (GetTerminalWidth() - len(label)) / 2
	if lineLen < 3 {
		lineLen = 3
	}

	line := strings.Repeat("─", lineLen)
	fmt.Fprintf(out, "%s%s%s\n", magenta(line), magenta(label), magenta(line))
}

// PrintField prints an aligned "name: value" status line.
func PrintField(out io.Writer, name, value string) {
	cyan := color.New(color.FgCyan).SprintFunc()
	fmt.Fprintf(out, "%-10s %s\n", name+":", cyan(value))
}

// PrintSuccess prints a green check followed by message.
func PrintSuccess(out io.Writer, message string) {
	green := color.New(color.FgGreen, color.Bold).SprintFunc()
	fmt.Fprintf(out, "%s %s\n", green("✓"), message)
}

// PrintNotice prints a yellow notice, used for skipped and dry runs.
func PrintNotice(out io.Writer, message string) {
	yellow := color.New(color.FgYellow, color.Bold).SprintFunc()
	fmt.Fprintf(out, "%s %s\n", yellow("!"), message)
}
