// Package output renders human-facing command output.
package output

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

var currentBranchStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("2"))

// colorEnabled reports whether the terminal supports colored output
func colorEnabled() bool {
	return termenv.EnvColorProfile() != termenv.Ascii
}

// BranchLine is one row of a branch listing
type BranchLine struct {
	Name    string
	Current bool
}

// FormatBranchList renders branch short names one per line, marking the
// currently checked-out branch with an asterisk.
func FormatBranchList(lines []BranchLine) string {
	var sb strings.Builder
	styled := colorEnabled()
	for _, line := range lines {
		if line.Current {
			name := line.Name
			if styled {
				name = currentBranchStyle.Render(name)
			}
			sb.WriteString("* " + name + "\n")
			continue
		}
		sb.WriteString("  " + line.Name + "\n")
	}
	return sb.String()
}
