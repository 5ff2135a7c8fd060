package components

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/qrayti/internal/monitor"
	"github.com/abhisek/qrayti/internal/ui/theme"
)

// StatusBadge renders a one-line backend readiness indicator.
func StatusBadge(st monitor.Status) string {
	style := theme.Incorrect
	dot := "●"
	switch {
	case !st.Checked():
		style = theme.Pending
		dot = "○"
	case st.State == monitor.Ready:
		style = theme.Correct
	case st.State == monitor.Starting:
		style = theme.Pending
	}

	label := st.State.String()
	if !st.Checked() {
		label = "checking"
	}
	if st.State == monitor.Ready && st.ModelType != "" {
		label += " · " + st.ModelType
	}
	return style.Render(dot + " " + label)
}

// StatusLine renders the badge followed by the status message.
func StatusLine(st monitor.Status) string {
	return StatusBadge(st) + "  " + lipgloss.NewStyle().Foreground(theme.TextDim).Render(st.Message)
}
