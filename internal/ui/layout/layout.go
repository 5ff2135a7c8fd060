// Package layout draws the frame around the active screen.
package layout

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/qrayti/internal/ui/theme"
)

// Minimum terminal size the frame can be drawn in.
const (
	MinWidth  = 60
	MinHeight = 20
)

const brand = "◆ Qrayti"

// KeyHint represents a key binding hint shown in the footer.
type KeyHint struct {
	Key         string
	Description string
}

// IsTooSmall returns true if the terminal is below minimum size.
func IsTooSmall(width, height int) bool {
	return width < MinWidth || height < MinHeight
}

// RenderMinSizeMessage renders the "terminal too small" message.
func RenderMinSizeMessage(width, height int) string {
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		lipgloss.NewStyle().
			Align(lipgloss.Center).
			Foreground(theme.Text).
			Render(fmt.Sprintf(
				"Terminal trop petit.\n\nAgrandissez la fenêtre à au moins %d x %d\n(actuellement %d x %d)",
				MinWidth, MinHeight, width, height,
			)))
}

// RenderHeader renders a one-line bar: brand and screen title on the left,
// right (an already styled segment, usually the readiness badge) flush
// right. The title is truncated before the badge is.
func RenderHeader(title, right string, width int) string {
	left := theme.Selected.Render(brand)
	if title != "" {
		left += lipgloss.NewStyle().Foreground(theme.TextDim).Render("  ›  ")
		left += theme.Body.Render(title)
	}

	inner := max(0, width-theme.Header.GetHorizontalPadding())
	if lipgloss.Width(left)+lipgloss.Width(right)+1 > inner {
		left = theme.Selected.Render(brand)
	}
	gap := max(1, inner-lipgloss.Width(left)-lipgloss.Width(right))

	return theme.Header.Width(width).Render(left + strings.Repeat(" ", gap) + right)
}

// RenderFooter renders the key hints on one line. Hints that do not fit in
// width are dropped from the end.
func RenderFooter(hints []KeyHint, width int) string {
	keyStyle := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(theme.TextDim)
	sep := descStyle.Render("  ·  ")

	inner := max(0, width-theme.Footer.GetHorizontalPadding())
	var b strings.Builder
	for i, h := range hints {
		part := keyStyle.Render(h.Key) + " " + descStyle.Render(h.Description)
		if i > 0 {
			part = sep + part
		}
		if lipgloss.Width(b.String())+lipgloss.Width(part) > inner {
			break
		}
		b.WriteString(part)
	}

	return theme.Footer.Width(width).Render(b.String())
}

// RenderFrame stacks header, content and footer, giving the content every
// row the bars leave free.
func RenderFrame(header, content, footer string, width, height int) string {
	body := max(0, height-lipgloss.Height(header)-lipgloss.Height(footer))
	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		lipgloss.NewStyle().Width(width).Height(body).MaxHeight(body).Render(content),
		footer,
	)
}
