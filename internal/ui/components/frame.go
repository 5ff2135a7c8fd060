package components

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/qrayti/internal/ui/theme"
)

// ContentWidth returns the inner width shared by every card on a screen,
// so stacked boxes line up.
func ContentWidth(frameWidth int) int {
	// Frame border (2) + inner padding (4)
	w := frameWidth - 6
	if w > 76 {
		w = 76
	}
	if w < 20 {
		w = 20
	}
	return w
}

// Frame wraps content in a rounded gold border and centers it in the
// given area.
func Frame(content string, width, height int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Primary).
		Width(width - 2).
		Height(height - 2).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}

// Card wraps content in a bordered card at the given content width.
func Card(content string, cw int) string {
	return theme.Card.Width(cw - 2).Render(content)
}

// HighlightCard is Card with an accent border, used for the item under
// the cursor.
func HighlightCard(content string, cw int) string {
	return theme.CardFocus.Width(cw - 2).Render(content)
}
