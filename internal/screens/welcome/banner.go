package welcome

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/qrayti/internal/ui/theme"
)

const bannerArt = `
 ██████╗ ██████╗  █████╗ ██╗   ██╗████████╗██╗
██╔═══██╗██╔══██╗██╔══██╗╚██╗ ██╔╝╚══██╔══╝██║
██║   ██║██████╔╝███████║ ╚████╔╝    ██║   ██║
██║▄▄ ██║██╔══██╗██╔══██║  ╚██╔╝     ██║   ██║
╚██████╔╝██║  ██║██║  ██║   ██║      ██║   ██║
 ╚══▀▀═╝ ╚═╝  ╚═╝╚═╝  ╚═╝   ╚═╝      ╚═╝   ╚═╝`

const bannerCompact = "Q R A Y T I"

// RenderBanner returns the QRAYTI banner in the primary color, or a
// compact fallback below 50 columns.
func RenderBanner(width int) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	if width < 50 {
		return style.Render(bannerCompact)
	}
	return style.Render(bannerArt)
}
