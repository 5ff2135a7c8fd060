package home

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/qrayti/internal/monitor"
	"github.com/abhisek/qrayti/internal/ui/components"
	"github.com/abhisek/qrayti/internal/ui/theme"
)

const titleFull = ` ██████╗ ██████╗  █████╗ ██╗   ██╗████████╗██╗
██╔═══██╗██╔══██╗██╔══██╗╚██╗ ██╔╝╚══██╔══╝██║
██║   ██║██████╔╝███████║ ╚████╔╝    ██║   ██║
██║▄▄ ██║██╔══██╗██╔══██║  ╚██╔╝     ██║   ██║
╚██████╔╝██║  ██║██║  ██║   ██║      ██║   ██║
 ╚══▀▀═╝ ╚═╝  ╚═╝╚═╝  ╚═╝   ╚═╝      ╚═╝   ╚═╝`

const titleCompact = "Q · R · A · Y · T · I"

const tagline = "Votre compagnon d'étude marocain"

func (h *HomeScreen) View(width, height int) string {
	compact := height < 22 || width < 100
	cw := components.ContentWidth(width)

	var sections []string
	sections = append(sections, renderTitle(cw, compact))
	sections = append(sections, components.Card(renderStatus(h.status()), cw))
	sections = append(sections, components.Card(h.renderPicker(cw), cw))

	return components.Frame(strings.Join(sections, "\n\n"), width, height)
}

func renderTitle(cw int, compact bool) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	art := titleFull
	if compact {
		art = titleCompact
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(style.Render(art) + "\n" + theme.Hint.Render(tagline))
}

func renderStatus(st monitor.Status) string {
	line := components.StatusLine(st)
	if st.State == monitor.Disconnected && st.Checked() {
		line += "\n" + theme.Hint.Render("Ctrl+R pour réessayer.")
	}
	return line
}

func (h *HomeScreen) renderPicker(cw int) string {
	var b strings.Builder
	b.WriteString(theme.Heading.Render("Document PDF, DOC ou DOCX (50 Mo max)"))
	b.WriteString("\n\n")

	if h.uploading {
		b.WriteString(lipgloss.NewStyle().
			Foreground(theme.Warning).
			Render(fmt.Sprintf("Envoi de %s et extraction du texte...", h.uploadName)))
		b.WriteString("\n")
		b.WriteString(theme.Hint.Render("Esc pour annuler."))
		return b.String()
	}

	b.WriteString(h.input.View())
	if h.errMsg != "" {
		b.WriteString("\n\n")
		b.WriteString(lipgloss.NewStyle().
			Width(cw - 4).
			Foreground(theme.Error).
			Render(h.errMsg))
	}
	b.WriteString("\n\n")
	b.WriteString(theme.Hint.Render("Ctrl+D ouvre un cours de démonstration."))
	return b.String()
}
