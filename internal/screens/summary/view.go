package summary

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/qrayti/internal/api"
	sum "github.com/abhisek/qrayti/internal/summary"
	"github.com/abhisek/qrayti/internal/ui/components"
	"github.com/abhisek/qrayti/internal/ui/theme"
)

func (s *SummaryScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	switch s.state.Phase {
	case sum.PhaseLoading:
		return place(width, height, message(cw, theme.Title,
			"Création du résumé...",
			fmt.Sprintf("Analyse de %s. Cela peut prendre 15 à 60 secondes.", s.opts.Content.FileName)))
	case sum.PhaseError:
		msg := "Erreur inconnue."
		if s.state.Err != nil {
			msg = s.state.Err.Error()
		}
		return place(width, height, message(cw, theme.Incorrect, "Erreur de génération", msg+"\n\nR pour réessayer."))
	case sum.PhaseEmpty:
		return place(width, height, message(cw, theme.Pending,
			"Aucun résumé généré",
			"Le contenu est peut-être trop court.\n\nR pour réessayer."))
	}

	return s.renderSections(width, height, cw)
}

func place(width, height int, body string) string {
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, body)
}

func message(cw int, headline lipgloss.Style, title, detail string) string {
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(headline.Render(title) + "\n\n" + theme.Hint.Render(detail))
}

// renderSections lays every section out and scrolls so the one under the
// cursor is visible.
func (s *SummaryScreen) renderSections(width, height, cw int) string {
	terms, points := s.state.Stats()
	header := theme.Heading.Render("Résumé structuré") + "  " + theme.Hint.Render(fmt.Sprintf(
		"%d sections · %d termes clés · %d points essentiels",
		len(s.state.Sections), terms, points))
	if s.notice != "" {
		header += "\n" + theme.Incorrect.Render(s.notice)
	}

	copied, hasCopied := s.state.CopiedIndex(s.now())

	var lines []string
	var curStart, curEnd int
	for i, sec := range s.state.Sections {
		block := renderSection(i, sec, cw, i == s.cursor, s.state.IsExpanded(i), hasCopied && copied == i)
		if i == s.cursor {
			curStart = len(lines)
		}
		lines = append(lines, strings.Split(block, "\n")...)
		if i == s.cursor {
			curEnd = len(lines)
		}
	}

	var cta string
	if s.opts.Quiz != nil {
		cta = "\n\n" + theme.Hint.Render("Générez un quiz basé sur ce résumé pour consolider votre apprentissage (Q).")
	}

	view := max(1, height-lipgloss.Height(header)-lipgloss.Height(cta)-1)
	// Keep the cursor's title in view, and as much of its body as fits.
	if curEnd-s.offset > view {
		s.offset = min(curStart, curEnd-view)
	}
	if curStart < s.offset {
		s.offset = curStart
	}
	s.offset = max(0, min(s.offset, len(lines)-view))

	end := min(len(lines), s.offset+view)
	body := strings.Join(lines[s.offset:end], "\n")

	return lipgloss.PlaceHorizontal(width, lipgloss.Center,
		lipgloss.NewStyle().Width(cw).Render(header+"\n\n"+body+cta))
}

func renderSection(i int, sec api.SummarySection, cw int, focused, expanded, copied bool) string {
	arrow := "▸"
	if expanded {
		arrow = "▾"
	}
	titleStyle := lipgloss.NewStyle().Foreground(theme.Text).Bold(true)
	if focused {
		titleStyle = theme.Selected
	}
	title := titleStyle.Render(fmt.Sprintf("%s %d. %s", arrow, i+1, sec.Title))
	if copied {
		title += "  " + theme.Correct.Render("✓ Copié!")
	}

	var b strings.Builder
	b.WriteString(title)

	if expanded {
		text := lipgloss.NewStyle().Width(cw - 6).Foreground(theme.Text)
		dim := lipgloss.NewStyle().Width(cw - 8).Foreground(theme.TextDim)

		if c := strings.TrimSpace(sec.Content); c != "" {
			b.WriteString("\n\n")
			b.WriteString(text.Render(c))
		}

		if len(sec.KeyTerms) > 0 {
			b.WriteString("\n\n")
			b.WriteString(theme.Heading.Render("Termes clés"))
			for _, kt := range sec.KeyTerms {
				b.WriteString("\n")
				b.WriteString(text.Render(theme.Selected.Render(kt.Term) + ": " + kt.Definition))
				if kt.DefinitionDarija != "" {
					b.WriteString("\n  ")
					b.WriteString(dim.Render(kt.DefinitionDarija))
				}
			}
		}

		if len(sec.EssentialPoints) > 0 {
			b.WriteString("\n\n")
			b.WriteString(theme.Heading.Render("Points essentiels"))
			for _, p := range sec.EssentialPoints {
				b.WriteString("\n")
				b.WriteString(text.Render("• " + p))
			}
		}
	}

	if focused {
		return components.HighlightCard(b.String(), cw)
	}
	return components.Card(b.String(), cw)
}
