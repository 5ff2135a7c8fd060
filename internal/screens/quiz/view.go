package quiz

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/qrayti/internal/quiz"
	"github.com/abhisek/qrayti/internal/ui/components"
	"github.com/abhisek/qrayti/internal/ui/theme"
)

func (s *QuizScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	var body string
	switch s.state.Phase {
	case quiz.PhaseLoading:
		body = renderMessage(cw, theme.Title,
			"Génération du quiz...",
			fmt.Sprintf("%d questions sur %s. Cela peut prendre 15 à 60 secondes.",
				s.opts.NumQuestions, s.opts.Content.FileName))
	case quiz.PhaseError:
		msg := "Erreur inconnue."
		if s.state.Err != nil {
			msg = s.state.Err.Error()
		}
		body = renderMessage(cw, theme.Incorrect, "Erreur de génération", msg+"\n\nR pour réessayer.")
	case quiz.PhaseEmpty:
		body = renderMessage(cw, theme.Pending,
			"Aucune question générée",
			"Le contenu est peut-être trop court.\n\nR pour réessayer.")
	case quiz.PhaseActive:
		body = s.renderQuestion(cw)
	case quiz.PhaseComplete:
		body = s.renderReport(cw)
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, body)
}

func renderMessage(cw int, headline lipgloss.Style, title, detail string) string {
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(headline.Render(title) + "\n\n" + theme.Hint.Render(detail))
}

func (s *QuizScreen) renderQuestion(cw int) string {
	st := s.state
	var b strings.Builder

	header := lipgloss.NewStyle().Foreground(theme.TextDim).
		Render(fmt.Sprintf("Question %d/%d", st.CurrentIndex+1, st.Total()))
	score := theme.Selected.Render(fmt.Sprintf("Score: %d", st.Score))
	gap := max(1, cw-lipgloss.Width(header)-lipgloss.Width(score))
	b.WriteString(header + strings.Repeat(" ", gap) + score)
	b.WriteString("\n")
	b.WriteString(components.NewStepBar(st.CurrentIndex, st.Total(), cw).View())
	b.WriteString("\n\n")

	b.WriteString(components.Card(s.choices.View(cw-4), cw))

	if st.Answered() {
		b.WriteString("\n")
		b.WriteString(s.renderFeedback(cw))
	}
	return b.String()
}

func (s *QuizScreen) renderFeedback(cw int) string {
	q, _ := s.state.Current()
	var b strings.Builder
	if s.state.LastCorrect() {
		b.WriteString(theme.Correct.Render("✓ Bonne réponse!"))
	} else {
		b.WriteString(theme.Incorrect.Render("✗ Mauvaise réponse"))
	}
	b.WriteString("\n")

	text := lipgloss.NewStyle().Width(cw - 4).Foreground(theme.Text)
	if q.Explanation != "" {
		b.WriteString("\n" + theme.Heading.Render("Explication") + "\n")
		b.WriteString(text.Render(q.Explanation))
		b.WriteString("\n")
	}
	if q.ExplanationDarija != "" {
		b.WriteString("\n" + theme.Heading.Render("بالدارجة / En Darija") + "\n")
		b.WriteString(text.Render(q.ExplanationDarija))
		b.WriteString("\n")
	}

	b.WriteString("\n" + s.next.View())
	return components.Card(b.String(), cw)
}

func (s *QuizScreen) renderReport(cw int) string {
	r := quiz.BuildReport(s.state)

	gradeStyle := theme.Incorrect
	switch r.Grade {
	case quiz.GradeExcellent:
		gradeStyle = theme.Correct
	case quiz.GradeGood:
		gradeStyle = theme.Pending
	}

	var b strings.Builder
	b.WriteString(theme.Title.Width(cw - 4).Render("Quiz terminé!"))
	b.WriteString("\n\n")
	b.WriteString(theme.Selected.Render(fmt.Sprintf("%d/%d", r.Score, r.Total)))
	b.WriteString(theme.Hint.Render(fmt.Sprintf("  %d%% de réussite", r.Percentage)))
	b.WriteString("\n")
	b.WriteString(components.NewProgressBar("", float64(r.Percentage)/100, false, cw-4).View())
	b.WriteString("\n\n")
	b.WriteString(gradeStyle.Render(r.Grade.Message()))
	b.WriteString("\n\n")

	for _, res := range r.Results {
		mark := theme.Correct.Render("✓")
		if !res.IsRight {
			mark = theme.Incorrect.Render("✗")
		}
		line := fmt.Sprintf("%d. %s", res.Number, truncate(res.Question, cw-12))
		b.WriteString(mark + " " + lipgloss.NewStyle().Foreground(theme.Text).Render(line))
		b.WriteString("\n")
	}

	return components.Card(b.String(), cw)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if n <= 1 || len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
