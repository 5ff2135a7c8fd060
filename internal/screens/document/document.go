// Package document shows an extracted document and lets the learner pick
// what to generate from it.
package document

import (
	"fmt"
	"strings"
	"unicode/utf8"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	"github.com/abhisek/qrayti/internal/api"
	"github.com/abhisek/qrayti/internal/router"
	"github.com/abhisek/qrayti/internal/screen"
	quizscreen "github.com/abhisek/qrayti/internal/screens/quiz"
	summaryscreen "github.com/abhisek/qrayti/internal/screens/summary"
	"github.com/abhisek/qrayti/internal/summary"
	"github.com/abhisek/qrayti/internal/ui/components"
	"github.com/abhisek/qrayti/internal/ui/layout"
	"github.com/abhisek/qrayti/internal/ui/theme"
)

const previewRunes = 600

// Deps are the collaborators passed on to the quiz and summary screens.
type Deps struct {
	Service      api.Service
	Clipboard    summary.Clipboard
	Logger       *zap.Logger
	NumQuestions int
}

// DocumentScreen implements screen.Screen for an uploaded document.
type DocumentScreen struct {
	deps         Deps
	content      api.RemoteContent
	menu         components.Menu
	numQuestions int
}

var _ screen.Screen = (*DocumentScreen)(nil)
var _ screen.KeyHintProvider = (*DocumentScreen)(nil)

// New creates a DocumentScreen for rc.
func New(deps Deps, rc api.RemoteContent) *DocumentScreen {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	d := &DocumentScreen{
		deps:         deps,
		content:      rc,
		numQuestions: clampQuestions(deps.NumQuestions),
	}
	d.menu = components.NewMenu([]components.MenuItem{
		{Label: "Générer un quiz", Key: "q", Action: func() tea.Cmd {
			return push(d.newQuiz())
		}},
		{Label: "Générer un résumé", Key: "s", Action: func() tea.Cmd {
			return push(d.newSummary())
		}},
		{Label: "Nouveau document", Key: "n", Action: func() tea.Cmd {
			return func() tea.Msg { return router.PopScreenMsg{} }
		}},
	})
	return d
}

// clampQuestions maps an unset count to the default and caps the rest.
func clampQuestions(n int) int {
	if n <= 0 {
		return api.DefaultNumQuestions
	}
	return min(n, api.MaxNumQuestions)
}

func push(s screen.Screen) tea.Cmd {
	return func() tea.Msg { return router.PushScreenMsg{Screen: s} }
}

func (d *DocumentScreen) newQuiz() screen.Screen {
	return quizscreen.New(quizscreen.Options{
		Service:      d.deps.Service,
		Content:      d.content,
		NumQuestions: d.numQuestions,
		Logger:       d.deps.Logger,
		Summary:      d.newSummary,
	})
}

func (d *DocumentScreen) newSummary() screen.Screen {
	return summaryscreen.New(summaryscreen.Options{
		Service:   d.deps.Service,
		Content:   d.content,
		Clipboard: d.deps.Clipboard,
		Logger:    d.deps.Logger,
		Quiz:      d.newQuiz,
	})
}

// NumQuestions returns the quiz length that will be requested.
func (d *DocumentScreen) NumQuestions() int {
	return d.numQuestions
}

func (d *DocumentScreen) Init() tea.Cmd {
	return nil
}

func (d *DocumentScreen) Title() string {
	return d.content.FileName
}

func (d *DocumentScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Choisir"},
		{Key: "←→", Description: "Nb questions"},
		{Key: "Enter", Description: "Valider"},
		{Key: "Esc", Description: "Retour"},
	}
}

func (d *DocumentScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyPressMsg); ok {
		switch kmsg.String() {
		case "left", "-", "h":
			d.numQuestions = max(1, d.numQuestions-1)
			return d, nil
		case "right", "+", "l":
			d.numQuestions = min(api.MaxNumQuestions, d.numQuestions+1)
			return d, nil
		}
	}

	var cmd tea.Cmd
	d.menu, cmd = d.menu.Update(msg)
	return d, cmd
}

func (d *DocumentScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	info := theme.Heading.Render(d.content.FileName) + "\n" +
		theme.Hint.Render(fmt.Sprintf("%d pages · %d caractères extraits",
			d.content.PageCount, utf8.RuneCountInString(d.content.Content)))

	body := lipgloss.NewStyle().
		Width(cw - 4).
		Foreground(theme.TextDim).
		Render(Preview(d.content.Content, previewRunes))

	quizLen := theme.Body.Render("Questions du quiz: ") +
		theme.Selected.Render(fmt.Sprintf("◂ %d ▸", d.numQuestions))

	sections := []string{
		components.Card(info+"\n\n"+body, cw),
		components.Card(d.menu.View()+"\n"+quizLen, cw),
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		strings.Join(sections, "\n"))
}

// Preview returns the first n runes of text with whitespace collapsed,
// ending in an ellipsis when truncated.
func Preview(text string, n int) string {
	flat := strings.Join(strings.Fields(text), " ")
	if utf8.RuneCountInString(flat) <= n {
		return flat
	}
	runes := []rune(flat)
	return strings.TrimSpace(string(runes[:n])) + "…"
}
