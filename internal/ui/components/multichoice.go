package components

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/qrayti/internal/ui/theme"
)

// OptionLabels are the letters shown in front of answer options.
var OptionLabels = []string{"A", "B", "C", "D"}

// MultiChoice renders the options of one question. It owns only the
// cursor; whether and what the learner answered is passed in through
// Chosen, so the quiz state stays the single source of truth.
type MultiChoice struct {
	Question     string
	Options      []string
	CorrectIndex int
	Cursor       int
	Chosen       *int
}

// NewMultiChoice creates a multiple-choice view with the cursor on the
// first option.
func NewMultiChoice(question string, options []string, correctIndex int) MultiChoice {
	return MultiChoice{
		Question:     question,
		Options:      options,
		CorrectIndex: correctIndex,
	}
}

// Update moves the cursor. It is a no-op once an answer is chosen.
func (m MultiChoice) Update(msg tea.Msg) (MultiChoice, tea.Cmd) {
	if m.Chosen != nil {
		return m, nil
	}

	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return m, nil
	}

	switch kmsg.String() {
	case "up", "k":
		if m.Cursor > 0 {
			m.Cursor--
		}
	case "down", "j":
		if m.Cursor < len(m.Options)-1 {
			m.Cursor++
		}
	}

	return m, nil
}

// OptionForKey maps "1".."4" and "a".."d" to an option index.
func (m MultiChoice) OptionForKey(key string) (int, bool) {
	if len(key) != 1 {
		return 0, false
	}
	var i int
	switch c := key[0]; {
	case c >= '1' && c <= '9':
		i = int(c - '1')
	case c >= 'a' && c <= 'z':
		i = int(c - 'a')
	case c >= 'A' && c <= 'Z':
		i = int(c - 'A')
	default:
		return 0, false
	}
	if i >= len(m.Options) {
		return 0, false
	}
	return i, true
}

// View renders the question and its options. After an answer is chosen
// the correct option is green and a wrong choice red.
func (m MultiChoice) View(width int) string {
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Foreground(theme.Text).
		Bold(true).
		Render(m.Question))
	b.WriteString("\n\n")

	for i, opt := range m.Options {
		label := fmt.Sprint(i + 1)
		if i < len(OptionLabels) {
			label = OptionLabels[i]
		}
		prefix := "  "
		if m.Chosen == nil && i == m.Cursor {
			prefix = "▸ "
		}
		line := fmt.Sprintf("%s%s)  %s", prefix, label, opt)

		style := lipgloss.NewStyle().Width(width).Foreground(theme.Text)
		switch {
		case m.Chosen != nil && i == m.CorrectIndex:
			style = style.Foreground(theme.Success).Bold(true)
			line += "  ✓"
		case m.Chosen != nil && i == *m.Chosen:
			style = style.Foreground(theme.Error).Bold(true)
			line += "  ✗"
		case m.Chosen != nil:
			style = style.Foreground(theme.TextDim)
		case i == m.Cursor:
			style = style.Foreground(theme.Primary).Bold(true)
		}
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}

	return b.String()
}
