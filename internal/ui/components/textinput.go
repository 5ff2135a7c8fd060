package components

import (
	"os"
	"path/filepath"
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/qrayti/internal/ui/theme"
)

// PathInput wraps bubbles/textinput for entering a document path.
type PathInput struct {
	Model  textinput.Model
	errMsg string
}

// NewPathInput creates a focused path input.
func NewPathInput(placeholder string) PathInput {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Prompt = "› "
	ti.CharLimit = 4096
	ti.Focus()

	return PathInput{Model: ti}
}

// Init returns the initial command.
func (p PathInput) Init() tea.Cmd {
	return p.Model.Focus()
}

// Update handles messages. Typing clears a previous error.
func (p PathInput) Update(msg tea.Msg) (PathInput, tea.Cmd) {
	if _, ok := msg.(tea.KeyPressMsg); ok {
		p.errMsg = ""
	}
	var cmd tea.Cmd
	p.Model, cmd = p.Model.Update(msg)
	return p, cmd
}

// View renders the input and, below it, the last error if any.
func (p PathInput) View() string {
	view := p.Model.View()
	if p.errMsg != "" {
		view += "\n" + lipgloss.NewStyle().Foreground(theme.Error).Render("✗ "+p.errMsg)
	}
	return view
}

// Value returns the raw input.
func (p PathInput) Value() string {
	return p.Model.Value()
}

// SetError shows msg under the input until the next keystroke.
func (p *PathInput) SetError(msg string) {
	p.errMsg = msg
}

// Err returns the error currently shown.
func (p PathInput) Err() string {
	return p.errMsg
}

// Path returns the input as a file path. Quotes added by terminals on
// drag and drop are stripped and a leading ~ is expanded.
func (p PathInput) Path() string {
	return CleanPath(p.Model.Value())
}

// CleanPath normalizes a user-entered path.
func CleanPath(raw string) string {
	s := strings.TrimSpace(raw)
	if len(s) >= 2 {
		if (s[0] == '\'' && s[len(s)-1] == '\'') || (s[0] == '"' && s[len(s)-1] == '"') {
			s = s[1 : len(s)-1]
		}
	}
	if s == "~" || strings.HasPrefix(s, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			s = filepath.Join(home, s[1:])
		}
	}
	if s == "" {
		return ""
	}
	return filepath.Clean(s)
}
