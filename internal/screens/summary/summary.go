// Package summary is the structured summary screen.
package summary

import (
	"context"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/abhisek/qrayti/internal/api"
	"github.com/abhisek/qrayti/internal/router"
	"github.com/abhisek/qrayti/internal/screen"
	sum "github.com/abhisek/qrayti/internal/summary"
	"github.com/abhisek/qrayti/internal/ui/layout"
)

// Options configure a SummaryScreen.
type Options struct {
	Service   sum.Generator
	Content   api.RemoteContent
	Clipboard sum.Clipboard
	Logger    *zap.Logger

	// Quiz, when set, builds the quiz screen offered from the summary.
	Quiz func() screen.Screen
}

// SummaryScreen implements screen.Screen for a generated summary.
type SummaryScreen struct {
	opts   Options
	state  sum.State
	cursor int
	offset int // first rendered line shown
	notice string
	now    func() time.Time

	ctx    context.Context
	cancel context.CancelFunc
	loadID string
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)
var _ screen.Closer = (*SummaryScreen)(nil)

// New creates a SummaryScreen. Generation starts in Init.
func New(opts Options) *SummaryScreen {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Clipboard == nil {
		opts.Clipboard = sum.SystemClipboard{}
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &SummaryScreen{
		opts:   opts,
		state:  sum.New(),
		now:    time.Now,
		ctx:    ctx,
		cancel: cancel,
	}
}

func (s *SummaryScreen) Init() tea.Cmd {
	return s.load()
}

func (s *SummaryScreen) Title() string {
	return "Résumé"
}

// State returns the current summary state.
func (s *SummaryScreen) State() sum.State {
	return s.state
}

// Close abandons any generation still in flight.
func (s *SummaryScreen) Close() {
	s.cancel()
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	switch s.state.Phase {
	case sum.PhaseError, sum.PhaseEmpty:
		return []layout.KeyHint{
			{Key: "R", Description: "Réessayer"},
			{Key: "Esc", Description: "Retour"},
		}
	case sum.PhaseReady:
		hints := []layout.KeyHint{
			{Key: "↑↓", Description: "Sections"},
			{Key: "Enter", Description: "Ouvrir/fermer"},
			{Key: "C", Description: "Copier"},
		}
		if s.opts.Quiz != nil {
			hints = append(hints, layout.KeyHint{Key: "Q", Description: "Quiz"})
		}
		return append(hints,
			layout.KeyHint{Key: "N", Description: "Nouveau document"},
			layout.KeyHint{Key: "Esc", Description: "Retour"})
	}
	return []layout.KeyHint{{Key: "Esc", Description: "Annuler"}}
}

func (s *SummaryScreen) load() tea.Cmd {
	id := uuid.New().String()
	s.loadID = id
	ctx := api.WithSessionID(s.ctx, id)
	gen, content := s.opts.Service, s.opts.Content.Content
	return func() tea.Msg {
		return loadedMsg{ID: id, Event: sum.Load(ctx, gen, content)}
	}
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case loadedMsg:
		if msg.ID != s.loadID || s.ctx.Err() != nil {
			return s, nil
		}
		s.apply(msg.Event)
		s.cursor, s.offset = 0, 0
		return s, nil

	case copyExpiredMsg:
		s.apply(sum.CopyExpired{At: msg.At})
		return s, nil

	case tea.KeyPressMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

func (s *SummaryScreen) apply(ev sum.Event) bool {
	next, err := sum.Next(s.state, ev)
	if err != nil {
		s.opts.Logger.Debug("summary event rejected", zap.Error(err))
		return false
	}
	if next.Phase == sum.PhaseError && s.state.Phase != sum.PhaseError {
		s.opts.Logger.Warn("summary generation failed", zap.Error(next.Err))
	}
	s.state = next
	return true
}

func (s *SummaryScreen) handleKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	switch s.state.Phase {
	case sum.PhaseError, sum.PhaseEmpty:
		if key == "r" || key == "enter" {
			if s.apply(sum.Retried{}) {
				return s, s.load()
			}
		}

	case sum.PhaseReady:
		s.notice = ""
		switch key {
		case "up", "k":
			s.cursor = max(0, s.cursor-1)
		case "down", "j":
			s.cursor = min(len(s.state.Sections)-1, s.cursor+1)
		case "home", "g":
			s.cursor = 0
		case "end", "G":
			s.cursor = len(s.state.Sections) - 1
		case "enter", "space":
			s.apply(sum.Toggled{Index: s.cursor})
		case "c":
			return s, s.copy()
		case "q":
			if s.opts.Quiz != nil {
				next := s.opts.Quiz()
				return s, func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
			}
		case "n":
			return s, func() tea.Msg { return router.PopToRootMsg{} }
		}
	}
	return s, nil
}

// copy puts the section under the cursor on the clipboard and schedules
// the indicator to clear.
func (s *SummaryScreen) copy() tea.Cmd {
	next, err := sum.Copy(s.state, s.cursor, s.opts.Clipboard, s.now())
	if err != nil {
		s.opts.Logger.Warn("copy failed", zap.Int("section", s.cursor), zap.Error(err))
		s.notice = "Copie impossible: " + err.Error()
		return nil
	}
	s.state = next
	at := next.Copied.At
	return tea.Tick(sum.CopyIndicatorDuration, func(time.Time) tea.Msg {
		return copyExpiredMsg{At: at}
	})
}
