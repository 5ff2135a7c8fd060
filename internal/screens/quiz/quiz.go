// Package quiz is the interactive quiz screen.
package quiz

import (
	"context"

	tea "charm.land/bubbletea/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/abhisek/qrayti/internal/api"
	"github.com/abhisek/qrayti/internal/quiz"
	"github.com/abhisek/qrayti/internal/router"
	"github.com/abhisek/qrayti/internal/screen"
	"github.com/abhisek/qrayti/internal/ui/components"
	"github.com/abhisek/qrayti/internal/ui/layout"
)

// Options configure a QuizScreen.
type Options struct {
	Service      quiz.Generator
	Content      api.RemoteContent
	NumQuestions int
	Logger       *zap.Logger

	// Summary, when set, builds the screen offered after the quiz to
	// review the course.
	Summary func() screen.Screen
}

// QuizScreen implements screen.Screen for one quiz session.
type QuizScreen struct {
	opts    Options
	state   quiz.State
	choices components.MultiChoice
	shownAt int // question index choices was built for, -1 for none
	next    components.Button

	ctx    context.Context
	cancel context.CancelFunc
	loadID string
}

var _ screen.Screen = (*QuizScreen)(nil)
var _ screen.KeyHintProvider = (*QuizScreen)(nil)
var _ screen.Closer = (*QuizScreen)(nil)

// New creates a QuizScreen. Generation starts in Init.
func New(opts Options) *QuizScreen {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.NumQuestions <= 0 {
		opts.NumQuestions = api.DefaultNumQuestions
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &QuizScreen{
		opts:    opts,
		state:   quiz.New(),
		shownAt: -1,
		ctx:     ctx,
		cancel:  cancel,
	}
}

func (s *QuizScreen) Init() tea.Cmd {
	return s.load()
}

func (s *QuizScreen) Title() string {
	return "Quiz"
}

// State returns the current quiz state.
func (s *QuizScreen) State() quiz.State {
	return s.state
}

// Close abandons any generation still in flight.
func (s *QuizScreen) Close() {
	s.cancel()
}

func (s *QuizScreen) KeyHints() []layout.KeyHint {
	switch s.state.Phase {
	case quiz.PhaseError, quiz.PhaseEmpty:
		return []layout.KeyHint{
			{Key: "R", Description: "Réessayer"},
			{Key: "Esc", Description: "Retour"},
		}
	case quiz.PhaseActive:
		if s.state.Answered() {
			return []layout.KeyHint{
				{Key: "Enter/N", Description: s.next.Label},
				{Key: "Esc", Description: "Retour"},
			}
		}
		return []layout.KeyHint{
			{Key: "↑↓", Description: "Choisir"},
			{Key: "A-D", Description: "Répondre"},
			{Key: "Enter", Description: "Valider"},
			{Key: "Esc", Description: "Retour"},
		}
	case quiz.PhaseComplete:
		hints := []layout.KeyHint{{Key: "R", Description: "Recommencer"}}
		if s.opts.Summary != nil {
			hints = append(hints, layout.KeyHint{Key: "S", Description: "Résumé"})
		}
		hints = append(hints, layout.KeyHint{Key: "N", Description: "Nouveau document"})
		return append(hints, layout.KeyHint{Key: "Esc", Description: "Retour"})
	}
	return []layout.KeyHint{{Key: "Esc", Description: "Annuler"}}
}

// load starts one generation request tagged with a fresh session id.
func (s *QuizScreen) load() tea.Cmd {
	id := uuid.New().String()
	s.loadID = id
	ctx := api.WithSessionID(s.ctx, id)
	gen, content, n := s.opts.Service, s.opts.Content.Content, s.opts.NumQuestions
	return func() tea.Msg {
		return loadedMsg{ID: id, Event: quiz.Load(ctx, gen, content, n)}
	}
}

func (s *QuizScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case loadedMsg:
		if msg.ID != s.loadID || s.ctx.Err() != nil {
			return s, nil
		}
		s.apply(msg.Event)
		return s, nil

	case tea.KeyPressMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

// apply feeds ev to the state machine. Rejected events leave the screen
// unchanged.
func (s *QuizScreen) apply(ev quiz.Event) bool {
	next, err := quiz.Next(s.state, ev)
	if err != nil {
		s.opts.Logger.Debug("quiz event rejected", zap.String("event", eventName(ev)), zap.Error(err))
		return false
	}
	if next.Phase == quiz.PhaseError && s.state.Phase != quiz.PhaseError {
		s.opts.Logger.Warn("quiz generation failed", zap.Error(next.Err))
	}
	s.state = next
	s.syncChoices()
	return true
}

// syncChoices rebuilds the option view when the question changes and
// mirrors the recorded answer into it.
func (s *QuizScreen) syncChoices() {
	s.next = components.Button{}
	if s.state.Answered() {
		label := "Question suivante"
		if s.state.IsLast() {
			label = "Voir les résultats"
		}
		s.next = components.NewButton(label, "n", true, s.advance)
	}

	q, ok := s.state.Current()
	if !ok {
		s.shownAt = -1
		return
	}
	if s.shownAt != s.state.CurrentIndex || (s.state.SelectedAnswer == nil && s.choices.Chosen != nil) {
		s.choices = components.NewMultiChoice(q.Question, q.Options, q.CorrectIndex)
		s.shownAt = s.state.CurrentIndex
	}
	s.choices.Chosen = s.state.SelectedAnswer
}

func (s *QuizScreen) handleKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	switch s.state.Phase {
	case quiz.PhaseError, quiz.PhaseEmpty:
		if key == "r" || key == "enter" {
			if s.apply(quiz.Retried{}) {
				return s, s.load()
			}
		}

	case quiz.PhaseActive:
		if key == "r" {
			s.apply(quiz.Restarted{})
			return s, nil
		}
		if s.state.Answered() {
			if key == "space" || key == "right" {
				return s, s.advance()
			}
			// The button re-renders on advance; its copy here is discarded.
			_, cmd := s.next.Update(msg)
			return s, cmd
		}
		if key == "enter" {
			s.apply(quiz.AnswerSubmitted{Index: s.choices.Cursor})
			return s, nil
		}
		if i, ok := s.choices.OptionForKey(key); ok && isOptionKey(key) {
			s.choices.Cursor = i
			s.apply(quiz.AnswerSubmitted{Index: i})
			return s, nil
		}
		var cmd tea.Cmd
		s.choices, cmd = s.choices.Update(msg)
		return s, cmd

	case quiz.PhaseComplete:
		switch key {
		case "r":
			s.apply(quiz.Restarted{})
		case "s":
			if s.opts.Summary != nil {
				next := s.opts.Summary()
				return s, func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
			}
		case "n":
			return s, func() tea.Msg { return router.PopToRootMsg{} }
		case "enter":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}
	return s, nil
}

// advance moves past an answered question.
func (s *QuizScreen) advance() tea.Cmd {
	s.apply(quiz.Advanced{})
	return nil
}

// isOptionKey limits direct answers to digits and the letters a to d, so
// navigation letters like j and k keep moving the cursor.
func isOptionKey(key string) bool {
	if len(key) != 1 {
		return false
	}
	c := key[0] | 0x20
	return (key[0] >= '1' && key[0] <= '9') || (c >= 'a' && c <= 'd')
}

func eventName(ev quiz.Event) string {
	switch ev.(type) {
	case quiz.Loaded:
		return "loaded"
	case quiz.LoadFailed:
		return "load-failed"
	case quiz.AnswerSubmitted:
		return "answer-submitted"
	case quiz.Advanced:
		return "advanced"
	case quiz.Restarted:
		return "restarted"
	case quiz.Retried:
		return "retried"
	}
	return "unknown"
}
