// Package quiz implements the quiz session: a strictly ordered pass over
// generated questions, one answer per question, with scoring.
package quiz

import "github.com/abhisek/qrayti/internal/api"

// Phase is the current phase of a quiz session.
type Phase int

const (
	PhaseLoading  Phase = iota // Waiting for the generation call
	PhaseError                 // Generation failed
	PhaseEmpty                 // Generation returned no questions
	PhaseActive                // Serving questions
	PhaseComplete              // Every question answered
)

func (p Phase) String() string {
	switch p {
	case PhaseLoading:
		return "loading"
	case PhaseError:
		return "error"
	case PhaseEmpty:
		return "empty"
	case PhaseActive:
		return "active"
	case PhaseComplete:
		return "complete"
	}
	return "unknown"
}

// State is a quiz session. It is a value: Next never mutates its input.
//
// While Active, 0 <= CurrentIndex < len(Questions), len(Answers) ==
// len(Questions), every answer before CurrentIndex is set, and Score
// counts the answers equal to their question's CorrectIndex.
type State struct {
	Phase Phase

	// Questions is the generated question set, fixed for the session.
	Questions []api.QuizQuestion

	// CurrentIndex is the question being served.
	CurrentIndex int

	// SelectedAnswer is the option chosen for the current question, nil
	// until the user answers. A non-nil value reveals the explanation.
	SelectedAnswer *int

	// Score is the number of correct answers so far.
	Score int

	// Answers holds the chosen option per question, nil when unanswered.
	Answers []*int

	// IsComplete is true once the last question has been answered and
	// advanced past.
	IsComplete bool

	// Err is the load failure while in PhaseError.
	Err error
}

// New returns a session waiting for its questions.
func New() State {
	return State{Phase: PhaseLoading}
}

// Current returns the question being served.
func (s State) Current() (api.QuizQuestion, bool) {
	if s.Phase != PhaseActive || s.CurrentIndex >= len(s.Questions) {
		return api.QuizQuestion{}, false
	}
	return s.Questions[s.CurrentIndex], true
}

// Answered reports whether the current question has been answered.
func (s State) Answered() bool {
	return s.SelectedAnswer != nil
}

// LastCorrect reports whether the current question was answered correctly.
func (s State) LastCorrect() bool {
	q, ok := s.Current()
	return ok && s.SelectedAnswer != nil && *s.SelectedAnswer == q.CorrectIndex
}

// IsLast reports whether the current question is the final one.
func (s State) IsLast() bool {
	return s.CurrentIndex == len(s.Questions)-1
}

// Total returns the number of questions in the session.
func (s State) Total() int {
	return len(s.Questions)
}
