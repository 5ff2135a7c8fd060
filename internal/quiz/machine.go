package quiz

import (
	"errors"
	"fmt"

	"github.com/abhisek/qrayti/internal/api"
)

var (
	// ErrAlreadyAnswered is returned when an answer is submitted twice for
	// the same question.
	ErrAlreadyAnswered = errors.New("question already answered")

	// ErrNotAnswered is returned when advancing before answering.
	ErrNotAnswered = errors.New("answer the question before moving on")

	// ErrInvalidOption is returned for an option index outside the
	// question's options.
	ErrInvalidOption = errors.New("no such option")

	// ErrInvalidTransition is returned for an event that does not apply in
	// the current phase.
	ErrInvalidTransition = errors.New("invalid transition")
)

// Event is an input to the session state machine.
type Event interface {
	event()
}

// Loaded settles a load with the generated questions.
type Loaded struct {
	Questions []api.QuizQuestion
}

// LoadFailed settles a load with an error.
type LoadFailed struct {
	Err error
}

// AnswerSubmitted chooses an option for the current question.
type AnswerSubmitted struct {
	Index int
}

// Advanced moves past an answered question.
type Advanced struct{}

// Restarted replays the same questions from the start.
type Restarted struct{}

// Retried discards a failed or empty load so it can run again.
type Retried struct{}

func (Loaded) event()          {}
func (LoadFailed) event()      {}
func (AnswerSubmitted) event() {}
func (Advanced) event()        {}
func (Restarted) event()       {}
func (Retried) event()         {}

// Next applies ev to s and returns the resulting state. On error the
// returned state is s, unchanged.
func Next(s State, ev Event) (State, error) {
	switch ev := ev.(type) {
	case Loaded:
		if s.Phase != PhaseLoading {
			return s, invalid(s, ev)
		}
		return loaded(ev.Questions), nil

	case LoadFailed:
		if s.Phase != PhaseLoading {
			return s, invalid(s, ev)
		}
		var empty *api.ErrEmptyResult
		if errors.As(ev.Err, &empty) {
			return State{Phase: PhaseEmpty}, nil
		}
		return State{Phase: PhaseError, Err: ev.Err}, nil

	case AnswerSubmitted:
		if s.Phase != PhaseActive {
			return s, invalid(s, ev)
		}
		if s.SelectedAnswer != nil {
			return s, ErrAlreadyAnswered
		}
		q := s.Questions[s.CurrentIndex]
		if ev.Index < 0 || ev.Index >= len(q.Options) {
			return s, fmt.Errorf("%w: %d of %d", ErrInvalidOption, ev.Index, len(q.Options))
		}

		idx := ev.Index
		next := s
		next.SelectedAnswer = &idx
		next.Answers = cloneAnswers(s.Answers)
		next.Answers[s.CurrentIndex] = &idx
		if idx == q.CorrectIndex {
			next.Score++
		}
		return next, nil

	case Advanced:
		if s.Phase != PhaseActive {
			return s, invalid(s, ev)
		}
		if s.SelectedAnswer == nil {
			return s, ErrNotAnswered
		}
		next := s
		if s.IsLast() {
			next.Phase = PhaseComplete
			next.IsComplete = true
			return next, nil
		}
		next.CurrentIndex++
		next.SelectedAnswer = nil
		return next, nil

	case Restarted:
		if s.Phase != PhaseActive && s.Phase != PhaseComplete {
			return s, invalid(s, ev)
		}
		return loaded(s.Questions), nil

	case Retried:
		if s.Phase != PhaseError && s.Phase != PhaseEmpty {
			return s, invalid(s, ev)
		}
		return New(), nil
	}

	return s, fmt.Errorf("%w: unknown event %T", ErrInvalidTransition, ev)
}

// loaded starts a session over qs. Malformed questions fail the load
// rather than produce a session that breaks its invariants.
func loaded(qs []api.QuizQuestion) State {
	if len(qs) == 0 {
		return State{Phase: PhaseEmpty}
	}
	for i, q := range qs {
		if len(q.Options) < 2 || q.CorrectIndex < 0 || q.CorrectIndex >= len(q.Options) {
			return State{
				Phase: PhaseError,
				Err:   fmt.Errorf("question %d is malformed: %d options, correct index %d", i+1, len(q.Options), q.CorrectIndex),
			}
		}
	}
	return State{
		Phase:     PhaseActive,
		Questions: qs,
		Answers:   make([]*int, len(qs)),
	}
}

func cloneAnswers(in []*int) []*int {
	out := make([]*int, len(in))
	copy(out, in)
	return out
}

func invalid(s State, ev Event) error {
	return fmt.Errorf("%w: %T in phase %s", ErrInvalidTransition, ev, s.Phase)
}
