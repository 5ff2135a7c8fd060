package summary

import (
	"errors"
	"fmt"
	"maps"
	"time"

	"github.com/abhisek/qrayti/internal/api"
)

var (
	// ErrInvalidSection is returned for a section index outside the
	// summary.
	ErrInvalidSection = errors.New("no such section")

	// ErrInvalidTransition is returned for an event that does not apply in
	// the current phase.
	ErrInvalidTransition = errors.New("invalid transition")
)

// Event is an input to the session state machine.
type Event interface {
	event()
}

// Loaded settles a load with the generated sections.
type Loaded struct {
	Sections []api.SummarySection
}

// LoadFailed settles a load with an error.
type LoadFailed struct {
	Err error
}

// Toggled flips one section between expanded and collapsed.
type Toggled struct {
	Index int
}

// CopyExpired clears the copy indicator set at At. A later copy is left
// alone.
type CopyExpired struct {
	At time.Time
}

// Retried discards a failed or empty load so it can run again.
type Retried struct{}

func (Loaded) event()      {}
func (LoadFailed) event()  {}
func (Toggled) event()     {}
func (CopyExpired) event() {}
func (Retried) event()     {}

// Next applies ev to s and returns the resulting state. On error the
// returned state is s, unchanged.
func Next(s State, ev Event) (State, error) {
	switch ev := ev.(type) {
	case Loaded:
		if s.Phase != PhaseLoading {
			return s, invalid(s, ev)
		}
		if len(ev.Sections) == 0 {
			return State{Phase: PhaseEmpty}, nil
		}
		return State{
			Phase:    PhaseReady,
			Sections: ev.Sections,
			Expanded: map[int]bool{0: true},
		}, nil

	case LoadFailed:
		if s.Phase != PhaseLoading {
			return s, invalid(s, ev)
		}
		var empty *api.ErrEmptyResult
		if errors.As(ev.Err, &empty) {
			return State{Phase: PhaseEmpty}, nil
		}
		return State{Phase: PhaseError, Err: ev.Err}, nil

	case Toggled:
		if s.Phase != PhaseReady {
			return s, invalid(s, ev)
		}
		if err := s.checkIndex(ev.Index); err != nil {
			return s, err
		}
		expanded := maps.Clone(s.Expanded)
		if expanded == nil {
			expanded = make(map[int]bool)
		}
		if expanded[ev.Index] {
			delete(expanded, ev.Index)
		} else {
			expanded[ev.Index] = true
		}
		next := s
		next.Expanded = expanded
		return next, nil

	case CopyExpired:
		if s.Copied == nil || !s.Copied.At.Equal(ev.At) {
			return s, nil
		}
		next := s
		next.Copied = nil
		return next, nil

	case Retried:
		if s.Phase != PhaseError && s.Phase != PhaseEmpty {
			return s, invalid(s, ev)
		}
		return New(), nil
	}

	return s, fmt.Errorf("%w: unknown event %T", ErrInvalidTransition, ev)
}

func (s State) checkIndex(i int) error {
	if i < 0 || i >= len(s.Sections) {
		return fmt.Errorf("%w: %d of %d", ErrInvalidSection, i, len(s.Sections))
	}
	return nil
}

func invalid(s State, ev Event) error {
	return fmt.Errorf("%w: %T in phase %s", ErrInvalidTransition, ev, s.Phase)
}
