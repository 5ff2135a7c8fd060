// Package summary implements the summary session: generated sections that
// can be expanded, collapsed and copied independently.
package summary

import (
	"maps"
	"slices"
	"time"

	"github.com/abhisek/qrayti/internal/api"
)

// CopyIndicatorDuration is how long a copied section shows as copied.
const CopyIndicatorDuration = 2 * time.Second

// Phase is the current phase of a summary session.
type Phase int

const (
	PhaseLoading Phase = iota
	PhaseError
	PhaseEmpty
	PhaseReady
)

func (p Phase) String() string {
	switch p {
	case PhaseLoading:
		return "loading"
	case PhaseError:
		return "error"
	case PhaseEmpty:
		return "empty"
	case PhaseReady:
		return "ready"
	}
	return "unknown"
}

// Copied records the last copy-to-clipboard action.
type Copied struct {
	Index int
	At    time.Time
}

// State is a summary session. Expanded is never mutated in place, so
// copies of a State can share it safely.
type State struct {
	Phase    Phase
	Sections []api.SummarySection

	// Expanded is the set of open section indices. Every index is valid
	// into Sections.
	Expanded map[int]bool

	// Copied is the transient copy indicator, nil when nothing was copied.
	Copied *Copied

	Err error
}

// New returns a session waiting for its sections.
func New() State {
	return State{Phase: PhaseLoading}
}

// IsExpanded reports whether section i is open.
func (s State) IsExpanded(i int) bool {
	return s.Expanded[i]
}

// ExpandedIndices returns the open sections in ascending order.
func (s State) ExpandedIndices() []int {
	return slices.Sorted(maps.Keys(s.Expanded))
}

// CopiedIndex returns the section whose copy indicator is still showing
// at now.
func (s State) CopiedIndex(now time.Time) (int, bool) {
	if s.Copied == nil {
		return 0, false
	}
	if now.Sub(s.Copied.At) >= CopyIndicatorDuration {
		return 0, false
	}
	return s.Copied.Index, true
}

// Stats counts key terms and essential points across all sections.
func (s State) Stats() (keyTerms, points int) {
	for _, sec := range s.Sections {
		keyTerms += len(sec.KeyTerms)
		points += len(sec.EssentialPoints)
	}
	return keyTerms, points
}
