package summary

import (
	"errors"
	"fmt"
	"time"

	"github.com/atotto/clipboard"
)

// ErrClipboardUnavailable is returned when the system has no clipboard
// utility (for example xclip or xsel on Linux).
var ErrClipboardUnavailable = errors.New("clipboard unavailable")

// Clipboard receives copied text.
type Clipboard interface {
	WriteAll(text string) error
}

// SystemClipboard writes to the OS clipboard.
type SystemClipboard struct{}

func (SystemClipboard) WriteAll(text string) error {
	if clipboard.Unsupported {
		return ErrClipboardUnavailable
	}
	return clipboard.WriteAll(text)
}

// Copy writes section i's content to cb and starts its copy indicator.
// Expanded is left untouched; on error s is returned unchanged.
func Copy(s State, i int, cb Clipboard, now time.Time) (State, error) {
	if s.Phase != PhaseReady {
		return s, fmt.Errorf("%w: copy in phase %s", ErrInvalidTransition, s.Phase)
	}
	if err := s.checkIndex(i); err != nil {
		return s, err
	}
	if err := cb.WriteAll(s.Sections[i].Content); err != nil {
		return s, fmt.Errorf("copy section %d: %w", i+1, err)
	}

	next := s
	next.Copied = &Copied{Index: i, At: now}
	return next, nil
}
