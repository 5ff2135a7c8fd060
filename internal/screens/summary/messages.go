package summary

import (
	"time"

	"github.com/abhisek/qrayti/internal/summary"
)

// loadedMsg settles one generation request.
type loadedMsg struct {
	ID    string
	Event summary.Event
}

// copyExpiredMsg fires when a copy indicator has been shown long enough.
type copyExpiredMsg struct {
	At time.Time
}
