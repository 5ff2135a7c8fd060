package quiz

import "github.com/abhisek/qrayti/internal/quiz"

// loadedMsg settles one generation request. ID ties it to the request
// that produced it; results of abandoned requests are dropped.
type loadedMsg struct {
	ID    string
	Event quiz.Event
}
