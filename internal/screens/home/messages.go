package home

import "github.com/abhisek/qrayti/internal/api"

// uploadDoneMsg settles an upload. ID identifies the attempt so a result
// that arrives after a cancel or a newer upload is dropped.
type uploadDoneMsg struct {
	ID      string
	Content *api.RemoteContent
	Err     error
}
