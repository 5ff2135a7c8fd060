// Package content prepares local documents for upload.
package content

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/gabriel-vasile/mimetype"

	"github.com/abhisek/qrayti/internal/api"
)

// ErrNotAFile is returned when the path names a directory or device.
var ErrNotAFile = errors.New("not a regular file")

// Open inspects the file at path and returns it as an upload Document.
// The MIME type is sniffed from the file's bytes, not its extension. The
// returned error is an *api.ErrValidation when the file exists but cannot
// be uploaded; the Document is still returned so callers can show its
// details.
func Open(path string) (api.Document, error) {
	info, err := os.Stat(path)
	if err != nil {
		return api.Document{}, fmt.Errorf("open document: %w", err)
	}
	if !info.Mode().IsRegular() {
		return api.Document{}, fmt.Errorf("open document %s: %w", path, ErrNotAFile)
	}

	mt, err := mimetype.DetectFile(path)
	if err != nil {
		return api.Document{}, fmt.Errorf("detect type of %s: %w", path, err)
	}

	doc := api.Document{
		Name:     filepath.Base(path),
		Size:     info.Size(),
		MIMEType: documentType(mt),
		Open: func() (io.ReadCloser, error) {
			return os.Open(path)
		},
	}
	return doc, api.ValidateDocument(doc)
}

// documentType walks the detected type's ancestry for an accepted
// document type, so that aliases still match. It falls back to the most
// specific detected type.
func documentType(mt *mimetype.MIME) string {
	for m := mt; m != nil; m = m.Parent() {
		if api.IsDocumentMIME(m.String()) {
			return m.String()
		}
	}
	return mt.String()
}
