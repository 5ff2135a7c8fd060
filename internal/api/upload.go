package api

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/textproto"
	"strings"
)

// documentMIMETypes lists the accepted upload formats.
var documentMIMETypes = map[string]bool{
	"application/pdf":    true,
	"application/x-pdf":  true,
	"application/msword": true,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true,
}

// IsDocumentMIME reports whether mimeType names a pdf, doc or docx file.
// Parameters such as "; charset=binary" are ignored.
func IsDocumentMIME(mimeType string) bool {
	mt, _, err := mime.ParseMediaType(mimeType)
	if err != nil {
		mt = strings.ToLower(strings.TrimSpace(mimeType))
	}
	return documentMIMETypes[mt]
}

// ValidateDocument checks the upload preconditions without touching the
// network.
func ValidateDocument(doc Document) error {
	return validateInput(doc)
}

func (c *Client) Upload(ctx context.Context, doc Document) (*RemoteContent, error) {
	if err := ValidateDocument(doc); err != nil {
		return nil, err
	}

	f, err := doc.Open()
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", doc.Name, err)
	}
	defer f.Close()

	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)
	writeErr := make(chan error, 1)
	go func() {
		err := writeMultipart(mw, doc, f)
		pw.CloseWithError(err)
		writeErr <- err
	}()

	raw, err := c.do(ctx, uploadEndpoint, c.timeout, pr, mw.FormDataContentType())
	// Unblock the writer if the transport never drained the body.
	pr.Close()
	if werr := <-writeErr; werr != nil && !errors.Is(werr, io.ErrClosedPipe) {
		return nil, fmt.Errorf("read %s: %w", doc.Name, werr)
	}
	if err != nil {
		return nil, err
	}

	var content RemoteContent
	if err := decode(OpUpload, uploadSchema, raw, &content); err != nil {
		return nil, err
	}
	return &content, nil
}

func writeMultipart(mw *multipart.Writer, doc Document, r io.Reader) error {
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, escapeQuotes(doc.Name)))
	h.Set("Content-Type", doc.MIMEType)

	part, err := mw.CreatePart(h)
	if err != nil {
		return err
	}
	if _, err := io.Copy(part, r); err != nil {
		return err
	}
	return mw.Close()
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func escapeQuotes(s string) string {
	return quoteEscaper.Replace(s)
}
