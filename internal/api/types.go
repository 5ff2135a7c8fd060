package api

import "io"

// DefaultNumQuestions is the quiz length requested when the caller has no
// preference.
const DefaultNumQuestions = 5

// MaxNumQuestions caps a single quiz generation request.
const MaxNumQuestions = 20

// MaxUploadBytes is the largest document accepted for upload (50 MiB).
// Keep in sync with the lte tag on Document.Size.
const MaxUploadBytes int64 = 50 * 1024 * 1024

// HealthStatus is the /health payload.
type HealthStatus struct {
	Status     string `json:"status"`
	ModelType  string `json:"model_type"`
	ModelReady bool   `json:"model_ready"`
}

// RemoteContent is the text extracted from an uploaded document. It is
// produced once per upload and never modified afterwards.
type RemoteContent struct {
	FileName  string `json:"fileName"`
	Content   string `json:"content"`
	PageCount int    `json:"pageCount"`
}

// QuizQuestion is a single generated multiple-choice question.
// CorrectIndex always indexes into Options once decoded by the client.
type QuizQuestion struct {
	ID                int      `json:"id"`
	Question          string   `json:"question"`
	Options           []string `json:"options"`
	CorrectIndex      int      `json:"correctIndex"`
	Explanation       string   `json:"explanation"`
	ExplanationDarija string   `json:"explanationDarija"`
}

// KeyTerm is a glossary entry inside a summary section.
type KeyTerm struct {
	Term             string `json:"term"`
	Definition       string `json:"definition"`
	DefinitionDarija string `json:"definitionDarija"`
}

// SummarySection is one block of a generated structured summary.
type SummarySection struct {
	Title           string    `json:"title"`
	Content         string    `json:"content"`
	KeyTerms        []KeyTerm `json:"keyTerms"`
	EssentialPoints []string  `json:"essentialPoints"`
}

// Document is a local file about to be uploaded. Open is called once per
// upload attempt so a retried upload re-reads the file from the start.
type Document struct {
	Name     string                        `validate:"required"`
	Size     int64                         `validate:"gte=0,lte=52428800"`
	MIMEType string                        `validate:"required,document_mime"`
	Open     func() (io.ReadCloser, error) `validate:"required"`
}

type quizRequest struct {
	Content      string `json:"content" validate:"required"`
	NumQuestions int    `json:"num_questions" validate:"min=1,max=20"`
}

type summaryRequest struct {
	Content string `json:"content" validate:"required"`
}

type quizResponse struct {
	Questions []QuizQuestion `json:"questions"`
}

type summaryResponse struct {
	Sections []SummarySection `json:"sections"`
}

type errorResponse struct {
	Detail any `json:"detail"`
}
