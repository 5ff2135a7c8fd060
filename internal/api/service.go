package api

import "context"

// Operation names, used in errors and logs.
const (
	OpHealth          = "health"
	OpUpload          = "upload"
	OpGenerateQuiz    = "generate-quiz"
	OpGenerateSummary = "generate-summary"
)

// Service is the remote content-generation service as seen by the client.
// Every method is a single outbound call with its own deadline; failures
// are returned as one of the Err* types in this package.
type Service interface {
	// Health probes the service and reports whether its model is loaded.
	Health(ctx context.Context) (*HealthStatus, error)

	// Upload sends a document and returns its extracted text. The document
	// is validated locally first; an invalid document never reaches the
	// network.
	Upload(ctx context.Context, doc Document) (*RemoteContent, error)

	// GenerateQuiz asks for numQuestions multiple-choice questions about
	// content.
	GenerateQuiz(ctx context.Context, content string, numQuestions int) ([]QuizQuestion, error)

	// GenerateSummary asks for a structured summary of content.
	GenerateSummary(ctx context.Context, content string) ([]SummarySection, error)

	// BaseURL returns the service root this client talks to.
	BaseURL() string
}

func opLabel(op string) string {
	switch op {
	case OpHealth:
		return "Health check"
	case OpUpload:
		return "Upload"
	case OpGenerateQuiz:
		return "Quiz generation"
	case OpGenerateSummary:
		return "Summary generation"
	}
	return op
}
