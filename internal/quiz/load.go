package quiz

import (
	"context"

	"github.com/abhisek/qrayti/internal/api"
)

// Generator produces quiz questions. api.Service satisfies it.
type Generator interface {
	GenerateQuiz(ctx context.Context, content string, numQuestions int) ([]api.QuizQuestion, error)
}

// Load runs one generation call and returns the event that settles the
// Loading phase. It never returns partial results.
func Load(ctx context.Context, gen Generator, content string, numQuestions int) Event {
	qs, err := gen.GenerateQuiz(ctx, content, numQuestions)
	if err != nil {
		return LoadFailed{Err: err}
	}
	return Loaded{Questions: qs}
}
