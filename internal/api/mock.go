package api

import (
	"context"
	"errors"
	"sync"
)

// MockResponse is a canned reply for the MockService. Only the field that
// matches the called method is used.
type MockResponse struct {
	Health    *HealthStatus
	Content   *RemoteContent
	Questions []QuizQuestion
	Sections  []SummarySection
	Err       error

	// Gate, when set, holds the reply until it is closed or the call's
	// context ends.
	Gate chan struct{}
}

// MockCall records one call made to the MockService.
type MockCall struct {
	Op           string
	Content      string
	NumQuestions int
	Document     string
}

// MockService is a deterministic Service for testing.
// It returns canned responses in FIFO order and records all calls.
type MockService struct {
	mu        sync.Mutex
	responses []MockResponse
	Calls     []MockCall
}

var _ Service = (*MockService)(nil)

// NewMockService creates a MockService with the given canned responses.
func NewMockService(responses ...MockResponse) *MockService {
	return &MockService{responses: responses}
}

func (m *MockService) Health(ctx context.Context) (*HealthStatus, error) {
	resp, err := m.next(ctx, MockCall{Op: OpHealth})
	if err != nil {
		return nil, err
	}
	return resp.Health, nil
}

func (m *MockService) Upload(ctx context.Context, doc Document) (*RemoteContent, error) {
	if err := ValidateDocument(doc); err != nil {
		return nil, err
	}
	resp, err := m.next(ctx, MockCall{Op: OpUpload, Document: doc.Name})
	if err != nil {
		return nil, err
	}
	return resp.Content, nil
}

func (m *MockService) GenerateQuiz(ctx context.Context, content string, numQuestions int) ([]QuizQuestion, error) {
	resp, err := m.next(ctx, MockCall{Op: OpGenerateQuiz, Content: content, NumQuestions: numQuestions})
	if err != nil {
		return nil, err
	}
	if len(resp.Questions) == 0 {
		return nil, &ErrEmptyResult{Op: OpGenerateQuiz}
	}
	return resp.Questions, nil
}

func (m *MockService) GenerateSummary(ctx context.Context, content string) ([]SummarySection, error) {
	resp, err := m.next(ctx, MockCall{Op: OpGenerateSummary, Content: content})
	if err != nil {
		return nil, err
	}
	if len(resp.Sections) == 0 {
		return nil, &ErrEmptyResult{Op: OpGenerateSummary}
	}
	return resp.Sections, nil
}

// BaseURL returns "mock://".
func (m *MockService) BaseURL() string {
	return "mock://"
}

// AddResponse appends a canned response to the queue.
func (m *MockService) AddResponse(resp MockResponse) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses = append(m.responses, resp)
}

// CallCount returns the number of calls made.
func (m *MockService) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}

// next records the call and pops the next canned response. An empty queue
// behaves like an unreachable service.
func (m *MockService) next(ctx context.Context, call MockCall) (MockResponse, error) {
	m.mu.Lock()
	m.Calls = append(m.Calls, call)
	if len(m.responses) == 0 {
		m.mu.Unlock()
		return MockResponse{}, &ErrConnection{BaseURL: "mock://", Err: errors.New("no canned response")}
	}
	resp := m.responses[0]
	m.responses = m.responses[1:]
	m.mu.Unlock()

	if resp.Gate != nil {
		select {
		case <-resp.Gate:
		case <-ctx.Done():
			return MockResponse{}, ctx.Err()
		}
	}

	if resp.Err != nil {
		return MockResponse{}, resp.Err
	}
	return resp, nil
}
