package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"
)

// maxResponseBytes bounds how much of a reply body is read. Extracted text
// from a 50 MiB document comfortably fits.
const maxResponseBytes = 64 << 20

// endpoint describes one remote capability.
type endpoint struct {
	op       string
	method   string
	path     string
	fallback string // message used when an error reply has no usable detail
	hint     string // guidance appended to timeout errors
}

var (
	healthEndpoint = endpoint{
		op:       OpHealth,
		method:   http.MethodGet,
		path:     "/health",
		fallback: "Backend is not responding",
		hint:     "Server might be starting or not running.",
	}
	uploadEndpoint = endpoint{
		op:       OpUpload,
		method:   http.MethodPost,
		path:     "/api/upload-pdf",
		fallback: "Upload failed",
		hint:     "The file might be too large or the server is slow. Try a smaller PDF or check your connection.",
	}
	quizEndpoint = endpoint{
		op:       OpGenerateQuiz,
		method:   http.MethodPost,
		path:     "/api/generate-quiz",
		fallback: "Quiz generation failed",
		hint:     "The server might be slow or the model is not responding.",
	}
	summaryEndpoint = endpoint{
		op:       OpGenerateSummary,
		method:   http.MethodPost,
		path:     "/api/generate-summary",
		fallback: "Summary generation failed",
		hint:     "The server might be slow or the model is not responding.",
	}
)

// Client is the HTTP implementation of Service.
type Client struct {
	baseURL       string
	http          *http.Client
	timeout       time.Duration
	healthTimeout time.Duration
}

var _ Service = (*Client)(nil)

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient overrides the underlying *http.Client.
func WithHTTPClient(h *http.Client) ClientOption {
	return func(c *Client) {
		c.http = h
	}
}

// NewClient creates a Client from a validated Config.
func NewClient(cfg Config, opts ...ClientOption) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	c := &Client{
		baseURL:       strings.TrimRight(cfg.BaseURL, "/"),
		http:          &http.Client{},
		timeout:       cfg.Timeout,
		healthTimeout: cfg.HealthTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

func (c *Client) Health(ctx context.Context) (*HealthStatus, error) {
	raw, err := c.do(ctx, healthEndpoint, c.healthTimeout, nil, "")
	if err != nil {
		var remote *ErrRemote
		if errors.As(err, &remote) {
			return nil, &ErrConnection{BaseURL: c.baseURL, Status: remote.Status, Err: err}
		}
		return nil, err
	}

	var status HealthStatus
	if err := decode(OpHealth, healthSchema, raw, &status); err != nil {
		return nil, err
	}
	return &status, nil
}

// GenerateQuiz requests numQuestions questions; zero means
// DefaultNumQuestions.
func (c *Client) GenerateQuiz(ctx context.Context, content string, numQuestions int) ([]QuizQuestion, error) {
	if numQuestions == 0 {
		numQuestions = DefaultNumQuestions
	}
	req := quizRequest{Content: strings.TrimSpace(content), NumQuestions: numQuestions}
	if err := validateInput(req); err != nil {
		return nil, err
	}

	raw, err := c.postJSON(ctx, quizEndpoint, req)
	if err != nil {
		return nil, err
	}

	var resp quizResponse
	if err := decode(OpGenerateQuiz, quizSchema, raw, &resp); err != nil {
		return nil, err
	}
	if len(resp.Questions) == 0 {
		return nil, &ErrEmptyResult{Op: OpGenerateQuiz}
	}
	if err := checkQuestions(resp.Questions); err != nil {
		return nil, &ErrInvalidResponse{Op: OpGenerateQuiz, Content: raw, Err: err}
	}
	return resp.Questions, nil
}

func (c *Client) GenerateSummary(ctx context.Context, content string) ([]SummarySection, error) {
	req := summaryRequest{Content: strings.TrimSpace(content)}
	if err := validateInput(req); err != nil {
		return nil, err
	}

	raw, err := c.postJSON(ctx, summaryEndpoint, req)
	if err != nil {
		return nil, err
	}

	var resp summaryResponse
	if err := decode(OpGenerateSummary, summarySchema, raw, &resp); err != nil {
		return nil, err
	}
	if len(resp.Sections) == 0 {
		return nil, &ErrEmptyResult{Op: OpGenerateSummary}
	}
	return resp.Sections, nil
}

func (c *Client) postJSON(ctx context.Context, ep endpoint, payload any) ([]byte, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode %s request: %w", ep.op, err)
	}
	return c.do(ctx, ep, c.timeout, bytes.NewReader(body), "application/json")
}

// do issues one request under its own deadline and returns the reply body
// of a 2xx response. Failures are classified in order: cancellation, then
// transport, then the service's error payload.
func (c *Client) do(ctx context.Context, ep endpoint, timeout time.Duration, body io.Reader, contentType string) ([]byte, error) {
	bound := effectiveBound(ctx, timeout)
	callCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(callCtx, ep.method, c.baseURL+ep.path, body)
	if err != nil {
		return nil, fmt.Errorf("build %s request: %w", ep.op, err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, c.classify(ctx, callCtx, ep, bound, err)
	}
	defer resp.Body.Close()

	// The service has answered from here on, so a broken body is never a
	// connection failure.
	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		if errors.Is(ctx.Err(), context.Canceled) || errors.Is(callCtx.Err(), context.DeadlineExceeded) {
			return nil, c.classify(ctx, callCtx, ep, bound, err)
		}
		return nil, &ErrInvalidResponse{Op: ep.op, Err: fmt.Errorf("read reply (status %d): %w", resp.StatusCode, err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &ErrRemote{
			Op:     ep.op,
			Status: resp.StatusCode,
			Detail: parseDetail(raw, ep.fallback),
		}
	}
	return raw, nil
}

// effectiveBound is the time the call actually gets: the configured
// timeout, or what is left of the caller's deadline when that is shorter.
func effectiveBound(ctx context.Context, timeout time.Duration) time.Duration {
	if dl, ok := ctx.Deadline(); ok {
		if left := time.Until(dl); left < timeout {
			return max(left, 0)
		}
	}
	return timeout
}

func (c *Client) classify(parent, callCtx context.Context, ep endpoint, timeout time.Duration, err error) error {
	// Caller gave up: not our deadline, report it as-is.
	if errors.Is(parent.Err(), context.Canceled) {
		return fmt.Errorf("%s: %w", ep.op, context.Canceled)
	}

	if errors.Is(callCtx.Err(), context.DeadlineExceeded) || isTimeout(err) {
		return &ErrTimeout{Op: ep.op, After: timeout, Hint: ep.hint, Err: err}
	}

	return &ErrConnection{BaseURL: c.baseURL, Err: err}
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}

// parseDetail extracts the "detail" message of an error reply. FastAPI
// validation errors carry a list there; only string details are used.
func parseDetail(raw []byte, fallback string) string {
	var er errorResponse
	if err := json.Unmarshal(raw, &er); err != nil {
		return fallback
	}
	if s, ok := er.Detail.(string); ok && strings.TrimSpace(s) != "" {
		return s
	}
	return fallback
}
