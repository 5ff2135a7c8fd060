package api

import (
	"context"
	"errors"
	"math"
	"math/rand/v2"
	"net/http"
	"time"
)

// RetryService is a decorator that retries failures where the request
// produced no result, with exponential backoff and jitter. Each attempt
// goes through the inner service and so gets its own deadline.
type RetryService struct {
	inner  Service
	config RetryConfig
}

// WithRetry wraps a Service with retry logic.
func WithRetry(s Service, cfg RetryConfig) Service {
	return &RetryService{inner: s, config: cfg}
}

func (r *RetryService) Health(ctx context.Context) (*HealthStatus, error) {
	return retry(ctx, r, func(ctx context.Context) (*HealthStatus, error) {
		return r.inner.Health(ctx)
	})
}

func (r *RetryService) Upload(ctx context.Context, doc Document) (*RemoteContent, error) {
	return retry(ctx, r, func(ctx context.Context) (*RemoteContent, error) {
		return r.inner.Upload(ctx, doc)
	})
}

func (r *RetryService) GenerateQuiz(ctx context.Context, content string, numQuestions int) ([]QuizQuestion, error) {
	return retry(ctx, r, func(ctx context.Context) ([]QuizQuestion, error) {
		return r.inner.GenerateQuiz(ctx, content, numQuestions)
	})
}

func (r *RetryService) GenerateSummary(ctx context.Context, content string) ([]SummarySection, error) {
	return retry(ctx, r, func(ctx context.Context) ([]SummarySection, error) {
		return r.inner.GenerateSummary(ctx, content)
	})
}

func (r *RetryService) BaseURL() string {
	return r.inner.BaseURL()
}

func retry[T any](ctx context.Context, r *RetryService, call func(context.Context) (T, error)) (T, error) {
	var zero T
	var lastErr error

	attempts := max(r.config.MaxAttempts, 1)
	for attempt := range attempts {
		v, err := call(ctx)
		if err == nil {
			return v, nil
		}
		lastErr = err

		if !shouldRetry(err) {
			return zero, err
		}

		// No sleep after the final attempt.
		if attempt == attempts-1 {
			break
		}

		select {
		case <-ctx.Done():
			return zero, ctx.Err()
		case <-time.After(r.backoff(attempt)):
		}
	}

	return zero, lastErr
}

// shouldRetry reports whether err is transient and safe to re-issue. A
// timed-out generation may still be running remotely, so timeouts are
// never retried.
func shouldRetry(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var timeout *ErrTimeout
	if errors.As(err, &timeout) {
		return false
	}

	// A status-less connection error only comes from a request that never
	// got a reply; once the service answered, a broken body surfaces as
	// ErrInvalidResponse and is not re-sent.
	var conn *ErrConnection
	if errors.As(err, &conn) {
		return conn.Status == 0 || isGatewayStatus(conn.Status)
	}

	var remote *ErrRemote
	if errors.As(err, &remote) {
		return isGatewayStatus(remote.Status)
	}

	// Validation, empty and invalid replies will not change on a retry.
	return false
}

func isGatewayStatus(status int) bool {
	switch status {
	case http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return true
	}
	return false
}

// backoff computes the wait duration for the given attempt.
func (r *RetryService) backoff(attempt int) time.Duration {
	wait := float64(r.config.InitialWait) * math.Pow(r.config.Multiplier, float64(attempt))
	if wait > float64(r.config.MaxWait) {
		wait = float64(r.config.MaxWait)
	}

	// Add ±20% jitter.
	jitter := wait * 0.2 * (2*rand.Float64() - 1)
	wait += jitter

	if wait < 0 {
		wait = 0
	}
	return time.Duration(wait)
}
