package api

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// LoggingService is a decorator that logs every call to the service.
type LoggingService struct {
	inner  Service
	logger *zap.Logger
}

// WithLogging wraps a Service with call logging.
func WithLogging(s Service, logger *zap.Logger) Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LoggingService{inner: s, logger: logger.Named("api")}
}

func (l *LoggingService) Health(ctx context.Context) (*HealthStatus, error) {
	start := time.Now()
	status, err := l.inner.Health(ctx)

	fields := []zap.Field{}
	if status != nil {
		fields = append(fields,
			zap.String("model_type", status.ModelType),
			zap.Bool("model_ready", status.ModelReady))
	}
	l.record(ctx, OpHealth, start, err, fields...)
	return status, err
}

func (l *LoggingService) Upload(ctx context.Context, doc Document) (*RemoteContent, error) {
	start := time.Now()
	content, err := l.inner.Upload(ctx, doc)

	fields := []zap.Field{
		zap.String("file", doc.Name),
		zap.Int64("size_bytes", doc.Size),
		zap.String("mime", doc.MIMEType),
	}
	if content != nil {
		fields = append(fields,
			zap.Int("pages", content.PageCount),
			zap.Int("content_len", len(content.Content)))
	}
	l.record(ctx, OpUpload, start, err, fields...)
	return content, err
}

func (l *LoggingService) GenerateQuiz(ctx context.Context, content string, numQuestions int) ([]QuizQuestion, error) {
	start := time.Now()
	qs, err := l.inner.GenerateQuiz(ctx, content, numQuestions)

	l.record(ctx, OpGenerateQuiz, start, err,
		zap.Int("content_len", len(content)),
		zap.Int("requested", numQuestions),
		zap.Int("questions", len(qs)))
	return qs, err
}

func (l *LoggingService) GenerateSummary(ctx context.Context, content string) ([]SummarySection, error) {
	start := time.Now()
	sections, err := l.inner.GenerateSummary(ctx, content)

	l.record(ctx, OpGenerateSummary, start, err,
		zap.Int("content_len", len(content)),
		zap.Int("sections", len(sections)))
	return sections, err
}

func (l *LoggingService) BaseURL() string {
	return l.inner.BaseURL()
}

func (l *LoggingService) record(ctx context.Context, op string, start time.Time, err error, fields ...zap.Field) {
	fields = append(fields,
		zap.String("op", op),
		zap.String("session_id", SessionIDFrom(ctx)),
		zap.String("base_url", l.inner.BaseURL()),
		zap.Int64("latency_ms", time.Since(start).Milliseconds()),
	)
	if err != nil {
		l.logger.Warn("api call failed", append(fields, zap.Error(err))...)
		return
	}
	l.logger.Info("api call", fields...)
}
