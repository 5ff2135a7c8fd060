// Package monitor tracks whether the remote study service can serve
// requests.
package monitor

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/abhisek/qrayti/internal/api"
)

// State is the three-valued readiness signal.
type State int

const (
	Disconnected State = iota
	Starting
	Ready
)

func (s State) String() string {
	switch s {
	case Disconnected:
		return "disconnected"
	case Starting:
		return "starting"
	case Ready:
		return "ready"
	}
	return "unknown"
}

// Messages shown for a reachable service.
const (
	MessageReady    = "Backend is ready!"
	MessageStarting = "Backend is starting..."
	MessagePending  = "Checking backend..."
)

// Status is the outcome of one probe. Seq is the probe's issuance number;
// zero means no probe has settled yet.
type Status struct {
	State       State
	IsConnected bool
	ModelReady  bool
	ModelType   string
	Message     string
	CheckedAt   time.Time
	Seq         uint64
}

// Checked reports whether the status comes from a settled probe.
func (s Status) Checked() bool {
	return s.Seq > 0
}

// HealthChecker is the subset of api.Service the monitor needs.
type HealthChecker interface {
	Health(ctx context.Context) (*api.HealthStatus, error)
}

// Monitor probes service health and keeps the most recently issued result.
// It is safe for concurrent use.
type Monitor struct {
	checker  HealthChecker
	logger   *zap.Logger
	interval time.Duration
	now      func() time.Time

	issued atomic.Uint64

	mu      sync.Mutex
	current Status
}

// New creates a Monitor. A nil logger discards logs.
func New(checker HealthChecker, cfg Config, logger *zap.Logger) *Monitor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Monitor{
		checker:  checker,
		logger:   logger.Named("monitor"),
		interval: cfg.interval(),
		now:      time.Now,
		current:  Status{State: Disconnected, Message: MessagePending},
	}
}

// Interval returns the polling interval used by Watch.
func (m *Monitor) Interval() time.Duration {
	return m.interval
}

// Current returns the latest applied status.
func (m *Monitor) Current() Status {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current
}

// Probe checks health once and returns the status current after it
// settles. When a later-issued probe has already been applied, this
// probe's result is discarded and the newer status is returned instead.
// A probe whose context ends is discarded too.
func (m *Monitor) Probe(ctx context.Context) Status {
	seq := m.issued.Add(1)

	hs, err := m.checker.Health(ctx)
	if ctx.Err() != nil {
		m.logger.Debug("probe abandoned", zap.Uint64("seq", seq), zap.Error(ctx.Err()))
		return m.Current()
	}

	st := evaluate(hs, err)
	st.Seq = seq
	st.CheckedAt = m.now()
	return m.apply(st)
}

func (m *Monitor) apply(st Status) Status {
	m.mu.Lock()
	defer m.mu.Unlock()

	if st.Seq <= m.current.Seq {
		m.logger.Debug("stale probe discarded",
			zap.Uint64("seq", st.Seq),
			zap.Uint64("applied_seq", m.current.Seq))
		return m.current
	}

	if st.State != m.current.State {
		m.logger.Info("readiness changed",
			zap.Stringer("from", m.current.State),
			zap.Stringer("to", st.State),
			zap.String("message", st.Message))
	}
	m.current = st
	return st
}

// evaluate maps a health reply to a Status. Failures carry the transport
// error message verbatim.
func evaluate(hs *api.HealthStatus, err error) Status {
	if err != nil {
		return Status{State: Disconnected, Message: err.Error()}
	}
	if hs == nil {
		return Status{State: Disconnected, Message: "Backend returned an empty health reply"}
	}
	if hs.ModelReady {
		return Status{
			State:       Ready,
			IsConnected: true,
			ModelReady:  true,
			ModelType:   hs.ModelType,
			Message:     MessageReady,
		}
	}
	return Status{
		State:       Starting,
		IsConnected: true,
		ModelType:   hs.ModelType,
		Message:     MessageStarting,
	}
}
