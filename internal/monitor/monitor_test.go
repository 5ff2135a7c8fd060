package monitor

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/qrayti/internal/api"
)

type checkerFunc func(ctx context.Context) (*api.HealthStatus, error)

func (f checkerFunc) Health(ctx context.Context) (*api.HealthStatus, error) {
	return f(ctx)
}

func ready() *api.HealthStatus {
	return &api.HealthStatus{Status: "ok", ModelType: "qwen2.5", ModelReady: true}
}

func starting() *api.HealthStatus {
	return &api.HealthStatus{Status: "ok", ModelType: "qwen2.5", ModelReady: false}
}

func TestProbe_Ready(t *testing.T) {
	m := New(api.NewMockService(api.MockResponse{Health: ready()}), DefaultConfig(), nil)

	st := m.Probe(context.Background())
	assert.Equal(t, Ready, st.State)
	assert.True(t, st.IsConnected)
	assert.True(t, st.ModelReady)
	assert.Equal(t, "qwen2.5", st.ModelType)
	assert.Equal(t, MessageReady, st.Message)
	assert.Equal(t, uint64(1), st.Seq)
	assert.Equal(t, st, m.Current())
}

func TestProbe_ModelNotReadyIsStarting(t *testing.T) {
	m := New(api.NewMockService(api.MockResponse{Health: starting()}), DefaultConfig(), nil)

	st := m.Probe(context.Background())
	assert.Equal(t, Starting, st.State)
	assert.True(t, st.IsConnected)
	assert.False(t, st.ModelReady)
	assert.Equal(t, MessageStarting, st.Message)
}

func TestProbe_UnreachableNamesBaseURL(t *testing.T) {
	cfg := api.DefaultConfig()
	cfg.BaseURL = "http://127.0.0.1:1"
	cfg.HealthTimeout = time.Second
	client, err := api.NewClient(cfg)
	require.NoError(t, err)

	m := New(client, DefaultConfig(), nil)
	st := m.Probe(context.Background())
	assert.Equal(t, Disconnected, st.State)
	assert.False(t, st.IsConnected)
	assert.Contains(t, st.Message, "http://127.0.0.1:1")
}

func TestProbe_ErrorMessageVerbatim(t *testing.T) {
	cause := &api.ErrConnection{BaseURL: "http://svc", Status: 500}
	m := New(api.NewMockService(api.MockResponse{Err: cause}), DefaultConfig(), nil)

	st := m.Probe(context.Background())
	assert.Equal(t, Disconnected, st.State)
	assert.Equal(t, cause.Error(), st.Message)
}

func TestCurrent_BeforeAnyProbe(t *testing.T) {
	m := New(api.NewMockService(), DefaultConfig(), nil)

	st := m.Current()
	assert.False(t, st.Checked())
	assert.Equal(t, Disconnected, st.State)
	assert.Equal(t, MessagePending, st.Message)
}

func TestProbe_StaleResultDiscarded(t *testing.T) {
	gate := make(chan struct{})
	mock := api.NewMockService(
		api.MockResponse{Health: ready(), Gate: gate},
		api.MockResponse{Err: &api.ErrConnection{BaseURL: "http://svc"}},
	)
	m := New(mock, DefaultConfig(), nil)

	first := make(chan Status, 1)
	go func() { first <- m.Probe(context.Background()) }()

	require.Eventually(t, func() bool { return mock.CallCount() == 1 }, time.Second, time.Millisecond)

	second := m.Probe(context.Background())
	assert.Equal(t, Disconnected, second.State)
	assert.Equal(t, uint64(2), second.Seq)

	close(gate)
	got := <-first

	// The first probe settled last but was issued first.
	assert.Equal(t, second, got)
	assert.Equal(t, second, m.Current())
}

func TestProbe_CancelledProbeDiscarded(t *testing.T) {
	m := New(api.NewMockService(
		api.MockResponse{Health: ready()},
		api.MockResponse{Health: starting(), Gate: make(chan struct{})},
	), DefaultConfig(), nil)

	before := m.Probe(context.Background())
	require.Equal(t, Ready, before.State)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	st := m.Probe(ctx)
	assert.Equal(t, before, st)
	assert.Equal(t, before, m.Current())
}

func TestConfig_IntervalClamped(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want time.Duration
	}{
		{0, DefaultPollInterval},
		{time.Second, MinPollInterval},
		{7 * time.Second, 7 * time.Second},
		{time.Minute, MaxPollInterval},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Config{PollInterval: tt.in}.interval(), "input %v", tt.in)
	}
}

func TestConfigFromEnv(t *testing.T) {
	t.Setenv("QRAYTI_POLL_INTERVAL", "12s")
	m := New(api.NewMockService(), ConfigFromEnv(), nil)
	assert.Equal(t, 12*time.Second, m.Interval())
}

func TestWatch_StopsWhenReady(t *testing.T) {
	mock := api.NewMockService(
		api.MockResponse{Health: starting()},
		api.MockResponse{Health: starting()},
		api.MockResponse{Health: ready()},
		api.MockResponse{Health: starting()},
	)
	m := New(mock, DefaultConfig(), nil)
	m.interval = 5 * time.Millisecond

	var seen []State
	st := m.Watch(context.Background(), func(s Status) { seen = append(seen, s.State) })

	assert.Equal(t, Ready, st.State)
	assert.Equal(t, []State{Starting, Ready}, seen)
	assert.Equal(t, 3, mock.CallCount())
}

func TestWatch_ReadyOnFirstProbe(t *testing.T) {
	mock := api.NewMockService(api.MockResponse{Health: ready()})
	m := New(mock, DefaultConfig(), nil)

	st := m.Watch(context.Background(), nil)
	assert.Equal(t, Ready, st.State)
	assert.Equal(t, 1, mock.CallCount())
}

func TestWatch_StopsOnCancel(t *testing.T) {
	var calls atomic.Int32
	m := New(checkerFunc(func(ctx context.Context) (*api.HealthStatus, error) {
		calls.Add(1)
		return nil, errors.New("refused")
	}), DefaultConfig(), nil)
	m.interval = 5 * time.Millisecond

	ctx, cancel := context.WithTimeout(context.Background(), 40*time.Millisecond)
	defer cancel()

	done := make(chan Status, 1)
	go func() { done <- m.Watch(ctx, nil) }()

	select {
	case st := <-done:
		assert.Equal(t, Disconnected, st.State)
		assert.Equal(t, "refused", st.Message)
	case <-time.After(2 * time.Second):
		t.Fatal("watch did not stop after cancellation")
	}
	assert.Greater(t, calls.Load(), int32(1))

	n := calls.Load()
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, n, calls.Load(), "no probes after Watch returned")
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "disconnected", Disconnected.String())
	assert.Equal(t, "starting", Starting.String())
	assert.Equal(t, "ready", Ready.String())
}
