package monitor

import (
	"context"
	"time"
)

// Watch probes immediately and then once per interval until the service
// reports ready or ctx is cancelled. onChange, when non-nil, is called
// with every status whose state or message differs from the previous one.
// Watch returns the last status it observed.
func (m *Monitor) Watch(ctx context.Context, onChange func(Status)) Status {
	var last Status
	notify := func(st Status) {
		if onChange != nil && (st.State != last.State || st.Message != last.Message || !last.Checked()) {
			onChange(st)
		}
		last = st
	}

	st := m.Probe(ctx)
	if !st.Checked() {
		return st
	}
	notify(st)
	if st.State == Ready {
		return st
	}

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return last
		case <-ticker.C:
			st := m.Probe(ctx)
			if ctx.Err() != nil {
				return last
			}
			notify(st)
			if st.State == Ready {
				return st
			}
		}
	}
}
