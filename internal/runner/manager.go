package runner

import (
	"context"
	"fmt"
	"sync"
)

// Manager owns one cycler per instrument.
type Manager struct {
	deps     Deps
	settings Settings

	mu      sync.Mutex
	cancels map[string]context.CancelFunc
	wg      sync.WaitGroup
}

func NewManager(deps Deps, settings Settings) *Manager {
	return &Manager{
		deps:     deps,
		settings: settings,
		cancels:  make(map[string]context.CancelFunc),
	}
}

func (m *Manager) Start(ctx context.Context, instruments []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, instrument := range instruments {
		if _, running := m.cancels[instrument]; running {
			return fmt.Errorf("cycler already running for %s", instrument)
		}
		cctx, cancel := context.WithCancel(ctx)
		m.cancels[instrument] = cancel

		c := NewCycler(instrument, m.deps, m.settings)
		m.wg.Add(1)
		go func(instrument string) {
			defer m.wg.Done()
			c.Run(cctx)

			m.mu.Lock()
			delete(m.cancels, instrument)
			m.mu.Unlock()
		}(instrument)
	}
	return nil
}

func (m *Manager) Stop() {
	m.mu.Lock()
	for _, cancel := range m.cancels {
		cancel()
	}
	m.mu.Unlock()
	m.wg.Wait()
}

func (m *Manager) Running() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]string, 0, len(m.cancels))
	for instrument := range m.cancels {
		out = append(out, instrument)
	}
	return out
}
