package ratelimit

import (
	"context"
	"sync"
	"time"
)

// Memory is a per-process sliding-window limiter.
type Memory struct {
	maxPerWindow int
	now          func() time.Time

	mu      sync.Mutex
	clients map[string]*clientWindow
}

type clientWindow struct {
	timestamps []time.Time
}

var _ Limiter = (*Memory)(nil)

// NewMemory creates a limiter allowing maxPerWindow requests per key per Window.
func NewMemory(maxPerWindow int) *Memory {
	return &Memory{
		maxPerWindow: maxPerWindow,
		now:          time.Now,
		clients:      make(map[string]*clientWindow),
	}
}

// Allow records a request for key if it is within the limit.
func (m *Memory) Allow(_ context.Context, key string) (bool, time.Duration, error) {
	now := m.now()
	windowStart := now.Add(-Window)

	m.mu.Lock()
	defer m.mu.Unlock()

	cw, ok := m.clients[key]
	if !ok {
		cw = &clientWindow{}
		m.clients[key] = cw
	}
	cw.prune(windowStart)

	if len(cw.timestamps) >= m.maxPerWindow {
		oldest := cw.timestamps[0]
		return false, oldest.Add(Window).Sub(now), nil
	}
	cw.timestamps = append(cw.timestamps, now)
	return true, 0, nil
}

// prune drops timestamps at or before windowStart, filtering in place.
func (cw *clientWindow) prune(windowStart time.Time) {
	valid := cw.timestamps[:0]
	for _, ts := range cw.timestamps {
		if ts.After(windowStart) {
			valid = append(valid, ts)
		}
	}
	cw.timestamps = valid
}

// Cleanup removes keys with no requests in the current window.
func (m *Memory) Cleanup() {
	windowStart := m.now().Add(-Window)
	m.mu.Lock()
	defer m.mu.Unlock()
	for key, cw := range m.clients {
		cw.prune(windowStart)
		if len(cw.timestamps) == 0 {
			delete(m.clients, key)
		}
	}
}

// Run calls Cleanup every interval until ctx is done.
func (m *Memory) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.Cleanup()
		}
	}
}

func (m *Memory) size() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.clients)
}
