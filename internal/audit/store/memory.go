package store

import (
	"context"
	"sync"

	"vayva/internal/audit"
	id "vayva/pkg/domain"
)

// Memory is an in-memory audit store for tests and local development.
type Memory struct {
	mu     sync.RWMutex
	events []audit.Event
}

// NewMemory constructs an empty in-memory audit store.
func NewMemory() *Memory {
	return &Memory{}
}

// Append records one event. The store is append-only.
func (m *Memory) Append(_ context.Context, event audit.Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, event)
	return nil
}

// ListByMerchant returns events for one merchant, oldest first.
func (m *Memory) ListByMerchant(_ context.Context, merchantID id.MerchantID) ([]audit.Event, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []audit.Event
	for _, event := range m.events {
		if event.MerchantID == merchantID {
			out = append(out, event)
		}
	}
	return out, nil
}

// ListRecent returns up to limit events across all merchants, newest first.
func (m *Memory) ListRecent(_ context.Context, limit int) ([]audit.Event, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if limit <= 0 || limit > len(m.events) {
		limit = len(m.events)
	}
	out := make([]audit.Event, 0, limit)
	for i := len(m.events) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, m.events[i])
	}
	return out, nil
}
