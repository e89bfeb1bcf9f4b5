package store

import (
	"context"
	"sync"

	"vayva/internal/remediation"
	id "vayva/pkg/domain"
)

// Memory is an in-memory remediation log for tests and local development.
type Memory struct {
	mu      sync.RWMutex
	entries []remediation.LogEntry
}

// NewMemory constructs an empty in-memory log store.
func NewMemory() *Memory {
	return &Memory{}
}

// Append records one fix attempt. The log is append-only.
func (m *Memory) Append(_ context.Context, entry remediation.LogEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append(m.entries, entry)
	return nil
}

// ListByMerchant returns fix attempts for one merchant, oldest first.
func (m *Memory) ListByMerchant(_ context.Context, merchantID id.MerchantID) ([]remediation.LogEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []remediation.LogEntry
	for _, entry := range m.entries {
		if entry.MerchantID == merchantID {
			out = append(out, entry)
		}
	}
	return out, nil
}
