package testutil

import (
	"context"
	"maps"
	"slices"
	"sync"
)

// MemorySink is an in-memory sink.Sink that records every write.
type MemorySink struct {
	mu     sync.Mutex
	values map[string]string
	writes int

	// Err, when set, is returned for every name in FailNames (or all names
	// if FailNames is empty) instead of storing the value.
	Err       error
	FailNames []string
}

// NewMemorySink creates an empty MemorySink.
func NewMemorySink() *MemorySink {
	return &MemorySink{values: make(map[string]string)}
}

// Set implements sink.Sink.
func (m *MemorySink) Set(ctx context.Context, name, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.writes++
	if m.Err != nil && (len(m.FailNames) == 0 || slices.Contains(m.FailNames, name)) {
		return m.Err
	}
	m.values[name] = value
	return nil
}

// Value returns the stored value for name.
func (m *MemorySink) Value(name string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[name]
	return v, ok
}

// Values returns a copy of all stored values.
func (m *MemorySink) Values() map[string]string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return maps.Clone(m.values)
}

// Writes returns the number of Set calls, failed ones included.
func (m *MemorySink) Writes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.writes
}
