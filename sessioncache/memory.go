package sessioncache

import (
	"context"
	"sync"
)

// Memory is the in-process cache used on the device. A single entry behind
// one mutex keeps Save and Clear atomic with respect to Load.
type Memory struct {
	mu    sync.RWMutex
	entry *Entry
}

func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) Save(_ context.Context, entry Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entry = &entry
	return nil
}

func (m *Memory) Load(_ context.Context) (Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.entry == nil {
		return Entry{}, ErrEmpty
	}
	return *m.entry, nil
}

func (m *Memory) Clear(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entry = nil
	return nil
}
