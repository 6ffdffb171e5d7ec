// Package connectivity tracks whether the device currently has a network
// path to the backend. The platform layer feeds status changes in; the
// content service and UI layers read them out.
package connectivity

import "sync"

// Monitor holds the current online/offline status and notifies subscribers
// on change. Safe for concurrent use.
type Monitor struct {
	mu          sync.RWMutex
	online      bool
	subscribers []func(online bool)
}

// NewMonitor creates a monitor with the given initial status.
func NewMonitor(online bool) *Monitor {
	return &Monitor{online: online}
}

// Online reports the last observed status.
func (m *Monitor) Online() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.online
}

// SetOnline records a status change and notifies subscribers. Redundant
// updates are ignored so a flapping platform callback doesn't spam
// subscribers.
func (m *Monitor) SetOnline(online bool) {
	m.mu.Lock()
	if m.online == online {
		m.mu.Unlock()
		return
	}
	m.online = online
	subs := make([]func(bool), len(m.subscribers))
	copy(subs, m.subscribers)
	m.mu.Unlock()

	for _, fn := range subs {
		fn(online)
	}
}

// Subscribe registers a callback for status changes. Callbacks run on the
// goroutine that called SetOnline and must not block.
func (m *Monitor) Subscribe(fn func(online bool)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.subscribers = append(m.subscribers, fn)
}
