package stream

import (
	"sort"
	"sync"
)

// Manager tracks active streams across all transports. It enforces an
// optional connection cap and backs the connections listing.
type Manager struct {
	mu               sync.RWMutex
	connections      map[string]*Stream
	maxConnections   int
	totalConnections int64
}

// NewManager creates a connection manager. maxConnections of 0 means
// unlimited.
func NewManager(maxConnections int) *Manager {
	return &Manager{
		connections:    make(map[string]*Stream),
		maxConnections: maxConnections,
	}
}

// Register adds a stream, rejecting it when the cap is reached.
func (m *Manager) Register(s *Stream) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.maxConnections > 0 && len(m.connections) >= m.maxConnections {
		return ErrMaxConnectionsReached
	}

	m.connections[s.ID] = s
	m.totalConnections++
	return nil
}

// Deregister removes a stream and cancels its context if still live.
func (m *Manager) Deregister(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if s, ok := m.connections[id]; ok {
		if s.cancel != nil {
			s.cancel()
		}
		delete(m.connections, id)
	}
}

// Count returns the number of active streams.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.connections)
}

// TotalConnections returns the number of streams accepted since start.
func (m *Manager) TotalConnections() int64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.totalConnections
}

// Infos returns a snapshot of all active streams, ordered by ID.
func (m *Manager) Infos() []Info {
	m.mu.RLock()
	streams := make([]*Stream, 0, len(m.connections))
	for _, s := range m.connections {
		streams = append(streams, s)
	}
	m.mu.RUnlock()

	infos := make([]Info, 0, len(streams))
	for _, s := range streams {
		infos = append(infos, s.info())
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].ID < infos[j].ID })
	return infos
}

// CloseAll cancels every active stream. Each session observes the
// cancellation at its next suspension point and terminates.
func (m *Manager) CloseAll() {
	m.mu.Lock()
	defer m.mu.Unlock()

	for id, s := range m.connections {
		if s.cancel != nil {
			s.cancel()
		}
		delete(m.connections, id)
	}
}
